package orderstore

import (
	"sync"

	"github.com/triswaplabs/triswap-backend/internal/model"
	"github.com/triswaplabs/triswap-backend/internal/swaperr"
)

// MemoryStore is the in-process order store. Production deployments back
// the same interface with postgres; the memory store is authoritative for
// a single-node deployment and for tests.
type MemoryStore struct {
	mux    sync.RWMutex
	orders map[string]model.SwapOrder
}

func NewMemoryStore() IStore {
	return &MemoryStore{
		orders: make(map[string]model.SwapOrder),
	}
}

func (s *MemoryStore) Create(order *model.SwapOrder) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	if _, exists := s.orders[order.ID]; exists {
		return &swaperr.ValidationError{Field: "id", Reason: "order already exists"}
	}
	s.orders[order.ID] = *order
	return nil
}

func (s *MemoryStore) Get(id string) (*model.SwapOrder, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, &swaperr.OrderNotFoundError{OrderID: id}
	}
	return &order, nil
}

func (s *MemoryStore) ListByUser(userAddress string) ([]model.SwapOrder, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	var out []model.SwapOrder
	for _, order := range s.orders {
		if order.UserAddress == userAddress {
			out = append(out, order)
		}
	}
	return out, nil
}

func (s *MemoryStore) ListByStatus(status model.SwapOrderStatus) ([]model.SwapOrder, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	var out []model.SwapOrder
	for _, order := range s.orders {
		if order.Status == status {
			out = append(out, order)
		}
	}
	return out, nil
}

func (s *MemoryStore) All() ([]model.SwapOrder, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	out := make([]model.SwapOrder, 0, len(s.orders))
	for _, order := range s.orders {
		out = append(out, order)
	}
	return out, nil
}

func (s *MemoryStore) Transition(id string, fn func(*model.SwapOrder) error) (*model.SwapOrder, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, &swaperr.OrderNotFoundError{OrderID: id}
	}

	if err := fn(&order); err != nil {
		return nil, err
	}

	s.orders[id] = order
	return &order, nil
}

func (s *MemoryStore) Delete(id string, shouldDelete func(*model.SwapOrder) bool) (bool, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return false, nil
	}
	if !shouldDelete(&order) {
		return false, nil
	}
	delete(s.orders, id)
	return true, nil
}

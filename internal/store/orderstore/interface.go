package orderstore

import "github.com/triswaplabs/triswap-backend/internal/model"

// IStore is a keyed collection of swap orders with per-key atomic
// read-modify-write. Transition and Delete observe the order's current
// state under the store's lock, never a caller-side snapshot.
type IStore interface {
	Create(order *model.SwapOrder) error
	Get(id string) (*model.SwapOrder, error)
	ListByUser(userAddress string) ([]model.SwapOrder, error)
	ListByStatus(status model.SwapOrderStatus) ([]model.SwapOrder, error)
	All() ([]model.SwapOrder, error)

	// Transition applies fn to the current order atomically. If fn returns
	// an error nothing is persisted. The returned order is the post-apply
	// state.
	Transition(id string, fn func(*model.SwapOrder) error) (*model.SwapOrder, error)

	// Delete removes the order only if shouldDelete approves the order's
	// current state at deletion time.
	Delete(id string, shouldDelete func(*model.SwapOrder) bool) (bool, error)
}

package orderstore

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triswaplabs/triswap-backend/internal/model"
	"github.com/triswaplabs/triswap-backend/internal/swaperr"
)

func newOrder(id, user string, status model.SwapOrderStatus) *model.SwapOrder {
	return &model.SwapOrder{
		ID:          id,
		UserAddress: user,
		FromToken:   "USDC",
		ToToken:     "SOL",
		FromAmount:  "100000000",
		FromNetwork: model.NetworkEthereum,
		ToNetwork:   model.NetworkSolana,
		Status:      status,
		Timelock:    time.Now().Add(24 * time.Hour).Unix(),
		CreatedAt:   time.Now(),
	}
}

func TestMemoryStoreCreateAndGet(t *testing.T) {
	s := NewMemoryStore()

	require.NoError(t, s.Create(newOrder("ord-1", "alice", model.SwapOrderStatusPending)))

	got, err := s.Get("ord-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.UserAddress)

	// duplicate ID is rejected
	err = s.Create(newOrder("ord-1", "bob", model.SwapOrderStatusPending))
	require.Error(t, err)

	_, err = s.Get("missing")
	var notFound *swaperr.OrderNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Create(newOrder("ord-1", "alice", model.SwapOrderStatusPending)))

	got, err := s.Get("ord-1")
	require.NoError(t, err)
	got.Status = model.SwapOrderStatusExecuted

	again, err := s.Get("ord-1")
	require.NoError(t, err)
	assert.Equal(t, model.SwapOrderStatusPending, again.Status)
}

func TestMemoryStoreListByUserAndStatus(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Create(newOrder("ord-1", "alice", model.SwapOrderStatusPending)))
	require.NoError(t, s.Create(newOrder("ord-2", "alice", model.SwapOrderStatusExecuted)))
	require.NoError(t, s.Create(newOrder("ord-3", "bob", model.SwapOrderStatusPending)))

	byUser, err := s.ListByUser("alice")
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	byStatus, err := s.ListByStatus(model.SwapOrderStatusPending)
	require.NoError(t, err)
	assert.Len(t, byStatus, 2)

	all, err := s.All()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMemoryStoreTransition(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Create(newOrder("ord-1", "alice", model.SwapOrderStatusPending)))

	updated, err := s.Transition("ord-1", func(o *model.SwapOrder) error {
		o.Status = model.SwapOrderStatusConsensusPending
		o.OperationID = "op-1"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, model.SwapOrderStatusConsensusPending, updated.Status)

	// a failing transition must leave the order untouched
	_, err = s.Transition("ord-1", func(o *model.SwapOrder) error {
		o.Status = model.SwapOrderStatusExecuted
		return &swaperr.OrderTerminalError{OrderID: o.ID, Status: o.Status}
	})
	require.Error(t, err)

	got, err := s.Get("ord-1")
	require.NoError(t, err)
	assert.Equal(t, model.SwapOrderStatusConsensusPending, got.Status)
	assert.Equal(t, "op-1", got.OperationID)
}

func TestMemoryStoreTransitionConcurrentRMW(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Create(newOrder("ord-1", "alice", model.SwapOrderStatusPending)))

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Transition("ord-1", func(o *model.SwapOrder) error {
				o.ConsensusCount++
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := s.Get("ord-1")
	require.NoError(t, err)
	assert.Equal(t, 100, got.ConsensusCount)
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Create(newOrder("ord-1", "alice", model.SwapOrderStatusExecuted)))

	// predicate sees current state and can veto
	deleted, err := s.Delete("ord-1", func(o *model.SwapOrder) bool {
		return o.Status == model.SwapOrderStatusPending
	})
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = s.Delete("ord-1", func(o *model.SwapOrder) bool {
		return o.Status.Terminal()
	})
	require.NoError(t, err)
	assert.True(t, deleted)

	// deleting a missing order is a no-op
	deleted, err = s.Delete("ord-1", func(o *model.SwapOrder) bool { return true })
	require.NoError(t, err)
	assert.False(t, deleted)
}

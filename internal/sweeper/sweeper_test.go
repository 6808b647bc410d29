package sweeper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triswaplabs/triswap-backend/internal/consts"
	"github.com/triswaplabs/triswap-backend/internal/model"
	"github.com/triswaplabs/triswap-backend/internal/store/orderstore"
	"github.com/triswaplabs/triswap-backend/internal/types/environments"
	"github.com/triswaplabs/triswap-backend/internal/utils/logger"
)

func seedOrder(t *testing.T, s orderstore.IStore, id string, status model.SwapOrderStatus, createdAt time.Time, timelock time.Time) {
	t.Helper()
	require.NoError(t, s.Create(&model.SwapOrder{
		ID:          id,
		UserAddress: "0xalice",
		FromToken:   "USDC",
		ToToken:     "SOL",
		FromNetwork: model.NetworkEthereum,
		ToNetwork:   model.NetworkSolana,
		Status:      status,
		Timelock:    timelock.Unix(),
		CreatedAt:   createdAt,
	}))
}

func TestSweepEvictsAgedResolvedOrders(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	s := orderstore.NewMemoryStore()
	sw := NewWithClock(s, logger.New(environments.Test), func() time.Time { return now })

	old := now.Add(-consts.OrderRetention - time.Hour)
	fresh := now.Add(-time.Hour)
	pastTimelock := now.Add(-time.Hour)
	futureTimelock := now.Add(time.Hour)

	// aged and terminal: evicted
	seedOrder(t, s, "aged-executed", model.SwapOrderStatusExecuted, old, pastTimelock)
	seedOrder(t, s, "aged-refunded", model.SwapOrderStatusRefunded, old, pastTimelock)
	// aged, unresolved, past its timelock: evicted
	seedOrder(t, s, "aged-stuck", model.SwapOrderStatusConsensusPending, old, pastTimelock)
	// aged but still claimable: kept
	seedOrder(t, s, "aged-live", model.SwapOrderStatusConsensusAchieved, old, futureTimelock)
	// terminal but young: kept
	seedOrder(t, s, "fresh-executed", model.SwapOrderStatusExecuted, fresh, pastTimelock)

	deleted := sw.Sweep()
	assert.Equal(t, 3, deleted)

	remaining, err := s.All()
	require.NoError(t, err)
	ids := make(map[string]bool)
	for _, o := range remaining {
		ids[o.ID] = true
	}
	assert.Equal(t, map[string]bool{"aged-live": true, "fresh-executed": true}, ids)
}

func TestSweepRetentionBoundary(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	s := orderstore.NewMemoryStore()
	sw := NewWithClock(s, logger.New(environments.Test), func() time.Time { return now })

	// age exactly at the retention window is not yet eligible
	seedOrder(t, s, "at-boundary", model.SwapOrderStatusExecuted, now.Add(-consts.OrderRetention), now.Add(-time.Hour))
	assert.Equal(t, 0, sw.Sweep())

	// one second past the window is
	seedOrder(t, s, "past-boundary", model.SwapOrderStatusExecuted, now.Add(-consts.OrderRetention-time.Second), now.Add(-time.Hour))
	assert.Equal(t, 1, sw.Sweep())

	remaining, err := s.All()
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "at-boundary", remaining[0].ID)
}

func TestSweepEmptyStore(t *testing.T) {
	s := orderstore.NewMemoryStore()
	sw := New(s, logger.New(environments.Test))

	assert.Equal(t, 0, sw.Sweep())
}

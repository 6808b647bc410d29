package sweeper

import (
	"strconv"
	"time"

	"github.com/triswaplabs/triswap-backend/internal/consts"
	"github.com/triswaplabs/triswap-backend/internal/model"
	"github.com/triswaplabs/triswap-backend/internal/store/orderstore"
	"github.com/triswaplabs/triswap-backend/internal/utils/logger"
)

// Sweeper evicts terminal, aged orders from the order store. It runs on a
// fixed cron interval; one periodic sweep replaces per-order cleanup timers.
type Sweeper struct {
	orders orderstore.IStore
	logger *logger.Logger
	now    func() time.Time
}

func New(orders orderstore.IStore, logger *logger.Logger) *Sweeper {
	return &Sweeper{
		orders: orders,
		logger: logger,
		now:    time.Now,
	}
}

func NewWithClock(orders orderstore.IStore, logger *logger.Logger, now func() time.Time) *Sweeper {
	s := New(orders, logger)
	s.now = now
	return s
}

// Sweep deletes every order that is both resolved (terminal, or past its
// timelock with no resolution) and older than the retention window. The
// deletion predicate runs against the order's current state at deletion
// time, so a lifecycle transition racing the scan is never lost.
func (s *Sweeper) Sweep() int {
	orders, err := s.orders.All()
	if err != nil {
		s.logger.Error("[Sweep][All]", map[string]string{
			"error": err.Error(),
		})
		return 0
	}

	deleted := 0
	for _, candidate := range orders {
		ok, err := s.orders.Delete(candidate.ID, s.eligible)
		if err != nil {
			s.logger.Error("[Sweep][Delete]", map[string]string{
				"order_id": candidate.ID,
				"error":    err.Error(),
			})
			continue
		}
		if ok {
			deleted++
		}
	}

	if deleted > 0 {
		s.logger.Info("[Sweep] evicted aged orders", map[string]string{
			"deleted": strconv.Itoa(deleted),
		})
	}
	return deleted
}

func (s *Sweeper) eligible(order *model.SwapOrder) bool {
	now := s.now()

	if now.Sub(order.CreatedAt) <= consts.OrderRetention {
		return false
	}
	if order.Status.Terminal() {
		return true
	}
	// past-timelock and unresolved
	return order.TimelockExpired(now)
}

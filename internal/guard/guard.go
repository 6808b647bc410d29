package guard

import (
	"context"
	"math"
	"math/big"
	"time"

	"github.com/triswaplabs/triswap-backend/internal/consts"
	"github.com/triswaplabs/triswap-backend/internal/model"
	"github.com/triswaplabs/triswap-backend/internal/oracle"
	"github.com/triswaplabs/triswap-backend/internal/store/ratelimitstore"
	"github.com/triswaplabs/triswap-backend/internal/swaperr"
	"github.com/triswaplabs/triswap-backend/internal/utils/logger"
)

type Guard struct {
	rateLimits ratelimitstore.IStore
	oracle     oracle.IOracle
	logger     *logger.Logger
	now        func() time.Time
}

func New(rateLimits ratelimitstore.IStore, oracle oracle.IOracle, logger *logger.Logger) IGuard {
	return &Guard{
		rateLimits: rateLimits,
		oracle:     oracle,
		logger:     logger,
		now:        time.Now,
	}
}

// NewWithClock is for tests that need to control the rolling window.
func NewWithClock(rateLimits ratelimitstore.IStore, oracle oracle.IOracle, logger *logger.Logger, now func() time.Time) IGuard {
	return &Guard{
		rateLimits: rateLimits,
		oracle:     oracle,
		logger:     logger,
		now:        now,
	}
}

func (g *Guard) CheckRateLimit(userAddress string) error {
	now := g.now()

	record := g.rateLimits.Mutate(userAddress, func(r *model.RateLimitRecord) {
		if r.Count == 0 || !now.Before(r.WindowResetAt) {
			r.Count = 1
			r.WindowResetAt = now.Add(consts.RateLimitWindow)
			return
		}
		r.Count++
	})

	if record.Count > consts.RateLimitMaxOrders {
		minutes := int(math.Ceil(record.WindowResetAt.Sub(now).Minutes()))
		if minutes < 1 {
			minutes = 1
		}
		return &swaperr.RateLimitExceededError{MinutesUntilReset: minutes}
	}
	return nil
}

func (g *Guard) CheckNotionalBounds(ctx context.Context, network model.Network, token string, amount *model.Web3BigInt) error {
	price, err := g.oracle.GetReferenceUSDPrice(ctx, network, token)
	if err != nil {
		g.logger.Error("[CheckNotionalBounds][GetReferenceUSDPrice]", map[string]string{
			"token":   token,
			"network": network.String(),
			"error":   err.Error(),
		})
		return err
	}

	// notional in USD at consts.USDDecimals, exact integer arithmetic:
	// amount * price / 10^tokenDecimals
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(amount.Decimal)), nil)
	notional := new(big.Int).Mul(amount.BigInt(), price.BigInt())
	notional.Quo(notional, scale)

	usdScale := new(big.Int).Exp(big.NewInt(10), big.NewInt(consts.USDDecimals), nil)
	minBound := new(big.Int).Mul(big.NewInt(consts.MinOrderUSD), usdScale)
	maxBound := new(big.Int).Mul(big.NewInt(consts.MaxOrderUSD), usdScale)

	if notional.Cmp(minBound) < 0 || notional.Cmp(maxBound) > 0 {
		actual, _ := new(big.Float).Quo(
			new(big.Float).SetInt(notional),
			new(big.Float).SetInt(usdScale),
		).Float64()
		return &swaperr.AmountOutOfBoundsError{
			MinUSD:    consts.MinOrderUSD,
			MaxUSD:    consts.MaxOrderUSD,
			ActualUSD: actual,
		}
	}
	return nil
}

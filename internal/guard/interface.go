package guard

import (
	"context"

	"github.com/triswaplabs/triswap-backend/internal/model"
)

// IGuard is the anti-abuse gate run before any order is created. Its
// failures are synchronous and never auto-retried.
type IGuard interface {
	// CheckRateLimit enforces the rolling-window per-user order cap.
	CheckRateLimit(userAddress string) error

	// CheckNotionalBounds enforces the [min, max] USD bounds on
	// amount x reference price.
	CheckNotionalBounds(ctx context.Context, network model.Network, token string, amount *model.Web3BigInt) error
}

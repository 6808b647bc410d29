package chainrpc

import (
	"context"

	"github.com/triswaplabs/triswap-backend/internal/model"
)

// IChainClient reads chain state for one supported network. Every call
// carries the caller's context and is a single attempt.
type IChainClient interface {
	Network() model.Network
	LatestBlockNumber(ctx context.Context) (uint64, error)
	NativeBalance(ctx context.Context, address string) (*model.Web3BigInt, error)
	Ping(ctx context.Context) error
}

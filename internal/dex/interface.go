package dex

import (
	"context"

	"github.com/triswaplabs/triswap-backend/internal/model"
)

// IAdapter is one (chain, exchange) quote source. Adapters are isolated:
// a failing adapter returns an error and must not affect its peers.
type IAdapter interface {
	Name() string
	Chain() model.Network
	GetQuote(ctx context.Context, tokenIn, tokenOut string, amountIn *model.Web3BigInt) (*model.Quote, error)
}

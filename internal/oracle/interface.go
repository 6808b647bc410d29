package oracle

import (
	"context"

	"github.com/triswaplabs/triswap-backend/internal/model"
)

type IOracle interface {
	// GetReferenceUSDPrice returns the USD price of one whole token at
	// consts.USDDecimals precision.
	GetReferenceUSDPrice(ctx context.Context, network model.Network, token string) (*model.Web3BigInt, error)

	// GetCachedReferenceUSDPrice returns the last fetched price without
	// touching any external source, or nil when nothing is cached.
	GetCachedReferenceUSDPrice(network model.Network, token string) *model.Web3BigInt
}

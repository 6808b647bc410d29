package aggregator

import (
	"context"

	"github.com/triswaplabs/triswap-backend/internal/model"
)

// IAggregator fans out to the registered DEX adapters and merges candidate
// routes. An empty result list means no candidate survived; a single
// adapter failure is never escalated.
type IAggregator interface {
	// FindRoutes returns candidate routes ranked strictly descending by
	// estimated output.
	FindRoutes(ctx context.Context, fromToken, toToken string, amount *model.Web3BigInt, fromNetwork, toNetwork model.Network) ([]model.SwapRoute, error)

	// BestRoute returns the top-ranked candidate, or NoRouteFound when the
	// candidate list is empty.
	BestRoute(ctx context.Context, fromToken, toToken string, amount *model.Web3BigInt, fromNetwork, toNetwork model.Network) (*model.SwapRoute, error)
}

package aggregator

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"sync"
	"time"

	"github.com/triswaplabs/triswap-backend/internal/consts"
	"github.com/triswaplabs/triswap-backend/internal/dex"
	"github.com/triswaplabs/triswap-backend/internal/model"
	"github.com/triswaplabs/triswap-backend/internal/swaperr"
	"github.com/triswaplabs/triswap-backend/internal/utils/logger"
)

// gasEstimates are flat per-chain estimates in native base units.
var gasEstimates = map[model.Network]*model.Web3BigInt{
	model.NetworkEthereum: model.NewWeb3BigInt("2000000000000000", 18),
	model.NetworkBase:     model.NewWeb3BigInt("100000000000000", 18),
	model.NetworkSolana:   model.NewWeb3BigInt("5000", 9),
}

type Aggregator struct {
	registry *dex.Registry
	logger   *logger.Logger
}

func New(registry *dex.Registry, logger *logger.Logger) IAggregator {
	return &Aggregator{
		registry: registry,
		logger:   logger,
	}
}

func (a *Aggregator) FindRoutes(ctx context.Context, fromToken, toToken string, amount *model.Web3BigInt, fromNetwork, toNetwork model.Network) ([]model.SwapRoute, error) {
	if _, ok := consts.LookupDecimals(fromNetwork, fromToken); !ok {
		return nil, &swaperr.ValidationError{Field: "fromToken", Reason: fmt.Sprintf("unknown token %s on %s", fromToken, fromNetwork)}
	}
	if _, ok := consts.LookupDecimals(toNetwork, toToken); !ok {
		return nil, &swaperr.ValidationError{Field: "toToken", Reason: fmt.Sprintf("unknown token %s on %s", toToken, toNetwork)}
	}

	var routes []model.SwapRoute
	if fromNetwork == toNetwork {
		routes = a.sameChainRoutes(ctx, fromToken, toToken, amount, fromNetwork)
	} else {
		routes = a.crossChainRoutes(ctx, fromToken, toToken, amount, fromNetwork, toNetwork)
	}

	sort.SliceStable(routes, func(i, j int) bool {
		return routes[i].EstimatedOutput.Cmp(routes[j].EstimatedOutput) > 0
	})
	return routes, nil
}

func (a *Aggregator) BestRoute(ctx context.Context, fromToken, toToken string, amount *model.Web3BigInt, fromNetwork, toNetwork model.Network) (*model.SwapRoute, error) {
	routes, err := a.FindRoutes(ctx, fromToken, toToken, amount, fromNetwork, toNetwork)
	if err != nil {
		return nil, err
	}
	if len(routes) == 0 {
		return nil, &swaperr.NoRouteFoundError{FromToken: fromToken, ToToken: toToken}
	}
	return &routes[0], nil
}

// sameChainRoutes queries every adapter registered for the chain in
// parallel. Adapters are isolated; a failure is logged and dropped.
func (a *Aggregator) sameChainRoutes(ctx context.Context, fromToken, toToken string, amount *model.Web3BigInt, network model.Network) []model.SwapRoute {
	adapters := a.registry.AdaptersFor(network)

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		routes []model.SwapRoute
	)

	for _, adapter := range adapters {
		wg.Add(1)
		go func(adapter dex.IAdapter) {
			defer wg.Done()

			quote, err := a.quoteWithRetry(ctx, adapter, fromToken, toToken, amount)
			if err != nil {
				a.logger.Warn("[sameChainRoutes] adapter gave no quote", map[string]string{
					"dex":     adapter.Name(),
					"network": network.String(),
					"error":   err.Error(),
				})
				return
			}

			mu.Lock()
			routes = append(routes, model.SwapRoute{
				Path:            []string{fromToken, toToken},
				Dexs:            []string{quote.DexName},
				FromNetwork:     network,
				ToNetwork:       network,
				EstimatedOutput: quote.AmountOut,
				PriceImpactBps:  quote.PriceImpactBps,
				GasEstimate:     gasEstimates[network],
			})
			mu.Unlock()
		}(adapter)
	}
	wg.Wait()

	return routes
}

// crossChainRoutes builds a direct bridge candidate for bridgeable assets
// plus swap-bridge-swap candidates through each fixed intermediary token.
func (a *Aggregator) crossChainRoutes(ctx context.Context, fromToken, toToken string, amount *model.Web3BigInt, fromNetwork, toNetwork model.Network) []model.SwapRoute {
	var routes []model.SwapRoute

	if fromToken == toToken && consts.BridgeableTokens[fromToken] {
		toDecimals, _ := consts.LookupDecimals(toNetwork, toToken)
		out := applyBridgeFee(amount).Rescale(toDecimals)
		routes = append(routes, model.SwapRoute{
			Path:            []string{fromToken, toToken},
			Dexs:            []string{"bridge"},
			FromNetwork:     fromNetwork,
			ToNetwork:       toNetwork,
			EstimatedOutput: out,
			GasEstimate:     gasEstimates[toNetwork],
		})
	}

	for _, mid := range consts.BridgeIntermediaries {
		route, ok := a.multiHopRoute(ctx, fromToken, toToken, mid, amount, fromNetwork, toNetwork)
		if ok {
			routes = append(routes, route)
		}
	}

	return routes
}

func (a *Aggregator) multiHopRoute(ctx context.Context, fromToken, toToken, mid string, amount *model.Web3BigInt, fromNetwork, toNetwork model.Network) (model.SwapRoute, bool) {
	if _, ok := consts.LookupDecimals(fromNetwork, mid); !ok {
		return model.SwapRoute{}, false
	}
	dstMidDecimals, ok := consts.LookupDecimals(toNetwork, mid)
	if !ok {
		return model.SwapRoute{}, false
	}

	path := []string{fromToken}
	var dexs []string
	impact := int64(0)

	// first leg: swap into the intermediary on the source chain
	bridgeIn := amount
	if fromToken != mid {
		quote := a.bestQuote(ctx, fromNetwork, fromToken, mid, amount)
		if quote == nil {
			return model.SwapRoute{}, false
		}
		bridgeIn = quote.AmountOut
		dexs = append(dexs, quote.DexName)
		impact += quote.PriceImpactBps
		path = append(path, mid)
	}

	// bridge leg
	bridged := applyBridgeFee(bridgeIn).Rescale(dstMidDecimals)
	dexs = append(dexs, "bridge")
	path = append(path, mid)

	// final leg: swap out of the intermediary on the destination chain
	out := bridged
	if toToken != mid {
		quote := a.bestQuote(ctx, toNetwork, mid, toToken, bridged)
		if quote == nil {
			return model.SwapRoute{}, false
		}
		out = quote.AmountOut
		dexs = append(dexs, quote.DexName)
		impact += quote.PriceImpactBps
	}
	path = append(path, toToken)

	return model.SwapRoute{
		Path:            path,
		Dexs:            dexs,
		FromNetwork:     fromNetwork,
		ToNetwork:       toNetwork,
		EstimatedOutput: out,
		PriceImpactBps:  impact,
		GasEstimate:     gasEstimates[toNetwork],
	}, true
}

// bestQuote returns the highest-output quote for one same-chain leg, or nil
// when every adapter failed.
func (a *Aggregator) bestQuote(ctx context.Context, network model.Network, tokenIn, tokenOut string, amount *model.Web3BigInt) *model.Quote {
	var best *model.Quote
	for _, adapter := range a.registry.AdaptersFor(network) {
		quote, err := a.quoteWithRetry(ctx, adapter, tokenIn, tokenOut, amount)
		if err != nil {
			a.logger.Warn("[bestQuote] adapter gave no quote", map[string]string{
				"dex":     adapter.Name(),
				"network": network.String(),
				"error":   err.Error(),
			})
			continue
		}
		if best == nil || quote.AmountOut.Cmp(best.AmountOut) > 0 {
			best = quote
		}
	}
	return best
}

// quoteWithRetry wraps one adapter call in bounded exponential backoff.
func (a *Aggregator) quoteWithRetry(ctx context.Context, adapter dex.IAdapter, tokenIn, tokenOut string, amount *model.Web3BigInt) (*model.Quote, error) {
	var lastErr error
	backoff := consts.DexQuoteBackoffBase

	for attempt := 1; attempt <= consts.DexQuoteAttempts; attempt++ {
		quote, err := adapter.GetQuote(ctx, tokenIn, tokenOut, amount)
		if err == nil {
			return quote, nil
		}
		lastErr = err

		if attempt == consts.DexQuoteAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return nil, lastErr
}

// applyBridgeFee deducts the flat bridge fee with exact integer arithmetic.
func applyBridgeFee(amount *model.Web3BigInt) *model.Web3BigInt {
	value := amount.BigInt()
	value.Mul(value, big.NewInt(10000-consts.BridgeFeeBps))
	value.Quo(value, big.NewInt(10000))
	return model.NewWeb3BigInt(value.String(), amount.Decimal)
}

package aggregator

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triswaplabs/triswap-backend/internal/dex"
	"github.com/triswaplabs/triswap-backend/internal/model"
	"github.com/triswaplabs/triswap-backend/internal/swaperr"
	"github.com/triswaplabs/triswap-backend/internal/types/environments"
	"github.com/triswaplabs/triswap-backend/internal/utils/logger"
)

// stubAdapter serves canned quotes, optionally failing the first failCount
// calls to exercise the retry path.
type stubAdapter struct {
	name      string
	network   model.Network
	amountOut string
	decimals  int
	impact    int64
	failCount int32
	alwaysErr bool
	calls     int32
}

func (a *stubAdapter) Name() string         { return a.name }
func (a *stubAdapter) Chain() model.Network { return a.network }

func (a *stubAdapter) GetQuote(ctx context.Context, tokenIn, tokenOut string, amountIn *model.Web3BigInt) (*model.Quote, error) {
	call := atomic.AddInt32(&a.calls, 1)
	if a.alwaysErr || call <= a.failCount {
		return nil, errors.Errorf("%s unavailable", a.name)
	}
	return &model.Quote{
		DexName:        a.name,
		Network:        a.network,
		TokenIn:        tokenIn,
		TokenOut:       tokenOut,
		AmountIn:       amountIn,
		AmountOut:      model.NewWeb3BigInt(a.amountOut, a.decimals),
		PriceImpactBps: a.impact,
	}, nil
}

func newTestAggregator(adapters ...dex.IAdapter) IAggregator {
	registry := dex.NewRegistry()
	for _, a := range adapters {
		registry.Register(a)
	}
	return New(registry, logger.New(environments.Test))
}

func TestFindRoutesSameChainSortedDescending(t *testing.T) {
	agg := newTestAggregator(
		&stubAdapter{name: "uniswap", network: model.NetworkEthereum, amountOut: "990000", decimals: 6},
		&stubAdapter{name: "sushiswap", network: model.NetworkEthereum, amountOut: "995000", decimals: 6},
	)

	amount := model.NewWeb3BigInt("1000000000000000000", 18)
	routes, err := agg.FindRoutes(context.Background(), "WETH", "USDC", amount, model.NetworkEthereum, model.NetworkEthereum)
	require.NoError(t, err)
	require.Len(t, routes, 2)

	assert.Equal(t, []string{"sushiswap"}, routes[0].Dexs)
	assert.Equal(t, "995000", routes[0].EstimatedOutput.Value)
	assert.Equal(t, []string{"uniswap"}, routes[1].Dexs)

	for i := 1; i < len(routes); i++ {
		assert.LessOrEqual(t, routes[i].EstimatedOutput.Cmp(routes[i-1].EstimatedOutput), 0)
	}
}

func TestFindRoutesAdapterFailureIsolated(t *testing.T) {
	agg := newTestAggregator(
		&stubAdapter{name: "uniswap", network: model.NetworkEthereum, alwaysErr: true},
		&stubAdapter{name: "sushiswap", network: model.NetworkEthereum, amountOut: "995000", decimals: 6},
	)

	amount := model.NewWeb3BigInt("1000000000000000000", 18)
	routes, err := agg.FindRoutes(context.Background(), "WETH", "USDC", amount, model.NetworkEthereum, model.NetworkEthereum)
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Equal(t, []string{"sushiswap"}, routes[0].Dexs)
}

func TestQuoteRetrySucceedsAfterTransientFailures(t *testing.T) {
	adapter := &stubAdapter{name: "uniswap", network: model.NetworkEthereum, amountOut: "990000", decimals: 6, failCount: 2}
	agg := newTestAggregator(adapter)

	amount := model.NewWeb3BigInt("1000000000000000000", 18)
	routes, err := agg.FindRoutes(context.Background(), "WETH", "USDC", amount, model.NetworkEthereum, model.NetworkEthereum)
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Equal(t, int32(3), atomic.LoadInt32(&adapter.calls))
}

func TestBestRouteNoRouteFound(t *testing.T) {
	agg := newTestAggregator(
		&stubAdapter{name: "uniswap", network: model.NetworkEthereum, alwaysErr: true},
	)

	amount := model.NewWeb3BigInt("1000000000000000000", 18)
	_, err := agg.BestRoute(context.Background(), "WETH", "USDC", amount, model.NetworkEthereum, model.NetworkEthereum)

	var noRoute *swaperr.NoRouteFoundError
	require.ErrorAs(t, err, &noRoute)
}

func TestFindRoutesUnknownToken(t *testing.T) {
	agg := newTestAggregator()

	amount := model.NewWeb3BigInt("1000000", 6)
	_, err := agg.FindRoutes(context.Background(), "DOGE", "USDC", amount, model.NetworkEthereum, model.NetworkEthereum)

	var validation *swaperr.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestCrossChainDirectBridge(t *testing.T) {
	// USDC ethereum -> USDC solana: same stable both sides, direct bridge
	// applies the 30 bps fee with no DEX hop
	agg := newTestAggregator()

	amount := model.NewWeb3BigInt("100000000", 6) // 100 USDC
	routes, err := agg.FindRoutes(context.Background(), "USDC", "USDC", amount, model.NetworkEthereum, model.NetworkSolana)
	require.NoError(t, err)
	require.NotEmpty(t, routes)

	// 100 USDC * 0.997 = 99.7 USDC
	assert.Equal(t, "99700000", routes[0].EstimatedOutput.Value)
	assert.Equal(t, []string{"bridge"}, routes[0].Dexs)
	assert.Equal(t, model.NetworkSolana, routes[0].ToNetwork)
}

func TestCrossChainMultiHop(t *testing.T) {
	// WETH ethereum -> SOL solana via the USDC intermediary:
	// swap on ethereum, bridge, swap on solana
	agg := newTestAggregator(
		&stubAdapter{name: "uniswap", network: model.NetworkEthereum, amountOut: "2000000000", decimals: 6, impact: 10},
		&stubAdapter{name: "raydium", network: model.NetworkSolana, amountOut: "10000000000", decimals: 9, impact: 15},
	)

	amount := model.NewWeb3BigInt("1000000000000000000", 18)
	routes, err := agg.FindRoutes(context.Background(), "WETH", "SOL", amount, model.NetworkEthereum, model.NetworkSolana)
	require.NoError(t, err)
	require.NotEmpty(t, routes)

	best := routes[0]
	assert.Equal(t, []string{"WETH", "USDC", "USDC", "SOL"}, best.Path)
	assert.Equal(t, []string{"uniswap", "bridge", "raydium"}, best.Dexs)
	assert.Equal(t, "10000000000", best.EstimatedOutput.Value)
	assert.Equal(t, int64(25), best.PriceImpactBps)
}

func TestApplyBridgeFeeExact(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{in: "10000", expected: "9970"},
		{in: "1", expected: "0"},
		{in: "1000000000000000000", expected: "997000000000000000"},
	}
	for _, tt := range tests {
		got := applyBridgeFee(model.NewWeb3BigInt(tt.in, 6))
		assert.Equal(t, tt.expected, got.Value)
	}
}

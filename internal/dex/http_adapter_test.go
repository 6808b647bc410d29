package dex

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triswaplabs/triswap-backend/internal/model"
	"github.com/triswaplabs/triswap-backend/internal/types/environments"
	"github.com/triswaplabs/triswap-backend/internal/utils/logger"
)

func TestHTTPAdapterGetQuote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quote", r.URL.Path)
		assert.Equal(t, "WETH", r.URL.Query().Get("token_in"))
		assert.Equal(t, "USDC", r.URL.Query().Get("token_out"))
		assert.Equal(t, "1000000000000000000", r.URL.Query().Get("amount_in"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"amount_out":"1995000000","fee":"3000000000000000","price_impact_bps":12}`))
	}))
	defer server.Close()

	adapter := newHTTPAdapter("uniswap", model.NetworkEthereum, server.URL, logger.New(environments.Test))

	amount := model.NewWeb3BigInt("1000000000000000000", 18)
	quote, err := adapter.GetQuote(context.Background(), "WETH", "USDC", amount)
	require.NoError(t, err)

	assert.Equal(t, "uniswap", quote.DexName)
	assert.Equal(t, "1995000000", quote.AmountOut.Value)
	assert.Equal(t, 6, quote.AmountOut.Decimal)
	assert.Equal(t, int64(12), quote.PriceImpactBps)
}

func TestHTTPAdapterErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no liquidity", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	adapter := newHTTPAdapter("uniswap", model.NetworkEthereum, server.URL, logger.New(environments.Test))

	amount := model.NewWeb3BigInt("1000000", 6)
	_, err := adapter.GetQuote(context.Background(), "USDC", "WETH", amount)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestHTTPAdapterUnknownToken(t *testing.T) {
	adapter := newHTTPAdapter("uniswap", model.NetworkEthereum, "http://unused", logger.New(environments.Test))

	amount := model.NewWeb3BigInt("1000000", 6)
	_, err := adapter.GetQuote(context.Background(), "USDC", "DOGE", amount)
	require.Error(t, err)
}

func TestHTTPAdapterContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	adapter := newHTTPAdapter("uniswap", model.NetworkEthereum, server.URL, logger.New(environments.Test))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	amount := model.NewWeb3BigInt("1000000", 6)
	_, err := adapter.GetQuote(ctx, "USDC", "WETH", amount)
	require.Error(t, err)
}

func TestRegistryRouting(t *testing.T) {
	r := NewRegistry()
	r.Register(newHTTPAdapter("uniswap", model.NetworkEthereum, "http://a", logger.New(environments.Test)))
	r.Register(newHTTPAdapter("sushiswap", model.NetworkEthereum, "http://b", logger.New(environments.Test)))
	r.Register(newHTTPAdapter("raydium", model.NetworkSolana, "http://c", logger.New(environments.Test)))

	assert.Len(t, r.AdaptersFor(model.NetworkEthereum), 2)
	assert.Len(t, r.AdaptersFor(model.NetworkSolana), 1)
	assert.Empty(t, r.AdaptersFor(model.NetworkBase))
}

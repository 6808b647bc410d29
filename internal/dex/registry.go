package dex

import (
	"github.com/triswaplabs/triswap-backend/internal/model"
	"github.com/triswaplabs/triswap-backend/internal/utils/config"
	"github.com/triswaplabs/triswap-backend/internal/utils/logger"
)

// Registry maps each network to its registered DEX adapters.
type Registry struct {
	adapters map[model.Network][]IAdapter
}

func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[model.Network][]IAdapter),
	}
}

// NewRegistryFromConfig registers every exchange with a configured quote
// endpoint.
func NewRegistryFromConfig(appConfig *config.AppConfig, logger *logger.Logger) *Registry {
	r := NewRegistry()

	register := func(name string, network model.Network, baseURL string) {
		if baseURL == "" {
			logger.Warn("dex adapter not configured, skipping", map[string]string{
				"dex":     name,
				"network": network.String(),
			})
			return
		}
		r.Register(newHTTPAdapter(name, network, baseURL, logger))
	}

	register("uniswap", model.NetworkEthereum, appConfig.Dex.UniswapQuoteURL)
	register("sushiswap", model.NetworkEthereum, appConfig.Dex.SushiswapQuoteURL)
	register("aerodrome", model.NetworkBase, appConfig.Dex.AerodromeQuoteURL)
	register("raydium", model.NetworkSolana, appConfig.Dex.RaydiumQuoteURL)
	register("orca", model.NetworkSolana, appConfig.Dex.OrcaQuoteURL)

	return r
}

func (r *Registry) Register(adapter IAdapter) {
	r.adapters[adapter.Chain()] = append(r.adapters[adapter.Chain()], adapter)
}

// AdaptersFor returns every adapter registered for the network.
func (r *Registry) AdaptersFor(network model.Network) []IAdapter {
	return r.adapters[network]
}

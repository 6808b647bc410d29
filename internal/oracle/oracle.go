package oracle

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/triswaplabs/triswap-backend/internal/aggregator"
	"github.com/triswaplabs/triswap-backend/internal/consts"
	"github.com/triswaplabs/triswap-backend/internal/model"
	"github.com/triswaplabs/triswap-backend/internal/utils/logger"
)

const cacheTTL = time.Minute

type cachedPrice struct {
	price     *model.Web3BigInt
	fetchedAt time.Time
}

// PriceOracle derives a USD reference price for any supported token by
// quoting one whole token into USDC on its home chain.
type PriceOracle struct {
	mux        sync.Mutex
	cache      map[string]cachedPrice
	aggregator aggregator.IAggregator
	logger     *logger.Logger
}

func New(aggregator aggregator.IAggregator, logger *logger.Logger) IOracle {
	return &PriceOracle{
		cache:      make(map[string]cachedPrice),
		aggregator: aggregator,
		logger:     logger,
	}
}

func (o *PriceOracle) GetReferenceUSDPrice(ctx context.Context, network model.Network, token string) (*model.Web3BigInt, error) {
	if consts.StableTokens[token] {
		return oneUSD(), nil
	}

	if cached := o.freshCached(network, token); cached != nil {
		return cached, nil
	}

	decimals, ok := consts.LookupDecimals(network, token)
	if !ok {
		return nil, fmt.Errorf("unknown token %s on %s", token, network)
	}

	oneToken := model.NewWeb3BigInt(
		new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil).String(),
		decimals,
	)

	route, err := o.aggregator.BestRoute(ctx, token, "USDC", oneToken, network, network)
	if err != nil {
		o.logger.Error("[GetReferenceUSDPrice][BestRoute]", map[string]string{
			"token":   token,
			"network": network.String(),
			"error":   err.Error(),
		})
		return nil, err
	}

	price := route.EstimatedOutput.Rescale(consts.USDDecimals)
	o.updateCache(network, token, price)
	return price, nil
}

func (o *PriceOracle) GetCachedReferenceUSDPrice(network model.Network, token string) *model.Web3BigInt {
	if consts.StableTokens[token] {
		return oneUSD()
	}

	o.mux.Lock()
	defer o.mux.Unlock()

	entry, ok := o.cache[cacheKey(network, token)]
	if !ok {
		return nil
	}
	return entry.price
}

func (o *PriceOracle) freshCached(network model.Network, token string) *model.Web3BigInt {
	o.mux.Lock()
	defer o.mux.Unlock()

	entry, ok := o.cache[cacheKey(network, token)]
	if !ok || time.Since(entry.fetchedAt) > cacheTTL {
		return nil
	}
	return entry.price
}

func (o *PriceOracle) updateCache(network model.Network, token string, price *model.Web3BigInt) {
	o.mux.Lock()
	defer o.mux.Unlock()

	o.cache[cacheKey(network, token)] = cachedPrice{
		price:     price,
		fetchedAt: time.Now(),
	}
}

func cacheKey(network model.Network, token string) string {
	return fmt.Sprintf("%s/%s", network, token)
}

func oneUSD() *model.Web3BigInt {
	return model.NewWeb3BigInt("1000000", consts.USDDecimals)
}

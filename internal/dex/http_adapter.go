package dex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/triswaplabs/triswap-backend/internal/consts"
	"github.com/triswaplabs/triswap-backend/internal/model"
	"github.com/triswaplabs/triswap-backend/internal/utils/logger"
)

// quoteResponse is the wire schema shared by the aggregator-facing quote
// endpoints of every integrated exchange.
type quoteResponse struct {
	AmountOut      string `json:"amount_out"`
	Fee            string `json:"fee"`
	PriceImpactBps int64  `json:"price_impact_bps"`
}

type httpAdapter struct {
	name    string
	network model.Network
	baseURL string
	client  *http.Client
	logger  *logger.Logger
}

func newHTTPAdapter(name string, network model.Network, baseURL string, logger *logger.Logger) IAdapter {
	return &httpAdapter{
		name:    name,
		network: network,
		baseURL: baseURL,
		client:  &http.Client{Timeout: consts.DexQuoteTimeout},
		logger:  logger,
	}
}

func (a *httpAdapter) Name() string {
	return a.name
}

func (a *httpAdapter) Chain() model.Network {
	return a.network
}

func (a *httpAdapter) GetQuote(ctx context.Context, tokenIn, tokenOut string, amountIn *model.Web3BigInt) (*model.Quote, error) {
	outDecimals, ok := consts.LookupDecimals(a.network, tokenOut)
	if !ok {
		return nil, errors.Errorf("unknown token %s on %s", tokenOut, a.network)
	}

	q := url.Values{}
	q.Set("token_in", tokenIn)
	q.Set("token_out", tokenOut)
	q.Set("amount_in", amountIn.Value)

	endpoint := fmt.Sprintf("%s/quote?%s", a.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create quote request")
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s quote request failed", a.name)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read quote response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("%s quote returned status %d: %s", a.name, resp.StatusCode, string(body))
	}

	var parsed quoteResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s quote", a.name)
	}

	return &model.Quote{
		DexName:        a.name,
		Network:        a.network,
		TokenIn:        tokenIn,
		TokenOut:       tokenOut,
		AmountIn:       amountIn,
		AmountOut:      model.NewWeb3BigInt(parsed.AmountOut, outDecimals),
		FeeBaseUnits:   model.NewWeb3BigInt(parsed.Fee, amountIn.Decimal),
		PriceImpactBps: parsed.PriceImpactBps,
	}, nil
}

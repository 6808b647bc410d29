package model

// Quote is a single DEX quote for a token pair.
type Quote struct {
	DexName        string      `json:"dex_name"`
	Network        Network     `json:"network"`
	TokenIn        string      `json:"token_in"`
	TokenOut       string      `json:"token_out"`
	AmountIn       *Web3BigInt `json:"amount_in"`
	AmountOut      *Web3BigInt `json:"amount_out"`
	FeeBaseUnits   *Web3BigInt `json:"fee_base_units"`
	PriceImpactBps int64       `json:"price_impact_bps"`
}

// SwapRoute is an ephemeral pricing candidate. It is never persisted beyond
// order creation.
type SwapRoute struct {
	Path            []string    `json:"path"`
	Dexs            []string    `json:"dexs"`
	FromNetwork     Network     `json:"from_network"`
	ToNetwork       Network     `json:"to_network"`
	EstimatedOutput *Web3BigInt `json:"estimated_output"`
	PriceImpactBps  int64       `json:"price_impact_bps"`
	GasEstimate     *Web3BigInt `json:"gas_estimate"`
}

package consts

import "github.com/triswaplabs/triswap-backend/internal/model"

// TokenDecimals declares the base-unit scale of every supported token,
// per network. Decimal counts differ by token family (6, 9, 18).
var TokenDecimals = map[model.Network]map[string]int{
	model.NetworkEthereum: {
		"ETH":  18,
		"WETH": 18,
		"USDC": 6,
		"USDT": 6,
		"DAI":  18,
	},
	model.NetworkBase: {
		"ETH":  18,
		"WETH": 18,
		"USDC": 6,
		"USDT": 6,
	},
	model.NetworkSolana: {
		"SOL":  9,
		"WSOL": 9,
		"USDC": 6,
		"USDT": 6,
	},
}

// StableTokens is the reference unit for notional pricing; a quote into one
// of these counts as a USD price.
var StableTokens = map[string]bool{
	"USDC": true,
	"USDT": true,
}

// BridgeIntermediaries are the fixed intermediary tokens used for multi-hop
// swap-bridge-swap routing.
var BridgeIntermediaries = []string{"USDC", "USDT"}

// BridgeableTokens are assets the bridge carries directly between any two of
// the supported networks, charging BridgeFeeBps.
var BridgeableTokens = map[string]bool{
	"USDC": true,
	"USDT": true,
	"WETH": true,
}

// LookupDecimals returns the declared decimal count for a token on a network.
func LookupDecimals(network model.Network, token string) (int, bool) {
	tokens, ok := TokenDecimals[network]
	if !ok {
		return 0, false
	}
	d, ok := tokens[token]
	return d, ok
}

package consts

import "time"

const (
	// ConsensusThreshold is the fixed 2-of-3 proof requirement.
	ConsensusThreshold = 2
	ConsensusSources   = 3

	// TimelockDuration is the claim window granted at order creation.
	TimelockDuration = 24 * time.Hour

	// OrderRetention is how long terminal or abandoned orders are kept
	// before the cleanup sweep may delete them.
	OrderRetention = 48 * time.Hour

	// CleanupInterval is the cadence of the cleanup sweep.
	CleanupInterval = 6 * time.Hour

	// RateLimitMaxOrders is the per-user cap inside one rolling window.
	RateLimitMaxOrders = 10
	RateLimitWindow    = time.Hour

	// Notional bounds in whole USD.
	MinOrderUSD = 10
	MaxOrderUSD = 1_000_000

	// USDDecimals is the scale used for USD notional arithmetic.
	USDDecimals = 6

	// SecretHashHexLen is the length of a hex-encoded 32-byte commitment.
	SecretHashHexLen = 64

	// DexQuoteAttempts bounds per-adapter retries inside the aggregator.
	DexQuoteAttempts     = 3
	DexQuoteBackoffBase  = 100 * time.Millisecond
	DexQuoteTimeout      = 5 * time.Second
	ConsensusCallTimeout = 15 * time.Second

	// BridgeFeeBps is the flat fee applied to a direct bridge leg.
	BridgeFeeBps = 30
)

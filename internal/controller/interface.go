package controller

import (
	"context"

	"github.com/triswaplabs/triswap-backend/internal/model"
)

type CreateOrderParams struct {
	UserAddress string
	FromToken   string
	ToToken     string
	FromAmount  string
	MinAmount   string
	FromNetwork model.Network
	ToNetwork   model.Network
	SecretHash  string
}

// IOrderMetrics receives lifecycle events for the metrics endpoint. A nil
// recorder disables instrumentation.
type IOrderMetrics interface {
	RecordOrderCreated(fromNetwork, toNetwork string)
	RecordTransition(toStatus string)
}

// IController drives the HTLC order lifecycle:
// pending -> consensus_pending -> consensus_achieved -> executed | refunded | failed.
type IController interface {
	// CreateOrder validates input, runs the anti-abuse guard, picks the
	// best route and persists a pending order with a 24h timelock.
	CreateOrder(ctx context.Context, params CreateOrderParams) (*model.SwapOrder, error)

	// InitializeOnConsensusLayer registers the order with the consensus
	// verifier exactly once and moves it to consensus_pending.
	InitializeOnConsensusLayer(ctx context.Context, orderID string) (*model.SwapOrder, error)

	// PollConsensus refreshes the proof count; the order reaches
	// consensus_achieved once the 2-of-3 threshold is met. Read-only
	// against the verifier.
	PollConsensus(ctx context.Context, orderID string) (*model.SwapOrder, error)

	// Claim executes the swap when the secret matches the commitment, the
	// timelock has not passed and consensus is achieved. Precondition
	// failures leave the order untouched.
	Claim(ctx context.Context, orderID, secret string) (*model.SwapOrder, error)

	// Refund returns funds after timelock expiry for any order that was
	// never executed.
	Refund(ctx context.Context, orderID string) (*model.SwapOrder, error)

	GetOrder(id string) (*model.SwapOrder, error)
	ListOrdersByUser(userAddress string) ([]model.SwapOrder, error)
}

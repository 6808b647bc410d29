package consensus

import (
	"context"

	"github.com/triswaplabs/triswap-backend/internal/model"
)

// Mode is fixed at gateway construction and never switches at runtime.
type Mode string

const (
	// ModeSigning holds transaction-signing credentials and produces real
	// on-chain transactions.
	ModeSigning Mode = "signing"
	// ModeReadOnly cannot sign; execute-operation returns an explicitly
	// simulated result, never a value shaped like a transaction hash.
	ModeReadOnly Mode = "read_only"
)

// IGateway is the interface to the external 2-of-3 consensus verifier.
// Each call is a single attempt with a bounded timeout; retry cadence
// belongs to the caller.
type IGateway interface {
	Mode() Mode

	// CreateOperation registers a consensus operation describing the
	// destination chain, asset and amount. The lock result carries the
	// registration transaction (or a simulated reference in read-only mode).
	CreateOperation(ctx context.Context, destChain model.Network, asset string, amount *model.Web3BigInt, flags uint8) (operationID string, lock model.ExecutionResult, err error)

	// GetProofCount reads the current number of chain attestations (0-3)
	// for the operation. Read-only; no side effects.
	GetProofCount(ctx context.Context, operationID string) (int, error)

	// ExecuteOperation finalizes the operation once the threshold is met.
	ExecuteOperation(ctx context.Context, operationID string) (model.ExecutionResult, error)

	// CancelOperation releases a registered operation after timelock
	// expiry; it is the on-chain leg of the refund path.
	CancelOperation(ctx context.Context, operationID string) (model.ExecutionResult, error)
}

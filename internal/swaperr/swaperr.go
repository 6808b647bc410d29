package swaperr

import (
	"fmt"
	"time"

	"github.com/triswaplabs/triswap-backend/internal/model"
)

// ValidationError reports malformed or inconsistent order input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// RateLimitExceededError reports a user over the rolling-window order cap.
type RateLimitExceededError struct {
	MinutesUntilReset int
}

func (e *RateLimitExceededError) Error() string {
	return fmt.Sprintf("rate limit exceeded, resets in %d minutes", e.MinutesUntilReset)
}

// AmountOutOfBoundsError reports a notional value outside the configured
// USD bounds. Values are whole USD for display.
type AmountOutOfBoundsError struct {
	MinUSD    int64
	MaxUSD    int64
	ActualUSD float64
}

func (e *AmountOutOfBoundsError) Error() string {
	return fmt.Sprintf("order notional %.2f USD outside bounds [%d, %d]", e.ActualUSD, e.MinUSD, e.MaxUSD)
}

// NoRouteFoundError means every DEX and bridge candidate failed or the pair
// is simply unroutable.
type NoRouteFoundError struct {
	FromToken string
	ToToken   string
}

func (e *NoRouteFoundError) Error() string {
	return fmt.Sprintf("no route found for %s -> %s", e.FromToken, e.ToToken)
}

// ConsensusNotReadyError reports insufficient proofs for a claim.
type ConsensusNotReadyError struct {
	Current  int
	Required int
}

func (e *ConsensusNotReadyError) Error() string {
	return fmt.Sprintf("consensus not ready: %d of %d required proofs", e.Current, e.Required)
}

// InvalidSecretError means the revealed secret does not hash to the
// committed secret hash. The secret itself is never included.
type InvalidSecretError struct{}

func (e *InvalidSecretError) Error() string {
	return "secret does not match commitment"
}

// TimelockExpiredError means the claim window closed at Timelock.
type TimelockExpiredError struct {
	Timelock time.Time
}

func (e *TimelockExpiredError) Error() string {
	return fmt.Sprintf("timelock expired at %s", e.Timelock.UTC().Format(time.RFC3339))
}

// TimelockNotYetExpiredError means refund was attempted before Timelock.
type TimelockNotYetExpiredError struct {
	Timelock time.Time
}

func (e *TimelockNotYetExpiredError) Error() string {
	return fmt.Sprintf("timelock not yet expired, refundable at %s", e.Timelock.UTC().Format(time.RFC3339))
}

// ProviderError wraps a failure of an external chain provider.
type ProviderError struct {
	Chain model.Network
	Err   error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error on %s: %v", e.Chain, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// TimeoutError reports a bounded external call that ran out of time.
type TimeoutError struct {
	Operation string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("operation %s timed out", e.Operation)
}

// OrderNotFoundError reports an unknown order ID.
type OrderNotFoundError struct {
	OrderID string
}

func (e *OrderNotFoundError) Error() string {
	return fmt.Sprintf("order %s not found", e.OrderID)
}

// OrderTerminalError reports an operation against an already-terminal order.
type OrderTerminalError struct {
	OrderID string
	Status  model.SwapOrderStatus
}

func (e *OrderTerminalError) Error() string {
	return fmt.Sprintf("order %s already %s", e.OrderID, e.Status)
}

// AlreadyInitializedError reports a second consensus initialization attempt.
type AlreadyInitializedError struct {
	OrderID     string
	OperationID string
}

func (e *AlreadyInitializedError) Error() string {
	return fmt.Sprintf("order %s already initialized with operation %s", e.OrderID, e.OperationID)
}

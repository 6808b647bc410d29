package model

import "fmt"

// ExecutionResult is the outcome of a consensus execute-operation call.
// A simulated result is explicitly tagged and carries a reference that is
// never shaped like a transaction hash, so callers cannot mistake it for a
// confirmed on-chain transaction.
type ExecutionResult struct {
	Simulated     bool   `json:"simulated"`
	TxHash        string `json:"tx_hash,omitempty"`
	SimulationRef string `json:"simulation_ref,omitempty"`
}

func NewRealResult(txHash string) ExecutionResult {
	return ExecutionResult{TxHash: txHash}
}

func NewSimulatedResult(operationID string) ExecutionResult {
	return ExecutionResult{
		Simulated:     true,
		SimulationRef: fmt.Sprintf("simulated:%s", operationID),
	}
}

// Reference returns the tx hash for real results and the tagged simulation
// reference otherwise.
func (r ExecutionResult) Reference() string {
	if r.Simulated {
		return r.SimulationRef
	}
	return r.TxHash
}

package monitoring

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triswaplabs/triswap-backend/internal/consensus"
	"github.com/triswaplabs/triswap-backend/internal/model"
	"github.com/triswaplabs/triswap-backend/internal/types/environments"
	"github.com/triswaplabs/triswap-backend/internal/utils/logger"
)

type flakyGateway struct {
	failing bool
	calls   int
}

func (g *flakyGateway) Mode() consensus.Mode { return consensus.ModeReadOnly }

func (g *flakyGateway) CreateOperation(ctx context.Context, destChain model.Network, asset string, amount *model.Web3BigInt, flags uint8) (string, model.ExecutionResult, error) {
	g.calls++
	if g.failing {
		return "", model.ExecutionResult{}, errors.New("verifier unavailable")
	}
	return "op-1", model.NewSimulatedResult("op-1"), nil
}

func (g *flakyGateway) GetProofCount(ctx context.Context, operationID string) (int, error) {
	g.calls++
	if g.failing {
		return 0, errors.New("verifier unavailable")
	}
	return 2, nil
}

func (g *flakyGateway) ExecuteOperation(ctx context.Context, operationID string) (model.ExecutionResult, error) {
	g.calls++
	if g.failing {
		return model.ExecutionResult{}, errors.New("verifier unavailable")
	}
	return model.NewRealResult("0xexec"), nil
}

func (g *flakyGateway) CancelOperation(ctx context.Context, operationID string) (model.ExecutionResult, error) {
	g.calls++
	if g.failing {
		return model.ExecutionResult{}, errors.New("verifier unavailable")
	}
	return model.NewRealResult("0xcancel"), nil
}

func testConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		MaxRequests:                 1,
		Interval:                    time.Second,
		Timeout:                     time.Minute,
		ConsecutiveFailureThreshold: 3,
	}
}

func TestCircuitBreakerPassThrough(t *testing.T) {
	gw := &flakyGateway{}
	cb := NewCircuitBreakerGateway(gw, testConfig(), NewExternalAPIMetrics(), logger.New(environments.Test))

	opID, lock, err := cb.CreateOperation(context.Background(), model.NetworkSolana, "SOL", model.NewWeb3BigInt("1", 9), 0)
	require.NoError(t, err)
	assert.Equal(t, "op-1", opID)
	assert.True(t, lock.Simulated)

	count, err := cb.GetProofCount(context.Background(), "op-1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	result, err := cb.ExecuteOperation(context.Background(), "op-1")
	require.NoError(t, err)
	assert.Equal(t, "0xexec", result.TxHash)

	assert.Equal(t, consensus.ModeReadOnly, cb.Mode())
}

func TestCircuitBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	gw := &flakyGateway{failing: true}
	cb := NewCircuitBreakerGateway(gw, testConfig(), NewExternalAPIMetrics(), logger.New(environments.Test))

	for i := 0; i < 3; i++ {
		_, err := cb.GetProofCount(context.Background(), "op-1")
		require.Error(t, err)
	}

	assert.Equal(t, gobreaker.StateOpen, cb.circuitBreaker.State())

	// open breaker rejects without touching the wrapped gateway
	callsBefore := gw.calls
	_, err := cb.GetProofCount(context.Background(), "op-1")
	require.Error(t, err)
	assert.Equal(t, callsBefore, gw.calls)
}

func TestCircuitBreakerRecovers(t *testing.T) {
	gw := &flakyGateway{failing: true}
	config := testConfig()
	config.Timeout = 10 * time.Millisecond
	cb := NewCircuitBreakerGateway(gw, config, NewExternalAPIMetrics(), logger.New(environments.Test))

	for i := 0; i < 3; i++ {
		_, _ = cb.GetProofCount(context.Background(), "op-1")
	}
	require.Equal(t, gobreaker.StateOpen, cb.circuitBreaker.State())

	gw.failing = false
	time.Sleep(20 * time.Millisecond)

	count, err := cb.GetProofCount(context.Background(), "op-1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		msg      string
		expected APIErrorType
	}{
		{msg: "context deadline exceeded", expected: ErrorTypeTimeout},
		{msg: "connection refused", expected: ErrorTypeNetworkError},
		{msg: "503 service unavailable", expected: ErrorTypeServerError},
		{msg: "429 rate limit", expected: ErrorTypeClientError},
		{msg: "something odd", expected: ErrorTypeUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, classifyError(errors.New(tt.msg)), tt.msg)
	}
	assert.Equal(t, APIErrorType(""), classifyError(nil))
}

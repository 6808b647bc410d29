package monitoring

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/triswaplabs/triswap-backend/internal/consensus"
	"github.com/triswaplabs/triswap-backend/internal/model"
	"github.com/triswaplabs/triswap-backend/internal/utils/logger"
)

// CircuitBreakerGateway wraps consensus.IGateway with circuit breaker
// functionality so a flapping verifier endpoint cannot pile up blocked
// lifecycle operations.
type CircuitBreakerGateway struct {
	wrapped        consensus.IGateway
	circuitBreaker *gobreaker.CircuitBreaker
	metrics        *ExternalAPIMetrics
	logger         *logger.Logger
}

type createOperationResult struct {
	operationID string
	lock        model.ExecutionResult
}

// NewCircuitBreakerGateway creates a new circuit breaker wrapper for the consensus gateway
func NewCircuitBreakerGateway(wrapped consensus.IGateway, config CircuitBreakerConfig, metrics *ExternalAPIMetrics, logger *logger.Logger) *CircuitBreakerGateway {
	cb := &CircuitBreakerGateway{
		wrapped: wrapped,
		metrics: metrics,
		logger:  logger,
	}

	settings := gobreaker.Settings{
		Name:        "consensus_verifier",
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(config.ConsecutiveFailureThreshold)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("Circuit breaker state change", map[string]string{
				"service": name,
				"from":    from.String(),
				"to":      to.String(),
			})
			metrics.UpdateCircuitBreakerState("consensus_verifier", to)
		},
	}

	cb.circuitBreaker = gobreaker.NewCircuitBreaker(settings)
	return cb
}

func (cb *CircuitBreakerGateway) Mode() consensus.Mode {
	return cb.wrapped.Mode()
}

func (cb *CircuitBreakerGateway) CreateOperation(ctx context.Context, destChain model.Network, asset string, amount *model.Web3BigInt, flags uint8) (string, model.ExecutionResult, error) {
	result, err := cb.execute("create_operation", func() (interface{}, error) {
		opID, lock, err := cb.wrapped.CreateOperation(ctx, destChain, asset, amount, flags)
		if err != nil {
			return nil, err
		}
		return createOperationResult{operationID: opID, lock: lock}, nil
	})

	if err != nil {
		return "", model.ExecutionResult{}, err
	}

	created := result.(createOperationResult)
	return created.operationID, created.lock, nil
}

func (cb *CircuitBreakerGateway) GetProofCount(ctx context.Context, operationID string) (int, error) {
	result, err := cb.execute("get_proof_count", func() (interface{}, error) {
		return cb.wrapped.GetProofCount(ctx, operationID)
	})

	if err != nil {
		return 0, err
	}

	return result.(int), nil
}

func (cb *CircuitBreakerGateway) ExecuteOperation(ctx context.Context, operationID string) (model.ExecutionResult, error) {
	result, err := cb.execute("execute_operation", func() (interface{}, error) {
		return cb.wrapped.ExecuteOperation(ctx, operationID)
	})

	if err != nil {
		return model.ExecutionResult{}, err
	}

	return result.(model.ExecutionResult), nil
}

func (cb *CircuitBreakerGateway) CancelOperation(ctx context.Context, operationID string) (model.ExecutionResult, error) {
	result, err := cb.execute("cancel_operation", func() (interface{}, error) {
		return cb.wrapped.CancelOperation(ctx, operationID)
	})

	if err != nil {
		return model.ExecutionResult{}, err
	}

	return result.(model.ExecutionResult), nil
}

func (cb *CircuitBreakerGateway) execute(operation string, fn func() (interface{}, error)) (interface{}, error) {
	start := time.Now()

	result, err := cb.circuitBreaker.Execute(fn)

	duration := time.Since(start).Seconds()
	status := "success"
	if err != nil {
		status = "error"
		if classifyError(err) == ErrorTypeTimeout {
			cb.metrics.RecordTimeout("consensus_verifier", operation)
		}
		cb.logError(operation, duration, err)
	}
	cb.metrics.RecordAPICall("consensus_verifier", operation, status, duration)

	return result, err
}

func (cb *CircuitBreakerGateway) logError(operation string, duration float64, err error) {
	cb.logger.Error("External API call failed", map[string]string{
		"service":    "consensus_verifier",
		"operation":  operation,
		"duration":   strconv.FormatFloat(duration, 'f', 3, 64),
		"error":      err.Error(),
		"error_type": string(classifyError(err)),
		"cb_state":   cb.circuitBreaker.State().String(),
	})
}

// classifyError classifies errors into different types for metrics and logging
func classifyError(err error) APIErrorType {
	if err == nil {
		return ""
	}

	errMsg := strings.ToLower(err.Error())

	if strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "deadline exceeded") ||
		strings.Contains(errMsg, "context canceled") {
		return ErrorTypeTimeout
	}

	if strings.Contains(errMsg, "network") ||
		strings.Contains(errMsg, "connection") ||
		strings.Contains(errMsg, "unreachable") ||
		strings.Contains(errMsg, "dns") {
		return ErrorTypeNetworkError
	}

	if strings.Contains(errMsg, "500") ||
		strings.Contains(errMsg, "502") ||
		strings.Contains(errMsg, "503") ||
		strings.Contains(errMsg, "internal server error") ||
		strings.Contains(errMsg, "bad gateway") ||
		strings.Contains(errMsg, "service unavailable") {
		return ErrorTypeServerError
	}

	if strings.Contains(errMsg, "400") ||
		strings.Contains(errMsg, "401") ||
		strings.Contains(errMsg, "404") ||
		strings.Contains(errMsg, "429") ||
		strings.Contains(errMsg, "bad request") ||
		strings.Contains(errMsg, "not found") ||
		strings.Contains(errMsg, "rate limit") {
		return ErrorTypeClientError
	}

	return ErrorTypeUnknown
}

package controller

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/triswaplabs/triswap-backend/internal/aggregator"
	"github.com/triswaplabs/triswap-backend/internal/consensus"
	"github.com/triswaplabs/triswap-backend/internal/consts"
	"github.com/triswaplabs/triswap-backend/internal/guard"
	"github.com/triswaplabs/triswap-backend/internal/model"
	"github.com/triswaplabs/triswap-backend/internal/store"
	"github.com/triswaplabs/triswap-backend/internal/swaperr"
	"github.com/triswaplabs/triswap-backend/internal/utils/logger"
)

type Controller struct {
	store      *store.Store
	guard      guard.IGuard
	aggregator aggregator.IAggregator
	gateway    consensus.IGateway
	metrics    IOrderMetrics
	logger     *logger.Logger
	locks      *keyedMutex
	now        func() time.Time
}

func New(
	store *store.Store,
	guard guard.IGuard,
	aggregator aggregator.IAggregator,
	gateway consensus.IGateway,
	metrics IOrderMetrics,
	logger *logger.Logger,
) IController {
	return &Controller{
		store:      store,
		guard:      guard,
		aggregator: aggregator,
		gateway:    gateway,
		metrics:    metrics,
		logger:     logger,
		locks:      newKeyedMutex(),
		now:        time.Now,
	}
}

// NewWithClock is for tests that need to cross the timelock boundary.
func NewWithClock(
	store *store.Store,
	guard guard.IGuard,
	aggregator aggregator.IAggregator,
	gateway consensus.IGateway,
	logger *logger.Logger,
	now func() time.Time,
) IController {
	c := New(store, guard, aggregator, gateway, nil, logger).(*Controller)
	c.now = now
	return c
}

func (c *Controller) CreateOrder(ctx context.Context, params CreateOrderParams) (*model.SwapOrder, error) {
	if err := validateCreateParams(&params); err != nil {
		return nil, err
	}

	fromDecimals, _ := consts.LookupDecimals(params.FromNetwork, params.FromToken)
	fromAmount := model.NewWeb3BigInt(params.FromAmount, fromDecimals)

	if err := c.guard.CheckRateLimit(params.UserAddress); err != nil {
		return nil, err
	}
	if err := c.guard.CheckNotionalBounds(ctx, params.FromNetwork, params.FromToken, fromAmount); err != nil {
		return nil, err
	}

	route, err := c.aggregator.BestRoute(ctx, params.FromToken, params.ToToken, fromAmount, params.FromNetwork, params.ToNetwork)
	if err != nil {
		return nil, err
	}

	now := c.now()
	order := &model.SwapOrder{
		ID:             uuid.NewString(),
		UserAddress:    params.UserAddress,
		FromToken:      params.FromToken,
		ToToken:        params.ToToken,
		FromAmount:     params.FromAmount,
		ExpectedAmount: route.EstimatedOutput.Value,
		MinAmount:      params.MinAmount,
		FromNetwork:    params.FromNetwork,
		ToNetwork:      params.ToNetwork,
		Status:         model.SwapOrderStatusPending,
		SecretHash:     strings.ToLower(params.SecretHash),
		Timelock:       now.Add(consts.TimelockDuration).Unix(),
		CreatedAt:      now,
		ExpiresAt:      now.Add(consts.OrderRetention),
		UpdatedAt:      now,
	}

	if err := c.store.Order.Create(order); err != nil {
		c.logger.Error("[CreateOrder][Create]", map[string]string{
			"order_id": order.ID,
			"error":    err.Error(),
		})
		return nil, err
	}

	c.recordCreated(order)
	c.logger.Info("[CreateOrder] order created", map[string]string{
		"order_id":     order.ID,
		"user":         order.UserAddress,
		"from_network": order.FromNetwork.String(),
		"to_network":   order.ToNetwork.String(),
	})
	return order, nil
}

func (c *Controller) InitializeOnConsensusLayer(ctx context.Context, orderID string) (*model.SwapOrder, error) {
	c.locks.Lock(orderID)
	defer c.locks.Unlock(orderID)

	order, err := c.store.Order.Get(orderID)
	if err != nil {
		return nil, err
	}
	if order.OperationID != "" {
		return nil, &swaperr.AlreadyInitializedError{OrderID: orderID, OperationID: order.OperationID}
	}
	if order.Status.Terminal() {
		return nil, &swaperr.OrderTerminalError{OrderID: orderID, Status: order.Status}
	}

	toDecimals, _ := consts.LookupDecimals(order.ToNetwork, order.ToToken)
	expected := model.NewWeb3BigInt(order.ExpectedAmount, toDecimals)

	operationID, lock, err := c.gateway.CreateOperation(ctx, order.ToNetwork, order.ToToken, expected, 0)
	if err != nil {
		c.logger.Error("[InitializeOnConsensusLayer][CreateOperation]", map[string]string{
			"order_id": orderID,
			"error":    err.Error(),
		})
		return nil, err
	}

	updated, err := c.store.Order.Transition(orderID, func(o *model.SwapOrder) error {
		if o.OperationID != "" {
			return &swaperr.AlreadyInitializedError{OrderID: orderID, OperationID: o.OperationID}
		}
		o.OperationID = operationID
		o.LockTxHash = lock.Reference()
		o.Status = model.SwapOrderStatusConsensusPending
		o.UpdatedAt = c.now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.recordTransition(updated.Status)
	return updated, nil
}

func (c *Controller) PollConsensus(ctx context.Context, orderID string) (*model.SwapOrder, error) {
	c.locks.Lock(orderID)
	defer c.locks.Unlock(orderID)

	order, err := c.store.Order.Get(orderID)
	if err != nil {
		return nil, err
	}
	if order.OperationID == "" {
		return nil, &swaperr.ValidationError{Field: "operationId", Reason: "order not initialized on consensus layer"}
	}
	if order.Status.Terminal() {
		return nil, &swaperr.OrderTerminalError{OrderID: orderID, Status: order.Status}
	}

	count, err := c.gateway.GetProofCount(ctx, order.OperationID)
	if err != nil {
		return nil, err
	}

	updated, err := c.store.Order.Transition(orderID, func(o *model.SwapOrder) error {
		o.ConsensusCount = count
		if count >= consts.ConsensusThreshold && o.Status == model.SwapOrderStatusConsensusPending {
			o.Status = model.SwapOrderStatusConsensusAchieved
		}
		o.UpdatedAt = c.now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if updated.Status != order.Status {
		c.recordTransition(updated.Status)
	}
	return updated, nil
}

func (c *Controller) Claim(ctx context.Context, orderID, secret string) (*model.SwapOrder, error) {
	c.locks.Lock(orderID)
	defer c.locks.Unlock(orderID)

	order, err := c.store.Order.Get(orderID)
	if err != nil {
		return nil, err
	}

	now := c.now()
	if order.TimelockExpired(now) {
		return nil, &swaperr.TimelockExpiredError{Timelock: time.Unix(order.Timelock, 0)}
	}
	if order.Status.Terminal() {
		return nil, &swaperr.OrderTerminalError{OrderID: orderID, Status: order.Status}
	}
	if order.Status != model.SwapOrderStatusConsensusAchieved {
		return nil, &swaperr.ConsensusNotReadyError{
			Current:  order.ConsensusCount,
			Required: consts.ConsensusThreshold,
		}
	}
	if err := verifySecret(secret, order.SecretHash); err != nil {
		return nil, err
	}

	result, err := c.gateway.ExecuteOperation(ctx, order.OperationID)
	if err != nil {
		c.logger.Error("[Claim][ExecuteOperation]", map[string]string{
			"order_id": orderID,
			"error":    err.Error(),
		})
		return nil, err
	}

	updated, err := c.store.Order.Transition(orderID, func(o *model.SwapOrder) error {
		if o.Status != model.SwapOrderStatusConsensusAchieved {
			return &swaperr.OrderTerminalError{OrderID: orderID, Status: o.Status}
		}
		o.Status = model.SwapOrderStatusExecuted
		o.ExecuteTxHash = result.Reference()
		o.UpdatedAt = c.now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.recordTransition(updated.Status)
	c.logger.Info("[Claim] order executed", map[string]string{
		"order_id":  orderID,
		"tx":        updated.ExecuteTxHash,
		"simulated": boolStr(result.Simulated),
	})
	return updated, nil
}

func (c *Controller) Refund(ctx context.Context, orderID string) (*model.SwapOrder, error) {
	c.locks.Lock(orderID)
	defer c.locks.Unlock(orderID)

	order, err := c.store.Order.Get(orderID)
	if err != nil {
		return nil, err
	}

	now := c.now()
	if !order.TimelockExpired(now) {
		return nil, &swaperr.TimelockNotYetExpiredError{Timelock: time.Unix(order.Timelock, 0)}
	}
	if order.Status == model.SwapOrderStatusExecuted || order.Status == model.SwapOrderStatusRefunded {
		return nil, &swaperr.OrderTerminalError{OrderID: orderID, Status: order.Status}
	}

	refundTx := ""
	if order.OperationID != "" {
		result, err := c.gateway.CancelOperation(ctx, order.OperationID)
		if err != nil {
			c.logger.Error("[Refund][CancelOperation]", map[string]string{
				"order_id": orderID,
				"error":    err.Error(),
			})
			return nil, err
		}
		refundTx = result.Reference()
	}

	updated, err := c.store.Order.Transition(orderID, func(o *model.SwapOrder) error {
		if o.Status == model.SwapOrderStatusExecuted || o.Status == model.SwapOrderStatusRefunded {
			return &swaperr.OrderTerminalError{OrderID: orderID, Status: o.Status}
		}
		o.Status = model.SwapOrderStatusRefunded
		o.RefundTxHash = refundTx
		o.UpdatedAt = c.now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.recordTransition(updated.Status)
	c.logger.Info("[Refund] order refunded", map[string]string{
		"order_id": orderID,
	})
	return updated, nil
}

func (c *Controller) GetOrder(id string) (*model.SwapOrder, error) {
	return c.store.Order.Get(id)
}

func (c *Controller) ListOrdersByUser(userAddress string) ([]model.SwapOrder, error) {
	return c.store.Order.ListByUser(userAddress)
}

func validateCreateParams(params *CreateOrderParams) error {
	if params.UserAddress == "" {
		return &swaperr.ValidationError{Field: "userAddress", Reason: "required"}
	}
	if !params.FromNetwork.Valid() {
		return &swaperr.ValidationError{Field: "fromNetwork", Reason: "unsupported network"}
	}
	if !params.ToNetwork.Valid() {
		return &swaperr.ValidationError{Field: "toNetwork", Reason: "unsupported network"}
	}
	if _, ok := consts.LookupDecimals(params.FromNetwork, params.FromToken); !ok {
		return &swaperr.ValidationError{Field: "fromToken", Reason: "unknown token"}
	}
	if _, ok := consts.LookupDecimals(params.ToNetwork, params.ToToken); !ok {
		return &swaperr.ValidationError{Field: "toToken", Reason: "unknown token"}
	}

	amount := model.NewWeb3BigInt(params.FromAmount, 0)
	if amount.BigInt().Sign() <= 0 {
		return &swaperr.ValidationError{Field: "fromAmount", Reason: "must be a positive base-unit integer"}
	}

	if err := validateSecretHash(params.SecretHash); err != nil {
		return err
	}
	return nil
}

// validateSecretHash requires a fixed-length hex commitment to a 32-byte
// secret hash.
func validateSecretHash(secretHash string) error {
	if len(secretHash) != consts.SecretHashHexLen {
		return &swaperr.ValidationError{Field: "secretHash", Reason: "must be a 64-character hex commitment"}
	}
	if _, err := hex.DecodeString(secretHash); err != nil {
		return &swaperr.ValidationError{Field: "secretHash", Reason: "must be valid hex"}
	}
	return nil
}

// verifySecret hashes the revealed secret and compares it to the stored
// commitment. The secret bytes are zeroed before returning and are never
// logged or persisted.
func verifySecret(secret, secretHash string) error {
	secretBytes, err := hex.DecodeString(strings.TrimPrefix(secret, "0x"))
	if err != nil {
		return &swaperr.InvalidSecretError{}
	}

	sum := sha256.Sum256(secretBytes)
	for i := range secretBytes {
		secretBytes[i] = 0
	}

	if !strings.EqualFold(hex.EncodeToString(sum[:]), secretHash) {
		return &swaperr.InvalidSecretError{}
	}
	return nil
}

func (c *Controller) recordCreated(order *model.SwapOrder) {
	if c.metrics == nil {
		return
	}
	c.metrics.RecordOrderCreated(order.FromNetwork.String(), order.ToNetwork.String())
}

func (c *Controller) recordTransition(status model.SwapOrderStatus) {
	if c.metrics == nil {
		return
	}
	c.metrics.RecordTransition(string(status))
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

package swap

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/triswaplabs/triswap-backend/internal/controller"
	"github.com/triswaplabs/triswap-backend/internal/model"
	"github.com/triswaplabs/triswap-backend/internal/swaperr"
	"github.com/triswaplabs/triswap-backend/internal/utils/config"
	"github.com/triswaplabs/triswap-backend/internal/utils/logger"
	"github.com/triswaplabs/triswap-backend/internal/view"
)

type CreateOrderRequest struct {
	UserAddress string `json:"user_address" binding:"required"`
	FromToken   string `json:"from_token" binding:"required"`
	ToToken     string `json:"to_token" binding:"required"`
	FromAmount  string `json:"from_amount" binding:"required"`
	MinAmount   string `json:"min_amount"`
	FromNetwork string `json:"from_network" binding:"required"`
	ToNetwork   string `json:"to_network" binding:"required"`
	SecretHash  string `json:"secret_hash" binding:"required"`
}

type ClaimRequest struct {
	Secret string `json:"secret" binding:"required"`
}

type handler struct {
	controller controller.IController
	logger     *logger.Logger
	appConfig  *config.AppConfig
}

func New(controller controller.IController, logger *logger.Logger, appConfig *config.AppConfig) IHandler {
	return &handler{
		controller: controller,
		logger:     logger,
		appConfig:  appConfig,
	}
}

// CreateOrder godoc
// @Summary Create a swap order
// @Description Validates the request, checks anti-abuse limits, selects the best route and persists a pending order with a 24h timelock
// @id createOrder
// @Tags Swap
// @Accept json
// @Produce json
// @Param request body CreateOrderRequest true "Order parameters"
// @Success 201 {object} view.MessageResponse
// @Failure 400 {object} view.ErrorResponse
// @Failure 429 {object} view.ErrorResponse
// @Failure 500 {object} view.ErrorResponse
// @Router /orders [post]
func (h *handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("[CreateOrder][ShouldBindJSON]", map[string]string{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, "invalid request"))
		return
	}

	// validate req
	if err := validator.New().Struct(req); err != nil {
		h.logger.Error("[CreateOrder][Validator]", map[string]string{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, "invalid request"))
		return
	}

	order, err := h.controller.CreateOrder(c.Request.Context(), controller.CreateOrderParams{
		UserAddress: req.UserAddress,
		FromToken:   req.FromToken,
		ToToken:     req.ToToken,
		FromAmount:  req.FromAmount,
		MinAmount:   req.MinAmount,
		FromNetwork: model.Network(req.FromNetwork),
		ToNetwork:   model.Network(req.ToNetwork),
		SecretHash:  req.SecretHash,
	})
	if err != nil {
		h.logger.Error("[CreateOrder][CreateOrder]", map[string]string{
			"user_address": req.UserAddress,
			"error":        err.Error(),
		})
		c.JSON(statusFor(err), view.CreateResponse[any](nil, err, nil, "failed to create order"))
		return
	}

	c.JSON(http.StatusCreated, view.CreateResponse[any](order, nil, nil, ""))
}

// InitializeOrder godoc
// @Summary Register an order on the consensus layer
// @Description Creates the verifier operation for the order exactly once and moves it to consensus_pending
// @id initializeOrder
// @Tags Swap
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} view.MessageResponse
// @Failure 404 {object} view.ErrorResponse
// @Failure 409 {object} view.ErrorResponse
// @Router /orders/{id}/consensus [post]
func (h *handler) InitializeOrder(c *gin.Context) {
	orderID := c.Param("id")

	order, err := h.controller.InitializeOnConsensusLayer(c.Request.Context(), orderID)
	if err != nil {
		h.logger.Error("[InitializeOrder][InitializeOnConsensusLayer]", map[string]string{
			"order_id": orderID,
			"error":    err.Error(),
		})
		c.JSON(statusFor(err), view.CreateResponse[any](nil, err, nil, "failed to initialize order"))
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse[any](order, nil, nil, ""))
}

// PollConsensus godoc
// @Summary Poll the consensus proof count
// @Description Refreshes the stored proof count; the order reaches consensus_achieved at the 2-of-3 threshold
// @id pollConsensus
// @Tags Swap
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} view.MessageResponse
// @Failure 404 {object} view.ErrorResponse
// @Router /orders/{id}/poll [post]
func (h *handler) PollConsensus(c *gin.Context) {
	orderID := c.Param("id")

	order, err := h.controller.PollConsensus(c.Request.Context(), orderID)
	if err != nil {
		h.logger.Error("[PollConsensus][PollConsensus]", map[string]string{
			"order_id": orderID,
			"error":    err.Error(),
		})
		c.JSON(statusFor(err), view.CreateResponse[any](nil, err, nil, "failed to poll consensus"))
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse[any](order, nil, nil, ""))
}

// ClaimOrder godoc
// @Summary Claim a swap order
// @Description Executes the swap when the revealed secret matches the commitment, the timelock has not passed and consensus is achieved
// @id claimOrder
// @Tags Swap
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body ClaimRequest true "Secret preimage"
// @Success 200 {object} view.MessageResponse
// @Failure 400 {object} view.ErrorResponse
// @Failure 409 {object} view.ErrorResponse
// @Router /orders/{id}/claim [post]
func (h *handler) ClaimOrder(c *gin.Context) {
	orderID := c.Param("id")

	var req ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("[ClaimOrder][ShouldBindJSON]", map[string]string{
			"order_id": orderID,
			"error":    err.Error(),
		})
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, "invalid request"))
		return
	}

	order, err := h.controller.Claim(c.Request.Context(), orderID, req.Secret)
	if err != nil {
		h.logger.Error("[ClaimOrder][Claim]", map[string]string{
			"order_id": orderID,
			"error":    err.Error(),
		})
		c.JSON(statusFor(err), view.CreateResponse[any](nil, err, nil, "failed to claim order"))
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse[any](order, nil, nil, ""))
}

// RefundOrder godoc
// @Summary Refund an expired order
// @Description Returns funds after timelock expiry for any order that was never executed
// @id refundOrder
// @Tags Swap
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} view.MessageResponse
// @Failure 404 {object} view.ErrorResponse
// @Failure 409 {object} view.ErrorResponse
// @Router /orders/{id}/refund [post]
func (h *handler) RefundOrder(c *gin.Context) {
	orderID := c.Param("id")

	order, err := h.controller.Refund(c.Request.Context(), orderID)
	if err != nil {
		h.logger.Error("[RefundOrder][Refund]", map[string]string{
			"order_id": orderID,
			"error":    err.Error(),
		})
		c.JSON(statusFor(err), view.CreateResponse[any](nil, err, nil, "failed to refund order"))
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse[any](order, nil, nil, ""))
}

// GetOrder godoc
// @Summary Get a swap order
// @id getOrder
// @Tags Swap
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} view.MessageResponse
// @Failure 404 {object} view.ErrorResponse
// @Router /orders/{id} [get]
func (h *handler) GetOrder(c *gin.Context) {
	orderID := c.Param("id")

	order, err := h.controller.GetOrder(orderID)
	if err != nil {
		c.JSON(statusFor(err), view.CreateResponse[any](nil, err, nil, "order not found"))
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse[any](order, nil, nil, ""))
}

// ListOrders godoc
// @Summary List swap orders for a user
// @id listOrders
// @Tags Swap
// @Produce json
// @Param user query string true "User address"
// @Success 200 {object} view.MessageResponse
// @Failure 400 {object} view.ErrorResponse
// @Router /orders [get]
func (h *handler) ListOrders(c *gin.Context) {
	user := c.Query("user")
	if user == "" {
		err := &swaperr.ValidationError{Field: "user", Reason: "query parameter is required"}
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, nil, "invalid request"))
		return
	}

	orders, err := h.controller.ListOrdersByUser(user)
	if err != nil {
		h.logger.Error("[ListOrders][ListOrdersByUser]", map[string]string{
			"user_address": user,
			"error":        err.Error(),
		})
		c.JSON(statusFor(err), view.CreateResponse[any](nil, err, nil, "failed to list orders"))
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse[any](orders, nil, nil, ""))
}

// statusFor maps lifecycle errors onto HTTP status codes.
func statusFor(err error) int {
	switch err.(type) {
	case *swaperr.ValidationError, *swaperr.AmountOutOfBoundsError, *swaperr.InvalidSecretError:
		return http.StatusBadRequest
	case *swaperr.RateLimitExceededError:
		return http.StatusTooManyRequests
	case *swaperr.NoRouteFoundError:
		return http.StatusUnprocessableEntity
	case *swaperr.OrderNotFoundError:
		return http.StatusNotFound
	case *swaperr.OrderTerminalError, *swaperr.AlreadyInitializedError,
		*swaperr.ConsensusNotReadyError, *swaperr.TimelockExpiredError,
		*swaperr.TimelockNotYetExpiredError:
		return http.StatusConflict
	case *swaperr.TimeoutError:
		return http.StatusGatewayTimeout
	case *swaperr.ProviderError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

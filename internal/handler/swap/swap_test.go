package swap

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triswaplabs/triswap-backend/internal/controller"
	"github.com/triswaplabs/triswap-backend/internal/model"
	"github.com/triswaplabs/triswap-backend/internal/swaperr"
	"github.com/triswaplabs/triswap-backend/internal/types/environments"
	"github.com/triswaplabs/triswap-backend/internal/utils/config"
	"github.com/triswaplabs/triswap-backend/internal/utils/logger"
)

// stubController returns canned results per method.
type stubController struct {
	order *model.SwapOrder
	err   error
}

func (s *stubController) CreateOrder(ctx context.Context, params controller.CreateOrderParams) (*model.SwapOrder, error) {
	return s.order, s.err
}
func (s *stubController) InitializeOnConsensusLayer(ctx context.Context, orderID string) (*model.SwapOrder, error) {
	return s.order, s.err
}
func (s *stubController) PollConsensus(ctx context.Context, orderID string) (*model.SwapOrder, error) {
	return s.order, s.err
}
func (s *stubController) Claim(ctx context.Context, orderID, secret string) (*model.SwapOrder, error) {
	return s.order, s.err
}
func (s *stubController) Refund(ctx context.Context, orderID string) (*model.SwapOrder, error) {
	return s.order, s.err
}
func (s *stubController) GetOrder(id string) (*model.SwapOrder, error) {
	return s.order, s.err
}
func (s *stubController) ListOrdersByUser(userAddress string) ([]model.SwapOrder, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []model.SwapOrder{*s.order}, nil
}

func newTestRouter(ctrl controller.IController) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := New(ctrl, logger.New(environments.Test), &config.AppConfig{})

	r := gin.New()
	r.POST("/orders", h.CreateOrder)
	r.GET("/orders", h.ListOrders)
	r.GET("/orders/:id", h.GetOrder)
	r.POST("/orders/:id/claim", h.ClaimOrder)
	r.POST("/orders/:id/refund", h.RefundOrder)
	return r
}

func validCreateBody() []byte {
	body, _ := json.Marshal(map[string]string{
		"user_address": "0xalice",
		"from_token":   "USDC",
		"to_token":     "SOL",
		"from_amount":  "100000000",
		"from_network": "ethereum",
		"to_network":   "solana",
		"secret_hash":  "2bb80d537b1da3e38bd30361aa855686bde0eacd7162fef6a25fe97bf527a25b",
	})
	return body
}

func TestCreateOrderHandler(t *testing.T) {
	order := &model.SwapOrder{ID: "ord-1", Status: model.SwapOrderStatusPending}
	r := newTestRouter(&stubController{order: order})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(validCreateBody()))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data model.SwapOrder `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ord-1", resp.Data.ID)
}

func TestCreateOrderHandlerBadJSON(t *testing.T) {
	r := newTestRouter(&stubController{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader([]byte(`{"user_address":`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderHandlerMissingFields(t *testing.T) {
	r := newTestRouter(&stubController{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader([]byte(`{"user_address":"0xalice"}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "rate limited", err: &swaperr.RateLimitExceededError{MinutesUntilReset: 30}, expected: http.StatusTooManyRequests},
		{name: "out of bounds", err: &swaperr.AmountOutOfBoundsError{MinUSD: 10, MaxUSD: 1000000, ActualUSD: 5}, expected: http.StatusBadRequest},
		{name: "no route", err: &swaperr.NoRouteFoundError{FromToken: "USDC", ToToken: "SOL"}, expected: http.StatusUnprocessableEntity},
		{name: "provider down", err: &swaperr.ProviderError{Chain: model.NetworkEthereum, Err: assert.AnError}, expected: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&stubController{err: tt.err})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(validCreateBody()))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expected, w.Code)
		})
	}
}

func TestGetOrderHandlerNotFound(t *testing.T) {
	r := newTestRouter(&stubController{err: &swaperr.OrderNotFoundError{OrderID: "missing"}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders/missing", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClaimHandlerConflict(t *testing.T) {
	r := newTestRouter(&stubController{err: &swaperr.ConsensusNotReadyError{Current: 1, Required: 2}})

	body, _ := json.Marshal(map[string]string{"secret": "deadbeef"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders/ord-1/claim", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRefundHandlerConflict(t *testing.T) {
	r := newTestRouter(&stubController{err: &swaperr.TimelockNotYetExpiredError{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders/ord-1/refund", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestListOrdersHandlerRequiresUser(t *testing.T) {
	r := newTestRouter(&stubController{order: &model.SwapOrder{ID: "ord-1"}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/orders?user=0xalice", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/triswaplabs/triswap-backend/internal/model"
)

// apiClient is a thin wrapper over the order endpoints.
type apiClient struct {
	baseURL string
	http    *http.Client
}

type apiEnvelope struct {
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *apiClient) CreateOrder(body map[string]string) (*model.SwapOrder, error) {
	return c.orderRequest(http.MethodPost, "/api/v1/orders", body)
}

func (c *apiClient) GetOrder(orderID string) (*model.SwapOrder, error) {
	return c.orderRequest(http.MethodGet, "/api/v1/orders/"+orderID, nil)
}

func (c *apiClient) InitializeOrder(orderID string) (*model.SwapOrder, error) {
	return c.orderRequest(http.MethodPost, "/api/v1/orders/"+orderID+"/consensus", nil)
}

func (c *apiClient) PollConsensus(orderID string) (*model.SwapOrder, error) {
	return c.orderRequest(http.MethodPost, "/api/v1/orders/"+orderID+"/poll", nil)
}

func (c *apiClient) ClaimOrder(orderID, secret string) (*model.SwapOrder, error) {
	return c.orderRequest(http.MethodPost, "/api/v1/orders/"+orderID+"/claim", map[string]string{
		"secret": secret,
	})
}

func (c *apiClient) RefundOrder(orderID string) (*model.SwapOrder, error) {
	return c.orderRequest(http.MethodPost, "/api/v1/orders/"+orderID+"/refund", nil)
}

func (c *apiClient) ListOrders(user string) ([]model.SwapOrder, error) {
	raw, err := c.do(http.MethodGet, "/api/v1/orders?user="+user, nil)
	if err != nil {
		return nil, err
	}

	var orders []model.SwapOrder
	if err := json.Unmarshal(raw, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

func (c *apiClient) orderRequest(method, path string, body map[string]string) (*model.SwapOrder, error) {
	raw, err := c.do(method, path, body)
	if err != nil {
		return nil, err
	}

	var order model.SwapOrder
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, fmt.Errorf("failed to decode order: %w", err)
	}
	return &order, nil
}

func (c *apiClient) do(method, path string, body map[string]string) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var envelope apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response (%s): %w", resp.Status, err)
	}

	if resp.StatusCode >= 400 {
		if envelope.Error != "" {
			return nil, fmt.Errorf("%s: %s", resp.Status, envelope.Error)
		}
		return nil, fmt.Errorf("request failed: %s", resp.Status)
	}

	return envelope.Data, nil
}

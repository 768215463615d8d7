package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hms-backend/hms-api/pkg/circuitbreaker"
)

// Gateway creates payment orders and hosted payment links. The gateway
// is opaque: the service only records the order id and link it returns.
type Gateway interface {
	CreateOrder(ctx context.Context, req *OrderRequest) (*Order, error)
}

type OrderRequest struct {
	ReferenceID string `json:"reference_id"`
	AmountCents int64  `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description,omitempty"`
}

type Order struct {
	OrderID     string `json:"order_id"`
	PaymentLink string `json:"payment_link"`
	Status      string `json:"status"`
}

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type Client struct {
	cfg Config
	c   *http.Client
	cb  *circuitbreaker.CircuitBreaker
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		cfg: cfg,
		c:   &http.Client{Timeout: cfg.Timeout},
		cb: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:        "payment-gateway",
			MaxFailures: 3,
			Timeout:     30 * time.Second,
		}),
	}
}

func (c *Client) CreateOrder(ctx context.Context, req *OrderRequest) (*Order, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order request: %w", err)
	}

	var order Order
	err = c.cb.Execute(func() error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/orders", bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("failed to build order request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

		resp, err := c.c.Do(httpReq)
		if err != nil {
			return fmt.Errorf("gateway request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
			payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
			return fmt.Errorf("gateway returned %d: %s", resp.StatusCode, payload)
		}

		if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
			return fmt.Errorf("failed to decode order response: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

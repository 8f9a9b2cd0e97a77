package poller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SergeyBogomolovv/mpesa-checkout/pkg/mpesa"
)

// APIClient ходит в HTTP API сервиса: запускает оплату и опрашивает ее статус
type APIClient struct {
	baseURL string
	client  *http.Client
}

func NewAPIClient(baseURL string, client *http.Client) *APIClient {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message"`
}

func (c *APIClient) Initiate(ctx context.Context, orderID, phoneNumber string) (mpesa.PushResponse, error) {
	body, err := json.Marshal(map[string]string{
		"orderId":     orderID,
		"phoneNumber": phoneNumber,
	})
	if err != nil {
		return mpesa.PushResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payments/mpesa/initiate", bytes.NewReader(body))
	if err != nil {
		return mpesa.PushResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var env envelope[mpesa.PushResponse]
	if err := c.do(req, &env); err != nil {
		return mpesa.PushResponse{}, fmt.Errorf("failed to initiate payment: %w", err)
	}
	return env.Data, nil
}

func (c *APIClient) QueryStatus(ctx context.Context, checkoutRequestID string) (mpesa.StatusResponse, error) {
	u := c.baseURL + "/payments/mpesa/status/" + url.PathEscape(checkoutRequestID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return mpesa.StatusResponse{}, err
	}

	var env envelope[mpesa.StatusResponse]
	if err := c.do(req, &env); err != nil {
		return mpesa.StatusResponse{}, fmt.Errorf("failed to query payment status: %w", err)
	}
	return env.Data, nil
}

func (c *APIClient) do(req *http.Request, env interface{ ok() (bool, string) }) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(env); err != nil {
		return fmt.Errorf("unexpected response (status %d): %w", resp.StatusCode, err)
	}
	if ok, msg := env.ok(); !ok || resp.StatusCode != http.StatusOK {
		return fmt.Errorf("api error (status %d): %s", resp.StatusCode, msg)
	}
	return nil
}

func (e *envelope[T]) ok() (bool, string) {
	return e.Success, e.Message
}

// Package wfmarket provides access to the warframe.market v1 API.
// It owns the transport concerns the rest of the program never sees:
// request headers, status-code-to-error mapping, and schema-checked
// decoding of the orders payload into typed domain values.
package wfmarket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/wfm-tools/warmac/internal/models"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://api.warframe.market/v1"

const userAgent = "warmac/0.1 (+https://github.com/wfm-tools/warmac)"

// Client provides access to the warframe.market API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new warframe.market client
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchOrders retrieves the open orders for an item on the given platform
// and returns the item's classification together with the raw order list.
// item must already be normalized (lowercase, underscores). The request is
// a single attempt; retries and backoff are deliberately out of scope.
func (c *Client) FetchOrders(ctx context.Context, item, platform string) (*models.ItemMetadata, []models.Order, string, error) {
	url := fmt.Sprintf("%s/items/%s/orders?include=item", c.baseURL, item)
	requestID := uuid.New().String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, requestID, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "en")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Platform", platform)
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, requestID, fmt.Errorf("fetch orders: %w", err)
	}
	defer resp.Body.Close()

	if err := statusToError(resp.StatusCode); err != nil {
		return nil, nil, requestID, err
	}

	var payload ordersPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, nil, requestID, fmt.Errorf("decode orders payload: %w", err)
	}

	meta, orders, err := extract(&payload)
	if err != nil {
		return nil, nil, requestID, err
	}
	return meta, orders, requestID, nil
}

func statusToError(code int) error {
	switch code {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrItemNotFound
	case http.StatusMethodNotAllowed:
		return ErrMethodNotAllowed
	case http.StatusInternalServerError:
		return ErrServer
	default:
		return &StatusError{Code: code}
	}
}

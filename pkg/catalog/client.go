// Package catalog is the HTTP client for the external product catalog
// (service-mall). The local product table only mirrors its rows; the catalog
// stays the source of truth for price, name and selling status.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	// ErrInvalidRequest is returned when the client configuration is incomplete
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrProductNotFound is returned when the catalog has no such product
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrCatalogUnavailable is returned on any other non-2xx catalog response
	ErrCatalogUnavailable = errors.New("catalog service unavailable")

	// ErrNetworkError is returned when there's a network communication error
	ErrNetworkError = errors.New("network error")
)

// Selling statuses as the catalog reports them
const (
	SellingStatusOpen    = "OPEN"
	SellingStatusStop    = "STOP"
	SellingStatusSoldout = "SOLDOUT"
	SellingStatusError   = "ERROR"
)

// Product is the catalog's view of a product
type Product struct {
	ID            uint    `json:"id"`
	BrandName     string  `json:"brandName"`
	ProductName   string  `json:"productName"`
	ProductCode   string  `json:"productCode"`
	DiscountRate  float64 `json:"discountRate"`
	SellingStatus string  `json:"sellingStatus"`
	Price         int64   `json:"price"`
	SalePrice     int64   `json:"salePrice"`
}

// Config represents the configuration for the catalog client
type Config struct {
	// BaseURL is the catalog service base URL
	BaseURL string
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrInvalidRequest
	}
	return nil
}

// Client represents a catalog service client
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new catalog client with the given configuration
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// GetProduct fetches the current catalog state of a product
func (c *Client) GetProduct(ctx context.Context, productID uint) (*Product, error) {
	url := fmt.Sprintf("%s/%d", c.config.BaseURL, productID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: productId %d", ErrProductNotFound, productID)
		}
		return nil, fmt.Errorf("%w: status %d, body: %s", ErrCatalogUnavailable, resp.StatusCode, string(body))
	}

	var product Product
	if err := json.Unmarshal(body, &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product response: %w", err)
	}

	return &product, nil
}

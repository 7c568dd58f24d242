package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Erhan1706/microservice-ordering-system/internal/domain"
	"github.com/Erhan1706/microservice-ordering-system/internal/telemetry"
)

const defaultTimeout = 5 * time.Second

// Client talks to the customer and store microservices over HTTP.
// It implements service.StoreVerifier and service.AllergyProvider.
type Client struct {
	http        *http.Client
	customerURL string
	storeURL    string
	logger      *slog.Logger
}

// Config contains the base URLs of the peer services.
type Config struct {
	CustomerURL string
	StoreURL    string
	Logger      *slog.Logger // Optional: defaults to slog.Default()
	Timeout     time.Duration
}

// NewClient creates an HTTP client for the peer services.
func NewClient(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http:        &http.Client{Timeout: timeout},
		customerURL: cfg.CustomerURL,
		storeURL:    cfg.StoreURL,
		logger:      logger,
	}
}

// VerifyStoreID asks the store service whether the given store exists.
func (c *Client) VerifyStoreID(ctx context.Context, id int) (bool, error) {
	url := fmt.Sprintf("%s/stores/%d/exists", c.storeURL, id)

	var exists bool
	if err := c.getJSON(ctx, "store", "verify_store_id", url, "", &exists); err != nil {
		c.logger.Error("store verification failed", "store_id", id, "error", err)
		return false, domain.WrapError(err, domain.EINTERNAL, "rest.verifyStoreID", "store service unavailable")
	}
	return exists, nil
}

// Allergies fetches the customer's allergy profile (ingredient IDs) from the
// customer service. The caller's bearer token identifies the customer.
func (c *Client) Allergies(ctx context.Context, token string) ([]int64, error) {
	url := c.customerURL + "/customers/allergies"

	var ids []int64
	if err := c.getJSON(ctx, "customer", "allergies", url, token, &ids); err != nil {
		c.logger.Error("allergy lookup failed", "error", err)
		return nil, domain.WrapError(err, domain.EINTERNAL, "rest.allergies", "customer service unavailable")
	}
	return ids, nil
}

// getJSON performs an authenticated GET and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, service, operation, url, token string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if telemetry.Business != nil {
		telemetry.Business.PeerCallLatency.WithLabelValues(service, operation).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

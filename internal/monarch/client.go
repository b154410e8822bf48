// =============================================================================
// Monarch Importer - Monarch Directory Client
// =============================================================================
//
// HTTP client for the Monarch customer directory service. The importers use
// it to resolve a Monarch customer identifier from a customer name before
// encoding job records.
//
// API CONTRACT:
//   GET /customers/search?query=<name>   -> JSON array of customer objects
//   GET /customers/<id>                  -> JSON array with one customer
//   Both endpoints require HTTP Basic authentication.
//
// A lookup failure (no match, empty result, transport error) is reported to
// the caller as an error; the caller records a RejectedRecord and continues.
// One failed lookup never aborts a batch.
//
// =============================================================================

package monarch

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrNotFound is returned when the directory has no customer matching the
// query. Callers translate it into the canonical rejection reason.
var ErrNotFound = errors.New("customer not found")

// Customer is one entry in the Monarch customer directory.
type Customer struct {
	CustomerID string `json:"customer_id"`
	Name       string `json:"customer_name,omitempty"`
}

// Config holds the connection settings for the directory service.
type Config struct {
	BaseURL  string
	Username string
	Password string

	// Timeout bounds each lookup call. The historical importer had no
	// timeout at all; a stalled call stalled the batch. Default 30s.
	Timeout time.Duration
}

// Client is the Monarch directory client. A Client is safe for sequential
// use by one importer run; create one per run.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a directory client from the given configuration.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Resolve looks up the Monarch customer id for a customer name. The first
// matching directory entry wins and its id is truncated to 8 characters.
// Returns ErrNotFound when the directory has no match, or a wrapped
// transport/HTTP error otherwise.
func (c *Client) Resolve(customerName string) (string, error) {
	customers, err := c.Search(customerName)
	if err != nil {
		return "", err
	}
	if len(customers) == 0 || customers[0].CustomerID == "" {
		return "", ErrNotFound
	}

	id := customers[0].CustomerID
	if len(id) > 8 {
		id = id[:8]
	}
	return id, nil
}

// Search queries the directory by customer name.
func (c *Client) Search(query string) ([]Customer, error) {
	endpoint := fmt.Sprintf("%s/customers/search?query=%s", c.config.BaseURL, url.QueryEscape(query))
	return c.get(endpoint)
}

// GetByID fetches a single customer record by its Monarch identifier.
func (c *Client) GetByID(id string) (*Customer, error) {
	endpoint := fmt.Sprintf("%s/customers/%s", c.config.BaseURL, url.PathEscape(id))
	customers, err := c.get(endpoint)
	if err != nil {
		return nil, err
	}
	if len(customers) == 0 {
		return nil, ErrNotFound
	}
	return &customers[0], nil
}

// get issues an authenticated GET and decodes the JSON array response.
func (c *Client) get(endpoint string) ([]Customer, error) {
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.SetBasicAuth(c.config.Username, c.config.Password)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directory returned HTTP %d: %s", resp.StatusCode, string(body))
	}

	var customers []Customer
	if err := json.Unmarshal(body, &customers); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return customers, nil
}

package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/claude/fitclub/internal/catalog"
)

// ErrUnauthorized is returned when the server rejects the API key. Retrying
// cannot help.
var ErrUnauthorized = errors.New("server rejected the API key")

// Client sends catalogs to the FitClub server over HTTP.
type Client struct {
	serverURL  string
	apiKey     string
	httpClient *http.Client
	backoff    time.Duration
}

// NewClient creates a new HTTP client for the FitClub server.
func NewClient(serverURL, apiKey string) *Client {
	return &Client{
		serverURL: strings.TrimRight(serverURL, "/"),
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		backoff: time.Second,
	}
}

// ServerURL returns the base URL catalogs are sent to.
func (c *Client) ServerURL() string {
	return c.serverURL
}

func contentType(f catalog.Format) string {
	if f == catalog.FormatCSV {
		return "text/csv"
	}
	return "application/json"
}

// SendCatalog POSTs a catalog to the server's catalog endpoint.
// Retries up to 3 times with exponential backoff on failure.
func (c *Client) SendCatalog(ctx context.Context, data []byte, format catalog.Format) (*catalog.Stats, error) {
	var lastErr error
	for attempt := range 3 {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.backoff << uint(attempt-1)):
			}
		}

		stats, err := c.post(ctx, data, format)
		if err == nil {
			return stats, nil
		}
		if errors.Is(err, ErrUnauthorized) {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("after 3 attempts: %w", lastErr)
}

func (c *Client) post(ctx context.Context, data []byte, format catalog.Format) (*catalog.Stats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/api/v1/catalog", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", contentType(format))
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%w (status %d)", ErrUnauthorized, resp.StatusCode)
	default:
		return nil, fmt.Errorf("catalog upload failed (status %d): %s", resp.StatusCode, body)
	}

	var stats catalog.Stats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("decoding upload stats: %w", err)
	}
	return &stats, nil
}

// Package source fetches the raw tool list from the backend data API and
// exposes it to the catalog as a time-cached, fail-soft snapshot.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/toolhub-ai/toolhub/pkg/models"
)

// ErrNoCredentials is returned when the Supabase URL or API key is not
// configured. The provider treats it like any other upstream failure.
var ErrNoCredentials = errors.New("source: supabase credentials not configured")

// toolsPath is the PostgREST path of the public tools view.
const toolsPath = "/rest/v1/public_tools"

// Client fetches raw tool records from a Supabase PostgREST endpoint.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// NewClient creates a Supabase client. baseURL is the project URL without a
// trailing slash; apiKey is the anon (read-only) key.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// FetchTools retrieves the full raw tool list. Any transport error, missing
// credentials, or non-2xx status yields an error; callers decide how to
// degrade.
func (c *Client) FetchTools(ctx context.Context) ([]models.RawTool, error) {
	if c.baseURL == "" || c.apiKey == "" {
		return nil, ErrNoCredentials
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+toolsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("build tools request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch tools: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch tools: unexpected status %d", resp.StatusCode)
	}

	var raws []models.RawTool
	if err := json.NewDecoder(resp.Body).Decode(&raws); err != nil {
		return nil, fmt.Errorf("decode tools: %w", err)
	}
	return raws, nil
}

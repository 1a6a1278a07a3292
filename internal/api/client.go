package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"time"

	"sitefleet.dev/cli/internal/fleet"
	"sitefleet.dev/cli/internal/logging"
)

// Client handles HTTP communication with the site-management API.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
	logger  *logging.Logger
}

// RemoteError reports an API call that completed over the wire but did
// not succeed: a non-2xx status, or a well-formed response carrying a
// failure payload.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("API error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("API error: %s", e.Message)
}

// NewClient creates an API client. The timeout bounds every request.
func NewClient(baseURL, token string, timeout time.Duration, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.New(nil)
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// ListSites fetches the full directory of manageable sites.
func (c *Client) ListSites(ctx context.Context) ([]fleet.Site, error) {
	var response struct {
		Sites []fleet.Site `json:"sites"`
	}
	if err := c.get(ctx, "/rest/v1.1/me/sites", &response); err != nil {
		return nil, err
	}
	return response.Sites, nil
}

// SiteModules fetches the module set of one site, sorted by slug.
func (c *Client) SiteModules(ctx context.Context, siteID int64) ([]fleet.Module, error) {
	var response struct {
		Modules []fleet.Module `json:"modules"`
	}
	path := fmt.Sprintf("/rest/v1.1/sites/%d/modules", siteID)
	if err := c.get(ctx, path, &response); err != nil {
		return nil, err
	}
	sort.Slice(response.Modules, func(i, j int) bool {
		return response.Modules[i].Slug < response.Modules[j].Slug
	})
	return response.Modules, nil
}

// UpdateModule turns one module on or off. A response that does not
// acknowledge the update is a RemoteError, distinct from transport
// failures.
func (c *Client) UpdateModule(ctx context.Context, siteID int64, slug string, active bool) error {
	path := fmt.Sprintf("/rest/v1.1/sites/%d/modules/%s", siteID, slug)
	body := map[string]bool{"active": active}

	var response struct {
		Updated bool `json:"updated"`
	}
	if err := c.post(ctx, path, body, &response); err != nil {
		return err
	}
	if !response.Updated {
		return &RemoteError{Message: fmt.Sprintf("module %s was not updated", slug)}
	}
	return nil
}

// BatchPlugins fetches the installed plugins of every given site in one
// request. Per-site failures are reported in the result map, not as an
// error; only transport and envelope problems fail the call.
func (c *Client) BatchPlugins(ctx context.Context, siteIDs []int64) (map[int64]PluginsResult, error) {
	body := map[string][]int64{"sites": siteIDs}

	var response struct {
		Results map[string]json.RawMessage `json:"results"`
	}
	if err := c.post(ctx, "/rest/v1.1/sites/batch/plugins", body, &response); err != nil {
		return nil, err
	}

	results := make(map[int64]PluginsResult, len(response.Results))
	for key, raw := range response.Results {
		siteID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("unexpected site key %q in batch response", key)
		}
		results[siteID] = discriminate(raw)
	}
	return results, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(payload), out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out interface{}) error {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debugf("%s %s", method, url)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &RemoteError{Status: resp.StatusCode, Message: string(bytes.TrimSpace(msg))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

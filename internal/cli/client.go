package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hyperjump/darkseeker/internal/models"
	"github.com/hyperjump/darkseeker/internal/search"
)

// Client calls a running DarkSeeker server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for the server at baseURL (e.g. http://localhost:3000).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Search runs query through GET /api/search.
func (c *Client) Search(ctx context.Context, query *models.Query) (*models.ResultPage, error) {
	target := c.baseURL + "/api/search"
	if params := search.EncodeParams(query).Encode(); params != "" {
		target += "?" + params
	}
	var page models.ResultPage
	if err := c.get(ctx, target, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Tags fetches GET /api/tags.
func (c *Client) Tags(ctx context.Context) ([]string, error) {
	var tags []string
	if err := c.get(ctx, c.baseURL+"/api/tags", &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// Stats fetches GET /api/stats.
func (c *Client) Stats(ctx context.Context) (*search.Stats, error) {
	var stats search.Stats
	if err := c.get(ctx, c.baseURL+"/api/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) get(ctx context.Context, target string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, errorBody(resp))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorBody returns the trimmed response body, or the status line when the body is
// empty or cannot be read.
func errorBody(resp *http.Response) string {
	b, err := io.ReadAll(resp.Body)
	if msg := strings.TrimSpace(string(b)); err == nil && msg != "" {
		return msg
	}
	return resp.Status
}

// Package suggest calls the external checklist-suggestion service. The
// service is an opaque collaborator: it takes a ticket title/description and
// answers with a plain list of strings. No retries; a failure surfaces as an
// upstream error and nothing is persisted.
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"taskboard/internal/config"
)

// Suggester produces checklist item texts for a ticket.
type Suggester interface {
	SuggestTodos(ctx context.Context, title, description, prompt string) ([]string, error)
}

// Client is the HTTP implementation of Suggester.
type Client struct {
	endpoint string
	http     *http.Client
}

func NewClient(cfg *config.Config) *Client {
	timeout := time.Duration(cfg.Suggest.TimeoutSec) * time.Second
	return &Client{
		endpoint: cfg.Suggest.Endpoint,
		http: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     2 * time.Minute,
				MaxIdleConnsPerHost: 2,
			},
			Timeout: timeout,
		},
	}
}

// Enabled reports whether an endpoint is configured.
func (c *Client) Enabled() bool {
	return c.endpoint != ""
}

type suggestRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Prompt      string `json:"prompt,omitempty"`
}

type suggestResponse struct {
	Items []string `json:"items"`
}

func (c *Client) SuggestTodos(ctx context.Context, title, description, prompt string) ([]string, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("suggestion endpoint not configured")
	}

	body, err := json.Marshal(suggestRequest{Title: title, Description: description, Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("failed to encode suggestion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build suggestion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("suggestion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("suggestion service returned %d", resp.StatusCode)
	}

	var out suggestResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode suggestion response: %w", err)
	}
	return out.Items, nil
}

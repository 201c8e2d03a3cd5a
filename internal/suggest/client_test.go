package suggest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/config"
)

func newTestClient(endpoint string) *Client {
	cfg := config.New()
	cfg.Suggest.Endpoint = endpoint
	cfg.Suggest.TimeoutSec = 5
	return NewClient(cfg)
}

func TestSuggestTodos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Prompt      string `json:"prompt"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Ship landing page", req.Title)
		assert.Equal(t, "keep it light", req.Prompt)

		json.NewEncoder(w).Encode(map[string][]string{"items": {"wireframes", "copy"}})
	}))
	defer srv.Close()

	items, err := newTestClient(srv.URL).SuggestTodos(context.Background(), "Ship landing page", "desc", "keep it light")
	require.NoError(t, err)
	assert.Equal(t, []string{"wireframes", "copy"}, items)
}

func TestSuggestTodosNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).SuggestTodos(context.Background(), "t", "", "")
	assert.Error(t, err)
}

func TestSuggestTodosDisabled(t *testing.T) {
	c := newTestClient("")
	assert.False(t, c.Enabled())

	_, err := c.SuggestTodos(context.Background(), "t", "", "")
	assert.Error(t, err)
}

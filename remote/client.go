package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tb-digital/formrelay/domain"
)

var _ domain.RemoteStore = (*Client)(nil)

// Client delivers rows to a PostgREST-style REST endpoint. Each insert is a single
// POST to /rest/v1/{table} authenticated with the configured API key.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a REST client for the given endpoint. The base URL should not
// include the /rest/v1 prefix.
func NewClient(baseURL string, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Insert delivers one row to the named table. Non-2xx responses and transport errors
// are reported as *domain.RemoteError; the caller's local copy stays pending.
func (client *Client) Insert(ctx context.Context, table string, row map[string]any) error {
	body, err := json.Marshal(row)
	if err != nil {
		return &domain.RemoteError{Table: table, Err: fmt.Errorf("encoding row: %w", err)}
	}

	url := fmt.Sprintf("%s/rest/v1/%s", client.baseURL, table)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return &domain.RemoteError{Table: table, Err: fmt.Errorf("building request: %w", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", client.apiKey)
	req.Header.Set("Authorization", "Bearer "+client.apiKey)
	req.Header.Set("Prefer", "return=minimal")

	resp, err := client.httpClient.Do(req)
	if err != nil {
		return &domain.RemoteError{Table: table, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &domain.RemoteError{
			Table:      table,
			StatusCode: resp.StatusCode,
			Detail:     strings.TrimSpace(string(detail)),
		}
	}

	return nil
}

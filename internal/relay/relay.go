// Package relay fetches third-party URLs through a public CORS relay that
// returns the upstream body inside a JSON envelope.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

var (
	// ErrStatus is returned when the relay or the upstream answers non-2xx.
	ErrStatus = errors.New("relay: unexpected status")
	// ErrEnvelope is returned when the relay body is not a valid envelope.
	ErrEnvelope = errors.New("relay: malformed envelope")
)

// maxBody caps how much of a relay response is read.
const maxBody = 10 << 20

// Client wraps target URLs through the relay.
type Client struct {
	baseURL    string
	httpClient HTTPClient
}

// New creates a relay client. httpClient defaults to http.DefaultClient.
func New(baseURL string, httpClient HTTPClient) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// envelope is the relay wrapper. Contents holds the upstream body as a string.
type envelope struct {
	Contents *string `json:"contents"`
	Status   struct {
		URL      string `json:"url"`
		HTTPCode int    `json:"http_code"`
	} `json:"status"`
}

// Wrap returns the relay URL that fetches target.
func (c *Client) Wrap(target string) string {
	return c.baseURL + "?url=" + url.QueryEscape(target)
}

// Get fetches target through the relay and returns the unwrapped upstream body.
func (c *Client) Get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Wrap(target), nil)
	if err != nil {
		return nil, fmt.Errorf("build relay request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("relay request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("relay read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: relay %d", ErrStatus, resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnvelope, err)
	}
	if code := env.Status.HTTPCode; code != 0 && (code < 200 || code > 299) {
		return nil, fmt.Errorf("%w: upstream %d", ErrStatus, code)
	}
	if env.Contents == nil {
		return nil, fmt.Errorf("%w: missing contents", ErrEnvelope)
	}
	return []byte(*env.Contents), nil
}

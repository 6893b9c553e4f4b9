// Package assistant talks to a Gemini-style generateContent endpoint: free
// text questions, and chart screenshots answered with a six-section analysis.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"ChartAI/internal/model"
)

// DefaultEndpoint is the generateContent URL used when none is configured.
const DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent"

const (
	defaultTextTokens  = 300
	defaultImageTokens = 1024
	selfTestTokens     = 10
	maxErrorBody       = 4 << 10
)

// Client is a generative-language client. The API key can be replaced while
// the client is in use.
type Client struct {
	// endpoint is the generateContent URL without the key parameter.
	endpoint string
	// httpClient is the HTTP client.
	httpClient HTTPClient
	// textTokens bounds the reply length on the text path.
	textTokens int
	// imageTokens bounds the reply length on the image path.
	imageTokens int

	mu     sync.RWMutex
	apiKey string
}

// ClientOption is a configuration option for the Client.
type ClientOption func(*Client)

// WithEndpoint sets the generateContent URL.
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithMaxTokens sets the output token ceilings for the text and image paths.
// Non-positive values keep the defaults.
func WithMaxTokens(text, image int) ClientOption {
	return func(c *Client) {
		if text > 0 {
			c.textTokens = text
		}
		if image > 0 {
			c.imageTokens = image
		}
	}
}

// New creates a Client authenticated with apiKey.
func New(apiKey string, options ...ClientOption) *Client {
	c := &Client{
		endpoint:    DefaultEndpoint,
		httpClient:  http.DefaultClient,
		textTokens:  defaultTextTokens,
		imageTokens: defaultImageTokens,
		apiKey:      strings.TrimSpace(apiKey),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// SetAPIKey replaces the key used by subsequent requests.
func (c *Client) SetAPIKey(key string) {
	c.mu.Lock()
	c.apiKey = strings.TrimSpace(key)
	c.mu.Unlock()
}

// APIKey returns the current key.
func (c *Client) APIKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiKey
}

// HasAPIKey reports whether a key is configured.
func (c *Client) HasAPIKey() bool { return c.APIKey() != "" }

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generationConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (r *generateResponse) text() string {
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return ""
	}
	return strings.TrimSpace(r.Candidates[0].Content.Parts[0].Text)
}

// Ask answers a free-text question using the educational template.
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	resp, err := c.generate(ctx, c.APIKey(), []part{{Text: textPrompt(question)}}, c.textTokens)
	if err != nil {
		return "", err
	}
	text := resp.text()
	if text == "" {
		return "", fmt.Errorf("%w: empty reply", ErrUnknown)
	}
	return text, nil
}

// AnalyzeImage sends a chart screenshot (PNG or JPEG) with the analysis
// instructions and returns the extracted sections.
func (c *Client) AnalyzeImage(ctx context.Context, raw []byte) (*model.Analysis, error) {
	img, err := PrepareImage(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknown, err)
	}
	parts := []part{
		{Text: analysisPrompt},
		{InlineData: &inlineData{MimeType: "image/jpeg", Data: img.Data}},
	}
	resp, err := c.generate(ctx, c.APIKey(), parts, c.imageTokens)
	if err != nil {
		return nil, err
	}
	text := resp.text()
	if text == "" {
		return nil, fmt.Errorf("%w: empty reply", ErrUnknown)
	}
	analysis := ParseAnalysis(text)
	return &analysis, nil
}

// SelfTest sends a trivial prompt with the current key and succeeds when the
// endpoint returns at least one candidate.
func (c *Client) SelfTest(ctx context.Context) error {
	resp, err := c.generate(ctx, c.APIKey(), []part{{Text: selfTestPrompt}}, selfTestTokens)
	if err != nil {
		return err
	}
	if len(resp.Candidates) == 0 {
		return fmt.Errorf("%w: no candidates", ErrUnknown)
	}
	return nil
}

// newRequest builds the generateContent request for key.
func (c *Client) newRequest(ctx context.Context, key string, parts []part, maxTokens int) (*http.Request, error) {
	body, err := json.Marshal(generateRequest{
		Contents:         []content{{Parts: parts}},
		GenerationConfig: generationConfig{MaxOutputTokens: maxTokens},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	endpoint := c.endpoint + "?key=" + url.QueryEscape(key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) generate(ctx context.Context, key string, parts []part, maxTokens int) (*generateResponse, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: no api key configured", ErrAuth)
	}
	req, err := c.newRequest(ctx, key, parts, maxTokens)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknown, err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: status %d: %s", statusError(res.StatusCode), res.StatusCode, bytes.TrimSpace(detail))
	}

	var out generateResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnknown, err)
	}
	return &out, nil
}

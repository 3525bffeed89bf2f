package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/lojinha/storefront/internal/config"
)

// Client talks to the remote storefront backend. It owns no business
// logic: it forwards requests with the caller's bearer credential and
// hands back the backend's status and body.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new backend API client
func NewClient(cfg config.UpstreamConfig, logger *zap.Logger) *Client {
	// Normalize base URL - remove trailing slashes
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// Response is a backend reply: status, raw body and headers, relayed as-is
type Response struct {
	Status int
	Body   []byte
	Header http.Header
}

// Do sends one request to the backend. A non-2xx status is not an error
// here; only transport and encoding failures are. Callers that need typed
// results use decode, callers that relay pass the Response through.
func (c *Client) Do(ctx context.Context, method, path, token string, query url.Values, body interface{}) (*Response, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+strings.TrimPrefix(token, "Bearer "))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &Response{
		Status: resp.StatusCode,
		Body:   respBody,
		Header: resp.Header,
	}, nil
}

// NormalizedBody returns the response body as JSON. A body that is not
// valid JSON is wrapped as {"message": <raw text or status text>} instead
// of failing the relay.
func (r *Response) NormalizedBody() []byte {
	trimmed := bytes.TrimSpace(r.Body)
	if len(trimmed) == 0 {
		return []byte("{}")
	}
	if json.Valid(trimmed) {
		return trimmed
	}

	msg := strings.TrimSpace(string(trimmed))
	if msg == "" {
		msg = http.StatusText(r.Status)
	}
	fallback, _ := json.Marshal(map[string]string{"message": msg})
	return fallback
}

// decode unmarshals a successful response into out, or turns a failure
// response into an *APIError.
func (c *Client) decode(resp *Response, out interface{}) error {
	if resp.Status < 200 || resp.Status > 299 {
		return ParseError(resp.Status, resp.Body)
	}
	if out == nil || len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

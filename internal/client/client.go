package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// APIError is a non-2xx response surfaced with the server's own message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// Client is the low-level HTTP client shared by every resource. It holds no
// cache and performs no retries; every call is a fresh request.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the `{success, data, message, error}` wire shape. Extra
// top-level siblings are ignored.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// do performs one request and decodes the response envelope. On a non-2xx
// status the server's error field wins, then message, then a generic
// fallback; an unparseable body becomes an "invalid server response" error
// carrying the status code.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any) (*envelope, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}

	var env envelope
	parseErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if parseErr != nil {
			return nil, &APIError{
				Status:  resp.StatusCode,
				Message: fmt.Sprintf("invalid server response (status %d)", resp.StatusCode),
			}
		}
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		if msg == "" {
			msg = fmt.Sprintf("request failed (status %d)", resp.StatusCode)
		}
		return nil, &APIError{Status: resp.StatusCode, Message: msg}
	}

	if parseErr != nil {
		return nil, &APIError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("invalid server response (status %d)", resp.StatusCode),
		}
	}
	if env.Data == nil {
		env.Data = raw
	}
	return &env, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (*envelope, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

func (c *Client) post(ctx context.Context, path string, payload any) (*envelope, error) {
	return c.do(ctx, http.MethodPost, path, nil, payload)
}

func (c *Client) put(ctx context.Context, path string, payload any) (*envelope, error) {
	return c.do(ctx, http.MethodPut, path, nil, payload)
}

func (c *Client) delete(ctx context.Context, path string) (*envelope, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

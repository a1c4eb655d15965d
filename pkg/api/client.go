// Package api is the typed client for the assistant backend's JSON API.
// Every endpoint lives under /api/<name>; requests with a payload are POSTed
// as JSON and requests without one are plain GETs.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/docker/gemini-console/pkg/httpclient"
)

// Client talks to one backend instance.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// NewClient creates a client for the backend rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host are required", baseURL)
	}

	c := &Client{
		baseURL:    parsed,
		httpClient: httpclient.NewHTTPClient(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the backend root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Do calls /api/<endpoint>. A nil payload means GET, anything else is sent
// as a JSON POST body. Non-2xx responses come back as *RequestError. On
// success the body is decoded into out when out is non-nil.
func (c *Client) Do(ctx context.Context, endpoint string, payload, out any) error {
	method := http.MethodGet
	var body io.Reader
	if payload != nil {
		method = http.MethodPost
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshaling %s request: %w", endpoint, err)
		}
		body = bytes.NewReader(data)
	}

	u := *c.baseURL
	u.Path = path.Join("/", u.Path, "api", endpoint)

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("creating %s request: %w", endpoint, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("API request failed", "method", method, "endpoint", endpoint, "error", err)
		return fmt.Errorf("%s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s response: %w", endpoint, err)
	}

	slog.Debug("API request",
		"method", method,
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
			Body:       string(respBody),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", endpoint, err)
	}
	return nil
}

// call runs Do and then applies the envelope rules shared by every endpoint:
// status must be "success" and required fields must be present.
func (c *Client) call(ctx context.Context, endpoint string, payload any, out response) error {
	if err := c.Do(ctx, endpoint, payload, out); err != nil {
		return err
	}
	env := out.envelope()
	if env.Status != StatusSuccess {
		return &StatusError{Endpoint: endpoint, Status: env.Status, Message: env.Message}
	}
	if field := out.missing(); field != "" {
		return &MissingFieldError{Endpoint: endpoint, Field: field}
	}
	return nil
}

// statusText returns the reason phrase without the numeric prefix that
// net/http puts in Response.Status.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, fmt.Sprintf("%d", resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shareit/internal/config"
	"shareit/internal/models"
)

const maxUpstreamBody = 32 << 20

// Client forwards validated requests to the core server.
type Client struct {
	baseURL     string
	apiKey      string
	apiExtra    string
	keyHeader   string
	extraHeader string
	retry      RetryPolicy
	httpClient *http.Client
}

// Response is an upstream reply relayed to the caller as-is.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// NewClient authenticates with the gateway's key under the header names the
// server's auth section expects.
func NewClient(cfg config.GatewayConfig, auth config.APIAuthConfig) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.ServerURL, "/"),
		apiKey:      cfg.APIKey,
		apiExtra:    cfg.APIExtra,
		keyHeader:   auth.KeyHeader(),
		extraHeader: auth.ExtraHeader(),
		retry:       defaultRetryPolicy(cfg.MaxRetries),
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// Forward replays method+path+query against the server on behalf of userID.
// userID may be empty for routes that do not need an actor. GETs are retried
// per the retry policy; writes are sent exactly once.
func (c *Client) Forward(ctx context.Context, method, path, rawQuery, userID string, body []byte) (*Response, error) {
	endpoint := c.baseURL + path
	if rawQuery != "" {
		endpoint += "?" + rawQuery
	}

	for attempt := 1; ; attempt++ {
		resp, err := c.send(ctx, method, endpoint, userID, body)
		if attempt > c.retry.MaxRetries || !retryable(method, resp, err) {
			if err != nil {
				return nil, fmt.Errorf("upstream %s %s: %w", method, path, err)
			}
			return resp, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.retry.NextDelay(attempt)):
		}
	}
}

func (c *Client) send(ctx context.Context, method, endpoint, userID string, body []byte) (*Response, error) {
	var rdr io.Reader
	if len(body) > 0 {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, rdr)
	if err != nil {
		return nil, fmt.Errorf("failed to build upstream request: %w", err)
	}
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set(models.HeaderUserID, userID)
	}
	if id := requestIDFrom(ctx); id != "" {
		req.Header.Set(headerRequestID, id)
	}
	c.addHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream response: %w", err)
	}
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

func (c *Client) addHeaders(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set(c.keyHeader, c.apiKey)
	}
	if c.apiExtra != "" {
		req.Header.Set(c.extraHeader, c.apiExtra)
	}
}

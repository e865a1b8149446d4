// Package api is the request gateway to the NutriAgent backend.
//
// Every call goes through Client.do, which attaches the session's bearer
// credential when one exists. There is no retry layer: failures are
// returned to the caller as they happen.
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
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultBaseURL = "http://localhost:8000"
	DefaultTimeout = 60 * time.Second
	userAgent      = "nutri-cli/1.0"
)

// Credentials is the read side of the session the gateway needs.
type Credentials interface {
	Credential(ctx context.Context) (string, bool, error)
}

// Exchange describes one finished request, for journaling.
type Exchange struct {
	RequestID string
	Method    string
	Path      string
	Status    int
	Duration  time.Duration
	Err       error
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Session    Credentials
	Logger     *slog.Logger
	// Observe, when set, is called after every request.
	Observe func(ctx context.Context, ex Exchange)
}

// New builds a client with a fixed base address. timeout <= 0 disables the
// per-request deadline.
func New(baseURL string, sess Credentials, timeout time.Duration) *Client {
	hc := &http.Client{}
	if timeout > 0 {
		hc.Timeout = timeout
	}
	return &Client{BaseURL: baseURL, HTTPClient: hc, Session: sess}
}

func (c *Client) baseURL() string {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return base
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return &http.Client{Timeout: DefaultTimeout}
	}
	return c.HTTPClient
}

func (c *Client) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.Logger
}

// authorize is the pre-send hook: it reads the session and, when a
// credential is present, sets the bearer header.
func (c *Client) authorize(ctx context.Context, req *http.Request) error {
	if c.Session == nil {
		return nil
	}
	token, ok, err := c.Session.Credential(ctx)
	if err != nil {
		return err
	}
	if ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var (
		reader      io.Reader
		contentType string
	)
	switch b := body.(type) {
	case nil:
	case url.Values:
		reader = strings.NewReader(b.Encode())
		contentType = "application/x-www-form-urlencoded"
	default:
		payload, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("marshal %s %s payload: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL()+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create %s %s request: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if err := c.authorize(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// doRaw performs the request and returns the body of a 2xx response.
func (c *Client) doRaw(ctx context.Context, method, path string, body any) ([]byte, error) {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	ex := Exchange{RequestID: req.Header.Get("X-Request-ID"), Method: method, Path: path}
	start := time.Now()

	out, status, err := c.execute(req)
	ex.Status = status
	ex.Duration = time.Since(start)
	ex.Err = err

	log := c.logger()
	if err != nil {
		log.DebugContext(ctx, "api: request failed", "method", method, "path", path, "status", status, "duration", ex.Duration, "request_id", ex.RequestID, "error", err)
	} else {
		log.DebugContext(ctx, "api: request", "method", method, "path", path, "status", status, "duration", ex.Duration, "request_id", ex.RequestID)
	}
	if c.Observe != nil {
		c.Observe(ctx, ex)
	}
	return out, err
}

func (c *Client) execute(req *http.Request) ([]byte, int, error) {
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("execute %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read %s %s response: %w", req.Method, req.URL.Path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return body, resp.StatusCode, newError(req.Method, req.URL.Path, resp.StatusCode, body)
	}
	return body, resp.StatusCode, nil
}

// do performs the request and decodes a JSON response into out when out is
// not nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	raw, err := c.doRaw(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return fmt.Errorf("decode %s %s response: empty body", method, path)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

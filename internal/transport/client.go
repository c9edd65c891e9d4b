// Package transport issues HTTP requests against the configured API base
// URL, attaches session headers, and classifies failures into typed
// errors before any other layer sees them.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/UB-ES-2025-A3/ProyectoA3/internal/domain"
)

// Client is a thin JSON client for the events API.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// New creates a Client. The timeout applies per request; the caller's
// context can cancel earlier.
func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Get performs GET <base>/<path> and decodes the response body into out.
func (c *Client) Get(ctx context.Context, path string, sess *domain.Session, out any) error {
	return c.do(ctx, http.MethodGet, path, sess, nil, out)
}

// Post performs POST <base>/<path> with a JSON body.
func (c *Client) Post(ctx context.Context, path string, sess *domain.Session, body, out any) error {
	return c.do(ctx, http.MethodPost, path, sess, body, out)
}

// Put performs PUT <base>/<path> with a JSON body.
func (c *Client) Put(ctx context.Context, path string, sess *domain.Session, body, out any) error {
	return c.do(ctx, http.MethodPut, path, sess, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, sess *domain.Session, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	url := c.baseURL + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if sess != nil {
		if sess.Token != "" {
			req.Header.Set("Authorization", "Bearer "+sess.Token)
		}
		if sess.UserID != "" {
			req.Header.Set("X-User-Id", sess.UserID)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("method", method),
			zap.String("url", url),
			zap.Error(err))
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}

	c.log.Debug("request completed",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{Status: resp.StatusCode, Message: extractMessage(raw)}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	return decodeBody(raw, out)
}

// decodeBody normalizes wrapped and unwrapped server responses into one
// shape before any other code sees them: a {data: ...} envelope is
// unwrapped, everything else is decoded as-is.
func decodeBody(raw []byte, out any) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
		raw = envelope.Data
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// extractMessage pulls a human-readable message out of an error body:
// the JSON "message" field, then "error" (string or {message}), then the
// body text itself.
func extractMessage(raw []byte) string {
	var body struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if len(body.Error) > 0 {
			var s string
			if json.Unmarshal(body.Error, &s) == nil && s != "" {
				return s
			}
			var nested struct {
				Message string `json:"message"`
			}
			if json.Unmarshal(body.Error, &nested) == nil && nested.Message != "" {
				return nested.Message
			}
		}
	}
	return strings.TrimSpace(string(raw))
}

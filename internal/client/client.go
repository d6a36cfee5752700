// Package client provides the HTTP client for the remote verification tool
// service. All endpoints share a JSON envelope with a static credential
// header; the media upload endpoint uses a multipart body instead.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"
)

// apiKeyHeader is the credential header expected by every endpoint.
const apiKeyHeader = "X-API-KEY"

// DefaultTimeout is the default per-request timeout.
const DefaultTimeout = 30 * time.Second

// Error represents a failure reaching or using a verification endpoint.
// It carries the endpoint path and the coarse HTTP status only; the
// credential and raw transport internals are never included.
type Error struct {
	Endpoint   string
	StatusCode int // zero when the request never got a response
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("verification service error for %s: %s: %v", e.Endpoint, e.Message, e.Cause)
	}
	return fmt.Sprintf("verification service error for %s: %s", e.Endpoint, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Timeout reports whether the failure was a request deadline expiry.
func (e *Error) Timeout() bool {
	if errors.Is(e.Cause, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(e.Cause, &netErr) && netErr.Timeout()
}

// Client is a reusable HTTP client for the verification service.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New creates a verification service client. A non-positive timeout falls
// back to DefaultTimeout.
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// Post sends a JSON payload to an endpoint and returns the raw response
// body. Non-2xx statuses are returned as *Error carrying the status code.
func (c *Client) Post(ctx context.Context, endpoint string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &Error{Endpoint: endpoint, Message: "failed to encode payload", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Endpoint: endpoint, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apiKeyHeader, c.apiKey)

	return c.do(req, endpoint)
}

// Upload sends a binary file as a multipart body to an endpoint and returns
// the raw response body. The same credential header applies.
func (c *Client) Upload(ctx context.Context, endpoint, filename, mimeType string, data []byte) (json.RawMessage, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", mimeType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, &Error{Endpoint: endpoint, Message: "failed to build multipart body", Cause: err}
	}
	if _, err := part.Write(data); err != nil {
		return nil, &Error{Endpoint: endpoint, Message: "failed to write file part", Cause: err}
	}
	if err := writer.Close(); err != nil {
		return nil, &Error{Endpoint: endpoint, Message: "failed to finalize multipart body", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, &buf)
	if err != nil {
		return nil, &Error{Endpoint: endpoint, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set(apiKeyHeader, c.apiKey)

	return c.do(req, endpoint)
}

func (c *Client) do(req *http.Request, endpoint string) (json.RawMessage, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		// url.Error wraps timeouts and connection failures alike.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, &Error{Endpoint: endpoint, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Endpoint: endpoint, StatusCode: resp.StatusCode, Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP status %d", resp.StatusCode),
		}
	}

	return json.RawMessage(body), nil
}

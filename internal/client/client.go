// Package client provides functions for interacting with the HR service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/and161185/hr-console/internal/config"
)

// Response is the outcome of one request. A non-2xx status is a normal
// result the caller must branch on, never an error.
type Response struct {
	Status int
	Body   []byte
}

// OK reports whether the status is in the 2xx range.
func (r *Response) OK() bool { return r.Status >= 200 && r.Status < 300 }

// Text returns the body as a string.
func (r *Response) Text() string { return string(r.Body) }

// DecodeJSON unmarshals the body into out. A malformed body is reported as a
// *ParseError carrying the raw status and text for fallback display.
func (r *Response) DecodeJSON(out any) error {
	if err := json.Unmarshal(r.Body, out); err != nil {
		return &ParseError{Status: r.Status, Body: r.Body, Err: err}
	}
	return nil
}

// NetworkError is a transport-level failure: no connection, aborted request.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "Error: " + e.Err.Error() }
func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError is a response that was expected to be JSON but was not.
type ParseError struct {
	Status int
	Body   []byte
	Err    error
}

func (e *ParseError) Error() string { return fmt.Sprintf("HTTP %d - %s", e.Status, e.Body) }
func (e *ParseError) Unwrap() error { return e.Err }

// RemoteError is a non-2xx status on a step that cannot continue without a
// successful response. It is display material, not a transport failure.
type RemoteError struct {
	Status int
	Body   []byte
}

func (e *RemoteError) Error() string { return fmt.Sprintf("HTTP %d - %s", e.Status, e.Body) }

// Client issues authenticated requests against the HR service.
type Client struct {
	config     *config.Config
	httpClient *http.Client
	token      string
}

// New creates a client from the given configuration.
func New(cfg *config.Config) *Client {
	hc := &http.Client{Timeout: time.Duration(cfg.ClientTimeout) * time.Second}
	return NewWithHTTP(cfg, hc)
}

// DI: ready http.Client
func NewWithHTTP(cfg *config.Config, hc *http.Client) *Client {
	return &Client{config: cfg, httpClient: hc, token: cfg.APIKey}
}

// SetToken replaces the cached credential used for the X-API-Key header.
func (clnt *Client) SetToken(token string) { clnt.token = token }

// Token returns the credential currently attached to requests.
func (clnt *Client) Token() string { return clnt.token }

// Do sends one request and returns status plus body. The payload, when
// non-nil, is marshaled as JSON. The X-API-Key header is attached only when
// a credential is available; the server decides whether its absence is
// acceptable. Errors are transport failures only.
func (clnt *Client) Do(ctx context.Context, method, path string, query url.Values, payload any) (*Response, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	reqURL := clnt.config.ServerAddr + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if clnt.token != "" {
		req.Header.Set("X-API-Key", clnt.token)
	}

	resp, err := clnt.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	return &Response{Status: resp.StatusCode, Body: data}, nil
}

// GetJSON issues a GET and decodes the body into out. A non-2xx status is
// returned as a *RemoteError without touching out.
func (clnt *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := clnt.Do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return &RemoteError{Status: resp.Status, Body: resp.Body}
	}
	return resp.DecodeJSON(out)
}

package services

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pairvote/internal/middleware"
)

var (
	// ErrTransport means the request never reached or returned from the server
	ErrTransport = errors.New("transport failure")
	// ErrRejected means the server answered with a non-2xx status
	ErrRejected = errors.New("request rejected")
	// ErrMalformedResponse means a 2xx body did not have the expected shape
	ErrMalformedResponse = errors.New("malformed response")
)

// StatusError carries the status of a rejected request
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server returned %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Body)
}

// Unwrap lets errors.Is match ErrRejected
func (e *StatusError) Unwrap() error {
	return ErrRejected
}

// Client talks to the voting site
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// NewClient creates a client for baseURL. A nil httpClient gets one with
// the request id and logging transport chain.
func NewClient(baseURL string, timeout time.Duration, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host are required", baseURL)
	}

	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: middleware.Chain(http.DefaultTransport, middleware.RequestID, middleware.Logging),
		}
	}

	return &Client{baseURL: u, http: httpClient}, nil
}

func (c *Client) endpoint(path string) string {
	return c.baseURL.JoinPath(path).String()
}

// do sends req and folds transport errors and non-2xx statuses into the
// error taxonomy. The caller closes the body on success.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, req.Method, req.URL.Path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	return resp, nil
}

package httpclient

import (
	"context"
	"io"
	"net/http"
	"time"
)

// UserAgent identifies the tool to icon servers. Some hosts refuse
// requests without a browser-looking agent string.
const UserAgent = "Mozilla/5.0 (compatible; fetch-icons/1.0)"

// Response is the portion of an HTTP response the fetch pipeline
// consumes: the status code, the headers (for Content-Type based
// extension resolution) and the streamed body.
//
// The caller owns Body and must close it.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       io.ReadCloser
}

// Client wraps net/http with the fixed user agent and a per-request
// timeout. Redirects are followed. The zero concurrency rule of
// net/http applies: one Client is shared by all fetch tasks and is safe
// for concurrent use.
type Client struct {
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
}

// NewClient creates a Client whose individual requests are bounded by
// timeout. The timeout covers the whole request including body reads.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  UserAgent,
		timeout:    timeout,
	}
}

// Fetch performs a GET against url and returns the response with its
// body unread. A non-200 status is not an error; callers inspect
// StatusCode and decide. Transport failures (DNS, connect, timeout)
// are returned as errors.
func (c *Client) Fetch(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       resp.Body,
	}, nil
}

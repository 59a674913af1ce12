package http

import (
	"net/http"
	"time"
)

// Middleware wraps the transport of the client, e.g. to attach credentials.
type Middleware func(http.RoundTripper) http.RoundTripper

type Client struct {
	httpClient *http.Client
}

// NewClient builds a client with the given timeout; zero means no client-side timeout.
func NewClient(timeout time.Duration, middleware ...Middleware) *Client {
	var transport http.RoundTripper = http.DefaultTransport
	for _, mw := range middleware {
		transport = mw(transport)
	}
	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}

// Standard exposes the underlying *http.Client for SDKs that take one.
func (c *Client) Standard() *http.Client {
	return c.httpClient
}

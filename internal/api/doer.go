// Package api is the HTTP client for the study backend's REST API.
package api

import (
	"context"
	"net/http"
	"net/url"
)

// Doer performs a single backend request. Decorators (retry, logging) and
// the mock implement the same interface as the HTTP transport.
type Doer interface {
	Do(ctx context.Context, req Request) (*Response, error)
}

// Request describes one API call relative to the configured base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values

	// Body, when non-nil, is sent as JSON.
	Body any
}

// Response holds a successful (2xx) reply.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

package httpclient

import (
	"context"
	"io"
	"net/http"
)

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
	Header() http.Header
	// URL is the effective request URL after redirects.
	URL() string
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}

// Streamer performs a GET and hands back the unread body.
// Callers must close the returned body.
type Streamer interface {
	Stream(ctx context.Context, url string, headers map[string]string) (io.ReadCloser, int, error)
}

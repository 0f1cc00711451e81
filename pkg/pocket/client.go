package pocket

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Adda-Baaj/pocket-sync/pkg/httpclient"
	"go.uber.org/zap"
)

const (
	DefaultAPIVersion = "v1"
	DefaultTimeout    = 30 * time.Second
	DefaultRetryTimes = 3
	DefaultRetrySleep = 1000 * time.Millisecond

	audioTimeout = 300 * time.Second
)

var (
	errAPIKeyRequired  = errors.New("pocket api key is required")
	errBaseURLRequired = errors.New("pocket base url is required")
)

// Config carries the connection settings. RetryTimes and RetrySleep are
// taken literally (zero disables retries / backoff); use DefaultConfig for
// the library defaults.
type Config struct {
	APIKey     string
	BaseURL    string
	APIVersion string
	Timeout    time.Duration
	RetryTimes int
	RetrySleep time.Duration
}

// DefaultConfig returns a Config with the default version, timeout and retry policy.
func DefaultConfig(apiKey, baseURL string) Config {
	return Config{
		APIKey:     apiKey,
		BaseURL:    baseURL,
		APIVersion: DefaultAPIVersion,
		Timeout:    DefaultTimeout,
		RetryTimes: DefaultRetryTimes,
		RetrySleep: DefaultRetrySleep,
	}
}

// Client is the authenticated transport for the public API. It holds only
// immutable configuration and is safe for concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	apiVersion string
	retryTimes int
	retrySleep time.Duration

	http  httpclient.Client
	audio httpclient.Streamer
	sleep Sleeper
	log   *zap.Logger
}

// Option customizes a Client during construction.
type Option func(*Client)

// WithHTTPClient replaces the API transport.
func WithHTTPClient(hc httpclient.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithAudioClient replaces the unauthenticated client used for signed audio URLs.
func WithAudioClient(s httpclient.Streamer) Option {
	return func(c *Client) {
		if s != nil {
			c.audio = s
		}
	}
}

// WithSleeper replaces the backoff sleep, mainly for tests.
func WithSleeper(s Sleeper) Option {
	return func(c *Client) {
		if s != nil {
			c.sleep = s
		}
	}
}

// WithLogger attaches a zap logger for request tracing.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// NewClient validates cfg and builds a Client.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errBaseURLRequired
	}

	version := strings.Trim(strings.TrimSpace(cfg.APIVersion), "/")
	if version == "" {
		version = DefaultAPIVersion
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	retries := cfg.RetryTimes
	if retries < 0 {
		retries = 0
	}
	sleep := cfg.RetrySleep
	if sleep < 0 {
		sleep = 0
	}

	c := &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		apiVersion: version,
		retryTimes: retries,
		retrySleep: sleep,
		sleep:      SleepContext,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.http == nil {
		c.http = httpclient.NewRestyClient(timeout)
	}
	if c.audio == nil {
		c.audio = httpclient.NewRestyClient(audioTimeout)
	}

	return c, nil
}

func (c *Client) APIKey() string     { return c.apiKey }
func (c *Client) BaseURL() string    { return c.baseURL }
func (c *Client) APIVersion() string { return c.apiVersion }

// URL builds the absolute target for an endpoint.
func (c *Client) URL(endpoint string) string {
	return c.baseURL + "/api/" + c.apiVersion + "/public/" + strings.Trim(strings.TrimSpace(endpoint), "/")
}

func (c *Client) headers() map[string]string {
	return map[string]string{
		"Accept":        "application/json",
		"Content-Type":  "application/json",
		"Authorization": "Bearer " + c.apiKey,
	}
}

// Get issues an authenticated GET and returns the normalised envelope or
// an *Error. Transient failures (5xx, 429, no response) are retried with
// exponential backoff before anything is surfaced.
func (c *Client) Get(ctx context.Context, endpoint string, query Query) (*Envelope, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	target := c.URL(endpoint)
	if encoded := query.Encode(); encoded != "" {
		target += "?" + encoded
	}

	headers := c.headers()
	ex := Exchange{
		Method:        http.MethodGet,
		URL:           target,
		RequestHeader: make(http.Header, len(headers)),
	}
	for k, v := range headers {
		ex.RequestHeader.Set(k, v)
	}

	var (
		resp httpclient.Response
		err  error
	)
	for retries := 0; ; retries++ {
		if cerr := ctx.Err(); cerr != nil {
			return nil, transportError(&ex, cerr)
		}

		ex.Attempts = retries + 1
		resp, err = c.http.Get(ctx, target, headers)
		c.logAttempt(ex, resp, err)

		if !shouldRetry(ctx, c.retryTimes, retries, resp, err) {
			break
		}

		delay := Backoff(c.retrySleep, retries+1)
		c.log.Warn("pocket request retry scheduled",
			zap.String("url", target),
			zap.Int("attempt", ex.Attempts),
			zap.Duration("delay", delay),
		)
		if serr := c.sleep(ctx, delay); serr != nil {
			return nil, transportError(&ex, serr)
		}
	}

	if err != nil {
		return nil, transportError(&ex, err)
	}

	ex.record(resp)
	return normalize(resp, ex)
}

func (c *Client) logAttempt(ex Exchange, resp httpclient.Response, err error) {
	fields := []zap.Field{
		zap.String("method", ex.Method),
		zap.String("url", ex.URL),
		zap.Int("attempt", ex.Attempts),
	}
	if err != nil {
		c.log.Debug("pocket request failed", append(fields, zap.Error(err))...)
		return
	}
	c.log.Debug("pocket request completed", append(fields, zap.Int("status", resp.StatusCode()))...)
}

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
)

type LeveledSlog struct {
	inner *slog.Logger
}

// re-writes HTTP client ERROR to WARN level (because of retries)
func (l LeveledSlog) Error(msg string, keysAndValues ...any) {
	l.inner.Warn(msg, keysAndValues...)
}

func (l LeveledSlog) Warn(msg string, keysAndValues ...any) {
	l.inner.Warn(msg, keysAndValues...)
}

func (l LeveledSlog) Info(msg string, keysAndValues ...any) {
	l.inner.Info(msg, keysAndValues...)
}

func (l LeveledSlog) Debug(msg string, keysAndValues ...any) {
	l.inner.Debug(msg, keysAndValues...)
}

type TransportOption func(*retryablehttp.Client)

// WithMaxRetries sets the maximum number of retries for the HTTP client.
func WithMaxRetries(maxRetries int) TransportOption {
	return func(client *retryablehttp.Client) {
		client.RetryMax = maxRetries
	}
}

// WithLogger sets a custom logger for the HTTP client.
func WithLogger(logger *slog.Logger) TransportOption {
	return func(client *retryablehttp.Client) {
		client.Logger = retryablehttp.LeveledLogger(LeveledSlog{inner: logger})
	}
}

// WithTimeout overrides the overall per-request timeout.
func WithTimeout(d time.Duration) TransportOption {
	return func(client *retryablehttp.Client) {
		client.HTTPClient.Timeout = d
	}
}

// NewHTTPTransport builds an HTTP client with general-purpose defaults around
// timeouts and retries. The returned client has the stdlib http.Client
// interface, but has Hashicorp retryablehttp logic internally: it retries on
// connection errors and 5xx status (except 501), logging intermediate
// failures at WARN level. Used for the read endpoints.
func NewHTTPTransport(options ...TransportOption) *http.Client {
	logger := LeveledSlog{inner: slog.Default().With("subsystem", "api")}
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Transport = cleanhttp.DefaultPooledTransport()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.Logger = retryablehttp.LeveledLogger(logger)

	for _, option := range options {
		option(retryClient)
	}

	client := retryClient.StandardClient()
	client.Timeout = retryClient.HTTPClient.Timeout
	if client.Timeout == 0 {
		client.Timeout = 20 * time.Second
	}
	return client
}

// NewMutationTransport builds the client used for non-idempotent mutations
// (rate, comment, upload, delete). A rating must fail fast so the optimistic
// state can roll back, so this transport never retries.
func NewMutationTransport(options ...TransportOption) *http.Client {
	options = append([]TransportOption{
		WithMaxRetries(0),
		func(client *retryablehttp.Client) {
			client.CheckRetry = neverRetry
		},
	}, options...)
	return NewHTTPTransport(options...)
}

func neverRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	return false, ctx.Err()
}

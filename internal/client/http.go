package client

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	defaultTimeout = 30 * time.Second
	retryWait      = 1 * time.Second
	retryMaxWait   = 10 * time.Second
)

// UserAgent is sent on every request; hh.ru rejects requests without one
const UserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// Options configures the shared HTTP client
type Options struct {
	Timeout   time.Duration
	ProxyURL  string
	Retries   int
	UserAgent string
	Logger    *zap.Logger
}

// CreateHTTPClient creates the resty client shared by all vendor fetchers.
// Retries are off unless Options.Retries is positive.
func CreateHTTPClient(opts Options) *resty.Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = UserAgent
	}

	c := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json")

	if opts.Logger != nil {
		c.SetLogger(opts.Logger.Sugar())
	}

	if opts.ProxyURL != "" {
		c.SetProxy(opts.ProxyURL)
	}

	if opts.Retries > 0 {
		c.SetRetryCount(opts.Retries).
			SetRetryWaitTime(retryWait).
			SetRetryMaxWaitTime(retryMaxWait).
			AddRetryCondition(ShouldRetry)
	}

	return c
}

// ShouldRetry retries transport errors, rate limiting and server errors
func ShouldRetry(resp *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	if resp == nil {
		return false
	}
	code := resp.StatusCode()
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

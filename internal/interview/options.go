package interview

import (
	"net/http"
	"time"
)

// TransportFunc wraps a RoundTripper with additional behaviour.
type TransportFunc func(http.RoundTripper) http.RoundTripper

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	connTimeout    time.Duration
	requestTimeout time.Duration
	keepAlive      time.Duration
	idleTimeout    time.Duration
	transports     []TransportFunc
	base           http.RoundTripper
}

func defaultClientConfig() *clientConfig {
	return &clientConfig{
		connTimeout:    5 * time.Second,
		requestTimeout: 30 * time.Second,
		keepAlive:      90 * time.Second,
		idleTimeout:    90 * time.Second,
	}
}

// WithConnTimeout bounds how long dialing the service may take.
func WithConnTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.connTimeout = d
	}
}

// WithRequestTimeout bounds a whole request including reading the body.
// Evaluation is slow on the service side, so keep this generous.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.requestTimeout = d
	}
}

// WithTransport appends a transport wrapper. Wrappers apply in the order
// given, so the last one added sees the request first.
func WithTransport(fn TransportFunc) Option {
	return func(c *clientConfig) {
		c.transports = append(c.transports, fn)
	}
}

// WithBaseTransport replaces the innermost RoundTripper. Tests use it to
// route requests into an httptest server's client transport.
func WithBaseTransport(rt http.RoundTripper) Option {
	return func(c *clientConfig) {
		c.base = rt
	}
}

package interview

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	startPath  = "/interview/start"
	submitPath = "/interview/submit-answer"
)

// maxBodyBytes caps how much of a reply is read. Reports are the largest
// replies and stay well below this.
const maxBodyBytes = 4 << 20

// ClientConfig holds the connection details for the Interview Service.
type ClientConfig struct {
	// BaseURL is the API prefix, e.g. http://localhost:8000/api.
	BaseURL string
	// Token is sent as a bearer credential when non-empty.
	Token  string
	Logger *zap.Logger
}

// Client talks to the Interview Service over HTTP+JSON.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

var _ Service = (*Client)(nil)

// NewClient returns a Client for cfg. Requests are logged at debug level,
// tagged with a request ID and carry cfg.Token when set.
func NewClient(cfg ClientConfig, opts ...Option) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	defaults := []Option{
		WithRequestLogging(),
		WithAuthToken(cfg.Token),
		WithRequestID(),
	}
	cc := defaultClientConfig()
	for _, opt := range append(defaults, opts...) {
		opt(cc)
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: newHTTPClient(cc),
		logger:     logger,
	}
}

func newHTTPClient(cfg *clientConfig) *http.Client {
	transport := cfg.base
	if transport == nil {
		dialer := net.Dialer{
			Timeout:   cfg.connTimeout,
			KeepAlive: cfg.keepAlive,
		}
		transport = &http.Transport{
			Proxy:           http.ProxyFromEnvironment,
			DialContext:     dialer.DialContext,
			MaxIdleConns:    10,
			IdleConnTimeout: cfg.idleTimeout,
		}
	}
	for _, fn := range cfg.transports {
		transport = fn(transport)
	}
	return &http.Client{
		Timeout:   cfg.requestTimeout,
		Transport: transport,
	}
}

// Start implements Service.
func (c *Client) Start(ctx context.Context, req StartRequest) (*StartResponse, error) {
	var resp StartResponse
	if err := c.do(ctx, http.MethodPost, c.baseURL+startPath, req, StartSchema, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SubmitAnswer implements Service.
func (c *Client) SubmitAnswer(ctx context.Context, req SubmitRequest) (*SubmitResponse, error) {
	var resp SubmitResponse
	if err := c.do(ctx, http.MethodPost, c.baseURL+submitPath, req, SubmitSchema, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Ping calls the service's health route, which lives at the root of the
// host rather than under the API prefix, and returns its message.
func (c *Client) Ping(ctx context.Context) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	u.Path = "/"
	u.RawQuery = ""

	var resp PingResponse
	if err := c.do(ctx, http.MethodGet, u.String(), nil, PingSchema, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, reqBody any, schema *Schema, out any) error {
	if ctxzap.Extract(ctx) == ctxzap.Extract(context.Background()) {
		ctx = ctxzap.ToContext(ctx, c.logger)
	}

	var body io.Reader
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
		ctx = context.WithValue(ctx, payloadContextKey{}, data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ErrUnavailable{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &ErrUnavailable{Err: fmt.Errorf("read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ErrUnavailable{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	return decodeResponse(schema, raw, out)
}

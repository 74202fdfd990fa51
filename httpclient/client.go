package httpclient

import (
	"net/http"
)

// Client is a high-level HTTP client with fluent request building,
// interceptor chains, and OpenTelemetry instrumentation.
//
// Create a Client using New():
//
//	client := httpclient.New(
//	    httpclient.WithBaseURL("https://api.example.com"),
//	    httpclient.WithServiceName("user-service"),
//	)
//
//	resp, err := client.Request("GetUser").
//	    Path("/users/1").
//	    Get(ctx)
type Client struct {
	// httpClient is the underlying HTTP client with transport chain.
	httpClient *http.Client

	// config holds all client configuration.
	config *internalConfig

	// baseURL is the base URL for all requests.
	baseURL string

	// defaultHeaders are applied to all requests.
	defaultHeaders http.Header

	// requestInterceptors run before dispatch, in registration order.
	requestInterceptors []RequestInterceptor

	// responseInterceptors run after a response is received.
	responseInterceptors []ResponseInterceptor

	// debug enables request/response logging.
	debug bool
}

// New creates a Client with sensible defaults and OpenTelemetry
// instrumentation wrapped around the transport.
//
// Example:
//
//	client := httpclient.New(
//	    httpclient.WithBaseURL("https://api.example.com"),
//	    httpclient.WithCookieJar(jar),
//	)
func New(opts ...Option) *Client {
	cfg := newConfig(opts...)

	base := cfg.BaseTransport
	if base == nil {
		base = cfg.buildTransport()
	}

	httpClient := &http.Client{
		Transport: newOtelTransport(base, cfg),
		Timeout:   cfg.httpConfig.Timeout,
		Jar:       cfg.CookieJar,
	}

	return &Client{
		httpClient:           httpClient,
		config:               cfg,
		baseURL:              cfg.BaseURL,
		defaultHeaders:       cfg.DefaultHeaders,
		requestInterceptors:  cfg.RequestInterceptors,
		responseInterceptors: cfg.ResponseInterceptors,
		debug:                cfg.Debug,
	}
}

// HTTP returns the underlying *http.Client for advanced use cases, such as
// passing it to libraries that expect a raw client or inspecting the
// configured cookie jar.
func (c *Client) HTTP() *http.Client {
	return c.httpClient
}

// Request creates a new RequestBuilder for the given operation name.
//
// The operation name is used for span naming, debug logging, and metrics
// labeling.
func (c *Client) Request(operationName string) *RequestBuilder {
	return &RequestBuilder{
		client:        c,
		operationName: operationName,
		headers:       make(http.Header),
	}
}

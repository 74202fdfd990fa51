package httpclient

import (
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	// scope is the instrumentation scope name for OpenTelemetry.
	scope = "github.com/awemekit/musically/httpclient"
)

// Config holds the HTTP transport configuration parameters.
// Use DefaultConfig() to get a properly initialized configuration,
// then modify specific fields as needed.
type Config struct {
	// Timeout limits the entire request lifecycle, including connection
	// establishment, TLS handshake, and reading the response body.
	// Zero means no timeout.
	//
	// Default: 15s
	Timeout time.Duration

	// MaxIdleConns controls the maximum number of idle (keep-alive)
	// connections across all hosts combined.
	//
	// Default: 100
	MaxIdleConns int

	// MaxIdleConnsPerHost controls the maximum idle connections kept per
	// host. A typed API client talks to a single host, so this is the
	// setting that matters most for connection reuse.
	//
	// Default: 20
	MaxIdleConnsPerHost int

	// IdleConnTimeout is how long an idle connection remains in the pool
	// before being closed.
	//
	// Default: 90s
	IdleConnTimeout time.Duration

	// TLSHandshakeTimeout is the maximum time to wait for a TLS handshake.
	//
	// Default: 10s
	TLSHandshakeTimeout time.Duration

	// DialTimeout is the maximum time to wait for a TCP connection.
	//
	// Default: 5s
	DialTimeout time.Duration

	// KeepAlive specifies the TCP keep-alive probe interval.
	//
	// Default: 30s
	KeepAlive time.Duration

	// DisableCompression disables the automatic "Accept-Encoding: gzip"
	// header. Set this when the Accept-Encoding header is managed
	// explicitly by the caller.
	//
	// Default: false
	DisableCompression bool
}

// DefaultConfig returns a balanced configuration suitable for a typed API
// client issuing short JSON requests to a single remote host.
func DefaultConfig() Config {
	return Config{
		Timeout:             15 * time.Second,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DialTimeout:         5 * time.Second,
		KeepAlive:           30 * time.Second,
	}
}

// internalConfig holds all configuration including transport and OTel settings.
type internalConfig struct {
	httpConfig Config

	// BaseURL is the base URL prepended to request paths.
	BaseURL string

	// DefaultHeaders are applied to every request.
	DefaultHeaders http.Header

	// RequestInterceptors run before dispatch.
	RequestInterceptors []RequestInterceptor

	// ResponseInterceptors run after a response is received.
	ResponseInterceptors []ResponseInterceptor

	// CookieJar stores session cookies shared across requests.
	CookieJar http.CookieJar

	// BaseTransport replaces the built transport when set. Used for tests
	// and for callers that need full control over the dial layer.
	BaseTransport http.RoundTripper

	// Debug enables request/response logging.
	Debug bool

	// ServiceName identifies this client in spans and metrics.
	ServiceName string

	// TracerProvider overrides the global trace provider.
	TracerProvider trace.TracerProvider

	// MeterProvider overrides the global meter provider.
	MeterProvider metric.MeterProvider

	// Tracer is the tracer instance created from TracerProvider.
	Tracer trace.Tracer

	// Metrics holds the metric instruments.
	Metrics *metrics
}

// newConfig creates a new internal config with defaults and applies options.
func newConfig(opts ...Option) *internalConfig {
	cfg := &internalConfig{
		httpConfig:     DefaultConfig(),
		DefaultHeaders: make(http.Header),
		TracerProvider: otel.GetTracerProvider(),
		MeterProvider:  otel.GetMeterProvider(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	cfg.Tracer = cfg.TracerProvider.Tracer(scope)

	// Metric registration failure leaves instruments nil; recording on a
	// nil *metrics is a no-op.
	cfg.Metrics, _ = newMetrics(cfg.MeterProvider.Meter(scope))

	return cfg
}

// buildTransport creates an http.Transport from the configuration.
func (cfg *internalConfig) buildTransport() *http.Transport {
	hc := cfg.httpConfig

	dialer := &net.Dialer{
		Timeout:   hc.DialTimeout,
		KeepAlive: hc.KeepAlive,
	}

	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		MaxIdleConns:        hc.MaxIdleConns,
		MaxIdleConnsPerHost: hc.MaxIdleConnsPerHost,
		IdleConnTimeout:     hc.IdleConnTimeout,
		TLSHandshakeTimeout: hc.TLSHandshakeTimeout,
		DisableCompression:  hc.DisableCompression,
	}
}

// baseAttributes returns common attributes for all spans and metrics.
func (cfg *internalConfig) baseAttributes() []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 1)
	if cfg.ServiceName != "" {
		attrs = append(attrs, attribute.String("http.client.name", cfg.ServiceName))
	}
	return attrs
}

// Option configures the HTTP client.
type Option func(*internalConfig)

// WithConfig sets the HTTP transport configuration.
func WithConfig(c Config) Option {
	return func(cfg *internalConfig) {
		cfg.httpConfig = c
	}
}

// WithBaseURL sets the base URL prepended to all request paths.
func WithBaseURL(baseURL string) Option {
	return func(cfg *internalConfig) {
		cfg.BaseURL = baseURL
	}
}

// WithTimeout sets the overall request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(cfg *internalConfig) {
		cfg.httpConfig.Timeout = timeout
	}
}

// WithDefaultHeader adds a header applied to every request.
func WithDefaultHeader(key, value string) Option {
	return func(cfg *internalConfig) {
		cfg.DefaultHeaders.Set(key, value)
	}
}

// WithDefaultHeaders adds multiple headers applied to every request.
func WithDefaultHeaders(headers map[string]string) Option {
	return func(cfg *internalConfig) {
		for k, v := range headers {
			cfg.DefaultHeaders.Set(k, v)
		}
	}
}

// WithRequestInterceptor appends a request interceptor to the chain.
// Interceptors run in registration order before the request is dispatched.
func WithRequestInterceptor(i RequestInterceptor) Option {
	return func(cfg *internalConfig) {
		cfg.RequestInterceptors = append(cfg.RequestInterceptors, i)
	}
}

// WithResponseInterceptor appends a response interceptor to the chain.
func WithResponseInterceptor(i ResponseInterceptor) Option {
	return func(cfg *internalConfig) {
		cfg.ResponseInterceptors = append(cfg.ResponseInterceptors, i)
	}
}

// WithCookieJar sets the cookie jar shared by all requests from this client.
// The jar must be safe for concurrent use; net/http/cookiejar.Jar is.
func WithCookieJar(jar http.CookieJar) Option {
	return func(cfg *internalConfig) {
		cfg.CookieJar = jar
	}
}

// WithTransport sets a custom base http.RoundTripper. The OpenTelemetry
// instrumentation is still wrapped around it. Pass a *MockTransport here
// in tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(cfg *internalConfig) {
		cfg.BaseTransport = rt
	}
}

// WithDebug enables request/response debug logging via zerolog.
func WithDebug() Option {
	return func(cfg *internalConfig) {
		cfg.Debug = true
	}
}

// WithServiceName sets an identifier for this HTTP client in traces and
// metrics, added as the "http.client.name" attribute.
func WithServiceName(name string) Option {
	return func(cfg *internalConfig) {
		cfg.ServiceName = name
	}
}

// WithTracerProvider sets a custom OpenTelemetry TracerProvider.
// If not called, the global provider is used.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(cfg *internalConfig) {
		cfg.TracerProvider = tp
	}
}

// WithMeterProvider sets a custom OpenTelemetry MeterProvider.
// If not called, the global provider is used.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(cfg *internalConfig) {
		cfg.MeterProvider = mp
	}
}

package musically

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api2.musical.ly"
	defaultHost    = "api2.musical.ly"
)

// SignFunc computes the signed URL for a canonical request URL. The real
// signature algorithm is proprietary and reverse-engineered per app
// release, so it is injected rather than implemented here.
//
// rawURL is the canonical URL (base + path + ordered query string), ts the
// stamped Unix timestamp in seconds, and deviceID the client's device id.
// The returned URL replaces the request's destination verbatim.
type SignFunc func(ctx context.Context, rawURL string, ts int64, deviceID string) (string, error)

// Config is the client-wide configuration. It is read once by New; the
// client keeps a private copy, so mutating a Config after construction has
// no effect on an existing client.
type Config struct {
	// SignURL signs canonical URLs. Required.
	SignURL SignFunc

	// BaseURL is the API origin. Defaults to the production origin.
	BaseURL string

	// Host overrides the Host header sent on the wire. Defaults to the
	// production host.
	Host string

	// UserAgent overrides the derived user-agent string. When empty, the
	// user agent is derived from the device's app and OS version fields.
	UserAgent string

	// CookieJar stores session cookies. When nil, an in-memory jar is
	// created; it is shared by all requests from one client and is safe
	// for concurrent use.
	CookieJar http.CookieJar

	// Transport replaces the underlying HTTP transport. Mainly for tests.
	Transport http.RoundTripper

	// Timeout bounds each request end to end. Zero keeps the transport
	// default. The signing step itself imposes no timeout: a hanging
	// signer hangs the request until the context or this timeout fires.
	Timeout time.Duration

	// Debug enables request/response logging.
	Debug bool
}

// withDefaults returns a copy of c with zero fields replaced by defaults.
func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Host == "" {
		c.Host = defaultHost
	}
	return c
}

// userAgent derives the app's user-agent string from the device identity,
// unless an explicit override is configured.
func (c Config) userAgent(device StaticRequestParams) string {
	if c.UserAgent != "" {
		return c.UserAgent
	}
	locale := device.Language
	if device.SysRegion != "" {
		locale = device.Language + "-" + device.SysRegion
	}
	return fmt.Sprintf(
		"com.zhiliaoapp.musically/%s (Linux; U; Android %s; %s; %s; Build/%s; Cronet/58.0.2991.0)",
		device.ManifestVersionCode,
		device.OSVersion,
		locale,
		device.DeviceType,
		device.BuildNumber,
	)
}

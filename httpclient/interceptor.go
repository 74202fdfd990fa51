package httpclient

import (
	"net/http"
)

// RequestInterceptor allows modification of requests before they are sent.
// Interceptors are executed in the order they are added; the first error
// aborts the chain and the request is never dispatched.
//
// Common use cases:
//   - Request signing (rewriting the URL with a computed signature)
//   - Adding authentication headers
//   - Injecting correlation IDs
type RequestInterceptor func(req *http.Request) error

// ResponseInterceptor allows inspection of responses after receipt.
// Interceptors are executed in the order they are added.
type ResponseInterceptor func(resp *http.Response, req *http.Request) error

// applyRequestInterceptors runs client-level then per-request interceptors
// in order, stopping at the first error.
func (c *Client) applyRequestInterceptors(req *http.Request, extra []RequestInterceptor) error {
	for _, interceptor := range c.requestInterceptors {
		if err := interceptor(req); err != nil {
			return err
		}
	}
	for _, interceptor := range extra {
		if err := interceptor(req); err != nil {
			return err
		}
	}
	return nil
}

// applyResponseInterceptors runs all response interceptors in order.
func (c *Client) applyResponseInterceptors(resp *http.Response, req *http.Request) error {
	for _, interceptor := range c.responseInterceptors {
		if err := interceptor(resp, req); err != nil {
			return err
		}
	}
	return nil
}

// HeaderInterceptor creates an interceptor that sets a fixed header.
func HeaderInterceptor(key, value string) RequestInterceptor {
	return func(req *http.Request) error {
		req.Header.Set(key, value)
		return nil
	}
}

// UserAgentInterceptor creates an interceptor that sets the User-Agent header.
func UserAgentInterceptor(userAgent string) RequestInterceptor {
	return func(req *http.Request) error {
		req.Header.Set("User-Agent", userAgent)
		return nil
	}
}

// HostInterceptor creates an interceptor that overrides the Host header
// sent on the wire, regardless of the URL the request is dispatched to.
func HostInterceptor(host string) RequestInterceptor {
	return func(req *http.Request) error {
		req.Host = host
		return nil
	}
}

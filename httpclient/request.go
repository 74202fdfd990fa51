package httpclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// RequestBuilder provides a fluent API for constructing HTTP requests.
//
// Create a RequestBuilder using Client.Request():
//
//	resp, err := client.Request("GetUser").
//	    Path("/users/1").
//	    Decode(&user).
//	    Get(ctx)
type RequestBuilder struct {
	client        *Client
	operationName string
	path          string
	queryParams   url.Values
	headers       http.Header
	body          io.Reader
	contentType   string
	result        any
	errorResult   any
	interceptors  []RequestInterceptor
}

// Path sets the request path, appended to the client's base URL.
func (rb *RequestBuilder) Path(path string) *RequestBuilder {
	rb.path = path
	return rb
}

// Query adds a single query parameter.
func (rb *RequestBuilder) Query(key, value string) *RequestBuilder {
	if rb.queryParams == nil {
		rb.queryParams = make(url.Values)
	}
	rb.queryParams.Set(key, value)
	return rb
}

// Queries adds multiple query parameters.
func (rb *RequestBuilder) Queries(params map[string]string) *RequestBuilder {
	if rb.queryParams == nil {
		rb.queryParams = make(url.Values)
	}
	for k, v := range params {
		rb.queryParams.Set(k, v)
	}
	return rb
}

// Header sets a single request header.
func (rb *RequestBuilder) Header(key, value string) *RequestBuilder {
	rb.headers.Set(key, value)
	return rb
}

// Body sets the request body with automatic content type detection.
//
// Encoding rules:
//   - string: raw text (Content-Type: text/plain)
//   - []byte: raw bytes (Content-Type: application/octet-stream)
//   - io.Reader: passthrough
//   - url.Values: form encoded (Content-Type: application/x-www-form-urlencoded)
//   - anything else: JSON (Content-Type: application/json)
func (rb *RequestBuilder) Body(v any) *RequestBuilder {
	if v == nil {
		return rb
	}

	switch body := v.(type) {
	case string:
		rb.body = strings.NewReader(body)
		rb.contentType = "text/plain; charset=utf-8"
	case []byte:
		rb.body = bytes.NewReader(body)
		rb.contentType = "application/octet-stream"
	case io.Reader:
		rb.body = body
	case url.Values:
		rb.body = strings.NewReader(body.Encode())
		rb.contentType = "application/x-www-form-urlencoded"
	default:
		data, err := json.Marshal(v)
		if err != nil {
			rb.body = &bodyEncodingError{err: err}
			return rb
		}
		rb.body = bytes.NewReader(data)
		rb.contentType = "application/json"
	}
	return rb
}

// BodyForm sets form data as the request body.
func (rb *RequestBuilder) BodyForm(data map[string]string) *RequestBuilder {
	values := make(url.Values)
	for k, v := range data {
		values.Set(k, v)
	}
	rb.body = strings.NewReader(values.Encode())
	rb.contentType = "application/x-www-form-urlencoded"
	return rb
}

// Decode sets the target for automatic response body decoding when the
// response is successful (2xx).
func (rb *RequestBuilder) Decode(v any) *RequestBuilder {
	rb.result = v
	return rb
}

// DecodeError sets the target for automatic error response decoding when the
// response is not successful (non-2xx).
func (rb *RequestBuilder) DecodeError(v any) *RequestBuilder {
	rb.errorResult = v
	return rb
}

// DecodeAny sets the target for automatic response decoding regardless of
// status code. Use this for APIs that embed their error payload in 200-level
// responses.
func (rb *RequestBuilder) DecodeAny(v any) *RequestBuilder {
	rb.result = v
	rb.errorResult = v
	return rb
}

// Intercept adds a per-request interceptor, run after the client-level
// interceptors.
func (rb *RequestBuilder) Intercept(i RequestInterceptor) *RequestBuilder {
	rb.interceptors = append(rb.interceptors, i)
	return rb
}

// Get executes a GET request.
func (rb *RequestBuilder) Get(ctx context.Context, path ...string) (*Response, error) {
	if len(path) > 0 {
		rb.path = path[0]
	}
	return rb.execute(ctx, http.MethodGet)
}

// Post executes a POST request.
func (rb *RequestBuilder) Post(ctx context.Context, path ...string) (*Response, error) {
	if len(path) > 0 {
		rb.path = path[0]
	}
	return rb.execute(ctx, http.MethodPost)
}

// execute builds the HTTP request, runs the interceptor chains, and
// dispatches. When a request interceptor fails, the request never reaches
// the transport.
func (rb *RequestBuilder) execute(ctx context.Context, method string) (*Response, error) {
	targetURL, err := rb.buildURL()
	if err != nil {
		return nil, err
	}

	if er, ok := rb.body.(*bodyEncodingError); ok {
		return nil, er.err
	}

	req, err := http.NewRequestWithContext(ctx, method, targetURL, rb.body)
	if err != nil {
		return nil, err
	}

	for k, v := range rb.client.defaultHeaders {
		req.Header[k] = v
	}
	for k, v := range rb.headers {
		req.Header[k] = v
	}
	if rb.contentType != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", rb.contentType)
	}

	if err := rb.client.applyRequestInterceptors(req, rb.interceptors); err != nil {
		return nil, err
	}

	if rb.client.debug {
		logRequest(debugLogger, rb.operationName, req)
	}

	start := time.Now()

	// The response body is cached and closed by Response.Body().
	//nolint:bodyclose // Caller closes via Response
	httpResp, err := rb.client.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if rb.client.debug {
		logResponse(debugLogger, rb.operationName, httpResp, time.Since(start))
	}

	if err := rb.client.applyResponseInterceptors(httpResp, req); err != nil {
		return nil, err
	}

	resp := &Response{
		Response:    httpResp,
		request:     req,
		result:      rb.result,
		errorResult: rb.errorResult,
	}

	if rb.result != nil || rb.errorResult != nil {
		if err := resp.decode(); err != nil {
			return resp, err
		}
	}

	return resp, nil
}

// buildURL constructs the full URL from base URL, path, and query params.
func (rb *RequestBuilder) buildURL() (string, error) {
	var fullURL string
	if rb.client.baseURL != "" {
		fullURL = strings.TrimSuffix(rb.client.baseURL, "/") + "/" + strings.TrimPrefix(rb.path, "/")
	} else {
		fullURL = rb.path
	}

	if len(rb.queryParams) > 0 {
		u, err := url.Parse(fullURL)
		if err != nil {
			return "", err
		}
		q := u.Query()
		for k, v := range rb.queryParams {
			for _, vv := range v {
				q.Add(k, vv)
			}
		}
		u.RawQuery = q.Encode()
		fullURL = u.String()
	}

	return fullURL, nil
}

// bodyEncodingError is an io.Reader that returns a deferred encoding error.
type bodyEncodingError struct {
	err error
}

func (e *bodyEncodingError) Read(_ []byte) (int, error) {
	return 0, e.err
}

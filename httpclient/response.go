package httpclient

import (
	"bytes"
	"io"
	"net/http"

	json "github.com/goccy/go-json"
)

// Response wraps http.Response with convenience methods for body handling
// and automatic decoding.
//
// The body is read once and cached; decoding preserves large integers by
// routing untyped targets through json.Number instead of float64.
type Response struct {
	// Response embeds the standard http.Response. All fields and methods
	// are accessible directly, e.g. resp.StatusCode.
	*http.Response

	// request is the original HTTP request that produced this response.
	request *http.Request

	// body is the cached response body, populated on first read.
	body []byte

	// bodyRead tracks whether the body has been read and cached.
	bodyRead bool

	// result holds the decode target for 2xx responses.
	result any

	// errorResult holds the decode target for non-2xx responses.
	errorResult any
}

// Body returns the response body as bytes.
//
// The body is read and cached on first access; subsequent calls return the
// cached value.
func (r *Response) Body() ([]byte, error) {
	if r.bodyRead {
		return r.body, nil
	}

	defer r.Response.Body.Close()
	body, err := io.ReadAll(r.Response.Body)
	if err != nil {
		return nil, err
	}

	r.body = body
	r.bodyRead = true
	return r.body, nil
}

// String returns the response body as a string.
func (r *Response) String() (string, error) {
	body, err := r.Body()
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// JSON decodes the response body into an untyped value with integer
// literals preserved as json.Number. An empty body yields nil with no
// error.
func (r *Response) JSON() (any, error) {
	body, err := r.Body()
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, nil
	}
	var v any
	if err := DecodeJSON(body, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// IsSuccess returns true if the response status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError returns true if the response status code is 4xx or 5xx.
func (r *Response) IsError() bool {
	return r.StatusCode >= 400
}

// decode reads the body and decodes it into the result or errorResult.
// Empty bodies pass through without a decode attempt.
func (r *Response) decode() error {
	body, err := r.Body()
	if err != nil {
		return err
	}

	if len(body) == 0 {
		return nil
	}

	if r.IsSuccess() && r.result != nil {
		return DecodeJSON(body, r.result)
	}

	if r.IsError() && r.errorResult != nil {
		return DecodeJSON(body, r.errorResult)
	}

	return nil
}

// DecodeJSON decodes JSON with number preservation: integer literals decode
// into json.Number wherever the target is untyped, so identifiers beyond
// float64's 53-bit mantissa keep full precision.
func DecodeJSON(body []byte, target any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	return dec.Decode(target)
}

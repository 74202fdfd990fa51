package musically

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// serializeFunc turns a parameter set into the canonical query string the
// signer signs.
type serializeFunc func(Params) string

// signState is the per-call request state the facade attaches to the
// context: the ordered parameter set and the serializer that reproduces
// the exact string being signed. It is created per call and discarded
// after dispatch.
type signState struct {
	params    Params
	serialize serializeFunc
}

type signStateKey struct{}

// withSignState attaches the per-call parameter state to the context.
func withSignState(ctx context.Context, st *signState) context.Context {
	return context.WithValue(ctx, signStateKey{}, st)
}

// signStateFrom extracts the per-call parameter state, if any.
func signStateFrom(ctx context.Context) (*signState, bool) {
	st, ok := ctx.Value(signStateKey{}).(*signState)
	return st, ok
}

// signRequest is the request interceptor every outgoing request passes
// through. It is stateless across calls and reentrant: everything it needs
// is derived from the request itself.
//
// Stages:
//  1. precondition: the request must carry a serializer, otherwise the
//     string being signed cannot be reproduced deterministically;
//  2. stamping: ts (Unix seconds) and _rticket (Unix milliseconds, a
//     nonce the origin uses against caching and replay) are merged into
//     the parameter set, overwriting any caller-supplied values;
//  3. canonical URL: base + path + "?" + serialize(stamped params);
//  4. delegation: SignURL produces the signed URL, which replaces the
//     request's destination wholesale. The unsigned parameter set is not
//     serialized again: the signature covers the canonical string, and
//     re-encoding afterwards would desynchronize the two.
//
// A signer failure aborts the request before it reaches the transport.
func (c *Client) signRequest(req *http.Request) error {
	st, ok := signStateFrom(req.Context())
	if !ok || st.serialize == nil {
		return ErrMissingSerializer
	}

	now := c.now()
	ts := now.Unix()

	stamped := st.params.Clone()
	stamped.Set("ts", strconv.FormatInt(ts, 10))
	stamped.Set("_rticket", strconv.FormatInt(now.UnixMilli(), 10))

	canonical := req.URL.String() + "?" + st.serialize(stamped)

	signed, err := c.cfg.SignURL(req.Context(), canonical, ts, c.device.DeviceID)
	if err != nil {
		return &SigningError{URL: canonical, Err: err}
	}

	u, err := url.Parse(signed)
	if err != nil {
		return fmt.Errorf("musically: parse signed url: %w", err)
	}
	req.URL = u
	req.Host = c.cfg.Host

	return nil
}

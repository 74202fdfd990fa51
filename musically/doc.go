// Package musically is a typed client for the musical.ly mobile-app HTTP
// API. It builds correctly-shaped, correctly-ordered, and signed requests,
// maintains session cookies, and decodes responses without losing precision
// on large numeric identifiers.
//
// The signature scheme is proprietary and reverse-engineered per app
// release, so signing is injected as a capability rather than implemented
// here: Config.SignURL receives the canonical URL, the stamped Unix
// timestamp, and the device id, and returns the signed URL the request is
// dispatched to.
//
//	client, err := musically.New(device, musically.Config{
//	    SignURL: func(ctx context.Context, rawURL string, ts int64, deviceID string) (string, error) {
//	        return mysigner.Sign(ctx, rawURL, ts, deviceID)
//	    },
//	})
//	if err != nil {
//	    return err
//	}
//
//	user, err := client.GetUser(ctx, "9586302078300000000")
//
// Every outgoing request passes through a signing interceptor that stamps
// ts and _rticket, serializes the parameter set in the fixed musical.ly
// key order, delegates to SignURL, and rewrites the request URL with the
// result. If the signer fails, the request is never dispatched.
package musically

// Package httpclient provides an instrumented HTTP client with a fluent
// request builder, interceptor chains, and OpenTelemetry tracing and metrics.
//
// # Quick Start
//
//	client := httpclient.New(
//	    httpclient.WithBaseURL("https://api.example.com"),
//	    httpclient.WithServiceName("my-service"),
//	)
//
//	var user User
//	resp, err := client.Request("GetUser").
//	    Path("/users/1").
//	    Decode(&user).
//	    Get(ctx)
//
// # Interceptors
//
// Request interceptors run in registration order before the request is
// dispatched. An interceptor error aborts the request: nothing reaches the
// transport. Response interceptors run after a response is received.
//
//	client := httpclient.New(
//	    httpclient.WithRequestInterceptor(httpclient.UserAgentInterceptor("MyApp/1.0")),
//	)
//
// # Decoding
//
// Response bodies are decoded with number preservation: integer literals
// decode into json.Number values when the target is untyped, so identifiers
// beyond float64 precision survive intact.
//
// # Testing
//
// MockTransport implements http.RoundTripper with stubbed responses and
// request recording:
//
//	mock := httpclient.NewMockTransport().StubResponse(200, `{"ok":true}`)
//	client := httpclient.New(httpclient.WithTransport(mock))
package httpclient

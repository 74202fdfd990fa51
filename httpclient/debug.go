package httpclient

import (
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// debugLogger is the package-level zerolog logger for debug output.
var debugLogger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// logRequest logs the outgoing request details.
func logRequest(logger zerolog.Logger, operation string, req *http.Request) {
	logger.Debug().
		Str("operation", operation).
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Str("host", req.Host).
		Msg("HTTP request")
}

// logResponse logs the response details.
func logResponse(logger zerolog.Logger, operation string, resp *http.Response, duration time.Duration) {
	logger.Debug().
		Str("operation", operation).
		Int("status", resp.StatusCode).
		Dur("duration_ms", duration).
		Int64("content_length", resp.ContentLength).
		Msg("HTTP response")
}

package backend

import (
	"log/slog"
	"net/http"
	"time"
)

// LoggingTransport emits one access-style log line per backend call.
type LoggingTransport struct {
	inner  http.RoundTripper
	logger *slog.Logger
}

var _ http.RoundTripper = &LoggingTransport{}

func NewLoggingTransport(inner http.RoundTripper, logger *slog.Logger) *LoggingTransport {
	if inner == nil {
		inner = http.DefaultTransport
	}

	return &LoggingTransport{
		inner:  inner,
		logger: logger,
	}
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := t.inner.RoundTrip(req)
	if err != nil {
		t.logger.ErrorContext(req.Context(),
			"Backend call failed",
			slog.String("latency", formatDuration(time.Since(start))),
			slog.String("host", req.URL.Host),
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	t.logger.InfoContext(req.Context(),
		"Backend call",
		slog.String("latency", formatDuration(time.Since(start))),
		slog.Int64("request-content-length", req.ContentLength),
		slog.String("host", req.URL.Host),
		slog.String("method", req.Method),
		slog.Int("status-code", resp.StatusCode),
		slog.String("path", req.URL.Path),
	)

	return resp, nil
}

// formatDuration formats a duration to one decimal point.
func formatDuration(d time.Duration) string {
	div := time.Duration(10)
	switch {
	case d > time.Second:
		d = d.Round(time.Second / div)
	case d > time.Millisecond:
		d = d.Round(time.Millisecond / div)
	case d > time.Microsecond:
		d = d.Round(time.Microsecond / div)
	case d > time.Nanosecond:
		d = d.Round(time.Nanosecond / div)
	}
	return d.String()
}

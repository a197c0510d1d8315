package observability

import (
	"io"
	"log/slog"
)

const (
	serviceName = "intervaltree"

	attrService = "service"
)

// NewLogger returns a JSON slog.Logger writing to w at the given level.
// Every record carries service=intervaltree so tree debug output can be told
// apart from the host application's logs.
func NewLogger(w io.Writer, level slog.Leveler) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})

	return slog.New(handler.WithAttrs([]slog.Attr{
		slog.String(attrService, serviceName),
	}))
}

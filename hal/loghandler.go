package hal

import (
	"bytes"
	"log/slog"
)

// NewLogHandler formats records as slog text lines and hands each one to l.
// Timestamps are dropped; the line sink adds its own when it needs them.
func NewLogHandler(l Logger, level slog.Leveler) slog.Handler {
	return slog.NewTextHandler(lineWriter{l: l}, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
}

type lineWriter struct {
	l Logger
}

func (w lineWriter) Write(p []byte) (int, error) {
	w.l.WriteLineBytes(bytes.TrimRight(p, "\n"))
	return len(p), nil
}

package hal

import (
	"log/slog"
	"testing"
)

type lineLogger struct {
	lines []string
}

func (l *lineLogger) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *lineLogger) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

func TestLogHandlerWritesOneLinePerRecord(t *testing.T) {
	l := &lineLogger{}
	log := slog.New(NewLogHandler(l, slog.LevelInfo))

	log.Debug("hidden")
	log.Info("rotation", "r", 1)

	if len(l.lines) != 1 {
		t.Fatalf("lines = %q", l.lines)
	}
	if want := "level=INFO msg=rotation r=1"; l.lines[0] != want {
		t.Fatalf("line = %q, want %q", l.lines[0], want)
	}
}

package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestInitWriterLevels(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	InitWriter(&buf, false)
	Debug("hidden")
	Info("shown", "sector", "Space")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line logged at info level: %q", out)
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "sector=Space") || !strings.Contains(out, "service=briefing") {
		t.Errorf("unexpected output %q", out)
	}

	buf.Reset()
	InitWriter(&buf, true)
	slog.Debug("visible")
	if !strings.Contains(buf.String(), "msg=visible") {
		t.Errorf("debug line missing with debug enabled: %q", buf.String())
	}
}

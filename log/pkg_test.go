package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

// swapDefault points the default logger at a buffer for the test's duration.
func swapDefault(t *testing.T, opts ...Option) *bytes.Buffer {
	t.Helper()

	original := defaultLog

	t.Cleanup(func() { defaultLog = original })

	var buf bytes.Buffer

	defaultLog = plain(&buf, opts...)

	return &buf
}

func TestPackage_Functions(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		level string
		log   func()
	}{
		{"TRACE", func() { Trace("m", slog.String("k", "v")) }},
		{"TRACE", func() { TraceContext(ctx, "m", slog.String("k", "v")) }},
		{"DEBUG", func() { Debug("m", slog.String("k", "v")) }},
		{"DEBUG", func() { DebugContext(ctx, "m", slog.String("k", "v")) }},
		{"INFO", func() { Info("m", slog.String("k", "v")) }},
		{"INFO", func() { InfoContext(ctx, "m", slog.String("k", "v")) }},
		{"WARN", func() { Warn("m", slog.String("k", "v")) }},
		{"WARN", func() { WarnContext(ctx, "m", slog.String("k", "v")) }},
		{"ERROR", func() { Error("m", slog.String("k", "v")) }},
		{"ERROR", func() { ErrorContext(ctx, "m", slog.String("k", "v")) }},
	}

	buf := swapDefault(t, WithLevel(LevelTrace))

	for _, tt := range tests {
		buf.Reset()
		tt.log()

		out := buf.String()
		if !strings.Contains(out, `"level":"`+tt.level+`"`) || !strings.Contains(out, `"k":"v"`) {
			t.Errorf("%s record = %q", tt.level, out)
		}
	}
}

func TestPackage_Config(t *testing.T) {
	buf := swapDefault(t)

	Debug("before")

	Config(WithLevel(LevelDebug))
	Debug("after")

	if out := buf.String(); strings.Contains(out, "before") || !strings.Contains(out, "after") {
		t.Errorf("Config did not change the level: %q", out)
	}

	if !Enabled(context.Background(), LevelDebug) || Default().Level() != LevelDebug {
		t.Error("Default logger does not reflect Config")
	}

	buf.Reset()
	With(slog.String("cmd", "fmt")).Info("scoped")

	if !strings.Contains(buf.String(), `"cmd":"fmt"`) {
		t.Errorf("With record = %q", buf.String())
	}
}

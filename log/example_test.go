package log_test

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/ardnew/elconf/log"
)

func Example() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatText),
		log.WithPretty(false),
		log.WithTimeLayout("none"))

	logger.Info("document loaded", slog.String("source", "net.conf"), slog.Int("node_count", 12))
	logger.Debug("not shown at the default level")

	// Output:
	// level=INFO msg="document loaded" source=net.conf node_count=12
}

func Example_trace() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelTrace),
		log.WithFormat(log.FormatJSON),
		log.WithPretty(false),
		log.WithTimeLayout("none"))

	ctx := context.Background()
	if logger.Enabled(ctx, log.LevelTrace) {
		logger.TraceContext(ctx, "parse start", slog.Int("length", 42))
	}

	// Output:
	// {"level":"TRACE","msg":"parse start","length":42}
}

func ExampleErr() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatText),
		log.WithPretty(false),
		log.WithTimeLayout("none"))

	logger.Warn("ignoring invalid configuration file", log.Err(errors.New("unexpected '}'")))

	// Output:
	// level=WARN msg="ignoring invalid configuration file" error="unexpected '}'"
}

func ExampleLogger_With() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatJSON),
		log.WithPretty(false),
		log.WithTimeLayout("none")).
		With(slog.String("command", "merge"))

	logger.Warn("root tags differ", slog.String("base", "network"), slog.String("change", "net"))

	// Output:
	// {"level":"WARN","msg":"root tags differ","command":"merge","base":"network","change":"net"}
}

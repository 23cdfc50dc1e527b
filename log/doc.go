// Package log is the structured logger shared by the elconf packages and
// command, built on [log/slog].
//
// A [Logger] is created with [Make] and configured with functional options.
// Its zero value discards everything, which lets library packages such as
// lang accept a Logger without forcing one on their callers:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("ms"))
//
//	doc, err := lang.Parse(ctx, src, lang.WithLogger(logger))
//	if err != nil {
//		logger.Error("parse failed", log.Err(err))
//	}
//
// # Levels
//
// Five levels are defined, from [LevelTrace] to [LevelError]. Trace sits
// below slog's debug level and carries per-stage parser detail. Use
// [Logger.Enabled] to skip building attributes that would be discarded.
//
// # Output
//
// Records are written as JSON ([FormatJSON], the default) or logfmt-style
// text ([FormatText]). With [WithPretty], records written to a terminal are
// colorized, and JSON records are indented. Pretty output is never written
// to regular files or pipes.
//
// Timestamps use [WithTimeLayout], which accepts the names of the [time]
// package layouts, short aliases such as "ms", or a custom layout. The
// layout "none" removes timestamps.
//
// # Default Logger
//
// The package-level functions write to a default logger on stderr, leaving
// stdout to command output. [Config] replaces its settings and [Default]
// returns it for injection.
package log

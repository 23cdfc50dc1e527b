package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ardnew/elconf/lang"
	"github.com/ardnew/elconf/log"
)

// Check parses documents and reports every error. Source snippets for
// syntax errors are written to the output; nothing is written for valid
// documents.
type Check struct {
	ParseFlags `embed:""`

	Quiet bool `help:"Do not print source snippets for errors." short:"q"`

	Source []string `arg:"" help:"Source input file(s) or '-' for stdin." name:"source" optional:"" type:"existingfile"`
}

// Run executes the check command. Each source is parsed on its own, so one
// broken file does not hide errors in the others.
func (c *Check) Run(ctx context.Context) error {
	sources := c.Source
	if len(sources) == 0 {
		sources = []string{stdinSource}
	}

	failed := 0

	for _, name := range sources {
		doc, err := c.loadFile(ctx, name)
		if err != nil {
			failed++

			c.report(ctx, name, err)

			continue
		}

		log.DebugContext(ctx, "ok",
			slog.String("file", name),
			slog.Int("top_level_count", len(doc.Top())))
	}

	if failed > 0 {
		return ErrCheck.With(
			slog.Int("failed", failed),
			slog.Int("total", len(sources)),
		)
	}

	return nil
}

func (c *Check) report(ctx context.Context, name string, err error) {
	log.ErrorContext(ctx, "invalid document",
		slog.String("file", name),
		log.Err(err))

	var le *lang.Error
	if c.Quiet || !errors.As(err, &le) {
		return
	}

	if snippet := le.Snippet(); snippet != "" {
		fmt.Fprintf(outputFrom(ctx), "%s\n%s", le.Error(), snippet)
	}
}

package cmd

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ardnew/elconf/lang"
	"github.com/ardnew/elconf/log"
)

// Merge applies change documents to a base document and prints the result.
type Merge struct {
	ParseFlags `embed:""`

	Defaults []string `help:"Documents whose top-level elements are added only where the result lacks that tag." placeholder:"FILE" type:"existingfile"`
	Indent   int      `default:"4" help:"Indent width for formatted output; 0 indents with tabs." short:"i"`

	Base    string   `arg:"" help:"Base document, or '-' for stdin."         type:"existingfile"`
	Changes []string `arg:"" help:"Change documents merged in order."        optional:"" type:"existingfile"`
}

var errNoRoot = errors.New("document has no root node (set --root-name or --single-root)")

// root loads name and returns its document, which must have a root node.
func (m *Merge) root(ctx context.Context, name string) (*lang.Document, error) {
	doc, err := m.loadFile(ctx, name)
	if err != nil {
		return nil, err
	}

	if doc.Root == nil {
		return nil, ErrMerge.Wrap(errNoRoot).With(slog.String("file", name))
	}

	return doc, nil
}

// Run executes the merge command.
func (m *Merge) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	base, err := m.root(ctx, m.Base)
	if err != nil {
		return err
	}

	for _, name := range m.Changes {
		change, err := m.root(ctx, name)
		if err != nil {
			return err
		}

		if change.Root.Tag != base.Root.Tag {
			log.WarnContext(ctx, "merging documents with different roots",
				slog.String("base", base.Root.Tag),
				slog.String("change", change.Root.Tag),
				slog.String("file", name))
		}

		lang.Merge(change.Root, base.Root)

		log.DebugContext(ctx, "merged", slog.String("file", name))
	}

	for _, name := range m.Defaults {
		defaults, err := m.root(ctx, name)
		if err != nil {
			return err
		}

		lang.Extend(base.Root, defaults.Root)

		log.DebugContext(ctx, "extended", slog.String("file", name))
	}

	if err := base.Format(outputFrom(ctx), lang.WithIndent(indentUnit(m.Indent))); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

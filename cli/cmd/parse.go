package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ardnew/elconf/lang"
	"github.com/ardnew/elconf/log"
)

// ParseFlags are the parser options shared by every command that reads
// documents.
type ParseFlags struct {
	RootName   string `default:"root" help:"Tag of the synthetic root node. Empty keeps top-level nodes unwrapped." name:"root-name"`
	SingleRoot bool   `help:"Require exactly one top-level element and use it as the root." name:"single-root"`
	IDElem     string `help:"Store block ids in a leading child element with this tag." name:"id-elem" placeholder:"TAG" xor:"id"`
	IDAttr     string `help:"Store block ids in an attribute with this key." name:"id-attr" placeholder:"KEY" xor:"id"`
	MaxDepth   int    `default:"0" help:"Maximum block nesting depth; 0 keeps the library default." name:"max-depth"`
}

// options returns the parse options selected by the flags. Errors report
// positions in the named file.
func (p ParseFlags) options(filename string) []lang.Option {
	opts := []lang.Option{
		lang.WithRootName(p.RootName),
		lang.WithSingleRoot(p.SingleRoot),
		lang.WithFilename(filename),
		lang.WithLogger(log.Default()),
		lang.WithMaxDepth(p.MaxDepth),
	}

	switch {
	case p.IDElem != "":
		opts = append(opts, lang.WithIDMapper(lang.MapIDToElem(p.IDElem)))
	case p.IDAttr != "":
		opts = append(opts, lang.WithIDMapper(lang.MapIDToAttr(p.IDAttr)))
	}

	return opts
}

// read returns the concatenation of sources, or of the fallback input chosen
// by [input] when sources is empty, with the name used in error positions.
func (p ParseFlags) read(ctx context.Context, sources []string) (text, name string, err error) {
	src, err := input(ctx, sources)
	if err != nil {
		return "", "", err
	}
	defer src.Close()

	var buf strings.Builder
	if _, err := src.WriteTo(&buf); err != nil {
		return "", "", ErrReadSource.Wrap(err).With(slog.String("source", src.Name()))
	}

	return buf.String(), src.Name(), nil
}

// parse parses text read from the named source.
func (p ParseFlags) parse(ctx context.Context, text, name string) (*lang.Document, error) {
	doc, err := lang.Parse(ctx, text, p.options(name)...)
	if err != nil {
		return nil, err
	}

	log.DebugContext(ctx, "document loaded",
		slog.String("source", name),
		slog.Bool("wrapped", doc.Wrapped()),
		slog.Int("top_level_count", len(doc.Top())))

	return doc, nil
}

// load reads and parses sources.
func (p ParseFlags) load(ctx context.Context, sources []string) (*lang.Document, error) {
	text, name, err := p.read(ctx, sources)
	if err != nil {
		return nil, err
	}

	return p.parse(ctx, text, name)
}

// loadFile reads and parses a single named file, or stdin for "-".
func (p ParseFlags) loadFile(ctx context.Context, name string) (*lang.Document, error) {
	return p.load(ctx, []string{name})
}

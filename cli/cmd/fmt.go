package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/ardnew/elconf/lang"
	"github.com/ardnew/elconf/log"
)

// Fmt parses input and writes it in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as native elconf syntax (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
	XML    XML    `cmd:""                    help:"Format as XML."`
	Struct Struct `cmd:""                    help:"Print the nested map form."`
}

// Native formats input as native elconf syntax.
type Native struct {
	ParseFlags `embed:""`

	Indent int  `default:"4" help:"Indent width for formatted output; 0 indents with tabs." short:"i"`
	Diff   bool `            help:"Print a line diff between input and formatted output."   short:"d" xor:"mode"`
	Write  bool `            help:"Rewrite the source file in place."                       short:"w" xor:"mode"`

	Source []string `arg:"" help:"Source input file(s) or '-' for stdin." name:"source" optional:"" type:"existingfile"`
}

// Run executes the native command.
func (f *Native) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	text, name, err := f.read(ctx, f.Source)
	if err != nil {
		return err
	}

	doc, err := f.parse(ctx, text, name)
	if err != nil {
		return lang.WrapError(err).With(slog.String("format", "native"))
	}

	var buf strings.Builder
	if err := doc.Format(&buf, lang.WithIndent(indentUnit(f.Indent))); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	formatted := buf.String()

	switch {
	case f.Diff:
		return writeDiff(outputFrom(ctx), name, text, formatted)

	case f.Write:
		return f.rewrite(ctx, text, formatted)

	default:
		_, err = io.WriteString(outputFrom(ctx), formatted)

		return err
	}
}

// rewrite replaces the single source file with its formatted content when
// the two differ.
func (f *Native) rewrite(ctx context.Context, before, after string) error {
	if len(f.Source) != 1 || f.Source[0] == stdinSource {
		return ErrWriteOutput.Wrap(errInPlace).With(slog.Any("source", f.Source))
	}

	path := f.Source[0]
	if before == after {
		log.DebugContext(ctx, "already formatted", slog.String("file", path))

		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("file", path))
	}

	if err := os.WriteFile(path, []byte(after), info.Mode().Perm()); err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("file", path))
	}

	log.InfoContext(ctx, "formatted", slog.String("file", path))

	return nil
}

var errInPlace = NewError("--write requires exactly one source file")

func indentUnit(width int) string {
	if width <= 0 {
		return "\t"
	}

	return strings.Repeat(" ", width)
}

// writeDiff writes a line diff from before to after. Nothing is written when
// they are equal.
func writeDiff(w io.Writer, name, before, after string) error {
	if before == after {
		return nil
	}

	if name == "" {
		name = "<input>"
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var buf strings.Builder

	fmt.Fprintf(&buf, "--- %s\n+++ %s (formatted)\n", name, name)

	for _, d := range diffs {
		prefix := " "

		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}

		for line := range strings.Lines(d.Text) {
			buf.WriteString(prefix)
			buf.WriteString(line)

			if !strings.HasSuffix(line, "\n") {
				buf.WriteString("\n\\ No newline at end of file\n")
			}
		}
	}

	_, err := io.WriteString(w, buf.String())

	return err
}

// eachTop calls fn for every top-level node of doc, writing sep between
// consecutive nodes.
func eachTop(w io.Writer, doc *lang.Document, sep string, fn func(*lang.Node) error) error {
	for i, n := range doc.Top() {
		if i > 0 && sep != "" {
			if _, err := io.WriteString(w, sep); err != nil {
				return err
			}
		}

		if err := fn(n); err != nil {
			return err
		}
	}

	return nil
}

// JSON parses input and outputs its nested map form as JSON.
// Each top-level node of an unwrapped document is written as its own value.
type JSON struct {
	ParseFlags `embed:""`

	Indent int `default:"2" help:"Indent width for JSON output; 0 writes compact JSON." short:"i"`

	Source []string `arg:"" help:"Source input file(s) or '-' for stdin." name:"source" optional:"" type:"existingfile"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	doc, err := j.load(ctx, j.Source)
	if err != nil {
		return lang.WrapError(err).With(slog.String("format", "json"))
	}

	w := outputFrom(ctx)

	return eachTop(w, doc, "", func(n *lang.Node) error {
		return lang.FormatJSON(w, n, j.Indent)
	})
}

// YAML parses input and outputs its nested map form as YAML.
// Top-level nodes of an unwrapped document are separate YAML documents.
type YAML struct {
	ParseFlags `embed:""`

	Indent int `default:"2" help:"Indent width for YAML output; 0 writes flow style." short:"i"`

	Source []string `arg:"" help:"Source input file(s) or '-' for stdin." name:"source" optional:"" type:"existingfile"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	doc, err := y.load(ctx, y.Source)
	if err != nil {
		return lang.WrapError(err).With(slog.String("format", "yaml"))
	}

	w := outputFrom(ctx)

	return eachTop(w, doc, "---\n", func(n *lang.Node) error {
		return lang.FormatYAML(ctx, w, n, y.Indent)
	})
}

// XML parses input and outputs it as an XML document.
// Top-level nodes of an unwrapped document are separate XML documents.
type XML struct {
	ParseFlags `embed:""`

	Source []string `arg:"" help:"Source input file(s) or '-' for stdin." name:"source" optional:"" type:"existingfile"`
}

// Run executes the xml command.
func (x *XML) Run(ctx context.Context) (err error) {
	doc, err := x.load(ctx, x.Source)
	if err != nil {
		return lang.WrapError(err).With(slog.String("format", "xml"))
	}

	w := outputFrom(ctx)

	return eachTop(w, doc, "", func(n *lang.Node) error {
		return lang.FormatXML(w, n)
	})
}

// Struct parses input and prints its nested map form with Go's %v verb.
type Struct struct {
	ParseFlags `embed:""`

	Children bool `help:"Print the root's body as a list instead of the root itself." short:"c"`

	Source []string `arg:"" help:"Source input file(s) or '-' for stdin." name:"source" optional:"" type:"existingfile"`
}

// Run executes the struct command.
func (s *Struct) Run(ctx context.Context) (err error) {
	doc, err := s.load(ctx, s.Source)
	if err != nil {
		return lang.WrapError(err).With(slog.String("format", "struct"))
	}

	w := outputFrom(ctx)

	return eachTop(w, doc, "", func(n *lang.Node) error {
		var v any = lang.ToStruct(n)
		if s.Children {
			v = lang.ToStructChildren(n)
		}

		_, err := fmt.Fprintln(w, v)

		return err
	})
}

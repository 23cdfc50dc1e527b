package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"slices"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/elconf/lang"
	"github.com/ardnew/elconf/log"
)

// maxSuggestions bounds the tags suggested when a query matches nothing.
const maxSuggestions = 3

// Get selects nodes with an XPath expression and prints them.
type Get struct {
	ParseFlags `embed:""`

	Node   bool   `help:"Print each matched node in native syntax instead of its value." short:"n"`
	Filter string `help:"Boolean expression over tag, text, attrs, and children that each match must satisfy." placeholder:"EXPR" short:"f"`
	Indent int    `default:"4" help:"Indent width for --node output; 0 indents with tabs." short:"i"`

	Query  string   `arg:"" help:"XPath expression evaluated against the document root."`
	Source []string `arg:"" help:"Source input file(s) or '-' for stdin." name:"source" optional:"" type:"existingfile"`
}

// filterEnv is the environment visible to a --filter expression.
type filterEnv struct {
	Tag      string            `expr:"tag"`
	Text     string            `expr:"text"`
	Attrs    map[string]string `expr:"attrs"`
	Children []string          `expr:"children"`
}

func newFilterEnv(n *lang.Node) filterEnv {
	env := filterEnv{
		Tag:      n.Tag,
		Text:     n.Text,
		Attrs:    make(map[string]string, len(n.Attrs)),
		Children: make([]string, len(n.Children)),
	}

	for k, v := range n.Attrs.All() {
		env.Attrs[k] = v
	}

	for i, c := range n.Children {
		env.Children[i] = c.Tag
	}

	return env
}

// compileFilter compiles a --filter expression. An empty expression yields a
// nil program that accepts every node.
func compileFilter(src string) (*vm.Program, error) {
	if src == "" {
		return nil, nil
	}

	prog, err := expr.Compile(src, expr.Env(filterEnv{}), expr.AsBool())
	if err != nil {
		return nil, ErrFilter.Wrap(err).With(slog.String("filter", src))
	}

	return prog, nil
}

func accept(prog *vm.Program, n *lang.Node) (bool, error) {
	if prog == nil {
		return true, nil
	}

	out, err := expr.Run(prog, newFilterEnv(n))
	if err != nil {
		return false, ErrFilter.Wrap(err).With(slog.String("tag", n.Tag))
	}

	ok, _ := out.(bool)

	return ok, nil
}

// Run executes the get command.
func (g *Get) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	q, err := lang.CompileQuery(g.Query)
	if err != nil {
		return err
	}

	prog, err := compileFilter(g.Filter)
	if err != nil {
		return err
	}

	doc, err := g.load(ctx, g.Source)
	if err != nil {
		return err
	}

	w := outputFrom(ctx)
	seen := make(map[*lang.Node]bool)
	count := 0

	for _, top := range doc.Top() {
		for owner, value := range q.Select(top) {
			ok, err := accept(prog, owner)
			if err != nil {
				return err
			}

			if !ok {
				continue
			}

			if g.Node {
				if seen[owner] {
					continue
				}

				seen[owner] = true
				err = lang.Format(w, owner, lang.WithIndent(indentUnit(g.Indent)))
			} else {
				_, err = fmt.Fprintln(w, value)
			}

			if err != nil {
				return ErrWriteOutput.Wrap(err)
			}

			count++
		}
	}

	if count == 0 {
		log.DebugContext(ctx, "no match",
			slog.String("query", g.Query),
			slog.Any("suggest", suggest(doc, g.Query)))
	}

	return nil
}

// lastStep extracts the name tested by the final location step of a query.
var lastStep = regexp.MustCompile(`([_A-Za-z][\w.\-]*)[^/]*$`)

// suggest ranks the distinct tags of doc by fuzzy similarity to the name in
// the last step of query.
func suggest(doc *lang.Document, query string) []string {
	m := lastStep.FindStringSubmatch(query)
	if m == nil {
		return nil
	}

	var tags []string
	for n := range doc.Iter("") {
		if !slices.Contains(tags, n.Tag) {
			tags = append(tags, n.Tag)
		}
	}

	matches := fuzzy.Find(m[1], tags)

	out := make([]string, 0, maxSuggestions)
	for _, match := range matches {
		if len(out) == maxSuggestions {
			break
		}

		out = append(out, match.Str)
	}

	return out
}

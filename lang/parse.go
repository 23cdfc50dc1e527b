package lang

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ardnew/elconf/log"
)

// Parse parses a document from a string.
//
// By default every top-level construct is attached to a synthetic node
// tagged [DefaultRootName]. See [WithRootName], [WithSingleRoot], and
// [WithIDMapper] for the alternatives.
//
// The returned error is derived from [ErrSyntax] for malformed input and
// from [ErrStructure] when the input is well-formed but violates the
// requested root contract. No partial document is returned on failure.
func Parse(ctx context.Context, s string, opts ...Option) (*Document, error) {
	cfg := makeConfig(opts...)

	cfg.logger.TraceContext(ctx, "parse start",
		slog.String("filename", cfg.filename),
		slog.Int("source_length", len(s)))

	toks, err := tokenize(cfg.filename, s)
	if err != nil {
		return nil, err
	}

	p := &parser{
		toks:     toks,
		source:   s,
		maxDepth: cfg.maxDepth,
	}

	body, err := p.parseDocument()
	if err != nil {
		return nil, err
	}

	cfg.logger.TraceContext(ctx, "syntax tree built",
		slog.Int("token_count", len(toks)),
		slog.Int("construct_count", len(body)))

	doc, err := transform(cfg, body)
	if err != nil {
		return nil, err
	}

	// Counting walks the whole tree.
	if cfg.logger.Enabled(ctx, log.LevelTrace) {
		cfg.logger.TraceContext(ctx, "parse complete",
			slog.Bool("wrapped", doc.Root != nil),
			slog.Int("node_count", doc.count()))
	}

	return doc, nil
}

// ParseReader reads all of r into memory and parses it as a document.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return Parse(ctx, string(data), opts...)
}

// ParseFile reads the named file and parses it as a document.
// The file name is used in error positions unless overridden by
// [WithFilename].
func ParseFile(ctx context.Context, name string, opts ...Option) (*Document, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).With(slog.String("file", name))
	}

	return Parse(ctx, string(data), append([]Option{WithFilename(name)}, opts...)...)
}

// ParseNode parses a document from a string and returns its root node.
// It fails with [ErrStructure] when the options request an unwrapped
// top-level sequence.
func ParseNode(ctx context.Context, s string, opts ...Option) (*Node, error) {
	doc, err := Parse(ctx, s, opts...)
	if err != nil {
		return nil, err
	}

	if doc.Root == nil {
		return nil, ErrStructure.Wrap(
			errors.New("document has no root node"),
		).With(slog.Int("top_level_count", len(doc.Nodes)))
	}

	return doc.Root, nil
}

type valueKind int

const (
	valueWord   valueKind = iota // bare value, used as scanned
	valueString                  // double-quoted, escapes resolved
	valueText                    // triple-backtick, raw
)

// syntaxValue is a value token as it appeared in the source.
type syntaxValue struct {
	kind valueKind
	raw  string
	pos  Position
}

// construct is a node of the syntax tree: either an attribute (attr set) or
// an element (values and block).
type construct struct {
	name   string
	pos    Position
	attr   *syntaxValue
	values []syntaxValue
	block  *block // nil when the element is terminated by ';'
}

func (c *construct) isAttr() bool { return c.attr != nil }

// block is the brace-delimited body of an element.
type block struct {
	text *syntaxValue
	body []*construct
}

// parser is a recursive-descent parser over a token slice.
type parser struct {
	toks     []token
	pos      int
	depth    int
	maxDepth int
	source   string
}

// parseDocument parses: construct* EOF.
func (p *parser) parseDocument() ([]*construct, error) {
	body := make([]*construct, 0)

	for !p.peek().eof() {
		c, err := p.parseConstruct()
		if err != nil {
			return nil, err
		}

		body = append(body, c)
	}

	return body, nil
}

// parseConstruct parses: NAME "=" value ";"? | NAME value* ( block | ";" ).
func (p *parser) parseConstruct() (*construct, error) {
	t := p.peek()
	if t.kind != tokWord || !nameRE.MatchString(t.value) {
		return nil, p.unexpected(t, "name")
	}

	p.next()

	c := &construct{name: t.value, pos: t.pos}

	if p.isPunct("=") {
		p.next()

		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		c.attr = &v

		if p.isPunct(";") {
			p.next()
		}

		return c, nil
	}

	for p.isValue() {
		c.values = append(c.values, p.value(p.next()))
	}

	switch {
	case p.isPunct("{"):
		b, err := p.parseBlock()
		if err != nil {
			return nil, err
		}

		c.block = b

	case p.isPunct(";"):
		p.next()

	default:
		if len(c.values) == 0 {
			return nil, p.unexpected(p.peek(), "value", `"="`, `"{"`, `";"`)
		}

		return nil, p.unexpected(p.peek(), "value", `"{"`, `";"`)
	}

	return c, nil
}

// parseBlock parses: "{" String? construct* "}".
func (p *parser) parseBlock() (*block, error) {
	open := p.next()

	if p.depth >= p.maxDepth {
		return nil, ErrSyntax.
			WithPosition(open.pos).
			WithSource(p.source).
			Wrap(errors.New("maximum nesting depth exceeded")).
			With(slog.Int("max_depth", p.maxDepth))
	}

	p.depth++
	defer func() { p.depth-- }()

	b := &block{body: make([]*construct, 0)}

	if p.peek().kind == tokString {
		v := p.value(p.next())
		b.text = &v
	}

	for {
		t := p.peek()

		switch {
		case t.eof():
			return nil, p.unexpected(t, "name", `"}"`)

		case p.isPunct("}"):
			p.next()

			return b, nil
		}

		c, err := p.parseConstruct()
		if err != nil {
			return nil, err
		}

		b.body = append(b.body, c)
	}
}

// parseValue parses: String | Text | Word.
func (p *parser) parseValue() (syntaxValue, error) {
	if !p.isValue() {
		return syntaxValue{}, p.unexpected(p.peek(), "value")
	}

	return p.value(p.next()), nil
}

func (p *parser) value(t token) syntaxValue {
	v := syntaxValue{raw: t.value, pos: t.pos}

	switch t.kind {
	case tokString:
		v.kind = valueString
	case tokText:
		v.kind = valueText
	default:
		v.kind = valueWord
	}

	return v
}

func (p *parser) peek() token { return p.toks[p.pos] }

// next consumes and returns the current token. The trailing end-of-input
// token is never consumed.
func (p *parser) next() token {
	t := p.toks[p.pos]
	if !t.eof() {
		p.pos++
	}

	return t
}

func (p *parser) isPunct(s string) bool {
	t := p.peek()

	return t.kind == tokPunct && t.value == s
}

func (p *parser) isValue() bool {
	switch p.peek().kind {
	case tokWord, tokString, tokText:
		return true
	default:
		return false
	}
}

func (p *parser) unexpected(t token, expected ...string) error {
	return ErrSyntax.
		WithPosition(t.pos).
		WithSource(p.source).
		Wrap(fmt.Errorf("unexpected %s, expected %s",
			t.describe(), strings.Join(expected, " or "))).
		With(
			slog.String("token", t.value),
			slog.String("expected", strings.Join(expected, ",")),
		)
}

// unquote resolves a value token into its text.
//
// Escapes in a double-quoted string are replaced one kind at a time, in a
// fixed order, each pass operating on the output of the previous one.
func unquote(v syntaxValue) string {
	switch v.kind {
	case valueString:
		s := v.raw[1 : len(v.raw)-1]
		for _, r := range escapes {
			s = strings.ReplaceAll(s, r[0], r[1])
		}

		return s

	case valueText:
		return v.raw[3 : len(v.raw)-3]

	default:
		return v.raw
	}
}

var escapes = [...][2]string{
	{`\"`, `"`},
	{`\\`, `\`},
	{`\/`, `/`},
	{`\b`, "\b"},
	{`\n`, "\n"},
	{`\r`, "\r"},
	{`\t`, "\t"},
}

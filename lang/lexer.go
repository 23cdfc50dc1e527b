package lang

import (
	"errors"
	"log/slog"
	"regexp"
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"
)

// Token class names produced by the lexer.
const (
	tokComment      = "Comment"
	tokBlockComment = "BlockComment"
	tokWhitespace   = "Whitespace"
	tokText         = "Text"
	tokString       = "String"
	tokWord         = "Word"
	tokPunct        = "Punct"
)

// definition is the token set of the language. Rules are tried in order at
// each input position and the first match wins, so comments take precedence
// over words that would otherwise swallow a leading '/'.
var definition = lexer.MustSimple([]lexer.SimpleRule{
	{Name: tokComment, Pattern: `(?:#|//)[^\n]*`},
	{Name: tokBlockComment, Pattern: `/\*(?s:.*?)\*/`},
	{Name: tokWhitespace, Pattern: `[ \t\f\r\n]+`},
	{Name: tokText, Pattern: "```(?s:.*?)```"},
	{Name: tokString, Pattern: `"(?:\\(?s:.)|[^"\\])*"`},
	{Name: tokWord, Pattern: `[A-Za-z0-9/:.,_\-]+`},
	{Name: tokPunct, Pattern: `[{}=;]`},
})

var (
	symbols = definition.Symbols()
	elided  = map[lexer.TokenType]bool{
		symbols[tokComment]:      true,
		symbols[tokBlockComment]: true,
		symbols[tokWhitespace]:   true,
	}
)

// nameRE matches the words that may be used as a tag or attribute key.
// Dotted names must not contain empty segments.
var nameRE = regexp.MustCompile(`^[_A-Za-z][A-Za-z0-9_\-]*(?:\.[A-Za-z0-9_\-]+)*$`)

// bareRE matches the values that may be written without quotes.
var bareRE = regexp.MustCompile(`^[A-Za-z0-9/:.,_\-]+$`)

// token is a lexical token with its class name resolved.
type token struct {
	kind  string
	value string
	pos   Position
}

func (t token) eof() bool { return t.kind == "" }

// describe returns a human-readable rendering of the token for diagnostics.
func (t token) describe() string {
	if t.eof() {
		return "end of input"
	}

	return strconv.Quote(t.value)
}

// tokenize splits source into tokens, dropping whitespace and comments.
// The returned slice always ends with an end-of-input token.
func tokenize(filename, source string) ([]token, error) {
	lex, err := definition.LexString(filename, source)
	if err != nil {
		return nil, lexError(err, filename, source)
	}

	names := make(map[lexer.TokenType]string, len(symbols))
	for name, typ := range symbols {
		names[typ] = name
	}

	var toks []token

	for {
		t, err := lex.Next()
		if err != nil {
			return nil, lexError(err, filename, source)
		}

		if t.EOF() {
			toks = append(toks, token{pos: position(t.Pos)})

			return toks, nil
		}

		if elided[t.Type] {
			continue
		}

		toks = append(toks, token{
			kind:  names[t.Type],
			value: t.Value,
			pos:   position(t.Pos),
		})
	}
}

func position(p lexer.Position) Position {
	return Position{
		Filename: p.Filename,
		Offset:   p.Offset,
		Line:     p.Line,
		Column:   p.Column,
	}
}

// lexError converts a lexer failure into an [ErrSyntax] carrying the
// position reported by the lexer.
func lexError(err error, filename, source string) error {
	var located interface {
		Message() string
		Position() lexer.Position
	}

	if errors.As(err, &located) {
		pos := position(located.Position())
		if pos.Filename == "" {
			pos.Filename = filename
		}

		return ErrSyntax.
			WithPosition(pos).
			WithSource(source).
			Wrap(errors.New(located.Message())).
			With(slog.String("stage", "lex"))
	}

	return ErrSyntax.
		WithSource(source).
		Wrap(err).
		With(slog.String("stage", "lex"))
}

package lang

import (
	"io"
	"strings"
	"unicode/utf8"
)

// DefaultIndent is the indentation unit of the native text form.
const DefaultIndent = "    "

// formatConfig holds the native text form options.
type formatConfig struct {
	indent string
	root   bool
}

// FormatOption configures the native text form.
type FormatOption func(*formatConfig)

// WithIndent sets the indentation unit used for each nesting level.
func WithIndent(indent string) FormatOption {
	return func(c *formatConfig) {
		c.indent = indent
	}
}

// WithRoot controls whether the node itself is written. When false, only the
// node's attributes and children are written, flush-left, with children
// separated by blank lines. The node's text is dropped since a bare string
// is not valid at the top level.
func WithRoot(root bool) FormatOption {
	return func(c *formatConfig) {
		c.root = root
	}
}

func makeFormatConfig(opts ...FormatOption) formatConfig {
	cfg := formatConfig{indent: DefaultIndent, root: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// Format writes n to w in native syntax.
//
// A node without attributes and children is written as "tag;" or
// "tag value;". Any other node is written as a block holding its text as a
// quoted string, then its attributes with keys padded to a common width,
// then its children.
//
// Values made only of [A-Za-z0-9/:.,_-] are written bare unless they begin
// with "//", which would read back as a comment; anything else is wrapped in
// double quotes without escaping, so values containing a double
// quote or a backslash do not survive a round trip unchanged.
func Format(w io.Writer, n *Node, opts ...FormatOption) error {
	_, err := io.WriteString(w, ToText(n, opts...))

	return err
}

// ToText returns n in native syntax. See [Format].
func ToText(n *Node, opts ...FormatOption) string {
	f := &formatter{formatConfig: makeFormatConfig(opts...)}

	if f.root {
		f.node(n, 0)
	} else {
		f.body(n, 0, true)
	}

	return f.buf.String()
}

type formatter struct {
	formatConfig

	buf strings.Builder
}

func (f *formatter) node(n *Node, depth int) {
	prefix := strings.Repeat(f.indent, depth)

	f.buf.WriteString(prefix)
	f.buf.WriteString(n.Tag)

	if n.IsLeaf() {
		if n.Text != "" {
			f.buf.WriteByte(' ')
			f.buf.WriteString(quote(n.Text))
		}

		f.buf.WriteString(";\n")

		return
	}

	f.buf.WriteString(" {\n")
	f.body(n, depth+1, false)
	f.buf.WriteString(prefix)
	f.buf.WriteString("}\n")
}

// body writes the text, attributes, and children of n at depth.
// At the top level the text is omitted and children are separated from
// whatever precedes them by a blank line.
func (f *formatter) body(n *Node, depth int, top bool) {
	prefix := strings.Repeat(f.indent, depth)

	if n.Text != "" && !top {
		f.buf.WriteString(prefix)
		f.buf.WriteByte('"')
		f.buf.WriteString(n.Text)
		f.buf.WriteString("\"\n")
	}

	width := 0
	for _, a := range n.Attrs {
		width = max(width, utf8.RuneCountInString(a.Key))
	}

	for _, a := range n.Attrs {
		f.buf.WriteString(prefix)
		f.buf.WriteString(a.Key)
		f.buf.WriteString(strings.Repeat(" ", width-utf8.RuneCountInString(a.Key)))
		f.buf.WriteString(" = ")
		f.buf.WriteString(quote(a.Value))
		f.buf.WriteByte('\n')
	}

	for _, c := range n.Children {
		if top && f.buf.Len() > 0 {
			f.buf.WriteByte('\n')
		}

		f.node(c, depth)
	}
}

// quote returns s bare when it is made only of bare-value characters and
// does not open a line comment, and wrapped in double quotes otherwise.
func quote(s string) string {
	if bareRE.MatchString(s) && !strings.HasPrefix(s, "//") {
		return s
	}

	return `"` + s + `"`
}

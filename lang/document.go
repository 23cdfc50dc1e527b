package lang

import (
	"io"
	"iter"
)

// Document is the result of a parse.
//
// Root is set when the top-level constructs were wrapped in a synthetic
// root node or when single-root mode was requested. Otherwise, with an empty
// root name, Root is nil and Nodes holds the top-level sequence.
type Document struct {
	Root  *Node
	Nodes []*Node

	wrapped bool
}

// NewDocument returns a document wrapping root.
func NewDocument(root *Node) *Document {
	return &Document{Root: root}
}

// Wrapped reports whether Root is a synthetic node added by the parser.
func (d *Document) Wrapped() bool { return d.wrapped }

// Top returns the top-level nodes: the root alone, or the unwrapped
// sequence.
func (d *Document) Top() []*Node {
	if d.Root != nil {
		return []*Node{d.Root}
	}

	return d.Nodes
}

// Find returns the first node selected by path, evaluated against each
// top-level node in turn.
func (d *Document) Find(path string) (*Node, error) {
	q, err := CompileQuery(path)
	if err != nil {
		return nil, err
	}

	for _, n := range d.Top() {
		if found := q.First(n); found != nil {
			return found, nil
		}
	}

	return nil, nil
}

// FindAll returns every node selected by path, evaluated against each
// top-level node in turn.
func (d *Document) FindAll(path string) ([]*Node, error) {
	q, err := CompileQuery(path)
	if err != nil {
		return nil, err
	}

	var out []*Node
	for _, n := range d.Top() {
		out = append(out, q.All(n)...)
	}

	return out, nil
}

// Iter returns a pre-order iterator over every node of the document whose
// tag equals tag. An empty tag or "*" matches every node.
func (d *Document) Iter(tag string) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, n := range d.Top() {
			if !n.walk(tag, yield) {
				return
			}
		}
	}
}

// Format writes the document in native syntax. The children of a synthetic
// root are written flush-left without the root itself, which is the form
// the parser wraps again on the next read. Top-level nodes of an unwrapped
// document are separated by blank lines.
func (d *Document) Format(w io.Writer, opts ...FormatOption) error {
	if d.Root != nil {
		return Format(w, d.Root, append([]FormatOption{WithRoot(!d.wrapped)}, opts...)...)
	}

	for i, n := range d.Nodes {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}

		if err := Format(w, n, opts...); err != nil {
			return err
		}
	}

	return nil
}

func (d *Document) count() int {
	total := 0
	for range d.Iter("") {
		total++
	}

	return total
}

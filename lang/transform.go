package lang

import (
	"errors"
	"log/slog"
	"strings"
)

// transform converts the top-level syntax constructs into a [Document]
// according to the root options in cfg.
func transform(cfg *config, body []*construct) (*Document, error) {
	t := &transformer{idMapper: cfg.idMapper}

	switch {
	case cfg.singleRoot:
		root, err := t.single(body)
		if err != nil {
			return nil, err
		}

		return &Document{Root: root}, nil

	case cfg.rootName == "":
		nodes, err := t.sequence(body)
		if err != nil {
			return nil, err
		}

		return &Document{Nodes: nodes}, nil

	default:
		root := NewNode(cfg.rootName)
		t.attach(root, body)

		return &Document{Root: root, wrapped: true}, nil
	}
}

// transformer resolves syntax constructs into document nodes.
type transformer struct {
	idMapper IDMapper
}

// attach resolves each construct and attaches the result beneath parent
// using dotted-path expansion, preserving document order.
func (t *transformer) attach(parent *Node, body []*construct) {
	for _, c := range body {
		if c.isAttr() {
			attachAttr(parent, c.name, unquote(*c.attr))

			continue
		}

		for _, n := range t.resolve(c) {
			attachNode(parent, n)
		}
	}
}

// resolve turns one element construct into zero or more sibling nodes.
//
// An element without nested constructs but with positional values yields
// one leaf per value (preceded by a leaf for the block text, if any).
// Otherwise it yields exactly one node; positional values alongside nested
// constructs are handed to the id-mapper.
func (t *transformer) resolve(c *construct) []*Node {
	values := make([]string, len(c.values))
	for i, v := range c.values {
		values[i] = unquote(v)
	}

	var text string
	if c.block != nil && c.block.text != nil {
		text = unquote(*c.block.text)
	}

	nested := c.block != nil && len(c.block.body) > 0

	if len(values) > 0 && !nested {
		nodes := make([]*Node, 0, len(values)+1)
		if text != "" {
			nodes = append(nodes, NewLeaf(c.name, text))
		}

		for _, v := range values {
			nodes = append(nodes, NewLeaf(c.name, v))
		}

		return nodes
	}

	n := NewLeaf(c.name, text)

	if nested {
		t.attach(n, c.block.body)

		if len(values) > 0 && t.idMapper != nil {
			t.idMapper(n, values)
		}
	}

	return []*Node{n}
}

// single resolves a document that must consist of exactly one element
// producing exactly one node. A dotted tag is expanded beneath a fresh
// intermediate chain whose head becomes the root.
func (t *transformer) single(body []*construct) (*Node, error) {
	if len(body) != 1 {
		return nil, ErrStructure.
			Wrap(errors.New("the document does not contain a single top level element")).
			With(slog.Int("top_level_count", len(body)))
	}

	c := body[0]
	if c.isAttr() {
		return nil, ErrStructure.
			WithPosition(c.pos).
			Wrap(errors.New("the top level construct is an attribute, not an element")).
			With(slog.String("key", c.name))
	}

	nodes := t.resolve(c)
	if len(nodes) != 1 {
		return nil, ErrStructure.
			WithPosition(c.pos).
			Wrap(errors.New("the top level element expands to multiple nodes")).
			With(slog.Int("node_count", len(nodes)))
	}

	return expandHead(nodes[0]), nil
}

// sequence resolves the top-level constructs without a wrapping node.
func (t *transformer) sequence(body []*construct) ([]*Node, error) {
	nodes := make([]*Node, 0, len(body))

	for _, c := range body {
		if c.isAttr() {
			return nil, ErrStructure.
				WithPosition(c.pos).
				Wrap(errors.New("top level attribute requires a root element")).
				With(slog.String("key", c.name))
		}

		for _, n := range t.resolve(c) {
			nodes = appendExpanded(nodes, n)
		}
	}

	return nodes, nil
}

// expandHead returns n itself when its tag has no separator, or the head of
// a new chain of nodes ending in n otherwise.
func expandHead(n *Node) *Node {
	head, rest, ok := strings.Cut(n.Tag, PathSeparator)
	if !ok {
		return n
	}

	root := NewNode(head)
	n.Tag = rest
	attachNode(root, n)

	return root
}

// appendExpanded appends n to a top-level sequence, reusing an earlier node
// of the sequence for the first segment of a dotted tag.
func appendExpanded(nodes []*Node, n *Node) []*Node {
	head, rest, ok := strings.Cut(n.Tag, PathSeparator)
	if !ok {
		return append(nodes, n)
	}

	for _, prev := range nodes {
		if prev.Tag == head {
			n.Tag = rest
			attachNode(prev, n)

			return nodes
		}
	}

	return append(nodes, expandHead(n))
}

package lang

import (
	"iter"
	"slices"
)

// Attr is a single key/value attribute of a [Node].
type Attr struct {
	Key   string
	Value string
}

// Attrs is an insertion-ordered set of attributes with unique keys.
type Attrs []Attr

// Len returns the number of attributes.
func (a Attrs) Len() int { return len(a) }

// Get returns the value of the attribute named key.
func (a Attrs) Get(key string) (string, bool) {
	if i := a.index(key); i >= 0 {
		return a[i].Value, true
	}

	return "", false
}

// Set assigns value to the attribute named key.
// An existing attribute keeps its position; a new one is appended.
func (a *Attrs) Set(key, value string) {
	if i := a.index(key); i >= 0 {
		(*a)[i].Value = value

		return
	}

	*a = append(*a, Attr{Key: key, Value: value})
}

// Delete removes the attribute named key, if present.
func (a *Attrs) Delete(key string) {
	if i := a.index(key); i >= 0 {
		*a = slices.Delete(*a, i, i+1)
	}
}

// Keys returns the attribute keys in insertion order.
func (a Attrs) Keys() []string {
	keys := make([]string, len(a))
	for i, attr := range a {
		keys[i] = attr.Key
	}

	return keys
}

// All returns an iterator over the attributes in insertion order.
func (a Attrs) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, attr := range a {
			if !yield(attr.Key, attr.Value) {
				return
			}
		}
	}
}

func (a Attrs) index(key string) int {
	return slices.IndexFunc(a, func(attr Attr) bool { return attr.Key == key })
}

// Node is the universal element of a document tree.
//
// Tag never contains a path separator once a node has been produced by the
// parser. Text is the node's direct scalar content; an empty Text means the
// node has none. Siblings may share a tag, which represents a repeated block.
type Node struct {
	Tag      string
	Attrs    Attrs
	Text     string
	Children []*Node
}

// NewNode returns an empty node with the given tag.
func NewNode(tag string) *Node {
	return &Node{Tag: tag}
}

// NewLeaf returns a node with the given tag and text and nothing else.
func NewLeaf(tag, text string) *Node {
	return &Node{Tag: tag, Text: text}
}

// IsLeaf reports whether the node has neither attributes nor children.
func (n *Node) IsLeaf() bool {
	return len(n.Attrs) == 0 && len(n.Children) == 0
}

// Append adds children to the end of the node's children.
func (n *Node) Append(children ...*Node) {
	n.Children = append(n.Children, children...)
}

// Insert adds children at index i of the node's children.
// Indices past the end append.
func (n *Node) Insert(i int, children ...*Node) {
	i = max(0, min(i, len(n.Children)))
	n.Children = slices.Insert(n.Children, i, children...)
}

// Child returns the first direct child with exactly the given tag.
func (n *Node) Child(tag string) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}

	return nil
}

// ChildrenByTag returns every direct child with exactly the given tag.
func (n *Node) ChildrenByTag(tag string) []*Node {
	var out []*Node

	for _, c := range n.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}

	return out
}

// Iter returns a pre-order iterator over the node and all of its
// descendants whose tag equals tag. An empty tag or "*" matches every node.
func (n *Node) Iter(tag string) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.walk(tag, yield)
	}
}

func (n *Node) walk(tag string, yield func(*Node) bool) bool {
	if tag == "" || tag == "*" || n.Tag == tag {
		if !yield(n) {
			return false
		}
	}

	for _, c := range n.Children {
		if !c.walk(tag, yield) {
			return false
		}
	}

	return true
}

// Clone returns a deep, independent copy of the node and its subtree.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	c := &Node{
		Tag:   n.Tag,
		Attrs: slices.Clone(n.Attrs),
		Text:  n.Text,
	}

	if len(n.Children) > 0 {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}

	return c
}

// Equal reports whether two trees have the same tags, attributes (in
// order), text, and children.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}

	if n.Tag != o.Tag || n.Text != o.Text ||
		!slices.Equal(n.Attrs, o.Attrs) ||
		len(n.Children) != len(o.Children) {
		return false
	}

	for i := range n.Children {
		if !n.Children[i].Equal(o.Children[i]) {
			return false
		}
	}

	return true
}

// String returns the node in native syntax using the default format options.
func (n *Node) String() string {
	return ToText(n)
}

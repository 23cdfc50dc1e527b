package lang

import (
	"iter"
	"log/slog"
	"strings"

	"github.com/antchfx/xpath"
)

// Query is a compiled XPath 1.0 expression evaluated over a tree.
//
// The tree is presented to XPath as follows: each node is an element named
// by its tag, its attributes are XPath attributes in insertion order, and
// non-empty text is a single text child preceding the element children.
// The node a query is evaluated against is the document element, so
//
//	vm                      direct children tagged vm
//	.//vm                   descendants tagged vm
//	./group[name="g1"]/vm   vm children of the group whose name child has text g1
//	network/@mode           mode attributes of network children
//
// all work relative to it, and absolute paths start above it.
type Query struct {
	expr *xpath.Expr
	src  string
}

// CompileQuery compiles an XPath expression.
func CompileQuery(expr string) (*Query, error) {
	e, err := xpath.Compile(expr)
	if err != nil {
		return nil, ErrQuery.Wrap(err).With(slog.String("query", expr))
	}

	return &Query{expr: e, src: expr}, nil
}

// String returns the source expression.
func (q *Query) String() string { return q.src }

// All returns every element selected by the query, in document order.
// Selected attributes and text are reported through their owning node.
// A query that selects nothing returns an empty slice.
func (q *Query) All(n *Node) []*Node {
	var out []*Node

	seen := make(map[*Node]bool)

	it := q.expr.Select(newNavigator(n))
	for it.MoveNext() {
		cur, ok := it.Current().(*navigator)
		if !ok {
			continue
		}

		if owner := cur.owner(); owner != nil && !seen[owner] {
			seen[owner] = true
			out = append(out, owner)
		}
	}

	return out
}

// First returns the first element selected by the query, or nil.
func (q *Query) First(n *Node) *Node {
	it := q.expr.Select(newNavigator(n))
	for it.MoveNext() {
		if cur, ok := it.Current().(*navigator); ok {
			if owner := cur.owner(); owner != nil {
				return owner
			}
		}
	}

	return nil
}

// Values returns the string value of every item selected by the query:
// attribute values for attributes, text for text nodes, and the
// concatenated text of elements.
func (q *Query) Values(n *Node) []string {
	var out []string

	it := q.expr.Select(newNavigator(n))
	for it.MoveNext() {
		out = append(out, it.Current().Value())
	}

	return out
}

// Select returns an iterator over every item selected by the query, in
// document order. It yields the node owning the item together with the
// item's string value, as reported by [Query.Values].
func (q *Query) Select(n *Node) iter.Seq2[*Node, string] {
	return func(yield func(*Node, string) bool) {
		it := q.expr.Select(newNavigator(n))
		for it.MoveNext() {
			cur, ok := it.Current().(*navigator)
			if !ok || cur.owner() == nil {
				continue
			}

			if !yield(cur.owner(), cur.Value()) {
				return
			}
		}
	}
}

// Evaluate evaluates the query and returns its raw XPath result: a float64,
// string, bool, or, for node sets, the selected nodes as by [Query.All].
func (q *Query) Evaluate(n *Node) any {
	switch v := q.expr.Evaluate(newNavigator(n)).(type) {
	case *xpath.NodeIterator:
		var out []*Node

		for v.MoveNext() {
			if cur, ok := v.Current().(*navigator); ok && cur.owner() != nil {
				out = append(out, cur.owner())
			}
		}

		return out

	default:
		return v
	}
}

// Find returns the first node selected by path, or nil when nothing matches.
// Only a malformed path is an error.
func (n *Node) Find(path string) (*Node, error) {
	q, err := CompileQuery(path)
	if err != nil {
		return nil, err
	}

	return q.First(n), nil
}

// FindAll returns every node selected by path.
// Only a malformed path is an error.
func (n *Node) FindAll(path string) ([]*Node, error) {
	q, err := CompileQuery(path)
	if err != nil {
		return nil, err
	}

	return q.All(n), nil
}

// FindText returns the text of the first node selected by path and whether
// one was found.
func (n *Node) FindText(path string) (string, bool, error) {
	found, err := n.Find(path)
	if err != nil || found == nil {
		return "", false, err
	}

	return found.Text, true, nil
}

// navigator implements xpath.NodeNavigator over a tree.
//
// The navigator keeps the chain of elements from the top node to the
// current one, since nodes do not link to their parents. An empty chain is
// the virtual document root above the top node.
type navigator struct {
	top   *Node
	path  []*Node // path[0] is top
	index []int   // index[i] is the position of path[i] among its siblings
	attr  int     // current attribute index, or -1
	text  bool    // positioned on the text of the current element
}

func newNavigator(top *Node) *navigator {
	return &navigator{
		top:   top,
		path:  []*Node{top},
		index: []int{0},
		attr:  -1,
	}
}

// current returns the element the navigator is on or inside, or nil at the
// document root.
func (nav *navigator) current() *Node {
	if len(nav.path) == 0 {
		return nil
	}

	return nav.path[len(nav.path)-1]
}

// owner returns the element that owns the current position.
func (nav *navigator) owner() *Node {
	return nav.current()
}

func (nav *navigator) NodeType() xpath.NodeType {
	switch {
	case nav.attr >= 0:
		return xpath.AttributeNode
	case nav.text:
		return xpath.TextNode
	case len(nav.path) == 0:
		return xpath.RootNode
	default:
		return xpath.ElementNode
	}
}

func (nav *navigator) LocalName() string {
	cur := nav.current()

	switch {
	case cur == nil || nav.text:
		return ""
	case nav.attr >= 0:
		return cur.Attrs[nav.attr].Key
	default:
		return cur.Tag
	}
}

func (*navigator) Prefix() string { return "" }

func (*navigator) NamespaceURL() string { return "" }

func (nav *navigator) Value() string {
	switch cur := nav.current(); {
	case cur == nil:
		return innerText(nav.top)
	case nav.attr >= 0:
		return cur.Attrs[nav.attr].Value
	case nav.text:
		return cur.Text
	default:
		return innerText(cur)
	}
}

func (nav *navigator) Copy() xpath.NodeNavigator {
	c := *nav
	c.path = append([]*Node(nil), nav.path...)
	c.index = append([]int(nil), nav.index...)

	return &c
}

func (nav *navigator) MoveToRoot() {
	nav.path = nav.path[:0]
	nav.index = nav.index[:0]
	nav.attr = -1
	nav.text = false
}

func (nav *navigator) MoveToParent() bool {
	switch {
	case nav.attr >= 0:
		nav.attr = -1
	case nav.text:
		nav.text = false
	case len(nav.path) == 0:
		return false
	default:
		nav.pop()
	}

	return true
}

func (nav *navigator) MoveToNextAttribute() bool {
	cur := nav.current()
	if cur == nil || nav.text || nav.attr+1 >= len(cur.Attrs) {
		return false
	}

	nav.attr++

	return true
}

func (nav *navigator) MoveToChild() bool {
	if nav.attr >= 0 || nav.text {
		return false
	}

	cur := nav.current()

	switch {
	case cur == nil:
		nav.push(nav.top, 0)
	case cur.Text != "":
		nav.text = true
	case len(cur.Children) > 0:
		nav.push(cur.Children[0], 0)
	default:
		return false
	}

	return true
}

func (nav *navigator) MoveToFirst() bool {
	switch {
	case nav.attr >= 0:
		return false
	case nav.text:
		return true
	case len(nav.path) <= 1:
		return len(nav.path) == 1
	}

	parent := nav.path[len(nav.path)-2]
	if parent.Text != "" {
		nav.pop()
		nav.text = true

		return true
	}

	nav.path[len(nav.path)-1] = parent.Children[0]
	nav.index[len(nav.index)-1] = 0

	return true
}

func (nav *navigator) MoveToNext() bool {
	if nav.attr >= 0 {
		return false
	}

	if nav.text {
		cur := nav.current()
		if len(cur.Children) == 0 {
			return false
		}

		nav.text = false
		nav.push(cur.Children[0], 0)

		return true
	}

	if len(nav.path) <= 1 {
		return false
	}

	parent := nav.path[len(nav.path)-2]

	i := nav.index[len(nav.index)-1] + 1
	if i >= len(parent.Children) {
		return false
	}

	nav.path[len(nav.path)-1] = parent.Children[i]
	nav.index[len(nav.index)-1] = i

	return true
}

func (nav *navigator) MoveToPrevious() bool {
	if nav.attr >= 0 || nav.text || len(nav.path) <= 1 {
		return false
	}

	parent := nav.path[len(nav.path)-2]

	i := nav.index[len(nav.index)-1]
	if i == 0 {
		if parent.Text == "" {
			return false
		}

		nav.pop()
		nav.text = true

		return true
	}

	nav.path[len(nav.path)-1] = parent.Children[i-1]
	nav.index[len(nav.index)-1] = i - 1

	return true
}

func (nav *navigator) MoveTo(other xpath.NodeNavigator) bool {
	o, ok := other.(*navigator)
	if !ok || o.top != nav.top {
		return false
	}

	nav.path = append(nav.path[:0], o.path...)
	nav.index = append(nav.index[:0], o.index...)
	nav.attr = o.attr
	nav.text = o.text

	return true
}

func (nav *navigator) push(n *Node, i int) {
	nav.path = append(nav.path, n)
	nav.index = append(nav.index, i)
}

func (nav *navigator) pop() {
	nav.path = nav.path[:len(nav.path)-1]
	nav.index = nav.index[:len(nav.index)-1]
}

// innerText returns the text of n followed by the text of its descendants in
// document order.
func innerText(n *Node) string {
	var b strings.Builder

	for d := range n.Iter("") {
		b.WriteString(d.Text)
	}

	return b.String()
}

package lang

import "strings"

// PathSeparator separates the segments of a dotted tag or attribute key.
const PathSeparator = "."

// descend walks from parent along segments, reusing the first child whose tag
// equals each segment and creating an empty child when none exists.
// It returns the node reached after the last segment.
func descend(parent *Node, segments []string) *Node {
	cur := parent

	for _, seg := range segments {
		next := cur.Child(seg)
		if next == nil {
			next = NewNode(seg)
			cur.Append(next)
		}

		cur = next
	}

	return cur
}

// attachNode appends n beneath parent, expanding a dotted tag into a chain
// of intermediate nodes. The node is renamed to the last segment of its tag.
func attachNode(parent, n *Node) {
	segs := strings.Split(n.Tag, PathSeparator)
	n.Tag = segs[len(segs)-1]
	descend(parent, segs[:len(segs)-1]).Append(n)
}

// attachAttr sets the attribute named by the last segment of a dotted key on
// the node reached by the preceding segments.
func attachAttr(parent *Node, key, value string) {
	segs := strings.Split(key, PathSeparator)
	descend(parent, segs[:len(segs)-1]).Attrs.Set(segs[len(segs)-1], value)
}

// Lookup follows a dotted path of direct-child tags from n and returns the
// node reached, or nil if any segment is missing. An empty path returns n.
func (n *Node) Lookup(path string) *Node {
	if path == "" {
		return n
	}

	cur := n

	for seg := range strings.SplitSeq(path, PathSeparator) {
		if cur = cur.Child(seg); cur == nil {
			return nil
		}
	}

	return cur
}

// SetPath assigns value to the attribute addressed by a dotted key,
// creating intermediate nodes as needed, exactly as the parser does for an
// attribute written inside n's block.
func (n *Node) SetPath(key, value string) {
	attachAttr(n, key, value)
}

// AppendPath appends child beneath n, expanding a dotted tag exactly as the
// parser does for an element written inside n's block.
func (n *Node) AppendPath(child *Node) {
	attachNode(n, child)
}

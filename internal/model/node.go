package model

import "strings"

// Node is an immutable tree node: a text node (string + marks, no
// children), a leaf non-text node (no children), or a container (ordered
// children, no text). Never mutated in place; every change produces a
// fresh Node.
type Node struct {
	typ     *NodeType
	attrs   Attrs
	marks   []*Mark // only meaningful for text nodes
	content *Fragment
	text    string
}

// Type returns the node's type.
func (n *Node) Type() *NodeType { return n.typ }

// Attrs returns the node's frozen attribute map.
func (n *Node) Attrs() Attrs { return n.attrs }

// Marks returns the node's mark set (always empty for non-text nodes).
func (n *Node) Marks() []*Mark { return n.marks }

// IsText reports whether this is a text node.
func (n *Node) IsText() bool { return n.typ.IsText() }

// IsLeaf reports whether this node can never have content.
func (n *Node) IsLeaf() bool { return n.typ.IsLeaf() }

// Text returns the node's text content (empty for non-text nodes).
func (n *Node) Text() string { return n.text }

// Content returns the node's child fragment (nil for text/leaf nodes).
func (n *Node) Content() *Fragment { return n.content }

// ChildCount returns the number of direct children (0 for text/leaf).
func (n *Node) ChildCount() int {
	if n.content == nil {
		return 0
	}
	return len(n.content.children)
}

// Child returns the i'th direct child.
func (n *Node) Child(i int) *Node { return n.content.children[i] }

// Children returns the node's direct children as a slice (empty for
// text/leaf nodes). The returned slice must not be mutated.
func (n *Node) Children() []*Node {
	if n.content == nil {
		return nil
	}
	return n.content.children
}

// NodeSize is the position-width this node occupies: for text the string
// length, for a leaf 1, for a container sum(child.NodeSize)+2 (the opening
// and closing boundaries).
func (n *Node) NodeSize() int {
	switch {
	case n.IsText():
		return len([]rune(n.text))
	case n.IsLeaf():
		return 1
	default:
		return n.content.Size() + 2
	}
}

// ContentSize is the text/child-position width inside this node: for text
// the text length, otherwise sum(child.NodeSize).
func (n *Node) ContentSize() int {
	if n.IsText() {
		return len([]rune(n.text))
	}
	if n.content == nil {
		return 0
	}
	return n.content.Size()
}

// TextContent concatenates descendant text.
func (n *Node) TextContent() string {
	if n.IsText() {
		return n.text
	}
	if n.content == nil {
		return ""
	}
	var b strings.Builder
	for _, c := range n.content.children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}

// Copy returns a new node of the same type/attrs/marks with content
// replaced wholesale. For text nodes, content is ignored and the original
// node is returned since text nodes have no children to replace.
func (n *Node) Copy(content *Fragment) *Node {
	if n.IsText() {
		return n
	}
	cp := *n
	if content == nil {
		content = EmptyFragment
	}
	cp.content = content
	return &cp
}

// WithText returns a copy of this text node with its string replaced,
// keeping type and marks. Panics if called on a non-text node.
func (n *Node) WithText(text string) *Node {
	if !n.IsText() {
		panic("model: WithText called on a non-text node")
	}
	cp := *n
	cp.text = text
	return &cp
}

// WithMarks returns a copy of this node with its mark set replaced.
func (n *Node) WithMarks(marks []*Mark) *Node {
	if MarkSetsEqual(n.marks, marks) {
		return n
	}
	cp := *n
	cp.marks = marks
	return &cp
}

// WithAttrs returns a copy of this node with attrs merged (shallow) over
// the existing attrs (used by SetNodeAttrs, ).
func (n *Node) WithAttrs(patch Attrs) *Node {
	cp := *n
	cp.attrs = n.attrs.Merge(patch)
	return &cp
}

// WithType returns a copy of this node with its type/attrs replaced but
// content and marks kept (used by SetBlockType).
func (n *Node) WithType(nt *NodeType, attrs Attrs) *Node {
	cp := *n
	cp.typ = nt
	cp.attrs = attrs
	return &cp
}

// Eq performs the structural deep equality defined in: type, attrs,
// marks-set, and children (or text) must all match.
func (n *Node) Eq(other *Node) bool {
	if n == other {
		return true
	}
	if n == nil || other == nil {
		return n == other
	}
	if n.typ != other.typ || !n.attrs.Equal(other.attrs) || !MarkSetsEqual(n.marks, other.marks) {
		return false
	}
	if n.IsText() {
		return n.text == other.text
	}
	return n.content.Eq(other.content)
}

// NodesBetween invokes cb(node, pos, parent, index) for every node
// overlapping [from, to); returning false from cb skips descent into that
// node's children. startPos is the position at which n's content starts
// (0 for the document), so pos is each node's absolute pre-node position.
func (n *Node) NodesBetween(from, to int, cb func(node *Node, pos int, parent *Node, index int) bool, startPos int) {
	if n.content == nil {
		return
	}
	n.content.nodesBetween(from, to, startPos, n, cb)
}

// descendants is a convenience wrapper over NodesBetween covering the
// whole node.
func (n *Node) Descendants(cb func(node *Node, pos int, parent *Node, index int) bool) {
	n.NodesBetween(0, n.ContentSize(), cb, 0)
}

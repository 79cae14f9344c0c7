package model

// Fragment is an ordered, immutable list of sibling nodes with a cached
// total size, used as node content.
type Fragment struct {
	children []*Node
	size     int
}

// EmptyFragment is the canonical fragment with no children.
var EmptyFragment = &Fragment{}

// NewFragment builds a Fragment from a slice of children, computing and
// caching the total size once.
func NewFragment(children []*Node) *Fragment {
	if len(children) == 0 {
		return EmptyFragment
	}
	f := &Fragment{children: append([]*Node{}, children...)}
	for _, c := range f.children {
		f.size += c.NodeSize()
	}
	return f
}

// Size returns sum(child.NodeSize()) across this fragment.
func (f *Fragment) Size() int {
	if f == nil {
		return 0
	}
	return f.size
}

// ChildCount returns the number of children in the fragment.
func (f *Fragment) ChildCount() int {
	if f == nil {
		return 0
	}
	return len(f.children)
}

// Child returns the i'th child.
func (f *Fragment) Child(i int) *Node { return f.children[i] }

// Children returns the fragment's children; callers must not mutate it.
func (f *Fragment) Children() []*Node {
	if f == nil {
		return nil
	}
	return f.children
}

// Eq performs structural deep equality across every child in order.
func (f *Fragment) Eq(other *Fragment) bool {
	if f.ChildCount() != other.ChildCount() {
		return false
	}
	for i := 0; i < f.ChildCount(); i++ {
		if !f.Child(i).Eq(other.Child(i)) {
			return false
		}
	}
	return true
}

// Append concatenates two fragments into a new one.
func (f *Fragment) Append(other *Fragment) *Fragment {
	if f.ChildCount() == 0 {
		return other
	}
	if other.ChildCount() == 0 {
		return f
	}
	return NewFragment(append(append([]*Node{}, f.children...), other.children...))
}

// nodesBetween walks this fragment's children, calling cb for every node
// whose span overlaps [from, to). startPos is the position just inside the
// opening boundary of the fragment's owner.
func (f *Fragment) nodesBetween(from, to, startPos int, parent *Node, cb func(node *Node, pos int, parent *Node, index int) bool) {
	if f == nil {
		return
	}
	pos := startPos
	for i, child := range f.children {
		size := child.NodeSize()
		end := pos + size
		if end > from && pos < to {
			descend := cb(child, pos, parent, i)
			if descend && !child.IsText() && !child.IsLeaf() {
				child.content.nodesBetween(from, to, pos+1, child, cb)
			}
		}
		pos = end
	}
}

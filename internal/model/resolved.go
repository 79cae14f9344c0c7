package model

import "fmt"

// PathEntry records, for one depth of the resolve walk, the container node,
// the index of the child that contains the target position within it, and
// the absolute offset of the start of that container's content.
type PathEntry struct {
	Node   *Node
	Index  int
	Offset int
}

// ResolvedPos is the derived context for an integer position: the full
// path from the root, the direct parent, parentOffset, depth, and
// precomputed nodeBefore/nodeAfter.
type ResolvedPos struct {
	Pos          int
	Path         []PathEntry
	Parent       *Node
	ParentOffset int
	Depth        int
	textOffset   int // >0 when pos lands strictly inside a text node
}

// Resolve produces a ResolvedPos for pos in O(depth·breadth), per Resolving
// out-of-range raises a range error.
func Resolve(doc *Node, pos int) (*ResolvedPos, error) {
	if pos < 0 || pos > doc.ContentSize() {
		return nil, fmt.Errorf("model: position %d out of range [0,%d]", pos, doc.ContentSize())
	}
	var path []PathEntry
	node := doc
	start := 0
	parentOffset := pos
	textOffset := 0
	for {
		index, offset := findIndex(node.content, parentOffset)
		rem := parentOffset - offset
		path = append(path, PathEntry{Node: node, Index: index, Offset: start + offset})
		if rem == 0 {
			break
		}
		child := node.Child(index)
		if child.IsText() || child.IsLeaf() {
			textOffset = rem
			break
		}
		parentOffset = rem - 1
		start += offset + 1
		node = child
	}
	last := path[len(path)-1]
	return &ResolvedPos{
		Pos: pos, Path: path, Parent: last.Node, ParentOffset: parentOffset,
		Depth: len(path) - 1, textOffset: textOffset,
	}, nil
}

// findIndex locates, within fragment f, the child containing pos and the
// absolute offset of that child's start, matching ProseMirror's
// Fragment.findIndex with round=-1 (prefer the following child at a shared
// boundary, so resolving there never descends).
func findIndex(f *Fragment, pos int) (index, offset int) {
	size := f.Size()
	if pos == 0 {
		return 0, 0
	}
	if pos == size {
		return f.ChildCount(), size
	}
	cur := 0
	for i := 0; i < f.ChildCount(); i++ {
		child := f.Child(i)
		end := cur + child.NodeSize()
		if end >= pos {
			if end == pos {
				return i + 1, end
			}
			return i, cur
		}
		cur = end
	}
	return f.ChildCount(), cur
}

// NodeBefore returns the node immediately before this position, or the
// node pos falls inside when it sits strictly within a text node.
func (r *ResolvedPos) NodeBefore() *Node {
	last := r.Path[len(r.Path)-1]
	if r.textOffset > 0 {
		return last.Node.Child(last.Index)
	}
	if last.Index == 0 {
		return nil
	}
	return last.Node.Child(last.Index - 1)
}

// NodeAfter returns the node immediately after this position, or the node
// pos falls inside when it sits strictly within a text node.
func (r *ResolvedPos) NodeAfter() *Node {
	last := r.Path[len(r.Path)-1]
	if last.Index >= last.Node.ChildCount() {
		return nil
	}
	return last.Node.Child(last.Index)
}

// Index returns the index of the child containing this position within
// its resolved-depth parent.
func (r *ResolvedPos) Index() int {
	return r.Path[len(r.Path)-1].Index
}

// TextOffset returns the offset of this position within the text node it
// falls inside (0 at a plain container boundary).
func (r *ResolvedPos) TextOffset() int { return r.textOffset }

// AtNodeBoundary reports whether this position sits between two siblings
// (rather than strictly inside a text node).
func (r *ResolvedPos) AtNodeBoundary() bool { return r.textOffset == 0 }

// Start returns the position at the start of the given depth's parent
// content (depth 0 is the document itself, whose content starts at 0).
func (r *ResolvedPos) Start(depth int) int {
	if depth == 0 {
		return 0
	}
	return r.Path[depth-1].Offset + 1
}

// NodeAt returns the container node at the given depth (0 = document).
func (r *ResolvedPos) NodeAt(depth int) *Node {
	return r.Path[depth].Node
}

package model

import "fmt"

// PosAtPath walks an index path from the document root, summing child
// sizes and adding +1 per container entry, and returns the position just
// before the node named by the path.
func PosAtPath(doc *Node, path []int) (int, error) {
	node := doc
	pos := 0
	for depth, idx := range path {
		if node.content == nil || idx < 0 || idx > node.ChildCount() {
			return 0, fmt.Errorf("model: invalid path %v at depth %d", path, depth)
		}
		for i := 0; i < idx; i++ {
			pos += node.Child(i).NodeSize()
		}
		if idx == node.ChildCount() {
			return pos, nil
		}
		child := node.Child(idx)
		if depth < len(path)-1 {
			if child.IsText() || child.IsLeaf() {
				return 0, fmt.Errorf("model: path %v descends into a leaf/text node", path)
			}
			pos++ // enter the container boundary
			node = child
		}
	}
	return pos, nil
}

// PathAtPos is the inverse of PosAtPath: given a resolved position, it
// returns the index path from the root to the node starting there.
func PathAtPos(doc *Node, pos int) ([]int, error) {
	r, err := Resolve(doc, pos)
	if err != nil {
		return nil, err
	}
	path := make([]int, len(r.Path))
	for i, entry := range r.Path {
		path[i] = entry.Index
	}
	return path, nil
}

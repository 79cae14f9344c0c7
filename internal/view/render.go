package view

import (
	"sort"

	"github.com/proseengine/core/internal/model"
)

// nodeMap records which DOM element renders which model node/position, so
// nodeDOM, coordsAtPos and posAtCoords can cross the model↔DOM boundary.
type nodeMap struct {
	byNode  map[*model.Node]DOMNode
	byPos   map[int]DOMNode
	posByEl map[DOMNode]int
}

func newNodeMap() *nodeMap {
	return &nodeMap{byNode: map[*model.Node]DOMNode{}, byPos: map[int]DOMNode{}, posByEl: map[DOMNode]int{}}
}

func (m *nodeMap) record(n *model.Node, pos int, el DOMNode) {
	m.byNode[n] = el
	m.byPos[pos] = el
	m.posByEl[el] = pos
}

// renderDoc builds a fresh Element tree for doc's children under a
// synthetic root, populating a nodeMap as it goes.
func renderDoc(doc *model.Node) (*Element, *nodeMap) {
	root := &Element{Tag: "div", Attrs: map[string]string{"data-editor-root": "true"}}
	m := newNodeMap()
	pos := 0
	for _, child := range doc.Children() {
		el := renderNode(child, pos, m) // pos is the child's pre-node model position
		root.Children = append(root.Children, el)
		pos += child.NodeSize()
	}
	return root, m
}

func renderNode(n *model.Node, pos int, m *nodeMap) DOMNode {
	if n.IsText() {
		return renderText(n, pos, m)
	}
	spec := n.Type().Spec.ToDOM
	if spec == nil {
		el := &Element{Tag: "span"}
		m.record(n, pos, el)
		return el
	}
	el := renderDOMSpec(spec(n), n, pos, m)
	m.record(n, pos, el)
	return el
}

func renderDOMSpec(d *model.DOMSpec, n *model.Node, pos int, m *nodeMap) *Element {
	el := &Element{Tag: d.Tag, Attrs: copyAttrs(d.Attrs)}
	childPos := pos + 1
	for _, c := range d.Children {
		if c.IsHole {
			for _, child := range n.Children() {
				childPos0 := childPos
				el.Children = append(el.Children, renderNode(child, childPos0, m))
				childPos += child.NodeSize()
			}
			continue
		}
		if c.Spec != nil {
			el.Children = append(el.Children, renderDOMSpec(c.Spec, n, pos, m))
		}
	}
	return el
}

// renderText wraps a text node's DOM text leaf in its marks' DOM specs,
// innermost-first; marks are applied in reverse-sorted (by type name)
// order so the last one wrapped — the outermost — is alphabetically
// smallest.
func renderText(n *model.Node, pos int, m *nodeMap) DOMNode {
	var leaf DOMNode = &Text{Data: n.Text()}
	marks := sortedMarksDescending(n.Marks())
	for _, mk := range marks {
		spec := mk.Type.Spec.ToDOM
		if spec == nil {
			continue
		}
		d := spec(mk)
		el := &Element{Tag: d.Tag, Attrs: copyAttrs(d.Attrs), Children: []DOMNode{leaf}}
		leaf = el
	}
	m.record(n, pos, leaf)
	return leaf
}

func sortedMarksDescending(marks []*model.Mark) []*model.Mark {
	out := append([]*model.Mark{}, marks...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Type.Name > out[j].Type.Name })
	return out
}

func copyAttrs(a map[string]string) map[string]string {
	if a == nil {
		return nil
	}
	out := make(map[string]string, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

package view

import "github.com/proseengine/core/internal/model"

// View renders a document into a headless element tree and keeps it in
// sync with EditorState updates via incremental diff/patch. Container is
// provided by the host; this package only manages its children.
type View struct {
	Container *Element
	Schema    *model.Schema
	doc       *model.Node
	nodes     *nodeMap
	geometry  GeometryProvider
}

// New performs the initial render into container.
func New(container *Element, doc *model.Node, schema *model.Schema) *View {
	root, nodes := renderDoc(doc)
	container.Children = root.Children
	container.Attrs = root.Attrs
	return &View{Container: container, Schema: schema, doc: doc, nodes: nodes}
}

// UpdateState diffs the old and new docs and patches the container in
// place.
func (v *View) UpdateState(newDoc *model.Node) {
	if newDoc.Eq(v.doc) {
		return
	}
	nodes := newNodeMap()
	patchChildren(v.Container, v.doc.Children(), newDoc.Children(), 0, nodes)
	v.doc = newDoc
	v.nodes = nodes
}

// NodeDOM returns the cached element last rendered for node, if any.
func (v *View) NodeDOM(node *model.Node) (DOMNode, bool) {
	el, ok := v.nodes.byNode[node]
	return el, ok
}

// Destroy clears the container and mapping tables.
func (v *View) Destroy() {
	v.Container.Children = nil
	v.nodes = newNodeMap()
	v.doc = nil
}

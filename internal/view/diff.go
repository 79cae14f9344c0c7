package view

import "github.com/proseengine/core/internal/model"

// patchChildren implements incremental diff/patch rule for one (old, new)
// child list under parentEl, rewriting parentEl.Children in place and
// recording the new position mapping in nodes. pos is the model position of
// parentEl's first child.
func patchChildren(parentEl *Element, oldChildren, newChildren []*model.Node, pos int, nodes *nodeMap) {
	existing := parentEl.Children
	var patched []DOMNode
	for i, nc := range newChildren {
		var el DOMNode
		if i < len(existing) && i < len(oldChildren) {
			el = patchOne(existing[i], oldChildren[i], nc, pos, nodes)
		} else {
			el = renderNode(nc, pos, nodes)
		}
		patched = append(patched, el)
		pos += nc.NodeSize()
	}
	parentEl.Children = patched
}

// patchOne applies the four-case rule to a single (old, new) node pair
// that already share a DOM element.
func patchOne(el DOMNode, oldN, newN *model.Node, pos int, nodes *nodeMap) DOMNode {
	// Case 1: same reference.
	if oldN == newN {
		recordDeep(oldN, pos, el, nodes)
		return el
	}
	// Case 2: different type.
	if oldN.Type() != newN.Type() {
		return renderNode(newN, pos, nodes)
	}
	if newN.IsText() {
		return patchText(el, oldN, newN, pos, nodes)
	}
	// Case 4: same type, non-text.
	if !model.Attrs(oldN.Attrs()).Equal(newN.Attrs()) {
		return renderNode(newN, pos, nodes)
	}
	e, ok := el.(*Element)
	if !ok {
		return renderNode(newN, pos, nodes)
	}
	nodes.record(newN, pos, e)
	patchChildren(e, oldN.Children(), newN.Children(), pos+1, nodes)
	return e
}

func patchText(el DOMNode, oldN, newN *model.Node, pos int, nodes *nodeMap) DOMNode {
	if !model.MarkSetsEqual(oldN.Marks(), newN.Marks()) {
		return renderNode(newN, pos, nodes)
	}
	if oldN.Text() == newN.Text() {
		recordDeep(newN, pos, el, nodes)
		return el
	}
	// marks equal, text differs: mutate the text node's data in place.
	if t, ok := innermostText(el); ok {
		t.Data = newN.Text()
		recordDeep(newN, pos, el, nodes)
		return el
	}
	return renderNode(newN, pos, nodes)
}

func innermostText(el DOMNode) (*Text, bool) {
	for {
		switch v := el.(type) {
		case *Text:
			return v, true
		case *Element:
			if len(v.Children) != 1 {
				return nil, false
			}
			el = v.Children[0]
		default:
			return nil, false
		}
	}
}

func recordDeep(n *model.Node, pos int, el DOMNode, nodes *nodeMap) {
	nodes.record(n, pos, el)
}

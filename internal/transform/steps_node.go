package transform

import (
	"github.com/proseengine/core/internal/model"
	"github.com/proseengine/core/internal/position"
)

// SetNodeAttrsStep replaces the attrs of the node starting at Pos.
type SetNodeAttrsStep struct {
	Pos   int
	Attrs model.Attrs
}

func (s *SetNodeAttrsStep) Apply(doc *model.Node) StepResult {
	_, n, err := nodeAtPos(doc, s.Pos)
	if err != nil {
		return fail(err.Error())
	}
	updated := n.WithAttrs(s.Attrs)
	newDoc, err := replaceNodeAt(doc, s.Pos, updated)
	if err != nil {
		return fail(err.Error())
	}
	return ok(newDoc)
}

func (s *SetNodeAttrsStep) Invert(docBefore *model.Node) Step {
	_, n, err := nodeAtPos(docBefore, s.Pos)
	if err != nil {
		return &SetNodeAttrsStep{Pos: s.Pos, Attrs: nil}
	}
	return &SetNodeAttrsStep{Pos: s.Pos, Attrs: n.Attrs()}
}

func (s *SetNodeAttrsStep) GetMap() *StepMap { return EmptyStepMap }

func (s *SetNodeAttrsStep) Map(m *Mapping) Step {
	pos, deleted := m.MapResult(s.Pos, position.BiasAfter)
	if deleted {
		return nil
	}
	return &SetNodeAttrsStep{Pos: pos, Attrs: s.Attrs}
}

func (s *SetNodeAttrsStep) ToJSON() map[string]interface{} {
	return map[string]interface{}{"type": "setNodeAttrs", "pos": s.Pos, "attrs": map[string]interface{}(s.Attrs)}
}

// SetBlockTypeStep changes the node type (and attrs) of the node starting
// at Pos while keeping its content, used for paragraph/heading toggles and
// list-item/code-block conversions.
type SetBlockTypeStep struct {
	Pos      int
	TypeName string
	Attrs    model.Attrs
}

func (s *SetBlockTypeStep) Apply(doc *model.Node) StepResult {
	_, n, err := nodeAtPos(doc, s.Pos)
	if err != nil {
		return fail(err.Error())
	}
	nt, err := doc.Type().Schema.NodeType(s.TypeName)
	if err != nil {
		return fail(err.Error())
	}
	computed, err := nt.ComputeAttrs(s.Attrs)
	if err != nil {
		return fail(err.Error())
	}
	if !nt.IsLeaf() && !doc.Type().Schema.ValidContent(s.TypeName, n.Children()) {
		return failf("content of node at %d is not valid for type %q", s.Pos, s.TypeName)
	}
	updated := n.WithType(nt, computed)
	newDoc, err := replaceNodeAt(doc, s.Pos, updated)
	if err != nil {
		return fail(err.Error())
	}
	return ok(newDoc)
}

func (s *SetBlockTypeStep) Invert(docBefore *model.Node) Step {
	_, n, err := nodeAtPos(docBefore, s.Pos)
	if err != nil {
		return &SetBlockTypeStep{Pos: s.Pos, TypeName: s.TypeName, Attrs: s.Attrs}
	}
	return &SetBlockTypeStep{Pos: s.Pos, TypeName: n.Type().Name, Attrs: n.Attrs()}
}

func (s *SetBlockTypeStep) GetMap() *StepMap { return EmptyStepMap }

func (s *SetBlockTypeStep) Map(m *Mapping) Step {
	pos, deleted := m.MapResult(s.Pos, position.BiasAfter)
	if deleted {
		return nil
	}
	return &SetBlockTypeStep{Pos: pos, TypeName: s.TypeName, Attrs: s.Attrs}
}

func (s *SetBlockTypeStep) ToJSON() map[string]interface{} {
	return map[string]interface{}{"type": "setBlockType", "pos": s.Pos, "nodeType": s.TypeName, "attrs": map[string]interface{}(s.Attrs)}
}

// WrapInStep wraps the node starting at Pos in a single new container node
// of the given type.
type WrapInStep struct {
	Pos      int
	TypeName string
	Attrs    model.Attrs
}

func (s *WrapInStep) Apply(doc *model.Node) StepResult {
	_, n, err := nodeAtPos(doc, s.Pos)
	if err != nil {
		return fail(err.Error())
	}
	wrapper, err := doc.Type().Schema.Node(s.TypeName, s.Attrs, []*model.Node{n}, nil)
	if err != nil {
		return fail(err.Error())
	}
	newDoc, err := replaceNodeAt(doc, s.Pos, wrapper)
	if err != nil {
		return fail(err.Error())
	}
	return ok(newDoc)
}

func (s *WrapInStep) Invert(docBefore *model.Node) Step {
	return &UnwrapStep{Pos: s.Pos}
}

func (s *WrapInStep) GetMap() *StepMap { return NewStepMap(s.Pos, 0, 2) }

func (s *WrapInStep) Map(m *Mapping) Step {
	pos, deleted := m.MapResult(s.Pos, position.BiasAfter)
	if deleted {
		return nil
	}
	return &WrapInStep{Pos: pos, TypeName: s.TypeName, Attrs: s.Attrs}
}

func (s *WrapInStep) ToJSON() map[string]interface{} {
	return map[string]interface{}{"type": "wrapIn", "pos": s.Pos, "nodeType": s.TypeName, "attrs": map[string]interface{}(s.Attrs)}
}

// UnwrapStep replaces the single-child container at Pos with its child,
// the inverse of WrapInStep.
type UnwrapStep struct {
	Pos int
}

func (s *UnwrapStep) Apply(doc *model.Node) StepResult {
	_, n, err := nodeAtPos(doc, s.Pos)
	if err != nil {
		return fail(err.Error())
	}
	if n.ChildCount() != 1 {
		return failf("node at %d does not have exactly one child to unwrap", s.Pos)
	}
	newDoc, err := replaceNodeAt(doc, s.Pos, n.Child(0))
	if err != nil {
		return fail(err.Error())
	}
	return ok(newDoc)
}

func (s *UnwrapStep) Invert(docBefore *model.Node) Step {
	_, n, err := nodeAtPos(docBefore, s.Pos)
	if err != nil {
		return &UnwrapStep{Pos: s.Pos}
	}
	return &WrapInStep{Pos: s.Pos, TypeName: n.Type().Name, Attrs: n.Attrs()}
}

func (s *UnwrapStep) GetMap() *StepMap { return NewStepMap(s.Pos, 2, 0) }

func (s *UnwrapStep) Map(m *Mapping) Step {
	pos, deleted := m.MapResult(s.Pos, position.BiasAfter)
	if deleted {
		return nil
	}
	return &UnwrapStep{Pos: pos}
}

func (s *UnwrapStep) ToJSON() map[string]interface{} {
	return map[string]interface{}{"type": "unwrap", "pos": s.Pos}
}

// replaceNodeAt swaps the node that begins at pos for replacement,
// keeping every sibling untouched.
func replaceNodeAt(doc *model.Node, pos int, replacement *model.Node) (*model.Node, error) {
	content, err := replaceNodeInFragment(doc.Content(), pos, 0, replacement)
	if err != nil {
		return nil, err
	}
	return doc.Copy(content), nil
}

func replaceNodeInFragment(f *model.Fragment, pos, cur int, replacement *model.Node) (*model.Fragment, error) {
	var out []*model.Node
	for i := 0; i < f.ChildCount(); i++ {
		child := f.Child(i)
		size := child.NodeSize()
		if cur == pos {
			out = append(out, replacement)
			out = append(out, f.Children()[i+1:]...)
			return model.NewFragment(out), nil
		}
		if cur < pos && pos < cur+size && !child.IsText() && !child.IsLeaf() {
			newContent, err := replaceNodeInFragment(child.Content(), pos, cur+1, replacement)
			if err != nil {
				return nil, err
			}
			out = append(out, child.Copy(newContent))
			out = append(out, f.Children()[i+1:]...)
			return model.NewFragment(out), nil
		}
		out = append(out, child)
		cur += size
	}
	return nil, errStep("no node found at the given position")
}

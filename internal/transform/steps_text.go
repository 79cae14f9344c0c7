package transform

import (
	"github.com/proseengine/core/internal/model"
	"github.com/proseengine/core/internal/position"
)

// InsertTextStep inserts text at a single position, merging into an
// existing text node when it lands inside one.
type InsertTextStep struct {
	Pos  int
	Text string
}

func (s *InsertTextStep) Apply(doc *model.Node) StepResult {
	if s.Text == "" {
		return ok(doc)
	}
	built, err := doc.Type().Schema.Text(s.Text, nil)
	if err != nil {
		return fail(err.Error())
	}
	newDoc, err := insertAt(doc, s.Pos, []*model.Node{built})
	if err != nil {
		return fail(err.Error())
	}
	return ok(newDoc)
}

func (s *InsertTextStep) Invert(docBefore *model.Node) Step {
	return &DeleteRangeStep{From: s.Pos, To: s.Pos + len([]rune(s.Text))}
}

func (s *InsertTextStep) GetMap() *StepMap {
	return NewStepMap(s.Pos, 0, len([]rune(s.Text)))
}

func (s *InsertTextStep) Map(m *Mapping) Step {
	pos, deleted := m.MapResult(s.Pos, position.BiasAfter)
	if deleted {
		return nil
	}
	return &InsertTextStep{Pos: pos, Text: s.Text}
}

func (s *InsertTextStep) ToJSON() map[string]interface{} {
	return map[string]interface{}{"type": "insertText", "pos": s.Pos, "text": s.Text}
}

// DeleteRangeStep removes [From, To).
type DeleteRangeStep struct {
	From, To int
}

func (s *DeleteRangeStep) Apply(doc *model.Node) StepResult {
	if s.From < 0 || s.To > doc.ContentSize() || s.From > s.To {
		return failf("delete range [%d,%d) out of bounds", s.From, s.To)
	}
	newDoc, err := deleteRange(doc, s.From, s.To)
	if err != nil {
		return fail(err.Error())
	}
	return ok(newDoc)
}

// Invert reconstructs the deleted slice from docBefore as a single
// ReplaceRangeStep insertion, since the removed span may span more than
// plain text (e.g. a whole list item).
func (s *DeleteRangeStep) Invert(docBefore *model.Node) Step {
	removed := extractRange(docBefore, s.From, s.To)
	return &ReplaceRangeStep{From: s.From, To: s.From, Content: removed}
}

func (s *DeleteRangeStep) GetMap() *StepMap {
	return NewStepMap(s.From, s.To-s.From, 0)
}

func (s *DeleteRangeStep) Map(m *Mapping) Step {
	from, fromDeleted := m.MapResult(s.From, position.BiasAfter)
	to, toDeleted := m.MapResult(s.To, position.BiasBefore)
	if fromDeleted && toDeleted && from == to {
		return nil
	}
	if from >= to {
		return nil
	}
	return &DeleteRangeStep{From: from, To: to}
}

func (s *DeleteRangeStep) ToJSON() map[string]interface{} {
	return map[string]interface{}{"type": "deleteRange", "from": s.From, "to": s.To}
}

// ReplaceRangeStep replaces [From, To) with Content: defines this as
// "deletion + insertion at from", which is exactly how Apply is implemented
// here rather than via ProseMirror's Slice/open-depth scheme.
type ReplaceRangeStep struct {
	From, To int
	Content  []*model.Node
}

func (s *ReplaceRangeStep) Apply(doc *model.Node) StepResult {
	if s.From < 0 || s.To > doc.ContentSize() || s.From > s.To {
		return failf("replace range [%d,%d) out of bounds", s.From, s.To)
	}
	deleted, err := deleteRange(doc, s.From, s.To)
	if err != nil {
		return fail(err.Error())
	}
	inserted, err := insertAt(deleted, s.From, s.Content)
	if err != nil {
		return fail(err.Error())
	}
	return ok(inserted)
}

func (s *ReplaceRangeStep) Invert(docBefore *model.Node) Step {
	removed := extractRange(docBefore, s.From, s.To)
	newSize := 0
	for _, n := range s.Content {
		newSize += n.NodeSize()
	}
	return &ReplaceRangeStep{From: s.From, To: s.From + newSize, Content: removed}
}

func (s *ReplaceRangeStep) GetMap() *StepMap {
	newSize := 0
	for _, n := range s.Content {
		newSize += n.NodeSize()
	}
	return NewStepMap(s.From, s.To-s.From, newSize)
}

func (s *ReplaceRangeStep) Map(m *Mapping) Step {
	from, fromDeleted := m.MapResult(s.From, position.BiasAfter)
	to, toDeleted := m.MapResult(s.To, position.BiasBefore)
	if fromDeleted && toDeleted && from == to && len(s.Content) == 0 {
		return nil
	}
	if from > to {
		return nil
	}
	return &ReplaceRangeStep{From: from, To: to, Content: s.Content}
}

func (s *ReplaceRangeStep) ToJSON() map[string]interface{} {
	content := make([]interface{}, len(s.Content))
	for i, n := range s.Content {
		content[i] = n.ToJSON()
	}
	return map[string]interface{}{"type": "replaceRange", "from": s.From, "to": s.To, "content": content}
}

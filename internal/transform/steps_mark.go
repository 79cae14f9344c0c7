package transform

import (
	"github.com/proseengine/core/internal/model"
	"github.com/proseengine/core/internal/position"
)

// AddMarkStep applies a mark to every text node within [From, To), honoring
// mark exclusion rules. Leaf nodes in range are left unmarked: marks are a
// text-run concept here, a deliberate simplification from ProseMirror's
// inline-node marking.
type AddMarkStep struct {
	From, To int
	Mark     *model.Mark
}

func (s *AddMarkStep) Apply(doc *model.Node) StepResult {
	newDoc, err := mapMarksInRange(doc, s.From, s.To, func(n *model.Node) *model.Node {
		return n.WithMarks(model.AddToSet(n.Marks(), s.Mark))
	})
	if err != nil {
		return fail(err.Error())
	}
	return ok(newDoc)
}

func (s *AddMarkStep) Invert(docBefore *model.Node) Step {
	return &RemoveMarkStep{From: s.From, To: s.To, Mark: s.Mark}
}

func (s *AddMarkStep) GetMap() *StepMap { return EmptyStepMap }

func (s *AddMarkStep) Map(m *Mapping) Step {
	from, fromDeleted := m.MapResult(s.From, position.BiasAfter)
	to, toDeleted := m.MapResult(s.To, position.BiasBefore)
	if (fromDeleted && toDeleted && from == to) || from >= to {
		return nil
	}
	return &AddMarkStep{From: from, To: to, Mark: s.Mark}
}

func (s *AddMarkStep) ToJSON() map[string]interface{} {
	return map[string]interface{}{"type": "addMark", "from": s.From, "to": s.To, "mark": s.Mark.ToJSON()}
}

// RemoveMarkStep removes a mark type from every text node within [From, To).
type RemoveMarkStep struct {
	From, To int
	Mark     *model.Mark
}

func (s *RemoveMarkStep) Apply(doc *model.Node) StepResult {
	newDoc, err := mapMarksInRange(doc, s.From, s.To, func(n *model.Node) *model.Node {
		return n.WithMarks(model.RemoveFromSet(n.Marks(), s.Mark))
	})
	if err != nil {
		return fail(err.Error())
	}
	return ok(newDoc)
}

// Invert re-adds the mark across the whole range. This is sound only when
// every text node in range previously carried an identical mark instance;
// callers that remove a mark from a range with mixed marking should prefer
// per-run AddMarkStep/RemoveMarkStep pairs built from the pre-image instead.
func (s *RemoveMarkStep) Invert(docBefore *model.Node) Step {
	return &AddMarkStep{From: s.From, To: s.To, Mark: s.Mark}
}

func (s *RemoveMarkStep) GetMap() *StepMap { return EmptyStepMap }

func (s *RemoveMarkStep) Map(m *Mapping) Step {
	from, fromDeleted := m.MapResult(s.From, position.BiasAfter)
	to, toDeleted := m.MapResult(s.To, position.BiasBefore)
	if (fromDeleted && toDeleted && from == to) || from >= to {
		return nil
	}
	return &RemoveMarkStep{From: from, To: to, Mark: s.Mark}
}

func (s *RemoveMarkStep) ToJSON() map[string]interface{} {
	return map[string]interface{}{"type": "removeMark", "from": s.From, "to": s.To, "mark": s.Mark.ToJSON()}
}

package commands

import (
	"github.com/proseengine/core/internal/model"
	"github.com/proseengine/core/internal/state"
)

// ToggleMark returns a Command that removes markType from the selection
// when every text run in range already carries it, and adds it otherwise.
// Over a collapsed selection it toggles storedMarks instead of touching
// the document.
func ToggleMark(markType *model.MarkType, attrs model.Attrs) Command {
	return func(s *state.EditorState, dispatch func(*state.Transaction)) bool {
		mark, err := s.Schema.Mark(markType.Name, attrs)
		if err != nil {
			return false
		}
		sel := s.Selection
		if sel.Empty() {
			var next []*model.Mark
			active := activeMarksAt(s)
			if model.ContainsMarkType(active, markType) {
				next = model.RemoveFromSet(active, mark)
			} else {
				next = model.AddToSet(active, mark)
			}
			if dispatch == nil {
				return true
			}
			tr := s.Tr().SetStoredMarks(next)
			return run(tr, dispatch)
		}
		fullyMarked := rangeFullyMarked(s.Doc, sel.From(), sel.To(), markType)
		tr := s.Tr()
		if fullyMarked {
			tr.RemoveMark(sel.From(), sel.To(), mark)
		} else {
			tr.AddMark(sel.From(), sel.To(), mark)
		}
		return run(tr, dispatch)
	}
}

// SetMark unconditionally applies a mark across the selection (or
// storedMarks when collapsed).
func SetMark(markType *model.MarkType, attrs model.Attrs) Command {
	return func(s *state.EditorState, dispatch func(*state.Transaction)) bool {
		mark, err := s.Schema.Mark(markType.Name, attrs)
		if err != nil {
			return false
		}
		sel := s.Selection
		if sel.Empty() {
			if dispatch == nil {
				return true
			}
			next := model.AddToSet(activeMarksAt(s), mark)
			tr := s.Tr().SetStoredMarks(next)
			return run(tr, dispatch)
		}
		tr := s.Tr().AddMark(sel.From(), sel.To(), mark)
		return run(tr, dispatch)
	}
}

// ClearFormatting removes every mark from the selection, or clears
// storedMarks at a collapsed cursor.
func ClearFormatting(s *state.EditorState, dispatch func(*state.Transaction)) bool {
	sel := s.Selection
	if sel.Empty() {
		if dispatch == nil {
			return len(s.StoredMarks) > 0
		}
		tr := s.Tr().SetStoredMarks([]*model.Mark{})
		return run(tr, dispatch)
	}
	active := marksInRange(s.Doc, sel.From(), sel.To())
	if len(active) == 0 {
		return false
	}
	tr := s.Tr()
	for _, mt := range active {
		tr.RemoveMark(sel.From(), sel.To(), &model.Mark{Type: mt})
	}
	return run(tr, dispatch)
}

// MarkActive reports whether markType is active across the whole
// selection (or in storedMarks/cursor marks when collapsed).
func MarkActive(s *state.EditorState, markType *model.MarkType) bool {
	if s.Selection.Empty() {
		return model.ContainsMarkType(activeMarksAt(s), markType)
	}
	return rangeFullyMarked(s.Doc, s.Selection.From(), s.Selection.To(), markType)
}

// GetActiveMarks returns every mark active at the current selection.
func GetActiveMarks(s *state.EditorState) []*model.Mark {
	if s.Selection.Empty() {
		return activeMarksAt(s)
	}
	var out []*model.Mark
	seen := map[*model.MarkType]bool{}
	s.Doc.NodesBetween(s.Selection.From(), s.Selection.To(), func(n *model.Node, pos int, parent *model.Node, index int) bool {
		if n.IsText() {
			for _, m := range n.Marks() {
				if !seen[m.Type] {
					seen[m.Type] = true
					out = append(out, m)
				}
			}
		}
		return true
	}, 0)
	return out
}

func activeMarksAt(s *state.EditorState) []*model.Mark {
	if s.StoredMarks != nil {
		return s.StoredMarks
	}
	return marksAtCursor(s.Doc, s.Selection.From())
}

// rangeFullyMarked reports whether every text run overlapping [from, to)
// carries a mark of markType.
func rangeFullyMarked(doc *model.Node, from, to int, markType *model.MarkType) bool {
	found := false
	all := true
	doc.NodesBetween(from, to, func(n *model.Node, pos int, parent *model.Node, index int) bool {
		if n.IsText() {
			found = true
			if !model.ContainsMarkType(n.Marks(), markType) {
				all = false
			}
		}
		return true
	}, 0)
	return found && all
}

// marksInRange collects the distinct mark types present anywhere in
// [from, to).
func marksInRange(doc *model.Node, from, to int) []*model.MarkType {
	var out []*model.MarkType
	seen := map[*model.MarkType]bool{}
	doc.NodesBetween(from, to, func(n *model.Node, pos int, parent *model.Node, index int) bool {
		if n.IsText() {
			for _, m := range n.Marks() {
				if !seen[m.Type] {
					seen[m.Type] = true
					out = append(out, m.Type)
				}
			}
		}
		return true
	}, 0)
	return out
}

// Package history implements the undo/redo stack backing Engine's
// undo/redo/canUndo/canRedo/clearHistory methods. Every committed
// transaction with at least one content step becomes one entry holding
// that transaction's
// steps inverted in reverse order, so undoing replays them against the
// post-transaction document to reconstruct the one before it, the same
// invertible-step architecture the rest of this module's transform package
// already implements.
package history

import (
	"github.com/proseengine/core/internal/model"
	"github.com/proseengine/core/internal/state"
	"github.com/proseengine/core/internal/transform"
)

// entry is one undoable unit: the steps that undo it, in the order they
// must be applied, and the selection to restore afterward.
type entry struct {
	invertedSteps   []transform.Step
	selectionBefore state.Selection
}

// History tracks past and future entries for one EditorState lineage.
// Depth limits how many entries past holds (0 = unlimited).
type History struct {
	past   []entry
	future []entry
	depth  int
}

// New builds a History bounded to depth undoable entries.
func New(depth int) *History {
	return &History{depth: depth}
}

// Track records tr as a new undoable entry if it changed the document,
// clearing the redo stack. Call this with the state tr was built against,
// right after it commits.
func (h *History) Track(before *state.EditorState, tr *state.Transaction) {
	if !tr.DocChanged() {
		return
	}
	doc := before.Doc
	inv := make([]transform.Step, len(tr.Steps))
	for i, s := range tr.Steps {
		inv[len(tr.Steps)-1-i] = s.Invert(doc)
		res := s.Apply(doc)
		doc = res.Doc
	}
	h.past = append(h.past, entry{invertedSteps: inv, selectionBefore: before.Selection})
	h.future = nil
	if h.depth > 0 && len(h.past) > h.depth {
		h.past = h.past[len(h.past)-h.depth:]
	}
}

// CanUndo reports whether there is an entry to undo.
func (h *History) CanUndo() bool { return len(h.past) > 0 }

// CanRedo reports whether there is an entry to redo.
func (h *History) CanRedo() bool { return len(h.future) > 0 }

// Clear drops all past and future entries.
func (h *History) Clear() {
	h.past = nil
	h.future = nil
}

// Undo builds the transaction that reverses the most recent entry,
// restoring the selection captured before it was applied, and moves that
// entry onto the redo stack.
func (h *History) Undo(s *state.EditorState) (*state.Transaction, bool) {
	if len(h.past) == 0 {
		return nil, false
	}
	last := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]

	tr := s.Tr()
	fwd := invertEntry(tr.Doc, last.invertedSteps)
	h.future = append(h.future, entry{invertedSteps: fwd, selectionBefore: s.Selection})
	applyAll(tr, last.invertedSteps)
	tr.SetSelection(last.selectionBefore)
	return tr, true
}

// Redo re-applies the most recently undone entry.
func (h *History) Redo(s *state.EditorState) (*state.Transaction, bool) {
	if len(h.future) == 0 {
		return nil, false
	}
	last := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]

	tr := s.Tr()
	back := invertEntry(tr.Doc, last.invertedSteps)
	h.past = append(h.past, entry{invertedSteps: back, selectionBefore: s.Selection})
	applyAll(tr, last.invertedSteps)
	tr.SetSelection(last.selectionBefore)
	return tr, true
}

func applyAll(tr *state.Transaction, steps []transform.Step) {
	for _, s := range steps {
		tr.ApplyStep(s)
	}
}

// invertEntry computes the steps that would undo applying steps in order,
// starting from doc, so an Undo's result can itself be redone and vice
// versa.
func invertEntry(doc *model.Node, steps []transform.Step) []transform.Step {
	inv := make([]transform.Step, len(steps))
	d := doc
	for i, s := range steps {
		inv[len(steps)-1-i] = s.Invert(d)
		d = s.Apply(d).Doc
	}
	return inv
}

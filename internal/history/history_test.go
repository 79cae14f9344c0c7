package history

import (
	"testing"

	"github.com/proseengine/core/internal/schemadefault"
	"github.com/proseengine/core/internal/state"
)

func newTestState(t *testing.T) *state.EditorState {
	t.Helper()
	schema, err := schemadefault.New()
	if err != nil {
		t.Fatalf("schemadefault.New: %v", err)
	}
	st, err := state.Create(schema, "hello", nil, nil)
	if err != nil {
		t.Fatalf("state.Create: %v", err)
	}
	return st
}

func TestUndoRevertsInsertedText(t *testing.T) {
	before := newTestState(t)
	h := New(10)

	tr := before.Tr().InsertText(1, "oh, ")
	after, err := before.Apply(tr)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	h.Track(before, tr)

	if !h.CanUndo() {
		t.Fatalf("CanUndo() = false after a tracked change")
	}
	undoTr, ok := h.Undo(after)
	if !ok {
		t.Fatalf("Undo() ok = false")
	}
	reverted, err := after.Apply(undoTr)
	if err != nil {
		t.Fatalf("Apply(undo): %v", err)
	}
	if reverted.Doc.TextContent() != before.Doc.TextContent() {
		t.Fatalf("reverted text = %q, want %q", reverted.Doc.TextContent(), before.Doc.TextContent())
	}
}

func TestRedoReappliesUndoneChange(t *testing.T) {
	before := newTestState(t)
	h := New(10)

	tr := before.Tr().InsertText(1, "oh, ")
	after, err := before.Apply(tr)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	h.Track(before, tr)

	undoTr, _ := h.Undo(after)
	reverted, _ := after.Apply(undoTr)

	if !h.CanRedo() {
		t.Fatalf("CanRedo() = false right after Undo")
	}
	redoTr, ok := h.Redo(reverted)
	if !ok {
		t.Fatalf("Redo() ok = false")
	}
	redone, err := reverted.Apply(redoTr)
	if err != nil {
		t.Fatalf("Apply(redo): %v", err)
	}
	if redone.Doc.TextContent() != after.Doc.TextContent() {
		t.Fatalf("redone text = %q, want %q", redone.Doc.TextContent(), after.Doc.TextContent())
	}
}

func TestTrackIgnoresNoOpTransactions(t *testing.T) {
	before := newTestState(t)
	h := New(10)
	tr := before.Tr() // no steps
	h.Track(before, tr)
	if h.CanUndo() {
		t.Fatalf("CanUndo() = true after tracking an unchanged transaction")
	}
}

func TestClearEmptiesBothStacks(t *testing.T) {
	before := newTestState(t)
	h := New(10)
	tr := before.Tr().InsertText(1, "x")
	after, _ := before.Apply(tr)
	h.Track(before, tr)
	h.Undo(after)

	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Fatalf("Clear() left CanUndo=%v CanRedo=%v, want both false", h.CanUndo(), h.CanRedo())
	}
}

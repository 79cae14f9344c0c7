package state

import (
	"testing"

	"github.com/proseengine/core/internal/schemadefault"
)

func newStateTestState(t *testing.T, content interface{}) *EditorState {
	t.Helper()
	schema, err := schemadefault.New()
	if err != nil {
		t.Fatalf("schemadefault.New: %v", err)
	}
	st, err := Create(schema, content, nil, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return st
}

// Scenario 1: typing into a fresh document grows the document and moves
// the caret forward by exactly the inserted length.
func TestFreshDocInsertText(t *testing.T) {
	st := newStateTestState(t, "")
	tr := st.Tr().InsertText(st.Selection.Head+1, "hi")
	if tr.Failed() != "" {
		t.Fatalf("InsertText failed: %s", tr.Failed())
	}
	next, err := st.Apply(tr)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := next.Doc.TextContent(); got != "hi" {
		t.Errorf("TextContent() = %q, want %q", got, "hi")
	}
}

// ToJSON/FromJSON round trip a state's doc and selection exactly.
func TestStateJSONRoundTrip(t *testing.T) {
	st := newStateTestState(t, "hello")
	sel := NewSelection(1, 3, st.Doc.ContentSize())
	st.Selection = sel

	raw := st.ToJSON()
	restored, err := FromJSON(st.Schema, raw, nil)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}

	if got, want := restored.Doc.TextContent(), st.Doc.TextContent(); got != want {
		t.Errorf("TextContent() = %q, want %q", got, want)
	}
	if restored.Selection.Anchor != sel.Anchor || restored.Selection.Head != sel.Head {
		t.Errorf("Selection = %+v, want %+v", restored.Selection, sel)
	}
}

// MarshalState/UnmarshalState round trip through actual JSON bytes, the
// byte-level persistence form a host stores directly.
func TestMarshalUnmarshalStateRoundTrip(t *testing.T) {
	st := newStateTestState(t, "hello world")
	data, err := st.MarshalState()
	if err != nil {
		t.Fatalf("MarshalState: %v", err)
	}

	restored, err := UnmarshalState(st.Schema, data, nil)
	if err != nil {
		t.Fatalf("UnmarshalState: %v", err)
	}
	if got, want := restored.Doc.TextContent(), st.Doc.TextContent(); got != want {
		t.Errorf("TextContent() = %q, want %q", got, want)
	}
}

// A selection mapped across a step that shrinks the document clamps into
// [0, contentSize] rather than pointing past the end.
func TestSelectionClampsToContentSize(t *testing.T) {
	st := newStateTestState(t, "hello")
	size := st.Doc.ContentSize()

	overshoot := Selection{Anchor: size + 50, Head: size + 50}
	clamped := overshoot.Clamp(size)
	if clamped.Anchor != size || clamped.Head != size {
		t.Errorf("Clamp() = %+v, want anchor/head == %d", clamped, size)
	}

	negative := Selection{Anchor: -10, Head: -10}.Clamp(size)
	if negative.Anchor != 0 || negative.Head != 0 {
		t.Errorf("Clamp() of negative selection = %+v, want 0", negative)
	}
}

// Deleting a range and reapplying its own inverse as a follow-up
// transaction reproduces the original document — the undo∘do≡id
// invariant exercised at the state layer.
func TestUndoRedoDeleteRoundTrips(t *testing.T) {
	st := newStateTestState(t, "hello world")
	before := st.Doc.TextContent()

	tr := st.Tr().DeleteRange(1, 6)
	if tr.Failed() != "" {
		t.Fatalf("DeleteRange failed: %s", tr.Failed())
	}
	deleted, err := st.Apply(tr)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if deleted.Doc.TextContent() == before {
		t.Fatalf("expected DeleteRange to change content")
	}

	undoStep := tr.Steps[len(tr.Steps)-1].Invert(st.Doc)
	undoTr := deleted.Tr()
	undoTr.ApplyStep(undoStep)
	if undoTr.Failed() != "" {
		t.Fatalf("undo step failed: %s", undoTr.Failed())
	}
	restored, err := deleted.Apply(undoTr)
	if err != nil {
		t.Fatalf("Apply(undo): %v", err)
	}
	if got := restored.Doc.TextContent(); got != before {
		t.Errorf("TextContent() after undo = %q, want %q", got, before)
	}
}

package proseengine

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/proseengine/core/internal/events"
	"github.com/proseengine/core/internal/state"
	"github.com/proseengine/core/internal/testsupport"
)

func TestEngineValueRoundTrips(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.SetValue("<p>hello <strong>world</strong></p>"); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	got := e.Value()
	if got != "<p>hello <strong>world</strong></p>" {
		t.Fatalf("Value() = %q", got)
	}
}

func TestEngineIsEmptyAndLength(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !e.IsEmpty() {
		t.Fatalf("fresh engine IsEmpty() = false")
	}
	if err := e.SetValue("<p>hi</p>"); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if e.IsEmpty() {
		t.Fatalf("IsEmpty() = true after SetValue")
	}
	if e.GetLength() != 2 {
		t.Fatalf("GetLength() = %d, want 2", e.GetLength())
	}
}

func TestEngineFormatTextAndIsMarkActive(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.SetValue("<p>hello</p>"); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	e.current.Selection = state.Selection{Anchor: 1, Head: 6}

	if !e.FormatText("bold", nil) {
		t.Fatalf("FormatText(bold) returned false")
	}
	if !e.IsMarkActive("bold") {
		t.Fatalf("IsMarkActive(bold) = false after FormatText")
	}
	if e.Value() != "<p><strong>hello</strong></p>" {
		t.Fatalf("Value() = %q", e.Value())
	}
}

func TestEngineUndoRedo(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.SetValue("<p>hi</p>"); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	e.history.Clear()

	e.current.Selection = state.Selection{Anchor: 3, Head: 3}
	tr := e.current.Tr().InsertText(3, "!")
	if !e.dispatch(tr, true) {
		t.Fatalf("dispatch failed")
	}
	if e.Value() != "<p>hi!</p>" {
		t.Fatalf("Value() = %q after insert", e.Value())
	}

	if !e.CanUndo() {
		t.Fatalf("CanUndo() = false")
	}
	if !e.Undo() {
		t.Fatalf("Undo() returned false")
	}
	if e.Value() != "<p>hi</p>" {
		t.Fatalf("Value() = %q after undo", e.Value())
	}
	if !e.Redo() {
		t.Fatalf("Redo() returned false")
	}
	if e.Value() != "<p>hi!</p>" {
		t.Fatalf("Value() = %q after redo", e.Value())
	}
}

func TestTextCursorMoveReportsChecklist(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.SetValue("<p>task</p>"); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if !e.ToggleCheckList() {
		t.Fatalf("ToggleCheckList() returned false")
	}

	var payload map[string]interface{}
	e.On("textCursorMove", func(ev events.Event) { payload = ev.Payload })
	e.emitTextCursorMove()

	if isChecklist, _ := payload["isChecklist"].(bool); !isChecklist {
		t.Fatalf("isChecklist = %v, want true after ToggleCheckList", payload["isChecklist"])
	}
	if listType, _ := payload["listType"].(string); listType != "bullet" {
		t.Fatalf("listType = %q, want bullet", payload["listType"])
	}
}

func TestTextCursorMovePlainListItemIsNotChecklist(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.SetValue("<p>task</p>"); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if !e.ToggleBulletList() {
		t.Fatalf("ToggleBulletList() returned false")
	}

	var payload map[string]interface{}
	e.On("textCursorMove", func(ev events.Event) { payload = ev.Payload })
	e.emitTextCursorMove()

	if isChecklist, _ := payload["isChecklist"].(bool); isChecklist {
		t.Fatalf("isChecklist = true for a plain bullet list item")
	}
}

func TestEngineSaveAndLoadStateRoundTrips(t *testing.T) {
	e, err := New()
	assert.NilError(t, err)
	assert.NilError(t, e.SetValue(testsupport.HTML(`
		<p>hello <strong>world</strong></p>
		<p>second paragraph</p>
	`)))
	e.current.Selection = state.Selection{Anchor: 2, Head: 5}

	data, err := e.SaveState()
	assert.NilError(t, err)

	loaded, err := New()
	assert.NilError(t, err)
	assert.NilError(t, loaded.LoadState(data))

	assert.Equal(t, loaded.Value(), e.Value())
	assert.Equal(t, loaded.current.Selection.Anchor, e.current.Selection.Anchor)
	assert.Equal(t, loaded.current.Selection.Head, e.current.Selection.Head)
}

func TestEngineValueSnapshotAfterFormatting(t *testing.T) {
	e, err := New()
	assert.NilError(t, err)
	input := testsupport.HTML(`
		<p>hello world</p>
	`)
	assert.NilError(t, e.SetValue(input))
	e.current.Selection = state.Selection{Anchor: 1, Head: 6}
	assert.Assert(t, e.FormatText("bold", nil))

	testsupport.MatchDocSnapshot(t, "TestEngineValueSnapshotAfterFormatting", input, e.Value())
}

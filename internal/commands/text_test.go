package commands

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/proseengine/core/internal/schemadefault"
	"github.com/proseengine/core/internal/state"
)

func newTextTestState(t *testing.T, text string) *state.EditorState {
	t.Helper()
	schema, err := schemadefault.New()
	assert.NilError(t, err)
	st, err := state.Create(schema, text, nil, nil)
	assert.NilError(t, err)
	return st
}

// Scenario 4: pressing Enter in the middle of a paragraph splits it into
// two sibling paragraphs at the cursor, with the cursor landing at the
// start of the second.
func TestSplitBlockSplitsParagraphAtCursor(t *testing.T) {
	st := newTextTestState(t, "helloworld")
	st.Selection = state.Caret(6) // between "hello" and "world"

	var applied *state.Transaction
	ok := SplitBlock(st, func(tr *state.Transaction) { applied = tr })
	assert.Assert(t, ok)
	next, err := st.Apply(applied)
	assert.NilError(t, err)

	assert.Equal(t, next.Doc.ChildCount(), 2)
	assert.Equal(t, next.Doc.Child(0).TextContent(), "hello")
	assert.Equal(t, next.Doc.Child(1).TextContent(), "world")
}

// ReplaceTextRange replaces exactly the given span, leaving the
// surrounding text untouched.
func TestReplaceTextRangeReplacesSpanOnly(t *testing.T) {
	st := newTextTestState(t, "hello world")

	var applied *state.Transaction
	ok := ReplaceTextRange(1, 6, "HEY")(st, func(tr *state.Transaction) { applied = tr })
	assert.Assert(t, ok)
	next, err := st.Apply(applied)
	assert.NilError(t, err)

	assert.Equal(t, next.Doc.TextContent(), "HEY world")
}

// DeleteRange at a selection touching the caret removes exactly that
// span and clamps the resulting selection within bounds.
func TestDeleteRangeRemovesSpan(t *testing.T) {
	st := newTextTestState(t, "hello world")

	var applied *state.Transaction
	ok := DeleteRange(5, 11)(st, func(tr *state.Transaction) { applied = tr })
	assert.Assert(t, ok)
	next, err := st.Apply(applied)
	assert.NilError(t, err)

	assert.Equal(t, next.Doc.TextContent(), "helld")
	assert.Assert(t, next.Selection.Head <= next.Doc.ContentSize())
}

package commands

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/proseengine/core/internal/model"
	"github.com/proseengine/core/internal/schemadefault"
	"github.com/proseengine/core/internal/state"
	"github.com/proseengine/core/internal/testsupport"
)

func newMarksTestState(t *testing.T, text string) *state.EditorState {
	t.Helper()
	schema, err := schemadefault.New()
	assert.NilError(t, err)
	st, err := state.Create(schema, text, nil, nil)
	assert.NilError(t, err)
	return st
}

func TestToggleMarkAddsThenRemovesBold(t *testing.T) {
	st := newMarksTestState(t, "hello")
	st.Selection = state.NewSelection(1, 6, st.Doc.ContentSize())
	boldType, err := st.Schema.MarkType("bold")
	assert.NilError(t, err)

	var applied *state.Transaction
	ok := ToggleMark(boldType, nil)(st, func(tr *state.Transaction) { applied = tr })
	assert.Assert(t, ok)
	next, err := st.Apply(applied)
	assert.NilError(t, err)

	assert.Assert(t, MarkActive(next, boldType))

	var removed *state.Transaction
	ok = ToggleMark(boldType, nil)(next, func(tr *state.Transaction) { removed = tr })
	assert.Assert(t, ok)
	back, err := next.Apply(removed)
	assert.NilError(t, err)
	assert.Assert(t, !MarkActive(back, boldType))
}

func TestGetActiveMarksAttrsMatchApplied(t *testing.T) {
	st := newMarksTestState(t, "hello")
	st.Selection = state.NewSelection(1, 6, st.Doc.ContentSize())
	linkType, err := st.Schema.MarkType("link")
	assert.NilError(t, err)

	wantAttrs := model.Attrs{"href": "https://example.com"}
	var applied *state.Transaction
	ok := SetMark(linkType, wantAttrs)(st, func(tr *state.Transaction) { applied = tr })
	assert.Assert(t, ok)
	next, err := st.Apply(applied)
	assert.NilError(t, err)

	active := GetActiveMarks(next)
	assert.Assert(t, len(active) == 1)
	gotAttrs := map[string]interface{}(active[0].Attrs)
	wantAttrsRaw := map[string]interface{}{"href": "https://example.com", "title": "", "target": ""}
	if diff := testsupport.Diff(wantAttrsRaw, gotAttrs); diff != "" {
		t.Fatalf("link attrs mismatch:\n%s", diff)
	}
}

package commands

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/proseengine/core/internal/model"
	"github.com/proseengine/core/internal/schemadefault"
	"github.com/proseengine/core/internal/state"
)

func newBlocksTestState(t *testing.T, text string) *state.EditorState {
	t.Helper()
	schema, err := schemadefault.New()
	assert.NilError(t, err)
	st, err := state.Create(schema, text, nil, nil)
	assert.NilError(t, err)
	return st
}

// Scenario 3: converting a paragraph to a heading with a given level sets
// the block's type and level attr, leaving its text untouched.
func TestHeadingConvertsParagraphAndSetsLevel(t *testing.T) {
	st := newBlocksTestState(t, "Title")
	st.Selection = state.Caret(1)

	var applied *state.Transaction
	ok := Heading(2)(st, func(tr *state.Transaction) { applied = tr })
	assert.Assert(t, ok)
	next, err := st.Apply(applied)
	assert.NilError(t, err)

	block := next.Doc.Child(0)
	assert.Equal(t, block.Type().Name, "heading")
	assert.Equal(t, block.TextContent(), "Title")
	level, _ := block.Attrs()["level"].(int)
	assert.Equal(t, level, 2)
}

// SetBlockType to codeBlock flattens a richer textblock (one carrying marks) down
// to its plain text content, since codeBlock only accepts text* content.
// This exercises the ReplaceRange-then-SetBlockType sequence with no
// trailing selection override — the path a bias-dependent StepMap
// boundary bug would leave at the wrong offset.
func TestSetBlockTypeToCodeBlockFlattensMarkedText(t *testing.T) {
	st := newBlocksTestState(t, "")
	boldType, err := st.Schema.MarkType("bold")
	assert.NilError(t, err)
	bold, err := st.Schema.Mark("bold", nil)
	assert.NilError(t, err)

	plain, err := st.Schema.Text("hello ", nil)
	assert.NilError(t, err)
	bolded, err := st.Schema.Text("world", []*model.Mark{bold})
	assert.NilError(t, err)
	para, err := st.Schema.Node("paragraph", nil, []*model.Node{plain, bolded}, nil)
	assert.NilError(t, err)
	doc, err := st.Schema.Node(st.Schema.TopType().Name, nil, []*model.Node{para}, nil)
	assert.NilError(t, err)
	st.Doc = doc
	st.Selection = state.Caret(1)

	var applied *state.Transaction
	ok := SetBlockType("codeBlock", nil)(st, func(tr *state.Transaction) { applied = tr })
	assert.Assert(t, ok)
	next, err := st.Apply(applied)
	assert.NilError(t, err)

	block := next.Doc.Child(0)
	assert.Equal(t, block.Type().Name, "codeBlock")
	assert.Equal(t, block.TextContent(), "hello world")
	assert.Assert(t, !MarkActive(next, boldType))

	// The selection must land within the new block's content, not at a
	// stale offset computed as if the replaced range's boundary shifted
	// under bias.
	assert.Assert(t, next.Selection.Head >= 1 && next.Selection.Head <= 1+block.ContentSize())
}

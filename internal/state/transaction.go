package state

import (
	"github.com/proseengine/core/internal/model"
	"github.com/proseengine/core/internal/transform"
)

// Transaction accumulates a sequence of Steps against a starting document,
// exposing one builder method per kind of edit. Each builder applies its
// step immediately and records it; a failed step is reported through
// Failed rather than panicking, so command code can check tr.Failed() after
// every call.
type Transaction struct {
	schema      *model.Schema
	before      *model.Node
	Doc         *model.Node
	Steps       []transform.Step
	Maps        []*transform.StepMap
	Selection   Selection
	StoredMarks []*model.Mark
	failed      string
}

// NewTransaction starts a Transaction from doc with the given selection.
func NewTransaction(schema *model.Schema, doc *model.Node, sel Selection) *Transaction {
	return &Transaction{schema: schema, before: doc, Doc: doc, Selection: sel}
}

// Failed reports the first step failure recorded on this transaction, if
// any.
func (tr *Transaction) Failed() string { return tr.failed }

// DocChanged reports whether any step has been applied.
func (tr *Transaction) DocChanged() bool { return len(tr.Steps) > 0 }

// Mapping returns the composed Mapping of every step applied so far, used
// to remap positions computed against the pre-transaction document.
func (tr *Transaction) Mapping() *transform.Mapping {
	return transform.NewMapping(tr.Maps...)
}

// ApplyStep applies an already-constructed Step directly, the primitive a
// history plugin needs to replay inverted steps; every builder method above
// is a thin wrapper around the same mechanism.
func (tr *Transaction) ApplyStep(s transform.Step) *Transaction {
	return tr.step(s)
}

// step applies s to the current doc, recording it on success and the
// failure message (without mutating Doc) on failure.
func (tr *Transaction) step(s transform.Step) *Transaction {
	if tr.failed != "" {
		return tr
	}
	res := s.Apply(tr.Doc)
	if !res.Ok() {
		tr.failed = res.Failed
		return tr
	}
	tr.Doc = res.Doc
	tr.Steps = append(tr.Steps, s)
	tr.Maps = append(tr.Maps, s.GetMap())
	tr.Selection = tr.Selection.Map(transform.NewMapping(s.GetMap())).Clamp(tr.Doc.ContentSize())
	return tr
}

// InsertText appends an InsertTextStep.
func (tr *Transaction) InsertText(pos int, text string) *Transaction {
	return tr.step(&transform.InsertTextStep{Pos: pos, Text: text})
}

// DeleteRange appends a DeleteRangeStep.
func (tr *Transaction) DeleteRange(from, to int) *Transaction {
	return tr.step(&transform.DeleteRangeStep{From: from, To: to})
}

// ReplaceRange appends a ReplaceRangeStep.
func (tr *Transaction) ReplaceRange(from, to int, content []*model.Node) *Transaction {
	return tr.step(&transform.ReplaceRangeStep{From: from, To: to, Content: content})
}

// AddMark appends an AddMarkStep.
func (tr *Transaction) AddMark(from, to int, mark *model.Mark) *Transaction {
	return tr.step(&transform.AddMarkStep{From: from, To: to, Mark: mark})
}

// RemoveMark appends a RemoveMarkStep.
func (tr *Transaction) RemoveMark(from, to int, mark *model.Mark) *Transaction {
	return tr.step(&transform.RemoveMarkStep{From: from, To: to, Mark: mark})
}

// SetNodeAttrs appends a SetNodeAttrsStep.
func (tr *Transaction) SetNodeAttrs(pos int, attrs model.Attrs) *Transaction {
	return tr.step(&transform.SetNodeAttrsStep{Pos: pos, Attrs: attrs})
}

// SetBlockType appends a SetBlockTypeStep.
func (tr *Transaction) SetBlockType(pos int, typeName string, attrs model.Attrs) *Transaction {
	return tr.step(&transform.SetBlockTypeStep{Pos: pos, TypeName: typeName, Attrs: attrs})
}

// WrapIn appends a WrapInStep.
func (tr *Transaction) WrapIn(pos int, typeName string, attrs model.Attrs) *Transaction {
	return tr.step(&transform.WrapInStep{Pos: pos, TypeName: typeName, Attrs: attrs})
}

// Unwrap appends an UnwrapStep.
func (tr *Transaction) Unwrap(pos int) *Transaction {
	return tr.step(&transform.UnwrapStep{Pos: pos})
}

// SetSelection replaces the transaction's selection directly, e.g. after a
// pure navigation command with no document change.
func (tr *Transaction) SetSelection(sel Selection) *Transaction {
	tr.Selection = sel.Clamp(tr.Doc.ContentSize())
	return tr
}

// SetStoredMarks replaces the marks that will be applied to the next
// character typed at a collapsed selection.
func (tr *Transaction) SetStoredMarks(marks []*model.Mark) *Transaction {
	tr.StoredMarks = marks
	return tr
}

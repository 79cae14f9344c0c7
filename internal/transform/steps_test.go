package transform

import (
	"testing"

	"github.com/proseengine/core/internal/model"
	"github.com/proseengine/core/internal/schemadefault"
)

func newStepsTestDoc(t *testing.T) (*model.Schema, *model.Node) {
	t.Helper()
	s, err := schemadefault.New()
	if err != nil {
		t.Fatalf("schemadefault.New: %v", err)
	}
	text, err := s.Text("hello", nil)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	p, err := s.Node("paragraph", nil, []*model.Node{text}, nil)
	if err != nil {
		t.Fatalf("Node(paragraph): %v", err)
	}
	doc, err := s.Node("document", nil, []*model.Node{p}, nil)
	if err != nil {
		t.Fatalf("Node(document): %v", err)
	}
	return s, doc
}

// Scenario 1: inserting text into a fresh paragraph grows the document's
// text content and advances contentSize by exactly the inserted length.
func TestInsertTextStepGrowsContent(t *testing.T) {
	_, doc := newStepsTestDoc(t)
	before := doc.ContentSize()

	step := &InsertTextStep{Pos: 6, Text: " world"}
	res := step.Apply(doc)
	if !res.Ok() {
		t.Fatalf("Apply failed: %s", res.Failed)
	}
	if got, want := res.Doc.ContentSize(), before+len([]rune(" world")); got != want {
		t.Errorf("ContentSize() = %d, want %d", got, want)
	}
	if got, want := res.Doc.TextContent(), "hello world"; got != want {
		t.Errorf("TextContent() = %q, want %q", got, want)
	}
}

// Every step, applied then inverted against the document it was applied
// to, reproduces the original document's text content and size — the
// invertibility invariant.
func TestStepInvertRoundTripsDoc(t *testing.T) {
	cases := []struct {
		name string
		step Step
	}{
		{"insertText", &InsertTextStep{Pos: 6, Text: " world"}},
		{"deleteRange", &DeleteRangeStep{From: 1, To: 3}},
		{"replaceRange", nil}, // filled in below, needs schema access
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, doc := newStepsTestDoc(t)
			step := tc.step
			if tc.name == "replaceRange" {
				repl, err := s.Text("HEY", nil)
				if err != nil {
					t.Fatalf("Text: %v", err)
				}
				step = &ReplaceRangeStep{From: 1, To: 3, Content: []*model.Node{repl}}
			}

			before := doc.TextContent()
			beforeSize := doc.ContentSize()

			res := step.Apply(doc)
			if !res.Ok() {
				t.Fatalf("Apply failed: %s", res.Failed)
			}

			inverse := step.Invert(doc)
			back := inverse.Apply(res.Doc)
			if !back.Ok() {
				t.Fatalf("Invert().Apply failed: %s", back.Failed)
			}
			if got := back.Doc.TextContent(); got != before {
				t.Errorf("round trip TextContent() = %q, want %q", got, before)
			}
			if got := back.Doc.ContentSize(); got != beforeSize {
				t.Errorf("round trip ContentSize() = %d, want %d", got, beforeSize)
			}
		})
	}
}

// Mapping/step agreement: a step's own GetMap() must agree with what
// Apply() actually did to document size.
func TestStepMapAgreesWithApply(t *testing.T) {
	_, doc := newStepsTestDoc(t)
	step := &ReplaceRangeStep{From: 1, To: 4, Content: nil}

	before := doc.ContentSize()
	res := step.Apply(doc)
	if !res.Ok() {
		t.Fatalf("Apply failed: %s", res.Failed)
	}
	after := res.Doc.ContentSize()

	sm := step.GetMap()
	mapped := sm.Map(before, 1)
	if mapped != after {
		t.Errorf("GetMap().Map(beforeSize) = %d, want %d (actual after-size)", mapped, after)
	}
}

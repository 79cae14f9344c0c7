package htmlprint

import (
	"testing"

	"github.com/proseengine/core/internal/model"
	"github.com/proseengine/core/internal/schemadefault"
)

func newTestSchema(t *testing.T) *model.Schema {
	t.Helper()
	s, err := schemadefault.New()
	if err != nil {
		t.Fatalf("schemadefault.New: %v", err)
	}
	return s
}

// Scenario 2 from the testable-properties table: boldA word in a
// paragraph serializes with the mark wrapping just that run.
func TestSerializeBoldAWord(t *testing.T) {
	s := newTestSchema(t)
	bold, err := s.Mark("bold", nil)
	if err != nil {
		t.Fatalf("Mark(bold): %v", err)
	}
	hello, err := s.Text("hello ", nil)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	world, err := s.Text("world", []*model.Mark{bold})
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	p, err := s.Node("paragraph", nil, []*model.Node{hello, world}, nil)
	if err != nil {
		t.Fatalf("Node(paragraph): %v", err)
	}
	doc, err := s.Node("document", nil, []*model.Node{p}, nil)
	if err != nil {
		t.Fatalf("Node(document): %v", err)
	}

	got := Serialize(doc)
	want := "<p>hello <strong>world</strong></p>"
	if got != want {
		t.Fatalf("Serialize() = %q, want %q", got, want)
	}
}

// Scenario 3: a heading node with level:2 serializes to h2.
func TestSerializeHeadingLevel(t *testing.T) {
	s := newTestSchema(t)
	title, err := s.Text("Title", nil)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	h, err := s.Node("heading", model.Attrs{"level": 2}, []*model.Node{title}, nil)
	if err != nil {
		t.Fatalf("Node(heading): %v", err)
	}
	doc, err := s.Node("document", nil, []*model.Node{h}, nil)
	if err != nil {
		t.Fatalf("Node(document): %v", err)
	}

	got := Serialize(doc)
	want := "<h2>Title</h2>"
	if got != want {
		t.Fatalf("Serialize() = %q, want %q", got, want)
	}
}

// A text run carrying both underline and strikethrough must nest with
// strikethrough outermost: "strikethrough" sorts before "underline"
// alphabetically, and the outermost mark must be the alphabetically
// smallest, regardless of the order the marks were registered or applied.
func TestSerializeMarkNestingIsAlphabetical(t *testing.T) {
	s := newTestSchema(t)
	underline, err := s.Mark("underline", nil)
	if err != nil {
		t.Fatalf("Mark(underline): %v", err)
	}
	strike, err := s.Mark("strikethrough", nil)
	if err != nil {
		t.Fatalf("Mark(strikethrough): %v", err)
	}
	// Apply in registration order (underline's rank is lower than
	// strikethrough's) to confirm output order does not depend on it.
	text, err := s.Text("hi", []*model.Mark{underline, strike})
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

	got := Serialize(doc)
	want := "<p><s><u>hi</u></s></p>"
	if got != want {
		t.Fatalf("Serialize() = %q, want %q", got, want)
	}
}

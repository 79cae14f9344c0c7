package selection

import (
	"testing"
	"time"

	"github.com/proseengine/core/internal/model"
	"github.com/proseengine/core/internal/schemadefault"
	"github.com/proseengine/core/internal/state"
)

// textBetween collects the plain text covered by [from, to), the test
// equivalent of what a host would read back after a selection change.
func textBetween(doc *model.Node, from, to int) string {
	var out []rune
	doc.NodesBetween(0, doc.ContentSize(), func(n *model.Node, pos int, parent *model.Node, index int) bool {
		if n.IsText() {
			for i, r := range []rune(n.Text()) {
				p := pos + i
				if p >= from && p < to {
					out = append(out, r)
				}
			}
		}
		return true
	}, 0)
	return string(out)
}

func newTestManager(t *testing.T, text string) (*Manager, *state.EditorState) {
	t.Helper()
	schema, err := schemadefault.New()
	if err != nil {
		t.Fatalf("schemadefault.New: %v", err)
	}
	st, err := state.Create(schema, text, nil, nil)
	if err != nil {
		t.Fatalf("state.Create: %v", err)
	}
	m := &Manager{
		State:    func() *state.EditorState { return st },
		Dispatch: func(tr *state.Transaction) { st, _ = st.Apply(tr) },
	}
	return m, st
}

func TestSelectWordAroundSelectsWholeWord(t *testing.T) {
	m, _ := newTestManager(t, "hello world")
	// position 8 sits inside "world" (1=before h, ... 7=before w, 12=after d)
	m.selectWordAround(8)
	sel := m.State().Selection
	got := textBetween(m.State().Doc, sel.From(), sel.To())
	if got != "world" {
		t.Fatalf("selected %q, want %q", got, "world")
	}
}

func TestSelectWordAroundFallsBackToSingleChar(t *testing.T) {
	m, _ := newTestManager(t, "a, b")
	// doc pos 3 sits right after the comma, past both \w+ matches ("a"
	// and "b"), so this must take the single-non-word-char fallback.
	m.selectWordAround(3)
	sel := m.State().Selection
	if sel.To()-sel.From() != 1 {
		t.Fatalf("selection width = %d, want 1 (single punctuation char)", sel.To()-sel.From())
	}
	got := textBetween(m.State().Doc, sel.From(), sel.To())
	if got != " " {
		t.Fatalf("selected %q, want a single space", got)
	}
}

func TestSelectParentBlockSelectsWholeTextblock(t *testing.T) {
	m, _ := newTestManager(t, "hello world")
	m.selectParentBlock(1)
	sel := m.State().Selection
	got := textBetween(m.State().Doc, sel.From(), sel.To())
	if got != "hello world" {
		t.Fatalf("selected %q, want the whole paragraph", got)
	}
}

func TestCountTapCyclesAndResets(t *testing.T) {
	m := &Manager{}
	now := time.Unix(0, 0)
	if c := m.countTap(10, 10, now, 500*time.Millisecond, 5); c != 1 {
		t.Fatalf("first tap count = %d, want 1", c)
	}
	if c := m.countTap(10, 10, now.Add(100*time.Millisecond), 500*time.Millisecond, 5); c != 2 {
		t.Fatalf("second tap count = %d, want 2", c)
	}
	if c := m.countTap(10, 10, now.Add(200*time.Millisecond), 500*time.Millisecond, 5); c != 3 {
		t.Fatalf("third tap count = %d, want 3", c)
	}
	if c := m.countTap(10, 10, now.Add(300*time.Millisecond), 500*time.Millisecond, 5); c != 1 {
		t.Fatalf("fourth tap count = %d, want 1 (wraps)", c)
	}
	// Far enough away in time resets the run.
	if c := m.countTap(10, 10, now.Add(2*time.Second), 500*time.Millisecond, 5); c != 1 {
		t.Fatalf("tap after timeout count = %d, want 1", c)
	}
}

func TestMergeSameLineRects(t *testing.T) {
	in := []Rect{
		{Left: 0, Top: 10, Bottom: 20},
		{Left: 20, Top: 11, Bottom: 20}, // same line (|10-11| < 2)
		{Left: 0, Top: 40, Bottom: 50},  // new line
	}
	out := mergeSameLineRects(in)
	if len(out) != 2 {
		t.Fatalf("merged into %d rects, want 2", len(out))
	}
}

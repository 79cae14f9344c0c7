package selection

import (
	"math"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/proseengine/core/internal/model"
	"github.com/proseengine/core/internal/state"
	"github.com/proseengine/core/internal/view"
)

// Manager renders the caret/highlight geometry for the current selection
// and turns pointer and touch input into Selection transactions.
type Manager struct {
	View     *view.View
	Geometry RangeGeometryProvider
	State    func() *state.EditorState
	Dispatch func(*state.Transaction)

	tracking bool
	anchor   int

	lastTapAt          time.Time
	lastTapX, lastTapY float64
	tapCount           int

	touchStartAt             time.Time
	touchStartX, touchStartY float64
	touchMoved               bool
}

// CaretRect returns the caret rectangle at selection.anchor, or false when
// the selection isn't collapsed or isn't currently rendered.
func (m *Manager) CaretRect() (Rect, bool) {
	sel := m.State().Selection
	if !sel.Empty() {
		return Rect{}, false
	}
	return m.View.CoordsAtPos(sel.Anchor)
}

// HighlightRects returns the highlight rectangles for a non-empty
// selection, or nil when the selection is collapsed or no geometry
// provider is installed.
func (m *Manager) HighlightRects() []Rect {
	sel := m.State().Selection
	if sel.Empty() || m.Geometry == nil {
		return nil
	}
	return mergeSameLineRects(m.Geometry.HighlightRects(sel.From(), sel.To()))
}

// PointerDown starts tracking a mouse selection gesture and applies the
// click-count rule: single → cursor, double → word, triple → parent block.
func (m *Manager) PointerDown(x, y float64, now time.Time) {
	pos, ok := m.View.PosAtCoords(x, y)
	if !ok {
		return
	}
	m.tracking = true
	m.anchor = pos
	switch m.countTap(x, y, now, 500*time.Millisecond, 5) {
	case 2:
		m.selectWordAround(pos)
	case 3:
		m.selectParentBlock(pos)
	default:
		m.setSelection(pos, pos)
	}
}

// PointerMove extends the tracked selection to posAtCoords(x, y).
func (m *Manager) PointerMove(x, y float64) {
	if !m.tracking {
		return
	}
	pos, ok := m.View.PosAtCoords(x, y)
	if !ok {
		return
	}
	m.setSelection(m.anchor, pos)
}

// PointerUp ends a tracked mouse selection gesture.
func (m *Manager) PointerUp() { m.tracking = false }

// TouchStart begins tracking a touch gesture.
func (m *Manager) TouchStart(x, y float64, now time.Time) {
	pos, ok := m.View.PosAtCoords(x, y)
	if !ok {
		return
	}
	m.tracking = true
	m.anchor = pos
	m.touchStartAt, m.touchStartX, m.touchStartY, m.touchMoved = now, x, y, false
}

// TouchMove extends the selection once the finger has moved past the
// 10px drag threshold.
func (m *Manager) TouchMove(x, y float64) {
	if !m.tracking {
		return
	}
	if distance(x, y, m.touchStartX, m.touchStartY) <= 10 {
		return
	}
	m.touchMoved = true
	pos, ok := m.View.PosAtCoords(x, y)
	if !ok {
		return
	}
	m.setSelection(m.anchor, pos)
}

// TouchEnd resolves a non-drag touch into a tap/long-press/word/paragraph
// selection.
func (m *Manager) TouchEnd(x, y float64, now time.Time) {
	defer func() { m.tracking = false }()
	if m.touchMoved {
		return
	}
	if now.Sub(m.touchStartAt) >= 500*time.Millisecond {
		m.selectWordAround(m.anchor)
		return
	}
	switch m.countTap(x, y, now, 500*time.Millisecond, 20) {
	case 2:
		m.selectWordAround(m.anchor)
	case 3:
		m.selectParentBlock(m.anchor)
	default:
		m.setSelection(m.anchor, m.anchor)
	}
}

// countTap updates and returns the running click/tap count: a repeat
// within window and slop increments it (capped at 3 then wrapping back to
// 1), anything else resets it to 1.
func (m *Manager) countTap(x, y float64, now time.Time, window time.Duration, slop float64) int {
	if !m.lastTapAt.IsZero() && now.Sub(m.lastTapAt) <= window && distance(x, y, m.lastTapX, m.lastTapY) <= slop {
		m.tapCount++
	} else {
		m.tapCount = 1
	}
	if m.tapCount > 3 {
		m.tapCount = 1
	}
	m.lastTapAt, m.lastTapX, m.lastTapY = now, x, y
	return m.tapCount
}

func distance(x1, y1, x2, y2 float64) float64 {
	dx, dy := x1-x2, y1-y2
	return math.Sqrt(dx*dx + dy*dy)
}

func (m *Manager) setSelection(anchor, head int) {
	s := m.State()
	tr := s.Tr().SetSelection(state.Selection{Anchor: anchor, Head: head})
	if tr.Failed() == "" {
		m.Dispatch(tr)
	}
}

var wordPattern = regexp2.MustCompile(`\w+`, regexp2.None)

// selectWordAround selects the run of word characters containing pos,
// falling back to the single non-word character at pos when the caret
// sits on whitespace or punctuation.
func (m *Manager) selectWordAround(pos int) {
	s := m.State()
	r, err := model.Resolve(s.Doc, pos)
	if err != nil {
		return
	}
	depth := blockDepth(r)
	blockStart := r.Start(depth)
	text := []rune(r.NodeAt(depth).TextContent())
	offset := clampInt(pos-blockStart, 0, len(text))

	if start, end, ok := wordRangeAt(text, offset); ok {
		m.setSelection(blockStart+start, blockStart+end)
		return
	}
	at := offset
	if at >= len(text) {
		at = len(text) - 1
	}
	if at < 0 {
		return
	}
	m.setSelection(blockStart+at, blockStart+at+1)
}

// wordRangeAt finds the \w+ match containing offset within text's runes.
func wordRangeAt(text []rune, offset int) (start, end int, ok bool) {
	s := string(text)
	m, _ := wordPattern.FindStringMatch(s)
	for m != nil {
		if offset >= m.Index && offset <= m.Index+m.Length {
			return m.Index, m.Index + m.Length, true
		}
		m, _ = wordPattern.FindNextMatch(m)
	}
	return 0, 0, false
}

// selectParentBlock selects the full content range of pos's enclosing
// block.
func (m *Manager) selectParentBlock(pos int) {
	s := m.State()
	r, err := model.Resolve(s.Doc, pos)
	if err != nil {
		return
	}
	depth := blockDepth(r)
	start := r.Start(depth)
	m.setSelection(start, start+r.NodeAt(depth).ContentSize())
}

// blockDepth returns the depth of the deepest block-level ancestor of r,
// the textblock (or other block container) that directly owns pos.
func blockDepth(r *model.ResolvedPos) int {
	for d := r.Depth; d >= 0; d-- {
		if r.NodeAt(d).Type().IsBlock() {
			return d
		}
	}
	return 0
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

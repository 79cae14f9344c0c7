package state

import (
	"github.com/proseengine/core/internal/position"
	"github.com/proseengine/core/internal/transform"
)

// Selection is a directional range: Anchor is the end that stays put while
// Head moves under user input, From/To is the normalized [min,max] view of
// the same two numbers.
type Selection struct {
	Anchor int
	Head   int
}

// NewSelection builds a Selection, clamping both ends into [0, size].
func NewSelection(anchor, head, size int) Selection {
	return Selection{Anchor: clampInt(anchor, 0, size), Head: clampInt(head, 0, size)}
}

// Caret builds a collapsed selection at pos.
func Caret(pos int) Selection { return Selection{Anchor: pos, Head: pos} }

// From is the lower of Anchor/Head.
func (s Selection) From() int {
	if s.Anchor < s.Head {
		return s.Anchor
	}
	return s.Head
}

// To is the higher of Anchor/Head.
func (s Selection) To() int {
	if s.Anchor > s.Head {
		return s.Anchor
	}
	return s.Head
}

// Empty reports whether this is a collapsed caret.
func (s Selection) Empty() bool { return s.Anchor == s.Head }

// Map remaps both ends of the selection through a Mapping, the way a
// Transaction keeps the selection valid across its own steps.
func (s Selection) Map(m *transform.Mapping) Selection {
	return Selection{Anchor: m.Map(s.Anchor, biasFor(s.Anchor, s.Head)), Head: m.Map(s.Head, biasFor(s.Head, s.Anchor))}
}

// biasFor picks BiasAfter for the end further from the other end moving
// forward, so a caret sitting right before an insertion ends up after it
// and a caret right after a deletion's start ends up before it.
func biasFor(end, other int) position.Bias {
	if end >= other {
		return position.BiasAfter
	}
	return position.BiasBefore
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

// Clamp re-clamps both ends to the given document size, used after a
// Transaction finishes accumulating steps.
func (s Selection) Clamp(size int) Selection {
	return Selection{Anchor: clampInt(s.Anchor, 0, size), Head: clampInt(s.Head, 0, size)}
}

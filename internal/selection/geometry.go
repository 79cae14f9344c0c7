// Package selection implements caret/highlight rendering, mouse/touch
// pointer tracking with click-count detection, and word/paragraph
// selection.
package selection

import "github.com/proseengine/core/internal/view"

// Rect is a pixel rectangle, shared with internal/view's coordsAtPos shape.
type Rect = view.Rect

// RangeGeometryProvider supplies the highlight-rectangle geometry a host
// surface owns. A real browser host implements this with a
// zero-width-DOM-range's getClientRects(), which already returns one rect
// per visual line; SelectionManager itself only decides how to merge or
// present what the host returns.
type RangeGeometryProvider interface {
	HighlightRects(from, to int) []Rect
}

// mergeSameLineRects collapses adjacent rects whose tops are within 2px
// into one, which matters when a same-line selection crosses mark boundaries
// and a host's range-rect query returns one rect per run.
func mergeSameLineRects(rects []Rect) []Rect {
	if len(rects) == 0 {
		return nil
	}
	merged := make([]Rect, 0, len(rects))
	merged = append(merged, rects[0])
	for _, r := range rects[1:] {
		last := &merged[len(merged)-1]
		if abs(last.Top-r.Top) < 2 {
			if r.Bottom > last.Bottom {
				last.Bottom = r.Bottom
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

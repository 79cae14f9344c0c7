package transform

import (
	"testing"

	"github.com/proseengine/core/internal/position"
)

// Boundary positions (pos==from, pos==oldEnd) must resolve the same way
// regardless of bias — only positions strictly inside the replaced range
// are bias-dependent. This is the mapping/step agreement invariant: a
// mapped selection endpoint sitting exactly at a step's edge must never
// drift into the replaced span itself.
func TestStepMapBoundaryPositionsAreBiasIndependent(t *testing.T) {
	// from=2, to=5 (oldSize=3), replaced with a newSize=4 span.
	m := NewStepMap(2, 3, 4)

	for _, bias := range []position.Bias{position.BiasBefore, position.BiasAfter} {
		if got := m.Map(2, bias); got != 2 {
			t.Errorf("Map(2, %v) = %d, want 2 (start boundary unaffected)", bias, got)
		}
		if got := m.Map(5, bias); got != 6 {
			t.Errorf("Map(5, %v) = %d, want 6 (end boundary fully shifted)", bias, got)
		}
	}
}

// A position strictly inside the replaced range still resolves according
// to bias: to the range's start on BiasBefore, to its end on BiasAfter.
func TestStepMapInteriorPositionRespectsBias(t *testing.T) {
	m := NewStepMap(2, 3, 4)

	mapped, deleted := m.MapResult(3, position.BiasBefore)
	if !deleted || mapped != 2 {
		t.Errorf("MapResult(3, BiasBefore) = (%d, %v), want (2, true)", mapped, deleted)
	}

	mapped, deleted = m.MapResult(3, position.BiasAfter)
	if !deleted || mapped != 6 {
		t.Errorf("MapResult(3, BiasAfter) = (%d, %v), want (6, true)", mapped, deleted)
	}
}

// Positions entirely before or after the replaced range are unaffected or
// shifted by the full size delta, respectively.
func TestStepMapPositionsOutsideRange(t *testing.T) {
	m := NewStepMap(2, 3, 4)

	if got := m.Map(0, position.BiasAfter); got != 0 {
		t.Errorf("Map(0) = %d, want 0", got)
	}
	if got := m.Map(10, position.BiasBefore); got != 11 {
		t.Errorf("Map(10) = %d, want 11", got)
	}
}

// A pure insertion (oldSize==0) still treats its single position as a
// bias-dependent boundary: before the inserted content on BiasBefore,
// after it on BiasAfter.
func TestStepMapPureInsertion(t *testing.T) {
	m := NewStepMap(2, 0, 3)

	if got := m.Map(2, position.BiasBefore); got != 2 {
		t.Errorf("Map(2, BiasBefore) = %d, want 2", got)
	}
	if got := m.Map(2, position.BiasAfter); got != 5 {
		t.Errorf("Map(2, BiasAfter) = %d, want 5", got)
	}
}

// EmptyStepMap is the identity map.
func TestEmptyStepMapIsIdentity(t *testing.T) {
	if got := EmptyStepMap.Map(7, position.BiasAfter); got != 7 {
		t.Errorf("EmptyStepMap.Map(7) = %d, want 7", got)
	}
}

// Invert swaps old/new sizes, so mapping a position through a map and then
// its inverse returns the original position for any point outside the
// affected span.
func TestStepMapInvertRoundTrips(t *testing.T) {
	m := NewStepMap(2, 3, 4)
	inv := m.Invert()

	mapped := m.Map(0, position.BiasAfter)
	back := inv.Map(mapped, position.BiasAfter)
	if back != 0 {
		t.Errorf("round trip through Invert: got %d, want 0", back)
	}

	mapped = m.Map(10, position.BiasBefore)
	back = inv.Map(mapped, position.BiasBefore)
	if back != 10 {
		t.Errorf("round trip through Invert: got %d, want 10", back)
	}
}

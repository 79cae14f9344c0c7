// Package transform implements Step, StepMap and Mapping: atomic,
// reversible mutations with position remapping.
package transform

import "github.com/proseengine/core/internal/position"

// stepRange is one disjoint replacement range within a StepMap: [from,
// oldSize, newSize), recorded in increasing From order.
type stepRange struct {
	from    int
	oldSize int
	newSize int
}

// StepMap is a list of disjoint replacement ranges produced by a single
// step, used to remap positions across that step.
type StepMap struct {
	ranges []stepRange
}

// EmptyStepMap is the identity map, used by steps with no positional
// effect (AddMarkStep/RemoveMarkStep, per mark-step grounding).
var EmptyStepMap = &StepMap{}

// NewStepMap builds a StepMap from a single replaced range.
func NewStepMap(from, oldSize, newSize int) *StepMap {
	if oldSize == 0 && newSize == 0 {
		return EmptyStepMap
	}
	return &StepMap{ranges: []stepRange{{from: from, oldSize: oldSize, newSize: newSize}}}
}

// Map resolves pos across this StepMap with the given bias: a position
// inside a removed range resolves to the range's start when bias ≤ 0, or
// its end when bias ≥ 0.
func (m *StepMap) Map(pos int, bias position.Bias) int {
	result, _ := m.MapResult(pos, bias)
	return result
}

// MapResult is Map plus whether pos fell inside a deleted span.
func (m *StepMap) MapResult(pos int, bias position.Bias) (mapped int, deleted bool) {
	diff := 0
	for _, r := range m.ranges {
		start := r.from
		if pos < start {
			break
		}
		oldEnd := start + r.oldSize
		if pos <= oldEnd {
			// pos falls within (or at the edge of) the replaced range.
			if r.oldSize == 0 {
				// pure insertion at start: pos==start inserts before it
				// when bias<=0, after when bias>=0.
				if bias >= 0 {
					diff += r.newSize
				}
				continue
			}
			if pos == start || pos == oldEnd {
				// boundary position: not itself deleted, and never
				// affected by bias — pos==start always resolves
				// unaffected, pos==oldEnd always resolves fully shifted.
				if pos == oldEnd {
					diff += r.newSize - r.oldSize
				}
				continue
			}
			// strictly inside a removed span.
			if bias <= 0 {
				return start + diff, true
			}
			return start + diff + r.newSize, true
		}
		diff += r.newSize - r.oldSize
	}
	return pos + diff, false
}

// Invert returns the StepMap that undoes this one (swaps old/new sizes).
func (m *StepMap) Invert() *StepMap {
	inv := &StepMap{ranges: make([]stepRange, len(m.ranges))}
	for i, r := range m.ranges {
		inv.ranges[i] = stepRange{from: r.from, oldSize: r.newSize, newSize: r.oldSize}
	}
	return inv
}

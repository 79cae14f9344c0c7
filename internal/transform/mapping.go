package transform

import "github.com/proseengine/core/internal/position"

// Mapping is an ordered list of StepMaps; Map applies them left to right.
type Mapping struct {
	Maps []*StepMap
}

// NewMapping builds a Mapping over the given StepMaps, in application order.
func NewMapping(maps ...*StepMap) *Mapping {
	return &Mapping{Maps: maps}
}

// Append adds more StepMaps to the end of this mapping, returning a new
// Mapping (mappings are treated as immutable once handed to callers).
func (m *Mapping) Append(maps ...*StepMap) *Mapping {
	return &Mapping{Maps: append(append([]*StepMap{}, m.Maps...), maps...)}
}

// Map runs pos through every StepMap in order with the given bias.
func (m *Mapping) Map(pos int, bias position.Bias) int {
	for _, sm := range m.Maps {
		pos = sm.Map(pos, bias)
	}
	return pos
}

// MapResult is Map plus whether pos was ever swallowed by a deleted span.
func (m *Mapping) MapResult(pos int, bias position.Bias) (mapped int, deleted bool) {
	for _, sm := range m.Maps {
		var d bool
		pos, d = sm.MapResult(pos, bias)
		deleted = deleted || d
	}
	return pos, deleted
}

// Invert returns the Mapping that undoes this one: each StepMap inverted,
// in reverse order.
func (m *Mapping) Invert() *Mapping {
	out := make([]*StepMap, len(m.Maps))
	for i, sm := range m.Maps {
		out[len(m.Maps)-1-i] = sm.Invert()
	}
	return &Mapping{Maps: out}
}

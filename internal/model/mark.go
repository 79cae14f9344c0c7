package model

import "sort"

// Mark is an inline formatting annotation on a text node. Frozen; equality
// compares type and attrs shallowly.
type Mark struct {
	Type  *MarkType
	Attrs Attrs
}

// Eq reports structural equality between two marks.
func (m *Mark) Eq(other *Mark) bool {
	if m == other {
		return true
	}
	if m == nil || other == nil {
		return false
	}
	return m.Type == other.Type && m.Attrs.Equal(other.Attrs)
}

// sortMarks returns marks ordered by registration rank, matching the
// schema's mark declaration order so that two structurally equal sets
// always compare equal regardless of construction order.
func sortMarks(marks []*Mark) []*Mark {
	out := append([]*Mark{}, marks...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Type.Rank < out[j].Type.Rank })
	return out
}

// AddToSet returns a new mark set with m added, removing any mark this one
// excludes and refusing to add if an existing mark excludes this one
// (mirrors the exclusion contract used by AddMarkStep).
func AddToSet(set []*Mark, m *Mark) []*Mark {
	var out []*Mark
	added := false
	for _, existing := range set {
		if existing.Type == m.Type {
			if !added {
				out = append(out, m)
				added = true
			}
			continue
		}
		if m.Type.Excludes(existing.Type) {
			continue
		}
		if existing.Type.Excludes(m.Type) {
			return set // cannot add: an existing mark excludes this one
		}
		out = append(out, existing)
	}
	if !added {
		out = append(out, m)
	}
	return sortMarks(out)
}

// RemoveFromSet returns a new mark set without the marks equal to m (same
// type and same attrs); marks of m's type with other attrs are kept.
func RemoveFromSet(set []*Mark, m *Mark) []*Mark {
	var out []*Mark
	for _, existing := range set {
		if !existing.Eq(m) {
			out = append(out, existing)
		}
	}
	return out
}

// MarkSetsEqual compares two already-sorted mark sets for equality.
func MarkSetsEqual(a, b []*Mark) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Eq(b[i]) {
			return false
		}
	}
	return true
}

// ContainsMarkType reports whether a set already carries a mark of mt.
func ContainsMarkType(set []*Mark, mt *MarkType) bool {
	for _, m := range set {
		if m.Type == mt {
			return true
		}
	}
	return false
}

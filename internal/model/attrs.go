package model

// Attrs is a frozen map of node/mark attributes. Callers must never mutate
// a map obtained from a Node or Mark; build a new one and replace it.
type Attrs map[string]interface{}

// Equal performs a shallow comparison: mark attribute equality compares
// type and attrs shallowly, never deep-comparing nested values.
func (a Attrs) Equal(b Attrs) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		ov, ok := b[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// Clone returns a shallow copy, used whenever an attrs map is merged with
// new values rather than replaced outright (e.g. SetNodeAttrs).
func (a Attrs) Clone() Attrs {
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Merge returns a new copy of a with every key of patch applied on top.
func (a Attrs) Merge(patch Attrs) Attrs {
	out := a.Clone()
	for k, v := range patch {
		out[k] = v
	}
	return out
}

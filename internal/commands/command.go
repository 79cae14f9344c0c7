// Package commands implements pure (state, dispatch?) → bool functions.
// Called with a nil dispatch, a command reports whether it would do
// something without mutating anything; called with a non-nil dispatch, it
// builds exactly one Transaction and hands it to dispatch before returning
// true.
package commands

import (
	"github.com/proseengine/core/internal/model"
	"github.com/proseengine/core/internal/state"
)

// Command matches command signature.
type Command func(s *state.EditorState, dispatch func(*state.Transaction)) bool

// Dispatch is the function a caller passes to run a command for real;
// typically it closes over EditorState.Apply and stores the result.
type Dispatch = func(*state.Transaction)

// run finishes a command: if tr failed, the command did nothing; if
// dispatch is nil this is a dry run that only reports success; otherwise
// the transaction is handed to dispatch.
func run(tr *state.Transaction, dispatch func(*state.Transaction)) bool {
	if tr.Failed() != "" {
		return false
	}
	if dispatch == nil {
		return true
	}
	dispatch(tr)
	return true
}

// resolveOrFalse resolves pos in doc, returning ok=false (never panicking)
// when the position is invalid — commands treat that as "doesn't apply".
func resolveOrFalse(doc *model.Node, pos int) (*model.ResolvedPos, bool) {
	r, err := model.Resolve(doc, pos)
	if err != nil {
		return nil, false
	}
	return r, true
}

// blockDepth returns the depth of the deepest ancestor that is not inline
// content — i.e. the textblock (or other block container) that directly
// owns the cursor — by walking up from the deepest resolved depth until a
// non-inline node type is found.
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

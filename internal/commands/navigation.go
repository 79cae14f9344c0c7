package commands

import (
	"github.com/dlclark/regexp2"

	"github.com/proseengine/core/internal/model"
	"github.com/proseengine/core/internal/state"
)

var wordBoundary = regexp2.MustCompile(`\w+\s*$`, regexp2.None)

// ArrowLeft moves the cursor back one position.
func ArrowLeft(s *state.EditorState, dispatch func(*state.Transaction)) bool {
	return moveCaret(s, dispatch, -1)
}

// ArrowRight moves the cursor forward one position.
func ArrowRight(s *state.EditorState, dispatch func(*state.Transaction)) bool {
	return moveCaret(s, dispatch, 1)
}

func moveCaret(s *state.EditorState, dispatch func(*state.Transaction), dir int) bool {
	pos := s.Selection.Head
	next := pos + dir
	size := s.Doc.ContentSize()
	if next < 0 || next > size {
		return false
	}
	if dispatch == nil {
		return true
	}
	tr := s.Tr().SetSelection(state.Caret(next))
	return run(tr, dispatch)
}

// ArrowUp moves the cursor to the same textblock-relative offset in the
// previous textblock. It works on the model alone, so it does not follow
// visual line wrapping inside a textblock.
func ArrowUp(s *state.EditorState, dispatch func(*state.Transaction)) bool {
	return moveAcrossBlock(s, dispatch, -1)
}

// ArrowDown is ArrowUp's forward counterpart.
func ArrowDown(s *state.EditorState, dispatch func(*state.Transaction)) bool {
	return moveAcrossBlock(s, dispatch, 1)
}

func moveAcrossBlock(s *state.EditorState, dispatch func(*state.Transaction), dir int) bool {
	r, ok := resolveOrFalse(s.Doc, s.Selection.Head)
	if !ok {
		return false
	}
	depth := blockDepth(r)
	offset := s.Selection.Head - r.Start(depth)
	target := r.Start(depth) - 2
	if dir > 0 {
		target = r.Start(depth) + r.NodeAt(depth).ContentSize() + 2
	}
	if target < 0 || target > s.Doc.ContentSize() {
		return false
	}
	rt, ok := resolveOrFalse(s.Doc, clampInt(target, 0, s.Doc.ContentSize()))
	if !ok {
		return setCaretIfMoved(s, dispatch, clampInt(target, 0, s.Doc.ContentSize()))
	}
	targetDepth := blockDepth(rt)
	targetBlock := rt.NodeAt(targetDepth)
	targetStart := rt.Start(targetDepth)
	newPos := clampInt(targetStart+offset, targetStart, targetStart+targetBlock.ContentSize())
	return setCaretIfMoved(s, dispatch, newPos)
}

// Home moves the cursor to the start of its textblock.
func Home(s *state.EditorState, dispatch func(*state.Transaction)) bool {
	r, ok := resolveOrFalse(s.Doc, s.Selection.Head)
	if !ok {
		return false
	}
	start := r.Start(blockDepth(r))
	return setCaretIfMoved(s, dispatch, start)
}

// End moves the cursor to the end of its textblock.
func End(s *state.EditorState, dispatch func(*state.Transaction)) bool {
	r, ok := resolveOrFalse(s.Doc, s.Selection.Head)
	if !ok {
		return false
	}
	depth := blockDepth(r)
	end := r.Start(depth) + r.NodeAt(depth).ContentSize()
	return setCaretIfMoved(s, dispatch, end)
}

func setCaretIfMoved(s *state.EditorState, dispatch func(*state.Transaction), pos int) bool {
	if pos == s.Selection.Head {
		return false
	}
	if dispatch == nil {
		return true
	}
	tr := s.Tr().SetSelection(state.Caret(pos))
	return run(tr, dispatch)
}

// WordForward moves the cursor to the end of the next word (Ctrl-Right).
func WordForward(s *state.EditorState, dispatch func(*state.Transaction)) bool {
	pos := s.Selection.Head
	text := tailText(s.Doc, pos, s.Doc.ContentSize())
	m, _ := regexp2.MustCompile(`^\s*\w+`, regexp2.None).FindStringMatch(text)
	if m == nil || m.Length == 0 {
		return setCaretIfMoved(s, dispatch, s.Doc.ContentSize())
	}
	return setCaretIfMoved(s, dispatch, pos+m.Length)
}

// WordBackward moves the cursor to the start of the previous word
// (Ctrl-Left).
func WordBackward(s *state.EditorState, dispatch func(*state.Transaction)) bool {
	pos := s.Selection.Head
	text := tailText(s.Doc, 0, pos)
	m, _ := wordBoundary.FindStringMatch(text)
	if m == nil || m.Length == 0 {
		return setCaretIfMoved(s, dispatch, 0)
	}
	return setCaretIfMoved(s, dispatch, pos-m.Length)
}

func tailText(doc *model.Node, from, to int) string {
	var out []rune
	doc.NodesBetween(from, to, func(n *model.Node, pos int, parent *model.Node, index int) bool {
		if n.IsText() {
			runes := []rune(n.Text())
			lo, hi := clampInt(from-pos, 0, len(runes)), clampInt(to-pos, 0, len(runes))
			out = append(out, runes[lo:hi]...)
		}
		return true
	}, 0)
	return string(out)
}

// ExtendSelection wraps baseCmd so its resulting selection keeps anchor
// fixed and only replaces head, the way Shift+motion extends a selection.
func ExtendSelection(baseCmd Command) Command {
	return func(s *state.EditorState, dispatch func(*state.Transaction)) bool {
		anchor := s.Selection.Anchor
		if dispatch == nil {
			return baseCmd(s, nil)
		}
		applied := false
		wrapped := func(tr *state.Transaction) {
			tr.SetSelection(state.Selection{Anchor: anchor, Head: tr.Selection.Head})
			applied = true
			dispatch(tr)
		}
		baseCmd(s, wrapped)
		return applied
	}
}

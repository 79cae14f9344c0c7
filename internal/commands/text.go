package commands

import (
	"github.com/proseengine/core/internal/model"
	"github.com/proseengine/core/internal/state"
	"github.com/proseengine/core/internal/transform"
)

// InsertText inserts text at the current selection, replacing it first if
// it is non-empty, and wraps the inserted run in storedMarks (falling back
// to the marks already active at a collapsed cursor) when present.
func InsertText(text string) Command {
	return func(s *state.EditorState, dispatch func(*state.Transaction)) bool {
		if text == "" {
			return false
		}
		sel := s.Selection
		marks := s.StoredMarks
		if marks == nil && sel.Empty() {
			marks = marksAtCursor(s.Doc, sel.From())
		}
		tr := s.Tr()
		if !sel.Empty() {
			tr.DeleteRange(sel.From(), sel.To())
		}
		pos := tr.Selection.From()
		tr.InsertText(pos, text)
		if len(marks) > 0 {
			end := pos + len([]rune(text))
			addMarksRun(tr, pos, end, marks)
		}
		tr.SetStoredMarks(nil)
		return run(tr, dispatch)
	}
}

// marksAtCursor returns the marks that plain typing at a collapsed cursor
// should inherit: the marks of the text immediately before the cursor, or
// immediately after it when at the very start of a textblock.
func marksAtCursor(doc *model.Node, pos int) []*model.Mark {
	r, ok := resolveOrFalse(doc, pos)
	if !ok {
		return nil
	}
	if before := r.NodeBefore(); before != nil && before.IsText() {
		return before.Marks()
	}
	if after := r.NodeAfter(); after != nil && after.IsText() {
		return after.Marks()
	}
	return nil
}

// addMarksRun applies every mark in marks across [from, to) via repeated
// AddMarkStep calls — a small convenience over Transaction's per-mark
// builder, not a new step type.
func addMarksRun(tr *state.Transaction, from, to int, marks []*model.Mark) {
	for _, m := range marks {
		tr.AddMark(from, to, m)
	}
}

// DeleteRange deletes [from, to) directly, the command form of Transaction
// .DeleteRange used where a caller already knows the exact range.
func DeleteRange(from, to int) Command {
	return func(s *state.EditorState, dispatch func(*state.Transaction)) bool {
		if from == to {
			return false
		}
		tr := s.Tr().DeleteRange(from, to)
		return run(tr, dispatch)
	}
}

// ReplaceTextRange replaces [from, to) with a single run of plain text,
// inheriting the marks already present at from (used by findText/
// replaceText).
func ReplaceTextRange(from, to int, text string) Command {
	return func(s *state.EditorState, dispatch func(*state.Transaction)) bool {
		marks := marksAtCursor(s.Doc, from)
		tr := s.Tr()
		if to > from {
			tr.DeleteRange(from, to)
		}
		if text != "" {
			tr.InsertText(from, text)
			if len(marks) > 0 {
				addMarksRun(tr, from, from+len([]rune(text)), marks)
			}
		}
		tr.SetSelection(state.Caret(from + len([]rune(text))))
		return run(tr, dispatch)
	}
}

// DeleteBackward removes one unit of content before a collapsed cursor, or
// the selection if non-empty.
func DeleteBackward(s *state.EditorState, dispatch func(*state.Transaction)) bool {
	if !s.Selection.Empty() {
		tr := s.Tr().DeleteRange(s.Selection.From(), s.Selection.To())
		return run(tr, dispatch)
	}
	pos := s.Selection.From()
	if pos == 0 {
		return false
	}
	r, ok := resolveOrFalse(s.Doc, pos)
	if !ok {
		return false
	}
	depth := blockDepth(r)
	blockStart := r.Start(depth)
	if pos > blockStart {
		tr := s.Tr().DeleteRange(pos-1, pos)
		return run(tr, dispatch)
	}
	return joinWithSibling(s, dispatch, r, depth, -1)
}

// DeleteForward removes one unit of content after a collapsed cursor, or
// the selection if non-empty.
func DeleteForward(s *state.EditorState, dispatch func(*state.Transaction)) bool {
	if !s.Selection.Empty() {
		tr := s.Tr().DeleteRange(s.Selection.From(), s.Selection.To())
		return run(tr, dispatch)
	}
	pos := s.Selection.From()
	r, ok := resolveOrFalse(s.Doc, pos)
	if !ok {
		return false
	}
	depth := blockDepth(r)
	block := r.NodeAt(depth)
	blockEnd := r.Start(depth) + block.ContentSize()
	if pos < blockEnd {
		tr := s.Tr().DeleteRange(pos, pos+1)
		return run(tr, dispatch)
	}
	return joinWithSibling(s, dispatch, r, depth, +1)
}

// joinWithSibling merges the block at depth with its previous (dir=-1) or
// next (dir=+1) sibling when one exists and the merge is content-valid.
// With no such sibling it unwraps the parent when the block is the
// parent's only child (and the parent is not the document); in every
// other case it returns false.
func joinWithSibling(s *state.EditorState, dispatch func(*state.Transaction), r *model.ResolvedPos, depth, dir int) bool {
	if depth == 0 {
		return false
	}
	parentDepth := depth - 1
	idx := r.Path[parentDepth].Index
	parent := r.NodeAt(parentDepth)
	block := r.NodeAt(depth)
	blockOwnStart := r.Start(depth) - 1
	blockOwnEnd := blockOwnStart + block.NodeSize()

	var siblingIdx int
	if dir < 0 {
		siblingIdx = idx - 1
	} else {
		siblingIdx = idx + 1
	}
	if siblingIdx < 0 || siblingIdx >= parent.ChildCount() {
		if parent.ChildCount() == 1 && parentDepth > 0 {
			tr := s.Tr().Unwrap(r.Start(parentDepth) - 1)
			return run(tr, dispatch)
		}
		return false
	}

	sibling := parent.Child(siblingIdx)
	var first, second *model.Node
	var regionStart, regionEnd int
	if dir < 0 {
		first, second = sibling, block
		regionStart = blockOwnStart - sibling.NodeSize()
		regionEnd = blockOwnEnd
	} else {
		first, second = block, sibling
		regionStart = blockOwnStart
		regionEnd = blockOwnEnd + sibling.NodeSize()
	}
	merged, err := s.Schema.Node(first.Type().Name, first.Attrs(), appendChildren(first, second), first.Marks())
	if err != nil {
		return false
	}
	tr := s.Tr().ReplaceRange(regionStart, regionEnd, []*model.Node{merged})
	if tr.Failed() != "" {
		return false
	}
	joinPos := regionStart + 1 + first.ContentSize()
	tr.SetSelection(state.Caret(joinPos))
	return run(tr, dispatch)
}

func appendChildren(a, b *model.Node) []*model.Node {
	out := append([]*model.Node{}, a.Children()...)
	return append(out, b.Children()...)
}

// SplitBlock splits the current block at the cursor into two sibling
// blocks of the same type (Enter). Splitting inside a list item produces
// a new list item; splitting at the end of an empty last list item lifts
// it out of the list instead.
func SplitBlock(s *state.EditorState, dispatch func(*state.Transaction)) bool {
	tr := s.Tr()
	if !s.Selection.Empty() {
		tr.DeleteRange(s.Selection.From(), s.Selection.To())
	}
	pos := tr.Selection.From()
	r, ok := resolveOrFalse(tr.Doc, pos)
	if !ok {
		return false
	}
	depth := blockDepth(r)
	block := r.NodeAt(depth)
	contentStart := r.Start(depth)
	offset := pos - contentStart

	if parentDepth := depth - 1; parentDepth >= 0 {
		parent := r.NodeAt(parentDepth)
		if parent.Type().Name == "listItem" && offset == block.ContentSize() && block.ContentSize() == 0 {
			idx := r.Path[parentDepth].Index
			grandDepth := parentDepth - 1
			if grandDepth >= 0 && idx == r.NodeAt(grandDepth).ChildCount()-1 {
				liStart := r.Start(parentDepth) - 1
				tr.Unwrap(liStart)
				return run(tr, dispatch)
			}
		}
	}

	before, after, err := transform.SplitFragment(block.Content(), offset)
	if err != nil {
		return false
	}
	firstNode, err := s.Schema.Node(block.Type().Name, block.Attrs(), before, nil)
	if err != nil {
		return false
	}
	secondNode, err := s.Schema.Node(block.Type().Name, block.Attrs(), after, nil)
	if err != nil {
		return false
	}
	blockOwnStart := contentStart - 1
	blockOwnEnd := blockOwnStart + block.NodeSize()
	tr.ReplaceRange(blockOwnStart, blockOwnEnd, []*model.Node{firstNode, secondNode})
	if tr.Failed() != "" {
		return false
	}
	newCaret := blockOwnStart + firstNode.NodeSize() + 1
	tr.SetSelection(state.Caret(newCaret))
	return run(tr, dispatch)
}

// InsertHardBreak inserts a single hardBreak leaf at the cursor
// (Shift-Enter, insertHardBreak).
func InsertHardBreak(s *state.EditorState, dispatch func(*state.Transaction)) bool {
	tr := s.Tr()
	if !s.Selection.Empty() {
		tr.DeleteRange(s.Selection.From(), s.Selection.To())
	}
	br, err := s.Schema.Node("hardBreak", nil, nil, nil)
	if err != nil {
		return false
	}
	pos := tr.Selection.From()
	tr.ReplaceRange(pos, pos, []*model.Node{br})
	return run(tr, dispatch)
}

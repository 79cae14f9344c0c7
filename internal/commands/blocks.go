package commands

import (
	"github.com/proseengine/core/internal/model"
	"github.com/proseengine/core/internal/state"
)

// textblockPositions returns the absolute pre-node position of every
// textblock (a block whose children are themselves inline, or which is
// empty) overlapping [from, to). setBlockType-family commands apply
// uniformly across every textblock the selection touches.
func textblockPositions(doc *model.Node, from, to int) []int {
	var positions []int
	doc.NodesBetween(from, to, func(n *model.Node, pos int, parent *model.Node, index int) bool {
		if isTextblock(n) {
			positions = append(positions, pos)
			return false
		}
		return true
	}, 0)
	return positions
}

func isTextblock(n *model.Node) bool {
	if !n.Type().IsBlock() || n.Type().IsLeaf() {
		return false
	}
	if n.ChildCount() == 0 {
		return true
	}
	return n.Child(0).Type().IsInline()
}

// SetBlockType converts every textblock touching the selection to
// typeName, flattening non-text children to their text content when the
// new type's content expression no longer accepts them (e.g. codeBlock
// accepts only text*), per
func SetBlockType(typeName string, attrs model.Attrs) Command {
	return func(s *state.EditorState, dispatch func(*state.Transaction)) bool {
		positions := textblockPositions(s.Doc, s.Selection.From(), s.Selection.To())
		if len(positions) == 0 {
			return false
		}
		nt, err := s.Schema.NodeType(typeName)
		if err != nil {
			return false
		}
		tr := s.Tr()
		for i := len(positions) - 1; i >= 0; i-- {
			pos := tr.Mapping().Map(positions[i], 1)
			applySetBlockType(s.Schema, tr, pos, nt, attrs)
			if tr.Failed() != "" {
				return false
			}
		}
		return run(tr, dispatch)
	}
}

// applySetBlockType flattens non-text children to their text content
// before retyping when the destination only accepts text* (e.g.
// codeBlock), per setBlockType tie-break.
func applySetBlockType(schema *model.Schema, tr *state.Transaction, pos int, nt *model.NodeType, attrs model.Attrs) {
	_, block, ok := resolveNodeAt(tr.Doc, pos)
	if !ok {
		tr.SetBlockType(pos, nt.Name, attrs)
		return
	}
	if nt.Spec.Content == "text*" || nt.IsLeaf() {
		text := block.TextContent()
		if text == "" {
			tr.SetBlockType(pos, nt.Name, attrs)
			return
		}
		textNode, err := schema.Text(text, nil)
		if err != nil {
			tr.SetBlockType(pos, nt.Name, attrs)
			return
		}
		tr.ReplaceRange(pos+1, pos+block.NodeSize()-1, []*model.Node{textNode})
		tr.SetBlockType(pos, nt.Name, attrs)
		return
	}
	tr.SetBlockType(pos, nt.Name, attrs)
}

func resolveNodeAt(doc *model.Node, pos int) (*model.ResolvedPos, *model.Node, bool) {
	r, ok := resolveOrFalse(doc, pos)
	if !ok {
		return nil, nil, false
	}
	n := r.NodeAfter()
	if n == nil {
		return nil, nil, false
	}
	return r, n, true
}

// Heading sets every textblock touching the selection to a heading of the
// given level.
func Heading(level int) Command {
	return SetBlockType("heading", model.Attrs{"level": level})
}

// Paragraph converts every textblock touching the selection to a plain
// paragraph.
var Paragraph Command = SetBlockType("paragraph", nil)

// WrapInBlockquote wraps the block containing the selection's start in a
// blockquote.
func WrapInBlockquote(s *state.EditorState, dispatch func(*state.Transaction)) bool {
	r, ok := resolveOrFalse(s.Doc, s.Selection.From())
	if !ok {
		return false
	}
	depth := blockDepth(r)
	pos := r.Start(depth) - 1
	tr := s.Tr().WrapIn(pos, "blockquote", nil)
	return run(tr, dispatch)
}

// ToggleCodeBlock converts the textblock at the selection to a codeBlock
// (setting language when given), or back to a paragraph if it already is
// one.
func ToggleCodeBlock(language string) Command {
	return func(s *state.EditorState, dispatch func(*state.Transaction)) bool {
		r, ok := resolveOrFalse(s.Doc, s.Selection.From())
		if !ok {
			return false
		}
		depth := blockDepth(r)
		block := r.NodeAt(depth)
		if block.Type().Name == "codeBlock" {
			return SetBlockType("paragraph", nil)(s, dispatch)
		}
		attrs := model.Attrs{}
		if language != "" {
			attrs["language"] = language
		}
		return SetBlockType("codeBlock", attrs)(s, dispatch)
	}
}

// InsertHorizontalRule inserts a horizontalRule leaf at the cursor.
func InsertHorizontalRule(s *state.EditorState, dispatch func(*state.Transaction)) bool {
	hr, err := s.Schema.Node("horizontalRule", nil, nil, nil)
	if err != nil {
		return false
	}
	tr := s.Tr()
	if !s.Selection.Empty() {
		tr.DeleteRange(s.Selection.From(), s.Selection.To())
	}
	pos := tr.Selection.From()
	tr.ReplaceRange(pos, pos, []*model.Node{hr})
	return run(tr, dispatch)
}

// SetAlignment sets (or, given an empty value, clears) the "align" attr on
// every textblock touching the selection.
func SetAlignment(value string) Command {
	return setBlockAttr("align", value)
}

// SetLineHeight sets (or clears) the "lineHeight" attr on every textblock
// touching the selection.
func SetLineHeight(value string) Command {
	return setBlockAttr("lineHeight", value)
}

func setBlockAttr(key, value string) Command {
	return func(s *state.EditorState, dispatch func(*state.Transaction)) bool {
		positions := textblockPositions(s.Doc, s.Selection.From(), s.Selection.To())
		if len(positions) == 0 {
			return false
		}
		tr := s.Tr()
		for i := len(positions) - 1; i >= 0; i-- {
			pos := tr.Mapping().Map(positions[i], 1)
			var patch model.Attrs
			if value == "" {
				patch = model.Attrs{key: nil}
			} else {
				patch = model.Attrs{key: value}
			}
			tr.SetNodeAttrs(pos, patch)
		}
		return run(tr, dispatch)
	}
}

// SetIndent sets the "indent" attr directly (clamped to [0,8]) on every
// textblock touching the selection.
func SetIndent(level int) Command {
	return func(s *state.EditorState, dispatch func(*state.Transaction)) bool {
		positions := textblockPositions(s.Doc, s.Selection.From(), s.Selection.To())
		if len(positions) == 0 {
			return false
		}
		level = clampInt(level, 0, 8)
		tr := s.Tr()
		for i := len(positions) - 1; i >= 0; i-- {
			pos := tr.Mapping().Map(positions[i], 1)
			tr.SetNodeAttrs(pos, model.Attrs{"indent": level})
		}
		return run(tr, dispatch)
	}
}

// IncreaseIndent raises the "indent" attr (default 0) on every textblock
// touching the selection, up to a maximum of 8 levels.
func IncreaseIndent(s *state.EditorState, dispatch func(*state.Transaction)) bool {
	return stepIndent(s, dispatch, 1)
}

// DecreaseIndent lowers the "indent" attr, never below 0.
func DecreaseIndent(s *state.EditorState, dispatch func(*state.Transaction)) bool {
	return stepIndent(s, dispatch, -1)
}

func stepIndent(s *state.EditorState, dispatch func(*state.Transaction), delta int) bool {
	positions := textblockPositions(s.Doc, s.Selection.From(), s.Selection.To())
	if len(positions) == 0 {
		return false
	}
	tr := s.Tr()
	changed := false
	for i := len(positions) - 1; i >= 0; i-- {
		pos := tr.Mapping().Map(positions[i], 1)
		_, block, ok := resolveNodeAt(tr.Doc, pos)
		if !ok {
			continue
		}
		current, _ := block.Attrs()["indent"].(int)
		next := clampInt(current+delta, 0, 8)
		if next == current {
			continue
		}
		tr.SetNodeAttrs(pos, model.Attrs{"indent": next})
		changed = true
	}
	if !changed {
		return false
	}
	return run(tr, dispatch)
}

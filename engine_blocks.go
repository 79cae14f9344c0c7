package proseengine

import (
	"github.com/proseengine/core/internal/commands"
	"github.com/proseengine/core/internal/model"
)

// SetBlockType converts every textblock touching the selection to
// typeName.
func (e *Engine) SetBlockType(typeName string, attrs model.Attrs) bool {
	return e.runDispatch(commands.SetBlockType(typeName, attrs), true)
}

// GetBlockType returns the type name of the textblock at the cursor.
func (e *Engine) GetBlockType() string {
	r, ok := resolveOrFalse(e.current.Doc, e.current.Selection.From())
	if !ok {
		return ""
	}
	return r.NodeAt(blockDepth(r)).Type().Name
}

// GetBlockAttrs returns the attrs of the textblock at the cursor.
func (e *Engine) GetBlockAttrs() model.Attrs {
	r, ok := resolveOrFalse(e.current.Doc, e.current.Selection.From())
	if !ok {
		return nil
	}
	return r.NodeAt(blockDepth(r)).Attrs()
}

// ToggleBlockquote wraps/unwraps the block at the selection in a
// blockquote.
func (e *Engine) ToggleBlockquote() bool {
	if r, ok := resolveOrFalse(e.current.Doc, e.current.Selection.From()); ok {
		if d := blockDepth(r); d > 1 && r.NodeAt(d-1).Type().Name == "blockquote" {
			return e.dispatch(e.current.Tr().Unwrap(r.Start(d-1)-1), true)
		}
	}
	return e.runDispatch(commands.WrapInBlockquote, true)
}

// ToggleCodeBlock converts the textblock at the selection to a codeBlock
// (or back to a paragraph), optionally tagging it with language.
func (e *Engine) ToggleCodeBlock(language string) bool {
	return e.runDispatch(commands.ToggleCodeBlock(language), true)
}

// InsertHorizontalRule inserts a horizontalRule leaf at the cursor.
func (e *Engine) InsertHorizontalRule() bool {
	return e.runDispatch(commands.InsertHorizontalRule, true)
}

// SetAlignment sets (or, given "", clears) the textblock's "align" attr.
func (e *Engine) SetAlignment(value string) bool {
	return e.runDispatch(commands.SetAlignment(value), true)
}

// GetAlignment returns the textblock's "align" attr at the cursor.
func (e *Engine) GetAlignment() string {
	align, _ := e.GetBlockAttrs()["align"].(string)
	return align
}

// SetIndent sets the textblock's "indent" attr directly.
func (e *Engine) SetIndent(level int) bool {
	return e.runDispatch(commands.SetIndent(level), true)
}

// GetIndent returns the textblock's "indent" attr at the cursor.
func (e *Engine) GetIndent() int {
	indent, _ := e.GetBlockAttrs()["indent"].(int)
	return indent
}

// IncreaseIndent raises the textblock's indent level.
func (e *Engine) IncreaseIndent() bool {
	return e.runDispatch(commands.IncreaseIndent, true)
}

// DecreaseIndent lowers the textblock's indent level.
func (e *Engine) DecreaseIndent() bool {
	return e.runDispatch(commands.DecreaseIndent, true)
}

// SetLineHeight sets (or clears) the textblock's "lineHeight" attr.
func (e *Engine) SetLineHeight(value string) bool {
	return e.runDispatch(commands.SetLineHeight(value), true)
}

// GetLineHeight returns the textblock's "lineHeight" attr at the cursor.
func (e *Engine) GetLineHeight() string {
	lh, _ := e.GetBlockAttrs()["lineHeight"].(string)
	return lh
}

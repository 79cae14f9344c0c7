package proseengine

import "github.com/proseengine/core/internal/commands"

// ToggleBulletList wraps/unwraps the selection in a bulletList.
func (e *Engine) ToggleBulletList() bool {
	return e.runDispatch(commands.ToggleBulletList, true)
}

// ToggleOrderedList wraps/unwraps the selection in an orderedList.
func (e *Engine) ToggleOrderedList() bool {
	return e.runDispatch(commands.ToggleOrderedList, true)
}

// ToggleCheckList flips the "checked" attr of the list item at the
// selection, or, outside a list item, wraps the selection in a checklist
// (a bulletList whose items carry a "checked" attr, starting unchecked).
func (e *Engine) ToggleCheckList() bool {
	return e.runDispatch(commands.ToggleChecklist, true)
}

// IndentListItem nests the list item at the selection one level deeper.
func (e *Engine) IndentListItem() bool {
	return e.runDispatch(commands.ListIndent, true)
}

// OutdentListItem lifts the list item at the selection one level out.
func (e *Engine) OutdentListItem() bool {
	return e.runDispatch(commands.ListOutdent, true)
}

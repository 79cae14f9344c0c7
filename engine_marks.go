package proseengine

import (
	"github.com/proseengine/core/internal/commands"
	"github.com/proseengine/core/internal/model"
)

// FormatText toggles markName across the selection, with attrs for marks
// that carry them (e.g. "link" needs "href").
func (e *Engine) FormatText(markName string, attrs model.Attrs) bool {
	mt, err := e.schema.MarkType(markName)
	if err != nil {
		return false
	}
	return e.runDispatch(commands.ToggleMark(mt, attrs), true)
}

// RemoveFormat clears every mark from the selection, or storedMarks at a
// collapsed cursor.
func (e *Engine) RemoveFormat() bool {
	return e.runDispatch(commands.ClearFormatting, true)
}

// IsMarkActive reports whether markName is active across the whole
// selection.
func (e *Engine) IsMarkActive(markName string) bool {
	mt, err := e.schema.MarkType(markName)
	if err != nil {
		return false
	}
	return commands.MarkActive(e.current, mt)
}

// GetActiveMarks returns every mark active at the current selection.
func (e *Engine) GetActiveMarks() []*model.Mark {
	return commands.GetActiveMarks(e.current)
}

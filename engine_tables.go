package proseengine

import "github.com/proseengine/core/internal/commands"

// InsertTable inserts a rows x cols table at the cursor.
func (e *Engine) InsertTable(rows, cols int) bool {
	return e.runDispatch(commands.InsertTable(rows, cols), true)
}

// AddRowBefore inserts an empty row above the selection's row.
func (e *Engine) AddRowBefore() bool {
	return e.runDispatch(commands.AddRowBefore, true)
}

// AddRowAfter inserts an empty row below the selection's row.
func (e *Engine) AddRowAfter() bool {
	return e.runDispatch(commands.AddRowAfter, true)
}

// DeleteRow removes the selection's row.
func (e *Engine) DeleteRow() bool {
	return e.runDispatch(commands.DeleteRow, true)
}

// AddColumnBefore inserts an empty column left of the selection's column.
func (e *Engine) AddColumnBefore() bool {
	return e.runDispatch(commands.AddColumnBefore, true)
}

// AddColumnAfter inserts an empty column right of the selection's column.
func (e *Engine) AddColumnAfter() bool {
	return e.runDispatch(commands.AddColumnAfter, true)
}

// DeleteColumn removes the selection's column.
func (e *Engine) DeleteColumn() bool {
	return e.runDispatch(commands.DeleteColumn, true)
}

// DeleteTable removes the table the selection sits in.
func (e *Engine) DeleteTable() bool {
	return e.runDispatch(commands.DeleteTable, true)
}

// MergeCells merges the selection's cell with the next cell in its row.
func (e *Engine) MergeCells() bool {
	return e.runDispatch(commands.MergeCells, true)
}

// SplitCell splits a merged cell back into its original colspan.
func (e *Engine) SplitCell() bool {
	return e.runDispatch(commands.SplitCell, true)
}

// ToggleHeaderRow toggles the "header" attr across the table's first row.
func (e *Engine) ToggleHeaderRow() bool {
	return e.runDispatch(commands.ToggleHeaderRow, true)
}

// ToggleHeaderColumn toggles the "header" attr across the table's first
// column.
func (e *Engine) ToggleHeaderColumn() bool {
	return e.runDispatch(commands.ToggleHeaderColumn, true)
}

package proseengine

// Undo reverts the most recent history entry, if any.
func (e *Engine) Undo() bool {
	before := e.current
	tr, ok := e.history.Undo(before)
	if !ok {
		return false
	}
	next, err := before.Apply(tr)
	if err != nil || next == before {
		return false
	}
	e.current = next
	e.plugins.NotifyStateDidUpdate(next, before)
	e.events.Emit("modelChanged", map[string]interface{}{"value": e.Value(), "state": next})
	e.emitTextCursorMove()
	return true
}

// Redo reapplies the most recently undone entry, if any.
func (e *Engine) Redo() bool {
	before := e.current
	tr, ok := e.history.Redo(before)
	if !ok {
		return false
	}
	next, err := before.Apply(tr)
	if err != nil || next == before {
		return false
	}
	e.current = next
	e.plugins.NotifyStateDidUpdate(next, before)
	e.events.Emit("modelChanged", map[string]interface{}{"value": e.Value(), "state": next})
	e.emitTextCursorMove()
	return true
}

// CanUndo reports whether Undo would do anything.
func (e *Engine) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo reports whether Redo would do anything.
func (e *Engine) CanRedo() bool {
	return e.history.CanRedo()
}

// ClearHistory empties the undo/redo stacks.
func (e *Engine) ClearHistory() {
	e.history.Clear()
}

package proseengine

import "github.com/proseengine/core/internal/state"

// SaveState serializes the current document and selection to bytes a host
// can persist and later hand back to LoadState.
func (e *Engine) SaveState() ([]byte, error) {
	return e.current.MarshalState()
}

// LoadState replaces the current document and selection with the state
// encoded in data, clears undo/redo history, and fires contentSet.
func (e *Engine) LoadState(data []byte) error {
	previous := e.Value()
	st, err := state.UnmarshalState(e.schema, data, e.plugins.StatePlugins())
	if err != nil {
		return err
	}
	e.current = st
	e.history.Clear()
	e.events.Emit("contentSet", map[string]interface{}{"value": e.Value(), "previousValue": previous})
	return nil
}

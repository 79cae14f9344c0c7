package input

import (
	"strings"

	"github.com/proseengine/core/internal/commands"
	"github.com/proseengine/core/internal/state"
)

// Position is a pixel coordinate, used to keep the hidden focus sink
// aligned with the visible caret.
type Position struct{ Left, Top float64 }

// Sink is the hidden single-line text control a host owns; Handler only
// reads/writes its buffer and visibility/position, never renders it.
type Sink interface {
	Content() string
	SetContent(string)
	SetPosition(Position)
	Focus()
	Blur()
	HasFocus() bool
}

// Handler is the InputHandler of
type Handler struct {
	Sink      Sink
	State     func() *state.EditorState
	Dispatch  func(*state.Transaction)
	Keymap    map[string]commands.Command
	ReadOnly  bool
	Disabled  bool
	composing bool
	compBuf   strings.Builder
}

// UpdateKeymap swaps the active key map.
func (h *Handler) UpdateKeymap(newMap map[string]commands.Command) { h.Keymap = newMap }

// UpdatePosition repositions the sink near the caret.
func (h *Handler) UpdatePosition(p Position) { h.Sink.SetPosition(p) }

func (h *Handler) Focus() { h.Sink.Focus() }
func (h *Handler) Blur()  { h.Sink.Blur() }
func (h *Handler) HasFocus() bool { return h.Sink.HasFocus() }

// HandleKey normalizes e, looks it up (falling back to the Shift-less
// binding wrapped in ExtendSelection for Shift+navigation, ), and runs the
// bound command. Returns true if the event was consumed.
func (h *Handler) HandleKey(e KeyEvent) bool {
	if h.Disabled {
		return h.isNavigationOnly(e)
	}
	key := Normalize(e)
	cmd, ok := h.Keymap[key]
	if !ok && e.Shift && navigationKeys[e.Key] {
		base := e
		base.Shift = false
		if baseCmd, found := h.Keymap[Normalize(base)]; found {
			cmd, ok = commands.ExtendSelection(baseCmd), true
		}
	}
	if !ok {
		if e.Key == "Tab" && !e.Shift {
			return h.insertLiteral("  ")
		}
		return false
	}
	if h.ReadOnly && !isNavigationCommand(key) {
		return false
	}
	return cmd(h.State(), h.Dispatch)
}

// isNavigationOnly reports whether a disabled handler still allows this
// key through (navigation/selection only, "Cancellation").
func (h *Handler) isNavigationOnly(e KeyEvent) bool {
	if !navigationKeys[e.Key] && e.Key != "Home" && e.Key != "End" {
		return false
	}
	cmd, ok := h.Keymap[Normalize(e)]
	if !ok {
		return false
	}
	return cmd(h.State(), h.Dispatch)
}

func isNavigationCommand(key string) bool {
	switch key {
	case "ArrowLeft", "ArrowRight", "ArrowUp", "ArrowDown", "Home", "End",
		"Mod-ArrowLeft", "Mod-ArrowRight",
		"Shift-ArrowLeft", "Shift-ArrowRight", "Shift-ArrowUp", "Shift-ArrowDown",
		"Shift-Home", "Shift-End":
		return true
	}
	return false
}

// CompositionStart begins an IME composition; input events are ignored
// until CompositionEnd.
func (h *Handler) CompositionStart() {
	h.composing = true
	h.compBuf.Reset()
}

// CompositionUpdate records the in-progress composed text.
func (h *Handler) CompositionUpdate(text string) {
	h.compBuf.Reset()
	h.compBuf.WriteString(text)
}

// CompositionEnd dispatches the buffered composed text as a single
// insertText and clears the sink.
func (h *Handler) CompositionEnd() {
	h.composing = false
	text := h.compBuf.String()
	h.compBuf.Reset()
	h.Sink.SetContent("")
	if text == "" || h.ReadOnly || h.Disabled {
		return
	}
	commands.InsertText(text)(h.State(), h.Dispatch)
}

// HandleInput reads the sink's content and dispatches it as insertText,
// then clears the sink. While composing, input events are ignored.
func (h *Handler) HandleInput() {
	if h.composing || h.ReadOnly || h.Disabled {
		return
	}
	content := h.Sink.Content()
	h.Sink.SetContent("")
	if content == "" {
		return
	}
	commands.InsertText(content)(h.State(), h.Dispatch)
}

func (h *Handler) insertLiteral(text string) bool {
	if h.ReadOnly || h.Disabled {
		return false
	}
	return commands.InsertText(text)(h.State(), h.Dispatch)
}

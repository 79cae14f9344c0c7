// Package input implements key normalization, the hidden focus-sink input
// pipeline, and IME composition handling. There is no real OS key event
// type in this module (no browser/WASM bridge, see DESIGN.md), so KeyEvent
// is a small platform-neutral struct a host adapter fills in from whatever
// native event it received.
package input

import (
	"strings"

	"github.com/proseengine/core/internal/commands"
	"github.com/proseengine/core/internal/model"
)

// KeyEvent is the platform-neutral shape a host translates its native key
// event into before calling Handler.HandleKey.
type KeyEvent struct {
	Key       string // e.g. "b", "Enter", "ArrowLeft", "Tab"
	Ctrl      bool
	Meta      bool
	Alt       bool
	Shift     bool
	HasModKey bool // true on platforms where Meta (Command) is "Mod", false where Ctrl is
}

// navigationKeys are the keys Shift combines with to extend a selection
// rather than type a character.
var navigationKeys = map[string]bool{
	"ArrowLeft": true, "ArrowRight": true, "ArrowUp": true, "ArrowDown": true,
	"Home": true, "End": true,
}

// Normalize renders a KeyEvent to key-string form: "Mod-" plus the key name
// (lowercased for single characters), modifiers ordered Ctrl/Mod → Alt →
// Shift → key.
func Normalize(e KeyEvent) string {
	mod := e.Ctrl
	if e.HasModKey {
		mod = e.Meta
	}
	var b strings.Builder
	if mod {
		b.WriteString("Mod-")
	}
	if e.Alt {
		b.WriteString("Alt-")
	}
	if e.Shift {
		b.WriteString("Shift-")
	}
	key := e.Key
	if len([]rune(key)) == 1 {
		key = strings.ToLower(key)
	}
	b.WriteString(key)
	return b.String()
}

// BaseKeymap is the engine's default bindings: Enter splits the block,
// Shift-Enter inserts a hard break, plain arrows/Home/End navigate, and
// Mod-b/i/u toggle the common marks. Mark bindings are skipped when schema
// doesn't declare that mark type, so a caller with a custom schema still
// gets a usable keymap.
func BaseKeymap(schema *model.Schema) map[string]commands.Command {
	km := map[string]commands.Command{
		"Enter":          commands.SplitBlock,
		"Shift-Enter":    commands.InsertHardBreak,
		"Backspace":      commands.DeleteBackward,
		"Delete":         commands.DeleteForward,
		"ArrowLeft":      commands.ArrowLeft,
		"ArrowRight":     commands.ArrowRight,
		"ArrowUp":        commands.ArrowUp,
		"ArrowDown":      commands.ArrowDown,
		"Home":           commands.Home,
		"End":            commands.End,
		"Mod-ArrowLeft":  commands.WordBackward,
		"Mod-ArrowRight": commands.WordForward,
	}
	bindMark(km, schema, "Mod-b", "bold")
	bindMark(km, schema, "Mod-i", "italic")
	bindMark(km, schema, "Mod-u", "underline")
	return km
}

func bindMark(km map[string]commands.Command, schema *model.Schema, key, markName string) {
	mt, err := schema.MarkType(markName)
	if err != nil {
		return
	}
	km[key] = commands.ToggleMark(mt, nil)
}

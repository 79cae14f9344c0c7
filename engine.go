// Package proseengine implements the model-driven rich-text editor engine.
// Engine is the external API surface built on top of internal/model's
// immutable document, internal/state's transactional EditorState,
// internal/commands' pure command functions, and internal/plugin's extension
// layer. internal/view, internal/input and internal/selection are
// host-bridge layers a caller wires up separately once it has a real
// rendering surface to hand them, pointing their State/Dispatch fields at
// Engine.State and Engine.Dispatch; Engine itself needs none of them to
// manage document state.
package proseengine

import (
	"github.com/proseengine/core/internal/commands"
	"github.com/proseengine/core/internal/events"
	"github.com/proseengine/core/internal/history"
	"github.com/proseengine/core/internal/htmlparse"
	"github.com/proseengine/core/internal/htmlprint"
	"github.com/proseengine/core/internal/model"
	"github.com/proseengine/core/internal/plugin"
	"github.com/proseengine/core/internal/schemadefault"
	"github.com/proseengine/core/internal/state"
)

// UploadResult is what an ImageUploader resolves to.
type UploadResult struct {
	Src           string
	Alt           string
	Width, Height int
}

// ImageUploader uploads raw image bytes and returns where they landed.
type ImageUploader func(file []byte) (UploadResult, error)

// EngineOptions holds every configurable option of "Configurable options".
type EngineOptions struct {
	DisablePlugins []string
	ImageUpload    ImageUploader
	Toolbar        string
	AirMode        bool
	Spellcheck     bool
	Autofocus      bool
	Placeholder    string
	MaxLength      int
	MinLength      int
	Required       bool
	ReadOnly       bool
	Disabled       bool
}

// EngineOption configures an Engine at construction time.
type EngineOption func(*EngineOptions)

func WithDisabledPlugins(names ...string) EngineOption {
	return func(o *EngineOptions) { o.DisablePlugins = names }
}

func WithImageUpload(u ImageUploader) EngineOption {
	return func(o *EngineOptions) { o.ImageUpload = u }
}

func WithToolbar(mode string) EngineOption {
	return func(o *EngineOptions) { o.Toolbar = mode }
}

func WithAirMode(enabled bool) EngineOption {
	return func(o *EngineOptions) { o.AirMode = enabled }
}

func WithSpellcheck(enabled bool) EngineOption {
	return func(o *EngineOptions) { o.Spellcheck = enabled }
}

func WithAutofocus(enabled bool) EngineOption {
	return func(o *EngineOptions) { o.Autofocus = enabled }
}

func WithPlaceholder(text string) EngineOption {
	return func(o *EngineOptions) { o.Placeholder = text }
}

func WithMaxLength(n int) EngineOption {
	return func(o *EngineOptions) { o.MaxLength = n }
}

func WithMinLength(n int) EngineOption {
	return func(o *EngineOptions) { o.MinLength = n }
}

func WithRequired(required bool) EngineOption {
	return func(o *EngineOptions) { o.Required = required }
}

func WithReadOnly(readOnly bool) EngineOption {
	return func(o *EngineOptions) { o.ReadOnly = readOnly }
}

func WithDisabled(disabled bool) EngineOption {
	return func(o *EngineOptions) { o.Disabled = disabled }
}

// Engine owns the schema, the current EditorState, the plugin manager, the
// undo/redo history, and the event bus host components subscribe to.
type Engine struct {
	schema  *model.Schema
	plugins *plugin.Manager
	history *history.History
	events  *events.Bus
	opts    EngineOptions

	current      *state.EditorState
	findQuery    string
	panelOpen    string // "", "find", "replace"
	focusValue   string
	hasFocus     bool
	destroyed    bool
}

// New builds an Engine with a fresh empty document.
func New(options ...EngineOption) (*Engine, error) {
	opts := EngineOptions{Toolbar: "full"}
	for _, o := range options {
		o(&opts)
	}
	schema, err := schemadefault.New()
	if err != nil {
		return nil, err
	}
	pm := plugin.NewManager(nil, nil)
	st, err := state.Create(schema, nil, nil, pm.StatePlugins())
	if err != nil {
		return nil, err
	}
	e := &Engine{
		schema:  schema,
		plugins: pm,
		history: history.New(100),
		events:  events.NewBus(),
		opts:    opts,
	}
	e.current = st
	e.focusValue = e.Value()
	e.events.Emit("ready", map[string]interface{}{"value": e.focusValue})
	return e, nil
}

// On subscribes to one of the events lists, returning an unsubscribe
// function.
func (e *Engine) On(name string, fn func(events.Event)) func() {
	return e.events.On(name, fn)
}

// State returns the current EditorState, the shared read model commands
// and host bridges operate against.
func (e *Engine) State() *state.EditorState { return e.current }

// Schema returns the document schema.
func (e *Engine) Schema() *model.Schema { return e.schema }

// dispatch commits tr, runs the plugin filter/append pipeline, records it
// in history, notifies plugins, and emits modelChanged (+ input when
// userInitiated). Rejected transactions (schema/step failure or a
// plugin's FilterTransaction veto) change nothing and fire no event.
func (e *Engine) dispatch(tr *state.Transaction, userInitiated bool) bool {
	if tr.Failed() != "" {
		return false
	}
	if e.opts.MaxLength > 0 && tr.DocChanged() {
		if newLen := len([]rune(tr.Doc.TextContent())); newLen > e.opts.MaxLength {
			return false
		}
	}
	before := e.current
	next, err := e.current.Apply(tr)
	if err != nil {
		return false
	}
	if next == before {
		return false // a plugin's FilterTransaction vetoed the commit
	}
	e.history.Track(before, tr)
	e.current = next
	e.plugins.NotifyStateDidUpdate(next, before)
	value := e.Value()
	e.events.Emit("modelChanged", map[string]interface{}{"value": value, "state": next})
	if userInitiated {
		e.events.Emit("input", map[string]interface{}{"value": value, "state": next})
	}
	e.emitTextCursorMove()
	return true
}

// Dispatch commits tr as a user-initiated transaction; it's the hook
// internal/input.Handler and internal/selection.Manager are wired
// against once a host attaches them to this Engine.
func (e *Engine) Dispatch(tr *state.Transaction) bool {
	return e.dispatch(tr, true)
}

// Run executes cmd against the current state exactly as a host's
// InputHandler/keymap binding would, treating it as user-initiated.
func (e *Engine) Run(cmd commands.Command) bool {
	return e.runDispatch(cmd, true)
}

// CanRun reports whether cmd would succeed without applying it (the
// dry-run contract, dispatch == nil).
func (e *Engine) CanRun(cmd commands.Command) bool {
	return cmd(e.current, nil)
}

func (e *Engine) runDispatch(cmd commands.Command, userInitiated bool) bool {
	applied := false
	ok := cmd(e.current, func(tr *state.Transaction) {
		applied = e.dispatch(tr, userInitiated)
	})
	return ok && applied
}

// Value serializes the current document to HTML, running the output
// sanitizer.
func (e *Engine) Value() string {
	return htmlparse.SanitizeOutput(htmlprint.Serialize(e.current.Doc))
}

// SetValue sanitizes and parses html, replaces the document, places the
// cursor at position 1, and fires contentSet.
func (e *Engine) SetValue(html string) error {
	doc, err := htmlparse.Parse(e.schema, html)
	if err != nil {
		return err
	}
	previous := e.Value()
	st, err := state.Create(e.schema, doc, nil, e.plugins.StatePlugins())
	if err != nil {
		return err
	}
	sel := state.Caret(clampInt(1, 0, st.Doc.ContentSize()))
	st.Selection = sel
	e.current = st
	e.history.Clear()
	e.events.Emit("contentSet", map[string]interface{}{"value": e.Value(), "previousValue": previous})
	return nil
}

// InsertHTML sanitizes html and inserts its parsed content at the current
// selection.
func (e *Engine) InsertHTML(html string) bool {
	frag, err := htmlparse.Parse(e.schema, html)
	if err != nil {
		return false
	}
	sel := e.current.Selection
	tr := e.current.Tr()
	if !sel.Empty() {
		tr.DeleteRange(sel.From(), sel.To())
	}
	pos := tr.Selection.From()
	tr.ReplaceRange(pos, pos, frag.Children())
	if tr.Failed() != "" {
		return false
	}
	return e.dispatch(tr, true)
}

// GetLength returns the document's text character count, excluding markup.
func (e *Engine) GetLength() int {
	return len([]rune(e.current.Doc.TextContent()))
}

// IsEmpty reports whether the document's content size is at most 2, as
// for a single empty paragraph (or any other single empty textblock).
func (e *Engine) IsEmpty() bool {
	doc := e.current.Doc
	return doc.ContentSize() <= 2
}

// CheckValidity reports false when the document is required-and-empty or
// shorter than MinLength.
func (e *Engine) CheckValidity() bool {
	if e.opts.Required && e.IsEmpty() {
		return false
	}
	if e.opts.MinLength > 0 && e.GetLength() < e.opts.MinLength {
		return false
	}
	return true
}

// Focus marks the engine as focused; Blur marks it unfocused and, if the
// value changed since the last focus, fires change.
func (e *Engine) Focus() {
	e.hasFocus = true
	e.focusValue = e.Value()
	e.events.Emit("focus", map[string]interface{}{"value": e.focusValue})
}

func (e *Engine) Blur() {
	e.hasFocus = false
	value := e.Value()
	e.events.Emit("blur", map[string]interface{}{"value": value})
	if value != e.focusValue {
		e.events.Emit("change", map[string]interface{}{"value": value, "previousValue": e.focusValue})
		e.focusValue = value
	}
}

// Destroy tears the engine down in order (plugins, view, input, selection —
// the latter three are host-owned and torn down by the host itself) and
// emits destroy before releasing state.
func (e *Engine) Destroy() {
	if e.destroyed {
		return
	}
	e.events.Emit("destroy", map[string]interface{}{"value": e.Value()})
	e.plugins.DestroyAll()
	e.destroyed = true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

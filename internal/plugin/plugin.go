// Package plugin implements the plugin capability record plus the manager
// that composes keymaps, runs transaction filters in load order, and
// notifies plugins after every committed transaction: the engine's
// extension point, aggregating behavior from a list of loaded plugins
// rather than a fixed pipeline of passes.
package plugin

import (
	"github.com/dlclark/regexp2"

	"github.com/proseengine/core/internal/commands"
	"github.com/proseengine/core/internal/model"
	"github.com/proseengine/core/internal/state"
)

// ToolbarItem is one entry contributed by Plugin.ToolbarItems.
type ToolbarItem struct {
	ID      string
	Label   string
	Command commands.Command
	Active  func(s *state.EditorState) bool
}

// MenuItem is one entry contributed by Plugin.ContextMenuItems.
type MenuItem struct {
	ID      string
	Label   string
	Command commands.Command
}

// InputRule auto-transforms text as it's typed: Pattern is matched against
// the current block's text up to the caret; on a match, Handler may replace
// the just-inserted text with something else by building its own
// transaction.
type InputRule struct {
	Pattern *regexp2.Regexp
	Handler func(s *state.EditorState, match *regexp2.Match, start, end int, dispatch func(*state.Transaction)) bool
}

// Plugin is the capability record a loaded extension provides: every hook
// is optional. Field names are distinct from the state.Plugin interface
// method names so *Plugin can implement that interface directly.
type Plugin struct {
	Name             string
	Init             func(engine interface{})
	Destroy          func()
	Keymap           func() map[string]commands.Command
	ToolbarItemsFn   func() []ToolbarItem
	InputRulesFn     func() []InputRule
	ContextMenuItems func(ctx interface{}) []MenuItem
	Filter           func(tr *state.Transaction, s *state.EditorState) bool
	StateUpdated     func(newState, oldState *state.EditorState)
}

// FilterTransaction implements state.Plugin, delegating to Filter (or
// accepting unconditionally if the plugin declares no filter).
func (p *Plugin) FilterTransaction(tr *state.Transaction, s *state.EditorState) bool {
	if p.Filter == nil {
		return true
	}
	return p.Filter(tr, s)
}

// AppendTransaction implements state.Plugin. PluginManager has no
// append-transaction hook (only filterTransaction/stateDidUpdate), so this
// is always identity; kept only so *Plugin satisfies state.Plugin.
func (p *Plugin) AppendTransaction(trs []*state.Transaction, oldState, newState *state.EditorState) *state.Transaction {
	return nil
}

// Manager owns plugin load order, composed keymap, and the input-rule
// pipeline.
type Manager struct {
	plugins        []*Plugin
	onKeymapChange func(map[string]commands.Command)
}

// NewManager builds a Manager from plugins in load order, running each
// plugin's Init hook if present.
func NewManager(engine interface{}, plugins []*Plugin) *Manager {
	m := &Manager{plugins: plugins}
	for _, p := range plugins {
		if p.Init != nil {
			p.Init(engine)
		}
	}
	return m
}

// StatePlugins returns the manager's plugins as the state.Plugin slice an
// EditorState is constructed with.
func (m *Manager) StatePlugins() []state.Plugin {
	out := make([]state.Plugin, len(m.plugins))
	for i, p := range m.plugins {
		out[i] = p
	}
	return out
}

// Register appends a plugin, runs its Init hook, and recomposes the
// keymap.
func (m *Manager) Register(engine interface{}, p *Plugin) {
	if p.Init != nil {
		p.Init(engine)
	}
	m.plugins = append(m.plugins, p)
	m.notifyKeymapChange()
}

// Unregister removes the named plugin, running its Destroy hook.
func (m *Manager) Unregister(name string) {
	for i, p := range m.plugins {
		if p.Name != name {
			continue
		}
		if p.Destroy != nil {
			p.Destroy()
		}
		m.plugins = append(m.plugins[:i], m.plugins[i+1:]...)
		m.notifyKeymapChange()
		return
	}
}

// Get returns the named plugin, if loaded.
func (m *Manager) Get(name string) (*Plugin, bool) {
	for _, p := range m.plugins {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// OnKeymapChange registers the callback the manager notifies whenever the
// composed keymap changes, so the InputHandler can pick up the new
// bindings.
func (m *Manager) OnKeymapChange(cb func(map[string]commands.Command)) {
	m.onKeymapChange = cb
}

func (m *Manager) notifyKeymapChange() {
	if m.onKeymapChange != nil {
		m.onKeymapChange(m.ComposeKeymap(nil))
	}
}

// ComposeKeymap merges every plugin's keymap over engineBase in load
// order, with engineOverrides (the engine's own bindings) taking
// precedence over all of it.
func (m *Manager) ComposeKeymap(engineBase map[string]commands.Command) map[string]commands.Command {
	out := make(map[string]commands.Command, len(engineBase))
	for k, v := range engineBase {
		out[k] = v
	}
	for _, p := range m.plugins {
		if p.Keymap == nil {
			continue
		}
		for k, v := range p.Keymap() {
			out[k] = v
		}
	}
	return out
}

// ToolbarItems collects every plugin's toolbar contributions in load
// order.
func (m *Manager) ToolbarItems() []ToolbarItem {
	var out []ToolbarItem
	for _, p := range m.plugins {
		if p.ToolbarItemsFn != nil {
			out = append(out, p.ToolbarItemsFn()...)
		}
	}
	return out
}

// ContextMenuItems collects every plugin's context-menu contributions for
// the given context in load order.
func (m *Manager) ContextMenuItems(ctx interface{}) []MenuItem {
	var out []MenuItem
	for _, p := range m.plugins {
		if p.ContextMenuItems != nil {
			out = append(out, p.ContextMenuItems(ctx)...)
		}
	}
	return out
}

// NotifyStateDidUpdate runs every plugin's StateUpdated hook after a
// transaction has been committed.
func (m *Manager) NotifyStateDidUpdate(newState, oldState *state.EditorState) {
	for _, p := range m.plugins {
		if p.StateUpdated != nil {
			p.StateUpdated(newState, oldState)
		}
	}
}

// DestroyAll runs every plugin's Destroy hook in load order.
func (m *Manager) DestroyAll() {
	for _, p := range m.plugins {
		if p.Destroy != nil {
			p.Destroy()
		}
	}
}

// RunInputRules is invoked after a dispatched InsertText: it inspects the
// current block's text up to the caret against every plugin's input
// rules in order, and gives the first match's handler a chance to
// replace the insertion.
func (m *Manager) RunInputRules(s *state.EditorState, dispatch func(*state.Transaction)) bool {
	text := textBeforeCaret(s.Doc, s.Selection.Head)
	for _, p := range m.plugins {
		if p.InputRulesFn == nil {
			continue
		}
		for _, rule := range p.InputRulesFn() {
			match, _ := rule.Pattern.FindStringMatch(text)
			if match == nil {
				continue
			}
			start := s.Selection.Head - (len(text) - match.Index)
			end := start + match.Length
			if rule.Handler(s, match, start, end, dispatch) {
				return true
			}
		}
	}
	return false
}

func textBeforeCaret(doc *model.Node, pos int) string {
	r, err := model.Resolve(doc, pos)
	if err != nil {
		return ""
	}
	var out []rune
	doc.NodesBetween(r.Start(r.Depth), pos, func(n *model.Node, p int, parent *model.Node, index int) bool {
		if n.IsText() {
			runes := []rune(n.Text())
			if end := pos - p; end < len(runes) {
				runes = runes[:end]
			}
			out = append(out, runes...)
		}
		return true
	}, 0)
	return string(out)
}

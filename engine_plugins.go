package proseengine

import "github.com/proseengine/core/internal/plugin"

// RegisterPlugin loads p, recomposing the keymap and toolbar it
// contributes, and fires pluginLoaded{name}.
func (e *Engine) RegisterPlugin(p *plugin.Plugin) {
	e.plugins.Register(e, p)
	e.events.Emit("pluginLoaded", map[string]interface{}{"name": p.Name})
}

// UnregisterPlugin tears down and removes the named plugin.
func (e *Engine) UnregisterPlugin(name string) {
	e.plugins.Unregister(name)
}

// GetPlugin returns the named loaded plugin, if any.
func (e *Engine) GetPlugin(name string) (*plugin.Plugin, bool) {
	return e.plugins.Get(name)
}

// toolbarItemPluginName namespaces the ad-hoc single-item plugins
// RegisterToolbarItem wraps its items in, keeping them out of the way of
// a caller's own plugin names.
func toolbarItemPluginName(id string) string { return "toolbaritem:" + id }

// RegisterToolbarItem adds a single toolbar entry outside of a full
// Plugin, by wrapping it in a throwaway plugin the manager tracks like
// any other.
func (e *Engine) RegisterToolbarItem(item plugin.ToolbarItem) {
	e.plugins.Register(e, &plugin.Plugin{
		Name:           toolbarItemPluginName(item.ID),
		ToolbarItemsFn: func() []plugin.ToolbarItem { return []plugin.ToolbarItem{item} },
	})
}

// UnregisterToolbarItem removes a toolbar entry added via
// RegisterToolbarItem.
func (e *Engine) UnregisterToolbarItem(id string) {
	e.plugins.Unregister(toolbarItemPluginName(id))
}

// GetToolbarItems returns every toolbar item contributed by loaded
// plugins, in load order.
func (e *Engine) GetToolbarItems() []plugin.ToolbarItem {
	return e.plugins.ToolbarItems()
}

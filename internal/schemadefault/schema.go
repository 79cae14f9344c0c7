// Package schemadefault builds the fixed default document schema as a
// package-level value, wiring up its fixed node and mark tables the way a
// tag table gets assembled once and reused.
package schemadefault

import (
	"fmt"

	"github.com/iancoleman/strcase"
	"golang.org/x/net/html/atom"

	"github.com/proseengine/core/internal/model"
)

func optAttr(def interface{}) model.AttributeSpec {
	return model.AttributeSpec{HasDefault: true, Default: def}
}

func reqAttr() model.AttributeSpec {
	return model.AttributeSpec{HasDefault: false}
}

// domTag resolves name against the standard HTML tag table via atom.Lookup
// before emitting a tag, and falls back to the literal name for the
// handful of non-standard tags this schema emits (none currently, but
// ToDOM call sites stay atom-safe as tags are added).
func domTag(name string) string {
	if a := atom.Lookup([]byte(name)); a != 0 {
		return a.String()
	}
	return name
}

// cssProp derives a kebab-case CSS property name from a camelCase model
// attribute name, e.g. "lineHeight" -> "line-height".
func cssProp(attrName string) string {
	return strcase.ToKebab(attrName)
}

// blockAttrs is shared by paragraph, heading and listItem: align, indent,
// lineHeight.
func blockAttrs() map[string]model.AttributeSpec {
	return map[string]model.AttributeSpec{
		"align":      optAttr(nil),
		"indent":     optAttr(0),
		"lineHeight": optAttr(nil),
	}
}

func dom(tag string, attrs map[string]string, children ...model.DOMChild) *model.DOMSpec {
	return &model.DOMSpec{Tag: domTag(tag), Attrs: attrs, Children: children}
}

func attrString(n *model.Node, name string) string {
	v, _ := n.Attrs()[name].(string)
	return v
}

// Spec returns the SchemaSpec for the engine's fixed default schema.
func Spec() model.SchemaSpec {
	return model.SchemaSpec{
		Nodes: []model.NodeSpec{
			{
				Name:    "document",
				Content: "block+",
			},
			{
				Name:    "paragraph",
				Content: "inline*",
				Group:   "block",
				Attrs:   blockAttrs(),
				ToDOM: func(n *model.Node) *model.DOMSpec {
					return dom("p", blockStyleAttrs(n), model.ContentHole())
				},
			},
			{
				Name:    "heading",
				Content: "inline*",
				Group:   "block",
				Attrs: mergeAttrs(blockAttrs(), map[string]model.AttributeSpec{
					"level": optAttr(1),
				}),
				ToDOM: func(n *model.Node) *model.DOMSpec {
					level, _ := n.Attrs()["level"].(int)
					if level < 1 || level > 6 {
						level = 1
					}
					return dom(fmt.Sprintf("h%d", level), blockStyleAttrs(n), model.ContentHole())
				},
			},
			{
				Name:    "blockquote",
				Content: "block+",
				Group:   "block",
				ToDOM:   func(n *model.Node) *model.DOMSpec { return dom("blockquote", nil, model.ContentHole()) },
			},
			{
				Name:    "bulletList",
				Content: "listItem+",
				Group:   "block",
				ToDOM:   func(n *model.Node) *model.DOMSpec { return dom("ul", nil, model.ContentHole()) },
			},
			{
				Name:    "orderedList",
				Content: "listItem+",
				Group:   "block",
				Attrs:   map[string]model.AttributeSpec{"start": optAttr(1)},
				ToDOM: func(n *model.Node) *model.DOMSpec {
					start, _ := n.Attrs()["start"].(int)
					attrs := map[string]string{}
					if start > 1 {
						attrs["start"] = fmt.Sprintf("%d", start)
					}
					return dom("ol", attrs, model.ContentHole())
				},
			},
			{
				Name:    "listItem",
				Content: "block+",
				Attrs:   mergeAttrs(blockAttrs(), map[string]model.AttributeSpec{"checked": optAttr(nil)}),
				ToDOM: func(n *model.Node) *model.DOMSpec {
					attrs := blockStyleAttrs(n)
					if checked, ok := n.Attrs()["checked"].(bool); ok {
						attrs["data-checked"] = fmt.Sprintf("%t", checked)
					}
					return dom("li", attrs, model.ContentHole())
				},
			},
			{
				Name:    "codeBlock",
				Content: "text*",
				Group:   "block",
				Attrs:   map[string]model.AttributeSpec{"language": optAttr("")},
				ToDOM: func(n *model.Node) *model.DOMSpec {
					lang := attrString(n, "language")
					codeAttrs := map[string]string{}
					if lang != "" {
						codeAttrs["class"] = "language-" + lang
					}
					return dom("pre", nil, model.Elem(dom("code", codeAttrs, model.ContentHole())))
				},
			},
			{
				Name:    "horizontalRule",
				Group:   "block",
				Leaf:    true,
				ToDOM:   func(n *model.Node) *model.DOMSpec { return dom("hr", nil) },
			},
			{
				Name:    "table",
				Content: "tableRow+",
				Group:   "block",
				Attrs: map[string]model.AttributeSpec{
					"headerRow":    optAttr(false),
					"headerColumn": optAttr(false),
				},
				ToDOM: func(n *model.Node) *model.DOMSpec {
					classes := ""
					if hr, _ := n.Attrs()["headerRow"].(bool); hr {
						classes += "has-header-row "
					}
					if hc, _ := n.Attrs()["headerColumn"].(bool); hc {
						classes += "has-header-column"
					}
					attrs := map[string]string{}
					if classes != "" {
						attrs["class"] = classes
					}
					return dom("table", attrs, model.Elem(dom("tbody", nil, model.ContentHole())))
				},
			},
			{
				Name:    "tableRow",
				Content: "tableCell+",
				ToDOM:   func(n *model.Node) *model.DOMSpec { return dom("tr", nil, model.ContentHole()) },
			},
			{
				Name:    "tableCell",
				Content: "block+",
				Attrs: map[string]model.AttributeSpec{
					"colspan": optAttr(1),
					"rowspan": optAttr(1),
					"header":  optAttr(false),
				},
				ToDOM: func(n *model.Node) *model.DOMSpec {
					tag := "td"
					if h, _ := n.Attrs()["header"].(bool); h {
						tag = "th"
					}
					attrs := map[string]string{}
					if cs, _ := n.Attrs()["colspan"].(int); cs > 1 {
						attrs["colspan"] = fmt.Sprintf("%d", cs)
					}
					if rs, _ := n.Attrs()["rowspan"].(int); rs > 1 {
						attrs["rowspan"] = fmt.Sprintf("%d", rs)
					}
					return dom(tag, attrs, model.ContentHole())
				},
			},
			{
				Name:   "image",
				Group:  "inline",
				Inline: true,
				Leaf:   true,
				Attrs: map[string]model.AttributeSpec{
					"src": reqAttr(), "alt": optAttr(""), "title": optAttr(""),
					"width": optAttr(nil), "height": optAttr(nil),
					"caption": optAttr(""), "align": optAttr(nil),
				},
				ToDOM: func(n *model.Node) *model.DOMSpec {
					a := n.Attrs()
					attrs := map[string]string{"src": fmt.Sprint(a["src"])}
					if alt, _ := a["alt"].(string); alt != "" {
						attrs["alt"] = alt
					}
					if title, _ := a["title"].(string); title != "" {
						attrs["title"] = title
					}
					if w := a["width"]; w != nil {
						attrs["width"] = fmt.Sprint(w)
					}
					if h := a["height"]; h != nil {
						attrs["height"] = fmt.Sprint(h)
					}
					if align, _ := a["align"].(string); align != "" {
						attrs["style"] = "float:" + align + ";"
					}
					return dom("img", attrs)
				},
			},
			{
				Name:   "video",
				Group:  "block",
				Leaf:   true,
				Attrs: map[string]model.AttributeSpec{
					"src": reqAttr(), "caption": optAttr(""), "align": optAttr(nil),
					"width": optAttr(nil), "height": optAttr(nil),
				},
				ToDOM: func(n *model.Node) *model.DOMSpec {
					a := n.Attrs()
					attrs := map[string]string{"src": fmt.Sprint(a["src"]), "controls": "controls"}
					if align, _ := a["align"].(string); align != "" {
						attrs["style"] = "float:" + align + ";"
					}
					return dom("video", attrs)
				},
			},
			{
				Name:   "embed",
				Group:  "block",
				Leaf:   true,
				Attrs: map[string]model.AttributeSpec{
					"src": reqAttr(), "caption": optAttr(""), "align": optAttr(nil),
					"width": optAttr(nil), "height": optAttr(nil),
				},
				ToDOM: func(n *model.Node) *model.DOMSpec {
					a := n.Attrs()
					attrs := map[string]string{"src": fmt.Sprint(a["src"]), "frameborder": "0"}
					if align, _ := a["align"].(string); align != "" {
						attrs["style"] = "float:" + align + ";"
					}
					return dom("iframe", attrs)
				},
			},
			{
				Name:   "hardBreak",
				Group:  "inline",
				Inline: true,
				Leaf:   true,
				ToDOM:  func(n *model.Node) *model.DOMSpec { return dom("br", nil) },
			},
			{
				Name:   "text",
				Group:  "inline",
				Inline: true,
			},
		},
		Marks: []model.MarkSpec{
			{Name: "bold", ToDOM: func(m *model.Mark) *model.DOMSpec { return dom("strong", nil, model.ContentHole()) }},
			{Name: "italic", ToDOM: func(m *model.Mark) *model.DOMSpec { return dom("em", nil, model.ContentHole()) }},
			{Name: "underline", ToDOM: func(m *model.Mark) *model.DOMSpec { return dom("u", nil, model.ContentHole()) }},
			{Name: "strikethrough", ToDOM: func(m *model.Mark) *model.DOMSpec { return dom("s", nil, model.ContentHole()) }},
			{Name: "code", ToDOM: func(m *model.Mark) *model.DOMSpec { return dom("code", nil, model.ContentHole()) }},
			{Name: "subscript", ToDOM: func(m *model.Mark) *model.DOMSpec { return dom("sub", nil, model.ContentHole()) }},
			{Name: "superscript", ToDOM: func(m *model.Mark) *model.DOMSpec { return dom("sup", nil, model.ContentHole()) }},
			{
				Name: "link",
				Attrs: map[string]model.AttributeSpec{
					"href": reqAttr(), "title": optAttr(""), "target": optAttr(""),
				},
				ToDOM: func(m *model.Mark) *model.DOMSpec {
					attrs := map[string]string{"href": fmt.Sprint(m.Attrs["href"])}
					if title, _ := m.Attrs["title"].(string); title != "" {
						attrs["title"] = title
					}
					if target, _ := m.Attrs["target"].(string); target != "" {
						attrs["target"] = target
						if target == "_blank" {
							attrs["rel"] = "noopener noreferrer"
						}
					}
					return dom("a", attrs, model.ContentHole())
				},
			},
			{Name: "textColor", Attrs: map[string]model.AttributeSpec{"color": reqAttr()},
				ToDOM: func(m *model.Mark) *model.DOMSpec {
					return dom("span", map[string]string{"style": "color:" + fmt.Sprint(m.Attrs["color"])}, model.ContentHole())
				}},
			{Name: "backgroundColor", Attrs: map[string]model.AttributeSpec{"color": reqAttr()},
				ToDOM: func(m *model.Mark) *model.DOMSpec {
					return dom("span", map[string]string{"style": "background-color:" + fmt.Sprint(m.Attrs["color"])}, model.ContentHole())
				}},
			{Name: "fontSize", Attrs: map[string]model.AttributeSpec{"size": reqAttr()},
				ToDOM: func(m *model.Mark) *model.DOMSpec {
					return dom("span", map[string]string{"style": "font-size:" + fmt.Sprint(m.Attrs["size"])}, model.ContentHole())
				}},
			{Name: "fontFamily", Attrs: map[string]model.AttributeSpec{"family": reqAttr()},
				ToDOM: func(m *model.Mark) *model.DOMSpec {
					return dom("span", map[string]string{"style": "font-family:" + fmt.Sprint(m.Attrs["family"])}, model.ContentHole())
				}},
		},
	}
}

func mergeAttrs(a, b map[string]model.AttributeSpec) map[string]model.AttributeSpec {
	out := map[string]model.AttributeSpec{}
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// blockStyleAttrs renders the shared align/indent/lineHeight attrs into an
// inline style string per ("may carry an inline style combining text-align,
// margin-left (= indent × 40px), and line-height").
func blockStyleAttrs(n *model.Node) map[string]string {
	a := n.Attrs()
	var style string
	if align, _ := a["align"].(string); align != "" {
		style += "text-align:" + align + ";"
	}
	if indent, _ := a["indent"].(int); indent > 0 {
		style += fmt.Sprintf("margin-left:%dpx;", indent*40)
	}
	if lh, _ := a["lineHeight"].(string); lh != "" {
		style += cssProp("lineHeight") + ":" + lh + ";"
	}
	if style == "" {
		return nil
	}
	return map[string]string{"style": style}
}

// New builds the default schema.
func New() (*model.Schema, error) {
	return model.NewSchema(Spec())
}

// Must is New but panics on error, for package-level wiring.
func Must() *model.Schema {
	s, err := New()
	if err != nil {
		panic(err)
	}
	return s
}

// DefaultSchema is the engine's fixed default schema.
var DefaultSchema = Must()

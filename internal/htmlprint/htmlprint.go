// Package htmlprint serializes a document tree to HTML by walking each
// node's schema DOM spec literally and accumulating output into a byte
// buffer.
package htmlprint

import (
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/proseengine/core/internal/model"
)

// voidTags never emit a closing tag or content, matching HTML's own void
// element list for the leaf node types the default schema can produce.
var voidTags = map[string]bool{
	"br": true, "hr": true, "img": true,
}

type printer struct {
	output strings.Builder
}

func (p *printer) print(s string) { p.output.WriteString(s) }

// Serialize renders doc to an HTML string using each node and mark's
// ToDOM spec. doc is normally the top-level document node.
func Serialize(doc *model.Node) string {
	p := &printer{}
	p.printChildren(doc)
	return p.output.String()
}

func (p *printer) printChildren(n *model.Node) {
	for _, child := range n.Children() {
		p.printNode(child)
	}
}

func (p *printer) printNode(n *model.Node) {
	if n.IsText() {
		p.printText(n)
		return
	}
	spec := n.Type().Spec.ToDOM
	if spec == nil {
		p.printChildren(n)
		return
	}
	p.printDOMSpec(spec(n), n)
}

// printText wraps the text node's content in its marks' DOM specs,
// innermost mark first (the mark closest to the text), then escapes and
// emits the text itself.
func (p *printer) printText(n *model.Node) {
	marks := sortedForOutput(n.Marks())
	for _, m := range marks {
		spec := m.Type.Spec.ToDOM
		if spec == nil {
			continue
		}
		d := spec(m)
		p.openTag(d)
	}
	p.print(html.EscapeString(n.Text()))
	for i := len(marks) - 1; i >= 0; i-- {
		spec := marks[i].Type.Spec.ToDOM
		if spec == nil {
			continue
		}
		p.closeTag(spec(marks[i]).Tag)
	}
}

// sortedForOutput orders marks by type name ascending, so nested output is
// deterministic regardless of application order and the outermost mark is
// always the alphabetically smallest.
func sortedForOutput(marks []*model.Mark) []*model.Mark {
	out := append([]*model.Mark{}, marks...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Type.Name < out[j].Type.Name })
	return out
}

func (p *printer) printDOMSpec(d *model.DOMSpec, n *model.Node) {
	if d == nil {
		p.printChildren(n)
		return
	}
	p.openTag(d)
	if !voidTags[d.Tag] {
		for _, child := range d.Children {
			p.printDOMChild(child, n)
		}
		p.closeTag(d.Tag)
	}
}

func (p *printer) printDOMChild(c model.DOMChild, n *model.Node) {
	if c.IsHole {
		p.printChildren(n)
		return
	}
	if c.Spec == nil {
		return
	}
	p.openTag(c.Spec)
	if !voidTags[c.Spec.Tag] {
		for _, grandchild := range c.Spec.Children {
			p.printDOMChild(grandchild, n)
		}
		p.closeTag(c.Spec.Tag)
	}
}

func (p *printer) openTag(d *model.DOMSpec) {
	p.print("<" + d.Tag)
	for _, name := range sortedKeys(d.Attrs) {
		v := d.Attrs[name]
		if v == "" {
			continue
		}
		p.print(" " + name + `="` + html.EscapeString(v) + `"`)
	}
	p.print(">")
}

func (p *printer) closeTag(tag string) {
	p.print("</" + tag + ">")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

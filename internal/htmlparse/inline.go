package htmlparse

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/proseengine/core/internal/model"
)

// inlineMarkTags maps an HTML tag directly to a mark type name for the
// marks with no attributes of their own.
var inlineMarkTags = map[string]string{
	"b": "bold", "strong": "bold",
	"i": "italic", "em": "italic",
	"u": "underline",
	"s": "strikethrough", "strike": "strikethrough", "del": "strikethrough",
	"code": "code",
	"sub":  "subscript",
	"sup":  "superscript",
}

var inlineTags = map[string]bool{
	"b": true, "strong": true, "i": true, "em": true, "u": true,
	"s": true, "strike": true, "del": true, "code": true, "sub": true,
	"sup": true, "a": true, "span": true, "br": true, "img": true,
}

func isInlineTag(tag string) bool { return inlineTags[tag] }

// parseInlineRun walks a run of sibling HTML nodes, producing text and
// leaf inline document nodes with marks accumulated from any enclosing
// mark-producing elements.
func (p *parser) parseInlineRun(nodes []*html.Node, marks []*model.Mark) []*model.Node {
	var out []*model.Node
	for _, n := range nodes {
		out = append(out, p.parseInlineNode(n, marks)...)
	}
	return out
}

func (p *parser) parseInlineNode(n *html.Node, marks []*model.Mark) []*model.Node {
	switch n.Type {
	case html.TextNode:
		if n.Data == "" {
			return nil
		}
		tn, err := p.schema.Text(n.Data, marks)
		if err != nil {
			return nil
		}
		return []*model.Node{tn}
	case html.CommentNode, html.DoctypeNode:
		return nil
	}
	if n.Type != html.ElementNode {
		return nil
	}
	switch n.Data {
	case "br":
		node, err := p.schema.Node("hardBreak", nil, nil, nil)
		if err != nil {
			return nil
		}
		return []*model.Node{node}
	case "img":
		return p.inlineImage(n)
	case "a":
		m, err := p.schema.Mark("link", linkAttrs(n))
		if err != nil {
			return p.parseInlineRun(childNodes(n), marks)
		}
		return p.parseInlineRun(childNodes(n), model.AddToSet(marks, m))
	case "span":
		m := spanMark(p.schema, n)
		if m == nil {
			return p.parseInlineRun(childNodes(n), marks)
		}
		return p.parseInlineRun(childNodes(n), model.AddToSet(marks, m))
	default:
		if markName, ok := inlineMarkTags[n.Data]; ok {
			m, err := p.schema.Mark(markName, nil)
			if err != nil {
				return p.parseInlineRun(childNodes(n), marks)
			}
			return p.parseInlineRun(childNodes(n), model.AddToSet(marks, m))
		}
		// unknown inline tag: keep its text, drop the wrapper.
		return p.parseInlineRun(childNodes(n), marks)
	}
}

func (p *parser) inlineImage(n *html.Node) []*model.Node {
	src := attrVal(n, "src")
	if src == "" {
		return nil
	}
	attrs := model.Attrs{"src": src}
	if alt := attrVal(n, "alt"); alt != "" {
		attrs["alt"] = alt
	}
	if title := attrVal(n, "title"); title != "" {
		attrs["title"] = title
	}
	if w := intAttr(n, "width"); w > 0 {
		attrs["width"] = w
	}
	if h := intAttr(n, "height"); h > 0 {
		attrs["height"] = h
	}
	node, err := p.schema.Node("image", attrs, nil, nil)
	if err != nil {
		return nil
	}
	return []*model.Node{node}
}

func linkAttrs(n *html.Node) model.Attrs {
	attrs := model.Attrs{"href": attrVal(n, "href")}
	if title := attrVal(n, "title"); title != "" {
		attrs["title"] = title
	}
	if target := attrVal(n, "target"); target != "" {
		attrs["target"] = target
	}
	return attrs
}

// spanMark recognizes the single style declaration a default-schema <span>
// carries for textColor/backgroundColor/fontSize/fontFamily (the inverse
// of schemadefault's ToDOM for those marks); a span with any other style
// or no recognized declaration is treated as a plain wrapper.
func spanMark(schema *model.Schema, n *html.Node) *model.Mark {
	style := attrVal(n, "style")
	if style == "" {
		return nil
	}
	for _, decl := range strings.Split(style, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		parts := strings.SplitN(decl, ":", 2)
		if len(parts) != 2 {
			continue
		}
		prop := strings.ToLower(strings.TrimSpace(parts[0]))
		val := strings.TrimSpace(parts[1])
		var markName, attrName string
		switch prop {
		case "color":
			markName, attrName = "textColor", "color"
		case "background-color":
			markName, attrName = "backgroundColor", "color"
		case "font-size":
			markName, attrName = "fontSize", "size"
		case "font-family":
			markName, attrName = "fontFamily", "family"
		default:
			continue
		}
		m, err := schema.Mark(markName, model.Attrs{attrName: val})
		if err != nil {
			continue
		}
		return m
	}
	return nil
}

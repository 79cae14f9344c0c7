package htmlparse

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/proseengine/core/internal/model"
)

type parser struct {
	schema *model.Schema
}

// parseBlocks converts one HTML node (and its children, recursively) into
// zero or more block-level document nodes. ParseError handling is
// per-element: an element the schema cannot place is caught, wrapped in a
// paragraph when it carries inline content, and otherwise dropped, so the
// rest of the document still parses.
func (p *parser) parseBlocks(n *html.Node) []*model.Node {
	if n.Type == html.CommentNode || n.Type == html.DoctypeNode {
		return nil
	}
	if n.Type == html.TextNode {
		if strings.TrimSpace(n.Data) == "" {
			return nil
		}
		return p.wrapInline([]*html.Node{n})
	}
	switch n.Data {
	case "p", "div", "section", "article", "header", "footer", "aside", "nav":
		return p.block("paragraph", nil, n)
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level, _ := strconv.Atoi(n.Data[1:])
		return p.block("heading", model.Attrs{"level": level}, n)
	case "blockquote":
		return p.blockFromBlocks("blockquote", nil, p.childBlocks(n))
	case "ul":
		return p.blockFromBlocks("bulletList", nil, p.listItems(n))
	case "ol":
		return p.blockFromBlocks("orderedList", nil, p.listItems(n))
	case "hr":
		return p.leaf("horizontalRule", nil)
	case "pre":
		return p.codeBlock(n)
	case "table":
		return p.table(n)
	case "video":
		return p.mediaBlock("video", n)
	case "iframe":
		return p.mediaBlock("embed", n)
	case "br":
		return p.wrapInline([]*html.Node{n})
	case "img":
		return p.wrapInline([]*html.Node{n})
	default:
		if isInlineTag(n.Data) {
			return p.wrapInline([]*html.Node{n})
		}
		// unknown block-level tag: fall back to paragraph.
		return p.block("paragraph", nil, n)
	}
}

func (p *parser) block(typeName string, attrs model.Attrs, n *html.Node) []*model.Node {
	inline := p.parseInlineRun(childNodes(n), nil)
	node, err := p.schema.Node(typeName, attrs, inline, nil)
	if err != nil {
		return nil
	}
	return []*model.Node{node}
}

func (p *parser) blockFromBlocks(typeName string, attrs model.Attrs, children []*model.Node) []*model.Node {
	if len(children) == 0 {
		return nil
	}
	node, err := p.schema.Node(typeName, attrs, children, nil)
	if err != nil {
		return nil
	}
	return []*model.Node{node}
}

func (p *parser) leaf(typeName string, attrs model.Attrs) []*model.Node {
	node, err := p.schema.Node(typeName, attrs, nil, nil)
	if err != nil {
		return nil
	}
	return []*model.Node{node}
}

func (p *parser) childBlocks(n *html.Node) []*model.Node {
	var out []*model.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, p.parseBlocks(c)...)
	}
	return out
}

func (p *parser) listItems(n *html.Node) []*model.Node {
	var items []*model.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "li" {
			continue
		}
		checked, hasChecked := liCheckedAttr(c)
		blocks := p.childBlocks(c)
		if len(blocks) == 0 {
			para, err := p.schema.Node("paragraph", nil, nil, nil)
			if err != nil {
				continue
			}
			blocks = []*model.Node{para}
		}
		attrs := model.Attrs{}
		if hasChecked {
			attrs["checked"] = checked
		}
		item, err := p.schema.Node("listItem", attrs, blocks, nil)
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	return items
}

// liCheckedAttr reads a checklist <li> marker from its data-checked
// attribute (as in our own serialized output); a checkbox input inside the
// <li> is not consulted.
func liCheckedAttr(n *html.Node) (bool, bool) {
	for _, a := range n.Attr {
		if a.Key == "data-checked" {
			return a.Val == "true", true
		}
	}
	return false, false
}

func (p *parser) codeBlock(n *html.Node) []*model.Node {
	code := n
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "code" {
			code = c
			break
		}
	}
	lang := ""
	if code != n {
		for _, a := range code.Attr {
			if a.Key == "class" && strings.HasPrefix(a.Val, "language-") {
				lang = strings.TrimPrefix(a.Val, "language-")
			}
		}
	}
	text := textContent(code)
	var content []*model.Node
	if text != "" {
		tn, err := p.schema.Text(text, nil)
		if err == nil {
			content = []*model.Node{tn}
		}
	}
	node, err := p.schema.Node("codeBlock", model.Attrs{"language": lang}, content, nil)
	if err != nil {
		return nil
	}
	return []*model.Node{node}
}

func (p *parser) table(n *html.Node) []*model.Node {
	var rows []*model.Node
	var walkRows func(n *html.Node)
	walkRows = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "thead", "tbody", "tfoot":
				walkRows(c)
			case "tr":
				rows = append(rows, p.tableRow(c))
			}
		}
	}
	walkRows(n)
	var filtered []*model.Node
	for _, r := range rows {
		if r != nil {
			filtered = append(filtered, r)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	node, err := p.schema.Node("table", nil, filtered, nil)
	if err != nil {
		return nil
	}
	return []*model.Node{node}
}

func (p *parser) tableRow(n *html.Node) *model.Node {
	var cells []*model.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
			continue
		}
		blocks := p.childBlocks(c)
		if len(blocks) == 0 {
			inline := p.parseInlineRun(childNodes(c), nil)
			para, err := p.schema.Node("paragraph", nil, inline, nil)
			if err != nil {
				continue
			}
			blocks = []*model.Node{para}
		}
		attrs := model.Attrs{"header": c.Data == "th"}
		if cs := intAttr(c, "colspan"); cs > 1 {
			attrs["colspan"] = cs
		}
		if rs := intAttr(c, "rowspan"); rs > 1 {
			attrs["rowspan"] = rs
		}
		cell, err := p.schema.Node("tableCell", attrs, blocks, nil)
		if err != nil {
			continue
		}
		cells = append(cells, cell)
	}
	if len(cells) == 0 {
		return nil
	}
	row, err := p.schema.Node("tableRow", nil, cells, nil)
	if err != nil {
		return nil
	}
	return row
}

func (p *parser) mediaBlock(typeName string, n *html.Node) []*model.Node {
	src := attrVal(n, "src")
	if src == "" {
		return nil
	}
	attrs := model.Attrs{"src": src}
	if w := intAttr(n, "width"); w > 0 {
		attrs["width"] = w
	}
	if h := intAttr(n, "height"); h > 0 {
		attrs["height"] = h
	}
	node, err := p.schema.Node(typeName, attrs, nil, nil)
	if err != nil {
		return nil
	}
	return []*model.Node{node}
}

// wrapInline wraps a run of bare inline/text nodes (found directly under a
// block-level parent with no enclosing block element) in a paragraph.
func (p *parser) wrapInline(nodes []*html.Node) []*model.Node {
	inline := p.parseInlineRun(nodes, nil)
	if len(inline) == 0 {
		return nil
	}
	para, err := p.schema.Node("paragraph", nil, inline, nil)
	if err != nil {
		return nil
	}
	return []*model.Node{para}
}

func childNodes(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func intAttr(n *html.Node, key string) int {
	v, _ := strconv.Atoi(attrVal(n, key))
	return v
}

func textContent(n *html.Node) string {
	var out strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			out.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out.String()
}

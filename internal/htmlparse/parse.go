// Package htmlparse implements the HTML boundary: an input sanitizer, an
// output sanitizer, and an HTML→doc parser that walks an HTML tree node by
// node.
package htmlparse

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/proseengine/core/internal/model"
)

// forbiddenElements are stripped entirely, subtree included.
var forbiddenElements = map[string]bool{
	"script": true, "iframe": true, "object": true, "embed": true,
	"form": true, "input": true, "button": true, "select": true,
	"textarea": true, "link": true, "meta": true, "base": true, "applet": true,
}

// urlAttrs are checked against dangerousSchemes after entity decoding.
var urlAttrs = map[string]bool{
	"href": true, "src": true, "action": true, "formaction": true,
	"data": true, "codebase": true,
}

var dangerousSchemes = []string{"javascript:", "vbscript:", "data:text/html"}

// Parse sanitizes and parses an HTML fragment into a document node using
// schema, falling back to a single empty paragraph when the input yields
// no usable block content.
func Parse(schema *model.Schema, source string) (*model.Node, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(source), context)
	if err != nil {
		return emptyDoc(schema)
	}
	p := &parser{schema: schema}
	var blocks []*model.Node
	for _, n := range nodes {
		sanitizeInput(n)
		blocks = append(blocks, p.parseBlocks(n)...)
	}
	if len(blocks) == 0 {
		return emptyDoc(schema)
	}
	doc, err := schema.Node("document", nil, blocks, nil)
	if err != nil {
		return emptyDoc(schema)
	}
	return doc, nil
}

func emptyDoc(schema *model.Schema) (*model.Node, error) {
	para, err := schema.Node("paragraph", nil, nil, nil)
	if err != nil {
		return nil, err
	}
	return schema.Node("document", nil, []*model.Node{para}, nil)
}

// sanitizeInput applies the input sanitizer's element/attribute removal
// rules in place, depth-first, before any schema-aware parsing happens.
func sanitizeInput(n *html.Node) {
	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}
	for _, c := range children {
		if c.Type == html.ElementNode && forbiddenElements[c.Data] {
			n.RemoveChild(c)
			continue
		}
		sanitizeAttrs(c, true)
		sanitizeInput(c)
	}
}

// sanitizeAttrs strips on* handler attributes and dangerous URL attributes
// from n. When strict is false (output sanitization), style filtering is
// skipped and only the handler/URL rules apply, matching "output
// sanitization is lighter" contract.
func sanitizeAttrs(n *html.Node, strict bool) {
	if n.Type != html.ElementNode {
		return
	}
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		name := strings.ToLower(a.Key)
		if strings.HasPrefix(name, "on") {
			continue
		}
		if urlAttrs[name] && isDangerousURL(a.Val, n.Data, name) {
			continue
		}
		if strict && name == "style" {
			a.Val = filterStyle(a.Val)
			if a.Val == "" {
				continue
			}
		}
		kept = append(kept, a)
	}
	n.Attr = kept
}

func isDangerousURL(raw, tag, attr string) bool {
	v := strings.ToLower(strings.TrimSpace(raw))
	if tag == "img" && attr == "src" && strings.HasPrefix(v, "data:image/") {
		return false
	}
	for _, scheme := range dangerousSchemes {
		if strings.HasPrefix(v, scheme) {
			return true
		}
	}
	return false
}

// SanitizeOutput applies the lighter output-sanitizer pass to HTML the
// engine is about to hand back to a host.
func SanitizeOutput(htmlSrc string) string {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(htmlSrc), context)
	if err != nil {
		return htmlSrc
	}
	var out strings.Builder
	for _, n := range nodes {
		sanitizeOutputTree(n)
		_ = html.Render(&out, n)
	}
	return out.String()
}

func sanitizeOutputTree(n *html.Node) {
	sanitizeAttrs(n, false)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sanitizeOutputTree(c)
	}
}

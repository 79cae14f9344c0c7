package proseengine

import (
	"github.com/proseengine/core/internal/htmlprint"
	"github.com/proseengine/core/internal/model"
)

// selectedFragment returns the selection's content as a slice of
// top-level nodes: the direct children of the document fully contained
// in [from, to) when the selection is block-aligned, or else (an inline
// selection inside a single block) a synthetic paragraph wrapping the
// selected text with the marks active at its start — a deliberate
// simplification, since there is no OS clipboard here to hand a richer
// data-transfer item to.
func (e *Engine) selectedFragment(from, to int) []*model.Node {
	doc := e.current.Doc
	var out []*model.Node
	pos := 0
	for _, child := range doc.Children() {
		size := child.NodeSize()
		if pos >= from && pos+size <= to {
			out = append(out, child)
		}
		pos += size
	}
	if len(out) > 0 {
		return out
	}
	text := e.selectedPlainText(from, to)
	if text == "" {
		return nil
	}
	textNode, err := e.schema.Text(text, marksAt(doc, from))
	if err != nil {
		return nil
	}
	para, err := e.schema.Node("paragraph", nil, []*model.Node{textNode}, nil)
	if err != nil {
		return nil
	}
	return []*model.Node{para}
}

// marksAt returns the marks of the text run touching pos, the same
// "before, else after" rule internal/commands uses when a cursor inherits
// typing marks.
func marksAt(doc *model.Node, pos int) []*model.Mark {
	r, ok := resolveOrFalse(doc, pos)
	if !ok {
		return nil
	}
	if before := r.NodeBefore(); before != nil && before.IsText() {
		return before.Marks()
	}
	if after := r.NodeAfter(); after != nil && after.IsText() {
		return after.Marks()
	}
	return nil
}

func (e *Engine) selectedPlainText(from, to int) string {
	runes, positions := textIndex(e.current.Doc)
	var out []rune
	for i, pos := range positions {
		if pos >= from && pos < to {
			out = append(out, runes[i])
		}
	}
	return string(out)
}

// GetSelectedText returns the selection's plain text.
func (e *Engine) GetSelectedText() string {
	sel := e.current.Selection
	return e.selectedPlainText(sel.From(), sel.To())
}

// GetSelectedHTML serializes the selection's content to HTML.
func (e *Engine) GetSelectedHTML() string {
	sel := e.current.Selection
	children := e.selectedFragment(sel.From(), sel.To())
	if children == nil {
		return ""
	}
	wrapper := e.current.Doc.Copy(model.NewFragment(children))
	return htmlprint.Serialize(wrapper)
}

// Copy returns the selection's HTML for the host to place on the system
// clipboard, leaving the document untouched.
func (e *Engine) Copy() string {
	return e.GetSelectedHTML()
}

// Cut returns the selection's HTML exactly like Copy, then deletes it
// from the document.
func (e *Engine) Cut() string {
	html := e.GetSelectedHTML()
	sel := e.current.Selection
	if !sel.Empty() {
		tr := e.current.Tr().DeleteRange(sel.From(), sel.To())
		e.dispatch(tr, true)
	}
	return html
}

// Paste inserts html (handed in by the host from the system clipboard) at
// the current selection, firing pasteStart/pasteEnd around the insert.
func (e *Engine) Paste(html string) bool {
	e.events.Emit("pasteStart", map[string]interface{}{})
	ok := e.InsertHTML(html)
	e.events.Emit("pasteEnd", map[string]interface{}{"value": e.Value()})
	return ok
}

// PasteText inserts text as plain text (no marks carried over), stripping
// any HTML the host's paste source provided.
func (e *Engine) PasteText(text string) bool {
	e.events.Emit("pasteStart", map[string]interface{}{})
	sel := e.current.Selection
	tr := e.current.Tr()
	if !sel.Empty() {
		tr.DeleteRange(sel.From(), sel.To())
	}
	pos := tr.Selection.From()
	if text != "" {
		tr.InsertText(pos, text)
	}
	ok := e.dispatch(tr, true)
	e.events.Emit("pasteEnd", map[string]interface{}{"value": e.Value()})
	return ok
}

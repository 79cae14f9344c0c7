package proseengine

import (
	"strings"

	"github.com/proseengine/core/internal/commands"
	"github.com/proseengine/core/internal/model"
	"github.com/proseengine/core/internal/state"
)

// textIndex walks doc's text nodes in document order, returning the
// concatenated plain text alongside a parallel slice mapping each rune's
// index back to its absolute document position, the plumbing findText
// needs to turn a substring match back into a selectable range.
func textIndex(doc *model.Node) (text []rune, positions []int) {
	doc.NodesBetween(0, doc.ContentSize(), func(n *model.Node, pos int, parent *model.Node, index int) bool {
		if n.IsText() {
			for i, r := range []rune(n.Text()) {
				text = append(text, r)
				positions = append(positions, pos+i)
			}
		}
		return true
	}, 0)
	return text, positions
}

// FindText searches for the next occurrence of query at or after the
// current cursor, wrapping around to the start of the document if
// nothing is found past it. On a match it selects the occurrence and
// fires searchFound{query, from, to}; otherwise it fires
// searchNotFound{query}.
func (e *Engine) FindText(query string) bool {
	e.findQuery = query
	if query == "" {
		return false
	}
	text, positions := textIndex(e.current.Doc)
	haystack := string(text)
	needle := strings.ToLower(query)
	from := e.current.Selection.To()
	startRune := 0
	for i, pos := range positions {
		if pos >= from {
			startRune = i
			break
		}
		startRune = i + 1
	}
	if idx := indexFoldFrom(haystack, needle, startRune); idx >= 0 {
		return e.selectMatch(positions, idx, len([]rune(query)), query)
	}
	if idx := indexFoldFrom(haystack, needle, 0); idx >= 0 && idx < startRune {
		return e.selectMatch(positions, idx, len([]rune(query)), query)
	}
	e.events.Emit("searchNotFound", map[string]interface{}{"query": query})
	return false
}

// indexFoldFrom returns the rune index of the first case-insensitive
// occurrence of needle in haystack at or after runeFrom, or -1.
func indexFoldFrom(haystack, needle string, runeFrom int) int {
	runes := []rune(haystack)
	if runeFrom > len(runes) {
		return -1
	}
	tail := string(runes[runeFrom:])
	if i := strings.Index(strings.ToLower(tail), needle); i >= 0 {
		return runeFrom + len([]rune(tail[:i]))
	}
	return -1
}

func (e *Engine) selectMatch(positions []int, runeIdx, runeLen int, query string) bool {
	if runeIdx+runeLen > len(positions) {
		return false
	}
	from := positions[runeIdx]
	to := positions[runeIdx+runeLen-1] + 1
	tr := e.current.Tr().SetSelection(state.Selection{Anchor: from, Head: to})
	e.dispatch(tr, false)
	e.events.Emit("searchFound", map[string]interface{}{"query": query, "from": from, "to": to})
	e.events.Emit("highlight", map[string]interface{}{"from": from, "to": to})
	return true
}

// ReplaceText replaces the current selection (expected to be the match
// last produced by FindText) with replacement, then advances to the next
// occurrence of the active query.
func (e *Engine) ReplaceText(replacement string) bool {
	if e.findQuery == "" {
		return false
	}
	sel := e.current.Selection
	ok := e.runDispatch(commands.ReplaceTextRange(sel.From(), sel.To(), replacement), true)
	if !ok {
		return false
	}
	e.events.Emit("replaceDone", map[string]interface{}{"query": e.findQuery, "replacement": replacement})
	e.FindText(e.findQuery)
	return true
}

// OpenFindPanel marks the find panel open.
func (e *Engine) OpenFindPanel() {
	e.panelOpen = "find"
}

// OpenReplacePanel marks the replace panel open.
func (e *Engine) OpenReplacePanel() {
	e.panelOpen = "replace"
}

// CloseFindPanel closes whichever search panel is open, clearing any
// active highlight.
func (e *Engine) CloseFindPanel() {
	e.panelOpen = ""
	e.findQuery = ""
	e.events.Emit("unhighlight", map[string]interface{}{})
}

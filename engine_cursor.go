package proseengine

import "github.com/proseengine/core/internal/model"

// resolveOrFalse mirrors internal/commands' helper of the same name: it
// resolves pos in doc, reporting ok=false rather than propagating a range
// error, since this package only ever uses it to read optional cursor
// context.
func resolveOrFalse(doc *model.Node, pos int) (*model.ResolvedPos, bool) {
	r, err := model.Resolve(doc, pos)
	if err != nil {
		return nil, false
	}
	return r, true
}

// blockDepth mirrors internal/commands' helper: the depth of the deepest
// block-level ancestor of r.
func blockDepth(r *model.ResolvedPos) int {
	for d := r.Depth; d >= 0; d-- {
		if r.NodeAt(d).Type().IsBlock() {
			return d
		}
	}
	return 0
}

// emitTextCursorMove fires the textCursorMove event carrying the selection
// plus every bit of formatting/structural context a toolbar needs to reflect
// the cursor's position.
func (e *Engine) emitTextCursorMove() {
	sel := e.current.Selection
	payload := map[string]interface{}{
		"value":  e.Value(),
		"anchor": sel.Anchor,
		"head":   sel.Head,
		"marks":  e.GetActiveMarks(),
	}
	r, ok := resolveOrFalse(e.current.Doc, sel.Head)
	if !ok {
		e.events.Emit("textCursorMove", payload)
		return
	}
	depth := blockDepth(r)
	block := r.NodeAt(depth)
	payload["blockType"] = block.Type().Name
	payload["blockAttrs"] = block.Attrs()
	payload["align"], _ = block.Attrs()["align"].(string)
	indent, _ := block.Attrs()["indent"].(int)
	payload["indent"] = indent
	lineHeight, _ := block.Attrs()["lineHeight"].(string)
	payload["lineHeight"] = lineHeight

	listType, listDepth, isChecklist := listContext(r, depth)
	payload["listType"] = listType
	payload["listDepth"] = listDepth
	payload["isChecklist"] = isChecklist

	inTable, rowIdx, cellIdx := tableContext(r, depth)
	payload["inTable"] = inTable
	payload["tableRowIndex"] = rowIdx
	payload["tableCellIndex"] = cellIdx

	inMedia, mediaType, mediaAttrs := mediaContext(block)
	payload["inMedia"] = inMedia
	payload["mediaType"] = mediaType
	payload["mediaAttrs"] = mediaAttrs

	e.events.Emit("textCursorMove", payload)
}

var listTypeNames = map[string]string{"bulletList": "bullet", "orderedList": "ordered"}

// listContext walks up from depth looking for an enclosing listItem,
// reporting its list's type, nesting depth, and checked-attr presence.
func listContext(r *model.ResolvedPos, depth int) (listType string, listDepth int, isChecklist bool) {
	for d := depth; d > 0; d-- {
		parent := r.NodeAt(d - 1)
		name, ok := listTypeNames[parent.Type().Name]
		if !ok {
			continue
		}
		listDepth++
		listType = name
		item := r.NodeAt(d)
		if item.Type().Name == "listItem" {
			if _, isBool := item.Attrs()["checked"].(bool); isBool {
				isChecklist = true
			}
		}
	}
	return
}

// tableContext reports whether depth sits inside a table cell, and that
// cell's row/column index.
func tableContext(r *model.ResolvedPos, depth int) (inTable bool, rowIdx, cellIdx int) {
	for d := depth; d > 0; d-- {
		cell := r.NodeAt(d)
		if cell.Type().Name != "tableCell" {
			continue
		}
		row := r.NodeAt(d - 1)
		if row.Type().Name != "tableRow" {
			continue
		}
		if d < 2 {
			continue
		}
		table := r.NodeAt(d - 2)
		if table.Type().Name != "table" {
			continue
		}
		return true, r.Path[d-2].Index, r.Path[d-1].Index
	}
	return false, 0, 0
}

// mediaContext reports whether block itself is a media leaf.
func mediaContext(block *model.Node) (inMedia bool, mediaType string, mediaAttrs model.Attrs) {
	switch block.Type().Name {
	case "image", "video", "embed":
		return true, block.Type().Name, block.Attrs()
	default:
		return false, "", nil
	}
}

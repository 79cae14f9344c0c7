package commands

import (
	"github.com/proseengine/core/internal/model"
	"github.com/proseengine/core/internal/state"
)

// TableLocation is isInTable's result: the resolved row/cell indices for
// a selection inside a table.
type TableLocation struct {
	TablePos int
	Row      int
	Col      int
}

// IsInTable reports whether the selection sits inside a table, and where.
func IsInTable(s *state.EditorState) (TableLocation, bool) {
	r, ok := resolveOrFalse(s.Doc, s.Selection.From())
	if !ok {
		return TableLocation{}, false
	}
	for d := r.Depth; d >= 2; d-- {
		if r.NodeAt(d).Type().Name == "tableCell" && r.NodeAt(d-1).Type().Name == "tableRow" && r.NodeAt(d-2).Type().Name == "table" {
			return TableLocation{
				TablePos: r.Start(d-2) - 1,
				Row:      r.Path[d-2].Index,
				Col:      r.Path[d-1].Index,
			}, true
		}
	}
	return TableLocation{}, false
}

// InsertTable inserts a new rows×cols table at the cursor.
func InsertTable(rows, cols int) Command {
	return func(s *state.EditorState, dispatch func(*state.Transaction)) bool {
		if rows < 1 || cols < 1 {
			return false
		}
		table, err := buildTable(s.Schema, rows, cols)
		if err != nil {
			return false
		}
		tr := s.Tr()
		if !s.Selection.Empty() {
			tr.DeleteRange(s.Selection.From(), s.Selection.To())
		}
		pos := tr.Selection.From()
		tr.ReplaceRange(pos, pos, []*model.Node{table})
		return run(tr, dispatch)
	}
}

func buildTable(schema *model.Schema, rows, cols int) (*model.Node, error) {
	var rowNodes []*model.Node
	for r := 0; r < rows; r++ {
		var cells []*model.Node
		for c := 0; c < cols; c++ {
			para, err := schema.Node("paragraph", nil, nil, nil)
			if err != nil {
				return nil, err
			}
			cell, err := schema.Node("tableCell", nil, []*model.Node{para}, nil)
			if err != nil {
				return nil, err
			}
			cells = append(cells, cell)
		}
		row, err := schema.Node("tableRow", nil, cells, nil)
		if err != nil {
			return nil, err
		}
		rowNodes = append(rowNodes, row)
	}
	return schema.Node("table", nil, rowNodes, nil)
}

// AddRowBefore inserts an empty row above the selection's row.
func AddRowBefore(s *state.EditorState, dispatch func(*state.Transaction)) bool {
	return addRow(s, dispatch, 0)
}

// AddRowAfter inserts an empty row below the selection's row.
func AddRowAfter(s *state.EditorState, dispatch func(*state.Transaction)) bool {
	return addRow(s, dispatch, 1)
}

func addRow(s *state.EditorState, dispatch func(*state.Transaction), offset int) bool {
	loc, ok := IsInTable(s)
	if !ok {
		return false
	}
	r, _ := resolveOrFalse(s.Doc, s.Selection.From())
	var tableDepth int
	for d := r.Depth; d >= 0; d-- {
		if r.NodeAt(d).Type().Name == "table" {
			tableDepth = d
			break
		}
	}
	table := r.NodeAt(tableDepth)
	cols := table.Child(0).ChildCount()
	var cells []*model.Node
	for c := 0; c < cols; c++ {
		para, err := s.Schema.Node("paragraph", nil, nil, nil)
		if err != nil {
			return false
		}
		cell, err := s.Schema.Node("tableCell", nil, []*model.Node{para}, nil)
		if err != nil {
			return false
		}
		cells = append(cells, cell)
	}
	newRow, err := s.Schema.Node("tableRow", nil, cells, nil)
	if err != nil {
		return false
	}
	insertRowIdx := loc.Row + offset
	insertPos := rowBoundaryPos(r, tableDepth, table, insertRowIdx)
	tr := s.Tr().ReplaceRange(insertPos, insertPos, []*model.Node{newRow})
	return run(tr, dispatch)
}

// rowBoundaryPos returns the absolute position immediately before row idx
// (or the position right after the table's last row, when idx equals the
// row count).
func rowBoundaryPos(r *model.ResolvedPos, tableDepth int, table *model.Node, idx int) int {
	pos := r.Start(tableDepth)
	for i := 0; i < idx && i < table.ChildCount(); i++ {
		pos += table.Child(i).NodeSize()
	}
	return pos
}

// AddColumnBefore inserts an empty column to the left of the selection's
// column, in every row.
func AddColumnBefore(s *state.EditorState, dispatch func(*state.Transaction)) bool {
	return addColumn(s, dispatch, 0)
}

// AddColumnAfter inserts an empty column to the right of the selection's
// column, in every row.
func AddColumnAfter(s *state.EditorState, dispatch func(*state.Transaction)) bool {
	return addColumn(s, dispatch, 1)
}

func addColumn(s *state.EditorState, dispatch func(*state.Transaction), offset int) bool {
	loc, ok := IsInTable(s)
	if !ok {
		return false
	}
	insertCol := loc.Col + offset
	r, _ := resolveOrFalse(s.Doc, s.Selection.From())
	var tableDepth int
	for d := r.Depth; d >= 0; d-- {
		if r.NodeAt(d).Type().Name == "table" {
			tableDepth = d
			break
		}
	}
	table := r.NodeAt(tableDepth)
	tr := s.Tr()
	pos := r.Start(tableDepth)
	for i := 0; i < table.ChildCount(); i++ {
		row := table.Child(i)
		colPos := pos + 1
		for c := 0; c < insertCol && c < row.ChildCount(); c++ {
			colPos += row.Child(c).NodeSize()
		}
		para, err := s.Schema.Node("paragraph", nil, nil, nil)
		if err != nil {
			return false
		}
		cell, err := s.Schema.Node("tableCell", nil, []*model.Node{para}, nil)
		if err != nil {
			return false
		}
		mapped := tr.Mapping().Map(colPos, 1)
		tr.ReplaceRange(mapped, mapped, []*model.Node{cell})
		pos += row.NodeSize()
	}
	return run(tr, dispatch)
}

// DeleteRow removes the selection's row from its table.
func DeleteRow(s *state.EditorState, dispatch func(*state.Transaction)) bool {
	loc, ok := IsInTable(s)
	if !ok {
		return false
	}
	r, _ := resolveOrFalse(s.Doc, s.Selection.From())
	var tableDepth int
	for d := r.Depth; d >= 0; d-- {
		if r.NodeAt(d).Type().Name == "table" {
			tableDepth = d
			break
		}
	}
	table := r.NodeAt(tableDepth)
	start := rowBoundaryPos(r, tableDepth, table, loc.Row)
	end := rowBoundaryPos(r, tableDepth, table, loc.Row+1)
	tr := s.Tr().DeleteRange(start, end)
	return run(tr, dispatch)
}

// DeleteColumn removes the selection's column from every row.
func DeleteColumn(s *state.EditorState, dispatch func(*state.Transaction)) bool {
	loc, ok := IsInTable(s)
	if !ok {
		return false
	}
	r, _ := resolveOrFalse(s.Doc, s.Selection.From())
	var tableDepth int
	for d := r.Depth; d >= 0; d-- {
		if r.NodeAt(d).Type().Name == "table" {
			tableDepth = d
			break
		}
	}
	table := r.NodeAt(tableDepth)
	tr := s.Tr()
	pos := r.Start(tableDepth)
	for i := 0; i < table.ChildCount(); i++ {
		row := table.Child(i)
		if loc.Col >= row.ChildCount() {
			pos += row.NodeSize()
			continue
		}
		cellStart := pos + 1
		for c := 0; c < loc.Col; c++ {
			cellStart += row.Child(c).NodeSize()
		}
		cellEnd := cellStart + row.Child(loc.Col).NodeSize()
		mStart := tr.Mapping().Map(cellStart, -1)
		mEnd := tr.Mapping().Map(cellEnd, 1)
		tr.DeleteRange(mStart, mEnd)
		pos += row.NodeSize()
	}
	return run(tr, dispatch)
}

// DeleteTable removes the entire table containing the selection.
func DeleteTable(s *state.EditorState, dispatch func(*state.Transaction)) bool {
	r, ok := resolveOrFalse(s.Doc, s.Selection.From())
	if !ok {
		return false
	}
	for d := r.Depth; d >= 0; d-- {
		if r.NodeAt(d).Type().Name == "table" {
			pos := r.Start(d) - 1
			tr := s.Tr().DeleteRange(pos, pos+r.NodeAt(d).NodeSize())
			return run(tr, dispatch)
		}
	}
	return false
}

// MergeCells merges the selection's cell with the one immediately to its
// right in the same row, concatenating content and widening colspan
// . This is a deliberately simplified rectangular merge limited to two
// horizontally-adjacent cells.
func MergeCells(s *state.EditorState, dispatch func(*state.Transaction)) bool {
	loc, ok := IsInTable(s)
	if !ok {
		return false
	}
	r, _ := resolveOrFalse(s.Doc, s.Selection.From())
	var tableDepth int
	for d := r.Depth; d >= 0; d-- {
		if r.NodeAt(d).Type().Name == "table" {
			tableDepth = d
			break
		}
	}
	table := r.NodeAt(tableDepth)
	row := table.Child(loc.Row)
	if loc.Col+1 >= row.ChildCount() {
		return false
	}
	left := row.Child(loc.Col)
	right := row.Child(loc.Col + 1)
	merged, err := s.Schema.Node("tableCell", mergeColspan(left.Attrs()), append(append([]*model.Node{}, left.Children()...), right.Children()...), nil)
	if err != nil {
		return false
	}
	leftStart := rowBoundaryPos(r, tableDepth, table, loc.Row) + 1
	for c := 0; c < loc.Col; c++ {
		leftStart += row.Child(c).NodeSize()
	}
	rightEnd := leftStart + left.NodeSize() + right.NodeSize()
	tr := s.Tr().ReplaceRange(leftStart, rightEnd, []*model.Node{merged})
	return run(tr, dispatch)
}

func mergeColspan(attrs model.Attrs) model.Attrs {
	colspan, _ := attrs["colspan"].(int)
	if colspan == 0 {
		colspan = 1
	}
	return attrs.Merge(model.Attrs{"colspan": colspan + 1})
}

// SplitCell splits the selection's cell back into two plain cells when it
// carries a colspan > 1.
func SplitCell(s *state.EditorState, dispatch func(*state.Transaction)) bool {
	loc, ok := IsInTable(s)
	if !ok {
		return false
	}
	r, _ := resolveOrFalse(s.Doc, s.Selection.From())
	var tableDepth int
	for d := r.Depth; d >= 0; d-- {
		if r.NodeAt(d).Type().Name == "table" {
			tableDepth = d
			break
		}
	}
	table := r.NodeAt(tableDepth)
	row := table.Child(loc.Row)
	cell := row.Child(loc.Col)
	colspan, _ := cell.Attrs()["colspan"].(int)
	if colspan < 2 {
		return false
	}
	left, err := s.Schema.Node("tableCell", cell.Attrs().Merge(model.Attrs{"colspan": colspan - 1}), cell.Children(), nil)
	if err != nil {
		return false
	}
	emptyPara, err := s.Schema.Node("paragraph", nil, nil, nil)
	if err != nil {
		return false
	}
	right, err := s.Schema.Node("tableCell", nil, []*model.Node{emptyPara}, nil)
	if err != nil {
		return false
	}
	cellStart := rowBoundaryPos(r, tableDepth, table, loc.Row) + 1
	for c := 0; c < loc.Col; c++ {
		cellStart += row.Child(c).NodeSize()
	}
	cellEnd := cellStart + cell.NodeSize()
	tr := s.Tr().ReplaceRange(cellStart, cellEnd, []*model.Node{left, right})
	return run(tr, dispatch)
}

// ToggleHeaderRow flips the headerRow flag on the table containing the
// selection.
func ToggleHeaderRow(s *state.EditorState, dispatch func(*state.Transaction)) bool {
	return toggleTableFlag(s, dispatch, "headerRow")
}

// ToggleHeaderColumn flips the headerColumn flag on the table containing
// the selection.
func ToggleHeaderColumn(s *state.EditorState, dispatch func(*state.Transaction)) bool {
	return toggleTableFlag(s, dispatch, "headerColumn")
}

func toggleTableFlag(s *state.EditorState, dispatch func(*state.Transaction), attr string) bool {
	r, ok := resolveOrFalse(s.Doc, s.Selection.From())
	if !ok {
		return false
	}
	for d := r.Depth; d >= 0; d-- {
		if r.NodeAt(d).Type().Name == "table" {
			pos := r.Start(d) - 1
			current, _ := r.NodeAt(d).Attrs()[attr].(bool)
			tr := s.Tr().SetNodeAttrs(pos, model.Attrs{attr: !current})
			return run(tr, dispatch)
		}
	}
	return false
}

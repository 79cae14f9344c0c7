package commands

import (
	"github.com/proseengine/core/internal/model"
	"github.com/proseengine/core/internal/state"
)

// ToggleBulletList wraps the textblock at the selection in
// bulletList > listItem, or lifts it back out if it's already a bullet
// list item.
func ToggleBulletList(s *state.EditorState, dispatch func(*state.Transaction)) bool {
	return toggleList(s, dispatch, "bulletList")
}

// ToggleOrderedList is ToggleBulletList's ordered-list counterpart.
func ToggleOrderedList(s *state.EditorState, dispatch func(*state.Transaction)) bool {
	return toggleList(s, dispatch, "orderedList")
}

// ToggleChecklist wraps the textblock in bulletList > listItem with
// checked=false, the engine's checklist representation.
func ToggleChecklist(s *state.EditorState, dispatch func(*state.Transaction)) bool {
	r, ok := resolveOrFalse(s.Doc, s.Selection.From())
	if !ok {
		return false
	}
	depth := blockDepth(r)
	if depth > 0 && r.NodeAt(depth-1).Type().Name == "listItem" {
		li := r.NodeAt(depth - 1)
		pos := r.Start(depth-1) - 1
		checked, _ := li.Attrs()["checked"].(bool)
		tr := s.Tr().SetNodeAttrs(pos, model.Attrs{"checked": !checked})
		return run(tr, dispatch)
	}
	return wrapInList(s, dispatch, "bulletList", model.Attrs{"checked": false})
}

func toggleList(s *state.EditorState, dispatch func(*state.Transaction), listType string) bool {
	r, ok := resolveOrFalse(s.Doc, s.Selection.From())
	if !ok {
		return false
	}
	depth := blockDepth(r)
	if depth >= 2 && r.NodeAt(depth-1).Type().Name == "listItem" && r.NodeAt(depth-2).Type().Name == listType {
		liPos := r.Start(depth-1) - 1
		listPos := r.Start(depth-2) - 1
		tr := s.Tr().Unwrap(liPos)
		if tr.Failed() != "" {
			return false
		}
		mapped := tr.Mapping().Map(listPos, 1)
		tr.Unwrap(mapped)
		return run(tr, dispatch)
	}
	return wrapInList(s, dispatch, listType, nil)
}

func wrapInList(s *state.EditorState, dispatch func(*state.Transaction), listType string, itemAttrs model.Attrs) bool {
	r, ok := resolveOrFalse(s.Doc, s.Selection.From())
	if !ok {
		return false
	}
	depth := blockDepth(r)
	pos := r.Start(depth) - 1
	tr := s.Tr().WrapIn(pos, "listItem", itemAttrs)
	if tr.Failed() != "" {
		return false
	}
	mapped := tr.Mapping().Map(pos, 1)
	tr.WrapIn(mapped, listType, nil)
	return run(tr, dispatch)
}

// ListIndent nests the current list item one level deeper by moving it
// into a new sub-list inside the previous sibling item. Returns false when
// there is no previous sibling to nest under.
func ListIndent(s *state.EditorState, dispatch func(*state.Transaction)) bool {
	r, ok := resolveOrFalse(s.Doc, s.Selection.From())
	if !ok {
		return false
	}
	depth := blockDepth(r)
	if depth < 2 || r.NodeAt(depth-1).Type().Name != "listItem" {
		return false
	}
	listDepth := depth - 2
	list := r.NodeAt(listDepth)
	idx := r.Path[listDepth].Index
	if idx == 0 {
		return false
	}
	prevItem := list.Child(idx - 1)
	curItem := r.NodeAt(depth - 1)

	itemStart := r.Start(depth-1) - 1
	itemEnd := itemStart + curItem.NodeSize()
	prevStart := itemStart - prevItem.NodeSize()

	sublist, err := s.Schema.Node(list.Type().Name, nil, []*model.Node{curItem}, nil)
	if err != nil {
		return false
	}
	mergedChildren := append(append([]*model.Node{}, prevItem.Children()...), sublist)
	mergedItem, err := s.Schema.Node(prevItem.Type().Name, prevItem.Attrs(), mergedChildren, nil)
	if err != nil {
		return false
	}
	tr := s.Tr().ReplaceRange(prevStart, itemEnd, []*model.Node{mergedItem})
	return run(tr, dispatch)
}

// ListOutdent lifts the current list item out to the parent list's level
// . Returns false when the item is already at the top level of its list.
func ListOutdent(s *state.EditorState, dispatch func(*state.Transaction)) bool {
	r, ok := resolveOrFalse(s.Doc, s.Selection.From())
	if !ok {
		return false
	}
	depth := blockDepth(r)
	if depth < 4 {
		return false
	}
	if r.NodeAt(depth-1).Type().Name != "listItem" {
		return false
	}
	// depth-2 = inner list, depth-3 = outer listItem, depth-4 = outer list:
	// only a nested list (item inside a list inside an item) can outdent.
	if r.NodeAt(depth-3).Type().Name != "listItem" {
		return false
	}
	innerListDepth := depth - 2
	outerItemDepth := depth - 3
	innerListPos := r.Start(innerListDepth) - 1
	outerItem := r.NodeAt(outerItemDepth)
	tr := s.Tr().Unwrap(innerListPos)
	if tr.Failed() != "" {
		return false
	}
	_ = outerItem
	return run(tr, dispatch)
}

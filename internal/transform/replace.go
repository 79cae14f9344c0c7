package transform

import "github.com/proseengine/core/internal/model"

// deleteRange removes [from, to) from doc, splitting partial text nodes,
// dropping fully covered children, and trimming partially covered
// container children across the boundary.
func deleteRange(doc *model.Node, from, to int) (*model.Node, error) {
	if from == to {
		return doc, nil
	}
	content, err := deleteFragment(doc.Content(), from, to, 0)
	if err != nil {
		return nil, err
	}
	return doc.Copy(content), nil
}

func deleteFragment(f *model.Fragment, from, to, pos int) (*model.Fragment, error) {
	var out []*model.Node
	cur := pos
	for i := 0; i < f.ChildCount(); i++ {
		child := f.Child(i)
		size := child.NodeSize()
		start, end := cur, cur+size
		switch {
		case end <= from || start >= to:
			out = append(out, child)
		case start >= from && end <= to:
			// fully covered: drop.
		case child.IsText():
			text := []rune(child.Text())
			clipFrom, clipTo := clip(from-start, to-start, len(text))
			kept := string(text[:clipFrom]) + string(text[clipTo:])
			if kept != "" {
				out = append(out, child.WithText(kept))
			}
		case child.IsLeaf():
			// leaves are size 1 and can't be partially covered; reaching
			// here would mean the range boundary lands inside a single
			// position, which is impossible for integers, so keep as-is.
			out = append(out, child)
		default:
			childFrom, childTo := clip(from-start-1, to-start-1, child.ContentSize())
			newContent, err := deleteFragment(child.Content(), childFrom, childTo, 0)
			if err != nil {
				return nil, err
			}
			out = append(out, child.Copy(newContent))
		}
		cur = end
	}
	return model.NewFragment(out), nil
}

func clip(from, to, size int) (int, int) {
	if from < 0 {
		from = 0
	}
	if to > size {
		to = size
	}
	if to < from {
		to = from
	}
	return from, to
}

// insertAt splices content into doc's tree at the given position, merging
// into an existing text node when the position lands inside one.
func insertAt(doc *model.Node, at int, content []*model.Node) (*model.Node, error) {
	newContent, err := insertFragment(doc.Content(), at, 0, content)
	if err != nil {
		return nil, err
	}
	return doc.Copy(newContent), nil
}

func insertFragment(f *model.Fragment, at, pos int, content []*model.Node) (*model.Fragment, error) {
	var out []*model.Node
	cur := pos
	inserted := false
	n := f.ChildCount()
	for i := 0; i < n; i++ {
		child := f.Child(i)
		size := child.NodeSize()
		start, end := cur, cur+size
		if !inserted && at == start {
			out = append(out, content...)
			inserted = true
		}
		if !inserted && start < at && at < end {
			if child.IsText() {
				text := []rune(child.Text())
				local := at - start
				before, after := string(text[:local]), string(text[local:])
				if before != "" {
					out = append(out, child.WithText(before))
				}
				out = append(out, content...)
				inserted = true
				if after != "" {
					out = append(out, child.WithText(after))
				}
				cur = end
				continue
			}
			if child.IsLeaf() {
				return nil, errStep("cannot insert inside a leaf node")
			}
			localAt := at - start - 1
			newContent, err := insertFragment(child.Content(), localAt, 0, content)
			if err != nil {
				return nil, err
			}
			out = append(out, child.Copy(newContent))
			inserted = true
			cur = end
			continue
		}
		out = append(out, child)
		cur = end
	}
	if !inserted && at == f.Size() {
		out = append(out, content...)
		inserted = true
	}
	if !inserted {
		return nil, errStep("insert position out of range")
	}
	return model.NewFragment(out), nil
}

// mapMarksInRange rewrites every text node overlapping [from, to),
// splitting at the boundaries, passing each fully-covered text node
// through fn. Container children are recursed into with a trimmed range;
// leaves are left untouched.
func mapMarksInRange(doc *model.Node, from, to int, fn func(*model.Node) *model.Node) (*model.Node, error) {
	content, err := mapMarksFragment(doc.Content(), from, to, 0, fn)
	if err != nil {
		return nil, err
	}
	return doc.Copy(content), nil
}

func mapMarksFragment(f *model.Fragment, from, to, pos int, fn func(*model.Node) *model.Node) (*model.Fragment, error) {
	var out []*model.Node
	cur := pos
	for i := 0; i < f.ChildCount(); i++ {
		child := f.Child(i)
		size := child.NodeSize()
		start, end := cur, cur+size
		switch {
		case end <= from || start >= to:
			out = append(out, child)
		case child.IsText():
			text := []rune(child.Text())
			clipFrom, clipTo := clip(from-start, to-start, len(text))
			before, mid, after := string(text[:clipFrom]), string(text[clipFrom:clipTo]), string(text[clipTo:])
			if before != "" {
				out = append(out, child.WithText(before))
			}
			if mid != "" {
				out = append(out, fn(child.WithText(mid)))
			}
			if after != "" {
				out = append(out, child.WithText(after))
			}
		case child.IsLeaf():
			out = append(out, child)
		default:
			childFrom, childTo := clip(from-start-1, to-start-1, child.ContentSize())
			newContent, err := mapMarksFragment(child.Content(), childFrom, childTo, 0, fn)
			if err != nil {
				return nil, err
			}
			out = append(out, child.Copy(newContent))
		}
		cur = end
	}
	return model.NewFragment(out), nil
}

// extractRange returns the children of doc's content that lie within
// [from, to), in the same shape Apply would delete them — used by
// DeleteRangeStep/ReplaceRangeStep.Invert to reconstruct the removed
// slice without needing ProseMirror's open-depth Slice representation.
func extractRange(doc *model.Node, from, to int) []*model.Node {
	return extractFragment(doc.Content(), from, to, 0)
}

func extractFragment(f *model.Fragment, from, to, pos int) []*model.Node {
	var out []*model.Node
	cur := pos
	for i := 0; i < f.ChildCount(); i++ {
		child := f.Child(i)
		size := child.NodeSize()
		start, end := cur, cur+size
		switch {
		case end <= from || start >= to:
			// outside the range entirely.
		case start >= from && end <= to:
			out = append(out, child)
		case child.IsText():
			text := []rune(child.Text())
			clipFrom, clipTo := clip(from-start, to-start, len(text))
			if mid := string(text[clipFrom:clipTo]); mid != "" {
				out = append(out, child.WithText(mid))
			}
		case !child.IsLeaf():
			childFrom, childTo := clip(from-start-1, to-start-1, child.ContentSize())
			out = append(out, child.Copy(model.NewFragment(extractFragment(child.Content(), childFrom, childTo, 0))))
		}
		cur = end
	}
	return out
}

// SplitFragment divides f's children into the parts before and after the
// relative offset at, splitting a text node in two when at lands inside
// one. Used by splitBlock and list-item splitting in internal/commands.
func SplitFragment(f *model.Fragment, at int) (before, after []*model.Node, err error) {
	cur := 0
	for i := 0; i < f.ChildCount(); i++ {
		child := f.Child(i)
		size := child.NodeSize()
		start, end := cur, cur+size
		switch {
		case end <= at:
			before = append(before, child)
		case start >= at:
			after = append(after, child)
		case child.IsText():
			text := []rune(child.Text())
			local := at - start
			if left := string(text[:local]); left != "" {
				before = append(before, child.WithText(left))
			}
			if right := string(text[local:]); right != "" {
				after = append(after, child.WithText(right))
			}
		case child.IsLeaf():
			return nil, nil, errStep("split position falls inside a leaf node")
		default:
			childAt := at - start - 1
			cBefore, cAfter, err := SplitFragment(child.Content(), childAt)
			if err != nil {
				return nil, nil, err
			}
			before = append(before, child.Copy(model.NewFragment(cBefore)))
			after = append(after, child.Copy(model.NewFragment(cAfter)))
		}
		cur = end
	}
	return before, after, nil
}

// nodeAtPos returns the node that begins exactly at pos within doc, and
// its resolved context, for SetNodeAttrs/WrapIn/Unwrap/SetBlockType.
func nodeAtPos(doc *model.Node, pos int) (*model.ResolvedPos, *model.Node, error) {
	r, err := model.Resolve(doc, pos)
	if err != nil {
		return nil, nil, err
	}
	n := r.NodeAfter()
	if n == nil {
		return nil, nil, errStep("no node at position")
	}
	return r, n, nil
}

type stepErr string

func (e stepErr) Error() string { return string(e) }
func errStep(msg string) error  { return stepErr(msg) }

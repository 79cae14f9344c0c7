package commands

import (
	"github.com/proseengine/core/internal/model"
	"github.com/proseengine/core/internal/state"
)

// mediaTypes lists every leaf node type treated as media by the media
// command family.
var mediaTypes = map[string]bool{"image": true, "video": true, "embed": true}

// SelectedMedia is the result of GetSelectedMedia: the media node at the
// selection, its type name, and its pre-node position.
type SelectedMedia struct {
	TypeName string
	Node     *model.Node
	Pos      int
}

// GetSelectedMedia finds the media node the cursor sits on or just before.
func GetSelectedMedia(s *state.EditorState) (SelectedMedia, bool) {
	pos := s.Selection.From()
	if r, ok := resolveOrFalse(s.Doc, pos); ok {
		if n := r.NodeAfter(); n != nil && mediaTypes[n.Type().Name] {
			return SelectedMedia{TypeName: n.Type().Name, Node: n, Pos: pos}, true
		}
		if n := r.NodeBefore(); n != nil && mediaTypes[n.Type().Name] {
			return SelectedMedia{TypeName: n.Type().Name, Node: n, Pos: pos - n.NodeSize()}, true
		}
	}
	return SelectedMedia{}, false
}

// InsertImage inserts an image leaf at the cursor.
func InsertImage(src string, attrs model.Attrs) Command {
	return insertMedia("image", src, attrs)
}

// InsertVideo inserts a video leaf at the cursor.
func InsertVideo(url string, attrs model.Attrs) Command {
	return insertMedia("video", url, attrs)
}

// InsertEmbed inserts an embed leaf at the cursor.
func InsertEmbed(url string, attrs model.Attrs) Command {
	return insertMedia("embed", url, attrs)
}

func insertMedia(typeName, src string, attrs model.Attrs) Command {
	return func(s *state.EditorState, dispatch func(*state.Transaction)) bool {
		merged := attrs.Clone()
		merged["src"] = src
		node, err := s.Schema.Node(typeName, merged, nil, nil)
		if err != nil {
			return false
		}
		tr := s.Tr()
		if !s.Selection.Empty() {
			tr.DeleteRange(s.Selection.From(), s.Selection.To())
		}
		pos := tr.Selection.From()
		tr.ReplaceRange(pos, pos, []*model.Node{node})
		return run(tr, dispatch)
	}
}

// SetMediaAlignment sets the "align" attr on the selected media.
func SetMediaAlignment(value string) Command {
	return func(s *state.EditorState, dispatch func(*state.Transaction)) bool {
		return patchSelectedMedia(s, dispatch, model.Attrs{"align": nilIfEmpty(value)})
	}
}

// SetImageAlt sets an image's alt text.
func SetImageAlt(alt string) Command {
	return func(s *state.EditorState, dispatch func(*state.Transaction)) bool {
		media, ok := GetSelectedMedia(s)
		if !ok || media.TypeName != "image" {
			return false
		}
		return patchSelectedMedia(s, dispatch, model.Attrs{"alt": alt})
	}
}

// SetImageCaption sets a media node's caption.
func SetImageCaption(caption string) Command {
	return func(s *state.EditorState, dispatch func(*state.Transaction)) bool {
		return patchSelectedMedia(s, dispatch, model.Attrs{"caption": caption})
	}
}

// UpdateMediaAttrs merges an arbitrary attrs patch into the selected media
// node.
func UpdateMediaAttrs(patch model.Attrs) Command {
	return func(s *state.EditorState, dispatch func(*state.Transaction)) bool {
		return patchSelectedMedia(s, dispatch, patch)
	}
}

func patchSelectedMedia(s *state.EditorState, dispatch func(*state.Transaction), patch model.Attrs) bool {
	media, ok := GetSelectedMedia(s)
	if !ok {
		return false
	}
	tr := s.Tr().SetNodeAttrs(media.Pos, patch)
	return run(tr, dispatch)
}

// DeleteMedia removes the selected media node.
func DeleteMedia(s *state.EditorState, dispatch func(*state.Transaction)) bool {
	media, ok := GetSelectedMedia(s)
	if !ok {
		return false
	}
	tr := s.Tr().DeleteRange(media.Pos, media.Pos+media.Node.NodeSize())
	return run(tr, dispatch)
}

func nilIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

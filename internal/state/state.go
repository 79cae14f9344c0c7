package state

import (
	"fmt"

	"github.com/go-json-experiment/json"

	"github.com/proseengine/core/internal/model"
)

// Plugin is the capability record a PluginManager composes: every hook is
// optional, so a plugin that only wants a keymap leaves the rest nil.
type Plugin interface {
	FilterTransaction(tr *Transaction, s *EditorState) bool
	AppendTransaction(trs []*Transaction, oldState, newState *EditorState) *Transaction
}

// EditorState is the frozen (doc, selection, storedMarks, plugins) tuple;
// every change produces a new EditorState rather than mutating one in
// place.
type EditorState struct {
	Schema      *model.Schema
	Doc         *model.Node
	Selection   Selection
	StoredMarks []*model.Mark
	Plugins     []Plugin
}

// Create builds the initial EditorState. content may be a *model.Node (used
// directly), a non-empty string (wrapped in a single paragraph), or nil (a
// document with one empty paragraph). sel is optional; nil selects a caret
// at position 0.
func Create(schema *model.Schema, content interface{}, sel *Selection, plugins []Plugin) (*EditorState, error) {
	doc, err := buildInitialDoc(schema, content)
	if err != nil {
		return nil, err
	}
	selection := Caret(0)
	if sel != nil {
		selection = sel.Clamp(doc.ContentSize())
	}
	return &EditorState{Schema: schema, Doc: doc, Selection: selection, Plugins: plugins}, nil
}

func buildInitialDoc(schema *model.Schema, content interface{}) (*model.Node, error) {
	switch c := content.(type) {
	case *model.Node:
		return c, nil
	case string:
		para, err := emptyParagraph(schema)
		if err != nil {
			return nil, err
		}
		if c != "" {
			text, err := schema.Text(c, nil)
			if err != nil {
				return nil, err
			}
			para, err = schema.Node("paragraph", nil, []*model.Node{text}, nil)
			if err != nil {
				return nil, err
			}
		}
		return schema.Node(schema.TopType().Name, nil, []*model.Node{para}, nil)
	case nil:
		para, err := emptyParagraph(schema)
		if err != nil {
			return nil, err
		}
		return schema.Node(schema.TopType().Name, nil, []*model.Node{para}, nil)
	default:
		return nil, fmt.Errorf("state: unsupported initial content type %T", content)
	}
}

func emptyParagraph(schema *model.Schema) (*model.Node, error) {
	return schema.Node("paragraph", nil, nil, nil)
}

// Tr starts a new Transaction rooted at this state's document and
// selection.
func (s *EditorState) Tr() *Transaction {
	return NewTransaction(s.Schema, s.Doc, s.Selection)
}

// Apply runs every plugin's FilterTransaction, then commits tr's resulting
// doc/selection/storedMarks into a new EditorState, then gives every
// plugin's AppendTransaction a chance to append a follow-up transaction.
func (s *EditorState) Apply(tr *Transaction) (*EditorState, error) {
	if tr.Failed() != "" {
		return nil, fmt.Errorf("state: transaction failed: %s", tr.Failed())
	}
	for _, p := range s.Plugins {
		if p == nil {
			continue
		}
		if !p.FilterTransaction(tr, s) {
			return s, nil
		}
	}
	next := &EditorState{
		Schema:      s.Schema,
		Doc:         tr.Doc,
		Selection:   tr.Selection,
		StoredMarks: tr.StoredMarks,
		Plugins:     s.Plugins,
	}
	applied := []*Transaction{tr}
	for _, p := range s.Plugins {
		if p == nil {
			continue
		}
		if follow := p.AppendTransaction(applied, s, next); follow != nil && follow.Failed() == "" {
			next = &EditorState{
				Schema:      s.Schema,
				Doc:         follow.Doc,
				Selection:   follow.Selection,
				StoredMarks: follow.StoredMarks,
				Plugins:     s.Plugins,
			}
			applied = append(applied, follow)
		}
	}
	return next, nil
}

// ToJSON renders {doc, selection} for persistence.
func (s *EditorState) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"doc":       s.Doc.ToJSON(),
		"selection": map[string]interface{}{"anchor": s.Selection.Anchor, "head": s.Selection.Head},
	}
}

// FromJSON reconstructs an EditorState from ToJSON's shape, validating the
// document through schema.
func FromJSON(schema *model.Schema, raw map[string]interface{}, plugins []Plugin) (*EditorState, error) {
	rawDoc, ok := raw["doc"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("state: state JSON missing doc")
	}
	doc, err := model.NodeFromJSON(schema, rawDoc)
	if err != nil {
		return nil, err
	}
	sel := Caret(0)
	if rawSel, ok := raw["selection"].(map[string]interface{}); ok {
		anchor, _ := rawSel["anchor"].(float64)
		head, _ := rawSel["head"].(float64)
		sel = NewSelection(int(anchor), int(head), doc.ContentSize())
	}
	return &EditorState{Schema: schema, Doc: doc, Selection: sel, Plugins: plugins}, nil
}

// MarshalState renders this state's ToJSON shape to bytes, suitable for
// handing to a host's own storage layer.
func (s *EditorState) MarshalState() ([]byte, error) {
	return json.Marshal(s.ToJSON())
}

// UnmarshalState is the inverse of MarshalState: it decodes data into the
// intermediate map shape FromJSON expects, then reconstructs state through
// schema.
func UnmarshalState(schema *model.Schema, data []byte, plugins []Plugin) (*EditorState, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("state: decoding state JSON: %w", err)
	}
	return FromJSON(schema, raw, plugins)
}

package model

import (
	"fmt"
	"strings"
)

// AttributeSpec describes one node/mark attribute. An attribute with no
// default must be supplied explicitly whenever a node of that type is
// constructed.
type AttributeSpec struct {
	HasDefault bool
	Default    interface{}
}

// NodeSpec describes one node type as given to NewSchema.
type NodeSpec struct {
	Name    string
	Content string // content expression, e.g. "inline*" or "block+"
	Group   string
	Inline  bool
	Leaf    bool // no content at all (horizontalRule, hardBreak, image)
	Attrs   map[string]AttributeSpec
	ToDOM   func(n *Node) *DOMSpec
}

// MarkSpec describes one mark type.
type MarkSpec struct {
	Name  string
	Attrs map[string]AttributeSpec
	ToDOM func(m *Mark) *DOMSpec
}

// DOMSpec is the nested-array DOM description: the first element names a
// tag, an optional attribute map follows, and children are either nested
// DOMSpecs or the ContentHole sentinel.
type DOMSpec struct {
	Tag      string
	Attrs    map[string]string
	Children []DOMChild
}

// DOMChild is either a nested DOMSpec or the ContentHole sentinel marking
// "render node content here" in a nested-list DOM description.
type DOMChild struct {
	Spec   *DOMSpec
	IsHole bool
}

// ContentHole returns the sentinel child used in place of a literal content
// marker in a DOM description.
func ContentHole() DOMChild { return DOMChild{IsHole: true} }

// Elem is a convenience constructor for a DOMChild wrapping a nested spec.
func Elem(spec *DOMSpec) DOMChild { return DOMChild{Spec: spec} }

// SchemaSpec is the input to NewSchema: an ordered list of node specs (the
// first must be named "document") and an ordered list of mark specs.
type SchemaSpec struct {
	Nodes []NodeSpec
	Marks []MarkSpec
}

// NodeType is allocated once per Schema and tags every Node of that kind.
type NodeType struct {
	Name         string
	Schema       *Schema
	Spec         NodeSpec
	Groups       []string
	Attrs        map[string]AttributeSpec
	DefaultAttrs Attrs
	content      *contentMatch
	markSet      *[]*MarkType // nil means "all marks allowed"
}

// IsText reports whether this is the built-in text node type.
func (nt *NodeType) IsText() bool { return nt.Name == "text" }

// IsLeaf reports whether nodes of this type may never have content.
func (nt *NodeType) IsLeaf() bool { return nt.Spec.Leaf }

// IsInline reports whether this node type is laid out inline (text or
// explicitly marked inline, e.g. hardBreak/image).
func (nt *NodeType) IsInline() bool { return nt.IsText() || nt.Spec.Inline }

// IsBlock is the complement of IsInline.
func (nt *NodeType) IsBlock() bool { return !nt.IsInline() }

// HasGroup reports whether this type was declared in the given group.
func (nt *NodeType) HasGroup(group string) bool {
	for _, g := range nt.Groups {
		if g == group {
			return true
		}
	}
	return false
}

// HasRequiredAttrs reports whether any attribute of this type has no
// default and so must be supplied explicitly.
func (nt *NodeType) HasRequiredAttrs() bool {
	for _, a := range nt.Attrs {
		if !a.HasDefault {
			return true
		}
	}
	return false
}

// AllowsMarkType reports whether a mark of the given type may appear on
// children of this node.
func (nt *NodeType) AllowsMarkType(mt *MarkType) bool {
	if nt.markSet == nil {
		return true
	}
	for _, m := range *nt.markSet {
		if m == mt {
			return true
		}
	}
	return false
}

// AllowsMarks reports whether every mark in the set may appear here.
func (nt *NodeType) AllowsMarks(marks []*Mark) bool {
	if nt.markSet == nil {
		return true
	}
	for _, m := range marks {
		if !nt.AllowsMarkType(m.Type) {
			return false
		}
	}
	return true
}

// ComputeAttrs fills in defaults for any attribute missing from attrs,
// erroring if a required attribute (no default) was not supplied.
func (nt *NodeType) ComputeAttrs(attrs Attrs) (Attrs, error) {
	return nt.computeAttrs(attrs)
}

func (nt *NodeType) computeAttrs(attrs Attrs) (Attrs, error) {
	if len(attrs) == 0 {
		if nt.DefaultAttrs != nil {
			return nt.DefaultAttrs, nil
		}
	}
	out := make(Attrs, len(nt.Attrs))
	for name, spec := range nt.Attrs {
		v, ok := attrs[name]
		if !ok {
			if !spec.HasDefault {
				return nil, fmt.Errorf("model: no value supplied for required attribute %q on %q", name, nt.Name)
			}
			v = spec.Default
		}
		out[name] = v
	}
	return out, nil
}

// MarkType is allocated once per Schema and tags every Mark of that kind.
type MarkType struct {
	Name     string
	Rank     int
	Schema   *Schema
	Spec     MarkSpec
	Attrs    map[string]AttributeSpec
	Excluded []*MarkType // marks that cannot coexist with this one
}

func (mt *MarkType) computeAttrs(attrs Attrs) (Attrs, error) {
	out := make(Attrs, len(mt.Attrs))
	for name, spec := range mt.Attrs {
		v, ok := attrs[name]
		if !ok {
			if !spec.HasDefault {
				return nil, fmt.Errorf("model: no value supplied for required attribute %q on mark %q", name, mt.Name)
			}
			v = spec.Default
		}
		out[name] = v
	}
	return out, nil
}

// Excludes reports whether a mark of type other cannot coexist with this one.
func (mt *MarkType) Excludes(other *MarkType) bool {
	for _, ex := range mt.Excluded {
		if ex == other {
			return true
		}
	}
	return false
}

// Schema is a registry of node and mark types plus the operations that
// build and validate documents against them.
type Schema struct {
	Spec  SchemaSpec
	Nodes []*NodeType
	Marks []*MarkType

	byNodeName map[string]*NodeType
	byMarkName map[string]*MarkType
	topType    *NodeType
}

// NewSchema compiles a SchemaSpec into a Schema, parsing every content
// expression and resolving mark-set/exclusion declarations.
func NewSchema(spec SchemaSpec) (*Schema, error) {
	s := &Schema{Spec: spec, byNodeName: map[string]*NodeType{}, byMarkName: map[string]*MarkType{}}

	for _, ns := range spec.Nodes {
		nt := &NodeType{
			Name:   ns.Name,
			Schema: s,
			Spec:   ns,
			Attrs:  ns.Attrs,
		}
		if ns.Group != "" {
			nt.Groups = strings.Fields(ns.Group)
		}
		nt.DefaultAttrs = defaultAttrs(ns.Attrs)
		s.Nodes = append(s.Nodes, nt)
		s.byNodeName[ns.Name] = nt
	}
	if len(s.Nodes) == 0 || s.Nodes[0].Name != "document" {
		return nil, fmt.Errorf("model: schema is missing its top node type (document)")
	}
	if _, ok := s.byNodeName["text"]; !ok {
		return nil, fmt.Errorf("model: every schema needs a %q node type", "text")
	}
	s.topType = s.Nodes[0]

	for i, ms := range spec.Marks {
		mt := &MarkType{Name: ms.Name, Rank: i, Schema: s, Spec: ms, Attrs: ms.Attrs}
		s.Marks = append(s.Marks, mt)
		s.byMarkName[ms.Name] = mt
	}
	for _, mt := range s.Marks {
		mt.Excluded = []*MarkType{mt} // default: exclusive with itself only
	}

	exprCache := map[string]*contentMatch{}
	for _, nt := range s.Nodes {
		if nt.Spec.Leaf {
			nt.content = emptyContentMatch
			continue
		}
		cm, ok := exprCache[nt.Spec.Content]
		if !ok {
			var err error
			cm, err = parseContentExpr(nt.Spec.Content, s)
			if err != nil {
				return nil, fmt.Errorf("model: node %q: %w", nt.Name, err)
			}
			exprCache[nt.Spec.Content] = cm
		}
		nt.content = cm
	}
	return s, nil
}

// NodeType looks up a node type by name.
func (s *Schema) NodeType(name string) (*NodeType, error) {
	if nt, ok := s.byNodeName[name]; ok {
		return nt, nil
	}
	return nil, fmt.Errorf("model: unknown node type %q", name)
}

// MarkType looks up a mark type by name.
func (s *Schema) MarkType(name string) (*MarkType, error) {
	if mt, ok := s.byMarkName[name]; ok {
		return mt, nil
	}
	return nil, fmt.Errorf("model: unknown mark type %q", name)
}

// TopType returns the schema's single top node type (named "document").
func (s *Schema) TopType() *NodeType { return s.topType }

// Node builds a validated node of the given type name.
func (s *Schema) Node(typeName string, attrs Attrs, children []*Node, marks []*Mark) (*Node, error) {
	nt, err := s.NodeType(typeName)
	if err != nil {
		return nil, err
	}
	computed, err := nt.computeAttrs(attrs)
	if err != nil {
		return nil, err
	}
	if !nt.IsLeaf() && !validContent(nt, children) {
		return nil, fmt.Errorf("model: invalid content for node %q", typeName)
	}
	if nt.IsLeaf() && len(children) > 0 {
		return nil, fmt.Errorf("model: invariant error: leaf node %q constructed with children", typeName)
	}
	return &Node{typ: nt, attrs: computed, content: NewFragment(children), marks: sortMarks(marks)}, nil
}

// Text builds a validated text node. An empty string is rejected.
func (s *Schema) Text(text string, marks []*Mark) (*Node, error) {
	if text == "" {
		return nil, fmt.Errorf("model: invariant error: text node constructed with empty string")
	}
	nt, err := s.NodeType("text")
	if err != nil {
		return nil, err
	}
	for _, m := range marks {
		if m.Type.Schema != s {
			return nil, fmt.Errorf("model: mark %q from a different schema", m.Type.Name)
		}
	}
	return &Node{typ: nt, attrs: nt.DefaultAttrs, text: text, marks: sortMarks(marks)}, nil
}

// Mark builds a mark of the given type name with validated attrs.
func (s *Schema) Mark(typeName string, attrs Attrs) (*Mark, error) {
	mt, err := s.MarkType(typeName)
	if err != nil {
		return nil, err
	}
	computed, err := mt.computeAttrs(attrs)
	if err != nil {
		return nil, err
	}
	return &Mark{Type: mt, Attrs: computed}, nil
}

// ValidContent reports whether children would be valid content for a node
// of the given type, without constructing anything.
func (s *Schema) ValidContent(typeName string, children []*Node) bool {
	nt, err := s.NodeType(typeName)
	if err != nil {
		return false
	}
	return validContent(nt, children)
}

func defaultAttrs(attrs map[string]AttributeSpec) Attrs {
	out := Attrs{}
	for name, spec := range attrs {
		if !spec.HasDefault {
			return nil
		}
		out[name] = spec.Default
	}
	return out
}

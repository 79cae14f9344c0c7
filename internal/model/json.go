package model

import "fmt"

// ToJSON renders this node as the persisted-state shape: {type, attrs?,
// text?, marks?, children?} with empty attrs omitted.
func (n *Node) ToJSON() map[string]interface{} {
	out := map[string]interface{}{"type": n.typ.Name}
	if len(n.attrs) > 0 {
		out["attrs"] = map[string]interface{}(n.attrs)
	}
	if len(n.marks) > 0 {
		marks := make([]interface{}, len(n.marks))
		for i, m := range n.marks {
			marks[i] = m.ToJSON()
		}
		out["marks"] = marks
	}
	if n.IsText() {
		out["text"] = n.text
		return out
	}
	if n.ChildCount() > 0 {
		children := make([]interface{}, n.ChildCount())
		for i := 0; i < n.ChildCount(); i++ {
			children[i] = n.Child(i).ToJSON()
		}
		out["children"] = children
	}
	return out
}

// ToJSON renders this mark as {type, attrs?}.
func (m *Mark) ToJSON() map[string]interface{} {
	out := map[string]interface{}{"type": m.Type.Name}
	if len(m.Attrs) > 0 {
		out["attrs"] = map[string]interface{}(m.Attrs)
	}
	return out
}

// NodeFromJSON reconstructs a node through the schema and validates it.
func NodeFromJSON(s *Schema, raw map[string]interface{}) (*Node, error) {
	typeName, _ := raw["type"].(string)
	if typeName == "" {
		return nil, fmt.Errorf("model: node JSON missing type")
	}
	var attrs Attrs
	if a, ok := raw["attrs"].(map[string]interface{}); ok {
		attrs = Attrs(a)
	}
	var marks []*Mark
	if rawMarks, ok := raw["marks"].([]interface{}); ok {
		for _, rm := range rawMarks {
			mm, ok := rm.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("model: invalid mark JSON")
			}
			mark, err := MarkFromJSON(s, mm)
			if err != nil {
				return nil, err
			}
			marks = append(marks, mark)
		}
	}
	if text, ok := raw["text"].(string); ok {
		return s.Text(text, marks)
	}
	var children []*Node
	if rawChildren, ok := raw["children"].([]interface{}); ok {
		for _, rc := range rawChildren {
			cm, ok := rc.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("model: invalid child node JSON")
			}
			child, err := NodeFromJSON(s, cm)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
	}
	return s.Node(typeName, attrs, children, marks)
}

// MarkFromJSON reconstructs a mark through the schema.
func MarkFromJSON(s *Schema, raw map[string]interface{}) (*Mark, error) {
	typeName, _ := raw["type"].(string)
	if typeName == "" {
		return nil, fmt.Errorf("model: mark JSON missing type")
	}
	var attrs Attrs
	if a, ok := raw["attrs"].(map[string]interface{}); ok {
		attrs = Attrs(a)
	}
	return s.Mark(typeName, attrs)
}

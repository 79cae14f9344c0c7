package transform

import (
	"fmt"

	"github.com/proseengine/core/internal/model"
)

// stepFromJSON dispatches on the "type" discriminant persisted by each
// Step's ToJSON, the mirror image of that encoding.
func stepFromJSON(s *model.Schema, raw map[string]interface{}) (Step, error) {
	typeName, _ := raw["type"].(string)
	switch typeName {
	case "insertText":
		pos, err := intField(raw, "pos")
		if err != nil {
			return nil, err
		}
		text, _ := raw["text"].(string)
		return &InsertTextStep{Pos: pos, Text: text}, nil

	case "deleteRange":
		from, err := intField(raw, "from")
		if err != nil {
			return nil, err
		}
		to, err := intField(raw, "to")
		if err != nil {
			return nil, err
		}
		return &DeleteRangeStep{From: from, To: to}, nil

	case "replaceRange":
		from, err := intField(raw, "from")
		if err != nil {
			return nil, err
		}
		to, err := intField(raw, "to")
		if err != nil {
			return nil, err
		}
		var content []*model.Node
		if rawContent, ok := raw["content"].([]interface{}); ok {
			for _, rc := range rawContent {
				cm, ok := rc.(map[string]interface{})
				if !ok {
					return nil, fmt.Errorf("transform: invalid replaceRange content entry")
				}
				n, err := model.NodeFromJSON(s, cm)
				if err != nil {
					return nil, err
				}
				content = append(content, n)
			}
		}
		return &ReplaceRangeStep{From: from, To: to, Content: content}, nil

	case "addMark", "removeMark":
		from, err := intField(raw, "from")
		if err != nil {
			return nil, err
		}
		to, err := intField(raw, "to")
		if err != nil {
			return nil, err
		}
		rawMark, ok := raw["mark"].(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("transform: %s step missing mark", typeName)
		}
		mark, err := model.MarkFromJSON(s, rawMark)
		if err != nil {
			return nil, err
		}
		if typeName == "addMark" {
			return &AddMarkStep{From: from, To: to, Mark: mark}, nil
		}
		return &RemoveMarkStep{From: from, To: to, Mark: mark}, nil

	case "setNodeAttrs":
		pos, err := intField(raw, "pos")
		if err != nil {
			return nil, err
		}
		return &SetNodeAttrsStep{Pos: pos, Attrs: attrsField(raw)}, nil

	case "setBlockType":
		pos, err := intField(raw, "pos")
		if err != nil {
			return nil, err
		}
		nodeType, _ := raw["nodeType"].(string)
		return &SetBlockTypeStep{Pos: pos, TypeName: nodeType, Attrs: attrsField(raw)}, nil

	case "wrapIn":
		pos, err := intField(raw, "pos")
		if err != nil {
			return nil, err
		}
		nodeType, _ := raw["nodeType"].(string)
		return &WrapInStep{Pos: pos, TypeName: nodeType, Attrs: attrsField(raw)}, nil

	case "unwrap":
		pos, err := intField(raw, "pos")
		if err != nil {
			return nil, err
		}
		return &UnwrapStep{Pos: pos}, nil

	default:
		return nil, fmt.Errorf("transform: unknown step type %q", typeName)
	}
}

func intField(raw map[string]interface{}, key string) (int, error) {
	v, ok := raw[key]
	if !ok {
		return 0, fmt.Errorf("transform: step JSON missing %q", key)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("transform: field %q has non-numeric type %T", key, v)
	}
}

func attrsField(raw map[string]interface{}) model.Attrs {
	a, ok := raw["attrs"].(map[string]interface{})
	if !ok {
		return nil
	}
	return model.Attrs(a)
}

package model

import (
	"fmt"
	"strings"
)

// contentMatch is a tiny state machine over a content expression: each
// state names the node types it directly accepts and the state reached
// after accepting each. Matching a sequence of children walks the machine
// child by child; the parse is valid if every child is consumed and the
// machine ends in a valid-end state.
type contentMatch struct {
	validEnd bool
	edges    []contentEdge
}

type contentEdge struct {
	types []*NodeType // any of these types follows this edge
	next  *contentMatch
}

var emptyContentMatch = &contentMatch{validEnd: true}

// term is one space-separated unit of a content expression: a node type or
// group name plus a quantifier.
type term struct {
	name string
	kind byte // '1' exactly one, '+' one or more, '*' zero or more, '?' zero or one
}

func parseContentExpr(expr string, s *Schema) (*contentMatch, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return emptyContentMatch, nil
	}
	var terms []term
	for _, word := range strings.Fields(expr) {
		t := term{name: word, kind: '1'}
		switch word[len(word)-1] {
		case '+', '*', '?':
			t.kind = word[len(word)-1]
			t.name = word[:len(word)-1]
		}
		if t.name == "" {
			return nil, fmt.Errorf("empty term in content expression %q", expr)
		}
		terms = append(terms, t)
	}
	return buildMatch(terms, s)
}

// buildMatch compiles the term sequence into a linear chain of states.
// Quantified terms loop back onto a state that also accepts the
// continuation, matching the informal "regex-like sequence" semantics in
func buildMatch(terms []term, s *Schema) (*contentMatch, error) {
	if len(terms) == 0 {
		return emptyContentMatch, nil
	}
	t := terms[0]
	types, err := resolveTypes(t.name, s)
	if err != nil {
		return nil, err
	}
	rest, err := buildMatch(terms[1:], s)
	if err != nil {
		return nil, err
	}

	switch t.kind {
	case '1':
		return &contentMatch{edges: []contentEdge{{types: types, next: rest}}}, nil
	case '?':
		// Either skip straight to rest, or consume one and go to rest.
		m := &contentMatch{validEnd: rest.validEnd, edges: append([]contentEdge{}, rest.edges...)}
		m.edges = append(m.edges, contentEdge{types: types, next: rest})
		return m, nil
	case '*':
		return starNode(types, rest), nil
	case '+':
		tail := starNode(types, rest)
		return &contentMatch{edges: []contentEdge{{types: types, next: tail}}}, nil
	}
	return nil, fmt.Errorf("unreachable quantifier %q", t.kind)
}

// starNode builds the state for a "zero or more `types`" loop followed by
// rest: at this state the machine may either consume another `types` node
// (looping back to itself) or take any of rest's edges to stop looping.
func starNode(types []*NodeType, rest *contentMatch) *contentMatch {
	m := &contentMatch{validEnd: rest.validEnd}
	m.edges = append(m.edges, contentEdge{types: types, next: m})
	m.edges = append(m.edges, rest.edges...)
	return m
}

func resolveTypes(name string, s *Schema) ([]*NodeType, error) {
	if nt, ok := s.byNodeName[name]; ok {
		return []*NodeType{nt}, nil
	}
	var out []*NodeType
	for _, nt := range s.Nodes {
		if nt.HasGroup(name) {
			out = append(out, nt)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("unknown node type or group %q", name)
	}
	return out, nil
}

func (cm *contentMatch) matchType(nt *NodeType) *contentMatch {
	for _, e := range cm.edges {
		for _, t := range e.types {
			if t == nt {
				return e.next
			}
		}
	}
	return nil
}

// matchFragment walks the machine across every child in order, returning
// the resulting state or nil if any child is rejected.
func (cm *contentMatch) matchFragment(children []*Node) *contentMatch {
	cur := cm
	for _, child := range children {
		cur = cur.matchType(child.Type())
		if cur == nil {
			return nil
		}
	}
	return cur
}

// validContent implements validContent contract: every child must be
// consumed and the machine must land in a valid-end state.
func validContent(nt *NodeType, children []*Node) bool {
	end := nt.content.matchFragment(children)
	if end == nil || !end.validEnd {
		return false
	}
	for _, c := range children {
		if !nt.AllowsMarks(c.Marks()) {
			return false
		}
	}
	return true
}

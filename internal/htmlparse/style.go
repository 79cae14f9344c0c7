package htmlparse

import (
	"bytes"
	"strings"

	"github.com/tdewolff/parse/v2/css"
)

// styleAllowList is the exact set from ("style attributes are filtered to
// the allow list").
var styleAllowList = map[string]bool{
	"color": true, "background-color": true, "font-size": true,
	"font-family": true, "text-align": true, "line-height": true,
	"text-decoration": true, "font-weight": true, "font-style": true,
	"vertical-align": true, "margin-left": true,
}

// filterStyle parses a style attribute value (as an inline declaration
// list, the second NewParser argument) and keeps only declarations whose
// property is on styleAllowList, walking a tdewolff/parse/v2/css grammar
// stream and rebuilding the value declaration by declaration.
func filterStyle(value string) string {
	p := css.NewParser(bytes.NewBufferString(value), true)
	var out strings.Builder
	for {
		gt, _, data := p.Next()
		if gt == css.ErrorGrammar {
			return out.String()
		}
		if gt != css.DeclarationGrammar {
			continue
		}
		prop := strings.ToLower(strings.TrimSpace(string(data)))
		if !styleAllowList[prop] {
			continue
		}
		out.WriteString(prop)
		out.WriteString(":")
		for _, v := range p.Values() {
			out.Write(v.Data)
		}
		out.WriteString(";")
	}
}

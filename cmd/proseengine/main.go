// Command proseengine is a small CLI harness around the engine, useful
// for manually inspecting how a document round-trips through the HTML
// boundary and how one document's serialized form differs from another's.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/diff"

	proseengine "github.com/proseengine/core"
)

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	switch os.Args[1] {
	case "render":
		render(os.Args[2:])
	case "diff":
		diffFiles(os.Args[2:])
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: proseengine render <file.html> | diff <before.html> <after.html>")
	os.Exit(1)
}

// render parses file as the engine would, then prints the sanitized HTML
// it serializes back out.
func render(args []string) {
	if len(args) != 1 {
		usage()
	}
	html := readFile(args[0])
	e, err := proseengine.New()
	fatalIf(err)
	fatalIf(e.SetValue(html))
	fmt.Println(e.Value())
}

// diffFiles loads two HTML documents through the engine (normalizing
// both through parse/sanitize/serialize) and prints a unified diff of the
// result, the shape a CLI would use to eyeball a transaction's effect.
func diffFiles(args []string) {
	if len(args) != 2 {
		usage()
	}
	before := normalize(readFile(args[0]))
	after := normalize(readFile(args[1]))
	err := diff.Text(args[0], args[1], strings.NewReader(before), strings.NewReader(after), os.Stdout)
	fatalIf(err)
}

func normalize(html string) string {
	e, err := proseengine.New()
	fatalIf(err)
	fatalIf(e.SetValue(html))
	return e.Value()
}

func readFile(path string) string {
	b, err := os.ReadFile(path)
	fatalIf(err)
	return string(b)
}

func fatalIf(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "proseengine:", err)
		os.Exit(1)
	}
}

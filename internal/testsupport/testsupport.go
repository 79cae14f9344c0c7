// Package testsupport holds small test helpers shared across this module's
// test files: HTML fixture dedenting, snapshot assertions for serialized
// documents, and a colorized diff for failures involving structured values.
package testsupport

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/google/go-cmp/cmp"
	"github.com/lithammer/dedent"
)

// HTML takes an indented multi-line HTML literal (as it reads naturally in
// Go source) and strips the common leading whitespace plus any leading or
// trailing blank lines, so fixtures can be written at the test's own
// indentation level.
func HTML(input string) string {
	return dedent.Dedent(strings.Trim(input, "\n"))
}

// Diff renders cmp.Diff(want, got) with ANSI color so a failing assertion's
// additions and removals are easy to spot in a terminal.
func Diff(want, got interface{}, opts ...cmp.Option) string {
	d := cmp.Diff(want, got, opts...)
	if d == "" {
		return ""
	}
	lines := strings.Split(d, "\n")
	for i, l := range lines {
		switch {
		case strings.HasPrefix(l, "-"):
			lines[i] = "\x1b[31m" + l + "\x1b[0m"
		case strings.HasPrefix(l, "+"):
			lines[i] = "\x1b[32m" + l + "\x1b[0m"
		}
	}
	return strings.Join(lines, "\n")
}

// MatchDocSnapshot records the input fixture alongside the engine's
// serialized output and compares both against the stored snapshot for
// name, failing with an ANSI diff if either has drifted. Run with
// UPDATE_SNAPS=true to accept changed output.
func MatchDocSnapshot(t *testing.T, name, input, output string) {
	t.Helper()
	snapshot := fmt.Sprintf("## Input\n\n```html\n%s\n```\n\n## Output\n\n```html\n%s\n```", HTML(input), HTML(output))
	snaps.WithConfig(snaps.Filename(redactSnapshotName(name))).MatchSnapshot(t, snapshot)
}

// redactSnapshotName strips characters go-snaps would otherwise choke on
// when using a test's own descriptive name as the snapshot file name.
func redactSnapshotName(name string) string {
	r := strings.NewReplacer(
		"/", "_", " ", "_", "(", "_", ")", "_", ":", "_", "\"", "_", "'", "_",
	)
	return r.Replace(name)
}

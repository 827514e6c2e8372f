package legvm

import "strings"

// sourceLine is one non-blank, non-comment line of assembly source,
// tagged with its 1-based line number for error reporting.
type sourceLine struct {
	num  int
	text string
}

// lexLines strips comments and blank lines from source, returning the
// remaining lines in order with their original 1-based line numbers
// preserved. A comment runs from a leading '#' to end of line, matching
// the grammar's comment convention.
func lexLines(source string) []sourceLine {
	var out []sourceLine
	for i, raw := range strings.Split(source, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, sourceLine{num: i + 1, text: line})
	}
	return out
}

// fields splits a source line into whitespace-separated tokens.
func fields(line string) []string {
	return strings.Fields(line)
}

package main

import "strings"

// formatHelpLines turns captured help text into the lines that go
// inside a fenced block. When usageOnly is set, everything before the
// first line containing "usage:" is dropped; if no such line exists the
// result is empty, which is a legitimate degenerate outcome. Non-blank
// lines are prefixed with indentLevel spaces; blank lines are emitted
// as-is so the output carries no trailing whitespace.
func formatHelpLines(helpText string, indentLevel int, usageOnly bool) []string {
	lines := strings.Split(helpText, "\n")
	if usageOnly {
		keep := -1
		for i, line := range lines {
			if strings.Contains(strings.ToLower(line), "usage:") {
				keep = i
				break
			}
		}
		if keep < 0 {
			return nil
		}
		lines = lines[keep:]
	}
	indent := strings.Repeat(" ", indentLevel)
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			out = append(out, "")
			continue
		}
		out = append(out, indent+line)
	}
	return out
}

// spliceSection returns a new document with the content between the
// range's delimiter lines replaced by injected. The delimiter lines are
// preserved; the input slice is not modified.
func spliceSection(lines []string, rng sectionRange, injected []string) []string {
	out := make([]string, 0, rng.before+1+len(injected)+len(lines)-rng.after)
	out = append(out, lines[:rng.before+1]...)
	out = append(out, injected...)
	out = append(out, lines[rng.after:]...)
	return out
}

package main

import (
	"fmt"
	"strings"
)

const fenceMark = "```"

// docIndex is the result of one scan pass over a document: the line
// indices of fenced-code-block delimiters and the line indices where a
// usage tag occurs.
type docIndex struct {
	fences []int
	usages []int
}

// scanDocument walks the document lines once, recording candidate fence
// delimiters and occurrences of usageTag. Matching the tag is a
// case-insensitive substring test on the trimmed line.
//
// A trimmed line counts as a fence delimiter when it starts with the
// three-backtick marker, unless it is longer than six characters and
// also ends with the marker — that form is an inline one-line span, not
// a block boundary. The rule is an approximation and can misread
// unusual Markdown; it matches the documented behavior on purpose.
func scanDocument(lines []string, usageTag string) docIndex {
	var idx docIndex
	tag := strings.ToLower(usageTag)
	for i, line := range lines {
		s := strings.TrimSpace(line)
		if strings.HasPrefix(s, fenceMark) && !(len(s) > 6 && strings.HasSuffix(s, fenceMark)) {
			idx.fences = append(idx.fences, i)
		}
		if strings.Contains(strings.ToLower(s), tag) {
			idx.usages = append(idx.usages, i)
		}
	}
	return idx
}

// sectionRange brackets the fenced block belonging to one usage tag.
// before and after are the delimiter lines themselves; only the lines
// strictly between them are replaced.
type sectionRange struct {
	before int
	after  int
}

// unresolvedError reports why no section could be located for a tag.
// It is a per-command condition: the caller skips the command and moves
// on rather than aborting the run.
type unresolvedError struct {
	tag    string
	reason string
}

func (e *unresolvedError) Error() string {
	return fmt.Sprintf("cannot locate section for %q: %s", e.tag, e.reason)
}

// resolveSection turns a scan result into a validated section range.
// The tag must occur exactly once, and that occurrence must have a
// fence delimiter at or before it and another strictly after it.
func resolveSection(idx docIndex, usageTag string) (sectionRange, error) {
	switch {
	case len(idx.usages) == 0:
		return sectionRange{}, &unresolvedError{usageTag, "no reference found in document"}
	case len(idx.usages) > 1:
		return sectionRange{}, &unresolvedError{usageTag, "more than one reference found in document"}
	}
	usage := idx.usages[0]
	before, after := -1, -1
	for _, ix := range idx.fences {
		if ix <= usage {
			before = ix
		} else {
			after = ix
			break
		}
	}
	if before < 0 || after < 0 {
		return sectionRange{}, &unresolvedError{usageTag, "no enclosing fenced code block"}
	}
	return sectionRange{before: before, after: after}, nil
}

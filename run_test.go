package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCapture returns canned help text per command and counts launches.
type stubCapture struct {
	help  map[string]string
	calls int
}

func (s *stubCapture) capture(_ context.Context, runCmd string) (string, error) {
	s.calls++
	text, ok := s.help[runCmd]
	if !ok {
		return "", fmt.Errorf("run %q: %w", runCmd, errors.New("executable file not found"))
	}
	return text, nil
}

func TestRunSessionInsertsHelpText(t *testing.T) {
	doc := []string{"# T", "", "```", "usage: foo", "```", ""}
	stub := &stubCapture{help: map[string]string{"foo": "usage: foo [-h]"}}

	res := runSession(context.Background(), doc, []commandSpec{{runCmd: "foo", usageTag: "usage: foo"}},
		options{indentLevel: 4}, stub.capture)

	assert.Equal(t, []string{"# T", "", "```", "    usage: foo [-h]", "```", ""}, res.lines)
	assert.True(t, res.changed)
	assert.Empty(t, res.warnings)
	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, []string{"# T", "", "```", "usage: foo", "```", ""}, doc,
		"original document must not be modified")
}

func TestRunSessionIsIdempotent(t *testing.T) {
	doc := []string{"# T", "", "```", "usage: foo", "```", ""}
	cmds := []commandSpec{{runCmd: "foo", usageTag: "usage: foo"}}
	opts := options{indentLevel: 2}
	stub := &stubCapture{help: map[string]string{"foo": "usage: foo [-h]\n  -h  help"}}

	first := runSession(context.Background(), doc, cmds, opts, stub.capture)
	require.True(t, first.changed)

	second := runSession(context.Background(), first.lines, cmds, opts, stub.capture)
	assert.False(t, second.changed)
	assert.Equal(t, first.lines, second.lines)
}

func TestRunSessionUnresolvedSkipsCapture(t *testing.T) {
	doc := []string{"# T", "", "```", "something else", "```"}
	stub := &stubCapture{help: map[string]string{"foo": "usage: foo"}}

	res := runSession(context.Background(), doc, []commandSpec{{runCmd: "foo", usageTag: "usage: foo"}},
		options{}, stub.capture)

	assert.Equal(t, doc, res.lines)
	assert.False(t, res.changed)
	require.Len(t, res.warnings, 1)
	assert.Contains(t, res.warnings[0], "no reference found")
	assert.Zero(t, stub.calls, "unresolved command must not launch a process")
}

func TestRunSessionAmbiguousTagSkipsCommand(t *testing.T) {
	doc := []string{"```", "usage: foo", "```", "```", "usage: foo", "```"}
	stub := &stubCapture{help: map[string]string{"foo": "usage: foo"}}

	res := runSession(context.Background(), doc, []commandSpec{{runCmd: "foo", usageTag: "usage: foo"}},
		options{}, stub.capture)

	assert.Equal(t, doc, res.lines)
	assert.False(t, res.changed)
	require.Len(t, res.warnings, 1)
	assert.Contains(t, res.warnings[0], "more than one reference")
	assert.Zero(t, stub.calls)
}

func TestRunSessionCaptureFailureIsWarningNotFatal(t *testing.T) {
	doc := []string{
		"```", "usage: gone", "```",
		"```", "usage: foo", "```",
	}
	stub := &stubCapture{help: map[string]string{"foo": "usage: foo [-h]"}}
	cmds := []commandSpec{
		{runCmd: "gone", usageTag: "usage: gone"},
		{runCmd: "foo", usageTag: "usage: foo"},
	}

	res := runSession(context.Background(), doc, cmds, options{}, stub.capture)

	require.Len(t, res.warnings, 1)
	assert.Contains(t, res.warnings[0], "gone")
	assert.Equal(t, []string{"```", "usage: gone", "```", "```", "usage: foo [-h]", "```"}, res.lines)
	assert.True(t, res.changed)
}

func TestRunSessionCascadesAcrossCommands(t *testing.T) {
	doc := []string{
		"# Tools", "",
		"```", "usage: alpha", "```", "",
		"```", "usage: beta", "```", "",
	}
	stub := &stubCapture{help: map[string]string{
		"alpha": "usage: alpha [-h]",
		"beta":  "usage: beta [-h]\n  --fast",
	}}
	forward := []commandSpec{
		{runCmd: "alpha", usageTag: "usage: alpha"},
		{runCmd: "beta", usageTag: "usage: beta"},
	}
	reverse := []commandSpec{forward[1], forward[0]}

	want := []string{
		"# Tools", "",
		"```", "usage: alpha [-h]", "```", "",
		"```", "usage: beta [-h]", "  --fast", "```", "",
	}

	got := runSession(context.Background(), doc, forward, options{}, stub.capture)
	assert.Equal(t, want, got.lines)
	assert.True(t, got.changed)

	gotReverse := runSession(context.Background(), doc, reverse, options{}, stub.capture)
	assert.Equal(t, want, gotReverse.lines, "processing order must not matter for disjoint tags")
}

func TestRunSessionChangedComparesAgainstOriginal(t *testing.T) {
	doc := []string{"```", "usage: foo [-h]", "```"}
	stub := &stubCapture{help: map[string]string{"foo": "usage: foo [-h]"}}

	res := runSession(context.Background(), doc, []commandSpec{{runCmd: "foo", usageTag: "usage: foo"}},
		options{}, stub.capture)

	assert.False(t, res.changed, "identical replacement text is not a change")
	assert.Equal(t, doc, res.lines)
}

func TestReadDocLinesStripsTrailingWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("# T  \r\n\n```\t\nusage: x\n```\n"), 0o644))

	lines, err := readDocLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"# T", "", "```", "usage: x", "```"}, lines)
}

func TestReadDocLinesKeepsUnterminatedLastLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo"), 0o644))

	lines, err := readDocLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, lines)
}

func TestWriteDocLinesAppendsNewlinePerLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.md")
	require.NoError(t, writeDocLines(path, []string{"a", "", "b"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\n\nb\n", string(data))
}

func TestModifiedDocPathFormat(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "README.md")
	stamp := time.Date(2024, 5, 17, 9, 30, 15, 0, time.UTC)

	outPath, err := modifiedDocPath(docPath, stamp)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "README_MODIFIED_20240517_093015.md"), outPath)
}

func TestModifiedDocPathRefusesCollision(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "README.md")
	stamp := time.Date(2024, 5, 17, 9, 30, 15, 0, time.UTC)
	existing := filepath.Join(dir, "README_MODIFIED_20240517_093015.md")
	require.NoError(t, os.WriteFile(existing, []byte("x\n"), 0o644))

	_, err := modifiedDocPath(docPath, stamp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

type options struct {
	indentLevel int
	usageOnly   bool
	compareCmd  string
	timeout     time.Duration
}

type cliApp struct {
	stdout io.Writer
	opts   options
}

func run(argv []string, stdout io.Writer) error {
	cmd := newRootCmd(stdout)
	cmd.SetArgs(argv)
	return cmd.Execute()
}

// captureFunc captures one command's help text. Tests substitute a
// stub; production use is captureHelp.
type captureFunc func(ctx context.Context, runCmd string) (string, error)

// sessionResult is everything one document-processing pass produces:
// the final line sequence, whether it differs from the original, and
// the warnings for commands that could not be applied.
type sessionResult struct {
	lines    []string
	changed  bool
	warnings []string
}

// runSession applies each command's captured help text to the document
// in order. Later commands resolve against the document as already
// modified by earlier ones. Help text is captured only after a
// command's section resolves, so an unresolvable command never launches
// a process. A command whose section cannot be located, or whose help
// text cannot be captured, is recorded as a warning and skipped; it
// never aborts the rest of the run.
func runSession(ctx context.Context, doc []string, cmds []commandSpec, opts options, capture captureFunc) sessionResult {
	res := sessionResult{lines: doc}
	for _, spec := range cmds {
		idx := scanDocument(res.lines, spec.usageTag)
		rng, err := resolveSection(idx, spec.usageTag)
		if err != nil {
			res.warnings = append(res.warnings, err.Error())
			continue
		}
		helpText, err := capture(ctx, spec.runCmd)
		if err != nil {
			res.warnings = append(res.warnings, fmt.Sprintf("capture help for %q: %v", spec.runCmd, err))
			continue
		}
		injected := formatHelpLines(helpText, opts.indentLevel, opts.usageOnly)
		res.lines = spliceSection(res.lines, rng, injected)
	}
	res.changed = !slices.Equal(res.lines, doc)
	return res
}

func (app *cliApp) execute(ctx context.Context, positionals []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	docPath := positionals[0]
	if _, err := os.Stat(docPath); err != nil {
		return fmt.Errorf("document: %w", err)
	}
	cmds := make([]commandSpec, 0, len(positionals)-1)
	for _, arg := range positionals[1:] {
		if strings.TrimSpace(arg) == "" {
			continue
		}
		spec, err := newCommandSpec(arg)
		if err != nil {
			return err
		}
		cmds = append(cmds, spec)
	}
	if len(cmds) == 0 {
		return errors.New("no commands supplied")
	}

	doc, err := readDocLines(docPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(app.stdout, "Reading %q\n", docPath)

	capture := captureFunc(captureHelp)
	if d := app.opts.timeout; d > 0 {
		capture = func(ctx context.Context, runCmd string) (string, error) {
			cctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			return captureHelp(cctx, runCmd)
		}
	}

	res := runSession(ctx, doc, cmds, app.opts, capture)
	for _, w := range res.warnings {
		fmt.Fprintln(app.stdout, "warning:", w)
	}
	if !res.changed {
		fmt.Fprintln(app.stdout, "No changes; nothing written.")
		return nil
	}

	outPath, err := modifiedDocPath(docPath, time.Now())
	if err != nil {
		return err
	}
	fmt.Fprintf(app.stdout, "Writing %q\n", outPath)
	if err := writeDocLines(outPath, res.lines); err != nil {
		return err
	}
	if app.opts.compareCmd != "" {
		if err := launchCompare(ctx, app.opts.compareCmd, docPath, outPath); err != nil {
			fmt.Fprintln(app.stdout, "compare tool:", err)
		}
	}
	return nil
}

// readDocLines loads the document as a line sequence. Trailing
// whitespace (including the line terminator) is stripped per line; the
// writer re-appends a single newline per line.
func readDocLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	raw := strings.Split(string(data), "\n")
	lines := make([]string, len(raw))
	for i, s := range raw {
		lines[i] = strings.TrimRight(s, " \t\r")
	}
	// A terminating newline leaves one empty trailing element behind.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines, nil
}

func writeDocLines(path string, lines []string) error {
	var buf bytes.Buffer
	for _, s := range lines {
		buf.WriteString(s)
		buf.WriteByte('\n')
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// modifiedDocPath names the output copy written alongside the original.
// The sortable timestamp keeps repeated runs from colliding; an exact
// collision is fatal rather than an overwrite.
func modifiedDocPath(docPath string, now time.Time) (string, error) {
	base := filepath.Base(docPath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	name := fmt.Sprintf("%s_MODIFIED_%s%s", stem, now.Format("20060102_150405"), ext)
	outPath := filepath.Join(filepath.Dir(docPath), name)
	if _, err := os.Stat(outPath); err == nil {
		return "", fmt.Errorf("output file already exists: %s", outPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}
	return outPath, nil
}

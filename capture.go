package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	shellwords "github.com/mattn/go-shellwords"
)

const helpFlag = "-h"

// commandSpec pairs one command invocation with the usage tag that
// marks its section in the document. Specs are built once from the
// command line and never mutated.
type commandSpec struct {
	runCmd   string
	usageTag string
}

// entryPointStems are file stems that do not name a program by
// themselves. A command whose executable stem appears here takes its
// usage tag from the parent directory instead, so "myapp/__main__.py"
// tags as "usage: myapp".
var entryPointStems = map[string]bool{
	"__main__": true,
}

// newCommandSpec derives the usage tag for a command invocation from
// the stem of its first token.
func newCommandSpec(runCmd string) (commandSpec, error) {
	tokens, err := shellwords.Parse(runCmd)
	if err != nil {
		return commandSpec{}, fmt.Errorf("parse command %q: %w", runCmd, err)
	}
	if len(tokens) == 0 {
		return commandSpec{}, fmt.Errorf("empty command %q", runCmd)
	}
	return commandSpec{
		runCmd:   runCmd,
		usageTag: "usage: " + programName(tokens[0]),
	}, nil
}

// programName returns the display name for an executable path: the
// file stem, or the parent directory name for package entry points.
func programName(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if entryPointStems[stem] {
		if parent := filepath.Base(filepath.Dir(path)); parent != "." && parent != string(filepath.Separator) {
			return parent
		}
	}
	return stem
}

// captureHelp runs the command with the help flag appended and returns
// its combined stdout/stderr with surrounding whitespace trimmed.
//
// A non-zero exit from the target is not an error: argparse-style
// programs print usage to stderr and exit 2, and the text is what
// matters here. Failing to start the process at all is an error.
func captureHelp(ctx context.Context, runCmd string) (string, error) {
	tokens, err := shellwords.Parse(runCmd)
	if err != nil {
		return "", fmt.Errorf("parse command %q: %w", runCmd, err)
	}
	if len(tokens) == 0 {
		return "", fmt.Errorf("empty command %q", runCmd)
	}
	tokens = append(tokens, helpFlag)
	cmd := exec.CommandContext(ctx, tokens[0], tokens[1:]...)
	out, err := cmd.CombinedOutput()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", fmt.Errorf("run %q: %w", strings.Join(tokens, " "), ctxErr)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return "", fmt.Errorf("run %q: %w", strings.Join(tokens, " "), err)
		}
	}
	return strings.TrimSpace(string(out)), nil
}

// launchCompare starts the configured compare tool with the original
// and modified document paths as its first two arguments and waits for
// it to finish.
func launchCompare(ctx context.Context, compareCmd, origPath, modPath string) error {
	tokens, err := shellwords.Parse(compareCmd)
	if err != nil {
		return fmt.Errorf("parse compare command %q: %w", compareCmd, err)
	}
	if len(tokens) == 0 {
		return fmt.Errorf("empty compare command")
	}
	tokens = append(tokens, origPath, modPath)
	cmd := exec.CommandContext(ctx, tokens[0], tokens[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

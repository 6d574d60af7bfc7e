package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	cobradoc "github.com/spf13/cobra/doc"
)

const rootLongDesc = `
sausage captures the help/usage message from programs that have a
command-line interface and inserts the text into a copy of a Markdown
document (typically a README.md).

The document must already contain a fenced code block (lines with
triple-backticks before and after) holding 'usage: <program-name>' for
each program whose help text is to be inserted. Each program must
support the -h (help) argument. A modified copy of the document is
written alongside the original with a timestamped name; the original
document is never touched. Optionally a compare tool is launched on the
two versions afterwards.
`

func newRootCmd(stdout io.Writer) *cobra.Command {
	app := &cliApp{stdout: stdout}
	cmd := &cobra.Command{
		Use:           "sausage [flags] DOC_FILE [COMMAND...]",
		Short:         "Insert captured command-line help text into a Markdown document",
		Long:          strings.TrimSpace(rootLongDesc),
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.DisableAutoGenTag = true
	cmd.Version = Version
	cmd.SetOut(stdout)
	cmd.SetErr(io.Discard)
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.Flags()
	flags.IntVar(&app.opts.indentLevel, "indent", 0, "number of spaces to prefix each non-blank inserted line")
	flags.BoolVar(&app.opts.usageOnly, "usage-only", false, "discard captured lines before the first 'usage:' line")
	flags.StringVar(&app.opts.compareCmd, "compare-cmd", "", "tool to launch on the original and modified documents")
	flags.DurationVar(&app.opts.timeout, "timeout", 30*time.Second, "per-command deadline for capturing help output")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return app.execute(cmd.Context(), args)
	}

	cmd.AddCommand(newCompletionCmd(cmd))
	cmd.AddCommand(newDocsCmd(cmd))
	return cmd
}

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	const (
		longDesc = `Generate shell completion scripts for sausage.

The output should be evaluated by your shell. For example:

  # bash
  sausage completion bash > /usr/local/etc/bash_completion.d/sausage

  # zsh
  sausage completion zsh > "${fpath[1]}/_sausage"

  # fish
  sausage completion fish | source

  # PowerShell
  sausage completion powershell | Out-String | Invoke-Expression
`
	)
	cmd := &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion scripts",
		Long:                  longDesc,
		Args:                  cobra.ExactValidArgs(1),
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return root.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return root.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return root.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return root.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell %q", args[0])
		}
	}
	return cmd
}

func newDocsCmd(root *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen-docs [directory]",
		Short: "Generate Markdown reference docs for the CLI",
		Long: strings.TrimSpace(`
Write a Markdown file per command (suitable for publishing CLI docs).

Example:

  sausage gen-docs ./docs/cli
`),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		target := args[0]
		if target == "" {
			return fmt.Errorf("target directory is required")
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return err
		}
		return cobradoc.GenMarkdownTree(root, target)
	}
	return cmd
}

// # sausage
//
// `sausage` is a documentation-maintenance utility: it runs one or more
// programs with the `-h` flag, captures the help/usage text they print, and
// splices that text into a copy of a Markdown document (perhaps a README.md
// file). The original document is never modified.
//
// Key capabilities:
//
//   - locate the fenced code block for each program by the marker
//     `usage: <program-name>` inside the block (matched case-insensitively).
//   - handle several programs in one run; each program's section is resolved
//     against the document as already updated by the preceding programs.
//   - skip, with a warning, any program whose section is missing, ambiguous,
//     or not enclosed in a fenced block — one bad section never aborts the
//     whole run.
//   - indent the inserted text via `--indent`, or trim everything before the
//     first `usage:` line via `--usage-only`.
//   - write the result to `<name>_MODIFIED_<timestamp>.<ext>` next to the
//     original, refusing to overwrite, and only when something changed.
//   - optionally launch a diff/compare tool on the two versions via
//     `--compare-cmd`.
//   - ship a Cobra-powered CLI with rich `--help`, `--version`, shell
//     completion, and a `gen-docs` helper for publishing the CLI reference.
//
// ## Usage
//
//	sausage [flags] DOC_FILE [COMMAND...]
//
// Examples:
//
//   - Refresh the usage block for one program, indented four spaces:
//
//     sausage --indent 4 README.md ./myapp
//
//   - Refresh two programs and review the result in a compare tool:
//
//     sausage --compare-cmd meld README.md ./cmd-a "./cmd-b --mode fast"
//
//   - Keep only the usage synopsis from a verbose help message:
//
//     sausage --usage-only README.md ./myapp
//
// ## Document Layout
//
// For each program the document must already contain exactly one fenced code
// block with the program's usage tag inside it:
//
//	```
//	usage: myapp [-h]
//	```
//
// The content between the backtick lines is replaced with the freshly
// captured help text; the backtick lines themselves are preserved. A tag
// that appears zero times or more than once, or that is not enclosed by a
// fence pair, leaves the document untouched for that program and is
// reported as a warning at the end of the run.
//
// ## Output
//
// The modified copy is named `<stem>_MODIFIED_<YYYYMMDD_HHMMSS><suffix>` and
// placed in the same directory as the original. When the captured text
// matches what the document already contains, nothing is written and the
// run reports "no changes".
package main

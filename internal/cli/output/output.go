// Package output handles CLI rendering: output mode resolution, styled
// text, and the shared Renderer handed to every command.
package output

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Mode selects how command output is rendered.
type Mode string

// Output modes. ModeAuto resolves to ModeTable on a terminal and
// ModeMarkdown when output is piped.
const (
	ModeAuto     Mode = "auto"
	ModeTable    Mode = "table"
	ModeJSON     Mode = "json"
	ModeCSV      Mode = "csv"
	ModeMarkdown Mode = "md"
)

// normalizeMode folds the accepted aliases onto canonical modes.
func normalizeMode(m Mode) Mode {
	switch m {
	case "text":
		return ModeTable
	case "markdown":
		return ModeMarkdown
	}
	return m
}

// Renderer writes command output with mode awareness and consistent styling.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	styles *Styles
}

// NewRenderer creates a renderer writing normal output to out and
// diagnostics to errOut.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   normalizeMode(mode),
		styles: NewStyles(),
	}
}

// Out returns the normal-output writer, for callers that stream their own
// tables.
func (r *Renderer) Out() io.Writer {
	return r.out
}

// Styles returns the style set used by this renderer.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// EffectiveMode resolves ModeAuto against the output destination.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if f, ok := r.out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return ModeTable
	}
	return ModeMarkdown
}

// Println writes a line of normal output.
func (r *Renderer) Println(args ...any) {
	_, _ = fmt.Fprintln(r.out, args...)
}

// Printf writes formatted normal output.
func (r *Renderer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// Success writes a green success line.
func (r *Renderer) Success(msg string) {
	_, _ = fmt.Fprintln(r.out, r.styles.Success.Render("✓ "+msg))
}

// Warning writes a yellow warning line to the diagnostic stream.
func (r *Renderer) Warning(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Warning.Render("! "+msg))
}

// Error writes a red error line to the diagnostic stream.
func (r *Renderer) Error(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render("✗ "+msg))
}

// FormatHeader renders a markdown-style header of the given level.
func FormatHeader(level int, text string) string {
	if level < 1 {
		level = 1
	}
	prefix := ""
	for i := 0; i < level; i++ {
		prefix += "#"
	}
	return prefix + " " + text
}

// FormatKeyValue renders a "- **Key**: value" markdown line.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("- **%s**: %s", key, value)
}

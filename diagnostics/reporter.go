// Package diagnostics renders pipeline errors for humans: a lead word,
// the failing source position, one line of source context with a caret
// underline, and a hint keyed off the message text.
package diagnostics

import (
	"fmt"
	"io"
	"os"
	"strings"

	"riau/compiler"
	"riau/interpreter"
	"riau/lexer"
	"riau/parser"
	"riau/semantic"
	"riau/vm"

	"github.com/hashicorp/go-multierror"
)

const (
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
	colorReset  = "\033[0m"
)

// Reporter renders diagnostics against one source buffer. Colour is ANSI
// SGR, disabled when NO_COLOR is set in the environment or Color is
// cleared by the caller.
type Reporter struct {
	Filename string
	Source   string
	Out      io.Writer
	Color    bool
}

// New constructs a Reporter for the given file, writing to stderr and
// honouring the NO_COLOR convention.
func New(filename, source string) *Reporter {
	_, noColor := os.LookupEnv("NO_COLOR")
	return &Reporter{Filename: filename, Source: source, Out: os.Stderr, Color: !noColor}
}

// Report renders err. A *multierror.Error is flattened so every
// accumulated diagnostic gets its own snippet; anything unrecognised is
// printed as a bare message.
func (r *Reporter) Report(err error) {
	if err == nil {
		return
	}
	if merr, ok := err.(*multierror.Error); ok {
		for _, e := range merr.Errors {
			r.reportOne(e)
		}
		return
	}
	r.reportOne(err)
}

func (r *Reporter) reportOne(err error) {
	switch e := err.(type) {
	case lexer.LexError:
		r.render("Error", e.Line, e.Column, e.Message)
	case parser.SyntaxError:
		r.render("Error", e.Line, e.Column, e.Message)
	case semantic.SemanticError:
		r.render("Error", e.Line, e.Column, e.Message)
	case compiler.CompileError:
		r.render("Error", e.Line, e.Column, e.Message)
	case vm.RuntimeError:
		r.render("Error", e.Line, 0, e.Message)
	case interpreter.RuntimeError:
		r.render("Error", e.Line, e.Column, e.Message)
	default:
		fmt.Fprintln(r.Out, err.Error())
	}
}

// Warn renders a warning with the same shape as an error, only the lead
// word and colour differ.
func (r *Reporter) Warn(line, column int, message string) {
	r.render("Warning", line, column, message)
}

func (r *Reporter) render(lead string, line, column int, message string) {
	leadColor := colorRed
	if lead == "Warning" {
		leadColor = colorYellow
	}

	r.colored(leadColor, "%s", lead)
	fmt.Fprintf(r.Out, " at ")
	filename := r.Filename
	if filename == "" {
		filename = "<input>"
	}
	r.colored(colorBold, "%s:%d:%d\n", filename, line, column)

	r.showCodeContext(line, column)

	r.colored(leadColor, "%s\n", message)

	if hint := helpfulHint(message); hint != "" {
		fmt.Fprintln(r.Out)
		r.colored(colorYellow, "Hint: ")
		fmt.Fprintf(r.Out, "%s\n", hint)
	}
	fmt.Fprintln(r.Out)
}

// showCodeContext prints the failing source line with a caret under the
// reported column. Skipped when the source is unavailable or the
// position does not land in it (e.g. runtime errors carry no column).
func (r *Reporter) showCodeContext(line, column int) {
	if line < 1 {
		return
	}
	src, ok := sourceLine(r.Source, line)
	if !ok {
		return
	}
	r.colored(colorCyan, "  %4d | ", line)
	fmt.Fprintf(r.Out, "%s\n", src)
	if column < 1 {
		return
	}
	r.colored(colorCyan, "       | ")
	fmt.Fprintf(r.Out, "%s", strings.Repeat(" ", column-1))
	r.colored(colorRed, "^")
	fmt.Fprintln(r.Out)
}

func (r *Reporter) colored(color, format string, args ...any) {
	if r.Color {
		fmt.Fprint(r.Out, color)
	}
	fmt.Fprintf(r.Out, format, args...)
	if r.Color {
		fmt.Fprint(r.Out, colorReset)
	}
}

// sourceLine returns the 1-based line from source, without its trailing
// newline; ok is false when the line does not exist in the buffer.
func sourceLine(source string, line int) (string, bool) {
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[line-1], "\r"), true
}

// hintTable maps a lowercased message fragment to guidance, matched in
// order so the more specific fragments win.
var hintTable = []struct {
	fragment string
	hint     string
}{
	{"undefined variable", "Make sure the variable is declared before use with 'let'"},
	{"undefined function", "Check if the function is defined or imported"},
	{"type mismatch", "Ensure the types match or add explicit type conversion"},
	{"already defined", "Variable names must be unique within the same scope"},
	{"may be null", "Use null safety operator '?' or check for null before accessing"},
	{"null", "Use null safety operator '?' or check for null before accessing"},
	{"syntax", "Check for missing semicolons, brackets, or parentheses"},
	{"expected", "Check for missing semicolons, brackets, or parentheses"},
	{"must be int or float", "Ensure the types match or add explicit type conversion"},
	{"must be number", "Ensure the types match or add explicit type conversion"},
}

func helpfulHint(message string) string {
	lower := strings.ToLower(message)
	for _, entry := range hintTable {
		if strings.Contains(lower, entry.fragment) {
			return entry.hint
		}
	}
	return ""
}

// Package diag formats compiler diagnostics with source context: a
// file:line:column header, the offending source line, and a caret
// pointing at the column, optionally ANSI-colored for terminal output.
package diag

import (
	"fmt"
	"strings"

	"github.com/minic-lang/minic/internal/token"
)

// Severity distinguishes a hard error from a warning (overload,
// shadowed-member) — both render the same way, only the header differs.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Diagnostic is a single compiler diagnostic: a severity, a short
// category naming which check produced it (e.g. "invalid character",
// "circular inheritance", "type mismatch"), a message, and the source
// position it refers to.
type Diagnostic struct {
	Severity Severity
	Category string
	Message  string
	Source   string
	File     string
	Pos      token.Position
}

// New builds an error-severity diagnostic.
func New(pos token.Position, category, message string) *Diagnostic {
	return &Diagnostic{Severity: Error, Category: category, Message: message, Pos: pos}
}

// NewWarning builds a warning-severity diagnostic.
func NewWarning(pos token.Position, category, message string) *Diagnostic {
	return &Diagnostic{Severity: Warning, Category: category, Message: message, Pos: pos}
}

// WithSource attaches the full source text and file name, enabling
// source-line rendering in Format/FormatWithContext.
func (d *Diagnostic) WithSource(source, file string) *Diagnostic {
	d.Source = source
	d.File = file
	return d
}

func (d *Diagnostic) Error() string { return d.Format(false) }

// Format renders the diagnostic with a one-line source excerpt and caret.
func (d *Diagnostic) Format(color bool) string {
	var sb strings.Builder

	if d.File != "" {
		fmt.Fprintf(&sb, "%s in %s:%d:%d: %s\n", d.Severity, d.File, d.Pos.Line, d.Pos.Column, d.Category)
	} else {
		fmt.Fprintf(&sb, "%s at %d:%d: %s\n", d.Severity, d.Pos.Line, d.Pos.Column, d.Category)
	}

	if line := d.getSourceLine(d.Pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", d.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+max0(d.Pos.Column-1)))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(d.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func (d *Diagnostic) getSourceLine(lineNum int) string {
	if d.Source == "" {
		return ""
	}
	lines := strings.Split(d.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

func (d *Diagnostic) getSourceContext(lineNum, before, after int) []string {
	if d.Source == "" {
		return nil
	}
	lines := strings.Split(d.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return nil
	}
	start := lineNum - before
	if start < 1 {
		start = 1
	}
	end := lineNum + after
	if end > len(lines) {
		end = len(lines)
	}
	return lines[start-1 : end]
}

// FormatWithContext renders the diagnostic with contextLines of source
// before and after the offending line, the offending line highlighted.
func (d *Diagnostic) FormatWithContext(contextLines int, color bool) string {
	ctx := d.getSourceContext(d.Pos.Line, contextLines, contextLines)
	if len(ctx) == 0 {
		return d.Format(color)
	}

	var sb strings.Builder
	if d.File != "" {
		fmt.Fprintf(&sb, "%s in %s:%d:%d: %s\n", d.Severity, d.File, d.Pos.Line, d.Pos.Column, d.Category)
	} else {
		fmt.Fprintf(&sb, "%s at %d:%d: %s\n", d.Severity, d.Pos.Line, d.Pos.Column, d.Category)
	}

	startLine := d.Pos.Line - contextLines
	if startLine < 1 {
		startLine = 1
	}
	for i, line := range ctx {
		currentLine := startLine + i
		lineNumStr := fmt.Sprintf("%4d | ", currentLine)
		if currentLine == d.Pos.Line {
			if color {
				sb.WriteString("\033[1m")
			}
			sb.WriteString(lineNumStr)
			sb.WriteString(line)
			if color {
				sb.WriteString("\033[0m")
			}
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat(" ", len(lineNumStr)+max0(d.Pos.Column-1)))
			if color {
				sb.WriteString("\033[1;31m")
			}
			sb.WriteString("^")
			if color {
				sb.WriteString("\033[0m")
			}
			sb.WriteString("\n")
		} else {
			if color {
				sb.WriteString("\033[2m")
			}
			sb.WriteString(lineNumStr)
			sb.WriteString(line)
			if color {
				sb.WriteString("\033[0m")
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(d.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

// FormatAll renders a whole diagnostic list, numbering entries when
// there's more than one.
func FormatAll(diags []*Diagnostic, color bool) string {
	if len(diags) == 0 {
		return ""
	}
	if len(diags) == 1 {
		return diags[0].Format(color)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d diagnostic(s):\n\n", len(diags))
	for i, d := range diags {
		fmt.Fprintf(&sb, "[%d of %d]\n", i+1, len(diags))
		sb.WriteString(d.Format(color))
		if i < len(diags)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// CountErrors reports how many diagnostics in diags are error-severity
// (as opposed to warnings) — used to decide pipeline success/failure.
func CountErrors(diags []*Diagnostic) int {
	n := 0
	for _, d := range diags {
		if d.Severity == Error {
			n++
		}
	}
	return n
}

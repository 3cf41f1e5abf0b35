package diag

import (
	"strings"
	"testing"

	"github.com/minic-lang/minic/internal/token"
)

func TestFormat_IncludesFileLineAndCaret(t *testing.T) {
	d := New(token.Position{Line: 2, Column: 5}, "type mismatch", "cannot assign Float to Integer").
		WithSource("main {\n  x = 1.0;\n}", "a.mc")
	out := d.Format(false)
	if !strings.Contains(out, "error in a.mc:2:5: type mismatch") {
		t.Errorf("missing header, got %q", out)
	}
	if !strings.Contains(out, "x = 1.0;") {
		t.Errorf("missing source line, got %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("missing caret, got %q", out)
	}
}

func TestFormat_WarningHeaderDiffers(t *testing.T) {
	d := NewWarning(token.Position{Line: 1, Column: 1}, "shadowed member", "field hides a base-class member")
	if !strings.HasPrefix(d.Format(false), "warning at 1:1") {
		t.Errorf("expected a warning header, got %q", d.Format(false))
	}
}

func TestFormat_NoSourceOmitsExcerpt(t *testing.T) {
	d := New(token.Position{Line: 1, Column: 1}, "lexical error", "unexpected character")
	out := d.Format(false)
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected only the header line without a source excerpt, got %q", out)
	}
}

func TestFormatWithContext_IncludesSurroundingLines(t *testing.T) {
	d := New(token.Position{Line: 2, Column: 1}, "type mismatch", "bad").
		WithSource("line1\nline2\nline3", "a.mc")
	out := d.FormatWithContext(1, false)
	for _, want := range []string{"line1", "line2", "line3"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected context to include %q, got %q", want, out)
		}
	}
}

func TestFormatAll_SingleVsMultiple(t *testing.T) {
	one := []*Diagnostic{New(token.Position{Line: 1, Column: 1}, "x", "y")}
	if FormatAll(one, false) != one[0].Format(false) {
		t.Errorf("single-diagnostic FormatAll should match Format directly")
	}

	two := []*Diagnostic{
		New(token.Position{Line: 1, Column: 1}, "a", "first"),
		New(token.Position{Line: 2, Column: 1}, "b", "second"),
	}
	out := FormatAll(two, false)
	if !strings.Contains(out, "2 diagnostic(s)") || !strings.Contains(out, "[1 of 2]") || !strings.Contains(out, "[2 of 2]") {
		t.Errorf("expected numbered entries, got %q", out)
	}
}

func TestCountErrors_IgnoresWarnings(t *testing.T) {
	diags := []*Diagnostic{
		New(token.Position{Line: 1, Column: 1}, "a", "err"),
		NewWarning(token.Position{Line: 1, Column: 1}, "b", "warn"),
		New(token.Position{Line: 1, Column: 1}, "c", "err"),
	}
	if got := CountErrors(diags); got != 2 {
		t.Errorf("CountErrors() = %d, want 2", got)
	}
}

func TestFormatAll_Empty(t *testing.T) {
	if FormatAll(nil, false) != "" {
		t.Errorf("expected empty string for no diagnostics")
	}
}

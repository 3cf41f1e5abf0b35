package driver

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/minic-lang/minic/internal/codegen"
	"github.com/minic-lang/minic/internal/parser"
	"github.com/minic-lang/minic/internal/symbols"
)

// TestGolden_DerivationTrace and TestGolden_Assembly snapshot-test two
// artifacts worth keeping byte-for-byte reproducible across runs: the
// derivation trace and the generated assembly. A diff here means either
// the grammar/parser or the codegen Emit pass changed behavior — update
// the snapshot only when that change was intended.
func TestGolden_DerivationTrace(t *testing.T) {
	const src = "main { var { integer x; } x = 1 + 2; write(x); }"
	result := parser.Parse(src, "golden.mc")
	if !result.Ok {
		t.Fatalf("expected a clean parse, got diagnostics: %v", result.Diagnostics)
	}
	snaps.MatchSnapshot(t, parser.Trace(result.Derivation))
}

func TestGolden_Assembly(t *testing.T) {
	const src = `main {
		var { integer x; integer y; }
		x = 1;
		y = 0;
		while (x) {
			y = y + x;
			x = x - 1;
		};
		write(y);
	}`
	result := parser.Parse(src, "golden.mc")
	if !result.Ok {
		t.Fatalf("expected a clean parse, got diagnostics: %v", result.Diagnostics)
	}
	_, _, defOrder := symbols.Build(result.Root)
	instrs := codegen.Emit(defOrder)

	var sb strings.Builder
	for _, in := range instrs {
		sb.WriteString(in.String())
		sb.WriteString("\n")
	}
	snaps.MatchSnapshot(t, sb.String())
}

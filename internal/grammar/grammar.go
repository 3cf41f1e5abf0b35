package grammar

import "fmt"

func init() {
	validate()
}

// validate panics if any declared non-terminal has no production — a
// programming error in this file, not a condition any input can trigger.
func validate() {
	for nt := NonTerminal(0); nt < numNonTerminals; nt++ {
		if len(byLHS[nt]) == 0 {
			panic(fmt.Sprintf("grammar: non-terminal %s has no productions", nt))
		}
	}
}

// Productions returns every alternative for nt, in declaration order.
func Productions(nt NonTerminal) []*Production { return byLHS[nt] }

// RHS exposes a production's full right-hand side, markers included —
// what the parser pushes onto its stack (in reverse) when it applies p.
func RHS(p *Production) []Sym { return p.RHS }

package grammar

import (
	"fmt"

	"github.com/minic-lang/minic/internal/token"
)

// byLHS groups every production by its left-hand non-terminal.
var byLHS = func() map[NonTerminal][]*Production {
	m := make(map[NonTerminal][]*Production, numNonTerminals)
	for i := range prods {
		p := &prods[i]
		m[p.LHS] = append(m[p.LHS], p)
	}
	return m
}()

// nullable[nt] holds iff nt can derive the empty string.
var nullable map[NonTerminal]bool

// first[nt] is the set of terminal kinds that can begin a derivation of nt.
var first map[NonTerminal]map[token.Kind]bool

// follow[nt] is the set of terminal kinds that can immediately follow nt
// in some derivation from Prog. EOF stands in for "$", the end-of-input
// marker, for non-terminals that can end the program.
var follow map[NonTerminal]map[token.Kind]bool

type tableKey struct {
	nt   NonTerminal
	term token.Kind
}

// Table maps (non-terminal, lookahead) to the production to apply. Built
// once at init and treated as immutable thereafter.
var Table map[tableKey]*Production

func init() {
	computeNullable()
	computeFirst()
	computeFollow()
	buildTable()
}

func computeNullable() {
	nullable = make(map[NonTerminal]bool, numNonTerminals)
	for changed := true; changed; {
		changed = false
		for nt, alts := range byLHS {
			if nullable[nt] {
				continue
			}
			for _, p := range alts {
				if rhsNullable(stripActions(p.RHS)) {
					nullable[nt] = true
					changed = true
					break
				}
			}
		}
	}
}

func rhsNullable(rhs []Sym) bool {
	for _, s := range rhs {
		switch {
		case s.IsEpsilon():
			continue
		case s.IsTerminal():
			return false
		case s.IsNonTerminal():
			if !nullable[s.NonTerminal()] {
				return false
			}
		}
	}
	return true
}

func computeFirst() {
	first = make(map[NonTerminal]map[token.Kind]bool, numNonTerminals)
	for nt := NonTerminal(0); nt < numNonTerminals; nt++ {
		first[nt] = make(map[token.Kind]bool)
	}
	for changed := true; changed; {
		changed = false
		for nt, alts := range byLHS {
			for _, p := range alts {
				if addFirstOf(first[nt], stripActions(p.RHS)) {
					changed = true
				}
			}
		}
	}
}

// addFirstOf adds FIRST(rhs) into dst, returning whether dst grew.
func addFirstOf(dst map[token.Kind]bool, rhs []Sym) bool {
	changed := false
	for _, s := range rhs {
		if s.IsEpsilon() {
			continue
		}
		if s.IsTerminal() {
			if !dst[s.Terminal()] {
				dst[s.Terminal()] = true
				changed = true
			}
			return changed
		}
		// non-terminal
		for t := range first[s.NonTerminal()] {
			if !dst[t] {
				dst[t] = true
				changed = true
			}
		}
		if !nullable[s.NonTerminal()] {
			return changed
		}
	}
	return changed
}

func computeFollow() {
	follow = make(map[NonTerminal]map[token.Kind]bool, numNonTerminals)
	for nt := NonTerminal(0); nt < numNonTerminals; nt++ {
		follow[nt] = make(map[token.Kind]bool)
	}
	follow[Prog][token.EOF] = true

	for changed := true; changed; {
		changed = false
		for _, p := range prods {
			rhs := stripActions(p.RHS)
			for i, s := range rhs {
				if !s.IsNonTerminal() {
					continue
				}
				b := s.NonTerminal()
				rest := rhs[i+1:]
				firstRest := make(map[token.Kind]bool)
				addFirstOf(firstRest, rest)
				for t := range firstRest {
					if !follow[b][t] {
						follow[b][t] = true
						changed = true
					}
				}
				if rhsNullable(rest) {
					for t := range follow[p.LHS] {
						if !follow[b][t] {
							follow[b][t] = true
							changed = true
						}
					}
				}
			}
		}
	}
}

func buildTable() {
	Table = make(map[tableKey]*Production)
	for i := range prods {
		p := &prods[i]
		rhs := stripActions(p.RHS)
		firstSet := make(map[token.Kind]bool)
		addFirstOf(firstSet, rhs)
		for t := range firstSet {
			setTableEntry(p.LHS, t, p)
		}
		if rhsNullable(rhs) {
			for t := range follow[p.LHS] {
				setTableEntry(p.LHS, t, p)
			}
		}
	}
}

func setTableEntry(nt NonTerminal, t token.Kind, p *Production) {
	key := tableKey{nt, t}
	if existing, ok := Table[key]; ok && existing != p {
		panic(fmt.Sprintf("grammar: LL(1) conflict at (%s, %s) between %v and %v", nt, t, existing.RHS, p.RHS))
	}
	Table[key] = p
}

// First returns a copy of FIRST(nt).
func First(nt NonTerminal) map[token.Kind]bool { return copySet(first[nt]) }

// Follow returns a copy of FOLLOW(nt).
func Follow(nt NonTerminal) map[token.Kind]bool { return copySet(follow[nt]) }

// Nullable reports whether nt can derive the empty string.
func Nullable(nt NonTerminal) bool { return nullable[nt] }

func copySet(m map[token.Kind]bool) map[token.Kind]bool {
	out := make(map[token.Kind]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Lookup returns the production to apply for (nt, lookahead), or nil if
// the table has no entry (a syntax error the parser's recovery handles).
func Lookup(nt NonTerminal, lookahead token.Kind) *Production {
	return Table[tableKey{nt, lookahead}]
}

// Start is the grammar's start non-terminal.
const Start = Prog

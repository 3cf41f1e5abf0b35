package token

import "fmt"

// Position is a 1-based line/column pair. Column rides along for
// diagnostic quality over and above the bare line number the token
// log format requires.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical unit: a kind, the exact matched lexeme, and
// the position where it starts. Error tokens additionally carry an
// ErrorKind classifying the lexical failure.
type Token struct {
	Kind      Kind
	Lexeme    string
	Pos       Position
	ErrorKind ErrorKind
}

// Line exposes the 1-based source line, the minimum a token log entry
// needs (Position.Column is an enrichment beyond that).
func (t Token) Line() int { return t.Pos.Line }

func (t Token) String() string {
	if t.Kind == ILLEGAL {
		return fmt.Sprintf("Error(%s) %q @%s", t.ErrorKind, t.Lexeme, t.Pos)
	}
	return fmt.Sprintf("%s %q @%s", t.Kind, t.Lexeme, t.Pos)
}

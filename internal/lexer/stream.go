package lexer

import "github.com/minic-lang/minic/internal/token"

// TokenizeAll drains the lexer to EOF, returning every token including
// comments and ILLEGAL tokens in lexical order. It is the primitive the
// token/error log writers and the "lex" debug subcommand use; the
// parser instead pulls tokens one at a time via NextToken.
func TokenizeAll(src string) []token.Token {
	l := New(src)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

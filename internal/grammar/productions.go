package grammar

import (
	"github.com/minic-lang/minic/internal/ast"
	"github.com/minic-lang/minic/internal/token"
)

// prods is the complete production list. Every non-terminal's alternatives
// appear together; FIRST/FOLLOW and the (non-terminal, terminal) parsing
// table are derived from this list at init (see firstfollow.go) rather
// than transcribed by hand.
var prods = []Production{
	// Prog -> (ClassDecl)* (FuncDef)* 'main' FuncBody
	// main is given a synthetic 3-child FuncHead (Name, empty Params,
	// empty/void ReturnType) so it shares FuncDef's shape with every
	// other function definition.
	{Prog, seq().
		Root(ast.Program).
		N(ReptProg0).
		N(ReptProg1).
		Root(ast.FuncDef).
		Root(ast.FuncHead).
		Leaf(token.MAIN).Add().
		Root(ast.MemberList).Add().
		Empty().Add().
		Add().
		N(FuncBody).Add().
		Add().
		RHS()},

	{ReptProg0, seq().N(ClassDecl).Add().N(ReptProg0).RHS()},
	{ReptProg0, seq().Eps().RHS()},

	{ReptProg1, seq().N(FuncDef).Add().N(ReptProg1).RHS()},
	{ReptProg1, seq().Eps().RHS()},

	// ClassDecl -> 'class' Id [OptClassDecl] '{' ReptClassBody '}' ';'
	{ClassDecl, seq().
		Root(ast.ClassDecl).
		T(token.CLASS).
		Leaf(token.IDENT).Add().
		Root(ast.InheritList).N(OptClassDecl).Add().
		T(token.LBRACE).
		Root(ast.MemberList).N(ReptClassBody).Add().
		T(token.RBRACE).
		T(token.SEMI).
		RHS()},

	{OptClassDecl, seq().T(token.INHERITS).Leaf(token.IDENT).Add().N(ReptOptClassDecl).RHS()},
	{OptClassDecl, seq().Eps().RHS()},

	{ReptOptClassDecl, seq().T(token.COMMA).Leaf(token.IDENT).Add().N(ReptOptClassDecl).RHS()},
	{ReptOptClassDecl, seq().Eps().RHS()},

	// ReptClassBody -> (Visibility ':' | MemberDecl)*
	// Visibility markers are consumed but carry no node: the symbol table
	// model has no access-control field to attach them to.
	{ReptClassBody, seq().N(Visibility).T(token.COLON).N(ReptClassBody).RHS()},
	// MemberDecl already attaches its VarDecl/FuncHead child directly onto
	// the MemberList node sitting below it (see MemberDecl's own
	// productions) — ClassDecl's own trailing .Add() (above) is the single
	// correct consumption of that MemberList once this whole repetition is
	// done, so no .Add() belongs here.
	{ReptClassBody, seq().N(MemberDecl).N(ReptClassBody).RHS()},
	{ReptClassBody, seq().Eps().RHS()},

	{Visibility, seq().T(token.PUBLIC).RHS()},
	{Visibility, seq().T(token.PRIVATE).RHS()},

	// MemberDecl -> VarDecl ';' | FuncDecl
	{MemberDecl, seq().N(VarDecl).Add().T(token.SEMI).RHS()},
	// FuncDecl's own .Add() (below) already attaches the FuncHead node
	// onto the enclosing MemberList directly, so MemberDecl must not add
	// it again.
	{MemberDecl, seq().N(FuncDecl).RHS()},

	// FuncDecl -> FuncHead ';'  (member-function declaration, no body)
	{FuncDecl, seq().N(FuncHead).Add().T(token.SEMI).RHS()},

	// FuncDef -> FuncHead FuncBody
	{FuncDef, seq().Root(ast.FuncDef).N(FuncHead).Add().N(FuncBody).Add().RHS()},

	// FuncHead -> 'func' Id FuncHeadAmb1
	// FuncHeadAmb1 disambiguates a plain header from a Class::name header
	// on the token *after* the shared leading identifier: '(' means the
	// identifier just read was the function's own name (3-child FuncHead:
	// Name, Params, ReturnType); '::' means it was a class qualifier,
	// and a second identifier supplies the name (4-child FuncHead:
	// Qualifier, Name, Params, ReturnType).
	{FuncHead, seq().Root(ast.FuncHead).T(token.FUNC).Leaf(token.IDENT).N(FuncHeadAmb1).RHS()},

	{FuncHeadAmb1, seq().
		T(token.LPAREN).Add().
		Root(ast.MemberList).N(FuncParams).Add().
		T(token.RPAREN).
		T(token.COLON).
		N(ReturnType).Add().
		RHS()},
	{FuncHeadAmb1, seq().
		T(token.DCOLON).Add().
		Leaf(token.IDENT).Add().
		T(token.LPAREN).
		Root(ast.MemberList).N(FuncParams).Add().
		T(token.RPAREN).
		T(token.COLON).
		N(ReturnType).Add().
		RHS()},

	// FuncParams -> (VarDecl (',' VarDecl)*)?  — always leaves the
	// MemberList pushed by the caller populated with 0+ VarDecl children.
	{FuncParams, seq().N(VarDecl).Add().N(ReptFuncParamsTail).RHS()},
	{FuncParams, seq().Eps().RHS()},

	{ReptFuncParamsTail, seq().T(token.COMMA).N(VarDecl).Add().N(ReptFuncParamsTail).RHS()},
	{ReptFuncParamsTail, seq().Eps().RHS()},

	// ArraySize -> '[' IntegerLit ']'
	// Deliberately no empty-brackets alternative: an ArraySize node always
	// carries a literal dimension, so types.ToArrayType never sees an
	// empty dimension list (see DESIGN.md).
	{ArraySize, seq().T(token.LBRACK).Leaf(token.INTLIT).Add().T(token.RBRACK).RHS()},

	// ArraySize attaches its literal directly onto the VarDecl node already
	// on top (its own internal .Add() — see above), so this repetition
	// must not .Add() again: there is nothing left on top to consume
	// until VarDecl itself is done and its caller adds it.
	{ReptArraySize, seq().N(ArraySize).N(ReptArraySize).RHS()},
	{ReptArraySize, seq().Eps().RHS()},

	// Type -> integer | float | string | Id (class-typed)
	{Type, seq().Leaf(token.INTEGER).RHS()},
	{Type, seq().Leaf(token.FLOAT).RHS()},
	{Type, seq().Leaf(token.STRINGKW).RHS()},
	{Type, seq().Leaf(token.IDENT).RHS()},

	// ReturnType -> Type | void
	{ReturnType, seq().Leaf(token.INTEGER).RHS()},
	{ReturnType, seq().Leaf(token.FLOAT).RHS()},
	{ReturnType, seq().Leaf(token.STRINGKW).RHS()},
	{ReturnType, seq().Leaf(token.IDENT).RHS()},
	{ReturnType, seq().Leaf(token.VOID).RHS()},

	// VarDecl -> Type Id ('[' IntegerLit ']')*
	{VarDecl, seq().
		Root(ast.VarDecl).
		N(Type).Add().
		Leaf(token.IDENT).Add().
		N(ReptArraySize).
		RHS()},

	// FuncBody -> '{' OptVarBlock (Statement)* '}'
	{FuncBody, seq().
		Root(ast.FuncBody).
		T(token.LBRACE).
		N(OptVarBlock).Add().
		N(ReptStatement).
		T(token.RBRACE).
		RHS()},

	// OptVarBlock -> 'var' '{' (VarDecl ';')* '}' | ε
	{OptVarBlock, seq().
		T(token.VAR).
		T(token.LBRACE).
		Root(ast.MemberList).
		N(ReptVarDeclInBlock).
		T(token.RBRACE).
		RHS()},
	{OptVarBlock, seq().Eps().Empty().RHS()},

	{ReptVarDeclInBlock, seq().N(VarDecl).Add().T(token.SEMI).N(ReptVarDeclInBlock).RHS()},
	{ReptVarDeclInBlock, seq().Eps().RHS()},

	{ReptStatement, seq().N(Statement).Add().N(ReptStatement).RHS()},
	{ReptStatement, seq().Eps().RHS()},

	// Statement dispatches purely on its leading keyword/identifier.
	{Statement, seq().N(IfStmt).RHS()},
	{Statement, seq().N(WhileStmt).RHS()},
	{Statement, seq().N(ReadStmt).RHS()},
	{Statement, seq().N(WriteStmt).RHS()},
	{Statement, seq().N(ReturnStmt).RHS()},
	{Statement, seq().N(BreakStmt).RHS()},
	{Statement, seq().N(ContinueStmt).RHS()},
	{Statement, seq().N(AssignOrCallStmt).T(token.SEMI).RHS()},

	// StatBlock -> '{' (Statement)* '}' | Statement
	// Always yields a GenericStmt wrapper so then/else/while bodies have a
	// uniform shape regardless of whether braces were written.
	{StatBlock, seq().Root(ast.GenericStmt).T(token.LBRACE).N(ReptStatement).T(token.RBRACE).RHS()},
	{StatBlock, seq().Root(ast.GenericStmt).N(Statement).Add().RHS()},

	{IfStmt, seq().
		Root(ast.IfStmt).
		T(token.IF).T(token.LPAREN).N(Expr).Add().T(token.RPAREN).
		T(token.THEN).N(StatBlock).Add().
		T(token.ELSE).N(StatBlock).Add().
		T(token.SEMI).
		RHS()},

	{WhileStmt, seq().
		Root(ast.WhileStmt).
		T(token.WHILE).T(token.LPAREN).N(Expr).Add().T(token.RPAREN).
		N(StatBlock).Add().
		T(token.SEMI).
		RHS()},

	{ReadStmt, seq().
		Root(ast.ReadStmt).
		T(token.READ).T(token.LPAREN).N(Factor).Add().T(token.RPAREN).
		T(token.SEMI).
		RHS()},

	{WriteStmt, seq().
		Root(ast.WriteStmt).
		T(token.WRITE).T(token.LPAREN).N(Expr).Add().T(token.RPAREN).
		T(token.SEMI).
		RHS()},

	{ReturnStmt, seq().
		Root(ast.ReturnStmt).
		T(token.RETURN).T(token.LPAREN).N(Expr).Add().T(token.RPAREN).
		T(token.SEMI).
		RHS()},

	{BreakStmt, seq().Root(ast.BreakStmt).Leaf(token.BREAK).Add().T(token.SEMI).RHS()},
	{ContinueStmt, seq().Root(ast.ContinueStmt).Leaf(token.CONTINUE).Add().T(token.SEMI).RHS()},

	// AssignOrCallStmt -> Factor ('=' Expr)?
	// A bare Factor (already a full designator/call chain — see Factor
	// below) is a valid statement on its own (a call); '=' turns it into
	// an assignment. Whether the Factor is actually a valid call or a
	// valid assignment target is a semantic question (C7), not a
	// syntactic one.
	{AssignOrCallStmt, seq().N(Factor).N(AssignOrCallTail).RHS()},
	// '=' is pushed as a leaf (not consumed by a bare T()) so it flows
	// through the same MakeRelativeOperation convention as every other
	// binary/postfix combinator: by the time Rel() fires the stack reads
	// [rhsExpr, assignLeaf, lhsFactor], and relOpKind[ASSIGN] = Assignment.
	{AssignOrCallTail, seq().Leaf(token.ASSIGN).N(Expr).Rel().RHS()},
	{AssignOrCallTail, seq().Eps().RHS()},

	// Expr -> ArithExpr (RelOp ArithExpr)?
	{Expr, seq().N(ArithExpr).N(ExprTail).RHS()},
	{ExprTail, seq().Leaf(token.EQ).N(ArithExpr).Rel().RHS()},
	{ExprTail, seq().Leaf(token.NOTEQ).N(ArithExpr).Rel().RHS()},
	{ExprTail, seq().Leaf(token.LT).N(ArithExpr).Rel().RHS()},
	{ExprTail, seq().Leaf(token.GT).N(ArithExpr).Rel().RHS()},
	{ExprTail, seq().Leaf(token.LTEQ).N(ArithExpr).Rel().RHS()},
	{ExprTail, seq().Leaf(token.GTEQ).N(ArithExpr).Rel().RHS()},
	{ExprTail, seq().Eps().RHS()},

	// ArithExpr -> Term (('+' | '-' | '|') Term)*
	{ArithExpr, seq().N(Term).N(ArithTail).RHS()},
	{ArithTail, seq().Leaf(token.PLUS).N(Term).Rel().N(ArithTail).RHS()},
	{ArithTail, seq().Leaf(token.MINUS).N(Term).Rel().N(ArithTail).RHS()},
	{ArithTail, seq().Leaf(token.PIPE).N(Term).Rel().N(ArithTail).RHS()},
	{ArithTail, seq().Eps().RHS()},

	// Term -> Factor (('*' | '/' | '&') Factor)*
	{Term, seq().N(Factor).N(TermTail).RHS()},
	{TermTail, seq().Leaf(token.STAR).N(Factor).Rel().N(TermTail).RHS()},
	{TermTail, seq().Leaf(token.SLASH).N(Factor).Rel().N(TermTail).RHS()},
	{TermTail, seq().Leaf(token.AMP).N(Factor).Rel().N(TermTail).RHS()},
	{TermTail, seq().Eps().RHS()},

	// Factor -> Id FactorTail
	//        | '(' Expr ')'
	//        | ('+'|'-') Factor               (SignedFactor)
	//        | '!' Factor                     (Negation)
	//        | '?' '[' Expr ':' Expr ':' Expr ']'   (TernaryOp)
	//        | StringLit | FloatLit | IntegerLit
	{Factor, seq().Leaf(token.IDENT).N(FactorTail).RHS()},
	{Factor, seq().T(token.LPAREN).N(Expr).T(token.RPAREN).RHS()},
	{Factor, seq().Root(ast.SignedFactor).Leaf(token.PLUS).Add().N(Factor).Add().RHS()},
	{Factor, seq().Root(ast.SignedFactor).Leaf(token.MINUS).Add().N(Factor).Add().RHS()},
	{Factor, seq().Root(ast.Negation).T(token.BANG).N(Factor).Add().RHS()},
	{Factor, seq().
		Root(ast.TernaryOp).
		T(token.QUESTION).T(token.LBRACK).
		N(Expr).Add().T(token.COLON).
		N(Expr).Add().T(token.COLON).
		N(Expr).Add().
		T(token.RBRACK).
		RHS()},
	{Factor, seq().Leaf(token.STRINGLIT).RHS()},
	{Factor, seq().Leaf(token.FLOATLIT).RHS()},
	{Factor, seq().Leaf(token.INTLIT).RHS()},

	// FactorTail folds array indexing, member access, and call application
	// into one left-factored postfix repetition; every alternative ends by
	// recursing so chains like `a[1].b(x).c` parse in one pass.
	{FactorTail, seq().Leaf(token.LBRACK).N(Expr).Rel().T(token.RBRACK).N(FactorTail).RHS()},
	{FactorTail, seq().Leaf(token.DOT).Leaf(token.IDENT).Rel().N(FactorTail).RHS()},
	{FactorTail, seq().Leaf(token.LPAREN).N(Params).Rel().T(token.RPAREN).N(FactorTail).RHS()},
	{FactorTail, seq().Eps().RHS()},

	// Params -> (Expr (',' Expr)*)?  — call-site argument list.
	{Params, seq().Root(ast.MemberList).N(ParamsBody).RHS()},
	{ParamsBody, seq().N(Expr).Add().N(ReptParams).RHS()},
	{ParamsBody, seq().Eps().RHS()},
	{ReptParams, seq().T(token.COMMA).N(Expr).Add().N(ReptParams).RHS()},
	{ReptParams, seq().Eps().RHS()},
}

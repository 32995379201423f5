package parser

// This file holds the concrete parse tree participle builds. It is
// deliberately kept separate from ast: nothing here is exported beyond
// what buildSeq/Parse need, and none of it is shared with the rest of the
// module — the grammar is this package's private business.

// program is the grammar's entry point.
type program struct {
	Seq *seqExpr `@@`
}

// seqExpr is a semicolon-separated sequence; a single item collapses to
// that item in buildSeq rather than being wrapped in a Stmt node.
type seqExpr struct {
	Items []*item `@@ (";" @@)*`
}

// item is one alternative of the expression grammar. Every alternative
// starts with a distinct token, so the parser never needs to look past
// the first token to pick one.
type item struct {
	Let    *letExpr    `  @@`
	If     *ifExpr     `| @@`
	Return *returnExpr `| @@`
	Lambda *lambdaExpr `| @@`
	App    *appExpr    `| @@`
}

// letExpr covers both let forms. They share the "let" keyword, so the
// split happens on the token after it ("rec" vs an identifier) rather
// than in the top-level alternation, which only looks one token ahead.
type letExpr struct {
	Rec   *letRecTail   `"let" (@@`
	Plain *letPlainTail `| @@)`
}

type letPlainTail struct {
	Name string   `@Ident "="`
	Bind *seqExpr `@@ "in"`
	Body *seqExpr `@@`
}

type binding struct {
	Name string   `@Ident "="`
	Expr *seqExpr `@@`
}

type letRecTail struct {
	First *binding   `"rec" @@`
	Rest  []*binding `("," @@)*`
	Body  *seqExpr   `"in" @@`
}

type ifExpr struct {
	Cond *seqExpr `"if" @@`
	Then *seqExpr `"then" @@`
	Else *seqExpr `"else" @@`
}

type returnExpr struct {
	Value *seqExpr `"return" @@?`
}

type lambdaExpr struct {
	Param string   `"fn" @Ident "=>"`
	Body  *seqExpr `@@`
}

// appExpr is one or more juxtaposed atoms, folded left-associatively
// into nested single-argument applications by Build.
type appExpr struct {
	Atoms []*atom `@@+`
}

type atom struct {
	Int   *int     `  @Int`
	Bool  *string  `| @("true" | "false")`
	Str   *string  `| @String`
	Ident *string  `| @Ident`
	Paren *seqExpr `| "(" @@ ")"`
}

package parser

import (
	"testing"

	"github.com/chuigda/hmlang/ast"
)

func TestParseLiterals(t *testing.T) {
	cases := map[string]string{
		"42":     "42",
		"true":   "true",
		"false":  "false",
		`"hi"`:   `"hi"`,
		"x":      "x",
	}
	for src, want := range cases {
		got, err := Parse(src)
		if err != nil {
			t.Fatalf("Parse(%q): %v", src, err)
		}
		if got.String() != want {
			t.Fatalf("Parse(%q).String() = %q, want %q", src, got.String(), want)
		}
	}
}

func TestParseStringLiteralUnescapesQuotesAndBackslashes(t *testing.T) {
	got, err := Parse(`"say \"hi\" then \\ it"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lit, ok := got.(*ast.LitStr)
	if !ok {
		t.Fatalf("expected *ast.LitStr, got %T", got)
	}
	want := `say "hi" then \ it`
	if lit.Value != want {
		t.Fatalf("lit.Value = %q, want %q", lit.Value, want)
	}
}

func TestParseJuxtapositionCurries(t *testing.T) {
	got, err := Parse("f x y")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	app, ok := got.(*ast.App)
	if !ok {
		t.Fatalf("expected *ast.App at the top, got %T", got)
	}
	inner, ok := app.Fn.(*ast.App)
	if !ok {
		t.Fatalf("expected nested App for the curried form, got %T", app.Fn)
	}
	if inner.Fn.(*ast.Var).Name != "f" || inner.Arg.(*ast.Var).Name != "x" || app.Arg.(*ast.Var).Name != "y" {
		t.Fatalf("unexpected curry shape: %s", got)
	}
}

func TestParseLambda(t *testing.T) {
	got, err := Parse("fn x => x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	abs, ok := got.(*ast.Abs)
	if !ok {
		t.Fatalf("expected *ast.Abs, got %T", got)
	}
	if abs.Param != "x" {
		t.Fatalf("expected param x, got %s", abs.Param)
	}
}

func TestParseLetAndLetRecDisambiguate(t *testing.T) {
	let, err := Parse("let x = 1 in x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := let.(*ast.Let); !ok {
		t.Fatalf("expected *ast.Let, got %T", let)
	}

	letRec, err := Parse("let rec f = fn x => x, g = f in g")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lr, ok := letRec.(*ast.LetRec)
	if !ok {
		t.Fatalf("expected *ast.LetRec, got %T", letRec)
	}
	if len(lr.Decls) != 2 || lr.Decls[0].Name != "f" || lr.Decls[1].Name != "g" {
		t.Fatalf("unexpected decls: %+v", lr.Decls)
	}
}

func TestParseIf(t *testing.T) {
	got, err := Parse("if true then 1 else 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := got.(*ast.If); !ok {
		t.Fatalf("expected *ast.If, got %T", got)
	}
}

func TestParseReturnWithAndWithoutValue(t *testing.T) {
	bare, err := Parse("return")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, ok := bare.(*ast.Return)
	if !ok || r.Value != nil {
		t.Fatalf("expected a valueless return, got %#v", bare)
	}

	withVal, err := Parse("return 42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r2, ok := withVal.(*ast.Return)
	if !ok || r2.Value == nil {
		t.Fatalf("expected a return with a value, got %#v", withVal)
	}
}

func TestParseSequenceCollapsesSingleton(t *testing.T) {
	got, err := Parse("(42)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := got.(*ast.LitInt); !ok {
		t.Fatalf("expected a parenthesized singleton to collapse to *ast.LitInt, got %T", got)
	}
}

func TestParseSequenceOfMultipleStatements(t *testing.T) {
	got, err := Parse("1; 2; 3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stmt, ok := got.(*ast.Stmt)
	if !ok || len(stmt.Exprs) != 3 {
		t.Fatalf("expected a 3-element Stmt, got %#v", got)
	}
}

func TestParseLetRecRejectsDuplicateNames(t *testing.T) {
	if _, err := Parse("let rec f = fn x => x, f = fn y => y in f"); err == nil {
		t.Fatalf("expected duplicate let rec names to be rejected")
	}
}

func TestParseKeywordPrefixIdentifierNotMisparsed(t *testing.T) {
	got, err := Parse("letter")
	if err != nil {
		t.Fatalf("unexpected error parsing an identifier starting with a keyword prefix: %v", err)
	}
	v, ok := got.(*ast.Var)
	if !ok || v.Name != "letter" {
		t.Fatalf("expected Var(letter), got %#v", got)
	}
}

package ast

import "testing"

func TestAppStringCurries(t *testing.T) {
	e := &App{Fn: &App{Fn: &Var{Name: "f"}, Arg: &Var{Name: "x"}}, Arg: &Var{Name: "y"}}
	if got, want := e.String(), "((f x) y)"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestLetRecStringJoinsDeclsWithCommas(t *testing.T) {
	e := &LetRec{
		Decls: []Binding{
			{Name: "f", Expr: &Var{Name: "g"}},
			{Name: "g", Expr: &Var{Name: "f"}},
		},
		Body: &Var{Name: "f"},
	}
	if got, want := e.String(), "let rec f = g, g = f in f"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestReturnStringWithAndWithoutValue(t *testing.T) {
	bare := &Return{}
	if got, want := bare.String(), "return"; got != want {
		t.Fatalf("bare Return.String() = %q, want %q", got, want)
	}
	withVal := &Return{Value: &LitInt{Value: 42}}
	if got, want := withVal.String(), "return 42"; got != want {
		t.Fatalf("Return.String() = %q, want %q", got, want)
	}
}

func TestStmtStringJoinsWithSemicolons(t *testing.T) {
	e := &Stmt{Exprs: []Expr{&LitInt{Value: 1}, &LitInt{Value: 2}, &LitInt{Value: 3}}}
	if got, want := e.String(), "1; 2; 3"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestLitStrStringQuotesAndEscapes(t *testing.T) {
	e := &LitStr{Value: `say "hi"`}
	if got, want := e.String(), `"say \"hi\""`; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

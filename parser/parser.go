// Package parser turns source text into ast.Expr values. It owns the
// concrete grammar (via participle/v2) entirely on its own; ast stays
// ignorant of how its values get built, the same separation the
// language's collaborator boundary calls for.
package parser

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/chuigda/hmlang/ast"
)

// Lexer defines the lexical rules for the surface language. Keyword
// rules come before Ident so that e.g. "let" never tokenizes as the
// start of an identifier; word-boundary anchors keep them from matching
// a prefix of a longer identifier such as "letter".
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "LetKw", Pattern: `let\b`},
	{Name: "RecKw", Pattern: `rec\b`},
	{Name: "InKw", Pattern: `in\b`},
	{Name: "IfKw", Pattern: `if\b`},
	{Name: "ThenKw", Pattern: `then\b`},
	{Name: "ElseKw", Pattern: `else\b`},
	{Name: "FnKw", Pattern: `fn\b`},
	{Name: "ReturnKw", Pattern: `return\b`},
	{Name: "True", Pattern: `true\b`},
	{Name: "False", Pattern: `false\b`},
	{Name: "Arrow", Pattern: `=>`},
	{Name: "Assign", Pattern: `=`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Semicolon", Pattern: `;`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var langParser = participle.MustBuild[program](
	participle.Lexer(Lexer),
	participle.Elide("Whitespace", "Comment"),
)

// Parse parses source text into an ast.Expr.
func Parse(source string) (ast.Expr, error) {
	p, err := langParser.ParseString("", source)
	if err != nil {
		return nil, err
	}
	expr := buildSeq(p.Seq)
	if err := validate(expr); err != nil {
		return nil, err
	}
	return expr, nil
}

// validate enforces the part of the engine's input contract the grammar
// alone cannot: names within one let rec group are pairwise distinct.
func validate(e ast.Expr) error {
	switch n := e.(type) {
	case *ast.Abs:
		return validate(n.Body)
	case *ast.App:
		if err := validate(n.Fn); err != nil {
			return err
		}
		return validate(n.Arg)
	case *ast.Let:
		if err := validate(n.Bind); err != nil {
			return err
		}
		return validate(n.Body)
	case *ast.LetRec:
		seen := map[string]bool{}
		for _, d := range n.Decls {
			if seen[d.Name] {
				return fmt.Errorf("duplicate name %q in let rec", d.Name)
			}
			seen[d.Name] = true
			if err := validate(d.Expr); err != nil {
				return err
			}
		}
		return validate(n.Body)
	case *ast.If:
		if err := validate(n.Cond); err != nil {
			return err
		}
		if err := validate(n.Then); err != nil {
			return err
		}
		return validate(n.Else)
	case *ast.Stmt:
		for _, sub := range n.Exprs {
			if err := validate(sub); err != nil {
				return err
			}
		}
		return nil
	case *ast.Return:
		if n.Value != nil {
			return validate(n.Value)
		}
		return nil
	default:
		return nil
	}
}

func buildSeq(s *seqExpr) ast.Expr {
	exprs := make([]ast.Expr, len(s.Items))
	for i, it := range s.Items {
		exprs[i] = buildItem(it)
	}
	if len(exprs) == 1 {
		return exprs[0]
	}
	return &ast.Stmt{Exprs: exprs}
}

func buildItem(it *item) ast.Expr {
	switch {
	case it.Let != nil:
		return buildLet(it.Let)
	case it.If != nil:
		return buildIf(it.If)
	case it.Return != nil:
		return buildReturn(it.Return)
	case it.Lambda != nil:
		return buildLambda(it.Lambda)
	case it.App != nil:
		return buildApp(it.App)
	default:
		panic("parser: item with no alternative populated")
	}
}

func buildLet(l *letExpr) ast.Expr {
	if l.Rec != nil {
		rec := l.Rec
		decls := make([]ast.Binding, 0, len(rec.Rest)+1)
		decls = append(decls, ast.Binding{Name: rec.First.Name, Expr: buildSeq(rec.First.Expr)})
		for _, b := range rec.Rest {
			decls = append(decls, ast.Binding{Name: b.Name, Expr: buildSeq(b.Expr)})
		}
		return &ast.LetRec{Decls: decls, Body: buildSeq(rec.Body)}
	}
	p := l.Plain
	return &ast.Let{Name: p.Name, Bind: buildSeq(p.Bind), Body: buildSeq(p.Body)}
}

func buildIf(i *ifExpr) ast.Expr {
	return &ast.If{Cond: buildSeq(i.Cond), Then: buildSeq(i.Then), Else: buildSeq(i.Else)}
}

func buildReturn(r *returnExpr) ast.Expr {
	if r.Value == nil {
		return &ast.Return{}
	}
	return &ast.Return{Value: buildSeq(r.Value)}
}

func buildLambda(l *lambdaExpr) ast.Expr {
	return &ast.Abs{Param: l.Param, Body: buildSeq(l.Body)}
}

// buildApp folds juxtaposed atoms left-associatively:
// f x y becomes App{App{f, x}, y}.
func buildApp(a *appExpr) ast.Expr {
	result := buildAtom(a.Atoms[0])
	for _, next := range a.Atoms[1:] {
		result = &ast.App{Fn: result, Arg: buildAtom(next)}
	}
	return result
}

// unquoteStr strips the surrounding quotes the String lexer rule
// captured and resolves \" and \\ escapes. The lexer only ever
// produces well-formed quoted text, so this never sees a dangling
// backslash.
func unquoteStr(raw string) string {
	inner := raw[1 : len(raw)-1]
	var b strings.Builder
	b.Grow(len(inner))
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c == '\\' && i+1 < len(inner) {
			i++
			c = inner[i]
		}
		b.WriteByte(c)
	}
	return b.String()
}

func buildAtom(a *atom) ast.Expr {
	switch {
	case a.Int != nil:
		return &ast.LitInt{Value: *a.Int}
	case a.Bool != nil:
		return &ast.LitBool{Value: *a.Bool == "true"}
	case a.Str != nil:
		return &ast.LitStr{Value: unquoteStr(*a.Str)}
	case a.Ident != nil:
		return &ast.Var{Name: *a.Ident}
	case a.Paren != nil:
		return buildSeq(a.Paren)
	default:
		panic("parser: atom with no alternative populated")
	}
}

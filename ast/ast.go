// Package ast is the pure expression data model the engine infers over.
// It carries no parser annotations of any kind: the parser package owns
// the concrete grammar and is responsible for building these values.
package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Expr is the sealed expression variant.
type Expr interface {
	String() string
	sealedExpression()
}

// LitInt is an integer literal.
type LitInt struct {
	Value int
}

func (e *LitInt) sealedExpression() {}
func (e *LitInt) String() string    { return strconv.Itoa(e.Value) }

// LitBool is a boolean literal.
type LitBool struct {
	Value bool
}

func (e *LitBool) sealedExpression() {}
func (e *LitBool) String() string    { return strconv.FormatBool(e.Value) }

// LitStr is a string literal. Value holds the decoded contents, with any
// source-level escapes already resolved.
type LitStr struct {
	Value string
}

func (e *LitStr) sealedExpression() {}
func (e *LitStr) String() string    { return strconv.Quote(e.Value) }

// Var is a reference to a bound name.
type Var struct {
	Name string
}

func (e *Var) sealedExpression() {}
func (e *Var) String() string    { return e.Name }

// Abs is a single-parameter lambda abstraction: fn Param => Body.
type Abs struct {
	Param string
	Body  Expr
}

func (e *Abs) sealedExpression() {}
func (e *Abs) String() string    { return fmt.Sprintf("fn %s => %s", e.Param, e.Body) }

// App is single-argument application: Fn applied to Arg. Curried
// multi-argument application is represented by nesting, e.g. f x y is
// App{App{f, x}, y}.
type App struct {
	Fn  Expr
	Arg Expr
}

func (e *App) sealedExpression() {}
func (e *App) String() string    { return fmt.Sprintf("(%s %s)", e.Fn, e.Arg) }

// Let is a non-recursive binding: let Name = Bind in Body.
type Let struct {
	Name string
	Bind Expr
	Body Expr
}

func (e *Let) sealedExpression() {}
func (e *Let) String() string    { return fmt.Sprintf("let %s = %s in %s", e.Name, e.Bind, e.Body) }

// Binding is one name/expression pair within a LetRec.
type Binding struct {
	Name string
	Expr Expr
}

// LetRec is a group of mutually recursive bindings: let rec
// Decls[0].Name = Decls[0].Expr, ... in Body.
type LetRec struct {
	Decls []Binding
	Body  Expr
}

func (e *LetRec) sealedExpression() {}
func (e *LetRec) String() string {
	parts := make([]string, len(e.Decls))
	for i, d := range e.Decls {
		parts[i] = fmt.Sprintf("%s = %s", d.Name, d.Expr)
	}
	return fmt.Sprintf("let rec %s in %s", strings.Join(parts, ", "), e.Body)
}

// If is a conditional: if Cond then Then else Else.
type If struct {
	Cond Expr
	Then Expr
	Else Expr
}

func (e *If) sealedExpression() {}
func (e *If) String() string {
	return fmt.Sprintf("if %s then %s else %s", e.Cond, e.Then, e.Else)
}

// Stmt sequences expressions for effect, evaluating to the last one.
// Exprs always has at least two elements; a single-expression sequence
// collapses to that expression directly rather than being wrapped.
type Stmt struct {
	Exprs []Expr
}

func (e *Stmt) sealedExpression() {}
func (e *Stmt) String() string {
	parts := make([]string, len(e.Exprs))
	for i, sub := range e.Exprs {
		parts[i] = sub.String()
	}
	return strings.Join(parts, "; ")
}

// Return is an early return from the nearest enclosing function body.
// Value is nil for a bare `return` with no operand.
type Return struct {
	Value Expr
}

func (e *Return) sealedExpression() {}
func (e *Return) String() string {
	if e.Value == nil {
		return "return"
	}
	return fmt.Sprintf("return %s", e.Value)
}

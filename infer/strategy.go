// Package infer implements two independent, provably-equivalent
// inference strategies behind one Strategy interface: W threads an
// explicit substitution; J mutates type-variable identity in place.
package infer

import (
	"github.com/chuigda/hmlang/ast"
	"github.com/chuigda/hmlang/tyenv"
	"github.com/chuigda/hmlang/types"
)

// Strategy infers the type of an expression against an environment.
type Strategy interface {
	Name() string
	Infer(env *tyenv.Env, expr ast.Expr) (types.Type, error)
}

// Generalize quantifies over every variable free in t but not marked
// non-generic anywhere in env's scope chain. Callers use this to turn
// the monotype Infer returns for a top-level expression into a
// TypeScheme against the seed environment, per the division of labor
// in §6: the engine infers a monotype, the caller generalizes it.
func Generalize(env *tyenv.Env, t types.Type) types.TypeScheme {
	return generalize(env, t)
}

// generalize quantifies over every variable free in t but not marked
// non-generic anywhere in env's scope chain, per the usual let-
// polymorphism rule: a variable fixed by an enclosing lambda parameter
// must never be generalized over at a nested let.
func generalize(env *tyenv.Env, t types.Type) types.TypeScheme {
	pruned := types.Prune(t)

	var collected []*types.TypeVar
	pruned.CollectVars(&collected)

	nonGeneric := env.NonGenericSet()
	seen := types.NewTVarSet()
	quantified := make([]*types.TypeVar, 0, len(collected))
	for _, v := range collected {
		if nonGeneric.Contains(v) || seen.Contains(v) {
			continue
		}
		seen.Add(v)
		quantified = append(quantified, v)
	}
	return types.TypeScheme{Vars: quantified, Body: pruned}
}

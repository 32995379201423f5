// Package unify implements unification under both inference strategies:
// UnifyW returns an explicit substitution (threaded by the W strategy);
// UnifyJ mutates TypeVar.Resolve in place (used by the J strategy). Both
// share the same occurs-check and the same diagnostic shape.
package unify

import (
	"github.com/chuigda/hmlang/diag"
	"github.com/chuigda/hmlang/subst"
	"github.com/chuigda/hmlang/types"
)

// UnifyW unifies t1 and t2 under the substitution s already accumulated
// so far, returning a new substitution that extends s such that
// result.Apply(t1) and result.Apply(t2) are structurally equal.
func UnifyW(s subst.Substitution, t1, t2 types.Type) (subst.Substitution, error) {
	t1 = s.Apply(t1)
	t2 = s.Apply(t2)

	if v1, ok := t1.(*types.TypeVar); ok {
		return unifyVarW(s, v1, t2)
	}
	if v2, ok := t2.(*types.TypeVar); ok {
		return unifyVarW(s, v2, t1)
	}

	op1, ok1 := t1.(*types.TypeOp)
	op2, ok2 := t2.(*types.TypeOp)
	if !ok1 || !ok2 {
		return nil, diag.New(diag.StructuralMismatch, "cannot unify %s with %s", t1, t2)
	}
	if op1.Op != op2.Op {
		return nil, diag.New(diag.OperatorMismatch, "cannot unify %s with %s", op1, op2)
	}
	if len(op1.Args) != len(op2.Args) {
		return nil, diag.New(diag.ArityMismatch, "%s has %d argument(s), %s has %d", op1, len(op1.Args), op2, len(op2.Args))
	}

	cur := s
	for i := range op1.Args {
		next, err := UnifyW(cur, op1.Args[i], op2.Args[i])
		if err != nil {
			return nil, diag.Wrap(err, "unifying argument %d (%s and %s) of %s and %s, under substitution %s",
				i+1, op1.Args[i], op2.Args[i], op1, op2, cur)
		}
		cur = next
	}
	return cur, nil
}

func unifyVarW(s subst.Substitution, v *types.TypeVar, t types.Type) (subst.Substitution, error) {
	if other, ok := t.(*types.TypeVar); ok && other.Equal(v) {
		return s, nil
	}
	if t.Contains(v) {
		return nil, diag.New(diag.OccursCheck, "%s occurs in %s", v, t)
	}
	extension := subst.Singleton(v, t)
	return subst.Compose(extension, s), nil
}

// UnifyJ unifies t1 and t2 in place: any unresolved type variable found
// on either side has its Resolve field set to the other side (after
// pruning), so every other structural occurrence of that variable
// observes the unification immediately.
func UnifyJ(t1, t2 types.Type) error {
	t1 = types.Prune(t1)
	t2 = types.Prune(t2)

	if v1, ok := t1.(*types.TypeVar); ok {
		return unifyVarJ(v1, t2)
	}
	if v2, ok := t2.(*types.TypeVar); ok {
		return unifyVarJ(v2, t1)
	}

	op1, ok1 := t1.(*types.TypeOp)
	op2, ok2 := t2.(*types.TypeOp)
	if !ok1 || !ok2 {
		return diag.New(diag.StructuralMismatch, "cannot unify %s with %s", t1, t2)
	}
	if op1.Op != op2.Op {
		return diag.New(diag.OperatorMismatch, "cannot unify %s with %s", op1, op2)
	}
	if len(op1.Args) != len(op2.Args) {
		return diag.New(diag.ArityMismatch, "%s has %d argument(s), %s has %d", op1, len(op1.Args), op2, len(op2.Args))
	}

	for i := range op1.Args {
		if err := UnifyJ(op1.Args[i], op2.Args[i]); err != nil {
			return diag.Wrap(err, "unifying argument %d (%s and %s) of %s and %s",
				i+1, op1.Args[i], op2.Args[i], op1, op2)
		}
	}
	return nil
}

func unifyVarJ(v *types.TypeVar, t types.Type) error {
	if other, ok := t.(*types.TypeVar); ok && other.Equal(v) {
		return nil
	}
	if t.Contains(v) {
		return diag.New(diag.OccursCheck, "%s occurs in %s", v, t)
	}
	v.Resolve = t
	return nil
}

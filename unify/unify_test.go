package unify

import (
	"strings"
	"testing"

	"github.com/chuigda/hmlang/subst"
	"github.com/chuigda/hmlang/types"
)

func TestUnifyWBindsVariable(t *testing.T) {
	types.ResetCounters()
	a := types.NewTypeVar(types.Beta)
	s, err := UnifyW(subst.Empty(), a, types.Int())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Apply(a).String(); got != "int" {
		t.Fatalf("expected a to resolve to int, got %s", got)
	}
}

func TestUnifyWOccursCheckFails(t *testing.T) {
	types.ResetCounters()
	a := types.NewTypeVar(types.Beta)
	_, err := UnifyW(subst.Empty(), a, types.Func(a, types.Int()))
	if err == nil {
		t.Fatalf("expected an occurs-check error")
	}
}

func TestUnifyWOperatorMismatch(t *testing.T) {
	_, err := UnifyW(subst.Empty(), types.Int(), types.Bool())
	if err == nil {
		t.Fatalf("expected a mismatch error between int and bool")
	}
}

func TestUnifyWArityMismatch(t *testing.T) {
	a := types.Product(types.Int(), types.Bool())
	b := types.Product(types.Int())
	_, err := UnifyW(subst.Empty(), a, b)
	if err == nil {
		t.Fatalf("expected an arity mismatch error")
	}
}

func TestUnifyWFunctionArgsRecursively(t *testing.T) {
	types.ResetCounters()
	a := types.NewTypeVar(types.Beta)
	b := types.NewTypeVar(types.Beta)
	f1 := types.Func(a, types.Int())
	f2 := types.Func(types.Bool(), b)

	s, err := UnifyW(subst.Empty(), f1, f2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Apply(a).String() != "bool" {
		t.Fatalf("expected a -> bool, got %s", s.Apply(a))
	}
	if s.Apply(b).String() != "int" {
		t.Fatalf("expected b -> int, got %s", s.Apply(b))
	}
}

func TestUnifyJMutatesResolveInPlace(t *testing.T) {
	types.ResetCounters()
	a := types.NewTypeVar(types.Beta)
	if err := UnifyJ(a, types.Int()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := types.Prune(a).String(); got != "int" {
		t.Fatalf("expected a to resolve to int, got %s", got)
	}
}

func TestUnifyJOccursCheckFails(t *testing.T) {
	types.ResetCounters()
	a := types.NewTypeVar(types.Beta)
	err := UnifyJ(a, types.Func(a, types.Int()))
	if err == nil {
		t.Fatalf("expected an occurs-check error")
	}
}

func TestUnifyJBreadcrumbNamesArgumentOneBased(t *testing.T) {
	f1 := types.Func(types.Int(), types.Int())
	f2 := types.Func(types.Int(), types.Bool())
	err := UnifyJ(f1, f2)
	if err == nil {
		t.Fatalf("expected a mismatch error")
	}
	if !strings.Contains(err.Error(), "argument 2") {
		t.Fatalf("expected the breadcrumb to name argument 2, got %q", err.Error())
	}
}

func TestUnifyWBreadcrumbIncludesSubstitutionSnapshot(t *testing.T) {
	types.ResetCounters()
	a := types.NewTypeVar(types.Beta)
	f1 := types.Func(a, types.Int())
	f2 := types.Func(types.Str(), types.Bool())
	_, err := UnifyW(subst.Empty(), f1, f2)
	if err == nil {
		t.Fatalf("expected a mismatch error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "argument 2") || !strings.Contains(msg, "β0 ↦ str") {
		t.Fatalf("expected a 1-based index and a substitution snapshot, got %q", msg)
	}
}

func TestUnifyOutcomeIsSymmetric(t *testing.T) {
	types.ResetCounters()
	a := types.NewTypeVar(types.Beta)
	if err := UnifyJ(a, types.Int()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	types.ResetCounters()
	b := types.NewTypeVar(types.Beta)
	if err := UnifyJ(types.Int(), b); err != nil {
		t.Fatalf("unexpected error in the flipped direction: %v", err)
	}

	if err := UnifyJ(types.Int(), types.Bool()); err == nil {
		t.Fatalf("expected int/bool to fail")
	}
	if err := UnifyJ(types.Bool(), types.Int()); err == nil {
		t.Fatalf("expected bool/int to fail in the flipped direction")
	}
}

func TestUnifyJSharedVariableObservedEverywhere(t *testing.T) {
	types.ResetCounters()
	a := types.NewTypeVar(types.Beta)
	f := types.Func(a, a)
	if err := UnifyJ(a, types.Int()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pruned := types.Prune(f).(*types.TypeOp)
	if pruned.Args[0].String() != "int" || pruned.Args[1].String() != "int" {
		t.Fatalf("expected both occurrences of a to resolve to int, got %v", pruned)
	}
}

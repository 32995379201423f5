package tyenv

import (
	"testing"

	"github.com/chuigda/hmlang/types"
)

func TestLookupWalksParentChain(t *testing.T) {
	root := New()
	root.DefineMono("x", types.Int())

	child := root.Child()
	child.DefineMono("y", types.Bool())

	if _, ok := child.Lookup("x"); !ok {
		t.Fatalf("expected child to see parent's binding of x")
	}
	if _, ok := root.Lookup("y"); ok {
		t.Fatalf("parent must not see child's binding of y")
	}
}

func TestDefineShadowsOuterBinding(t *testing.T) {
	root := New()
	root.DefineMono("x", types.Int())
	child := root.Child()
	child.DefineMono("x", types.Bool())

	scheme, ok := child.Lookup("x")
	if !ok || scheme.Body.String() != "bool" {
		t.Fatalf("expected shadowed binding to be bool, got %v", scheme)
	}
	scheme, ok = root.Lookup("x")
	if !ok || scheme.Body.String() != "int" {
		t.Fatalf("expected outer binding to remain int, got %v", scheme)
	}
}

func TestNonGenericVisibleInDescendants(t *testing.T) {
	types.ResetCounters()
	root := New()
	v := types.NewTypeVar(types.Beta)
	root.MarkNonGeneric(v)

	child := root.Child()
	grandchild := child.Child()

	if !grandchild.IsNonGeneric(v) {
		t.Fatalf("expected non-generic marking to be visible in a grandchild scope")
	}
	other := types.NewTypeVar(types.Beta)
	if grandchild.IsNonGeneric(other) {
		t.Fatalf("an unmarked variable must not be reported non-generic")
	}
}

func TestClosestReturnTypeNilOutsideFunction(t *testing.T) {
	root := New()
	if root.ClosestReturnType() != nil {
		t.Fatalf("expected no return-type slot at the root")
	}
}

func TestClosestReturnTypeFindsNearestEnclosing(t *testing.T) {
	types.ResetCounters()
	root := New()
	outer := types.NewTypeVar(types.Eta)
	root.SetReturnType(outer)

	mid := root.Child()
	inner := types.NewTypeVar(types.Eta)
	mid.SetReturnType(inner)

	leaf := mid.Child()
	if got := leaf.ClosestReturnType(); got != inner {
		t.Fatalf("expected nearest enclosing return slot (inner), got %v", got)
	}

	siblingOfMid := root.Child()
	if got := siblingOfMid.ClosestReturnType(); got != outer {
		t.Fatalf("expected a scope with no own slot to see the outer one, got %v", got)
	}
}

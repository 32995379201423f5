// Package tyenv implements the typing environment: a chain of lexical
// scopes carrying variable bindings, the non-generic set of type
// variables (those that must not be generalized because they are bound
// by an enclosing lambda), and the nearest enclosing return type slot.
package tyenv

import "github.com/chuigda/hmlang/types"

// Env is one lexical scope. The zero value is not usable; construct the
// root with New and descend with Child.
type Env struct {
	parent      *Env
	vars        map[string]types.TypeScheme
	nonGeneric  map[types.TVarKey]*types.TypeVar
	returnType  *types.TypeVar
}

// New creates an empty root environment with no parent.
func New() *Env {
	return &Env{
		vars:       map[string]types.TypeScheme{},
		nonGeneric: map[types.TVarKey]*types.TypeVar{},
	}
}

// Child creates a new scope nested inside e. Non-generic markings and
// the return-type slot are inherited by lookup through the parent chain,
// not copied, so a marking made in e after Child is called is visible
// to the child as well (the parent link is followed at every lookup).
func (e *Env) Child() *Env {
	return &Env{
		parent:     e,
		vars:       map[string]types.TypeScheme{},
		nonGeneric: map[types.TVarKey]*types.TypeVar{},
	}
}

// Define binds name to scheme in this scope, shadowing any outer binding
// of the same name.
func (e *Env) Define(name string, scheme types.TypeScheme) {
	e.vars[name] = scheme
}

// DefineMono is a convenience for binding a monomorphic type.
func (e *Env) DefineMono(name string, t types.Type) {
	e.Define(name, types.Mono(t))
}

// Lookup walks outward from e looking for name, returning the scheme and
// true if found.
func (e *Env) Lookup(name string) (types.TypeScheme, bool) {
	for env := e; env != nil; env = env.parent {
		if scheme, ok := env.vars[name]; ok {
			return scheme, true
		}
	}
	return types.TypeScheme{}, false
}

// MarkNonGeneric records v as non-generic in this scope: it must not be
// quantified over by any Generalize call made against an environment
// descended from here.
func (e *Env) MarkNonGeneric(v *types.TypeVar) {
	e.nonGeneric[v.Key()] = v
}

// IsNonGeneric reports whether v was marked non-generic anywhere from e
// outward to the root.
func (e *Env) IsNonGeneric(v *types.TypeVar) bool {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.nonGeneric[v.Key()]; ok {
			return true
		}
	}
	return false
}

// NonGenericSet collects every variable marked non-generic from e
// outward to the root, as a types.TVarSet.
func (e *Env) NonGenericSet() types.TVarSet {
	set := types.NewTVarSet()
	for env := e; env != nil; env = env.parent {
		for k, v := range env.nonGeneric {
			set[k] = v
		}
	}
	return set
}

// SetReturnType installs v as the return-type slot for this scope (the
// slot a bare function body introduces); it is visible to every nested
// scope via ClosestReturnType until a nested scope installs its own.
func (e *Env) SetReturnType(v *types.TypeVar) {
	e.returnType = v
}

// ClosestReturnType walks outward from e and returns the nearest
// enclosing return-type slot, or nil if none is in scope (a return
// outside of any function body).
func (e *Env) ClosestReturnType() *types.TypeVar {
	for env := e; env != nil; env = env.parent {
		if env.returnType != nil {
			return env.returnType
		}
	}
	return nil
}

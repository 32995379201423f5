// Package subst implements the W-style explicit substitution: a finite
// map from type variables to types, with composition and application to
// types, schemes, and whole substitutions.
package subst

import (
	"sort"
	"strings"

	"github.com/chuigda/hmlang/types"
)

// Substitution maps type variables (by identity) to the type they stand
// for. The zero value is the empty substitution.
type Substitution map[types.TVarKey]types.Type

// Empty returns a fresh, empty substitution.
func Empty() Substitution { return Substitution{} }

// Singleton builds the substitution {v -> t}.
func Singleton(v *types.TypeVar, t types.Type) Substitution {
	return Substitution{v.Key(): t}
}

// Apply replaces every variable in t that s binds, recursively, with its
// image under s; other variables are returned unchanged. Apply resolves
// chains within s itself (s may bind a to b and b to int), guarding
// against a cyclic substitution rather than looping forever.
func (s Substitution) Apply(t types.Type) types.Type {
	return s.applyGuarded(t, map[types.TVarKey]bool{})
}

func (s Substitution) applyGuarded(t types.Type, seen map[types.TVarKey]bool) types.Type {
	switch tt := t.(type) {
	case *types.TypeVar:
		key := tt.Key()
		if seen[key] {
			return tt
		}
		if bound, ok := s[key]; ok {
			seen[key] = true
			result := s.applyGuarded(bound, seen)
			delete(seen, key)
			return result
		}
		return tt
	case *types.TypeOp:
		if len(tt.Args) == 0 {
			return tt
		}
		args := make([]types.Type, len(tt.Args))
		for i, arg := range tt.Args {
			args[i] = s.applyGuarded(arg, seen)
		}
		return &types.TypeOp{Op: tt.Op, Args: args}
	default:
		return t
	}
}

// ApplyToScheme applies s to a scheme's body while leaving the scheme's
// own quantified variables untouched, even if s happens to bind one of
// their keys (a substitution built for an outer scope should never reach
// into a scheme's locally-quantified names).
func (s Substitution) ApplyToScheme(scheme types.TypeScheme) types.TypeScheme {
	if len(scheme.Vars) == 0 {
		return types.TypeScheme{Body: s.Apply(scheme.Body)}
	}
	restricted := make(Substitution, len(s))
	for k, v := range s {
		restricted[k] = v
	}
	for _, qv := range scheme.Vars {
		delete(restricted, qv.Key())
	}
	return types.TypeScheme{Vars: scheme.Vars, Body: restricted.Apply(scheme.Body)}
}

// String renders the substitution in a stable order, for diagnostics.
func (s Substitution) String() string {
	if len(s) == 0 {
		return "{}"
	}
	keys := make([]types.TVarKey, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Greek != keys[j].Greek {
			return keys[i].Greek < keys[j].Greek
		}
		return keys[i].Timestamp < keys[j].Timestamp
	})

	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString((&types.TypeVar{Greek: k.Greek, Timestamp: k.Timestamp}).String())
		b.WriteString(" ↦ ")
		b.WriteString(s[k].String())
	}
	b.WriteByte('}')
	return b.String()
}

// Compose returns the substitution equivalent to applying s1 after s2:
// for any type t, Compose(s1, s2).Apply(t) == s1.Apply(s2.Apply(t)).
func Compose(s1, s2 Substitution) Substitution {
	result := make(Substitution, len(s1)+len(s2))
	for k, v := range s2 {
		result[k] = s1.Apply(v)
	}
	for k, v := range s1 {
		if _, already := result[k]; !already {
			result[k] = v
		}
	}
	return result
}

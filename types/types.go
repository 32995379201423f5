// Package types implements the monotype / type-scheme data model of the
// Hindley-Milner engine: type variables with mutable, nameable identity,
// type operators, type schemes, and the presentational String() rules.
package types

import (
	"strconv"
	"strings"
	"sync"
)

// Greek is the conventional tag a fresh TypeVar is allocated with. Tag
// choice never affects semantics, only diagnostic readability: beta for
// lambda parameters, pi for application results, gamma for recursive-
// binding placeholders, eta for the "bottom" type introduced by return.
type Greek string

const (
	Alpha   Greek = "α"
	Beta    Greek = "β"
	Gamma   Greek = "γ"
	Delta   Greek = "δ"
	Epsilon Greek = "ε"
	Pi      Greek = "π"
	Tau     Greek = "τ"
	Eta     Greek = "η"
)

var (
	counterMu sync.Mutex
	counters  = map[Greek]uint64{}
)

// NewTypeVar allocates a fresh type variable tagged greek. Timestamps are
// strictly increasing per tag and are never reused; the counter is
// process-wide and is not reset between unrelated inferences, so that
// diagnostic identifiers stay unique over a run.
func NewTypeVar(greek Greek) *TypeVar {
	counterMu.Lock()
	ts := counters[greek]
	counters[greek] = ts + 1
	counterMu.Unlock()
	return &TypeVar{Greek: greek, Timestamp: ts}
}

// ResetCounters zeroes every tag's counter. It exists for tests that want
// predictable timestamps; production code never calls it mid-run.
func ResetCounters() {
	counterMu.Lock()
	counters = map[Greek]uint64{}
	counterMu.Unlock()
}

// Type is the sealed monotype variant: either a TypeVar or a TypeOp.
type Type interface {
	String() string
	sealedType()

	// Contains reports whether v occurs anywhere in the (pruned)
	// structure. Used by the occurs-check.
	Contains(v *TypeVar) bool

	// CollectVars appends every TypeVar appearing in the (pruned)
	// structure to dst, including duplicates.
	CollectVars(dst *[]*TypeVar)

	// Instantiate structurally copies the type, replacing any TypeVar
	// present in renaming with its image.
	Instantiate(renaming map[TVarKey]*TypeVar) Type

	// Prune follows J-style resolve chains, path-compressing them, and
	// returns the non-TypeVar root (or an unresolved TypeVar). Under
	// W-style, where Resolve is never set, Prune is the identity.
	Prune() Type

	needsQuote() bool
}

// TVarKey is the comparable identity of a TypeVar: equality and hashing
// are by (tag, timestamp), not by pointer, so maps and sets key on this
// value type instead of on *TypeVar directly.
type TVarKey struct {
	Greek     Greek
	Timestamp uint64
}

// TypeVar is a type variable: a unique, mutable-identity monotype.
// Resolve is the J-style in-place resolution slot; it is always nil
// under the W (substitution-passing) strategy.
type TypeVar struct {
	Greek     Greek
	Timestamp uint64
	Resolve   Type
}

func (v *TypeVar) sealedType()      {}
func (v *TypeVar) needsQuote() bool { return false }

// Key returns v's (tag, timestamp) identity, suitable as a map key.
func (v *TypeVar) Key() TVarKey { return TVarKey{Greek: v.Greek, Timestamp: v.Timestamp} }

// Equal compares two type variables by (tag, timestamp).
func (v *TypeVar) Equal(other *TypeVar) bool {
	if other == nil {
		return false
	}
	return v.Greek == other.Greek && v.Timestamp == other.Timestamp
}

func (v *TypeVar) String() string {
	if v.Greek == Eta {
		return "!"
	}
	return string(v.Greek) + strconv.FormatUint(v.Timestamp, 10)
}

// Fresh allocates a new type variable sharing v's tag.
func (v *TypeVar) Fresh() *TypeVar { return NewTypeVar(v.Greek) }

func (v *TypeVar) Contains(other *TypeVar) bool { return v.Equal(other) }

func (v *TypeVar) CollectVars(dst *[]*TypeVar) { *dst = append(*dst, v) }

func (v *TypeVar) Instantiate(renaming map[TVarKey]*TypeVar) Type {
	if fresh, ok := renaming[v.Key()]; ok {
		return fresh
	}
	return v
}

// Prune chases the Resolve chain, compresses it, and returns the root.
func (v *TypeVar) Prune() Type {
	if v.Resolve == nil {
		return v
	}
	root := v.Resolve.Prune()
	v.Resolve = root
	return root
}

// TypeOp is a named operator applied to an ordered argument list. The
// engine recognizes the nullary operators unit/int/bool/str and the
// variable-arity operators * (product) and -> (function, arity 2), but
// the representation stays open to any other operator a host introduces.
type TypeOp struct {
	Op   string
	Args []Type
}

func (o *TypeOp) sealedType()      {}
func (o *TypeOp) needsQuote() bool { return len(o.Args) > 0 }

func (o *TypeOp) String() string {
	if o.Op == "unit" {
		return "()"
	}
	if len(o.Args) == 0 {
		return o.Op
	}

	var b strings.Builder
	switch o.Op {
	case "*", "->":
		sep := " → "
		if o.Op == "*" {
			sep = " × "
		}
		for i, arg := range o.Args {
			if arg.needsQuote() {
				b.WriteByte('(')
				b.WriteString(arg.String())
				b.WriteByte(')')
			} else {
				b.WriteString(arg.String())
			}
			if i != len(o.Args)-1 {
				b.WriteString(sep)
			}
		}
	default:
		b.WriteString(o.Op)
		for _, arg := range o.Args {
			b.WriteByte(' ')
			if arg.needsQuote() {
				b.WriteByte('(')
				b.WriteString(arg.String())
				b.WriteByte(')')
			} else {
				b.WriteString(arg.String())
			}
		}
	}
	return b.String()
}

func (o *TypeOp) Contains(v *TypeVar) bool {
	for _, arg := range o.Args {
		if arg.Contains(v) {
			return true
		}
	}
	return false
}

func (o *TypeOp) CollectVars(dst *[]*TypeVar) {
	for _, arg := range o.Args {
		arg.CollectVars(dst)
	}
}

func (o *TypeOp) Instantiate(renaming map[TVarKey]*TypeVar) Type {
	if len(o.Args) == 0 {
		return o
	}
	args := make([]Type, len(o.Args))
	for i, arg := range o.Args {
		args[i] = arg.Instantiate(renaming)
	}
	return &TypeOp{Op: o.Op, Args: args}
}

// Prune path-compresses every argument in place and returns o itself:
// TypeOps are never themselves a resolution target.
func (o *TypeOp) Prune() Type {
	for i, arg := range o.Args {
		o.Args[i] = Prune(arg)
	}
	return o
}

// Prune is the free-function form of Type.Prune, convenient at call
// sites that only hold a Type interface value.
func Prune(t Type) Type { return t.Prune() }

// Constructors for the built-in operators.
func Unit() *TypeOp { return &TypeOp{Op: "unit"} }
func Int() *TypeOp  { return &TypeOp{Op: "int"} }
func Bool() *TypeOp { return &TypeOp{Op: "bool"} }
func Str() *TypeOp  { return &TypeOp{Op: "str"} }

func Product(items ...Type) *TypeOp { return &TypeOp{Op: "*", Args: items} }

func Func(arg, ret Type) *TypeOp { return &TypeOp{Op: "->", Args: []Type{arg, ret}} }

// TVarSet is a deduplicated set of type variables, keyed by identity.
type TVarSet map[TVarKey]*TypeVar

func NewTVarSet() TVarSet { return make(TVarSet) }

func NewTVarSetFromSlice(vars []*TypeVar) TVarSet {
	s := NewTVarSet()
	for _, v := range vars {
		s.Add(v)
	}
	return s
}

func (s TVarSet) Add(v *TypeVar) { s[v.Key()] = v }

func (s TVarSet) Contains(v *TypeVar) bool {
	_, ok := s[v.Key()]
	return ok
}

func (s TVarSet) Union(other TVarSet) TVarSet {
	r := NewTVarSet()
	for k, v := range s {
		r[k] = v
	}
	for k, v := range other {
		r[k] = v
	}
	return r
}

func (s TVarSet) Difference(other TVarSet) TVarSet {
	r := NewTVarSet()
	for k, v := range s {
		if _, ok := other[k]; !ok {
			r[k] = v
		}
	}
	return r
}

func (s TVarSet) Values() []*TypeVar {
	vars := make([]*TypeVar, 0, len(s))
	for _, v := range s {
		vars = append(vars, v)
	}
	return vars
}

// TypeScheme is a universally quantified type: forall Vars. Body. An
// empty Vars list is the monomorphic case.
type TypeScheme struct {
	Vars []*TypeVar
	Body Type
}

// Mono builds the monomorphic (unquantified) scheme over t.
func Mono(t Type) TypeScheme { return TypeScheme{Body: t} }

func (s TypeScheme) String() string {
	names := make([]string, 0, len(s.Vars))
	for _, v := range s.Vars {
		if v.Greek == Eta {
			// eta-quantifiers are elided from presentation.
			continue
		}
		names = append(names, "∀"+v.String())
	}
	if len(names) == 0 {
		return s.Body.String()
	}
	return strings.Join(names, "") + ". " + s.Body.String()
}

// FreeTypeVars returns the scheme's free variables: those of Body minus
// the quantified Vars.
func (s TypeScheme) FreeTypeVars() TVarSet {
	var collected []*TypeVar
	s.Body.CollectVars(&collected)
	free := NewTVarSetFromSlice(collected)
	return free.Difference(NewTVarSetFromSlice(s.Vars))
}

// Instantiate fresh-renames every quantified variable of s and
// substitutes consistently within the body, yielding a monotype.
func (s TypeScheme) Instantiate() Type {
	renaming := make(map[TVarKey]*TypeVar, len(s.Vars))
	for _, v := range s.Vars {
		renaming[v.Key()] = v.Fresh()
	}
	return s.Body.Instantiate(renaming)
}

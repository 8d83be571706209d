package typesys

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/ir-tools/domtree/utils"
	"github.com/ir-tools/domtree/utils/tree"
)

// TypeEnvironment resolves type variables and unifies terms. Resolve and
// Unify are the two operations the rest of the package relies on; Clone
// and ResolveRecursive exist so StackSize can run a scratch unification
// without mutating the caller's environment.
type TypeEnvironment interface {
	// Resolve substitutes bound variables in t, to a fixed point, and
	// returns the result. Does not recurse into Pair/Func/Constructor
	// arguments — only the head is normalized.
	Resolve(t *Term) *Term
	// ResolveRecursive fully monomorphizes t: Resolve at every level,
	// including nested Args.
	ResolveRecursive(t *Term) *Term
	// Clone returns an independent snapshot that shares history with
	// env but whose subsequent bindings do not affect env.
	Clone() TypeEnvironment
	// Unify attempts to unify a and u, recording any new variable
	// bindings. Returns the residual constraints that could not be
	// discharged by binding a variable (non-empty means unification
	// failed in the sense the package cares about).
	Unify(a, u *Term) []Constraint
	// FreshTypeVariable allocates a new, never-before-seen variable.
	FreshTypeVariable() *Term
	// Underlying returns the generic type-function definition
	// registered for constructor name, and whether one was found.
	Underlying(name string) (*Term, bool)
	// MemoizeMono caches the result of monomorphizing a constructor
	// application under key (typically the constructor's name plus its
	// resolved argument terms); compute runs only on a cache miss.
	MemoizeMono(key string, compute func() (*Term, error)) (*Term, error)
}

// Constraint is one equation a Unify call could not discharge by binding
// a variable — a structural mismatch between two already-resolved heads.
type Constraint struct {
	A, B *Term
}

func (c Constraint) String() string { return fmt.Sprintf("%s ~ %s", c.A, c.B) }

// env is the concrete TypeEnvironment. Bindings live in a persistent
// Patricia-trie map keyed by variable identity, so Clone is O(1) — later
// mutation of the clone never touches the parent's root.
type env struct {
	bindings    tree.Tree[*Term, *Term]
	underlying  map[string]*Term
	fresh       *int
	monoCache   *lru.Cache
}

// NewEnvironment creates an empty TypeEnvironment. underlying maps a
// user-defined constructor's name to its generic type-function
// definition (TypeFunction(tuple(params) -> body), possibly containing
// Itself for recursive occurrences).
func NewEnvironment(underlying map[string]*Term) TypeEnvironment {
	cache, err := lru.New(256)
	if err != nil {
		// Only returns an error for a non-positive size, which 256 never is.
		panic(err)
	}
	zero := 0
	return &env{
		bindings:   tree.NewTree[*Term, *Term](utils.PointerHasher[*Term]{}),
		underlying: underlying,
		fresh:      &zero,
		monoCache:  cache,
	}
}

func (e *env) Underlying(name string) (*Term, bool) {
	t, ok := e.underlying[name]
	return t, ok
}

func (e *env) MemoizeMono(key string, compute func() (*Term, error)) (*Term, error) {
	if v, ok := e.monoCache.Get(key); ok {
		return v.(*Term), nil
	}
	t, err := compute()
	if err != nil {
		return nil, err
	}
	e.monoCache.Add(key, t)
	return t, nil
}

func (e *env) FreshTypeVariable() *Term {
	*e.fresh++
	return &Term{Kind: Variable, Name: fmt.Sprintf("t%d", *e.fresh)}
}

func (e *env) Resolve(t *Term) *Term {
	for t.Kind == Variable {
		bound, ok := e.bindings.Lookup(t)
		if !ok {
			return t
		}
		t = bound
	}
	return t
}

func (e *env) ResolveRecursive(t *Term) *Term {
	t = e.Resolve(t)
	if len(t.Args) == 0 {
		return t
	}
	args := make([]*Term, len(t.Args))
	for i, a := range t.Args {
		args[i] = e.ResolveRecursive(a)
	}
	return &Term{Kind: t.Kind, Name: t.Name, Args: args}
}

func (e *env) Clone() TypeEnvironment {
	clone := *e
	// fresh is shared: variable names must stay globally unique even
	// across clones used for speculative unification.
	return &clone
}

func (e *env) Unify(a, u *Term) []Constraint {
	a, u = e.Resolve(a), e.Resolve(u)

	switch {
	case a.Kind == Variable && u.Kind == Variable && a == u:
		return nil
	case a.Kind == Variable:
		e.bindings = e.bindings.Insert(a, u)
		return nil
	case u.Kind == Variable:
		e.bindings = e.bindings.Insert(u, a)
		return nil
	case a.Kind != u.Kind:
		return []Constraint{{a, u}}
	}

	switch a.Kind {
	case Unit, Itself, Bool, Word, Integer, Void:
		return nil
	case Constructor:
		if a.Name != u.Name || len(a.Args) != len(u.Args) {
			return []Constraint{{a, u}}
		}
	}

	if len(a.Args) != len(u.Args) {
		return []Constraint{{a, u}}
	}

	var residual []Constraint
	for i := range a.Args {
		residual = append(residual, e.Unify(a.Args[i], u.Args[i])...)
	}
	return residual
}

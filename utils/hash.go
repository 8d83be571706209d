package utils

import (
	"reflect"

	"github.com/benbjohnson/immutable"
)

// PointerHasher is an immutable.Hasher for any reference type, hashing and
// comparing by pointer identity rather than structural equality. It's what
// typesys/env.go keys a TypeEnvironment's persistent bindings map with:
// *Term identity, not *Term shape, is what unification cares about.
type PointerHasher[T any] struct{}

// Hash computes the uint32 hash of pointer-like value v.
func (PointerHasher[T]) Hash(v T) uint32 {
	// Use reflection to get a uintptr value
	p := reflect.ValueOf(v).Pointer()
	return uint32(p ^ (p >> 32))
}

// Equal checks equality between two pointer-like values.
func (PointerHasher[T]) Equal(a, b T) bool {
	return any(a) == any(b)
}

var _ immutable.Hasher[any] = PointerHasher[any]{}

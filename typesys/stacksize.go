package typesys

import "fmt"

// StackSize computes the number of abstract stack slots t occupies, after
// resolving it to a type constant through env: Unit and Itself take 0
// slots; Bool, Word and Func take 1; Integer, Void and TypeFunction have no
// stack representation; Pair is additive; and a user-defined
// constructor's footprint is the footprint of its monomorphized
// underlying type.
func StackSize(env TypeEnvironment, t *Term) (int, error) {
	t = env.Resolve(t)

	switch t.Kind {
	case Unit, Itself:
		return 0, nil
	case Bool, Word:
		if len(t.Args) != 0 {
			return 0, InvariantViolation{Detail: fmt.Sprintf("%s carries arguments %v", t.Kind, t.Args)}
		}
		return 1, nil
	case Func:
		return 1, nil
	case Integer, Void, TypeFunction:
		return 0, InvalidStackRepresentation{Term: t}
	case Pair:
		a, err := StackSize(env, t.Args[0])
		if err != nil {
			return 0, err
		}
		b, err := StackSize(env, t.Args[1])
		if err != nil {
			return 0, err
		}
		return a + b, nil
	case Constructor:
		return constructorStackSize(env, t)
	case Variable:
		return 0, InvariantViolation{Detail: fmt.Sprintf("unresolved variable %s reached StackSize", t)}
	default:
		return 0, Unsupported{Reason: fmt.Sprintf("type kind %s", t.Kind)}
	}
}

func constructorStackSize(env TypeEnvironment, t *Term) (int, error) {
	underlying, found := env.Underlying(t.Name)
	if !found {
		return 0, InvariantViolation{Detail: fmt.Sprintf("no underlying type registered for constructor %q", t.Name)}
	}

	// If the underlying definition is already monomorphic (a bare type
	// constant, not a TypeFunction), recurse directly.
	if underlying.Kind != TypeFunction {
		return StackSize(env, underlying)
	}

	mono, err := env.MemoizeMono(monoCacheKey(t), func() (*Term, error) {
		return monomorphize(env, t.Name, t.Args, underlying)
	})
	if err != nil {
		return 0, err
	}
	return StackSize(env, mono)
}

// monomorphize instantiates a constructor's generic underlying
// TypeFunction against its concrete argument list: unify
// TypeFunction(tuple(args) -> fresh) with the registered definition in a
// clone of env, and resolve the result.
func monomorphize(env TypeEnvironment, name string, args []*Term, underlying *Term) (*Term, error) {
	scratch := env.Clone()

	result := scratch.FreshTypeVariable()
	candidate := NewTypeFunction(NewTuple(args...), result)

	residual := scratch.Unify(candidate, underlying)
	if len(residual) != 0 {
		return nil, InvariantViolation{
			Detail: fmt.Sprintf("unifying %s against underlying type of %q left residual constraints %v", candidate, name, residual),
		}
	}

	return scratch.ResolveRecursive(result), nil
}

func monoCacheKey(t *Term) string {
	return fmt.Sprintf("%s%v", t.Name, t.Args)
}

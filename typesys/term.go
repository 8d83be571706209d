// Package typesys implements a small structural type system — type terms,
// a unification-based TypeEnvironment, and the StackFootprint operation
// that computes how many abstract stack slots a resolved type occupies.
package typesys

import "fmt"

// Kind tags the shape of a Term.
type Kind int

const (
	// Unit is the zero-slot unit type.
	Unit Kind = iota
	// Itself is a self-reference placeholder used inside recursive
	// constructor definitions.
	Itself
	// Bool is the boolean primitive.
	Bool
	// Word is a machine-word primitive.
	Word
	// Func is a function type; Args holds the domain and codomain.
	Func
	// Pair is a structural product of two types.
	Pair
	// Integer is an arbitrary-precision integer, which has no fixed
	// runtime stack representation.
	Integer
	// Void is the empty type.
	Void
	// TypeFunction is a generic type-level function (e.g. the
	// definition of a user-defined constructor before instantiation).
	TypeFunction
	// Constructor is an application of a user-defined type constructor
	// to a list of argument types.
	Constructor
	// Variable is an unresolved type variable.
	Variable
)

func (k Kind) String() string {
	switch k {
	case Unit:
		return "Unit"
	case Itself:
		return "Itself"
	case Bool:
		return "Bool"
	case Word:
		return "Word"
	case Func:
		return "Func"
	case Pair:
		return "Pair"
	case Integer:
		return "Integer"
	case Void:
		return "Void"
	case TypeFunction:
		return "TypeFunction"
	case Constructor:
		return "Constructor"
	case Variable:
		return "Variable"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Term is a type term: either a primitive constant, a type variable, or a
// type-function application (Constructor/TypeFunction/Func/Pair all carry
// their sub-terms in Args).
type Term struct {
	Kind Kind
	// Name identifies a Constructor (the constructor's name) or a
	// Variable (a debug label; identity for unification purposes is the
	// Term pointer, not Name).
	Name string
	Args []*Term
}

func (t *Term) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case Unit, Itself, Bool, Word, Integer, Void:
		return t.Kind.String()
	case Variable:
		if t.Name != "" {
			return "?" + t.Name
		}
		return fmt.Sprintf("?%p", t)
	case Pair:
		return fmt.Sprintf("Pair(%s, %s)", t.Args[0], t.Args[1])
	case Func:
		return fmt.Sprintf("Func(%s -> %s)", t.Args[0], t.Args[1])
	case TypeFunction:
		return fmt.Sprintf("TypeFunction(%s -> %s)", t.Args[0], t.Args[1])
	case Constructor:
		strs := make([]string, len(t.Args))
		for i, a := range t.Args {
			strs[i] = a.String()
		}
		return fmt.Sprintf("%s(%v)", t.Name, strs)
	default:
		return t.Kind.String()
	}
}

// Constructors for the primitive constants, to avoid callers allocating
// ad-hoc &Term{Kind: ...} literals for the singletons.
var (
	UnitTerm    = &Term{Kind: Unit}
	ItselfTerm  = &Term{Kind: Itself}
	BoolTerm    = &Term{Kind: Bool}
	WordTerm    = &Term{Kind: Word}
	IntegerTerm = &Term{Kind: Integer}
	VoidTerm    = &Term{Kind: Void}
)

// NewPair builds a Pair(a, b) term.
func NewPair(a, b *Term) *Term { return &Term{Kind: Pair, Args: []*Term{a, b}} }

// NewFunc builds a Func(dom -> cod) term.
func NewFunc(dom, cod *Term) *Term { return &Term{Kind: Func, Args: []*Term{dom, cod}} }

// NewTypeFunction builds a TypeFunction(dom -> cod) term.
func NewTypeFunction(dom, cod *Term) *Term { return &Term{Kind: TypeFunction, Args: []*Term{dom, cod}} }

// NewConstructor builds a Constructor application C(args...).
func NewConstructor(name string, args ...*Term) *Term {
	return &Term{Kind: Constructor, Name: name, Args: args}
}

// NewTuple folds args into a right-nested chain of Pairs, the
// representation unify uses for a constructor's argument list when
// building a candidate type-function term.
func NewTuple(args ...*Term) *Term {
	if len(args) == 0 {
		return UnitTerm
	}
	t := args[len(args)-1]
	for i := len(args) - 2; i >= 0; i-- {
		t = NewPair(args[i], t)
	}
	return t
}

// InvalidStackRepresentation is returned by StackSize when the resolved
// type has no runtime stack form (Integer, Void, TypeFunction).
type InvalidStackRepresentation struct {
	Term *Term
}

func (e InvalidStackRepresentation) Error() string {
	return fmt.Sprintf("typesys: %s has no stack representation", e.Term)
}

// Unsupported is returned for type shapes StackSize does not (yet) model,
// namely sum types.
type Unsupported struct {
	Reason string
}

func (e Unsupported) Error() string { return "typesys: unsupported: " + e.Reason }

// InvariantViolation signals a violated internal invariant — unification
// against a constructor's underlying type failing when it was assumed to
// succeed by construction.
type InvariantViolation struct {
	Detail string
}

func (e InvariantViolation) Error() string { return "typesys: invariant violation: " + e.Detail }

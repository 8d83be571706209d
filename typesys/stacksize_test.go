package typesys

import "testing"

func TestStackSizePrimitives(t *testing.T) {
	env := NewEnvironment(nil)

	cases := []struct {
		term *Term
		want int
	}{
		{UnitTerm, 0},
		{ItselfTerm, 0},
		{BoolTerm, 1},
		{WordTerm, 1},
		{NewFunc(BoolTerm, WordTerm), 1},
		{NewPair(BoolTerm, NewPair(WordTerm, BoolTerm)), 3},
	}

	for _, c := range cases {
		got, err := StackSize(env, c.term)
		if err != nil {
			t.Errorf("StackSize(%s): unexpected error: %v", c.term, err)
			continue
		}
		if got != c.want {
			t.Errorf("StackSize(%s) = %d, want %d", c.term, got, c.want)
		}
	}
}

func TestStackSizeInvalidRepresentation(t *testing.T) {
	env := NewEnvironment(nil)

	for _, term := range []*Term{IntegerTerm, VoidTerm, NewTypeFunction(UnitTerm, UnitTerm)} {
		if _, err := StackSize(env, term); err == nil {
			t.Errorf("StackSize(%s): expected InvalidStackRepresentation, got nil", term)
		} else if _, ok := err.(InvalidStackRepresentation); !ok {
			t.Errorf("StackSize(%s): expected InvalidStackRepresentation, got %T: %v", term, err, err)
		}
	}
}

func TestStackSizeConstructorDirect(t *testing.T) {
	// A constructor whose underlying type is already a bare constant.
	env := NewEnvironment(map[string]*Term{
		"Flag": BoolTerm,
	})

	got, err := StackSize(env, NewConstructor("Flag"))
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Errorf("StackSize(Flag) = %d, want 1", got)
	}
}

func TestStackSizeConstructorGeneric(t *testing.T) {
	// Box[A] is represented as Pair(Word, A) — a tagged pointer plus the
	// boxed payload. footprint(Box(Bool)) == footprint(Word) + footprint(Bool) == 2.
	a := &Term{Kind: Variable, Name: "A"}
	underlying := NewTypeFunction(NewTuple(a), NewPair(WordTerm, a))

	env := NewEnvironment(map[string]*Term{
		"Box": underlying,
	})

	got, err := StackSize(env, NewConstructor("Box", BoolTerm))
	if err != nil {
		t.Fatal(err)
	}
	if got != 2 {
		t.Errorf("StackSize(Box(Bool)) = %d, want 2", got)
	}
}

func TestStackSizePairAdditive(t *testing.T) {
	env := NewEnvironment(nil)
	term := NewPair(NewFunc(BoolTerm, BoolTerm), NewPair(WordTerm, WordTerm))

	got, err := StackSize(env, term)
	if err != nil {
		t.Fatal(err)
	}
	if got != 3 {
		t.Errorf("StackSize = %d, want 3", got)
	}
}

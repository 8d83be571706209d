package cfg

import (
	"testing"

	"github.com/ir-tools/domtree/typesys"
)

func TestBlockFootprint(t *testing.T) {
	b := NewBuilder()
	b.AddBlock("start")
	b.AddInstruction(Instruction{Op: "assign", Dst: "flag", Args: []string{"true"}})
	b.AddInstruction(Instruction{Op: "assign", Dst: "pair", Args: []string{"flag", "flag"}})
	b.AddInstruction(Instruction{Op: "ret"})

	g, err := b.Finish()
	if err != nil {
		t.Fatal(err)
	}

	g.SetTerm("start", "flag", typesys.BoolTerm)
	g.SetTerm("start", "pair", typesys.NewPair(typesys.BoolTerm, typesys.BoolTerm))

	env := typesys.NewEnvironment(nil)
	sizes, err := g.Entry().Footprint(g, env)
	if err != nil {
		t.Fatal(err)
	}

	if sizes["flag"] != 1 {
		t.Errorf("footprint(flag) = %d, want 1", sizes["flag"])
	}
	if sizes["pair"] != 2 {
		t.Errorf("footprint(pair) = %d, want 2", sizes["pair"])
	}
}

func TestBlockFootprintSkipsUnannotatedLocals(t *testing.T) {
	b := NewBuilder()
	b.AddBlock("start")
	b.AddInstruction(Instruction{Op: "assign", Dst: "x", Args: []string{"0"}})
	b.AddInstruction(Instruction{Op: "ret"})

	g, err := b.Finish()
	if err != nil {
		t.Fatal(err)
	}

	env := typesys.NewEnvironment(nil)
	sizes, err := g.Entry().Footprint(g, env)
	if err != nil {
		t.Fatal(err)
	}
	if len(sizes) != 0 {
		t.Errorf("expected no sizes for an unannotated local, got %v", sizes)
	}
}

func TestBlockFootprintPropagatesError(t *testing.T) {
	b := NewBuilder()
	b.AddBlock("start")
	b.AddInstruction(Instruction{Op: "assign", Dst: "bad", Args: []string{"0"}})
	b.AddInstruction(Instruction{Op: "ret"})

	g, err := b.Finish()
	if err != nil {
		t.Fatal(err)
	}
	g.SetTerm("start", "bad", typesys.IntegerTerm)

	env := typesys.NewEnvironment(nil)
	if _, err := g.Entry().Footprint(g, env); err == nil {
		t.Fatal("expected an error for an Integer term, which has no stack representation")
	}
}

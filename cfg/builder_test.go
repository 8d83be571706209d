package cfg

import "testing"

func TestBuilderProgrammaticConstruction(t *testing.T) {
	b := NewBuilder()
	b.AddBlock("start")
	b.AddInstruction(Instruction{Op: "const", Dst: "x", Args: []string{"0"}})
	b.AddEdge("loop")

	b.AddBlock("loop")
	b.AddInstruction(Instruction{Op: "add", Dst: "x", Args: []string{"x", "1"}})
	b.AddEdge("loop")

	g, err := b.Finish()
	if err != nil {
		t.Fatal(err)
	}

	if g.Entry().Label != "start" {
		t.Fatalf("expected entry 'start', got %q", g.Entry().Label)
	}

	loop, _ := g.Block("loop")
	succs := loop.Successors()
	if len(succs) != 1 || succs[0] != loop {
		t.Errorf("expected loop's only successor to be itself, got %v", succs)
	}
}

func TestBuilderDuplicateLabel(t *testing.T) {
	b := NewBuilder()
	b.AddBlock("a")
	b.AddInstruction(Instruction{Op: "ret"})
	b.AddBlock("a")

	if _, err := b.Finish(); err == nil {
		t.Fatal("expected an error for a duplicate block label")
	}
}

package dom

import "testing"

func TestCheckReducibilityDiamond(t *testing.T) {
	edges := map[string][]string{
		"A": {"B", "C"},
		"B": {"D"},
		"C": {"D"},
		"D": {},
	}
	succ := FromEdgeMap(edges)
	engine := Build("A", succ, len(edges))

	r := CheckReducibility(engine, succ)
	if !r.Reducible {
		t.Fatalf("expected a diamond to be reducible, got irreducible components %v", r.Irreducible)
	}
	if len(r.BackEdges) != 0 {
		t.Errorf("expected no back edges in a diamond, got %v", r.BackEdges)
	}
}

func TestCheckReducibilityNaturalLoop(t *testing.T) {
	// A -> B -> C -> B (back edge C -> B, B dominates C): reducible.
	edges := map[string][]string{
		"A": {"B"},
		"B": {"C"},
		"C": {"B", "D"},
		"D": {},
	}
	succ := FromEdgeMap(edges)
	engine := Build("A", succ, len(edges))

	r := CheckReducibility(engine, succ)
	if !r.Reducible {
		t.Fatalf("expected a natural loop to be reducible, got irreducible components %v", r.Irreducible)
	}
	if len(r.BackEdges) != 1 || r.BackEdges[0] != [2]string{"C", "B"} {
		t.Errorf("expected a single back edge C->B, got %v", r.BackEdges)
	}
}

func TestCheckReducibilityIrreducible(t *testing.T) {
	// Classic irreducible graph: two entries into a loop, neither of
	// which dominates the other's entry point into it.
	edges := map[string][]string{
		"A": {"B", "C"},
		"B": {"D"},
		"C": {"D"},
		"D": {"B", "C"},
	}
	succ := FromEdgeMap(edges)
	engine := Build("A", succ, len(edges))

	r := CheckReducibility(engine, succ)
	if r.Reducible {
		t.Fatalf("expected graph to be irreducible, got back edges %v", r.BackEdges)
	}
	if len(r.Irreducible) == 0 {
		t.Errorf("expected at least one irreducible component to be reported")
	}
}

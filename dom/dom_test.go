package dom

import (
	"reflect"
	"testing"
)

func buildOrdered[T comparable](entry T, order []T, edges map[T][]T) *Engine[T] {
	_ = order
	return Build(entry, FromEdgeMap(edges), len(edges))
}

func idomIndices[T comparable](e *Engine[T]) []int {
	return e.ImmediateDominators()
}

// Scenario 1 — diamond with side branch.
func TestScenario1Diamond(t *testing.T) {
	edges := map[string][]string{
		"A": {"B"},
		"B": {"C", "D"},
		"C": {"D", "G"},
		"D": {"E"},
		"E": {"F"},
		"F": {},
		"G": {"H"},
		"H": {"F"},
	}
	e := buildOrdered("A", nil, edges)

	wantIdx := map[string]int{"A": 0, "B": 1, "C": 2, "D": 3, "E": 4, "F": 5, "G": 6, "H": 7}
	for v, want := range wantIdx {
		got, ok := e.IndexOf(v)
		if !ok || got != want {
			t.Errorf("index(%s) = %d, %v; want %d", v, got, ok, want)
		}
	}

	want := []int{0, 0, 1, 1, 3, 1, 2, 6}
	if got := idomIndices(e); !reflect.DeepEqual(got, want) {
		t.Errorf("idom = %v; want %v", got, want)
	}
}

// Scenario 2 — irreducible graph with a back edge.
func TestScenario2Irreducible(t *testing.T) {
	edges := map[string][]string{
		"A": {"B", "D"},
		"B": {"C"},
		"C": {"G", "A"},
		"D": {"E", "F"},
		"E": {"G"},
		"F": {"G"},
		"G": {"C"},
	}
	e := buildOrdered("A", nil, edges)

	wantIdx := map[string]int{"A": 0, "B": 1, "C": 2, "G": 3, "D": 4, "E": 5, "F": 6}
	for v, want := range wantIdx {
		got, ok := e.IndexOf(v)
		if !ok || got != want {
			t.Errorf("index(%s) = %d, %v; want %d", v, got, ok, want)
		}
	}

	want := []int{0, 0, 0, 0, 0, 4, 4}
	if got := idomIndices(e); !reflect.DeepEqual(got, want) {
		t.Errorf("idom = %v; want %v", got, want)
	}
}

// Scenario 3 — the Lengauer-Tarjan paper's own figure 1.
func TestScenario3Paper(t *testing.T) {
	edges := map[string][]string{
		"R": {"B", "A", "C"},
		"A": {"D"},
		"B": {"A", "D", "E"},
		"C": {"F", "G"},
		"D": {"L"},
		"E": {"H"},
		"F": {"I"},
		"G": {"I", "J"},
		"H": {"E", "K"},
		"I": {"K"},
		"J": {"I"},
		"K": {"I", "R"},
		"L": {"H"},
	}
	e := buildOrdered("R", nil, edges)

	wantIdx := map[string]int{
		"R": 0, "B": 1, "A": 2, "D": 3, "L": 4, "H": 5, "E": 6,
		"K": 7, "I": 8, "C": 9, "F": 10, "G": 11, "J": 12,
	}
	for v, want := range wantIdx {
		got, ok := e.IndexOf(v)
		if !ok || got != want {
			t.Errorf("index(%s) = %d, %v; want %d", v, got, ok, want)
		}
	}

	want := []int{0, 0, 0, 0, 3, 0, 0, 0, 0, 0, 9, 9, 11}
	if got := idomIndices(e); !reflect.DeepEqual(got, want) {
		t.Errorf("idom = %v; want %v", got, want)
	}
}

// Scenario 4 — Georgiadis dissertation fig. 2.2: a chain of back-edges all
// immediately dominated by the entry.
func TestScenario4Georgiadis(t *testing.T) {
	edges := map[string][]string{
		"R":  {"W", "X1", "X2", "X3", "X4", "X5", "X6", "X7", "Y"},
		"W":  {"X1"},
		"X1": {"X2"},
		"X2": {"X1", "X3"},
		"X3": {"X2", "X4"},
		"X4": {"X3", "X5"},
		"X5": {"X4", "X6"},
		"X6": {"X5", "X7"},
		"X7": {"X6", "Y"},
		"Y":  {},
	}
	e := buildOrdered("R", nil, edges)

	for i := 1; i < e.Len(); i++ {
		if got := e.ImmediateDominators()[i]; got != 0 {
			t.Errorf("idom[%d] = %d; want 0", i, got)
		}
	}
}

// Scenario 5 — sncaworst(3).
func TestScenario5SNCAWorst(t *testing.T) {
	edges := map[string][]string{
		"R":  {"X1", "Y1", "Y2", "Y3"},
		"X1": {"X2"},
		"X2": {"X3"},
		"X3": {"Y1", "Y2", "Y3"},
		"Y1": {},
		"Y2": {},
		"Y3": {},
	}
	e := buildOrdered("R", nil, edges)

	want := []int{0, 0, 1, 2, 0, 0, 0}
	if got := idomIndices(e); !reflect.DeepEqual(got, want) {
		t.Errorf("idom = %v; want %v", got, want)
	}
}

func allScenarios() map[string]map[string][]string {
	return map[string]map[string][]string{
		"diamond": {
			"A": {"B"}, "B": {"C", "D"}, "C": {"D", "G"}, "D": {"E"},
			"E": {"F"}, "F": {}, "G": {"H"}, "H": {"F"},
		},
		"irreducible": {
			"A": {"B", "D"}, "B": {"C"}, "C": {"G", "A"}, "D": {"E", "F"},
			"E": {"G"}, "F": {"G"}, "G": {"C"},
		},
		"paper": {
			"R": {"B", "A", "C"}, "A": {"D"}, "B": {"A", "D", "E"},
			"C": {"F", "G"}, "D": {"L"}, "E": {"H"}, "F": {"I"}, "G": {"I", "J"},
			"H": {"E", "K"}, "I": {"K"}, "J": {"I"}, "K": {"I", "R"}, "L": {"H"},
		},
		"sncaworst": {
			"R": {"X1", "Y1", "Y2", "Y3"}, "X1": {"X2"}, "X2": {"X3"},
			"X3": {"Y1", "Y2", "Y3"}, "Y1": {}, "Y2": {}, "Y3": {},
		},
	}
}

func entryOf(name string) string {
	switch name {
	case "diamond":
		return "A"
	case "irreducible":
		return "A"
	case "paper":
		return "R"
	case "sncaworst":
		return "R"
	}
	panic("unknown scenario " + name)
}

// TestUniversalProperties checks §8 properties 1-4 and 6-10 on the diamond,
// irreducible, paper and sncaworst scenarios. Property 5 (idom(v) dominates
// every predecessor of v) is not checked here.
func TestUniversalProperties(t *testing.T) {
	for name, edges := range allScenarios() {
		name, edges := name, edges
		t.Run(name, func(t *testing.T) {
			entry := entryOf(name)
			e := buildOrdered(entry, nil, edges)
			n := e.Len()
			idom := e.ImmediateDominators()
			verts := e.Vertices()
			idx := e.VertexIndices()

			// 1. vertexIndex[vertices[i]] == i
			for i, v := range verts {
				if idx[v] != i {
					t.Errorf("vertexIndex[%v] = %d; want %d", v, idx[v], i)
				}
			}

			// 2. vertices[0] == entry, idom[0] == 0.
			if verts[0] != entry {
				t.Errorf("vertices[0] = %v; want entry %v", verts[0], entry)
			}
			if idom[0] != 0 {
				t.Errorf("idom[0] = %d; want 0", idom[0])
			}

			// 3 & 4. idom[i] < i, and following idom reaches 0.
			for i := 1; i < n; i++ {
				if idom[i] >= i {
					t.Fatalf("idom[%d] = %d; want < %d", i, idom[i], i)
				}
				steps := 0
				for j := i; j != 0; j = idom[j] {
					steps++
					if steps > n {
						t.Fatalf("idom chain from %d does not reach 0", i)
					}
				}
			}

			// 6 & 7. entry dominates everything; every vertex dominates itself.
			for _, v := range verts {
				if ok, err := e.Dominates(entry, v); err != nil || !ok {
					t.Errorf("Dominates(entry, %v) = %v, %v; want true, nil", v, ok, err)
				}
				if ok, err := e.Dominates(v, v); err != nil || !ok {
					t.Errorf("Dominates(%v, %v) = %v, %v; want true, nil", v, v, ok, err)
				}
			}

			// 8. transitivity, sampled over every triple (graphs here are small).
			for _, a := range verts {
				for _, b := range verts {
					ab, _ := e.Dominates(a, b)
					if !ab {
						continue
					}
					for _, c := range verts {
						bc, _ := e.Dominates(b, c)
						if !bc {
							continue
						}
						ac, _ := e.Dominates(a, c)
						if !ac {
							t.Errorf("Dominates(%v,%v) && Dominates(%v,%v) but not Dominates(%v,%v)", a, b, b, c, a, c)
						}
					}
				}
			}

			// 9. DominatorsOf: last element is entry, first is idom.
			for i, v := range verts {
				chain, err := e.DominatorsOf(v)
				if err != nil {
					t.Fatalf("DominatorsOf(%v): %v", v, err)
				}
				if v == entry {
					if len(chain) != 0 {
						t.Errorf("DominatorsOf(entry) = %v; want empty", chain)
					}
					continue
				}
				if len(chain) == 0 || chain[len(chain)-1] != entry {
					t.Errorf("DominatorsOf(%v) last = %v; want entry %v", v, chain, entry)
				}
				if chain[0] != verts[idom[i]] {
					t.Errorf("DominatorsOf(%v)[0] = %v; want %v", v, chain[0], verts[idom[i]])
				}
			}

			// 10. dominator tree is acyclic with exactly n-1 edges.
			tree := e.DominatorTree()
			total := 0
			for _, kids := range tree {
				total += len(kids)
			}
			if total != n-1 {
				t.Errorf("dominator tree has %d edges; want %d", total, n-1)
			}
		})
	}
}

// TestVertexNotFound exercises the error path explicitly.
func TestVertexNotFound(t *testing.T) {
	edges := map[string][]string{"A": {"B"}, "B": {}}
	e := Build("A", FromEdgeMap(edges), 2)

	if _, err := e.Dominates("A", "Z"); err == nil {
		t.Error("Dominates with unreached vertex: want error, got nil")
	}
	if _, err := e.DominatorsOf("Z"); err == nil {
		t.Error("DominatorsOf with unreached vertex: want error, got nil")
	}
}

// TestSelfLoop covers §9's open question about self-loops.
func TestSelfLoop(t *testing.T) {
	edges := map[string][]string{
		"A": {"B"},
		"B": {"B", "C"},
		"C": {},
	}
	e := Build("A", FromEdgeMap(edges), 3)
	want := []int{0, 0, 1}
	if got := e.ImmediateDominators(); !reflect.DeepEqual(got, want) {
		t.Errorf("idom = %v; want %v", got, want)
	}
}

// TestExplicitStackMatchesRecursive builds the same graph with both
// strategies (by forcing nHint above and below the threshold) and checks
// the resulting idom vectors are bit-identical.
func TestExplicitStackMatchesRecursive(t *testing.T) {
	edges := allScenarios()["paper"]
	small := Build("R", FromEdgeMap(edges), 1)
	large := Build("R", FromEdgeMap(edges), explicitStackThreshold+1)

	if !reflect.DeepEqual(small.ImmediateDominators(), large.ImmediateDominators()) {
		t.Errorf("recursive idom = %v; iterative idom = %v", small.ImmediateDominators(), large.ImmediateDominators())
	}
	if !reflect.DeepEqual(small.Vertices(), large.Vertices()) {
		t.Errorf("recursive vertices = %v; iterative vertices = %v", small.Vertices(), large.Vertices())
	}
}

// TestDeepChainExplicitStack stresses the explicit-stack path with a graph
// deep enough that the recursive path would overflow a bounded stack.
func TestDeepChainExplicitStack(t *testing.T) {
	const n = 20_000
	edges := make(map[int][]int, n)
	for i := 0; i < n-1; i++ {
		edges[i] = []int{i + 1}
	}
	edges[n-1] = nil

	e := Build(0, FromEdgeMap(edges), n)
	if e.Len() != n {
		t.Fatalf("Len() = %d; want %d", e.Len(), n)
	}
	idom := e.ImmediateDominators()
	for i := 1; i < n; i++ {
		if idom[i] != i-1 {
			t.Fatalf("idom[%d] = %d; want %d", i, idom[i], i-1)
		}
	}
}

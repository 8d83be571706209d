package dom

import "github.com/ir-tools/domtree/graph"

// Reducibility reports whether the graph reachable from entry is reducible:
// every edge whose head dominates its tail (a back edge) accounts for all of
// the graph's cycles. Equivalently, the subgraph obtained by removing back
// edges is acyclic.
//
// This is a diagnostic only, built on an Engine already computed for the
// same graph. It never changes how that Engine computed idom — spec.md
// fixes Lengauer-Tarjan (with Georgiadis-Tarjan-Werneck reordering)
// regardless of reducibility.
type Reducibility[T comparable] struct {
	Reducible bool
	// BackEdges lists every edge (u, v) classified as a back edge: v
	// dominates u.
	BackEdges [][2]T
	// Irreducible lists, for an irreducible graph, the vertices of each
	// non-trivial strongly connected component that survives after back
	// edges are removed (the whole component, not a single cycle in it).
	Irreducible [][]T
}

// CheckReducibility classifies every edge reachable from entry using an
// already-built Engine, then runs an SCC decomposition over the graph with
// back edges removed: the graph is reducible iff every component of that
// reduction is a singleton with no self-loop.
func CheckReducibility[T comparable](e *Engine[T], succ Successors[T]) Reducibility[T] {
	verts := e.Vertices()

	forward := map[T][]T{}
	var backEdges [][2]T
	for _, u := range verts {
		succ(u, func(v T) {
			if dominates, err := e.Dominates(v, u); err == nil && dominates {
				backEdges = append(backEdges, [2]T{u, v})
				return
			}
			forward[u] = append(forward[u], v)
		})
	}

	g := graph.OfHashable(func(v T) []T { return forward[v] })
	scc := g.SCC(verts)

	var irreducible [][]T
	for _, comp := range scc.Components {
		if len(comp) > 0 && !scc.IsTrivial(comp[0]) {
			irreducible = append(irreducible, comp)
		}
	}

	return Reducibility[T]{
		Reducible:   len(irreducible) == 0,
		BackEdges:   backEdges,
		Irreducible: irreducible,
	}
}

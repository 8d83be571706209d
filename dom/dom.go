// Package dom computes dominator trees over directed graphs reachable from
// a single entry vertex.
//
// The construction follows Lengauer & Tarjan's 1979 algorithm (the "simple"
// eval/link, without balanced link-by-rank) with the Georgiadis-Tarjan-Werneck
// reordering: step 3 of the main loop (computing idom candidates from a
// vertex's bucket) runs at the top of the loop body for that vertex, rather
// than at the end of the iteration for its parent. Buckets are drained
// exactly once and never need deletion.
package dom

import "fmt"

// Successors enumerates, for a given vertex, its out-neighbors in a
// deterministic order. The order must be stable across calls for the same
// vertex: DFS numbering (and therefore the resulting idom vector) depends
// on it. The callback yield is invoked once per outgoing edge.
type Successors[T comparable] func(v T, yield func(T))

// Engine holds the immutable tables produced by Build. All exported
// accessors are read-only views; an Engine may be shared freely across
// goroutines once constructed.
type Engine[T comparable] struct {
	vertices    []T
	vertexIndex map[T]int
	idom        []int
	children    map[int][]int
}

// VertexNotFound is returned by Dominates and DominatorsOf when given a
// vertex that the DFS never reached from the entry.
type VertexNotFound[T any] struct {
	Vertex T
}

func (e VertexNotFound[T]) Error() string {
	return fmt.Sprintf("dom: vertex %v was not reached from the entry", e.Vertex)
}

// InvariantViolation signals a violated internal invariant of the engine —
// idom[i] < i, eval monotonicity, or a non-empty scratch table surviving
// construction. It indicates a bug in the engine, not a caller error.
type InvariantViolation struct {
	Detail string
}

func (e InvariantViolation) Error() string {
	return "dom: invariant violation: " + e.Detail
}

// Build runs DFS from entry using succ and computes the dominator tree of
// the reachable subgraph. nHint preallocates scratch tables; it need not be
// accurate — the actual reachable count is used for anything it affects
// observably.
func Build[T comparable](entry T, succ Successors[T], nHint int) *Engine[T] {
	b := newBuilder(entry, succ, nHint)
	b.dfs(entry, -1)
	b.run()
	return b.finish()
}

// Vertices returns the dense sequence of reached vertices in DFS preorder.
// Vertices()[0] is always the entry.
func (e *Engine[T]) Vertices() []T {
	out := make([]T, len(e.vertices))
	copy(out, e.vertices)
	return out
}

// Len returns the number of vertices reached from the entry.
func (e *Engine[T]) Len() int {
	return len(e.vertices)
}

// VertexIndices returns a fresh copy of the vertex-to-DFS-index map.
func (e *Engine[T]) VertexIndices() map[T]int {
	out := make(map[T]int, len(e.vertexIndex))
	for k, v := range e.vertexIndex {
		out[k] = v
	}
	return out
}

// IndexOf returns the DFS index of v and whether v was reached.
func (e *Engine[T]) IndexOf(v T) (int, bool) {
	i, found := e.vertexIndex[v]
	return i, found
}

// ImmediateDominators returns a fresh copy of the idom vector, indexed by
// DFS index. idom[0] == 0 by the entry-vertex convention (§9): it does not
// mean the entry dominates itself through a non-trivial edge.
func (e *Engine[T]) ImmediateDominators() []int {
	out := make([]int, len(e.idom))
	copy(out, e.idom)
	return out
}

// DominatorTree returns a fresh copy of the dominator tree, keyed by the
// DFS index of the parent. A parent with no dominated children has no
// entry in the map. Children lists are in ascending index order.
func (e *Engine[T]) DominatorTree() map[int][]int {
	out := make(map[int][]int, len(e.children))
	for k, v := range e.children {
		cp := make([]int, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}

// Dominates reports whether a dominates b. Entry dominates every reachable
// vertex; every vertex dominates itself. Returns VertexNotFound if either
// vertex was never reached.
func (e *Engine[T]) Dominates(a, b T) (bool, error) {
	ai, found := e.vertexIndex[a]
	if !found {
		return false, VertexNotFound[T]{a}
	}
	bi, found := e.vertexIndex[b]
	if !found {
		return false, VertexNotFound[T]{b}
	}

	if ai == bi {
		return true, nil
	}
	for i := bi; i != 0; i = e.idom[i] {
		if e.idom[i] == ai {
			return true, nil
		}
	}
	return ai == 0, nil
}

// DominatorsOf returns the chain of strict dominators of v, starting from
// v's immediate dominator and ending at the entry. Returns the empty slice
// for the entry itself. Returns VertexNotFound if v was never reached.
func (e *Engine[T]) DominatorsOf(v T) ([]T, error) {
	vi, found := e.vertexIndex[v]
	if !found {
		return nil, VertexNotFound[T]{v}
	}

	var chain []T
	for i := vi; i != 0; {
		i = e.idom[i]
		chain = append(chain, e.vertices[i])
	}
	return chain, nil
}

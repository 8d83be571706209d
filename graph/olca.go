package graph

import "github.com/spakin/disjoint"

// LCA holds the result of an offline Tarjan LCA computation: the lowest
// common ancestor for every queried pair of nodes reachable from the root
// passed to TarjanOLCA or FullTarjanOLCA.
type LCA[T any] struct {
	Pairs   map[interface{}]set
	results map[pairKey]interface{}
	elems   map[interface{}]*disjoint.Element
	// ancestor maps a disjoint-set representative to the node currently
	// designated as its Tarjan "ancestor".
	ancestor map[*disjoint.Element]interface{}
	black    map[interface{}]bool
	G        Graph[T]
}

type pairKey struct{ a, b interface{} }

type set = map[interface{}]struct{}

func (lca *LCA[T]) elemFor(node interface{}) *disjoint.Element {
	if e, ok := lca.elems[node]; ok {
		return e
	}
	e := disjoint.NewElement()
	lca.elems[node] = e
	lca.ancestor[e] = node
	return e
}

func (lca *LCA[T]) setAncestor(node interface{}, anc interface{}) {
	rep := lca.elemFor(node).Find()
	lca.ancestor[rep] = anc
}

func (lca *LCA[T]) ancestorOf(node interface{}) interface{} {
	rep := lca.elemFor(node).Find()
	return lca.ancestor[rep]
}

// FullTarjanOLCA computes the LCA of every pair of nodes reachable from
// root.
func (G Graph[T]) FullTarjanOLCA(root T) *LCA[T] {
	visited := make(map[interface{}]struct{})
	var order []T
	var rec func(T)
	rec = func(node T) {
		if _, ok := visited[node]; ok {
			return
		}
		visited[node] = struct{}{}
		order = append(order, node)
		for _, n := range G.Edges(node) {
			rec(n)
		}
	}
	rec(root)

	P := make(map[interface{}]set)
	for _, n1 := range order {
		P[n1] = make(set)
		for _, n2 := range order {
			if interface{}(n1) != interface{}(n2) {
				P[n1][n2] = struct{}{}
			}
		}
	}

	return G.TarjanOLCA(root, P)
}

// TarjanOLCA computes the LCA of every node pair named in P that is
// reachable from root, using Tarjan's offline LCA algorithm backed by a
// real union-find structure.
func (G Graph[T]) TarjanOLCA(root T, P map[interface{}]set) *LCA[T] {
	lca := &LCA[T]{
		Pairs:    P,
		results:  make(map[pairKey]interface{}),
		elems:    make(map[interface{}]*disjoint.Element),
		ancestor: make(map[*disjoint.Element]interface{}),
		black:    make(map[interface{}]bool),
		G:        G,
	}
	lca.visit(root)
	return lca
}

func (lca *LCA[T]) visit(u T) {
	lca.elemFor(u)
	lca.setAncestor(u, u)

	for _, v := range lca.G.Edges(u) {
		if _, seen := lca.elems[v]; seen {
			// Already visited through another parent (the input may be a DAG).
			continue
		}
		lca.visit(v)
		disjoint.Union(lca.elemFor(u), lca.elemFor(v))
		lca.setAncestor(u, u)
	}

	lca.black[u] = true
	for v := range lca.Pairs[u] {
		if lca.black[v] {
			anc := lca.ancestorOf(v)
			lca.results[pairKey{u, v}] = anc
			lca.results[pairKey{v, u}] = anc
		}
	}
}

// AncestorOf returns the lowest common ancestor recorded for the pair
// (a, b), and whether a result was recorded for it.
func (lca *LCA[T]) AncestorOf(a, b T) (T, bool) {
	v, ok := lca.results[pairKey{a, b}]
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

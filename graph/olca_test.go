package graph

import "testing"

func TestOLCA(t *testing.T) {
	scc := _sampleGraph.SCC([]int{0})
	G := scc.ToGraph()

	root := len(scc.Components) - 1
	lca := G.FullTarjanOLCA(root)

	for n := range scc.Components {
		if n == root {
			continue
		}
		if anc, ok := lca.AncestorOf(root, n); !ok || anc != root {
			t.Errorf("expected LCA(%d, %d) = %d (root), got %d (found=%v)", root, n, root, anc, ok)
		}
	}
}

func TestOLCASiblings(t *testing.T) {
	// 9 -> {10, 11} -> {12, 13}: 10 and 11 are siblings under 9, their
	// LCA should be 9.
	G := OfHashable(func(i int) []int { return edges[i] })
	lca := G.TarjanOLCA(9, map[interface{}]set{
		10: {11: struct{}{}},
		11: {10: struct{}{}},
	})

	anc, ok := lca.AncestorOf(10, 11)
	if !ok || anc != 9 {
		t.Errorf("expected LCA(10, 11) = 9, got %d (found=%v)", anc, ok)
	}
}

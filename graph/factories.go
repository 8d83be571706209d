package graph

import (
	"golang.org/x/tools/go/callgraph"
	"golang.org/x/tools/go/ssa"

	"github.com/ir-tools/domtree/cfg"
)

const CGPruneLimit = 10

// Creates a Graph from a callgraph with *ssa.Functions as nodes.
// Duplicate edges in the callgraph are pruned.
// If prune is true edges from call sites with at least 10 targets
// will not be included in the resulting graph.
func FromCallGraph(cg *callgraph.Graph, prune bool) Graph[*ssa.Function] {
	return OfHashable(func(fun *ssa.Function) (ret []*ssa.Function) {
		// Call edges from sites with >= CGPruneLimit targets are dropped
		// when prune is set, so fan-out call sites (a logging/dispatch hub
		// function, say) don't dominate the resulting graph's shape.
		siteCnt := map[ssa.CallInstruction]int{}
		if _, found := cg.Nodes[fun]; !found {
			return
		}

		for _, edge := range cg.Nodes[fun].Out {
			siteCnt[edge.Site]++
		}

		dedup := map[*ssa.Function]bool{}
		for _, edge := range cg.Nodes[fun].Out {
			if seen := dedup[edge.Callee.Func]; !seen &&
				(!prune || siteCnt[edge.Site] < CGPruneLimit) {
				dedup[edge.Callee.Func] = true
				ret = append(ret, edge.Callee.Func)
			}
		}
		return
	})
}

// Nodes are BB indices.
func FromBasicBlocks(fun *ssa.Function) Graph[int] {
	return OfHashable(func(node int) (ret []int) {
		bb := fun.Blocks[node]
		for _, succ := range bb.Succs {
			ret = append(ret, succ.Index)
		}
		return
	})
}

// FromCFGBlocks creates a Graph over a cfg.Graph's own *cfg.Block nodes,
// the textual-notation counterpart of FromBasicBlocks for a real *ssa.Function.
func FromCFGBlocks(g *cfg.Graph) Graph[*cfg.Block] {
	return OfHashable(func(b *cfg.Block) []*cfg.Block { return b.Successors() })
}

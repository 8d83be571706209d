package main

import (
	"fmt"
	"time"

	"github.com/ir-tools/domtree/dom"
	"github.com/ir-tools/domtree/ssacfg"
	"github.com/ir-tools/domtree/utils"
	"github.com/ir-tools/domtree/utils/pq"
)

// topWidestReported bounds how many widest dominator-tree nodes the
// metrics task prints.
const topWidestReported = 3

type fanoutEntry struct {
	vertex, fanout int
}

// metricsTask reports construction timings, the reachable vertex count,
// and a shape summary of the dominator tree for the given input.
func metricsTask(input string) {
	start := time.Now()
	g, lf, err := loadGraph(input)
	loadTook := time.Since(start)
	if err != nil {
		fmt.Println("failed to load input:", err)
		return
	}

	switch {
	case g != nil:
		buildStart := time.Now()
		engine := dom.Build(g.Entry(), g.Succ, len(g.Blocks()))
		buildTook := time.Since(buildStart)
		printMetrics("cfg.Graph", loadTook, buildTook, engine)
		printReducibility(dom.CheckReducibility(engine, g.Succ))
	case lf != nil:
		buildStart := time.Now()
		engine, err := ssacfg.FunctionDominatorTree(lf.Fn)
		buildTook := time.Since(buildStart)
		if err != nil {
			fmt.Println("failed to build dominator tree:", err)
			return
		}
		printMetrics(lf.Fn.String(), loadTook, buildTook, engine)
		printReducibility(dom.CheckReducibility(engine, ssacfg.BlockSuccessors))
	}
}

func printReducibility[T comparable](r dom.Reducibility[T]) {
	if r.Reducible {
		fmt.Println("Reducible:", utils.NameColor("yes"), "—", len(r.BackEdges), "back edge(s)")
		return
	}
	fmt.Println("Reducible:", utils.NameColor("no"), "—", len(r.Irreducible), "irreducible component(s)")
}

func printMetrics[T comparable](subject string, loadTook, buildTook time.Duration, engine *dom.Engine[T]) {
	fmt.Println("================ Results =====================")
	fmt.Println()
	fmt.Println("Subject:", utils.NameColor(subject))
	fmt.Println("Load time:", loadTook)
	fmt.Println("Construction time:", buildTook)
	fmt.Println("Reachable vertices:", engine.Len())

	tree := engine.DominatorTree()
	top := pq.Bounded(topWidestReported, func(a, b fanoutEntry) bool { return a.fanout < b.fanout })
	for parent, children := range tree {
		top.Add(fanoutEntry{vertex: parent, fanout: len(children)})
	}

	var widest []fanoutEntry
	for !top.IsEmpty() {
		widest = append(widest, top.GetNext())
	}
	fmt.Printf("Widest dominator-tree fan-out (top %d):\n", topWidestReported)
	for i := len(widest) - 1; i >= 0; i-- {
		fmt.Println("  vertex index", widest[i].vertex, "->", widest[i].fanout, "children")
	}
	fmt.Println("Internal (non-leaf) dominator-tree nodes:", len(tree))

	var maxDepth int
	for _, v := range engine.Vertices() {
		chain, err := engine.DominatorsOf(v)
		if err != nil {
			continue
		}
		if len(chain) > maxDepth {
			maxDepth = len(chain)
		}
	}
	fmt.Println("Dominator-tree depth:", maxDepth+1)
	fmt.Println()
}

package main

import (
	"fmt"
	"log"
	"os"

	godot "github.com/ir-tools/domtree/dot"
	"github.com/ir-tools/domtree/graph"

	mycfg "github.com/ir-tools/domtree/cfg"
	"github.com/ir-tools/domtree/ssacfg"
)

// dotTask writes the part of the input control-flow graph reachable from
// its entry to stdout in dot notation and, with -visualize, also renders
// it to an image through Graphviz. The dominator tree is not rendered.
func dotTask(input string) {
	g, lf, err := loadGraph(input)
	if err != nil {
		log.Fatalln("failed to load input:", err)
	}

	var dg *godot.DotGraph
	switch {
	case g != nil:
		dg = dotGraphFromCFG(g)
	case lf != nil:
		dg = dotGraphFromSSA(lf)
	}

	if err := dg.WriteDot(os.Stdout); err != nil {
		log.Fatalln("failed writing dot output:", err)
	}

	if opts.Visualize() {
		var buf stringWriter
		if err := dg.WriteDot(&buf); err != nil {
			log.Fatalln(err)
		}
		img, err := godot.DotToImage("", opts.OutputFormat(), []byte(buf.String()))
		if err != nil {
			log.Fatalln("failed to render image:", err)
		}
		fmt.Println("wrote", img)
	}
}

// dotGraphFromCFG renders the blocks and edges reachable from g's entry,
// coloring the entry block distinctly. Unreachable blocks are omitted so
// the rendering matches the vertex set dom.Build itself would process.
func dotGraphFromCFG(g *mycfg.Graph) *godot.DotGraph {
	gg := graph.FromCFGBlocks(g)

	var reachable []*mycfg.Block
	gg.BFSV(func(b *mycfg.Block) bool {
		reachable = append(reachable, b)
		return false
	}, g.Entry())

	return gg.ToDotGraph(reachable, &graph.VisualizationConfig[*mycfg.Block]{
		NodeAttrs: func(b *mycfg.Block) (string, godot.DotAttrs) {
			attrs := godot.DotAttrs{"shape": "box"}
			if b == g.Entry() {
				attrs["fillcolor"] = "lightblue"
				attrs["style"] = "filled"
			}
			return b.Label, attrs
		},
	})
}

// dotGraphFromSSA renders the basic blocks reachable from the loaded
// function's entry block (BB 0), one node per *ssa.BasicBlock.
func dotGraphFromSSA(lf *ssacfg.LoadedFunction) *godot.DotGraph {
	gg := graph.FromBasicBlocks(lf.Fn)

	var nodes []int
	gg.BFSV(func(i int) bool {
		nodes = append(nodes, i)
		return false
	}, 0)

	return gg.ToDotGraph(nodes, &graph.VisualizationConfig[int]{
		NodeAttrs: func(i int) (string, godot.DotAttrs) {
			attrs := godot.DotAttrs{"shape": "box"}
			if i == 0 {
				attrs["fillcolor"] = "lightblue"
				attrs["style"] = "filled"
			}
			return fmt.Sprintf("bb%d", i), attrs
		},
	})
}

// stringWriter is a minimal io.Writer that accumulates into a string,
// used to hand WriteDot's output to DotToImage without a temp file.
type stringWriter struct {
	buf []byte
}

func (w *stringWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}

func (w *stringWriter) String() string { return string(w.buf) }

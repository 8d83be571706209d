package main

import (
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"

	"github.com/ir-tools/domtree/cfg"
	"github.com/ir-tools/domtree/dom"
	"github.com/ir-tools/domtree/ssacfg"
	"github.com/ir-tools/domtree/utils"
)

var (
	opts = utils.Opts()
	task = opts.Task()
)

func main() {
	utils.ParseArgs()
	input := utils.MakeInput()
	utils.MustExist(input)

	switch {
	case task.IsDomTree():
		domTreeTask(input)
	case task.IsDot():
		dotTask(input)
	case task.IsCheckProps():
		checkPropsTask()
	case task.IsFootprint():
		footprintTask()
	case task.IsMetrics():
		metricsTask(input)
	default:
		log.Fatalln("no task matched — this indicates a bug in -task validation")
	}
}

// loadGraph builds a dominator-ready graph from either a textual cfg
// notation file (the default) or a Go package pattern (-pkg), returning
// whichever of the two representations applies.
func loadGraph(input string) (*cfg.Graph, *ssacfg.LoadedFunction, error) {
	if !opts.PkgMode() {
		g, err := parseCFGInput(input)
		return g, nil, err
	}

	lf, err := ssacfg.LoadFunction(input, opts.Function(), opts.IncludeTests())
	return nil, lf, err
}

func parseCFGInput(input string) (*cfg.Graph, error) {
	if input == "-" {
		return cfg.Parse(os.Stdin)
	}
	f, err := os.Open(input)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return cfg.Parse(f)
}

func domTreeTask(input string) {
	g, lf, err := loadGraph(input)
	if err != nil {
		log.Fatalln(color.HiRedString("failed to load input:"), err)
	}

	switch {
	case g != nil:
		succ := g.Succ
		if opts.Reverse() {
			succ = reverseCFG(g)
		}
		engine := dom.Build(g.Entry(), succ, len(g.Blocks()))
		printIDomVector(engine, g.Blocks())
	case lf != nil:
		engine, err := ssacfg.FunctionDominatorTree(lf.Fn)
		if err != nil {
			log.Fatalln(color.HiRedString("failed to build dominator tree:"), err)
		}
		printIDomVector(engine, engine.Vertices())
	}
}

func reverseCFG(g *cfg.Graph) func(*cfg.Block, func(*cfg.Block)) {
	preds := map[*cfg.Block][]*cfg.Block{}
	for _, b := range g.Blocks() {
		preds[b] = g.Predecessors(b)
	}
	return func(b *cfg.Block, yield func(*cfg.Block)) {
		for _, p := range preds[b] {
			yield(p)
		}
	}
}

func printIDomVector[T comparable](engine *dom.Engine[T], verts []T) {
	idom := engine.ImmediateDominators()
	for i, v := range verts {
		fmt.Printf("%s\t%s\t%s\n",
			color.BlueString(fmt.Sprint(i)),
			utils.VertexColor(fmt.Sprint(v)),
			utils.EdgeColor(fmt.Sprint(idom[i])))
	}
}

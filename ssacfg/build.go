package ssacfg

import (
	"fmt"

	"golang.org/x/tools/go/callgraph"
	"golang.org/x/tools/go/callgraph/rta"
	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"

	"github.com/ir-tools/domtree/dom"
	"github.com/ir-tools/domtree/graph"
	"github.com/ir-tools/domtree/utils/slices"
)

// BuildSSA loads and type-checks the packages named by path according to
// cfg, builds their SSA representation, and returns the resulting program
// together with the SSA packages corresponding to the loaded source
// packages.
func BuildSSA(cfg LoadConfig, path string) (*ssa.Program, []*ssa.Package, error) {
	pkgs, err := LoadPackages(cfg, path)
	if err != nil {
		return nil, nil, err
	}
	return buildSSA(pkgs)
}

// BuildSSAFromSource is the in-memory counterpart of BuildSSA, useful for
// tests.
func BuildSSAFromSource(source string) (*ssa.Program, []*ssa.Package, error) {
	pkgs, err := LoadPackagesFromSource(source)
	if err != nil {
		return nil, nil, err
	}
	return buildSSA(pkgs)
}

func buildSSA(pkgs []*packages.Package) (*ssa.Program, []*ssa.Package, error) {
	prog, ssapkgs := ssautil.AllPackages(pkgs, ssa.SanityCheckFunctions)
	prog.Build()

	nonNil := make([]*ssa.Package, 0, len(ssapkgs))
	for _, p := range ssapkgs {
		if p != nil {
			nonNil = append(nonNil, p)
		}
	}
	return prog, nonNil, nil
}

// LoadedFunction bundles a loaded program together with the specific
// function the CLI was asked to analyze.
type LoadedFunction struct {
	Prog *ssa.Program
	Pkgs []*ssa.Package
	Fn   *ssa.Function
}

// LoadFunction loads the Go package(s) named by pattern, builds their SSA
// form, and locates the function named fn (bare name, matched against
// every loaded package in order).
func LoadFunction(pattern, fn string, includeTests bool) (*LoadedFunction, error) {
	prog, pkgs, err := BuildSSA(DefaultConfig(includeTests), pattern)
	if err != nil {
		return nil, err
	}

	pkg, ok := slices.Find(pkgs, func(p *ssa.Package) bool { return p.Func(fn) != nil })
	if !ok {
		return nil, fmt.Errorf("ssacfg: no function named %q found in %q", fn, pattern)
	}
	return &LoadedFunction{Prog: prog, Pkgs: pkgs, Fn: pkg.Func(fn)}, nil
}

// BlockSuccessors adapts *ssa.BasicBlock's Succs slice to dom.Successors.
func BlockSuccessors(b *ssa.BasicBlock, yield func(*ssa.BasicBlock)) {
	for _, s := range b.Succs {
		yield(s)
	}
}

// FunctionDominatorTree builds the dominator tree of fn's control-flow
// graph, with the function's entry block as the root.
func FunctionDominatorTree(fn *ssa.Function) (*dom.Engine[*ssa.BasicBlock], error) {
	if len(fn.Blocks) == 0 {
		return nil, dom.VertexNotFound[*ssa.BasicBlock]{Vertex: nil}
	}

	return dom.Build(fn.Blocks[0], BlockSuccessors, len(fn.Blocks)), nil
}

// CallGraphDominatorTree runs RTA from every main and init function in
// mains and builds the dominator tree of the resulting call graph, using
// each call's static callee set as the successor relation. The tree is
// rooted at the first of those roots (the first package's main, or its
// init if it has no main); other roots appear only if reachable from it. Synthetic nodes with no callee (e.g. for
// calls through values we couldn't resolve) are dropped.
func CallGraphDominatorTree(mains []*ssa.Package) (*dom.Engine[*ssa.Function], *rta.Result, error) {
	var roots []*ssa.Function
	for _, main := range mains {
		if f := main.Func("main"); f != nil {
			roots = append(roots, f)
		}
		if f := main.Func("init"); f != nil {
			roots = append(roots, f)
		}
	}
	if len(roots) == 0 {
		return nil, nil, dom.VertexNotFound[*ssa.Function]{Vertex: nil}
	}

	res := rta.Analyze(roots, true)

	entry := roots[0]
	succ := func(f *ssa.Function, yield func(*ssa.Function)) {
		node := res.CallGraph.Nodes[f]
		if node == nil {
			return
		}
		seen := map[*ssa.Function]bool{}
		for _, edge := range node.Out {
			callee := edge.Callee.Func
			if callee != nil && !seen[callee] {
				seen[callee] = true
				yield(callee)
			}
		}
	}

	return dom.Build(entry, succ, len(res.CallGraph.Nodes)), res, nil
}

// ToCallGraph converts an RTA result's call graph to a generic graph.Graph
// over *ssa.Function, pruning edges from call sites with large fan-out the
// way factories.FromCallGraph does for points-to call graphs.
func ToCallGraph(cg *callgraph.Graph) graph.Graph[*ssa.Function] {
	return graph.FromCallGraph(cg, true)
}

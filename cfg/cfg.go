// Package cfg implements a minimal basic-block control-flow graph used as
// a human-writable stand-in for real compiled control flow: a Builder
// assembles a graph of Blocks from a line-oriented textual notation, and
// the resulting graph implements dom.Successors directly.
package cfg

import (
	"fmt"

	"github.com/ir-tools/domtree/typesys"
)

// Instruction is one flat statement inside a Block. Op is "goto", "if" or
// "ret" for control statements; for an assignment parsed from the
// notation it is the operator name ("const", "add", ...), and String also
// renders a programmatic Op "assign" as "dst := args". Dst names the local
// variable slot the instruction writes to, if any; Args holds the
// remaining operands (names, literals or target labels), in notation order.
type Instruction struct {
	Op   string
	Dst  string
	Args []string
}

// Block is a single basic block: a label, a straight-line list of
// instructions, and the successor labels reached by falling off its last
// instruction (a goto, a conditional branch's two targets, or none for a
// ret).
type Block struct {
	Label        string
	Instructions []Instruction
	succLabels   []string

	graph *Graph
}

// Locals returns, in first-occurrence order, every local-variable name
// mentioned as an instruction destination in the block. These are the
// slots a typesys.Term can be attached to via Graph.SetTerm, and then
// sized with Block.Footprint.
func (b *Block) Locals() []string {
	seen := map[string]bool{}
	var out []string
	for _, insn := range b.Instructions {
		if insn.Dst != "" && !seen[insn.Dst] {
			seen[insn.Dst] = true
			out = append(out, insn.Dst)
		}
	}
	return out
}

// Successors returns the blocks this block may transfer control to.
// Unknown labels (a goto to a block that was never defined) are silently
// dropped; Builder.Finish reports those as errors before a Graph is ever
// handed out.
func (b *Block) Successors() []*Block {
	out := make([]*Block, 0, len(b.succLabels))
	for _, l := range b.succLabels {
		if s, ok := b.graph.blocks[l]; ok {
			out = append(out, s)
		}
	}
	return out
}

// Graph is a complete control-flow graph: a set of labeled blocks and the
// label of the entry block.
type Graph struct {
	blocks map[string]*Block
	order  []string // insertion order, for deterministic debug printing
	entry  string
	terms  map[string]*typesys.Term // see SetTerm/TermOf in footprint.go
}

// Entry returns the graph's entry block.
func (g *Graph) Entry() *Block {
	return g.blocks[g.entry]
}

// Block looks up a block by label.
func (g *Graph) Block(label string) (*Block, bool) {
	b, ok := g.blocks[label]
	return b, ok
}

// Blocks returns every block in the graph, in the order they were defined.
func (g *Graph) Blocks() []*Block {
	out := make([]*Block, len(g.order))
	for i, l := range g.order {
		out[i] = g.blocks[l]
	}
	return out
}

// Succ is a dom.Successors-shaped adapter: Succ(b, yield) calls yield once
// per successor of b, in notation order.
func (g *Graph) Succ(b *Block, yield func(*Block)) {
	for _, s := range b.Successors() {
		yield(s)
	}
}

// Predecessors returns every block with an edge into b, recomputed from
// scratch on every call.
func (g *Graph) Predecessors(b *Block) []*Block {
	preds := map[string][]*Block{}
	for _, from := range g.Blocks() {
		for _, to := range from.Successors() {
			preds[to.Label] = append(preds[to.Label], from)
		}
	}
	return preds[b.Label]
}

func (i Instruction) String() string {
	switch i.Op {
	case "assign":
		return fmt.Sprintf("%s := %v", i.Dst, i.Args)
	case "goto":
		return fmt.Sprintf("goto %s", i.Args[0])
	case "if":
		return fmt.Sprintf("if %s goto %s else %s", i.Args[0], i.Args[1], i.Args[2])
	case "ret":
		return "ret"
	default:
		return fmt.Sprintf("%s %v -> %s", i.Op, i.Args, i.Dst)
	}
}

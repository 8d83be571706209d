package cfg

import (
	"fmt"

	i "github.com/ir-tools/domtree/utils/indenter"
)

// String renders the graph as an indented listing of blocks, their
// instructions, and their successor labels — a debug aid, not a notation
// the Builder can re-parse.
func (g *Graph) String() string {
	var blocks []func() string
	for _, b := range g.Blocks() {
		b := b
		blocks = append(blocks, func() string { return b.String() })
	}

	return i.Indenter().Start("cfg.Graph {").NestThunked(blocks...).End("}")
}

func (b *Block) String() string {
	label := b.Label
	if b.graph != nil && b.graph.entry == b.Label {
		label += " (entry)"
	}

	var lines []func() string
	for _, insn := range b.Instructions {
		insn := insn
		lines = append(lines, func() string { return insn.String() })
	}
	if len(b.succLabels) > 0 {
		succs := b.succLabels
		lines = append(lines, func() string { return fmt.Sprintf("-> %v", succs) })
	}

	if len(lines) == 0 {
		return label + ": {}"
	}
	return i.Indenter().Start(label + ": {").NestThunked(lines...).End("}")
}

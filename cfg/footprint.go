package cfg

import (
	"fmt"

	"github.com/ir-tools/domtree/typesys"
)

// SetTerm attaches a resolved type term to a local variable slot of the
// named block, so a later Footprint query can size it.
func (g *Graph) SetTerm(blockLabel, local string, t *typesys.Term) {
	if g.terms == nil {
		g.terms = map[string]*typesys.Term{}
	}
	g.terms[termKey(blockLabel, local)] = t
}

// TermOf looks up the type term attached to a local variable slot.
func (g *Graph) TermOf(blockLabel, local string) (*typesys.Term, bool) {
	t, ok := g.terms[termKey(blockLabel, local)]
	return t, ok
}

func termKey(blockLabel, local string) string {
	return blockLabel + "." + local
}

// Footprint evaluates typesys.StackSize for every local in b that has a
// term attached via Graph.SetTerm, in b.Locals order. A local with no
// attached term is skipped rather than treated as an error — most
// real-world blocks mix typed and untyped locals, and this is a
// diagnostic over whichever subset was annotated.
func (b *Block) Footprint(g *Graph, env typesys.TypeEnvironment) (map[string]int, error) {
	sizes := make(map[string]int)
	for _, local := range b.Locals() {
		t, ok := g.TermOf(b.Label, local)
		if !ok {
			continue
		}
		size, err := typesys.StackSize(env, t)
		if err != nil {
			return nil, fmt.Errorf("cfg: footprint of %s.%s: %w", b.Label, local, err)
		}
		sizes[local] = size
	}
	return sizes, nil
}

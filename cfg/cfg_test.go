package cfg_test

import (
	"strings"
	"testing"

	"github.com/ir-tools/domtree/cfg"
	"github.com/ir-tools/domtree/dom"
)

const diamondSrc = `
entry:
x := const 1
if x goto left else right

left:
y := add x, 1
goto join

right:
y := add x, 2
goto join

join:
ret
`

func TestParseDiamond(t *testing.T) {
	g, err := cfg.Parse(strings.NewReader(diamondSrc))
	if err != nil {
		t.Fatal(err)
	}

	if g.Entry().Label != "entry" {
		t.Fatalf("expected entry block 'entry', got %q", g.Entry().Label)
	}

	blocks := g.Blocks()
	if len(blocks) != 4 {
		t.Fatalf("expected 4 blocks, got %d", len(blocks))
	}

	left, ok := g.Block("left")
	if !ok {
		t.Fatal("missing block 'left'")
	}
	if got := len(left.Locals()); got != 1 || left.Locals()[0] != "y" {
		t.Errorf("expected left's locals to be [y], got %v", left.Locals())
	}
}

func TestParseUndefinedLabel(t *testing.T) {
	_, err := cfg.Parse(strings.NewReader("entry:\ngoto nowhere\n"))
	if err == nil {
		t.Fatal("expected an error for a goto to an undefined label")
	}
}

func TestDominatorTreeOverDiamond(t *testing.T) {
	g, err := cfg.Parse(strings.NewReader(diamondSrc))
	if err != nil {
		t.Fatal(err)
	}

	engine := dom.Build(g.Entry(), g.Succ, len(g.Blocks()))

	join, _ := g.Block("join")
	left, _ := g.Block("left")
	right, _ := g.Block("right")

	chain, err := engine.DominatorsOf(join)
	if err != nil {
		t.Fatal(err)
	}
	if len(chain) == 0 || chain[0] != g.Entry() {
		t.Errorf("expected idom(join) = entry, got chain %v", chain)
	}

	if dominates, _ := engine.Dominates(left, join); dominates {
		t.Errorf("left should not dominate join (right is an alternate path)")
	}
	if dominates, _ := engine.Dominates(right, join); dominates {
		t.Errorf("right should not dominate join (left is an alternate path)")
	}
}

package cfg

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// TestGraphStringGolden pins the indented listing String() produces for a
// small two-block graph against a checked-in fixture, so a change to the
// indenter combinator chain (or to how blocks/edges are rendered) shows up
// as an explicit diff instead of silently drifting.
func TestGraphStringGolden(t *testing.T) {
	b := NewBuilder()
	b.AddBlock("start")
	b.AddEdge("end")
	b.AddBlock("end")

	g, err := b.Finish()
	if err != nil {
		t.Fatal(err)
	}

	goldie.New(t).Assert(t, "cfg_graph_string", []byte(g.String()))
}

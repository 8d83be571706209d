package main

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/ir-tools/domtree/dom"
	"github.com/ir-tools/domtree/typesys"
)

// checkProperty names a single assertion the -task=check-props runner
// replays against a built-in scenario, mirroring the dominator engine's
// own universal-property test suite as a runtime self-check a user can
// invoke without `go test`.
type checkProperty struct {
	name string
	run  func(e *dom.Engine[string]) error
}

var checkScenarios = map[string]map[string][]string{
	"diamond": {
		"A": {"B"},
		"B": {"C", "D"},
		"C": {"D"},
		"D": {},
	},
	"irreducible": {
		"A": {"B", "D"},
		"B": {"C"},
		"C": {"G", "A"},
		"D": {"E", "F"},
		"E": {"G"},
		"F": {"G"},
		"G": {"C"},
	},
}

var checkProperties = []checkProperty{
	{"idom[0] == 0", func(e *dom.Engine[string]) error {
		if idom := e.ImmediateDominators(); idom[0] != 0 {
			return fmt.Errorf("idom[0] = %d, want 0", idom[0])
		}
		return nil
	}},
	{"idom[i] < i for all i > 0", func(e *dom.Engine[string]) error {
		idom := e.ImmediateDominators()
		for i := 1; i < e.Len(); i++ {
			if idom[i] >= i {
				return fmt.Errorf("idom[%d] = %d, want < %d", i, idom[i], i)
			}
		}
		return nil
	}},
	{"every vertex's dominator chain reaches the entry", func(e *dom.Engine[string]) error {
		for _, v := range e.Vertices() {
			chain, err := e.DominatorsOf(v)
			if err != nil {
				return err
			}
			if v == e.Vertices()[0] {
				if len(chain) != 0 {
					return fmt.Errorf("entry's dominator chain should be empty, got %v", chain)
				}
				continue
			}
			if len(chain) == 0 || chain[len(chain)-1] != e.Vertices()[0] {
				return fmt.Errorf("dominator chain of %v does not end at the entry: %v", v, chain)
			}
		}
		return nil
	}},
	{"dominates is reflexive", func(e *dom.Engine[string]) error {
		for _, v := range e.Vertices() {
			ok, err := e.Dominates(v, v)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%v does not dominate itself", v)
			}
		}
		return nil
	}},
	{"entry dominates every reachable vertex", func(e *dom.Engine[string]) error {
		entry := e.Vertices()[0]
		for _, v := range e.Vertices() {
			ok, err := e.Dominates(entry, v)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("entry does not dominate %v", v)
			}
		}
		return nil
	}},
}

// checkPropsTask runs the dominator engine's universal properties against
// a handful of built-in scenarios, as a runtime self-check.
func checkPropsTask() {
	failures := 0
	for name, edges := range checkScenarios {
		e := dom.Build("A", dom.FromEdgeMap(edges), len(edges))
		for _, prop := range checkProperties {
			if err := prop.run(e); err != nil {
				failures++
				fmt.Printf("%s %s/%s: %v\n", color.HiRedString("FAIL"), name, prop.name, err)
			} else {
				fmt.Printf("%s %s/%s\n", color.GreenString("PASS"), name, prop.name)
			}
		}
	}

	fmt.Println()
	if failures == 0 {
		fmt.Println(color.GreenString("all properties held across %d scenario(s)", len(checkScenarios)))
	} else {
		fmt.Println(color.HiRedString("%d propert(y/ies) failed", failures))
	}
}

// footprintLibrary is a small built-in library of structural types that
// exercises every StackSize rule: primitives, Pair additivity, a
// directly-aliased constructor, and a generic constructor requiring
// monomorphization.
func footprintLibrary() (typesys.TypeEnvironment, map[string]*typesys.Term) {
	elem := &typesys.Term{Kind: typesys.Variable, Name: "A"}
	boxUnderlying := typesys.NewTypeFunction(typesys.NewTuple(elem), typesys.NewPair(typesys.WordTerm, elem))

	env := typesys.NewEnvironment(map[string]*typesys.Term{
		"Flag": typesys.BoolTerm,
		"Box":  boxUnderlying,
	})

	library := map[string]*typesys.Term{
		"Unit":              typesys.UnitTerm,
		"Bool":              typesys.BoolTerm,
		"Word":              typesys.WordTerm,
		"Func(Bool->Word)":  typesys.NewFunc(typesys.BoolTerm, typesys.WordTerm),
		"Pair(Bool,Word)":   typesys.NewPair(typesys.BoolTerm, typesys.WordTerm),
		"Flag":              typesys.NewConstructor("Flag"),
		"Box(Bool)":         typesys.NewConstructor("Box", typesys.BoolTerm),
		"Integer (invalid)": typesys.IntegerTerm,
	}
	return env, library
}

// footprintTask evaluates StackSize over the built-in type library and
// prints the result (or error) for each entry.
func footprintTask() {
	env, library := footprintLibrary()

	names := make([]string, 0, len(library))
	for name := range library {
		names = append(names, name)
	}

	for _, name := range names {
		t := library[name]
		size, err := typesys.StackSize(env, t)
		if err != nil {
			fmt.Printf("%s\t%s\n", color.HiGreenString(name), color.HiRedString(err.Error()))
			continue
		}
		fmt.Printf("%s\t%s\n", color.HiGreenString(name), color.BlueString(fmt.Sprint(size)))
	}
}

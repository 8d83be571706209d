package ssacfg

import "testing"

const sampleSource = `package testpackage

func fib(n int) int {
	if n < 2 {
		return n
	}
	return fib(n-1) + fib(n-2)
}

func main() {
	_ = fib(10)
}
`

func TestLoadPackagesFromSource(t *testing.T) {
	pkgs, err := LoadPackagesFromSource(sampleSource)
	if err != nil {
		t.Fatal(err)
	}
	if len(pkgs) != 1 {
		t.Fatalf("expected load result to contain 1 package, got: %d", len(pkgs))
	}
	if pkgs[0].Types == nil {
		t.Errorf("expected type information to be populated")
	}
}

func TestBuildSSAFromSource(t *testing.T) {
	prog, pkgs, err := BuildSSAFromSource(sampleSource)
	if err != nil {
		t.Fatal(err)
	}
	if len(pkgs) != 1 {
		t.Fatalf("expected 1 SSA package, got %d", len(pkgs))
	}

	fn := pkgs[0].Func("fib")
	if fn == nil {
		t.Fatal("expected to find function 'fib'")
	}
	if len(fn.Blocks) == 0 {
		t.Fatal("expected fib to have at least one basic block")
	}

	_ = prog
}

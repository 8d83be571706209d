package dom

// explicitStackThreshold is the reachable-vertex count above which DFS and
// path compression switch from recursive to explicit-stack iteration, per
// §5's note that both routines recurse to depth O(n) and runtimes with
// bounded stacks must convert to iteration once n may exceed a safe bound.
// Both code paths must (and do) produce identical idom vectors.
const explicitStackThreshold = 10_000

type builder[T comparable] struct {
	succ Successors[T]

	vertices    []T
	vertexIndex map[T]int

	parent   []int
	semi     []int
	label    []int
	ancestor []int // meaningful only where hasAncestor is true; ancestor[0] is never read

	// hasAncestor records whether ancestor[i] is set, since DFS index 0 (the
	// entry) is itself a legitimate ancestor value.
	hasAncestor []bool

	predecessors [][]int // set semantics: duplicates collapse via predSeen
	predSeen     []map[int]bool

	bucket [][]int

	idom []int

	// iterative selects the explicit-stack DFS/eval strategy over the
	// recursive one. Decided once from nHint (rather than the vertex count
	// discovered mid-traversal) since the choice of code path cannot change
	// partway through a single DFS.
	iterative bool
}

func newBuilder[T comparable](entry T, succ Successors[T], nHint int) *builder[T] {
	if nHint < 0 {
		nHint = 0
	}
	b := &builder[T]{
		succ:        succ,
		vertices:    make([]T, 0, nHint),
		vertexIndex: make(map[T]int, nHint),
		iterative:   nHint >= explicitStackThreshold,
	}
	b.visit(entry)
	return b
}

// visit assigns the next DFS index to w if it hasn't been seen, and returns
// (index, alreadySeen).
func (b *builder[T]) visit(w T) (int, bool) {
	if i, found := b.vertexIndex[w]; found {
		return i, true
	}
	i := len(b.vertices)
	b.vertices = append(b.vertices, w)
	b.vertexIndex[w] = i

	b.parent = append(b.parent, -1)
	b.semi = append(b.semi, i)
	b.label = append(b.label, i)
	b.ancestor = append(b.ancestor, 0)
	b.hasAncestor = append(b.hasAncestor, false)
	b.predecessors = append(b.predecessors, nil)
	b.predSeen = append(b.predSeen, nil)
	b.bucket = append(b.bucket, nil)
	b.idom = append(b.idom, 0)
	return i, false
}

func (b *builder[T]) addPredecessor(w, v int) {
	if b.predSeen[w] == nil {
		b.predSeen[w] = make(map[int]bool, 4)
	}
	if !b.predSeen[w][v] {
		b.predSeen[w][v] = true
		b.predecessors[w] = append(b.predecessors[w], v)
	}
}

// dfs assigns preorder DFS indices reachable from start, recording parent
// pointers and predecessor sets. parentIdx is -1 for the entry.
func (b *builder[T]) dfs(start T, parentIdx int) {
	startIdx, _ := b.visit(start)
	if parentIdx >= 0 {
		b.parent[startIdx] = parentIdx
	}

	if b.iterative {
		b.dfsIterative(start, startIdx)
	} else {
		b.dfsRecursive(start, startIdx)
	}
}

func (b *builder[T]) dfsRecursive(v T, vIdx int) {
	b.succ(v, func(w T) {
		wIdx, seen := b.visit(w)
		b.addPredecessor(wIdx, vIdx)
		if !seen {
			b.parent[wIdx] = vIdx
			b.dfsRecursive(w, wIdx)
		}
	})
}

type dfsFrame[T comparable] struct {
	v    T
	vIdx int
	out  []T
	next int
}

// dfsIterative is the explicit-stack equivalent of dfsRecursive: it visits
// vertices and assigns parent/predecessor information in exactly the same
// order, so the resulting idom vector is identical.
func (b *builder[T]) dfsIterative(start T, startIdx int) {
	stack := []*dfsFrame[T]{{v: start, vIdx: startIdx}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.out == nil {
			var out []T
			b.succ(top.v, func(w T) { out = append(out, w) })
			top.out = out
		}
		if top.next >= len(top.out) {
			stack = stack[:len(stack)-1]
			continue
		}
		w := top.out[top.next]
		top.next++

		wIdx, seen := b.visit(w)
		b.addPredecessor(wIdx, top.vIdx)
		if !seen {
			b.parent[wIdx] = top.vIdx
			stack = append(stack, &dfsFrame[T]{v: w, vIdx: wIdx})
		}
	}
}

// eval returns the ancestor of v (in the virtual forest built by link) with
// the minimum semi value on the path from v to the forest root, compressing
// the path as it goes. If v has no ancestor yet, it returns v itself.
func (b *builder[T]) eval(v int) int {
	if !b.hasAncestor[v] {
		return v
	}
	if b.iterative {
		b.compressIterative(v)
	} else {
		b.compressRecursive(v)
	}
	return b.label[v]
}

// compressRecursive compresses the ancestor chain from v to the forest
// root, setting label[v] to the node with globally minimal semi value seen
// along the original (uncompressed) path, and repointing ancestor[v]
// directly at the root.
func (b *builder[T]) compressRecursive(v int) {
	a := b.ancestor[v]
	if !b.hasAncestor[a] {
		return
	}
	b.compressRecursive(a)
	if b.semi[b.label[a]] < b.semi[b.label[v]] {
		b.label[v] = b.label[a]
	}
	b.ancestor[v] = b.ancestor[a]
	b.hasAncestor[v] = b.hasAncestor[a]
}

// compressIterative is the explicit-stack equivalent of compressRecursive.
//
// The recursive version's base case leaves a node x unmodified whenever
// ancestor[x] is already the forest root (hasAncestor[ancestor[x]] ==
// false); every node closer to v than that base node gets its label/
// ancestor updated by merging with its already-finalized child in the
// chain. We replicate that by collecting the chain from v down to (and
// including) that base node, then folding it from the base back up to v.
func (b *builder[T]) compressIterative(v int) {
	path := []int{v}
	cur := v
	for b.hasAncestor[b.ancestor[cur]] {
		cur = b.ancestor[cur]
		path = append(path, cur)
	}

	for i := len(path) - 2; i >= 0; i-- {
		x := path[i]
		child := path[i+1]
		if b.semi[b.label[child]] < b.semi[b.label[x]] {
			b.label[x] = b.label[child]
		}
		b.ancestor[x] = b.ancestor[child]
		b.hasAncestor[x] = b.hasAncestor[child]
	}
}

// link attaches w to its DFS parent in the virtual forest.
func (b *builder[T]) link(parentIdx, wIdx int) {
	b.ancestor[wIdx] = parentIdx
	b.hasAncestor[wIdx] = true
}

// run executes the main loop (steps 2 and 3, with step 3 reordered to the
// top per the Georgiadis-Tarjan-Werneck optimization) and the fix-up pass
// (step 4), then materializes the dominator tree.
func (b *builder[T]) run() {
	n := len(b.vertices)

	for w := n - 1; w >= 1; w-- {
		// Step 3 (moved up): resolve idom candidates for vertices whose
		// semidominator was fixed to w during a previous iteration.
		for _, v := range b.bucket[w] {
			u := b.eval(v)
			if b.semi[u] < b.semi[v] {
				b.idom[v] = u
			} else {
				b.idom[v] = w
			}
		}
		b.bucket[w] = nil

		// Step 2: compute semi[w].
		for _, p := range b.predecessors[w] {
			u := b.eval(p)
			if b.semi[u] < b.semi[w] {
				b.semi[w] = b.semi[u]
			}
		}
		b.bucket[b.semi[w]] = append(b.bucket[b.semi[w]], w)

		b.link(b.parent[w], w)
	}

	// Step 4 (fix-up).
	b.idom[0] = 0
	for i := 1; i < n; i++ {
		if b.idom[i] != b.semi[i] {
			b.idom[i] = b.idom[b.idom[i]]
		}
	}
}

func (b *builder[T]) finish() *Engine[T] {
	n := len(b.vertices)
	children := make(map[int][]int)
	for i := 1; i < n; i++ {
		if b.idom[i] >= i {
			panic(InvariantViolation{Detail: "idom[i] >= i after fix-up"})
		}
		children[b.idom[i]] = append(children[b.idom[i]], i)
	}

	return &Engine[T]{
		vertices:    b.vertices,
		vertexIndex: b.vertexIndex,
		idom:        b.idom,
		children:    children,
	}
}

package pq

import "container/heap"

// lessFunc is a comparison function between two elements of type T.
type lessFunc[T any] func(T, T) bool

// _heap satisfies the heap.Interface. It includes a list of elements,
// and a comparison function.
type _heap[T any] struct {
	list []T
	less lessFunc[T]
}

// Len returns the size of the heap.
func (h _heap[T]) Len() int {
	return len(h.list)
}

// Swap interchanges the values of the elements at the given indices.
func (h _heap[T]) Swap(i, j int) {
	l := h.list
	l[i], l[j] = l[j], l[i]
}

// Push appends a given element to the heap.
func (h *_heap[T]) Push(x any) {
	h.list = append(h.list, x.(T))
}

// Pop retrieves the last element in the heap.
func (h *_heap[T]) Pop() any {
	old := h.list
	n := len(old)
	x := old[n-1]
	h.list = old[0 : n-1]
	return x
}

// Less compares two elements in the heap at the given indices.
func (h _heap[T]) Less(i, j int) bool {
	return h.less(h.list[i], h.list[j])
}

var _ heap.Interface = (*_heap[int])(nil)

// PriorityQueue implements a bounded-size priority queue: once Cap
// elements are held, adding a new element that sorts below the current
// minimum is a no-op, and adding one that sorts above it evicts the
// minimum first. A Cap of 0 means unbounded.
type PriorityQueue[T any] struct {
	heap _heap[T]
	// TODO: T is not required to be comparable, so using it as a map key
	// here panics at runtime for element types that aren't (e.g. a type
	// containing a slice or map field).
	elements map[any]struct{}
	cap      int
}

// Empty creates an empty, unbounded priority queue for elements of a
// given type, with the given comparison function.
func Empty[T any](less lessFunc[T]) PriorityQueue[T] {
	return PriorityQueue[T]{
		heap:     _heap[T]{nil, less},
		elements: make(map[interface{}]struct{}),
	}
}

// Bounded is Empty with a maximum size: once the queue holds cap
// elements, Add evicts the current minimum before inserting anything
// that doesn't itself become the minimum.
func Bounded[T any](cap int, less lessFunc[T]) PriorityQueue[T] {
	pq := Empty(less)
	pq.cap = cap
	return pq
}

// IsEmpty checks whether the priority queue is empty.
func (p *PriorityQueue[T]) IsEmpty() bool {
	return len(p.heap.list) == 0
}

// Len returns the number of elements currently held.
func (p *PriorityQueue[T]) Len() int {
	return len(p.heap.list)
}

// GetNext pops the top element from the heap.
func (p *PriorityQueue[T]) GetNext() T {
	el := heap.Pop(&p.heap).(T)
	delete(p.elements, el)
	return el
}

// Add inserts the given element in the heap, if not already present. If
// the queue is bounded and already at capacity, x is kept only if it
// sorts above the current minimum, which is evicted to make room;
// otherwise x is discarded. This keeps a bounded queue holding the top-N
// elements seen so far rather than growing unbounded.
func (p *PriorityQueue[T]) Add(x T) {
	if _, found := p.elements[x]; found {
		return
	}

	if p.cap > 0 && len(p.heap.list) >= p.cap {
		if !p.heap.less(p.heap.list[0], x) {
			return
		}
		p.GetNext()
	}

	p.elements[x] = struct{}{}
	heap.Push(&p.heap, x)
}

// Rebuild re-establishes all the invariants of the heap.
func (p *PriorityQueue[T]) Rebuild() {
	heap.Init(&p.heap)
}

package pq

import "testing"

func TestBoundedKeepsTopN(t *testing.T) {
	less := func(a, b int) bool { return a < b }
	q := Bounded(3, less)

	for _, x := range []int{5, 1, 9, 2, 8, 3, 7} {
		q.Add(x)
	}

	if q.Len() != 3 {
		t.Fatalf("expected 3 elements retained, got %d", q.Len())
	}

	var got []int
	for !q.IsEmpty() {
		got = append(got, q.GetNext())
	}
	want := []int{7, 8, 9}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("got[%d] = %d, want %d (got=%v)", i, got[i], w, got)
		}
	}
}

func TestEmptyUnboundedOrdersByLess(t *testing.T) {
	q := Empty(func(a, b string) bool { return a < b })
	for _, s := range []string{"banana", "apple", "cherry"} {
		q.Add(s)
	}

	var got []string
	for !q.IsEmpty() {
		got = append(got, q.GetNext())
	}
	want := []string{"apple", "banana", "cherry"}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("got[%d] = %q, want %q", i, got[i], w)
		}
	}
}

func TestAddIgnoresDuplicates(t *testing.T) {
	q := Empty(func(a, b int) bool { return a < b })
	q.Add(1)
	q.Add(1)
	q.Add(2)

	if q.Len() != 2 {
		t.Fatalf("expected duplicate Add to be a no-op, got length %d", q.Len())
	}
}

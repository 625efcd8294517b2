package spatial

import (
	"testing"

	"github.com/LupusDei/space-towers-sub001/pkg/slotmap"
)

// handles issues distinct handles through a real slot map so tests use the
// same id type as the engine.
func handles(n int) []slotmap.Handle {
	m := slotmap.New[int]()
	out := make([]slotmap.Handle, n)
	for i := range out {
		out[i] = m.Insert(i)
	}
	return out
}

func TestQueryReturnsExactInRadiusSet(t *testing.T) {
	idx := NewIndex(64)
	hs := handles(3)

	idx.Insert(hs[0], 100, 100) // distance 0 from center
	idx.Insert(hs[1], 130, 140) // distance 50
	idx.Insert(hs[2], 100, 180) // distance 80, inside the candidate buckets

	got := idx.Query(100, 100, 60)
	if len(got) != 2 {
		t.Fatalf("Query returned %d entities, want 2: %v", len(got), got)
	}
	for _, h := range got {
		if h == hs[2] {
			t.Error("entity outside the radius leaked through the exact check")
		}
	}
}

func TestQuerySpansBuckets(t *testing.T) {
	idx := NewIndex(32)
	hs := handles(2)
	// Same radius, opposite sides of a bucket boundary.
	idx.Insert(hs[0], 31, 0)
	idx.Insert(hs[1], 33, 0)

	got := idx.Query(32, 0, 5)
	if len(got) != 2 {
		t.Errorf("cross-bucket query returned %d entities, want 2", len(got))
	}
}

func TestUpdateMovesEntity(t *testing.T) {
	idx := NewIndex(64)
	hs := handles(1)
	idx.Insert(hs[0], 10, 10)
	idx.Update(hs[0], 500, 500)

	if got := idx.Query(10, 10, 50); len(got) != 0 {
		t.Errorf("entity still found at old position: %v", got)
	}
	if got := idx.Query(500, 500, 1); len(got) != 1 {
		t.Errorf("entity not found at new position: %v", got)
	}
}

func TestRemove(t *testing.T) {
	idx := NewIndex(64)
	hs := handles(2)
	idx.Insert(hs[0], 0, 0)
	idx.Insert(hs[1], 1, 1)

	idx.Remove(hs[0])
	idx.Remove(hs[0]) // double remove is a no-op

	if idx.Len() != 1 {
		t.Errorf("Len = %d, want 1", idx.Len())
	}
	got := idx.Query(0, 0, 10)
	if len(got) != 1 || got[0] != hs[1] {
		t.Errorf("Query after remove = %v", got)
	}
}

func TestNegativeCoordinates(t *testing.T) {
	idx := NewIndex(64)
	hs := handles(1)
	idx.Insert(hs[0], -100, -100)
	if got := idx.Query(-100, -100, 10); len(got) != 1 {
		t.Errorf("negative-coordinate entity not found: %v", got)
	}
}

func TestClear(t *testing.T) {
	idx := NewIndex(64)
	for _, h := range handles(5) {
		idx.Insert(h, 0, 0)
	}
	idx.Clear()
	if idx.Len() != 0 {
		t.Errorf("Len after Clear = %d", idx.Len())
	}
	if got := idx.Query(0, 0, 100); len(got) != 0 {
		t.Errorf("Query after Clear = %v", got)
	}
}

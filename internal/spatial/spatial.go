// internal/spatial/spatial.go
package spatial

import (
	"math"

	"github.com/LupusDei/space-towers-sub001/pkg/slotmap"
)

type bucketKey struct {
	bx, by int
}

type position struct {
	x, y float64
}

// Index is a uniform-bucket spatial hash over pixel coordinates. It answers
// "which enemies are within this radius" without scanning every enemy for
// every tower every tick. Query returns the exact in-radius set: candidates
// from overlapping buckets are narrowed with a true distance check before
// they are returned.
type Index struct {
	bucketSize float64
	buckets    map[bucketKey][]slotmap.Handle
	positions  map[slotmap.Handle]position
}

// NewIndex creates an index with the given bucket edge length in pixels.
func NewIndex(bucketSize float64) *Index {
	if bucketSize <= 0 {
		bucketSize = 64
	}
	return &Index{
		bucketSize: bucketSize,
		buckets:    make(map[bucketKey][]slotmap.Handle),
		positions:  make(map[slotmap.Handle]position),
	}
}

// Len returns the number of indexed entities.
func (idx *Index) Len() int {
	return len(idx.positions)
}

// Insert adds an entity at (x, y). Inserting an already indexed handle moves
// it instead.
func (idx *Index) Insert(h slotmap.Handle, x, y float64) {
	if _, exists := idx.positions[h]; exists {
		idx.Update(h, x, y)
		return
	}
	key := idx.keyFor(x, y)
	idx.buckets[key] = append(idx.buckets[key], h)
	idx.positions[h] = position{x: x, y: y}
}

// Remove deletes an entity from the index. Unknown handles are a no-op.
func (idx *Index) Remove(h slotmap.Handle) {
	pos, exists := idx.positions[h]
	if !exists {
		return
	}
	idx.removeFromBucket(h, idx.keyFor(pos.x, pos.y))
	delete(idx.positions, h)
}

// Update must be called after any position change. Cheap when the entity
// stays in its bucket.
func (idx *Index) Update(h slotmap.Handle, x, y float64) {
	pos, exists := idx.positions[h]
	if !exists {
		idx.Insert(h, x, y)
		return
	}
	oldKey := idx.keyFor(pos.x, pos.y)
	newKey := idx.keyFor(x, y)
	if oldKey != newKey {
		idx.removeFromBucket(h, oldKey)
		idx.buckets[newKey] = append(idx.buckets[newKey], h)
	}
	idx.positions[h] = position{x: x, y: y}
}

// Query returns every indexed entity within radius of (cx, cy).
func (idx *Index) Query(cx, cy, radius float64) []slotmap.Handle {
	if radius < 0 {
		return nil
	}
	minKey := idx.keyFor(cx-radius, cy-radius)
	maxKey := idx.keyFor(cx+radius, cy+radius)
	radiusSq := radius * radius

	var out []slotmap.Handle
	for by := minKey.by; by <= maxKey.by; by++ {
		for bx := minKey.bx; bx <= maxKey.bx; bx++ {
			for _, h := range idx.buckets[bucketKey{bx: bx, by: by}] {
				pos := idx.positions[h]
				dx := pos.x - cx
				dy := pos.y - cy
				if dx*dx+dy*dy <= radiusSq {
					out = append(out, h)
				}
			}
		}
	}
	return out
}

// Clear drops every entity.
func (idx *Index) Clear() {
	clear(idx.buckets)
	clear(idx.positions)
}

func (idx *Index) keyFor(x, y float64) bucketKey {
	return bucketKey{
		bx: int(math.Floor(x / idx.bucketSize)),
		by: int(math.Floor(y / idx.bucketSize)),
	}
}

func (idx *Index) removeFromBucket(h slotmap.Handle, key bucketKey) {
	bucket := idx.buckets[key]
	for i, other := range bucket {
		if other == h {
			// Swap-remove keeps the bucket dense.
			bucket[i] = bucket[len(bucket)-1]
			idx.buckets[key] = bucket[:len(bucket)-1]
			break
		}
	}
	if len(idx.buckets[key]) == 0 {
		delete(idx.buckets, key)
	}
}

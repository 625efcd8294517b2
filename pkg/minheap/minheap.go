// pkg/minheap/minheap.go
package minheap

// Heap is a binary min-heap keyed by K. An auxiliary index map tracks each
// key's slot in the backing array, so membership tests and DecreaseKey run
// without scanning the frontier. This is what keeps A* off the O(n) linear
// scan once open sets grow past toy sizes.
type Heap[K comparable] struct {
	nodes []node[K]
	index map[K]int
}

type node[K comparable] struct {
	key      K
	priority float64
}

// New creates an empty heap.
func New[K comparable]() *Heap[K] {
	return &Heap[K]{
		index: make(map[K]int),
	}
}

// Len returns the number of stored keys.
func (h *Heap[K]) Len() int {
	return len(h.nodes)
}

// Insert adds a key with the given priority. Inserting a key that is already
// present behaves like DecreaseKey when the new priority is lower and is a
// no-op otherwise.
func (h *Heap[K]) Insert(key K, priority float64) {
	if i, ok := h.index[key]; ok {
		if priority < h.nodes[i].priority {
			h.nodes[i].priority = priority
			h.siftUp(i)
		}
		return
	}
	h.nodes = append(h.nodes, node[K]{key: key, priority: priority})
	h.index[key] = len(h.nodes) - 1
	h.siftUp(len(h.nodes) - 1)
}

// ExtractMin removes and returns the key with the lowest priority.
// The third return is false when the heap is empty.
func (h *Heap[K]) ExtractMin() (K, float64, bool) {
	var zero K
	if len(h.nodes) == 0 {
		return zero, 0, false
	}
	min := h.nodes[0]
	last := len(h.nodes) - 1
	h.swap(0, last)
	h.nodes = h.nodes[:last]
	delete(h.index, min.key)
	if last > 0 {
		h.siftDown(0)
	}
	return min.key, min.priority, true
}

// Peek returns the minimum without removing it.
func (h *Heap[K]) Peek() (K, float64, bool) {
	var zero K
	if len(h.nodes) == 0 {
		return zero, 0, false
	}
	return h.nodes[0].key, h.nodes[0].priority, true
}

// Has reports whether key is stored. O(1).
func (h *Heap[K]) Has(key K) bool {
	_, ok := h.index[key]
	return ok
}

// Get returns the stored priority for key. O(1).
func (h *Heap[K]) Get(key K) (float64, bool) {
	i, ok := h.index[key]
	if !ok {
		return 0, false
	}
	return h.nodes[i].priority, true
}

// DecreaseKey lowers the priority of an existing key. It is decrease-only:
// a priority above the stored value is rejected and the heap is left
// untouched. An equal priority is accepted as a no-op.
func (h *Heap[K]) DecreaseKey(key K, priority float64) bool {
	i, ok := h.index[key]
	if !ok {
		return false
	}
	if priority > h.nodes[i].priority {
		return false
	}
	h.nodes[i].priority = priority
	h.siftUp(i)
	return true
}

// Clear drops all keys.
func (h *Heap[K]) Clear() {
	h.nodes = h.nodes[:0]
	clear(h.index)
}

func (h *Heap[K]) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.nodes[parent].priority <= h.nodes[i].priority {
			break
		}
		h.swap(i, parent)
		i = parent
	}
}

func (h *Heap[K]) siftDown(i int) {
	n := len(h.nodes)
	for {
		smallest := i
		left := 2*i + 1
		right := 2*i + 2
		if left < n && h.nodes[left].priority < h.nodes[smallest].priority {
			smallest = left
		}
		if right < n && h.nodes[right].priority < h.nodes[smallest].priority {
			smallest = right
		}
		if smallest == i {
			return
		}
		h.swap(i, smallest)
		i = smallest
	}
}

func (h *Heap[K]) swap(i, j int) {
	h.nodes[i], h.nodes[j] = h.nodes[j], h.nodes[i]
	h.index[h.nodes[i].key] = i
	h.index[h.nodes[j].key] = j
}

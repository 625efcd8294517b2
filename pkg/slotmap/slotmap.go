// pkg/slotmap/slotmap.go
package slotmap

// Handle addresses one live entry in a Map. The low 32 bits are the slot
// index, the high 32 the slot's generation; a handle to a removed entry goes
// stale because the slot's generation advances on reuse. The zero Handle is
// never issued and can serve as "no entity".
type Handle uint64

// Nil is the never-issued zero handle.
const Nil Handle = 0

func makeHandle(index, generation uint32) Handle {
	return Handle(uint64(generation)<<32 | uint64(index))
}

func (h Handle) index() uint32      { return uint32(h) }
func (h Handle) generation() uint32 { return uint32(h >> 32) }

type slot[T any] struct {
	value      T
	generation uint32
	occupied   bool
}

// Map is a generational-handle arena: O(1) insert/lookup/remove with stable
// handles, values stored contiguously for iteration. Insertion order is not
// preserved and callers must not depend on iteration order.
type Map[T any] struct {
	slots []slot[T]
	free  []uint32
	count int
}

// New creates an empty map. The first slot is burned so that no live entry
// ever hashes to the zero Handle.
func New[T any]() *Map[T] {
	return &Map[T]{slots: make([]slot[T], 1)}
}

// Len returns the number of live entries.
func (m *Map[T]) Len() int {
	return m.count
}

// Insert stores value and returns its handle.
func (m *Map[T]) Insert(value T) Handle {
	var idx uint32
	if n := len(m.free); n > 0 {
		idx = m.free[n-1]
		m.free = m.free[:n-1]
	} else {
		idx = uint32(len(m.slots))
		m.slots = append(m.slots, slot[T]{})
	}
	s := &m.slots[idx]
	s.value = value
	s.occupied = true
	m.count++
	return makeHandle(idx, s.generation)
}

// Get returns the value stored under h. A stale or never-issued handle
// misses.
func (m *Map[T]) Get(h Handle) (T, bool) {
	var zero T
	s := m.slotFor(h)
	if s == nil {
		return zero, false
	}
	return s.value, true
}

// Ptr returns a pointer to the stored value for in-place mutation, or nil
// when h is stale. The pointer is invalidated by the next Insert.
func (m *Map[T]) Ptr(h Handle) *T {
	s := m.slotFor(h)
	if s == nil {
		return nil
	}
	return &s.value
}

// Has reports whether h addresses a live entry.
func (m *Map[T]) Has(h Handle) bool {
	return m.slotFor(h) != nil
}

// Remove deletes the entry under h. The slot's generation advances so the
// handle (and any copies of it) go stale. Returns the removed value.
func (m *Map[T]) Remove(h Handle) (T, bool) {
	var zero T
	s := m.slotFor(h)
	if s == nil {
		return zero, false
	}
	value := s.value
	s.value = zero
	s.occupied = false
	s.generation++
	m.free = append(m.free, h.index())
	m.count--
	return value, true
}

// Range calls fn for every live entry until fn returns false. Mutating the
// map during Range is not supported.
func (m *Map[T]) Range(fn func(h Handle, value *T) bool) {
	for i := range m.slots {
		s := &m.slots[i]
		if !s.occupied {
			continue
		}
		if !fn(makeHandle(uint32(i), s.generation), &s.value) {
			return
		}
	}
}

// Handles returns the handles of all live entries.
func (m *Map[T]) Handles() []Handle {
	out := make([]Handle, 0, m.count)
	m.Range(func(h Handle, _ *T) bool {
		out = append(out, h)
		return true
	})
	return out
}

// Clear removes every entry, invalidating all outstanding handles.
func (m *Map[T]) Clear() {
	var zero T
	for i := 1; i < len(m.slots); i++ {
		s := &m.slots[i]
		if s.occupied {
			s.value = zero
			s.occupied = false
			s.generation++
		}
	}
	m.free = m.free[:0]
	for i := len(m.slots) - 1; i >= 1; i-- {
		m.free = append(m.free, uint32(i))
	}
	m.count = 0
}

func (m *Map[T]) slotFor(h Handle) *slot[T] {
	idx := h.index()
	if idx == 0 || int(idx) >= len(m.slots) {
		return nil
	}
	s := &m.slots[idx]
	if !s.occupied || s.generation != h.generation() {
		return nil
	}
	return s
}

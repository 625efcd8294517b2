// pkg/pool/pool.go
package pool

// Pool is a free-list of reusable instances for high-churn entities. Acquire
// hands back a released instance when one is available and constructs a new
// one otherwise.
//
// The pool never clears fields: a reacquired instance still carries whatever
// the previous owner left in it. Callers must reinitialize every field they
// rely on before use.
type Pool[T any] struct {
	free        []*T
	newFn       func() *T
	outstanding int
}

// New creates a pool whose instances come from newFn.
func New[T any](newFn func() *T) *Pool[T] {
	return &Pool[T]{newFn: newFn}
}

// Acquire returns a pooled instance, constructing one when the free list is
// empty.
func (p *Pool[T]) Acquire() *T {
	p.outstanding++
	if n := len(p.free); n > 0 {
		item := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		return item
	}
	return p.newFn()
}

// Release returns an instance to the free list. Releasing nil is a no-op.
func (p *Pool[T]) Release(item *T) {
	if item == nil {
		return
	}
	if p.outstanding > 0 {
		p.outstanding--
	}
	p.free = append(p.free, item)
}

// Outstanding returns the number of acquired-but-not-released instances.
func (p *Pool[T]) Outstanding() int {
	return p.outstanding
}

// FreeCount returns the current size of the free list.
func (p *Pool[T]) FreeCount() int {
	return len(p.free)
}

// Reset clears all pooled and active bookkeeping. Instances still held by
// callers are simply forgotten.
func (p *Pool[T]) Reset() {
	p.free = p.free[:0]
	p.outstanding = 0
}

// Package pool provides a fixed-capacity object pool addressed by index.
package pool

import "errors"

// ErrPoolExhausted is returned by Alloc when every slot is in use.
var ErrPoolExhausted = errors.New("object pool exhausted")

// ObjectPool owns exactly Capacity() slots of T allocated up front. Slot
// addresses never change, so pointers from Get stay valid for the pool's
// lifetime. Not safe for concurrent use.
type ObjectPool[T any] struct {
	objects []T
	used    []bool
	free    []uint32
}

// New allocates capacity zeroed slots, all free.
func New[T any](capacity uint32) *ObjectPool[T] {
	p := &ObjectPool[T]{
		objects: make([]T, capacity),
		used:    make([]bool, capacity),
		free:    make([]uint32, capacity),
	}
	// lowest index on top so a fresh pool hands out 0, 1, 2...
	for i := range p.free {
		p.free[i] = capacity - 1 - uint32(i)
	}
	return p
}

// Alloc reserves a free slot and returns its index.
func (p *ObjectPool[T]) Alloc() (uint32, error) {
	n := len(p.free)
	if n == 0 {
		return 0, ErrPoolExhausted
	}
	index := p.free[n-1]
	p.free = p.free[:n-1]
	p.used[index] = true
	return index, nil
}

// Free returns a slot to the pool, clearing it to the zero value. The
// index must have come from Alloc and not been freed since.
func (p *ObjectPool[T]) Free(index uint32) {
	var zero T
	p.objects[index] = zero
	p.used[index] = false
	p.free = append(p.free, index)
}

// Get returns the slot at index. The result is meaningless for indices
// that are not currently allocated.
func (p *ObjectPool[T]) Get(index uint32) *T {
	return &p.objects[index]
}

// Allocated reports whether index is currently in use.
func (p *ObjectPool[T]) Allocated(index uint32) bool {
	return int(index) < len(p.used) && p.used[index]
}

func (p *ObjectPool[T]) Capacity() uint32 {
	return uint32(len(p.objects))
}

// Size is the number of allocated slots.
func (p *ObjectPool[T]) Size() uint32 {
	return uint32(len(p.objects) - len(p.free))
}

func (p *ObjectPool[T]) Full() bool {
	return len(p.free) == 0
}

// Range calls fn for every allocated slot in index order until fn returns false.
func (p *ObjectPool[T]) Range(fn func(index uint32, obj *T) bool) {
	for i := range p.objects {
		if !p.used[i] {
			continue
		}
		if !fn(uint32(i), &p.objects[i]) {
			return
		}
	}
}

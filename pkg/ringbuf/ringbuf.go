// Package ringbuf provides a fixed-capacity FIFO buffer: appending to a full
// buffer evicts the oldest element.
package ringbuf

// Ring is not safe for concurrent use; callers guard it with their own lock.
type Ring[T any] struct {
	items []T
	start int
	size  int
}

func New[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{
		items: make([]T, capacity),
	}
}

// Push appends v, overwriting the oldest element when the ring is full.
func (r *Ring[T]) Push(v T) {
	if r.size < len(r.items) {
		r.items[(r.start+r.size)%len(r.items)] = v
		r.size++
		return
	}
	r.items[r.start] = v
	r.start = (r.start + 1) % len(r.items)
}

// Slice returns a copy of the contents, oldest first.
func (r *Ring[T]) Slice() []T {
	out := make([]T, r.size)
	for i := 0; i < r.size; i++ {
		out[i] = r.items[(r.start+i)%len(r.items)]
	}
	return out
}

package frontier

import "container/heap"

// Frontier is the capability set shared by every container discipline.
//
// Pop panics when the frontier is empty; check Len (or [Empty]) first.
type Frontier[T any] interface {
	Add(item T)
	Pop() T
	Len() int
}

// Empty reports whether f holds no pending items.
func Empty[T any](f Frontier[T]) bool { return f.Len() == 0 }

// =============================================================================
// Stack
// =============================================================================

// Stack is a last-in-first-out frontier. The zero value is an empty stack.
type Stack[T any] struct {
	items []T
}

// NewStack returns a stack seeded with items, pushed in order.
func NewStack[T any](items ...T) *Stack[T] {
	s := &Stack[T]{}
	for _, it := range items {
		s.Add(it)
	}
	return s
}

// Add pushes item on top of the stack.
func (s *Stack[T]) Add(item T) { s.items = append(s.items, item) }

// Pop removes and returns the most recently added item.
func (s *Stack[T]) Pop() T {
	if len(s.items) == 0 {
		panic("frontier: Pop from empty Stack")
	}
	n := len(s.items) - 1
	item := s.items[n]
	var zero T
	s.items[n] = zero
	s.items = s.items[:n]
	return item
}

// Len returns the number of pending items.
func (s *Stack[T]) Len() int { return len(s.items) }

// =============================================================================
// Queue
// =============================================================================

// Queue is a first-in-first-out frontier backed by a growable ring buffer.
// The zero value is an empty queue.
type Queue[T any] struct {
	buf  []T
	head int
	size int
}

// NewQueue returns a queue seeded with items, enqueued in order.
func NewQueue[T any](items ...T) *Queue[T] {
	q := &Queue[T]{}
	for _, it := range items {
		q.Add(it)
	}
	return q
}

// Add appends item to the back of the queue.
func (q *Queue[T]) Add(item T) {
	if q.size == len(q.buf) {
		q.grow()
	}
	q.buf[(q.head+q.size)%len(q.buf)] = item
	q.size++
}

// Pop removes and returns the oldest item.
func (q *Queue[T]) Pop() T {
	if q.size == 0 {
		panic("frontier: Pop from empty Queue")
	}
	item := q.buf[q.head]
	var zero T
	q.buf[q.head] = zero
	q.head = (q.head + 1) % len(q.buf)
	q.size--
	return item
}

// Len returns the number of pending items.
func (q *Queue[T]) Len() int { return q.size }

func (q *Queue[T]) grow() {
	n := len(q.buf) * 2
	if n == 0 {
		n = 8
	}
	buf := make([]T, n)
	for i := 0; i < q.size; i++ {
		buf[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.buf = buf
	q.head = 0
}

// =============================================================================
// Priority
// =============================================================================

// Priority is a frontier that always yields the item with the lowest key.
// Keys are computed once, when the item is added.
type Priority[T any] struct {
	h scored[T]
}

// NewPriority returns an empty priority frontier ordered by key.
func NewPriority[T any](key func(T) float64, items ...T) *Priority[T] {
	p := &Priority[T]{h: scored[T]{key: key}}
	for _, it := range items {
		p.Add(it)
	}
	return p
}

// Add inserts item in O(log n).
func (p *Priority[T]) Add(item T) {
	heap.Push(&p.h, entry[T]{score: p.h.key(item), item: item})
}

// Pop removes and returns the lowest-keyed item in O(log n).
func (p *Priority[T]) Pop() T {
	if len(p.h.entries) == 0 {
		panic("frontier: Pop from empty Priority")
	}
	return heap.Pop(&p.h).(entry[T]).item
}

// Top returns the lowest-keyed item without removing it.
func (p *Priority[T]) Top() T {
	if len(p.h.entries) == 0 {
		panic("frontier: Top of empty Priority")
	}
	return p.h.entries[0].item
}

// Len returns the number of pending items.
func (p *Priority[T]) Len() int { return len(p.h.entries) }

type entry[T any] struct {
	score float64
	item  T
}

// scored adapts the entry slice to container/heap.
type scored[T any] struct {
	entries []entry[T]
	key     func(T) float64
}

func (s scored[T]) Len() int           { return len(s.entries) }
func (s scored[T]) Less(i, j int) bool { return s.entries[i].score < s.entries[j].score }
func (s scored[T]) Swap(i, j int)      { s.entries[i], s.entries[j] = s.entries[j], s.entries[i] }

func (s *scored[T]) Push(x any) { s.entries = append(s.entries, x.(entry[T])) }

func (s *scored[T]) Pop() any {
	n := len(s.entries) - 1
	e := s.entries[n]
	s.entries[n] = entry[T]{}
	s.entries = s.entries[:n]
	return e
}

package rvec

import (
	"iter"
	"sync"
)

// Guarded wraps a Vec with a read-write lock. Reads share the lock, writes
// take it exclusively. The zero value is an empty, ready to use Guarded.
type Guarded[T any] struct {
	mu  sync.RWMutex
	vec Vec[T]
}

// NewGuarded returns a Guarded pre-sized to n absent slots.
func NewGuarded[T any](n int) *Guarded[T] {
	return &Guarded[T]{vec: *WithCapacity[T](n)}
}

// Insert stores value at index under the write lock. See Vec.Insert.
func (g *Guarded[T]) Insert(index int, value T) (T, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.vec.Insert(index, value)
}

// Remove empties the slot at index under the write lock. See Vec.Remove.
func (g *Guarded[T]) Remove(index int) (T, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.vec.Remove(index)
}

// Get returns the value at index and whether one is present.
func (g *Guarded[T]) Get(index int) (T, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.vec.Get(index)
}

// Has reports whether a value is present at index.
func (g *Guarded[T]) Has(index int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.vec.Has(index)
}

// Len returns the number of present values.
func (g *Guarded[T]) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.vec.Len()
}

// Cap returns the number of slots, present or not.
func (g *Guarded[T]) Cap() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.vec.Cap()
}

// Update calls fn with a pointer to the value at index while holding the
// write lock. It returns false without calling fn if the slot is empty.
func (g *Guarded[T]) Update(index int, fn func(*T)) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	ref := g.vec.Ref(index)
	if ref == nil {
		return false
	}
	fn(ref)
	return true
}

// Clear removes every value and releases the backing slice.
func (g *Guarded[T]) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.vec.Clear()
}

// Compact packs the present values to the front. See Vec.Compact.
func (g *Guarded[T]) Compact() []Position {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.vec.Compact()
}

// All returns an iterator over the present (index, value) pairs in ascending
// index order. The pairs are copied under the read lock and yielded after it
// is released, so the loop body may call any method of g.
func (g *Guarded[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		g.mu.RLock()
		entries := make([]entry[T], 0, g.vec.Len())
		for i, value := range g.vec.All() {
			entries = append(entries, entry[T]{index: i, value: value})
		}
		g.mu.RUnlock()

		for _, e := range entries {
			if !yield(e.index, e.value) {
				return
			}
		}
	}
}

type entry[T any] struct {
	index int
	value T
}

func (g *Guarded[T]) String() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.vec.String()
}

// Package rvec provides Vec, a slice of optional values addressed directly by
// small non-negative integer keys.
//
// Vec suits keys that are assigned sequentially or arrive clustered: a lookup
// is a bounds check and a slice index, with no hashing. The price is memory,
// since every index below the highest inserted one owns a slot whether it is
// occupied or not.
package rvec

import (
	"fmt"
	"iter"
	"slices"
)

// slot holds either nothing or a present value.
type slot[T any] struct {
	value   T
	present bool
}

// Vec is an integer-indexed container backed by a contiguous slice of slots.
//
// Inserting at an index past the end grows the logical length to exactly
// index+1; Cap reports that length. The backing array itself grows
// geometrically through slices.Grow, so creating n slots costs amortized O(1)
// each even when indices jump ahead.
//
// Vec is not safe for concurrent use. See Guarded.
type Vec[T any] struct {
	slots []slot[T]
	// filled is the number of present slots
	filled int
}

// New returns an empty Vec.
func New[T any]() *Vec[T] {
	return &Vec[T]{}
}

// WithCapacity returns an empty Vec with n absent slots, so indices below n
// can be inserted without growing.
func WithCapacity[T any](n int) *Vec[T] {
	if n < 0 {
		panic(&IndexError{Op: "with capacity", Index: n})
	}
	return &Vec[T]{slots: make([]slot[T], n)}
}

// FromSlice returns a Vec holding values[i] at index i.
func FromSlice[T any](values []T) *Vec[T] {
	v := &Vec[T]{
		slots:  make([]slot[T], len(values)),
		filled: len(values),
	}
	for i, value := range values {
		v.slots[i] = slot[T]{value: value, present: true}
	}
	return v
}

// Len returns the number of present values.
func (v *Vec[T]) Len() int {
	return v.filled
}

// Cap returns the number of slots, present or not.
func (v *Vec[T]) Cap() int {
	return len(v.slots)
}

// Insert stores value at index, growing the Vec if needed. It returns the
// value it replaced and true, or the zero value and false if the slot was
// empty. Index must be in [0, MaxIndex].
func (v *Vec[T]) Insert(index int, value T) (T, bool) {
	if index < 0 || index > MaxIndex {
		panic(&IndexError{Op: "insert", Index: index})
	}

	if index >= len(v.slots) {
		v.grow(index + 1)
	}

	s := &v.slots[index]
	prev, had := s.value, s.present
	s.value = value
	s.present = true

	if !had {
		v.filled++
	}
	return prev, had
}

// grow extends the slots to length n. New slots are absent.
func (v *Vec[T]) grow(n int) {
	old := len(v.slots)
	v.slots = slices.Grow(v.slots, n-old)[:n]
	clear(v.slots[old:])
}

// Get returns the value at index and whether one is present. Indices past
// the end behave exactly like empty slots.
func (v *Vec[T]) Get(index int) (T, bool) {
	if index < 0 || index >= len(v.slots) {
		var zero T
		return zero, false
	}
	s := &v.slots[index]
	return s.value, s.present
}

// Ref returns a pointer to the value at index, or nil if the slot is empty.
// The pointer is invalidated by any call that grows, compacts or clears v.
func (v *Vec[T]) Ref(index int) *T {
	if index < 0 || index >= len(v.slots) || !v.slots[index].present {
		return nil
	}
	return &v.slots[index].value
}

// Has reports whether a value is present at index.
func (v *Vec[T]) Has(index int) bool {
	return index >= 0 && index < len(v.slots) && v.slots[index].present
}

// Remove empties the slot at index and returns the value it held. The length
// of the Vec is not reduced.
func (v *Vec[T]) Remove(index int) (T, bool) {
	var zero T
	if index < 0 {
		panic(&IndexError{Op: "remove", Index: index})
	}
	if index >= len(v.slots) || !v.slots[index].present {
		return zero, false
	}

	s := &v.slots[index]
	prev := s.value
	s.value = zero
	s.present = false
	v.filled--
	return prev, true
}

// Clear removes every value and releases the backing slice.
func (v *Vec[T]) Clear() {
	v.slots = nil
	v.filled = 0
}

// All returns an iterator over the present (index, value) pairs in ascending
// index order. The slots are captured when iteration starts; changes made
// by the loop body may or may not be observed.
func (v *Vec[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		slots := v.slots
		for i := range slots {
			if !slots[i].present {
				continue
			}
			if !yield(i, slots[i].value) {
				return
			}
		}
	}
}

// Indices returns an iterator over the occupied indices in ascending order.
func (v *Vec[T]) Indices() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range v.All() {
			if !yield(i) {
				return
			}
		}
	}
}

// Values returns an iterator over the present values in ascending index order.
func (v *Vec[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.All() {
			if !yield(value) {
				return
			}
		}
	}
}

func (v *Vec[T]) String() string {
	return fmt.Sprintf("rvec.Vec[cap=%d len=%d]", len(v.slots), v.filled)
}

package layout

import "math"

// Sorter moves one element of an ordered list by whole slots. The slot pitch
// is the pixel distance between the first two siblings at drag start.
type Sorter[T any] struct {
	items []T
	index int
	step  float64
}

// NewSorter captures the list, the dragged element's index and the slot
// pitch. A zero step (fewer than two siblings) makes every shift a no-op.
// The pitch may be negative when siblings stack against the axis.
func NewSorter[T any](items []T, index int, step float64) *Sorter[T] {
	return &Sorter[T]{
		items: append([]T(nil), items...),
		index: index,
		step:  step,
	}
}

// Original returns a copy of the list as captured.
func (s *Sorter[T]) Original() []T {
	return append([]T(nil), s.items...)
}

// Index returns the slot the dragged element lands in for a shift along the
// sorting axis. Halves round up, and the result is clamped to the list.
func (s *Sorter[T]) Index(shift float64) int {
	n := len(s.items)
	if n < 2 || s.step == 0 || s.index < 0 || s.index >= n {
		return s.index
	}
	idx := s.index + int(math.Floor(shift/s.step+0.5))
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	return idx
}

// At returns a new list with the dragged element moved to [Sorter.Index].
// Callers renumber the result 0..n-1.
func (s *Sorter[T]) At(shift float64) []T {
	out := s.Original()
	if s.index < 0 || s.index >= len(out) {
		return out
	}
	to := s.Index(shift)
	if to == s.index {
		return out
	}
	item := out[s.index]
	out = append(out[:s.index], out[s.index+1:]...)
	out = append(out[:to], append([]T{item}, out[to:]...)...)
	return out
}

package util

// OrderedSet is a set that remembers the order elements were first inserted
// in. Grammar analyses (FIRST, FOLLOW) are semantically unordered per
// spec, but a deterministic iteration order makes trace output and tests
// reproducible, so the analyses build these instead of a plain map.
type OrderedSet[T comparable] struct {
	order []T
	has   map[T]bool
}

// NewOrderedSet returns an empty OrderedSet ready to use.
func NewOrderedSet[T comparable]() *OrderedSet[T] {
	return &OrderedSet[T]{has: map[T]bool{}}
}

// Add inserts v into the set if not already present, returning true if the
// set grew as a result. Fixed-point loops use the return value to detect
// convergence.
func (s *OrderedSet[T]) Add(v T) bool {
	if s.has[v] {
		return false
	}
	s.has[v] = true
	s.order = append(s.order, v)
	return true
}

// AddAll adds every element of o to s, returning true if s grew.
func (s *OrderedSet[T]) AddAll(o *OrderedSet[T]) bool {
	if o == nil {
		return false
	}
	grew := false
	for _, v := range o.order {
		if s.Add(v) {
			grew = true
		}
	}
	return grew
}

// Has reports whether v is a member of the set.
func (s *OrderedSet[T]) Has(v T) bool {
	return s.has[v]
}

// Len returns the number of elements in the set.
func (s *OrderedSet[T]) Len() int {
	return len(s.order)
}

// Elements returns the set's members in insertion order. The returned slice
// is owned by the caller.
func (s *OrderedSet[T]) Elements() []T {
	out := make([]T, len(s.order))
	copy(out, s.order)
	return out
}

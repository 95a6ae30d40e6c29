package intervalset

import "github.com/henderiw/rangeset/pkg/chain"

// Iterator walks a set from its first interval. The set must not be
// modified while an iterator is in use.
type Iterator[T any] struct {
	s       *Set[T]
	current uint
	started bool
}

// Iterate returns an iterator positioned before the first interval.
func (s *Set[T]) Iterate() *Iterator[T] {
	return &Iterator[T]{s: s}
}

// Next moves to the next interval. It returns false if there is none.
func (r *Iterator[T]) Next() bool {
	if !r.started {
		r.started = true
		r.current = r.s.chain.Head()
	} else if r.current != chain.Nil {
		r.current = r.s.chain.Next(r.current)
	}
	return r.current != chain.Nil
}

// Value returns the interval at the iterator position.
func (r *Iterator[T]) Value() Interval[T] {
	return r.s.chain.Value(r.current)
}

// IsConsecutive reports whether the current interval starts where the
// previous one ends. It is always false in a normalized set and exists
// to check that invariant.
func (r *Iterator[T]) IsConsecutive() bool {
	if r.current == chain.Nil {
		return false
	}
	prev := r.s.chain.Prev(r.current)
	if prev == chain.Nil {
		return false
	}
	return r.s.cmp(r.s.chain.Value(prev).End, r.Value().Begin) >= 0
}

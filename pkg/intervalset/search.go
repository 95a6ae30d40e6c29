package intervalset

import (
	"github.com/henderiw/rangeset/pkg/chain"
	"github.com/henderiw/rangeset/pkg/relation"
)

// AddFunc advances a value of the set by a size, which may be negative.
type AddFunc[T, S any] func(v T, size S) T

// SearchForSpace returns the free window of the given size closest to
// from. When from+size lies after from the window grows forward and its
// Begin is pushed past every stored interval that overlaps it; when it
// lies before from the window grows backward and its End is pushed down
// instead. A size that does not move from yields [from, from].
//
// The returned window may touch stored intervals but never overlaps one.
func SearchForSpace[T, S any](s *Set[T], from T, size S, add AddFunc[T, S]) Interval[T] {
	if add == nil {
		panic("intervalset: nil add func")
	}
	end := add(from, size)
	switch c := s.cmp(end, from); {
	case c > 0:
		return searchForward(s, Interval[T]{Begin: from, End: end}, size, add)
	case c < 0:
		return searchBackward(s, Interval[T]{Begin: end, End: from}, size, add)
	}
	return Interval[T]{Begin: from, End: from}
}

func searchForward[T, S any](s *Set[T], candidate Interval[T], size S, add AddFunc[T, S]) Interval[T] {
	for i := s.chain.Head(); i != chain.Nil; i = s.chain.Next(i) {
		rel := s.relation(candidate, s.chain.Value(i))
		switch {
		case rel.Has(relation.BeginOnEnd | relation.BeginAfterEnd):
			// stored intervals from here on start at or after the window
			return candidate
		case rel.Has(relation.EndInner | relation.EndOnEnd | relation.EndAfterEnd):
			candidate.Begin = s.chain.Value(i).End
			candidate.End = add(candidate.Begin, size)
		}
	}
	return candidate
}

func searchBackward[T, S any](s *Set[T], candidate Interval[T], size S, add AddFunc[T, S]) Interval[T] {
	for i := s.chain.Tail(); i != chain.Nil; i = s.chain.Prev(i) {
		rel := s.relation(candidate, s.chain.Value(i))
		switch {
		case rel.Has(relation.EndOnBegin | relation.EndBeforeBegin):
			return candidate
		case rel.Has(relation.BeginBeforeBegin | relation.BeginOnBegin | relation.BeginInner):
			candidate.End = s.chain.Value(i).Begin
			candidate.Begin = add(candidate.End, size)
		}
	}
	return candidate
}

// Contains reports whether v lies within a stored interval, edges
// included.
func (s *Set[T]) Contains(v T) bool {
	for i := s.chain.Head(); i != chain.Nil; i = s.chain.Next(i) {
		iv := s.chain.Value(i)
		if s.cmp(v, iv.Begin) < 0 {
			return false
		}
		if s.cmp(v, iv.End) <= 0 {
			return true
		}
	}
	return false
}

// Covers reports whether item lies entirely within one stored interval.
func (s *Set[T]) Covers(item Interval[T]) bool {
	if s.cmp(item.Begin, item.End) > 0 {
		return false
	}
	for i := s.chain.Head(); i != chain.Nil; i = s.chain.Next(i) {
		iv := s.chain.Value(i)
		if s.cmp(item.Begin, iv.Begin) < 0 {
			return false
		}
		if s.cmp(item.End, iv.End) <= 0 {
			return true
		}
	}
	return false
}

// Overlaps reports whether item shares a non-zero length with any stored
// interval. Touching does not count.
func (s *Set[T]) Overlaps(item Interval[T]) bool {
	if s.cmp(item.Begin, item.End) >= 0 {
		return false
	}
	for i := s.chain.Head(); i != chain.Nil; i = s.chain.Next(i) {
		iv := s.chain.Value(i)
		if s.cmp(iv.Begin, item.End) >= 0 {
			return false
		}
		if s.cmp(item.Begin, iv.End) < 0 {
			return true
		}
	}
	return false
}

// Gaps returns the free regions inside within, in ascending order.
func (s *Set[T]) Gaps(within Interval[T]) []Interval[T] {
	if s.cmp(within.Begin, within.End) >= 0 {
		return nil
	}
	var gaps []Interval[T]
	cursor := within.Begin
	for i := s.chain.Head(); i != chain.Nil; i = s.chain.Next(i) {
		iv := s.chain.Value(i)
		if s.cmp(iv.Begin, within.End) >= 0 {
			break
		}
		if s.cmp(iv.End, cursor) <= 0 {
			continue
		}
		if s.cmp(cursor, iv.Begin) < 0 {
			gaps = append(gaps, Interval[T]{Begin: cursor, End: iv.Begin})
		}
		cursor = iv.End
	}
	if s.cmp(cursor, within.End) < 0 {
		gaps = append(gaps, Interval[T]{Begin: cursor, End: within.End})
	}
	return gaps
}

// Bounds returns the interval from the first Begin to the last End. The
// boolean is false for an empty set.
func (s *Set[T]) Bounds() (Interval[T], bool) {
	if s.chain.IsEmpty() {
		return Interval[T]{}, false
	}
	return Interval[T]{
		Begin: s.chain.Value(s.chain.Head()).Begin,
		End:   s.chain.Value(s.chain.Tail()).End,
	}, true
}

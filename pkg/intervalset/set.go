package intervalset

import (
	"iter"

	"golang.org/x/exp/constraints"

	"github.com/henderiw/rangeset/pkg/chain"
	"github.com/henderiw/rangeset/pkg/relation"
)

// Set is a sorted collection of disjoint intervals. Intervals that
// overlap or touch are merged on insertion, so between calls:
//   - intervals are sorted ascending by Begin
//   - End of each interval is strictly before Begin of the next
//   - every interval has Begin < End
//
// A Set is not safe for concurrent use; callers serialize access.
type Set[T any] struct {
	cmp   Compare[T]
	chain *chain.Chain[Interval[T]]
}

// New returns an empty set ordered by cmp.
func New[T any](cmp Compare[T]) *Set[T] {
	if cmp == nil {
		panic("intervalset: nil compare func")
	}
	return &Set[T]{
		cmp:   cmp,
		chain: chain.New(mergeFunc(cmp)),
	}
}

// NewOrdered returns an empty set of a built-in ordered type.
func NewOrdered[T constraints.Ordered]() *Set[T] {
	return New(Ordered[T]())
}

// NewComparable returns an empty set of a type with a Compare method.
func NewComparable[T Comparable[T]]() *Set[T] {
	return New(CompareMethod[T]())
}

// FromInterval returns a set holding iv.
func FromInterval[T any](cmp Compare[T], iv Interval[T]) *Set[T] {
	s := New(cmp)
	s.AddInterval(iv)
	return s
}

func mergeFunc[T any](cmp Compare[T]) chain.MergeFunc[Interval[T]] {
	return func(dst *Interval[T], src Interval[T]) {
		if cmp(src.Begin, dst.Begin) < 0 {
			dst.Begin = src.Begin
		}
		if cmp(src.End, dst.End) > 0 {
			dst.End = src.End
		}
	}
}

func (s *Set[T]) relation(base, other Interval[T]) relation.Relation {
	return relation.ClassifyRange(relation.CompareFunc[T](s.cmp), base.Begin, base.End, other.Begin, other.End)
}

// Len returns the number of disjoint intervals.
func (s *Set[T]) Len() int { return s.chain.Len() }

// IsEmpty reports whether the set holds no interval.
func (s *Set[T]) IsEmpty() bool { return s.chain.IsEmpty() }

// Add inserts [begin, end]. Zero size and reversed intervals are ignored.
func (s *Set[T]) Add(begin, end T) {
	s.AddInterval(Interval[T]{Begin: begin, End: end})
}

// AddInterval inserts item, merging it with every interval it overlaps
// or touches. Zero size and reversed intervals are ignored.
func (s *Set[T]) AddInterval(item Interval[T]) {
	if s.cmp(item.Begin, item.End) >= 0 {
		return
	}
	if s.chain.IsEmpty() {
		s.chain.PushBack(item)
		return
	}

	current := s.chain.Head()
	rel := s.relation(s.chain.Value(current), item)
	for {
		switch {
		case relation.Contains(rel):
			return
		case relation.IsWholeBefore(rel):
			s.chain.InsertBefore(current, item)
			return
		case relation.CanMergeWith(rel):
			next := s.chain.Next(current)
			if next != chain.Nil && relation.CanMergeWith(s.relation(s.chain.Value(next), item)) {
				// absorb the neighbor first, then look at the grown node again
				s.chain.MergeWithNext(current)
				rel = s.relation(s.chain.Value(current), item)
				continue
			}
			v := s.chain.Value(current)
			if rel.Has(relation.BeginBeforeBegin) {
				v.Begin = item.Begin
			}
			if rel.Has(relation.EndAfterEnd) {
				v.End = item.End
			}
			s.chain.Set(current, v)
			return
		default:
			next := s.chain.Next(current)
			if next == chain.Nil {
				s.chain.InsertAfter(current, item)
				return
			}
			current, rel = next, s.relation(s.chain.Value(next), item)
		}
	}
}

// AddRange inserts every item.
func (s *Set[T]) AddRange(items []Interval[T]) {
	for _, item := range items {
		s.AddInterval(item)
	}
}

// AddSet inserts every interval of other.
func (s *Set[T]) AddSet(other *Set[T]) {
	if other == nil || other == s {
		return
	}
	for i := other.chain.Head(); i != chain.Nil; i = other.chain.Next(i) {
		s.AddInterval(other.chain.Value(i))
	}
}

// Items returns a copy of the intervals in ascending order.
func (s *Set[T]) Items() []Interval[T] {
	return s.chain.Values()
}

// All iterates the intervals in ascending order. The set must not be
// modified during iteration.
func (s *Set[T]) All() iter.Seq[Interval[T]] {
	return func(yield func(Interval[T]) bool) {
		for i := s.chain.Head(); i != chain.Nil; i = s.chain.Next(i) {
			if !yield(s.chain.Value(i)) {
				return
			}
		}
	}
}

// Backward iterates the intervals in descending order.
func (s *Set[T]) Backward() iter.Seq[Interval[T]] {
	return func(yield func(Interval[T]) bool) {
		for i := s.chain.Tail(); i != chain.Nil; i = s.chain.Prev(i) {
			if !yield(s.chain.Value(i)) {
				return
			}
		}
	}
}

// DeepClone returns an independent copy of the set.
func (s *Set[T]) DeepClone() *Set[T] {
	return &Set[T]{
		cmp:   s.cmp,
		chain: s.chain.Clone(nil),
	}
}

// Summary folds sets into a new set covering all of them.
func Summary[T any](cmp Compare[T], sets ...*Set[T]) *Set[T] {
	ret := New(cmp)
	for _, s := range sets {
		ret.AddSet(s)
	}
	return ret
}

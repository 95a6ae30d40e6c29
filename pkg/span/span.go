package span

import (
	"fmt"

	"github.com/henderiw/rangeset/pkg/algebra"
	"github.com/henderiw/rangeset/pkg/relation"
)

// Range is an immutable pair of edges on the axis described by A.
// Either edge may be empty, meaning unbounded or unset. A filled range
// with Begin > End is representable; it is reported by IsReal and has
// no interior.
//
// A must be a value type; the zero value of A is used to perform all
// edge and size arithmetic.
type Range[E, S any, A algebra.Algebra[E, S]] struct {
	begin E
	end   E
}

// New returns the range [begin, end].
func New[E, S any, A algebra.Algebra[E, S]](begin, end E) Range[E, S, A] {
	return Range[E, S, A]{begin: begin, end: end}
}

// FromSize returns the range [begin, begin+size].
func FromSize[E, S any, A algebra.Algebra[E, S]](begin E, size S) Range[E, S, A] {
	var a A
	return Range[E, S, A]{begin: begin, end: a.Add(begin, size)}
}

// Point returns the zero size range [at, at].
func Point[E, S any, A algebra.Algebra[E, S]](at E) Range[E, S, A] {
	return Range[E, S, A]{begin: at, end: at}
}

// Empty returns the range with neither edge set.
func Empty[E, S any, A algebra.Algebra[E, S]]() Range[E, S, A] {
	var a A
	return Range[E, S, A]{begin: a.EmptyEdge(), end: a.EmptyEdge()}
}

// OnlyBegin returns a half filled range starting at begin.
func OnlyBegin[E, S any, A algebra.Algebra[E, S]](begin E) Range[E, S, A] {
	var a A
	return Range[E, S, A]{begin: begin, end: a.EmptyEdge()}
}

// OnlyEnd returns a half filled range ending at end.
func OnlyEnd[E, S any, A algebra.Algebra[E, S]](end E) Range[E, S, A] {
	var a A
	return Range[E, S, A]{begin: a.EmptyEdge(), end: end}
}

func (r Range[E, S, A]) Begin() E { return r.begin }
func (r Range[E, S, A]) End() E   { return r.end }

func (r Range[E, S, A]) HasBegin() bool {
	var a A
	return !a.IsEmptyEdge(r.begin)
}

func (r Range[E, S, A]) HasEnd() bool {
	var a A
	return !a.IsEmptyEdge(r.end)
}

func (r Range[E, S, A]) IsEmpty() bool      { return !r.HasBegin() && !r.HasEnd() }
func (r Range[E, S, A]) IsFilled() bool     { return r.HasBegin() && r.HasEnd() }
func (r Range[E, S, A]) HasOnlyBegin() bool { return r.HasBegin() && !r.HasEnd() }
func (r Range[E, S, A]) HasOnlyEnd() bool   { return !r.HasBegin() && r.HasEnd() }

// IsReal reports whether the range is not filled, or is filled with
// Begin <= End.
func (r Range[E, S, A]) IsReal() bool {
	var a A
	return !r.IsFilled() || a.Compare(r.begin, r.end) <= 0
}

// IsPoint reports whether the range is filled and Begin == End.
func (r Range[E, S, A]) IsPoint() bool {
	var a A
	return r.IsFilled() && a.Compare(r.begin, r.end) == 0
}

// Size returns End - Begin, or an empty size when the range is not filled.
func (r Range[E, S, A]) Size() S {
	var a A
	if !r.IsFilled() {
		return a.EmptySize()
	}
	return a.Sub(r.end, r.begin)
}

// Center returns Begin + Size/2, or an empty edge when the range is not
// filled.
func (r Range[E, S, A]) Center() E {
	var a A
	if !r.IsFilled() {
		return a.EmptyEdge()
	}
	return a.Add(r.begin, a.Scale(r.Size(), algebra.Half))
}

// WithBegin returns a copy of r with Begin replaced.
func (r Range[E, S, A]) WithBegin(begin E) Range[E, S, A] {
	r.begin = begin
	return r
}

// WithEnd returns a copy of r with End replaced.
func (r Range[E, S, A]) WithEnd(end E) Range[E, S, A] {
	r.end = end
	return r
}

// Contains reports whether Begin <= value <= End. Ranges that are not
// filled or not real contain nothing.
func (r Range[E, S, A]) Contains(value E) bool {
	var a A
	if !r.IsFilled() || !r.IsReal() || a.IsEmptyEdge(value) {
		return false
	}
	return a.Compare(r.begin, value) <= 0 && a.Compare(value, r.end) <= 0
}

// HasIntersect reports whether r and other share an interior. Ranges
// that only touch do not intersect.
func (r Range[E, S, A]) HasIntersect(other Range[E, S, A]) bool {
	var a A
	if !r.IsFilled() || !r.IsReal() || !other.IsFilled() || !other.IsReal() {
		return false
	}
	return a.Compare(r.begin, other.end) < 0 && a.Compare(other.begin, r.end) < 0
}

// Relation classifies the edges of other against r.
func (r Range[E, S, A]) Relation(other Range[E, S, A]) relation.Relation {
	var a A
	if !r.IsFilled() {
		return relation.None
	}
	return relation.ClassifyRange[E](a.Compare, r.begin, r.end, other.begin, other.end)
}

// ContainsRange reports whether other lies entirely within r.
func (r Range[E, S, A]) ContainsRange(other Range[E, S, A]) bool {
	if !other.IsFilled() || !other.IsReal() {
		return false
	}
	rel := r.Relation(other)
	return rel != relation.None && relation.Contains(rel)
}

// CanMergeWith reports whether r and other overlap or touch.
func (r Range[E, S, A]) CanMergeWith(other Range[E, S, A]) bool {
	if !other.IsFilled() || !other.IsReal() {
		return false
	}
	rel := r.Relation(other)
	return rel != relation.None && relation.CanMergeWith(rel)
}

// Equal reports whether both ranges are empty, or both are filled with
// equal edges. Half filled ranges are never equal.
func (r Range[E, S, A]) Equal(other Range[E, S, A]) bool {
	var a A
	switch {
	case r.IsEmpty() && other.IsEmpty():
		return true
	case r.IsFilled() && other.IsFilled():
		return a.Compare(r.begin, other.begin) == 0 && a.Compare(r.end, other.end) == 0
	}
	return false
}

func (r Range[E, S, A]) String() string {
	var a A
	begin, end := "-inf", "+inf"
	if r.HasBegin() {
		begin = a.FormatEdge(r.begin)
	}
	if r.HasEnd() {
		end = a.FormatEdge(r.end)
	}
	return fmt.Sprintf("[%s, %s]", begin, end)
}

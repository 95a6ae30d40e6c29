package intervalset

import (
	"cmp"
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/henderiw/rangeset/pkg/relation"
)

// Interval is a closed range [Begin, End] handed to or returned from a
// Set. Values are copied in and out; the set never exposes its own
// payloads.
type Interval[T any] struct {
	Begin T
	End   T
}

// Of returns the interval [begin, end].
func Of[T any](begin, end T) Interval[T] {
	return Interval[T]{Begin: begin, End: end}
}

func (r Interval[T]) String() string {
	return fmt.Sprintf("[%v, %v]", r.Begin, r.End)
}

// Compare orders the values of a Set.
type Compare[T any] relation.CompareFunc[T]

// Ordered returns the natural order of T.
func Ordered[T constraints.Ordered]() Compare[T] {
	return func(a, b T) int { return cmp.Compare(a, b) }
}

// Comparable is implemented by types with a Compare method, such as
// time.Time and netip.Addr.
type Comparable[T any] interface {
	Compare(T) int
}

// CompareMethod returns the order defined by the Compare method of T.
func CompareMethod[T Comparable[T]]() Compare[T] {
	return func(a, b T) int { return a.Compare(b) }
}

package axis

import (
	"math"
	"strconv"

	"github.com/henderiw/rangeset/pkg/algebra"
	"github.com/henderiw/rangeset/pkg/span"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"
)

type Numeric interface {
	constraints.Integer | constraints.Float
}

// Number is the axis of a built-in numeric type. Edges and sizes are
// both Null[T]. Scaling an integer size rounds half away from zero.
type Number[T Numeric] struct{}

var _ algebra.Algebra[Null[int64], Null[int64]] = Number[int64]{}

func (Number[T]) Compare(a, b Null[T]) int {
	if c, ok := compareEmpty(!a.Valid, !b.Valid); ok {
		return c
	}
	switch {
	case a.V < b.V:
		return -1
	case a.V > b.V:
		return 1
	}
	return 0
}

func (Number[T]) IsEmptyEdge(e Null[T]) bool { return !e.Valid }
func (Number[T]) IsEmptySize(s Null[T]) bool { return !s.Valid }
func (Number[T]) EmptyEdge() Null[T]         { return Null[T]{} }
func (Number[T]) EmptySize() Null[T]         { return Null[T]{} }

func (Number[T]) Add(e, s Null[T]) Null[T] {
	if !e.Valid || !s.Valid {
		return Null[T]{}
	}
	return Some(e.V + s.V)
}

func (Number[T]) Sub(a, b Null[T]) Null[T] {
	if !a.Valid || !b.Valid {
		return Null[T]{}
	}
	return Some(a.V - b.V)
}

func (n Number[T]) SubSize(e, s Null[T]) Null[T] {
	return n.Sub(e, s)
}

// Scale multiplies a size by r. Integer sizes use exact decimal
// arithmetic, float sizes float64 arithmetic so that infinities pass
// through.
func (Number[T]) Scale(s Null[T], r algebra.Ratio) Null[T] {
	if !s.Valid {
		return Null[T]{}
	}
	if !integral[T]() {
		return Some(T(float64(s.V) * r.InexactFloat64()))
	}
	return Some(fromDecimal[T](toDecimal(s.V).Mul(r)))
}

func (Number[T]) Div(a, b Null[T]) algebra.Ratio {
	if !a.Valid || !b.Valid || b.V == 0 {
		return algebra.Zero
	}
	if !integral[T]() {
		q := float64(a.V) / float64(b.V)
		if math.IsInf(q, 0) || math.IsNaN(q) {
			return algebra.Zero
		}
		return decimal.NewFromFloat(q)
	}
	return toDecimal(a.V).Div(toDecimal(b.V))
}

func (Number[T]) FormatEdge(e Null[T]) string { return formatNumber(e) }
func (Number[T]) FormatSize(s Null[T]) string { return formatNumber(s) }

func formatNumber[T Numeric](n Null[T]) string {
	switch {
	case !n.Valid:
		return ""
	case unsigned[T]():
		return strconv.FormatUint(uint64(n.V), 10)
	case integral[T]():
		return strconv.FormatInt(int64(n.V), 10)
	}
	return strconv.FormatFloat(float64(n.V), 'g', -1, 64)
}

func integral[T Numeric]() bool {
	half := 0.5
	return T(half) == 0
}

func unsigned[T Numeric]() bool {
	var zero T
	return zero-1 > 0
}

// toDecimal converts an integer value.
func toDecimal[T Numeric](v T) decimal.Decimal {
	if unsigned[T]() {
		return decimal.NewFromUint64(uint64(v))
	}
	return decimal.NewFromInt(int64(v))
}

// fromDecimal rounds d half away from zero to an integer value.
func fromDecimal[T Numeric](d decimal.Decimal) T {
	d = d.Round(0)
	if unsigned[T]() {
		if d.IsNegative() {
			return 0
		}
		return T(d.BigInt().Uint64())
	}
	return T(d.IntPart())
}

type (
	Int        = Number[int64]
	IntRange   = span.Range[Null[int64], Null[int64], Int]
	Float      = Number[float64]
	FloatRange = span.Range[Null[float64], Null[float64], Float]
)

// IntSpan returns the integer range [begin, end].
func IntSpan(begin, end int64) IntRange {
	return span.New[Null[int64], Null[int64], Int](Some(begin), Some(end))
}

// FloatSpan returns the float range [begin, end].
func FloatSpan(begin, end float64) FloatRange {
	return span.New[Null[float64], Null[float64], Float](Some(begin), Some(end))
}

package algebra

import "github.com/shopspring/decimal"

// Ratio is a relative position on, or a scale factor of, an axis.
// Ratios are decimals; division rounds to decimal.DivisionPrecision
// digits, so zooming by r and then by Inverse(r) returns the original
// range on exact axes only when 1/r has a finite decimal expansion
// (2, 4, 5, 10, ...). For other ratios the round trip carries that
// rounding error scaled by the range size.
type Ratio = decimal.Decimal

var (
	Zero = decimal.Zero
	Half = decimal.New(5, -1)
	One  = decimal.NewFromInt(1)
)

// Algebra is the set of primitive operations an axis supplies so that
// generic ranges can be built on top of its edge type E and size type S.
//
// Implementations are expected to be zero-size value types; ranges call
// them through their zero value.
//
// Empty edges and sizes mean unbounded or unset. Compare orders an empty
// edge before any non-empty edge and treats two empty edges as equal.
// Arithmetic with an empty operand yields an empty result.
type Algebra[E, S any] interface {
	Compare(a, b E) int
	IsEmptyEdge(e E) bool
	IsEmptySize(s S) bool
	EmptyEdge() E
	EmptySize() S

	// Add returns e + s.
	Add(e E, s S) E
	// Sub returns a - b.
	Sub(a, b E) S
	// SubSize returns e - s.
	SubSize(e E, s S) E
	// Scale returns s * r.
	Scale(s S, r Ratio) S
	// Div returns a / b, or zero when b is empty or zero.
	Div(a, b S) Ratio

	FormatEdge(e E) string
	FormatSize(s S) string
}

// NewRatio returns the ratio num/den, or zero when den is zero.
func NewRatio(num, den int64) Ratio {
	if den == 0 {
		return Zero
	}
	return decimal.NewFromInt(num).Div(decimal.NewFromInt(den))
}

// Inverse returns 1/r, or zero when r is zero.
func Inverse(r Ratio) Ratio {
	if r.IsZero() {
		return Zero
	}
	return One.Div(r)
}

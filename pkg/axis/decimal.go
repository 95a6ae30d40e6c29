package axis

import (
	"github.com/henderiw/rangeset/pkg/algebra"
	"github.com/henderiw/rangeset/pkg/span"
	"github.com/shopspring/decimal"
)

// Decimal is an exact decimal axis; edges and sizes are both
// decimal.NullDecimal.
type Decimal struct{}

var _ algebra.Algebra[decimal.NullDecimal, decimal.NullDecimal] = Decimal{}

func (Decimal) Compare(a, b decimal.NullDecimal) int {
	if c, ok := compareEmpty(!a.Valid, !b.Valid); ok {
		return c
	}
	return a.Decimal.Cmp(b.Decimal)
}

func (Decimal) IsEmptyEdge(e decimal.NullDecimal) bool { return !e.Valid }
func (Decimal) IsEmptySize(s decimal.NullDecimal) bool { return !s.Valid }
func (Decimal) EmptyEdge() decimal.NullDecimal         { return decimal.NullDecimal{} }
func (Decimal) EmptySize() decimal.NullDecimal         { return decimal.NullDecimal{} }

func (Decimal) Add(e, s decimal.NullDecimal) decimal.NullDecimal {
	if !e.Valid || !s.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(e.Decimal.Add(s.Decimal))
}

func (Decimal) Sub(a, b decimal.NullDecimal) decimal.NullDecimal {
	if !a.Valid || !b.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(a.Decimal.Sub(b.Decimal))
}

func (d Decimal) SubSize(e, s decimal.NullDecimal) decimal.NullDecimal {
	return d.Sub(e, s)
}

func (Decimal) Scale(s decimal.NullDecimal, r algebra.Ratio) decimal.NullDecimal {
	if !s.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(s.Decimal.Mul(r))
}

func (Decimal) Div(a, b decimal.NullDecimal) algebra.Ratio {
	if !a.Valid || !b.Valid || b.Decimal.IsZero() {
		return algebra.Zero
	}
	return a.Decimal.Div(b.Decimal)
}

func (Decimal) FormatEdge(e decimal.NullDecimal) string { return formatDecimal(e) }
func (Decimal) FormatSize(s decimal.NullDecimal) string { return formatDecimal(s) }

func formatDecimal(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

type DecimalRange = span.Range[decimal.NullDecimal, decimal.NullDecimal, Decimal]

// DecimalSpan returns the decimal range [begin, end].
func DecimalSpan(begin, end decimal.Decimal) DecimalRange {
	return span.New[decimal.NullDecimal, decimal.NullDecimal, Decimal](
		decimal.NewNullDecimal(begin), decimal.NewNullDecimal(end))
}

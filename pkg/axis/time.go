package axis

import (
	"time"

	"github.com/henderiw/rangeset/pkg/algebra"
	"github.com/henderiw/rangeset/pkg/span"
	"github.com/shopspring/decimal"
)

// Time is the wall clock axis. The zero time.Time is the empty edge and
// sizes are optional durations.
type Time struct{}

var _ algebra.Algebra[time.Time, Null[time.Duration]] = Time{}

func (Time) Compare(a, b time.Time) int {
	if c, ok := compareEmpty(a.IsZero(), b.IsZero()); ok {
		return c
	}
	return a.Compare(b)
}

func (Time) IsEmptyEdge(e time.Time) bool           { return e.IsZero() }
func (Time) IsEmptySize(s Null[time.Duration]) bool { return !s.Valid }
func (Time) EmptyEdge() time.Time                   { return time.Time{} }
func (Time) EmptySize() Null[time.Duration]         { return Null[time.Duration]{} }

func (Time) Add(e time.Time, s Null[time.Duration]) time.Time {
	if e.IsZero() || !s.Valid {
		return time.Time{}
	}
	return e.Add(s.V)
}

func (Time) Sub(a, b time.Time) Null[time.Duration] {
	if a.IsZero() || b.IsZero() {
		return Null[time.Duration]{}
	}
	return Some(a.Sub(b))
}

func (Time) SubSize(e time.Time, s Null[time.Duration]) time.Time {
	if e.IsZero() || !s.Valid {
		return time.Time{}
	}
	return e.Add(-s.V)
}

func (Time) Scale(s Null[time.Duration], r algebra.Ratio) Null[time.Duration] {
	if !s.Valid {
		return Null[time.Duration]{}
	}
	return Some(time.Duration(decimal.NewFromInt(int64(s.V)).Mul(r).Round(0).IntPart()))
}

func (Time) Div(a, b Null[time.Duration]) algebra.Ratio {
	if !a.Valid || !b.Valid || b.V == 0 {
		return algebra.Zero
	}
	return decimal.NewFromInt(int64(a.V)).Div(decimal.NewFromInt(int64(b.V)))
}

func (Time) FormatEdge(e time.Time) string {
	if e.IsZero() {
		return ""
	}
	return e.Format(time.RFC3339Nano)
}

func (Time) FormatSize(s Null[time.Duration]) string {
	if !s.Valid {
		return ""
	}
	return s.V.String()
}

type TimeRange = span.Range[time.Time, Null[time.Duration], Time]

// TimeSpan returns the time range [begin, end].
func TimeSpan(begin, end time.Time) TimeRange {
	return span.New[time.Time, Null[time.Duration], Time](begin, end)
}

// TimeFor returns the time range starting at begin lasting d.
func TimeFor(begin time.Time, d time.Duration) TimeRange {
	return span.FromSize[time.Time, Null[time.Duration], Time](begin, Some(d))
}

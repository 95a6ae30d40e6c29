package relation

import "strings"

// Point is the position of a single point relative to a range.
type Point uint8

const (
	PointNone        Point = 0
	PointBeforeBegin Point = 1 << 0
	PointOnBegin     Point = 1 << 1
	PointInner       Point = 1 << 2
	PointOnEnd       Point = 1 << 3
	PointAfterEnd    Point = 1 << 4
)

// endShift is the offset of the End classification inside a Relation.
const endShift = 5

// Relation describes how the edges of one range fall relative to a base
// range. The Begin classification lives in the low five bits and the End
// classification in the next five, so both can be tested with a mask.
type Relation uint16

const (
	None Relation = 0

	BeginBeforeBegin = Relation(PointBeforeBegin)
	BeginOnBegin     = Relation(PointOnBegin)
	BeginInner       = Relation(PointInner)
	BeginOnEnd       = Relation(PointOnEnd)
	BeginAfterEnd    = Relation(PointAfterEnd)

	EndBeforeBegin = Relation(PointBeforeBegin) << endShift
	EndOnBegin     = Relation(PointOnBegin) << endShift
	EndInner       = Relation(PointInner) << endShift
	EndOnEnd       = Relation(PointOnEnd) << endShift
	EndAfterEnd    = Relation(PointAfterEnd) << endShift
)

// CompareFunc orders two values: negative when a < b, zero when equal,
// positive when a > b.
type CompareFunc[T any] func(a, b T) int

// ClassifyPoint returns where point lies relative to [begin, end].
// A degenerate range (begin >= end) has no relation to anything.
func ClassifyPoint[T any](cmp CompareFunc[T], begin, end, point T) Point {
	if cmp(begin, end) >= 0 {
		return PointNone
	}
	switch c := cmp(point, begin); {
	case c < 0:
		return PointBeforeBegin
	case c == 0:
		return PointOnBegin
	}
	switch c := cmp(point, end); {
	case c > 0:
		return PointAfterEnd
	case c == 0:
		return PointOnEnd
	}
	return PointInner
}

// ClassifyRange returns how [otherBegin, otherEnd] relates to
// [baseBegin, baseEnd]. Each edge is classified independently; the
// result is None when the base range is degenerate.
func ClassifyRange[T any](cmp CompareFunc[T], baseBegin, baseEnd, otherBegin, otherEnd T) Relation {
	b := ClassifyPoint(cmp, baseBegin, baseEnd, otherBegin)
	if b == PointNone {
		return None
	}
	e := ClassifyPoint(cmp, baseBegin, baseEnd, otherEnd)
	return Of(b, e)
}

// Of packs two point classifications into a Relation.
func Of(begin, end Point) Relation {
	return Relation(begin) | Relation(end)<<endShift
}

// Begin returns the classification of the other range's Begin.
func (r Relation) Begin() Point { return Point(r & 0x1f) }

// End returns the classification of the other range's End.
func (r Relation) End() Point { return Point(r >> endShift & 0x1f) }

// Has reports whether any of the bits in mask are set.
func (r Relation) Has(mask Relation) bool { return r&mask != 0 }

// Contains reports whether nothing of the other range escapes the base.
func Contains(r Relation) bool {
	return r&(BeginBeforeBegin|EndAfterEnd) == 0
}

// CanMergeWith reports whether there is no gap between the two ranges;
// overlapping and touching ranges both qualify.
func CanMergeWith(r Relation) bool {
	return r&(EndBeforeBegin|BeginAfterEnd) == 0
}

// IsWholeBefore reports whether the other range ends strictly before the
// base begins.
func IsWholeBefore(r Relation) bool {
	return r&EndBeforeBegin != 0
}

// IsWholeAfter reports whether the other range begins strictly after the
// base ends.
func IsWholeAfter(r Relation) bool {
	return r&BeginAfterEnd != 0
}

func (p Point) String() string {
	switch p {
	case PointNone:
		return "None"
	case PointBeforeBegin:
		return "BeforeBegin"
	case PointOnBegin:
		return "OnBegin"
	case PointInner:
		return "Inner"
	case PointOnEnd:
		return "OnEnd"
	case PointAfterEnd:
		return "AfterEnd"
	}
	return "Invalid"
}

func (r Relation) String() string {
	if r == None {
		return "None"
	}
	var sb strings.Builder
	sb.WriteString("Begin")
	sb.WriteString(r.Begin().String())
	sb.WriteString("|End")
	sb.WriteString(r.End().String())
	return sb.String()
}

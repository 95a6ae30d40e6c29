package span

import "github.com/henderiw/rangeset/pkg/algebra"

// GetPoint returns the edge at the relative position pos, where 0 is
// Begin and 1 is End. It returns an empty edge when the range is not
// filled, not real, or has zero size.
func (r Range[E, S, A]) GetPoint(pos algebra.Ratio) E {
	var a A
	if !r.IsFilled() || !r.IsReal() || r.IsPoint() {
		return a.EmptyEdge()
	}
	return r.pointAt(pos)
}

func (r Range[E, S, A]) pointAt(pos algebra.Ratio) E {
	var a A
	switch {
	case pos.IsZero():
		return r.begin
	case pos.Equal(algebra.One):
		return r.end
	}
	return a.Add(r.begin, a.Scale(r.Size(), pos))
}

// RelativePosition is the inverse of GetPoint. The boolean is false when
// the position is undefined.
func (r Range[E, S, A]) RelativePosition(point E) (algebra.Ratio, bool) {
	var a A
	if !r.IsFilled() || !r.IsReal() || r.IsPoint() || a.IsEmptyEdge(point) {
		return algebra.Zero, false
	}
	return a.Div(a.Sub(point, r.begin), r.Size()), true
}

// ZoomToRatio scales the range by ratio keeping center in place.
func (r Range[E, S, A]) ZoomToRatio(center E, ratio algebra.Ratio) Range[E, S, A] {
	var a A
	if !r.IsFilled() || a.IsEmptyEdge(center) {
		return r
	}
	size := a.Scale(r.Size(), ratio)
	begin := a.SubSize(center, a.Scale(a.Sub(center, r.begin), ratio))
	return Range[E, S, A]{begin: begin, end: a.Add(begin, size)}
}

// ZoomToSize resizes the range to size keeping the relative position of
// center in place.
func (r Range[E, S, A]) ZoomToSize(center E, size S) Range[E, S, A] {
	var a A
	if !r.IsFilled() || a.IsEmptyEdge(center) {
		return r
	}
	ratio := a.Div(a.Sub(center, r.begin), r.Size())
	begin := a.SubSize(center, a.Scale(size, ratio))
	return Range[E, S, A]{begin: begin, end: a.Add(begin, size)}
}

// ChangeSize resizes the range around the point at relative position
// pivot. A half filled or zero size range keeps its known edge fixed.
func (r Range[E, S, A]) ChangeSize(size S, pivot algebra.Ratio) Range[E, S, A] {
	if resized, ok := r.resizeFromEdge(size); ok {
		return resized
	}
	var a A
	fixed := r.pointAt(pivot)
	begin := a.SubSize(fixed, a.Scale(size, pivot))
	return Range[E, S, A]{begin: begin, end: a.Add(begin, size)}
}

// ChangeSizeAt resizes the range keeping fixed at its current relative
// position.
func (r Range[E, S, A]) ChangeSizeAt(size S, fixed E) Range[E, S, A] {
	if resized, ok := r.resizeFromEdge(size); ok {
		return resized
	}
	return r.ZoomToSize(fixed, size)
}

func (r Range[E, S, A]) resizeFromEdge(size S) (Range[E, S, A], bool) {
	var a A
	switch {
	case r.IsEmpty():
		return Empty[E, S, A](), true
	case r.HasOnlyBegin(), r.IsPoint():
		return Range[E, S, A]{begin: r.begin, end: a.Add(r.begin, size)}, true
	case r.HasOnlyEnd():
		return Range[E, S, A]{begin: a.SubSize(r.end, size), end: r.end}, true
	}
	return r, false
}

// Union returns the smallest range covering a and b. When exactly one
// operand is empty the result is the zero size range at the other
// operand's first known edge.
func Union[E, S any, A algebra.Algebra[E, S]](x, y Range[E, S, A]) Range[E, S, A] {
	if r, done := prepareValuesFrom(x, y); done {
		return r
	}
	return Range[E, S, A]{
		begin: minBegin[E, S, A](x.begin, y.begin),
		end:   maxEnd[E, S, A](x.end, y.end),
	}
}

// Intersect returns the range shared by x and y, or an empty range when
// they do not overlap. Empty operands are handled as in Union.
func Intersect[E, S any, A algebra.Algebra[E, S]](x, y Range[E, S, A]) Range[E, S, A] {
	if r, done := prepareValuesFrom(x, y); done {
		return r
	}
	r := Range[E, S, A]{
		begin: maxBegin[E, S, A](x.begin, y.begin),
		end:   minEnd[E, S, A](x.end, y.end),
	}
	if !r.IsReal() {
		return Empty[E, S, A]()
	}
	return r
}

func prepareValuesFrom[E, S any, A algebra.Algebra[E, S]](x, y Range[E, S, A]) (Range[E, S, A], bool) {
	switch {
	case x.IsEmpty() && y.IsEmpty():
		return Empty[E, S, A](), true
	case x.IsEmpty():
		return y.firstEdgePoint(), true
	case y.IsEmpty():
		return x.firstEdgePoint(), true
	}
	return Range[E, S, A]{}, false
}

func (r Range[E, S, A]) firstEdgePoint() Range[E, S, A] {
	if r.HasBegin() {
		return Point[E, S, A](r.begin)
	}
	return Point[E, S, A](r.end)
}

// Align fits data into bounds. Bounds that are not real are ignored.
//
// Without preserveSize each edge is clamped independently: Begin is
// raised to bounds.End and End is lowered to bounds.End.
//
// With preserveSize data is shifted right to start at bounds.Begin, then
// shifted left to end at bounds.End; when bounds is smaller than data the
// Begin is clamped last and End stays where the shift left it.
func Align[E, S any, A algebra.Algebra[E, S]](data, bounds Range[E, S, A], preserveSize bool) Range[E, S, A] {
	var a A
	if bounds.IsEmpty() || !bounds.IsReal() {
		return data
	}
	if !preserveSize || !data.IsFilled() {
		r := data
		if bounds.HasEnd() {
			r.begin = maxBegin[E, S, A](data.begin, bounds.end)
			r.end = minEnd[E, S, A](data.end, bounds.end)
		}
		return r
	}

	size := data.Size()
	r := data
	if bounds.HasBegin() && a.Compare(r.begin, bounds.begin) < 0 {
		r.begin = bounds.begin
		r.end = a.Add(r.begin, size)
	}
	if bounds.HasEnd() && a.Compare(r.end, bounds.end) > 0 {
		r.end = bounds.end
		r.begin = a.SubSize(r.end, size)
		if bounds.HasBegin() && a.Compare(r.begin, bounds.begin) < 0 {
			r.begin = bounds.begin
		}
	}
	return r
}

// ApplyNewValue overrides the edges of oldValue with the edges newValue
// has. With preserveSize a half filled newValue keeps the size of
// oldValue instead of copying its missing edge.
func ApplyNewValue[E, S any, A algebra.Algebra[E, S]](newValue, oldValue Range[E, S, A], preserveSize bool) Range[E, S, A] {
	var a A
	r := oldValue
	switch {
	case newValue.IsFilled():
		return newValue
	case newValue.HasOnlyBegin():
		r.begin = newValue.begin
		if preserveSize && oldValue.IsFilled() {
			r.end = a.Add(r.begin, oldValue.Size())
		}
	case newValue.HasOnlyEnd():
		r.end = newValue.end
		if preserveSize && oldValue.IsFilled() {
			r.begin = a.SubSize(r.end, oldValue.Size())
		}
	}
	return r
}

// an empty Begin is unbounded below, which is also how Compare orders it.
func minBegin[E, S any, A algebra.Algebra[E, S]](x, y E) E {
	var a A
	if a.Compare(x, y) <= 0 {
		return x
	}
	return y
}

func maxBegin[E, S any, A algebra.Algebra[E, S]](x, y E) E {
	var a A
	if a.Compare(x, y) >= 0 {
		return x
	}
	return y
}

// an empty End is unbounded above.
func minEnd[E, S any, A algebra.Algebra[E, S]](x, y E) E {
	var a A
	switch {
	case a.IsEmptyEdge(x):
		return y
	case a.IsEmptyEdge(y):
		return x
	case a.Compare(x, y) <= 0:
		return x
	}
	return y
}

func maxEnd[E, S any, A algebra.Algebra[E, S]](x, y E) E {
	var a A
	switch {
	case a.IsEmptyEdge(x):
		return x
	case a.IsEmptyEdge(y):
		return y
	case a.Compare(x, y) >= 0:
		return x
	}
	return y
}

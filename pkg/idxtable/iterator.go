package idxtable

// Iterator walks the claims of a table in ascending order of their first
// id. It works on a snapshot taken when it was created.
type Iterator[T1 any] struct {
	current int
	keys    []int64
	claims  map[int64]claim[T1]
}

func (r *Iterator[T1]) Next() bool {
	r.current++
	return r.current < len(r.keys)
}

// ID returns the first id of the current claim.
func (r *Iterator[T1]) ID() int64 {
	return r.keys[r.current]
}

// Size returns the number of ids held by the current claim.
func (r *Iterator[T1]) Size() int64 {
	return r.claims[r.keys[r.current]].size
}

func (r *Iterator[T1]) Value() T1 {
	return r.claims[r.keys[r.current]].data
}

// IsConsecutive reports whether the previous claim ends right before the
// current one.
func (r *Iterator[T1]) IsConsecutive() bool {
	if r.current < 1 {
		return false
	}
	prev := r.keys[r.current-1]
	return prev+r.claims[prev].size == r.keys[r.current]
}

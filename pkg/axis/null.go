package axis

import "fmt"

// Null is an optional value; the zero value is empty.
type Null[T any] struct {
	V     T
	Valid bool
}

// Some returns a non-empty Null holding v.
func Some[T any](v T) Null[T] {
	return Null[T]{V: v, Valid: true}
}

func (n Null[T]) String() string {
	if !n.Valid {
		return ""
	}
	return fmt.Sprint(n.V)
}

func compareEmpty(aEmpty, bEmpty bool) (int, bool) {
	switch {
	case aEmpty && bEmpty:
		return 0, true
	case aEmpty:
		return -1, true
	case bEmpty:
		return 1, true
	}
	return 0, false
}

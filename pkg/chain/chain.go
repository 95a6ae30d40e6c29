package chain

import "fmt"

// Nil is the index of no node. Index 0 of the arena is never used.
const Nil uint = 0

// MergeFunc folds the payload of an absorbed neighbor into dst.
type MergeFunc[T any] func(dst *T, src T)

// CopyFunc returns an independent copy of a payload.
type CopyFunc[T any] func(v T) T

type node[T any] struct {
	Prev uint // previous node index: 0 for not set
	Next uint // next node index: 0 for not set
	Val  T
	live bool
}

// Chain is a doubly linked list of payloads kept in an arena and
// addressed by index. A Chain is not safe for concurrent use.
type Chain[T any] struct {
	nodes            []node[T] // [0] is unused
	availableIndexes []uint    // indexes of removed nodes that can be reused
	head             uint
	tail             uint
	length           int
	merge            MergeFunc[T]
}

// New returns an empty chain that merges neighbors with merge.
func New[T any](merge MergeFunc[T]) *Chain[T] {
	if merge == nil {
		panic("chain: nil merge func")
	}
	return &Chain[T]{
		nodes:            make([]node[T], 1),
		availableIndexes: make([]uint, 0),
		merge:            merge,
	}
}

// create a new unlinked node, return its index
func (r *Chain[T]) newNode(v T) uint {
	r.length++
	if n := len(r.availableIndexes); n > 0 {
		index := r.availableIndexes[n-1]
		r.availableIndexes = r.availableIndexes[:n-1]
		r.nodes[index] = node[T]{Val: v, live: true}
		return index
	}
	r.nodes = append(r.nodes, node[T]{Val: v, live: true})
	return uint(len(r.nodes) - 1)
}

func (r *Chain[T]) freeNode(index uint) {
	r.nodes[index] = node[T]{}
	r.availableIndexes = append(r.availableIndexes, index)
	r.length--
}

func (r *Chain[T]) mustLive(index uint) *node[T] {
	if index == Nil || index >= uint(len(r.nodes)) || !r.nodes[index].live {
		panic(fmt.Sprintf("chain: node %d is not part of the chain", index))
	}
	return &r.nodes[index]
}

func (r *Chain[T]) Len() int      { return r.length }
func (r *Chain[T]) Head() uint    { return r.head }
func (r *Chain[T]) Tail() uint    { return r.tail }
func (r *Chain[T]) IsEmpty() bool { return r.length == 0 }

// Valid reports whether index addresses a node of the chain.
func (r *Chain[T]) Valid(index uint) bool {
	return index != Nil && index < uint(len(r.nodes)) && r.nodes[index].live
}

func (r *Chain[T]) Next(index uint) uint { return r.mustLive(index).Next }
func (r *Chain[T]) Prev(index uint) uint { return r.mustLive(index).Prev }
func (r *Chain[T]) Value(index uint) T   { return r.mustLive(index).Val }

// Set replaces the payload of the node at index.
func (r *Chain[T]) Set(index uint, v T) {
	r.mustLive(index).Val = v
}

// PushBack appends v after the tail and returns its index.
func (r *Chain[T]) PushBack(v T) uint {
	if r.tail == Nil {
		index := r.newNode(v)
		r.head, r.tail = index, index
		return index
	}
	return r.InsertAfter(r.tail, v)
}

// PushFront inserts v before the head and returns its index.
func (r *Chain[T]) PushFront(v T) uint {
	if r.head == Nil {
		return r.PushBack(v)
	}
	return r.InsertBefore(r.head, v)
}

// InsertBefore splices v between the node at index and its predecessor.
func (r *Chain[T]) InsertBefore(index uint, v T) uint {
	r.mustLive(index)
	newIndex := r.newNode(v)
	prev := r.nodes[index].Prev
	r.nodes[newIndex].Prev = prev
	r.nodes[newIndex].Next = index
	r.nodes[index].Prev = newIndex
	if prev != Nil {
		r.nodes[prev].Next = newIndex
	} else {
		r.head = newIndex
	}
	return newIndex
}

// InsertAfter splices v between the node at index and its successor.
func (r *Chain[T]) InsertAfter(index uint, v T) uint {
	r.mustLive(index)
	newIndex := r.newNode(v)
	next := r.nodes[index].Next
	r.nodes[newIndex].Prev = index
	r.nodes[newIndex].Next = next
	r.nodes[index].Next = newIndex
	if next != Nil {
		r.nodes[next].Prev = newIndex
	} else {
		r.tail = newIndex
	}
	return newIndex
}

// MergeWithNext folds the successor into the node at index and drops
// it. It returns false when there is no successor.
func (r *Chain[T]) MergeWithNext(index uint) bool {
	n := r.mustLive(index)
	next := n.Next
	if next == Nil {
		return false
	}
	r.merge(&n.Val, r.nodes[next].Val)
	after := r.nodes[next].Next
	n.Next = after
	if after != Nil {
		r.nodes[after].Prev = index
	} else {
		r.tail = index
	}
	r.UnLink(next)
	r.freeNode(next)
	return true
}

// MergeWithPrev folds the predecessor into the node at index and drops
// it. It returns false when there is no predecessor.
func (r *Chain[T]) MergeWithPrev(index uint) bool {
	n := r.mustLive(index)
	prev := n.Prev
	if prev == Nil {
		return false
	}
	r.merge(&n.Val, r.nodes[prev].Val)
	before := r.nodes[prev].Prev
	n.Prev = before
	if before != Nil {
		r.nodes[before].Next = index
	} else {
		r.head = index
	}
	r.UnLink(prev)
	r.freeNode(prev)
	return true
}

// UnLink clears both neighbor references of the node at index. The
// neighbors keep theirs; callers relink them.
func (r *Chain[T]) UnLink(index uint) {
	n := r.mustLive(index)
	n.Prev = Nil
	n.Next = Nil
}

// Remove unlinks the node at index, joins its neighbors and releases it.
func (r *Chain[T]) Remove(index uint) T {
	n := r.mustLive(index)
	v, prev, next := n.Val, n.Prev, n.Next
	if prev != Nil {
		r.nodes[prev].Next = next
	} else {
		r.head = next
	}
	if next != Nil {
		r.nodes[next].Prev = prev
	} else {
		r.tail = prev
	}
	r.UnLink(index)
	r.freeNode(index)
	return v
}

// First walks back from index to the node without predecessor. When a
// node is reached twice the link that closes the cycle is cut there.
func (r *Chain[T]) First(index uint) uint {
	r.mustLive(index)
	seen := map[uint]struct{}{index: {}}
	for {
		prev := r.nodes[index].Prev
		if prev == Nil {
			return index
		}
		if _, ok := seen[prev]; ok {
			r.nodes[index].Prev = Nil
			return index
		}
		seen[prev] = struct{}{}
		index = prev
	}
}

// Last walks forward from index to the node without successor, cutting
// a cycle the same way First does.
func (r *Chain[T]) Last(index uint) uint {
	r.mustLive(index)
	seen := map[uint]struct{}{index: {}}
	for {
		next := r.nodes[index].Next
		if next == Nil {
			return index
		}
		if _, ok := seen[next]; ok {
			r.nodes[index].Next = Nil
			return index
		}
		seen[next] = struct{}{}
		index = next
	}
}

// Values returns the payloads from head to tail.
func (r *Chain[T]) Values() []T {
	vals := make([]T, 0, r.length)
	for i := r.head; i != Nil; i = r.nodes[i].Next {
		vals = append(vals, r.nodes[i].Val)
	}
	return vals
}

// Clone returns an isomorphic chain in a fresh, compacted arena. Payloads
// are passed through copyFn when it is non-nil.
func (r *Chain[T]) Clone(copyFn CopyFunc[T]) *Chain[T] {
	ret := &Chain[T]{
		nodes:            make([]node[T], 1, r.length+1),
		availableIndexes: make([]uint, 0),
		merge:            r.merge,
	}
	for i := r.head; i != Nil; i = r.nodes[i].Next {
		v := r.nodes[i].Val
		if copyFn != nil {
			v = copyFn(v)
		}
		ret.PushBack(v)
	}
	return ret
}

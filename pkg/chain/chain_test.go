package chain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tj/assert"
)

func sum(dst *int, src int) { *dst += src }

func TestInsert(t *testing.T) {
	c := New[int](sum)
	assert.True(t, c.IsEmpty())

	two := c.PushBack(2)
	four := c.PushBack(4)
	c.InsertBefore(two, 1)
	c.InsertAfter(two, 3)
	c.InsertAfter(four, 5)
	c.PushFront(0)

	if diff := cmp.Diff([]int{0, 1, 2, 3, 4, 5}, c.Values()); diff != "" {
		t.Errorf("-want, +got:\n%s", diff)
	}
	assert.Equal(t, 6, c.Len())
	assert.Equal(t, 0, c.Value(c.Head()))
	assert.Equal(t, 5, c.Value(c.Tail()))
	assert.Equal(t, c.Head(), c.First(four))
	assert.Equal(t, c.Tail(), c.Last(two))
}

func TestMerge(t *testing.T) {
	c := New[int](sum)
	a := c.PushBack(1)
	b := c.PushBack(2)
	d := c.PushBack(3)

	assert.True(t, c.MergeWithNext(a))
	assert.Equal(t, 3, c.Value(a))
	assert.False(t, c.Valid(b))
	assert.Equal(t, d, c.Next(a))
	assert.Equal(t, a, c.Prev(d))

	assert.True(t, c.MergeWithPrev(d))
	assert.Equal(t, 6, c.Value(d))
	assert.Equal(t, d, c.Head())
	assert.Equal(t, d, c.Tail())
	assert.Equal(t, 1, c.Len())

	assert.False(t, c.MergeWithNext(d))
	assert.False(t, c.MergeWithPrev(d))
}

func TestReuseIndexes(t *testing.T) {
	c := New[int](sum)
	a := c.PushBack(1)
	b := c.PushBack(2)
	c.MergeWithNext(a)

	reused := c.PushBack(7)
	assert.Equal(t, b, reused)
	if diff := cmp.Diff([]int{3, 7}, c.Values()); diff != "" {
		t.Errorf("-want, +got:\n%s", diff)
	}
}

func TestRemove(t *testing.T) {
	c := New[int](sum)
	a := c.PushBack(1)
	b := c.PushBack(2)
	d := c.PushBack(3)

	assert.Equal(t, 2, c.Remove(b))
	assert.Equal(t, d, c.Next(a))
	assert.Equal(t, 1, c.Remove(a))
	assert.Equal(t, d, c.Head())
	assert.Equal(t, 3, c.Remove(d))
	assert.True(t, c.IsEmpty())
	assert.Equal(t, Nil, c.Head())
	assert.Equal(t, Nil, c.Tail())
}

func TestUnLink(t *testing.T) {
	c := New[int](sum)
	a := c.PushBack(1)
	b := c.PushBack(2)

	c.UnLink(b)
	assert.Equal(t, Nil, c.Prev(b))
	assert.Equal(t, b, c.Next(a))
}

func TestCycleIsCut(t *testing.T) {
	c := New[int](sum)
	a := c.PushBack(1)
	b := c.PushBack(2)
	d := c.PushBack(3)

	// close the chain into a ring, one direction at a time
	c.nodes[d].Next = a
	assert.Equal(t, d, c.Last(a))
	assert.Equal(t, Nil, c.Next(d))

	c.nodes[a].Prev = d
	assert.Equal(t, a, c.First(d))
	assert.Equal(t, Nil, c.Prev(a))
	assert.Equal(t, a, c.Prev(b))
}

func TestClone(t *testing.T) {
	c := New[int](sum)
	a := c.PushBack(1)
	c.PushBack(2)
	c.PushBack(3)
	c.MergeWithNext(a)

	clone := c.Clone(func(v int) int { return v * 10 })
	if diff := cmp.Diff([]int{30, 30}, clone.Values()); diff != "" {
		t.Errorf("-want, +got:\n%s", diff)
	}
	clone.PushBack(4)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 3, clone.Len())
}

func TestInvalidNodePanics(t *testing.T) {
	c := New[int](sum)
	assert.Panics(t, func() { c.Value(Nil) })
	assert.Panics(t, func() { c.InsertAfter(42, 1) })
	assert.Panics(t, func() { New[int](nil) })
}

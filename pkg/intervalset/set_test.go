package intervalset

import (
	"math/rand"
	"net/netip"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/tj/assert"
)

type iv = Interval[int]

func addInt(v, size int) int { return v + size }

func newSet(items ...iv) *Set[int] {
	s := NewOrdered[int]()
	s.AddRange(items)
	return s
}

// checkInvariants fails when the set is not sorted, disjoint and gapped.
func checkInvariants(t *testing.T, s *Set[int]) {
	t.Helper()
	iter := s.Iterate()
	for iter.Next() {
		v := iter.Value()
		if v.Begin >= v.End {
			t.Fatalf("interval %s is not real", v)
		}
		if iter.IsConsecutive() {
			t.Fatalf("interval %s overlaps or touches its predecessor: %v", v, s.Items())
		}
	}
}

func TestAdd(t *testing.T) {
	cases := map[string]struct {
		initial  []iv
		add      []iv
		expected []iv
	}{
		"Empty": {
			add:      []iv{{10, 20}},
			expected: []iv{{10, 20}},
		},
		"ZeroSizeIgnored": {
			add: []iv{{10, 10}},
		},
		"ReversedIgnored": {
			initial:  []iv{{1, 2}},
			add:      []iv{{20, 10}},
			expected: []iv{{1, 2}},
		},
		"Before": {
			initial:  []iv{{10, 20}},
			add:      []iv{{1, 5}},
			expected: []iv{{1, 5}, {10, 20}},
		},
		"After": {
			initial:  []iv{{10, 20}},
			add:      []iv{{25, 30}},
			expected: []iv{{10, 20}, {25, 30}},
		},
		"Between": {
			initial:  []iv{{1, 2}, {10, 20}},
			add:      []iv{{5, 6}},
			expected: []iv{{1, 2}, {5, 6}, {10, 20}},
		},
		"Contained": {
			initial:  []iv{{10, 20}},
			add:      []iv{{12, 18}},
			expected: []iv{{10, 20}},
		},
		"TouchEnd": {
			initial:  []iv{{10, 20}},
			add:      []iv{{20, 25}},
			expected: []iv{{10, 25}},
		},
		"TouchBegin": {
			initial:  []iv{{10, 20}},
			add:      []iv{{5, 10}},
			expected: []iv{{5, 20}},
		},
		"ExtendBoth": {
			initial:  []iv{{10, 20}},
			add:      []iv{{5, 25}},
			expected: []iv{{5, 25}},
		},
		"BridgeTwo": {
			initial:  []iv{{1, 2}, {5, 6}},
			add:      []iv{{2, 5}},
			expected: []iv{{1, 6}},
		},
		"SwallowMany": {
			initial:  []iv{{1, 2}, {5, 6}, {9, 10}, {30, 40}},
			add:      []iv{{0, 20}},
			expected: []iv{{0, 20}, {30, 40}},
		},
		"OverlapSecond": {
			initial:  []iv{{1, 2}, {5, 8}, {20, 30}},
			add:      []iv{{6, 12}},
			expected: []iv{{1, 2}, {5, 12}, {20, 30}},
		},
		"ReverseOrderInsert": {
			add:      []iv{{40, 50}, {30, 35}, {20, 25}, {10, 15}, {15, 20}},
			expected: []iv{{10, 25}, {30, 35}, {40, 50}},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			s := newSet(tc.initial...)
			s.AddRange(tc.add)
			checkInvariants(t, s)
			if diff := cmp.Diff(tc.expected, s.Items(), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("%s: -want, +got:\n%s", name, diff)
			}
		})
	}
}

func TestAddIdempotent(t *testing.T) {
	s := newSet(iv{1, 3}, iv{10, 20})
	s.Add(4, 8)
	once := s.Items()
	s.Add(4, 8)
	if diff := cmp.Diff(once, s.Items()); diff != "" {
		t.Errorf("-want, +got:\n%s", diff)
	}
}

func TestRandomCoverage(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for round := 0; round < 50; round++ {
		s := NewOrdered[int]()
		covered := make([]bool, 200)
		for i := 0; i < 30; i++ {
			b := rnd.Intn(190)
			e := b + rnd.Intn(10)
			s.Add(b, e)
			if b < e {
				for p := b; p <= e; p++ {
					covered[p] = true
				}
			}
			checkInvariants(t, s)
		}
		for p, want := range covered {
			assert.Equal(t, want, s.Contains(p), "point %d in %v", p, s.Items())
		}
	}
}

func TestSearchForSpace(t *testing.T) {
	cases := map[string]struct {
		initial  []iv
		from     int
		size     int
		expected iv
	}{
		"SkipBoth": {
			initial:  []iv{{10, 20}, {30, 40}},
			from:     15,
			size:     25,
			expected: iv{40, 65},
		},
		"FitsInGap": {
			initial:  []iv{{10, 20}, {30, 40}},
			from:     15,
			size:     10,
			expected: iv{20, 30},
		},
		"FreeAlready": {
			initial:  []iv{{10, 20}, {30, 40}},
			from:     0,
			size:     10,
			expected: iv{0, 10},
		},
		"EmptySet": {
			from:     5,
			size:     3,
			expected: iv{5, 8},
		},
		"Backward": {
			initial:  []iv{{10, 20}, {30, 40}},
			from:     35,
			size:     -10,
			expected: iv{20, 30},
		},
		"BackwardSkipBoth": {
			initial:  []iv{{10, 20}, {30, 40}},
			from:     35,
			size:     -15,
			expected: iv{-5, 10},
		},
		"ZeroSize": {
			initial:  []iv{{10, 20}},
			from:     15,
			size:     0,
			expected: iv{15, 15},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			s := newSet(tc.initial...)
			got := SearchForSpace(s, tc.from, tc.size, addInt)
			assert.Equal(t, tc.expected, got)
			if tc.size != 0 {
				assert.False(t, s.Overlaps(got))
			}
		})
	}
}

func TestDeepClone(t *testing.T) {
	s := newSet(iv{1, 2}, iv{5, 6})
	clone := s.DeepClone()
	clone.Add(2, 5)
	clone.Add(10, 12)

	if diff := cmp.Diff([]iv{{1, 2}, {5, 6}}, s.Items()); diff != "" {
		t.Errorf("source changed: -want, +got:\n%s", diff)
	}
	if diff := cmp.Diff([]iv{{1, 6}, {10, 12}}, clone.Items()); diff != "" {
		t.Errorf("clone: -want, +got:\n%s", diff)
	}

	s.Add(100, 200)
	assert.Equal(t, 2, clone.Len())
}

func TestSummary(t *testing.T) {
	a := newSet(iv{1, 2}, iv{10, 20})
	b := newSet(iv{2, 4}, iv{30, 40})
	c := newSet(iv{15, 30})

	sum := Summary(Ordered[int](), a, b, nil, c)
	if diff := cmp.Diff([]iv{{1, 4}, {10, 40}}, sum.Items()); diff != "" {
		t.Errorf("-want, +got:\n%s", diff)
	}
	assert.Equal(t, 2, a.Len())
	assert.True(t, Summary(Ordered[int]()).IsEmpty())
}

func TestQueries(t *testing.T) {
	s := newSet(iv{10, 20}, iv{30, 40})

	assert.True(t, s.Contains(10))
	assert.True(t, s.Contains(20))
	assert.False(t, s.Contains(25))

	assert.True(t, s.Covers(iv{12, 18}))
	assert.False(t, s.Covers(iv{15, 35}))

	assert.True(t, s.Overlaps(iv{15, 35}))
	assert.False(t, s.Overlaps(iv{20, 30}))

	if diff := cmp.Diff([]iv{{0, 10}, {20, 30}, {40, 50}}, s.Gaps(iv{0, 50})); diff != "" {
		t.Errorf("-want, +got:\n%s", diff)
	}
	if diff := cmp.Diff([]iv{{20, 25}}, s.Gaps(iv{15, 25})); diff != "" {
		t.Errorf("-want, +got:\n%s", diff)
	}
	assert.Nil(t, s.Gaps(iv{12, 18}))

	bounds, ok := s.Bounds()
	assert.True(t, ok)
	assert.Equal(t, iv{10, 40}, bounds)
	_, ok = NewOrdered[int]().Bounds()
	assert.False(t, ok)
}

func TestIterators(t *testing.T) {
	s := newSet(iv{10, 20}, iv{30, 40}, iv{50, 60})

	var fwd, bwd []iv
	for v := range s.All() {
		fwd = append(fwd, v)
	}
	for v := range s.Backward() {
		bwd = append(bwd, v)
		if len(bwd) == 2 {
			break
		}
	}
	if diff := cmp.Diff(s.Items(), fwd); diff != "" {
		t.Errorf("-want, +got:\n%s", diff)
	}
	if diff := cmp.Diff([]iv{{50, 60}, {30, 40}}, bwd); diff != "" {
		t.Errorf("-want, +got:\n%s", diff)
	}
}

func TestComparableTypes(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	ts := NewComparable[time.Time]()
	ts.Add(t0, t0.Add(time.Hour))
	ts.Add(t0.Add(time.Hour), t0.Add(2*time.Hour))
	assert.Equal(t, []Interval[time.Time]{{t0, t0.Add(2 * time.Hour)}}, ts.Items())

	slot := SearchForSpace(ts, t0, 30*time.Minute, time.Time.Add)
	assert.Equal(t, t0.Add(2*time.Hour), slot.Begin)

	as := NewComparable[netip.Addr]()
	as.Add(netip.MustParseAddr("10.0.0.1"), netip.MustParseAddr("10.0.0.9"))
	assert.True(t, as.Contains(netip.MustParseAddr("10.0.0.5")))
	assert.False(t, as.Contains(netip.MustParseAddr("10.0.1.5")))
}

func TestNilArguments(t *testing.T) {
	assert.Panics(t, func() { New[int](nil) })
	assert.Panics(t, func() { SearchForSpace[int, int](NewOrdered[int](), 1, 1, nil) })
}

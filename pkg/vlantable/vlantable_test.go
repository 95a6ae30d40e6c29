package vlantable

import (
	"sort"
	"testing"

	"github.com/tj/assert"
	"k8s.io/apimachinery/pkg/labels"

	"github.com/henderiw/rangeset/pkg/intervalset"
)

func TestClaim(t *testing.T) {
	cases := map[string]struct {
		newSuccessEntries map[int64]labels.Set
		newFailedEntries  map[int64]labels.Set
		expectedEntries   int64
	}{

		"Normal": {
			newSuccessEntries: map[int64]labels.Set{
				10: map[string]string{},
				11: map[string]string{},
			},
			newFailedEntries: map[int64]labels.Set{
				5000: map[string]string{},
				0:    map[string]string{},
				4095: map[string]string{},
			},
			expectedEntries: 5,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := New()
			assert.NoError(t, err)

			for id, d := range tc.newSuccessEntries {
				err := r.Claim(id, d)
				assert.NoError(t, err)
			}
			for id, d := range tc.newFailedEntries {
				err := r.Claim(id, d)
				assert.Error(t, err)
			}
			// check table
			for id := range initEntries {
				if !r.Has(id) {
					t.Errorf("%s expecting initEntry: %d\n", name, id)
				}
			}
			for id := range tc.newSuccessEntries {
				if !r.Has(id) {
					t.Errorf("%s expecting success claim entry: %d\n", name, id)
				}
			}
			if r.Count() != tc.expectedEntries {
				t.Errorf("%s: -want %d, +got: %d\n", name, tc.expectedEntries, r.Count())
			}
		})
	}
}

func TestReserved(t *testing.T) {
	r, err := New()
	assert.NoError(t, err)

	assert.Error(t, r.Release(0))
	assert.Error(t, r.Release(4095))
	assert.Error(t, r.ClaimRange(4090, 6, labels.Set{}))

	id, err := r.FindFree()
	assert.NoError(t, err)
	assert.Equal(t, int64(2), id)

	assert.Equal(t, []intervalset.Interval[int64]{{Begin: 2, End: 4094}}, r.Free())
	start, err := r.FindFreeSize(4093)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), start)

	start, err = r.ClaimSize(4093, labels.Set{"type": "trunk"})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), start)
	assert.Equal(t, []intervalset.Interval[int64]{{Begin: 0, End: 4095}}, r.Claimed())

	_, err = r.ClaimDynamic(labels.Set{})
	assert.Error(t, err)
}

func TestGetByLabel(t *testing.T) {
	r, err := New()
	assert.NoError(t, err)
	assert.NoError(t, r.ClaimRange(100, 10, labels.Set{"tenant": "a"}))
	assert.NoError(t, r.Claim(200, labels.Set{"tenant": "b"}))

	got := r.GetByLabel(labels.SelectorFromSet(labels.Set{"tenant": "a"}))
	assert.Equal(t, map[int64]labels.Set{100: {"tenant": "a"}}, got)

	got = r.GetByLabel(labels.SelectorFromSet(labels.Set{"status": "reserved"}))
	assert.Equal(t, []int64{0, 1, 4095}, sortedIDs(got))

	got = r.GetByLabel(labels.Everything())
	assert.Equal(t, []int64{0, 1, 100, 200, 4095}, sortedIDs(got))
}

func sortedIDs(entries map[int64]labels.Set) []int64 {
	ids := make([]int64, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

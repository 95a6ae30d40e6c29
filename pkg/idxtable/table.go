package idxtable

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/henderiw/rangeset/pkg/intervalset"
)

// Table hands out integer ids from [offset, offset+size). Every claim is
// a block of consecutive ids carrying one value; the claimed blocks are
// tracked as a disjoint interval set so free space is found by search
// instead of by walking every id.
type Table[T1 any] interface {
	Get(id int64) (T1, error)
	Claim(id int64, d T1) error
	ClaimDynamic(d T1) (int64, error)
	ClaimRange(start, size int64, d T1) error
	ClaimSize(size int64, d T1) (int64, error)
	Release(id int64) error
	Update(id int64, d T1) error

	Iterate() *Iterator[T1]

	Count() int64
	Has(id int64) bool

	IsFree(id int64) bool
	FindFree() (int64, error)
	FindFreeRange(min, size int64) (int64, error)
	FindFreeSize(size int64) (int64, error)

	Claimed() []intervalset.Interval[int64]
	Free() []intervalset.Interval[int64]
	GetAll() map[int64]T1
}

type ValidationFn func(id int64) error

// NewTable returns a table over [offset, offset+size). initEntries are
// claimed as single ids without running the validation.
func NewTable[T1 any](offset, size int64, initEntries map[int64]T1, v ValidationFn) (Table[T1], error) {
	if size <= 0 || offset > math.MaxInt64-size {
		return nil, fmt.Errorf("invalid table offset %d, size %d", offset, size)
	}
	r := &table[T1]{
		m:          new(sync.RWMutex),
		claims:     map[int64]claim[T1]{},
		claimed:    intervalset.NewOrdered[int64](),
		offset:     offset,
		size:       size,
		validateFn: v,
	}

	var errm error
	for id, d := range initEntries {
		if err := r.add(id, 1, d, true); err != nil {
			errm = errors.Join(errm, err)
		}
	}
	return r, errm
}

type claim[T1 any] struct {
	size int64
	data T1
}

type table[T1 any] struct {
	m *sync.RWMutex
	// claims by first id
	claims map[int64]claim[T1]
	// half-open blocks [first, last+1)
	claimed    *intervalset.Set[int64]
	offset     int64
	size       int64
	validateFn ValidationFn
}

func addID(id, n int64) int64 { return id + n }

func (r *table[T1]) end() int64 { return r.offset + r.size }

func (r *table[T1]) validate(start, size int64, init bool) error {
	if size <= 0 {
		return fmt.Errorf("size %d must be positive", size)
	}
	if start < r.offset || start > r.end()-size {
		return fmt.Errorf("range start %d, size %d does not fit in %d-%d", start, size, r.offset, r.end()-1)
	}
	if r.validateFn != nil && !init {
		var errm error
		for id := start; id < start+size; id++ {
			if err := r.validateFn(id); err != nil {
				errm = errors.Join(errm, err)
			}
		}
		return errm
	}
	return nil
}

// lookup returns the first id of the claim holding id.
func (r *table[T1]) lookup(id int64) (int64, bool) {
	for start, c := range r.claims {
		if id >= start && id < start+c.size {
			return start, true
		}
	}
	return 0, false
}

func (r *table[T1]) Get(id int64) (T1, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	start, ok := r.lookup(id)
	if !ok {
		var d T1
		return d, fmt.Errorf("no match found for: %d", id)
	}
	return r.claims[start].data, nil
}

func (r *table[T1]) Claim(id int64, d T1) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.add(id, 1, d, false)
}

func (r *table[T1]) ClaimDynamic(d T1) (int64, error) {
	return r.ClaimSize(1, d)
}

func (r *table[T1]) ClaimRange(start, size int64, d T1) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.add(start, size, d, false)
}

func (r *table[T1]) ClaimSize(size int64, d T1) (int64, error) {
	r.m.Lock()
	defer r.m.Unlock()

	start, err := r.findFreeRange(r.offset, size)
	if err != nil {
		return 0, err
	}
	if err := r.add(start, size, d, false); err != nil {
		return 0, err
	}
	return start, nil
}

// Release frees the claim that starts at id.
func (r *table[T1]) Release(id int64) error {
	r.m.Lock()
	defer r.m.Unlock()

	if _, ok := r.claims[id]; !ok {
		return fmt.Errorf("no claim starts at %d", id)
	}
	if err := r.validate(id, r.claims[id].size, false); err != nil {
		return err
	}
	delete(r.claims, id)

	r.claimed = intervalset.NewOrdered[int64]()
	for start, c := range r.claims {
		r.claimed.Add(start, start+c.size)
	}
	return nil
}

func (r *table[T1]) Update(id int64, d T1) error {
	r.m.Lock()
	defer r.m.Unlock()

	start, ok := r.lookup(id)
	if !ok {
		return fmt.Errorf("entry %d not found", id)
	}
	c := r.claims[start]
	c.data = d
	r.claims[start] = c
	return nil
}

func (r *table[T1]) Iterate() *Iterator[T1] {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.iterate()
}

func (r *table[T1]) iterate() *Iterator[T1] {
	keys := make([]int64, 0, len(r.claims))
	claims := make(map[int64]claim[T1], len(r.claims))
	for start, c := range r.claims {
		keys = append(keys, start)
		claims[start] = c
	}
	sort.Slice(keys, func(i int, j int) bool {
		return keys[i] < keys[j]
	})

	return &Iterator[T1]{current: -1, keys: keys, claims: claims}
}

func (r *table[T1]) Count() int64 {
	r.m.RLock()
	defer r.m.RUnlock()

	var n int64
	for iv := range r.claimed.All() {
		n += iv.End - iv.Begin
	}
	return n
}

func (r *table[T1]) Has(id int64) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.has(id)
}

func (r *table[T1]) has(id int64) bool {
	return r.claimed.Overlaps(intervalset.Of(id, id+1))
}

func (r *table[T1]) IsFree(id int64) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	if id < r.offset || id >= r.end() {
		return false
	}
	return !r.has(id)
}

func (r *table[T1]) FindFree() (int64, error) {
	return r.FindFreeRange(r.offset, 1)
}

// FindFreeSize returns the first id that starts size free consecutive
// ids.
func (r *table[T1]) FindFreeSize(size int64) (int64, error) {
	return r.FindFreeRange(r.offset, size)
}

// FindFreeRange returns the first id at or after min that starts size
// free consecutive ids.
func (r *table[T1]) FindFreeRange(min, size int64) (int64, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.findFreeRange(min, size)
}

func (r *table[T1]) findFreeRange(min, size int64) (int64, error) {
	if err := r.validate(min, size, true); err != nil {
		return 0, err
	}
	iv := intervalset.SearchForSpace(r.claimed, min, size, addID)
	if iv.End > r.end() {
		return 0, fmt.Errorf("could not find %d free entries from %d", size, min)
	}
	return iv.Begin, nil
}

func (r *table[T1]) add(start, size int64, d T1, init bool) error {
	if err := r.validate(start, size, init); err != nil {
		return err
	}
	iv := intervalset.Of(start, start+size)
	if r.claimed.Overlaps(iv) {
		return fmt.Errorf("range start %d, size %d overlaps a claimed entry", start, size)
	}
	r.claimed.AddInterval(iv)
	r.claims[start] = claim[T1]{size: size, data: d}
	return nil
}

// Claimed returns the claimed ids as merged inclusive ranges.
func (r *table[T1]) Claimed() []intervalset.Interval[int64] {
	r.m.RLock()
	defer r.m.RUnlock()

	ranges := make([]intervalset.Interval[int64], 0, r.claimed.Len())
	for iv := range r.claimed.All() {
		ranges = append(ranges, intervalset.Of(iv.Begin, iv.End-1))
	}
	return ranges
}

// Free returns the unclaimed ids as inclusive ranges.
func (r *table[T1]) Free() []intervalset.Interval[int64] {
	r.m.RLock()
	defer r.m.RUnlock()

	gaps := r.claimed.Gaps(intervalset.Of(r.offset, r.end()))
	ranges := make([]intervalset.Interval[int64], 0, len(gaps))
	for _, gap := range gaps {
		ranges = append(ranges, intervalset.Of(gap.Begin, gap.End-1))
	}
	return ranges
}

// GetAll returns the value of every claim keyed by its first id.
func (r *table[T1]) GetAll() map[int64]T1 {
	r.m.RLock()
	defer r.m.RUnlock()

	entries := make(map[int64]T1, len(r.claims))
	for start, c := range r.claims {
		entries[start] = c.data
	}
	return entries
}

package ipset

import (
	"errors"
	"fmt"
	"math/big"
	"net/netip"
	"sync"

	"github.com/go-logr/logr"
	"go4.org/netipx"

	"github.com/henderiw/rangeset/pkg/intervalset"
)

var ErrNoSpace = errors.New("no free addresses")

// Pool hands out addresses of an IP range. Claimed addresses are kept as
// a set of disjoint ranges; claims that touch are merged.
type Pool interface {
	Claim(r netipx.IPRange) error
	ClaimPrefix(p netip.Prefix) error
	ClaimAddr(a netip.Addr) error

	IsFree(a netip.Addr) bool
	FindFree(near netip.Addr, n int64) (netipx.IPRange, error)

	Claimed() []netipx.IPRange
	IPSet() (*netipx.IPSet, error)
	Len() int
	Count() *big.Int
	Range() netipx.IPRange
}

type Option func(*pool)

func WithLogger(l logr.Logger) Option {
	return func(r *pool) {
		r.log = l
	}
}

func New(ipRange netipx.IPRange, opts ...Option) (Pool, error) {
	if !ipRange.IsValid() {
		return nil, fmt.Errorf("invalid ip range %s", ipRange.String())
	}
	r := &pool{
		m:       new(sync.RWMutex),
		ipRange: ipRange,
		claimed: intervalset.NewComparable[netip.Addr](),
		log:     logr.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

type pool struct {
	m       *sync.RWMutex
	ipRange netipx.IPRange
	// half-open: [from, to.Next())
	claimed *intervalset.Set[netip.Addr]
	log     logr.Logger
}

func (r *pool) Range() netipx.IPRange { return r.ipRange }

func (r *pool) Claim(ipRange netipx.IPRange) error {
	iv, err := r.validate(ipRange)
	if err != nil {
		return err
	}

	r.m.Lock()
	defer r.m.Unlock()

	if r.claimed.Overlaps(iv) {
		return fmt.Errorf("claim failed, range %s overlaps a claimed range", ipRange.String())
	}
	r.claimed.AddInterval(iv)
	r.log.V(1).Info("claimed", "range", ipRange.String(), "ranges", r.claimed.Len())
	return nil
}

func (r *pool) ClaimPrefix(p netip.Prefix) error {
	if !p.IsValid() {
		return fmt.Errorf("prefix %s is invalid", p.String())
	}
	return r.Claim(netipx.RangeOfPrefix(p.Masked()))
}

func (r *pool) ClaimAddr(a netip.Addr) error {
	return r.Claim(netipx.IPRangeFrom(a, a))
}

func (r *pool) validate(ipRange netipx.IPRange) (intervalset.Interval[netip.Addr], error) {
	if !ipRange.IsValid() {
		return intervalset.Interval[netip.Addr]{}, fmt.Errorf("ip range %s is invalid", ipRange.String())
	}
	if !r.ipRange.Contains(ipRange.From()) || !r.ipRange.Contains(ipRange.To()) {
		return intervalset.Interval[netip.Addr]{}, fmt.Errorf("ip range %s does not fit in the range from %s to %s",
			ipRange.String(), r.ipRange.From().String(), r.ipRange.To().String())
	}
	end := ipRange.To().Next()
	if !end.IsValid() {
		return intervalset.Interval[netip.Addr]{}, fmt.Errorf("ip range %s ends on the last address of its family", ipRange.String())
	}
	return intervalset.Of(ipRange.From(), end), nil
}

func (r *pool) IsFree(a netip.Addr) bool {
	if !r.ipRange.Contains(a) {
		return false
	}
	next := a.Next()
	if !next.IsValid() {
		return true
	}

	r.m.RLock()
	defer r.m.RUnlock()

	return !r.claimed.Overlaps(intervalset.Of(a, next))
}

// FindFree returns the n free addresses closest to near. A positive n
// starts the search at near and moves up, a negative n returns addresses
// below near.
func (r *pool) FindFree(near netip.Addr, n int64) (netipx.IPRange, error) {
	if n == 0 {
		return netipx.IPRange{}, fmt.Errorf("%w: zero addresses requested", ErrNoSpace)
	}
	if !r.ipRange.Contains(near) {
		return netipx.IPRange{}, fmt.Errorf("ip address %s is outside %s", near.String(), r.ipRange.String())
	}

	r.m.RLock()
	defer r.m.RUnlock()

	iv := intervalset.SearchForSpace(r.claimed, near, n, addOffset)
	want := big.NewInt(n)
	if distance(iv.Begin, iv.End).CmpAbs(want) != 0 ||
		!r.ipRange.Contains(iv.Begin) || !r.ipRange.Contains(iv.End.Prev()) {
		r.log.V(2).Info("no space", "near", near.String(), "size", n)
		return netipx.IPRange{}, fmt.Errorf("%w: %d addresses near %s", ErrNoSpace, n, near.String())
	}
	return netipx.IPRangeFrom(iv.Begin, iv.End.Prev()), nil
}

func (r *pool) Claimed() []netipx.IPRange {
	r.m.RLock()
	defer r.m.RUnlock()

	ranges := make([]netipx.IPRange, 0, r.claimed.Len())
	for iv := range r.claimed.All() {
		ranges = append(ranges, netipx.IPRangeFrom(iv.Begin, iv.End.Prev()))
	}
	return ranges
}

func (r *pool) IPSet() (*netipx.IPSet, error) {
	var b netipx.IPSetBuilder
	for _, ipRange := range r.Claimed() {
		b.AddRange(ipRange)
	}
	return b.IPSet()
}

// Len returns the number of disjoint claimed ranges.
func (r *pool) Len() int {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.claimed.Len()
}

// Count returns the number of claimed addresses.
func (r *pool) Count() *big.Int {
	r.m.RLock()
	defer r.m.RUnlock()

	total := new(big.Int)
	for iv := range r.claimed.All() {
		total.Add(total, distance(iv.Begin, iv.End))
	}
	return total
}

package schedule

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/labels"

	"github.com/henderiw/rangeset/pkg/axis"
	"github.com/henderiw/rangeset/pkg/intervalset"
	"github.com/henderiw/rangeset/pkg/span"
)

var (
	ErrNotFound = errors.New("resource not found")
	ErrNoSpace  = errors.New("no free slot")
)

// Slot is a closed time interval.
type Slot = intervalset.Interval[time.Time]

// Calendar keeps the busy time of labelled resources inside a fixed
// horizon. Bookings that touch or overlap merge into one busy slot.
type Calendar interface {
	AddResource(name string, l labels.Set) error
	Resources(selector labels.Selector) []string
	Labels(name string) (labels.Set, error)

	Book(name string, begin, end time.Time) error
	IsFree(name string, begin, end time.Time) (bool, error)
	Busy(name string) ([]Slot, error)
	Free(name string, begin, end time.Time) ([]Slot, error)
	FindSlot(name string, near time.Time, d time.Duration) (Slot, error)

	BusyFor(selector labels.Selector) []Slot
	FindCommonSlot(selector labels.Selector, near time.Time, d time.Duration) (Slot, error)

	Horizon() axis.TimeRange
	Clone() Calendar
}

var compareTime = intervalset.CompareMethod[time.Time]()

func New(cfg *Config, opts ...Option) (Calendar, error) {
	if cfg == nil {
		return nil, fmt.Errorf("cannot create a calendar without config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &calendar{
		m:         new(sync.RWMutex),
		horizon:   cfg.Horizon.Range(),
		resources: map[string]*resource{},
		log:       logr.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	for name, l := range cfg.Resources {
		r.resources[name] = newResource(l)
	}
	return r, nil
}

type calendar struct {
	m          *sync.RWMutex
	horizon    axis.TimeRange
	resources  map[string]*resource
	validateFn ValidationFn
	log        logr.Logger
}

type resource struct {
	labels labels.Set
	busy   *intervalset.Set[time.Time]
}

func newResource(l labels.Set) *resource {
	return &resource{
		labels: labels.Merge(labels.Set{}, l),
		busy:   intervalset.New(compareTime),
	}
}

func (r *calendar) Horizon() axis.TimeRange { return r.horizon }

func (r *calendar) AddResource(name string, l labels.Set) error {
	if err := validateResource(name, l); err != nil {
		return err
	}
	r.m.Lock()
	defer r.m.Unlock()

	if _, ok := r.resources[name]; ok {
		return fmt.Errorf("resource %s already exists", name)
	}
	r.resources[name] = newResource(l)
	r.log.V(1).Info("resource added", "resource", name, "labels", l.String())
	return nil
}

func (r *calendar) Resources(selector labels.Selector) []string {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.selectNames(selector)
}

func (r *calendar) selectNames(selector labels.Selector) []string {
	names := []string{}
	for name, res := range r.resources {
		if selector == nil || selector.Matches(res.labels) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (r *calendar) Labels(name string) (labels.Set, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	res, err := r.get(name)
	if err != nil {
		return nil, err
	}
	return labels.Merge(labels.Set{}, res.labels), nil
}

func (r *calendar) get(name string) (*resource, error) {
	res, ok := r.resources[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return res, nil
}

// validateSlot checks that [begin, end] has a length and lies in the
// horizon.
func (r *calendar) validateSlot(begin, end time.Time) error {
	slot := axis.TimeSpan(begin, end)
	if !slot.IsFilled() || !slot.IsReal() || slot.IsPoint() {
		return fmt.Errorf("slot %s must have a begin before its end", slot)
	}
	if !r.horizon.ContainsRange(slot) {
		return fmt.Errorf("slot %s is outside the horizon %s", slot, r.horizon)
	}
	return nil
}

func (r *calendar) Book(name string, begin, end time.Time) error {
	if err := r.validateSlot(begin, end); err != nil {
		r.log.V(2).Info("booking rejected", "resource", name, "error", err.Error())
		return err
	}
	slot := Slot{Begin: begin, End: end}
	if r.validateFn != nil {
		if err := r.validateFn(name, slot); err != nil {
			r.log.V(2).Info("booking rejected", "resource", name, "error", err.Error())
			return err
		}
	}

	r.m.Lock()
	defer r.m.Unlock()

	res, err := r.get(name)
	if err != nil {
		return err
	}
	res.busy.AddInterval(slot)
	r.log.V(1).Info("booked", "resource", name, "slot", slot.String(), "busySlots", res.busy.Len())
	return nil
}

func (r *calendar) IsFree(name string, begin, end time.Time) (bool, error) {
	if err := r.validateSlot(begin, end); err != nil {
		return false, err
	}
	r.m.RLock()
	defer r.m.RUnlock()

	res, err := r.get(name)
	if err != nil {
		return false, err
	}
	return !res.busy.Overlaps(Slot{Begin: begin, End: end}), nil
}

func (r *calendar) Busy(name string) ([]Slot, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	res, err := r.get(name)
	if err != nil {
		return nil, err
	}
	return res.busy.Items(), nil
}

// Free returns the free slots of a resource inside [begin, end] clipped
// to the horizon. A window that does not reach into the horizon has no
// free slots.
func (r *calendar) Free(name string, begin, end time.Time) ([]Slot, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	res, err := r.get(name)
	if err != nil {
		return nil, err
	}
	requested := axis.TimeSpan(begin, end)
	if !requested.IsFilled() || !requested.IsReal() || requested.IsPoint() {
		return nil, fmt.Errorf("window %s must have a begin before its end", requested)
	}
	window := span.Intersect(r.horizon, requested)
	if !window.IsFilled() || window.IsPoint() {
		return nil, nil
	}
	return res.busy.Gaps(Slot{Begin: window.Begin(), End: window.End()}), nil
}

// FindSlot returns the free slot of length |d| closest to near; a
// negative d searches backward so that the slot ends at or before near.
func (r *calendar) FindSlot(name string, near time.Time, d time.Duration) (Slot, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	res, err := r.get(name)
	if err != nil {
		return Slot{}, err
	}
	return r.search(res.busy, near, d)
}

func (r *calendar) BusyFor(selector labels.Selector) []Slot {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.summary(selector).Items()
}

// FindCommonSlot returns a slot that is free on every selected resource.
func (r *calendar) FindCommonSlot(selector labels.Selector, near time.Time, d time.Duration) (Slot, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.search(r.summary(selector), near, d)
}

func (r *calendar) summary(selector labels.Selector) *intervalset.Set[time.Time] {
	names := r.selectNames(selector)
	sets := make([]*intervalset.Set[time.Time], 0, len(names))
	for _, name := range names {
		sets = append(sets, r.resources[name].busy)
	}
	return intervalset.Summary(compareTime, sets...)
}

func (r *calendar) search(busy *intervalset.Set[time.Time], near time.Time, d time.Duration) (Slot, error) {
	if d == 0 {
		return Slot{}, fmt.Errorf("%w: zero duration requested", ErrNoSpace)
	}
	if !r.horizon.Contains(near) {
		return Slot{}, fmt.Errorf("%s is outside the horizon %s", near.Format(time.RFC3339), r.horizon)
	}
	slot := intervalset.SearchForSpace(busy, near, d, time.Time.Add)
	if !r.horizon.ContainsRange(axis.TimeSpan(slot.Begin, slot.End)) {
		r.log.V(2).Info("no slot in horizon", "near", near, "duration", d.String())
		return Slot{}, fmt.Errorf("%w: %s near %s", ErrNoSpace, d, near.Format(time.RFC3339))
	}
	return slot, nil
}

func (r *calendar) Clone() Calendar {
	r.m.RLock()
	defer r.m.RUnlock()

	resources := make(map[string]*resource, len(r.resources))
	for name, res := range r.resources {
		resources[name] = &resource{
			labels: labels.Merge(labels.Set{}, res.labels),
			busy:   res.busy.DeepClone(),
		}
	}
	return &calendar{
		m:          new(sync.RWMutex),
		horizon:    r.horizon,
		resources:  resources,
		validateFn: r.validateFn,
		log:        r.log,
	}
}

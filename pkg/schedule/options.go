package schedule

import "github.com/go-logr/logr"

// ValidationFn is called before a slot is booked on a resource.
type ValidationFn func(resource string, slot Slot) error

type Option func(*calendar)

// WithLogger sets the logger; bookings are logged at V(1) and rejected
// requests at V(2).
func WithLogger(l logr.Logger) Option {
	return func(r *calendar) {
		r.log = l
	}
}

// WithValidation installs an extra check run on every booking.
func WithValidation(fn ValidationFn) Option {
	return func(r *calendar) {
		r.validateFn = fn
	}
}

package schedule

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/util/validation"

	"github.com/henderiw/rangeset/pkg/axis"
)

// Config describes the bookable horizon and the initial resources of a
// calendar.
type Config struct {
	Horizon   Window                       `yaml:"horizon"`
	Resources map[string]map[string]string `yaml:"resources,omitempty"`
}

// Window is a time range as it appears in configuration.
type Window struct {
	Begin time.Time `yaml:"begin"`
	End   time.Time `yaml:"end"`
}

// Range returns the window as a time range.
func (r Window) Range() axis.TimeRange {
	return axis.TimeSpan(r.Begin, r.End)
}

// ParseConfig decodes and validates a YAML configuration.
func ParseConfig(b []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("cannot parse calendar config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate returns all problems of the configuration joined together.
func (r *Config) Validate() error {
	var errm error
	horizon := r.Horizon.Range()
	if !horizon.IsFilled() || !horizon.IsReal() || horizon.IsPoint() {
		errm = errors.Join(errm, fmt.Errorf("horizon %s must have a begin before its end", horizon))
	}

	names := make([]string, 0, len(r.Resources))
	for name := range r.Resources {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := validateResource(name, r.Resources[name]); err != nil {
			errm = errors.Join(errm, err)
		}
	}
	return errm
}

func validateResource(name string, l labels.Set) error {
	var errm error
	for _, msg := range validation.IsDNS1123Label(name) {
		errm = errors.Join(errm, fmt.Errorf("resource %q: %s", name, msg))
	}
	if _, err := labels.ValidatedSelectorFromSet(l); err != nil {
		errm = errors.Join(errm, fmt.Errorf("resource %q: invalid labels: %w", name, err))
	}
	return errm
}

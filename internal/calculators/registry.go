package calculators

import (
	"errors"
	"fmt"

	"roi-engine/internal/model"
	"roi-engine/internal/valuemodel"
)

var ErrUnknownUseCase = errors.New("unknown use case")

// Registry is the immutable table of available use cases, in catalog order.
type Registry struct {
	ordered []Calculator
	byID    map[string]Calculator
}

// NewRegistry builds a registry from calcs. Nil entries and entries without an
// id are skipped; on duplicate ids the first one wins.
func NewRegistry(calcs ...Calculator) *Registry {
	r := &Registry{byID: make(map[string]Calculator, len(calcs))}
	for _, c := range calcs {
		if c == nil {
			continue
		}
		id := c.Definition().ID
		if id == "" {
			continue
		}
		if _, dup := r.byID[id]; dup {
			continue
		}
		r.byID[id] = c
		r.ordered = append(r.ordered, c)
	}
	return r
}

// Builtin returns a registry holding every shipped use case.
func Builtin() *Registry {
	return NewRegistry(
		NewOnTimeBilling(),
		NewMeterReadings(),
		NewExcessTruckRolls(),
		NewReduceExceptions(),
		NewReduceAgingReceivables(),
		NewReduceDelayedBills(),
	)
}

// Get returns the calculator registered under id.
func (r *Registry) Get(id string) (Calculator, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUseCase, id)
	}
	return c, nil
}

// Lookup returns the calculator for id. On a miss it returns the first
// registered calculator and false, so catalog views always have something to
// show. It returns nil only for an empty registry.
func (r *Registry) Lookup(id string) (Calculator, bool) {
	if c, ok := r.byID[id]; ok {
		return c, true
	}
	if len(r.ordered) == 0 {
		return nil, false
	}
	return r.ordered[0], false
}

func (r *Registry) All() []Calculator {
	return append([]Calculator(nil), r.ordered...)
}

func (r *Registry) Len() int {
	return len(r.ordered)
}

// Definitions returns the catalog entries in registration order.
func (r *Registry) Definitions() []model.UseCaseDefinition {
	defs := make([]model.UseCaseDefinition, 0, len(r.ordered))
	for _, c := range r.ordered {
		defs = append(defs, c.Definition())
	}
	return defs
}

// WithScenarioOverrides returns a new registry where every use case present in
// overrides uses that scenario set. Empty sets are ignored, as are sets with a
// reduction outside [0,1]; those use cases keep their current set.
func (r *Registry) WithScenarioOverrides(overrides map[string]model.ScenarioSet) *Registry {
	calcs := make([]Calculator, 0, len(r.ordered))
	for _, c := range r.ordered {
		set, ok := overrides[c.Definition().ID]
		if ok && len(set) > 0 && valuemodel.CheckReductions(set) == nil {
			c = c.WithScenarios(set)
		}
		calcs = append(calcs, c)
	}
	return NewRegistry(calcs...)
}

// Validate checks every use case's scenario set and returns all problems found.
func (r *Registry) Validate() error {
	var errs []error
	for _, c := range r.ordered {
		def := c.Definition()
		if len(def.Scenarios) == 0 {
			continue
		}
		if err := valuemodel.ValidateScenarioSet(def.Scenarios); err != nil {
			errs = append(errs, fmt.Errorf("use case %s: %w", def.ID, err))
		}
	}
	return errors.Join(errs...)
}

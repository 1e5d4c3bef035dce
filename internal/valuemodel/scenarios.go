package valuemodel

import (
	"errors"
	"fmt"

	"roi-engine/internal/model"
)

// DefaultScenarioKey is used whenever a requested scenario is not defined.
const DefaultScenarioKey = model.ScenarioRealistic

// DefaultScenarios returns the global scenario set used when a use case
// supplies none.
func DefaultScenarios() model.ScenarioSet {
	return model.ScenarioSet{
		model.ScenarioConservative: {Label: "Conservative", FrequencyReduction: 0.1, CostReduction: 0.15},
		model.ScenarioRealistic:    {Label: "Realistic", FrequencyReduction: 0.25, CostReduction: 0.3},
		model.ScenarioOptimistic:   {Label: "Optimistic", FrequencyReduction: 0.4, CostReduction: 0.45},
	}
}

// Resolution reports how ResolveScenario picked its definition.
type Resolution int

const (
	Requested Resolution = iota
	Fallback
	Missing
)

func (r Resolution) String() string {
	switch r {
	case Requested:
		return "requested"
	case Fallback:
		return "fallback"
	default:
		return "missing"
	}
}

// EffectiveSet returns overrides when non-empty, otherwise the default set.
func EffectiveSet(overrides model.ScenarioSet) model.ScenarioSet {
	if len(overrides) > 0 {
		return overrides
	}
	return DefaultScenarios()
}

// ResolveScenario looks key up in the effective set, falling back to the
// default key. If neither exists the zero definition (no reduction) is returned.
func ResolveScenario(overrides model.ScenarioSet, key string) (model.ScenarioDefinition, Resolution) {
	set := EffectiveSet(overrides)
	if def, ok := set[key]; ok {
		return def, Requested
	}
	if def, ok := set[DefaultScenarioKey]; ok {
		return def, Fallback
	}
	return model.ScenarioDefinition{}, Missing
}

// ValidateScenarioSet reports configuration problems that ResolveScenario
// would otherwise mask at runtime.
func ValidateScenarioSet(set model.ScenarioSet) error {
	var errs []error
	if _, ok := set[DefaultScenarioKey]; !ok {
		errs = append(errs, fmt.Errorf("missing default scenario %q", DefaultScenarioKey))
	}
	if err := CheckReductions(set); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// CheckReductions reports every scenario whose reductions fall outside [0,1].
// Such a set would price the improved state below zero.
func CheckReductions(set model.ScenarioSet) error {
	var errs []error
	for _, key := range sortedKeys(set) {
		def := set[key]
		if !inUnitRange(def.FrequencyReduction) {
			errs = append(errs, fmt.Errorf("scenario %q: frequency reduction %v outside [0,1]", key, def.FrequencyReduction))
		}
		if !inUnitRange(def.CostReduction) {
			errs = append(errs, fmt.Errorf("scenario %q: cost reduction %v outside [0,1]", key, def.CostReduction))
		}
	}
	return errors.Join(errs...)
}

func inUnitRange(v float64) bool {
	return v >= 0 && v <= 1
}

package calculators

import (
	"roi-engine/internal/model"
	"roi-engine/internal/valuemodel"
)

// Calculator defines the contract for all use case implementations. Calculate
// never fails: malformed or missing inputs contribute zero.
type Calculator interface {
	Definition() model.UseCaseDefinition
	Calculate(inputs model.Inputs, scenario string) model.Outcome
	// WithScenarios returns a copy of the calculator using set instead of its
	// built-in scenarios.
	WithScenarios(set model.ScenarioSet) Calculator
}

// eventCalculator covers use cases that reduce to an annual event count and a
// cost per event, and delegate the scenario math to the value model.
type eventCalculator struct {
	def    model.UseCaseDefinition
	derive func(in model.Inputs) (frequency, costPerEvent float64)
}

func (c *eventCalculator) Definition() model.UseCaseDefinition {
	return cloneDefinition(c.def)
}

func (c *eventCalculator) Calculate(inputs model.Inputs, scenario string) model.Outcome {
	frequency, costPerEvent := c.derive(inputs)
	return valuemodel.Build(frequency, costPerEvent, scenario, c.def.Scenarios).Outcome()
}

func (c *eventCalculator) WithScenarios(set model.ScenarioSet) Calculator {
	def := cloneDefinition(c.def)
	def.Scenarios = set.Clone()
	return &eventCalculator{def: def, derive: c.derive}
}

func cloneDefinition(d model.UseCaseDefinition) model.UseCaseDefinition {
	d.Inputs = append([]model.InputSpec(nil), d.Inputs...)
	d.Assumptions = append([]string(nil), d.Assumptions...)
	d.Scenarios = d.Scenarios.Clone()
	return d
}

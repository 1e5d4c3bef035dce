// Package valuemodel implements the scenario-driven cost reduction model
// shared by the frequency × cost-per-event use cases.
package valuemodel

import "roi-engine/internal/model"

// Build computes baseline and improved annual cost for an event stream.
// Negative or non-finite inputs are treated as zero. The scenario is resolved
// against overrides (or the default set) as described on ResolveScenario.
func Build(baselineFrequency, costPerEvent float64, scenarioKey string, overrides model.ScenarioSet) model.ValueResult {
	scenario, _ := ResolveScenario(overrides, scenarioKey)

	freq := nonNegative(baselineFrequency)
	cost := nonNegative(costPerEvent)

	reducedFrequency := freq * (1 - scenario.FrequencyReduction)
	reducedCostPerEvent := cost * (1 - scenario.CostReduction)

	baselineCost := freq * cost
	improvedCost := reducedFrequency * reducedCostPerEvent

	return model.ValueResult{
		BaselineFrequency:   freq,
		CostPerEvent:        cost,
		ReducedFrequency:    reducedFrequency,
		ReducedCostPerEvent: reducedCostPerEvent,
		BaselineCost:        baselineCost,
		ImprovedCost:        improvedCost,
		AnnualValue:         baselineCost - improvedCost,
	}
}

// HoursToCost prices handling time at an hourly rate.
func HoursToCost(hours, hourlyRate float64) float64 {
	return nonNegative(hours) * nonNegative(hourlyRate)
}

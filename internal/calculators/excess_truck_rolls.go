package calculators

import (
	"roi-engine/internal/model"
	"roi-engine/internal/valuemodel"
)

const IDExcessTruckRolls = "excess_truck_rolls"

func NewExcessTruckRolls() Calculator {
	return &eventCalculator{
		def: model.UseCaseDefinition{
			ID:          IDExcessTruckRolls,
			Name:        "Reduce Excess Truck Rolls",
			Description: "Prevents avoidable field dispatches and lowers cost per roll.",
			// Dispatch prevention only; the cost of a roll itself does not move.
			Scenarios: model.ScenarioSet{
				model.ScenarioConservative: {Label: "Conservative", FrequencyReduction: 0.1, CostReduction: 0},
				model.ScenarioRealistic:    {Label: "Realistic", FrequencyReduction: 0.25, CostReduction: 0},
				model.ScenarioOptimistic:   {Label: "Optimistic", FrequencyReduction: 0.4, CostReduction: 0},
			},
			Inputs: []model.InputSpec{
				{ID: "annualDispatches", Label: "Annual field dispatches", Group: model.GroupFrequency, DefaultValue: 15000, Min: 0, Max: 100000, Step: 500},
				{ID: "avoidableRate", Label: "% avoidable", Group: model.GroupFrequency, DefaultValue: 18, Min: 0, Max: 100, Step: 0.5, Help: "Portion of dispatches that could be prevented."},
				{ID: "repeatRate", Label: "% resulting in repeat visit", Group: model.GroupFrequency, DefaultValue: 12, Min: 0, Max: 100, Step: 0.5, Help: "Captures callbacks / repeat truck rolls."},
				{ID: "truckRollCost", Label: "Truck roll cost ($)", Group: model.GroupCost, DefaultValue: 325, Min: 0, Max: 1000, Step: 10},
				{ID: "adminHours", Label: "Back-office time per event (hours)", Group: model.GroupCost, DefaultValue: 0.3, Min: 0, Max: 4, Step: 0.1},
				{ID: "hourlyCost", Label: "Fully loaded cost per hour ($)", Group: model.GroupCost, DefaultValue: 55, Min: 0, Max: 300, Step: 1},
			},
			Assumptions: []string{
				"Frequency measures avoidable dispatches plus expected repeats.",
				"Scenario multipliers reflect reduced dispatches and leaner handling per event.",
				"Truck roll cost includes vehicle, fuel, and crew time.",
			},
		},
		derive: excessTruckRollEvents,
	}
}

// Avoidable dispatches grossed up by repeat visits.
func excessTruckRollEvents(in model.Inputs) (float64, float64) {
	frequency := in.Get("annualDispatches") * in.Percent("avoidableRate") * (1 + in.Percent("repeatRate"))
	costPerEvent := in.Get("truckRollCost") + valuemodel.HoursToCost(in.Get("adminHours"), in.Get("hourlyCost"))
	return frequency, costPerEvent
}

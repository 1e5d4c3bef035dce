package calculators

import (
	"roi-engine/internal/model"
	"roi-engine/internal/valuemodel"
)

const IDReduceExceptions = "reduce_exceptions"

func NewReduceExceptions() Calculator {
	return &eventCalculator{
		def: model.UseCaseDefinition{
			ID:          IDReduceExceptions,
			Name:        "Reduce Exceptions",
			Description: "Cuts exception volume and handling effort across meter-to-cash.",
			Scenarios: model.ScenarioSet{
				model.ScenarioConservative: {Label: "Conservative Outcome", FrequencyReduction: 0.1, CostReduction: 0.15},
				model.ScenarioRealistic:    {Label: "Realistic Outcome", FrequencyReduction: 0.25, CostReduction: 0.3},
				model.ScenarioOptimistic:   {Label: "Optimistic Outcome", FrequencyReduction: 0.4, CostReduction: 0.45},
			},
			Inputs: []model.InputSpec{
				{ID: "annualVolume", Label: "Annual transactions", Group: model.GroupFrequency, DefaultValue: 1200000, Min: 10000, Max: 10000000, Step: 10000},
				{ID: "exceptionRate", Label: "% generating exceptions", Group: model.GroupFrequency, DefaultValue: 4, Min: 0, Max: 100, Step: 0.5, Help: "Share of transactions that create an exception."},
				{ID: "disputeRate", Label: "% disputed / escalated", Group: model.GroupFrequency, DefaultValue: 35, Min: 0, Max: 100, Step: 0.5, Help: "Portion of exceptions that require agent involvement."},
				{ID: "handlingHours", Label: "Avg handling time (hours)", Group: model.GroupCost, DefaultValue: 0.45, Min: 0, Max: 8, Step: 0.05},
				{ID: "hourlyCost", Label: "Fully loaded cost per hour ($)", Group: model.GroupCost, DefaultValue: 55, Min: 0, Max: 300, Step: 1},
				{ID: "truckRollRate", Label: "% requiring field work", Group: model.GroupCost, DefaultValue: 10, Min: 0, Max: 100, Step: 0.5, Help: "Subset of escalations that trigger a truck roll."},
				{ID: "truckRollCost", Label: "Cost per truck roll ($)", Group: model.GroupCost, DefaultValue: 275, Min: 0, Max: 1000, Step: 5},
			},
			Assumptions: []string{
				"Exceptions represent cases requiring manual intervention.",
				"Scenario multipliers reduce both frequency and handling cost.",
				"Operational and field costs are fully burdened.",
			},
		},
		derive: exceptionEvents,
	}
}

func exceptionEvents(in model.Inputs) (float64, float64) {
	frequency := in.Get("annualVolume") * in.Percent("exceptionRate") * in.Percent("disputeRate")
	costPerEvent := valuemodel.HoursToCost(in.Get("handlingHours"), in.Get("hourlyCost")) +
		in.Percent("truckRollRate")*in.Get("truckRollCost")
	return frequency, costPerEvent
}

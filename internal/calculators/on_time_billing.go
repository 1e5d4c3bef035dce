package calculators

import (
	"roi-engine/internal/model"
	"roi-engine/internal/valuemodel"
)

const IDOnTimeBilling = "on_time_billing"

func NewOnTimeBilling() Calculator {
	return &eventCalculator{
		def: model.UseCaseDefinition{
			ID:          IDOnTimeBilling,
			Name:        "Improve On-Time Billing",
			Description: "Reduces delayed bills and the manual effort they create.",
			Scenarios: model.ScenarioSet{
				model.ScenarioConservative: {Label: "Conservative Outcome", FrequencyReduction: 0.1, CostReduction: 0.15},
				model.ScenarioRealistic:    {Label: "Realistic Outcome", FrequencyReduction: 0.25, CostReduction: 0.3},
				model.ScenarioOptimistic:   {Label: "Optimistic Outcome", FrequencyReduction: 0.4, CostReduction: 0.45},
			},
			Inputs: []model.InputSpec{
				{ID: "annualBills", Label: "Annual bills generated", Group: model.GroupFrequency, DefaultValue: 1200000, Min: 0, Max: 12000000, Step: 1000, Help: "Total bills sent per year."},
				{ID: "delayRate", Label: "% of bills delayed", Group: model.GroupFrequency, DefaultValue: 6, Min: 0, Max: 100, Step: 0.5, Help: "Share of bills that miss the initial cycle."},
				{ID: "exceptionRate", Label: "% needing human intervention", Group: model.GroupFrequency, DefaultValue: 15, Min: 0, Max: 100, Step: 1, Help: "Portion of delayed bills that trigger agent work."},
				{ID: "handlingHours", Label: "Avg handling time per delayed bill (hours)", Group: model.GroupCost, DefaultValue: 0.5, Min: 0, Max: 8, Step: 0.1},
				{ID: "hourlyCost", Label: "Fully loaded cost per hour ($)", Group: model.GroupCost, DefaultValue: 55, Min: 0, Max: 300, Step: 1},
				{ID: "adjustmentCost", Label: "Avg write-off / adjustment ($)", Group: model.GroupCost, DefaultValue: 8, Min: 0, Max: 100, Step: 1, Help: "Typical revenue leakage tied to each delayed bill."},
			},
			Assumptions: []string{
				"Frequency is the count of delayed bills requiring human work each year.",
				"Scenario multipliers represent process improvements that reduce delays and the time or leakage per event.",
				"Write-offs scale directly with the number of delayed bills.",
			},
		},
		derive: onTimeBillingEvents,
	}
}

// Delayed bills that need an agent, each costing handling time plus the
// typical adjustment.
func onTimeBillingEvents(in model.Inputs) (float64, float64) {
	frequency := in.Get("annualBills") * in.Percent("delayRate") * in.Percent("exceptionRate")
	costPerEvent := valuemodel.HoursToCost(in.Get("handlingHours"), in.Get("hourlyCost")) + in.Get("adjustmentCost")
	return frequency, costPerEvent
}

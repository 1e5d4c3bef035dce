package calculators

import (
	"roi-engine/internal/model"
	"roi-engine/internal/valuemodel"
)

const IDReduceAgingReceivables = "reduce_aging_receivables"

func NewReduceAgingReceivables() Calculator {
	return &eventCalculator{
		def: model.UseCaseDefinition{
			ID:          IDReduceAgingReceivables,
			Name:        "Reduce Aging Receivables",
			Description: "Reduces aged receivables and the manual effort required to collect them.",
			Scenarios: model.ScenarioSet{
				model.ScenarioConservative: {Label: "Conservative Outcome", FrequencyReduction: 0.1, CostReduction: 0.15},
				model.ScenarioRealistic:    {Label: "Realistic Outcome", FrequencyReduction: 0.25, CostReduction: 0.3},
				model.ScenarioOptimistic:   {Label: "Optimistic Outcome", FrequencyReduction: 0.4, CostReduction: 0.45},
			},
			Inputs: []model.InputSpec{
				{ID: "annualInvoices", Label: "Annual invoices issued", Group: model.GroupFrequency, DefaultValue: 250000, Min: 10000, Max: 2000000, Step: 5000},
				{ID: "agingRate", Label: "% aging past due", Group: model.GroupFrequency, DefaultValue: 8, Min: 0, Max: 100, Step: 0.5, Help: "Share of invoices that move into aging buckets (e.g., 30+ days past due)."},
				{ID: "collectionRate", Label: "% requiring collections work", Group: model.GroupFrequency, DefaultValue: 60, Min: 0, Max: 100, Step: 1, Help: "Portion of aged invoices that require agent follow-up or escalation."},
				{ID: "handlingHours", Label: "Avg handling time per aged invoice (hours)", Group: model.GroupCost, DefaultValue: 0.6, Min: 0, Max: 8, Step: 0.1},
				{ID: "hourlyCost", Label: "Fully loaded cost per hour ($)", Group: model.GroupCost, DefaultValue: 55, Min: 0, Max: 300, Step: 1},
				{ID: "writeoffCost", Label: "Avg write-off / concession ($)", Group: model.GroupCost, DefaultValue: 15, Min: 0, Max: 200, Step: 1, Help: "Typical concession or write-off needed to close an aged invoice."},
			},
			Assumptions: []string{
				"Frequency counts aged invoices that require human collections effort.",
				"Scenario multipliers reduce how many invoices age and the handling/waiver per event.",
				"Write-offs represent concessions used to close outstanding balances.",
			},
		},
		derive: agingReceivableEvents,
	}
}

func agingReceivableEvents(in model.Inputs) (float64, float64) {
	frequency := in.Get("annualInvoices") * in.Percent("agingRate") * in.Percent("collectionRate")
	costPerEvent := valuemodel.HoursToCost(in.Get("handlingHours"), in.Get("hourlyCost")) + in.Get("writeoffCost")
	return frequency, costPerEvent
}

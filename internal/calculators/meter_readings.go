package calculators

import (
	"roi-engine/internal/model"
	"roi-engine/internal/valuemodel"
)

const IDMeterReadings = "meter_readings"

func NewMeterReadings() Calculator {
	return &eventCalculator{
		def: model.UseCaseDefinition{
			ID:          IDMeterReadings,
			Name:        "Improve Meter Readings",
			Description: "Reduces estimated reads and the downstream work they trigger.",
			Scenarios: model.ScenarioSet{
				model.ScenarioConservative: {Label: "Conservative", FrequencyReduction: 0.1, CostReduction: 0.15},
				model.ScenarioRealistic:    {Label: "Realistic", FrequencyReduction: 0.25, CostReduction: 0.3},
				model.ScenarioOptimistic:   {Label: "Optimistic", FrequencyReduction: 0.4, CostReduction: 0.45},
			},
			Inputs: []model.InputSpec{
				{ID: "meterCount", Label: "Meters served", Group: model.GroupFrequency, DefaultValue: 50000, Min: 50000, Max: 2000000, Step: 500},
				{ID: "readsPerYear", Label: "Reads per meter per year", Group: model.GroupFrequency, DefaultValue: 12, Min: 1, Max: 24, Step: 1},
				{ID: "estimatedRate", Label: "% of reads estimated", Group: model.GroupFrequency, DefaultValue: 7, Min: 0, Max: 100, Step: 0.5, Help: "Portion of reads without an actual read."},
				{ID: "disputeRate", Label: "% of estimated reads disputed", Group: model.GroupFrequency, DefaultValue: 12, Min: 0, Max: 100, Step: 0.5, Help: "Share of estimated reads that trigger agent work."},
				{ID: "handlingHours", Label: "Avg handling time (hours)", Group: model.GroupCost, DefaultValue: 0.4, Min: 0, Max: 8, Step: 0.1},
				{ID: "hourlyCost", Label: "Fully loaded cost per hour ($)", Group: model.GroupCost, DefaultValue: 55, Min: 0, Max: 300, Step: 1},
				{ID: "truckRollRate", Label: "% requiring a truck roll", Group: model.GroupCost, DefaultValue: 12, Min: 0, Max: 100, Step: 0.5, Help: "Only for contested estimated reads."},
				{ID: "truckRollCost", Label: "Truck roll cost ($)", Group: model.GroupCost, DefaultValue: 225, Min: 0, Max: 500, Step: 5},
			},
			Assumptions: []string{
				"Frequency counts disputed estimated reads that demand human attention.",
				"A subset of disputes triggers a truck roll; scenario multipliers reduce both disputes and per-event cost.",
				"Operational time and truck costs are fully burdened.",
			},
		},
		derive: meterReadingEvents,
	}
}

func meterReadingEvents(in model.Inputs) (float64, float64) {
	frequency := in.Get("meterCount") * in.Get("readsPerYear") * in.Percent("estimatedRate") * in.Percent("disputeRate")
	costPerEvent := valuemodel.HoursToCost(in.Get("handlingHours"), in.Get("hourlyCost")) +
		in.Percent("truckRollRate")*in.Get("truckRollCost")
	return frequency, costPerEvent
}

package model

// ValueResult is the output of the frequency × cost-per-event value model.
type ValueResult struct {
	BaselineFrequency   float64 `json:"baseline_frequency"`
	CostPerEvent        float64 `json:"cost_per_event"`
	ReducedFrequency    float64 `json:"reduced_frequency"`
	ReducedCostPerEvent float64 `json:"reduced_cost_per_event"`
	BaselineCost        float64 `json:"baseline_cost"`
	ImprovedCost        float64 `json:"improved_cost"`
	AnnualValue         float64 `json:"annual_value"`
}

// Outcome wraps the result so it can be returned as the common contract.
func (v ValueResult) Outcome() Outcome {
	vr := v
	return Outcome{
		BaselineCost: v.BaselineCost,
		ImprovedCost: v.ImprovedCost,
		AnnualValue:  v.AnnualValue,
		ValueModel:   &vr,
	}
}

// DelayCosts are the baseline cost components of delayed billing.
type DelayCosts struct {
	DelayedBills         float64 `json:"delayed_bills"`
	CollectionsBills     float64 `json:"collections_bills"`
	CashDelayCost        float64 `json:"cash_delay_cost"`
	CollectionsLaborCost float64 `json:"collections_labor_cost"`
	LeakageCost          float64 `json:"leakage_cost"`
	Total                float64 `json:"total"`
}

// AvoidedCosts splits the annual value across the delayed-billing components.
type AvoidedCosts struct {
	CashDelay   float64 `json:"cash_delay"`
	Collections float64 `json:"collections"`
	Leakage     float64 `json:"leakage"`
}

type DelayBreakdown struct {
	Baseline          DelayCosts   `json:"baseline"`
	ImprovementFactor float64      `json:"improvement_factor"`
	ImprovedTotal     float64      `json:"improved_total"`
	Avoided           AvoidedCosts `json:"avoided"`
}

// Outcome is what every calculator returns. BaselineCost, ImprovedCost and
// AnnualValue are always set; the detail pointers depend on how the use case
// derives them.
type Outcome struct {
	BaselineCost float64         `json:"baseline_cost"`
	ImprovedCost float64         `json:"improved_cost"`
	AnnualValue  float64         `json:"annual_value"`
	ValueModel   *ValueResult    `json:"value_model,omitempty"`
	Delay        *DelayBreakdown `json:"delay_breakdown,omitempty"`
}

// AggregateTotals is the componentwise sum of outcomes across the cart.
type AggregateTotals struct {
	TotalBaselineCost float64 `json:"total_baseline_cost"`
	TotalImprovedCost float64 `json:"total_improved_cost"`
	TotalAnnualValue  float64 `json:"total_annual_value"`
}

// Add accumulates o into the totals.
func (t *AggregateTotals) Add(o Outcome) {
	t.TotalBaselineCost += o.BaselineCost
	t.TotalImprovedCost += o.ImprovedCost
	t.TotalAnnualValue += o.AnnualValue
}

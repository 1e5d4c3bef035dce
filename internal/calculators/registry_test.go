package calculators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roi-engine/internal/model"
)

// stubCalculator is a minimal Calculator used to exercise registry rules.
type stubCalculator struct {
	id    string
	name  string
	value float64
}

func (s stubCalculator) Definition() model.UseCaseDefinition {
	return model.UseCaseDefinition{ID: s.id, Name: s.name}
}

func (s stubCalculator) Calculate(model.Inputs, string) model.Outcome {
	return model.Outcome{BaselineCost: s.value, AnnualValue: s.value}
}

func (s stubCalculator) WithScenarios(model.ScenarioSet) Calculator { return s }

func TestBuiltin_CatalogOrder(t *testing.T) {
	r := Builtin()
	require.Equal(t, 6, r.Len())

	var ids []string
	for _, d := range r.Definitions() {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []string{
		IDOnTimeBilling,
		IDMeterReadings,
		IDExcessTruckRolls,
		IDReduceExceptions,
		IDReduceAgingReceivables,
		IDReduceDelayedBills,
	}, ids)
	assert.NoError(t, r.Validate())
}

func TestNewRegistry_FirstRegistrationWins(t *testing.T) {
	r := NewRegistry(
		stubCalculator{id: "a", name: "first"},
		nil,
		stubCalculator{id: ""},
		stubCalculator{id: "a", name: "second"},
		stubCalculator{id: "b", name: "bee"},
	)

	require.Equal(t, 2, r.Len())
	c, err := r.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "first", c.Definition().Name)
}

func TestRegistry_GetUnknown(t *testing.T) {
	_, err := Builtin().Get("nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownUseCase)
}

func TestRegistry_LookupFallsBackToFirst(t *testing.T) {
	r := Builtin()

	c, ok := r.Lookup(IDMeterReadings)
	assert.True(t, ok)
	assert.Equal(t, IDMeterReadings, c.Definition().ID)

	c, ok = r.Lookup("missing")
	assert.False(t, ok)
	require.NotNil(t, c)
	assert.Equal(t, IDOnTimeBilling, c.Definition().ID)

	c, ok = NewRegistry().Lookup("missing")
	assert.False(t, ok)
	assert.Nil(t, c)
}

func TestRegistry_WithScenarioOverrides(t *testing.T) {
	base := Builtin()
	overridden := base.WithScenarioOverrides(map[string]model.ScenarioSet{
		IDOnTimeBilling: {
			model.ScenarioRealistic: {Label: "Aggressive", FrequencyReduction: 0.5, CostReduction: 0.5},
		},
		IDMeterReadings: {},
	})

	c, err := overridden.Get(IDOnTimeBilling)
	require.NoError(t, err)
	out := c.Calculate(c.Definition().DefaultInputs(), model.ScenarioRealistic)
	// 383400 * 0.5 * 0.5
	assert.InDelta(t, 95850, out.ImprovedCost, eps)

	orig, _ := base.Get(IDOnTimeBilling)
	assert.InDelta(t, 201285, orig.Calculate(orig.Definition().DefaultInputs(), model.ScenarioRealistic).ImprovedCost, eps)

	meter, _ := overridden.Get(IDMeterReadings)
	assert.Len(t, meter.Definition().Scenarios, 3)
	assert.Equal(t, base.Len(), overridden.Len())
}

func TestRegistry_WithScenarioOverrides_IgnoresOutOfRangeReductions(t *testing.T) {
	r := Builtin().WithScenarioOverrides(map[string]model.ScenarioSet{
		IDOnTimeBilling: {
			model.ScenarioRealistic: {Label: "Impossible", FrequencyReduction: 1.5, CostReduction: 0.3},
		},
		IDMeterReadings: {
			model.ScenarioRealistic: {Label: "Negative", FrequencyReduction: 0.2, CostReduction: -0.1},
		},
	})
	require.NoError(t, r.Validate())

	for _, id := range []string{IDOnTimeBilling, IDMeterReadings} {
		c, err := r.Get(id)
		require.NoError(t, err)
		out := c.Calculate(c.Definition().DefaultInputs(), model.ScenarioRealistic)
		assert.GreaterOrEqual(t, out.ImprovedCost, 0.0, id)
		assert.LessOrEqual(t, out.AnnualValue, out.BaselineCost, id)
		assert.NotEqual(t, "Impossible", c.Definition().Scenarios[model.ScenarioRealistic].Label, id)
	}

	c, _ := r.Get(IDOnTimeBilling)
	out := c.Calculate(c.Definition().DefaultInputs(), model.ScenarioRealistic)
	assert.InDelta(t, 201285, out.ImprovedCost, eps)
}

func TestRegistry_ValidateReportsBrokenSets(t *testing.T) {
	r := Builtin().WithScenarioOverrides(map[string]model.ScenarioSet{
		IDReduceExceptions: {model.ScenarioOptimistic: {FrequencyReduction: 0.4}},
	})

	err := r.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "use case reduce_exceptions")
	assert.Contains(t, err.Error(), "missing default scenario")
}

// Package cart holds the user's in-memory selection of use cases and sums
// their results. A Cart has a single owner and is not safe for concurrent use.
package cart

import (
	"errors"
	"fmt"
	"math"

	"roi-engine/internal/calculators"
	"roi-engine/internal/model"
	"roi-engine/internal/valuemodel"
)

var (
	ErrAlreadyInCart = errors.New("use case already in cart")
	ErrNotInCart     = errors.New("use case not in cart")
	ErrUnknownInput  = errors.New("unknown input")
)

// Instance is one use case added to the cart. Result caches the last
// calculation and is refreshed on every input or scenario change.
type Instance struct {
	UseCaseID string
	Inputs    model.Inputs
	Scenario  string
	Result    model.Outcome

	calc calculators.Calculator
}

func (i *Instance) Definition() model.UseCaseDefinition {
	return i.calc.Definition()
}

// ScenarioInfo describes the instance's scenario against its use case's set.
func (i *Instance) ScenarioInfo() model.ScenarioInfo {
	return valuemodel.EffectiveSet(i.calc.Definition().Scenarios).Describe(i.Scenario)
}

// UseCaseResult is the instance in response form.
func (i *Instance) UseCaseResult() model.UseCaseResult {
	def := i.calc.Definition()
	result := i.Result
	return model.UseCaseResult{
		UseCaseID:   i.UseCaseID,
		Name:        def.Name,
		Description: def.Description,
		Scenario:    i.ScenarioInfo(),
		Inputs:      i.Inputs.Clone(),
		Outcome:     &result,
	}
}

func (i *Instance) recalculate() model.Outcome {
	i.Result = i.calc.Calculate(i.Inputs, i.Scenario)
	return i.Result
}

type Cart struct {
	registry *calculators.Registry
	order    []string
	items    map[string]*Instance
}

func New(registry *calculators.Registry) *Cart {
	return &Cart{
		registry: registry,
		items:    make(map[string]*Instance),
	}
}

// Add puts a use case in the cart with default inputs and the default scenario.
func (c *Cart) Add(id string) (*Instance, error) {
	if inst, ok := c.items[id]; ok {
		return inst, fmt.Errorf("%w: %s", ErrAlreadyInCart, id)
	}
	calc, err := c.registry.Get(id)
	if err != nil {
		return nil, err
	}
	inst := &Instance{
		UseCaseID: id,
		Inputs:    calc.Definition().DefaultInputs(),
		Scenario:  valuemodel.DefaultScenarioKey,
		calc:      calc,
	}
	inst.recalculate()
	c.items[id] = inst
	c.order = append(c.order, id)
	return inst, nil
}

// Remove drops a use case from the cart and reports whether it was present.
func (c *Cart) Remove(id string) bool {
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// SetInput stores a new value for one input and returns the value actually
// kept: non-finite values become the input's minimum and values below the
// minimum are raised to it.
func (c *Cart) SetInput(id, inputID string, value float64) (float64, error) {
	inst, err := c.instance(id)
	if err != nil {
		return 0, err
	}
	spec, ok := inst.calc.Definition().Input(inputID)
	if !ok {
		return 0, fmt.Errorf("%w: %s.%s", ErrUnknownInput, id, inputID)
	}
	min := spec.Bounds().Min
	if math.IsNaN(value) || math.IsInf(value, 0) {
		value = min
	}
	value = math.Max(min, value)
	inst.Inputs[inputID] = value
	inst.recalculate()
	return value, nil
}

// SetScenario selects a scenario for a use case. Keys the use case does not
// define are kept as chosen and resolve to the default scenario when calculated.
func (c *Cart) SetScenario(id, key string) error {
	inst, err := c.instance(id)
	if err != nil {
		return err
	}
	inst.Scenario = key
	inst.recalculate()
	return nil
}

func (c *Cart) Instance(id string) (*Instance, bool) {
	inst, ok := c.items[id]
	return inst, ok
}

// Instances returns the cart entries in the order they were added.
func (c *Cart) Instances() []*Instance {
	out := make([]*Instance, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

func (c *Cart) Len() int {
	return len(c.order)
}

// Totals recalculates every instance from its live inputs and scenario and
// returns the componentwise sum. An empty cart yields zero totals.
func (c *Cart) Totals() model.AggregateTotals {
	outcomes := make([]model.Outcome, 0, len(c.order))
	for _, id := range c.order {
		outcomes = append(outcomes, c.items[id].recalculate())
	}
	return Sum(outcomes...)
}

// Results snapshots every instance as a use case result, in cart order.
func (c *Cart) Results() []model.UseCaseResult {
	out := make([]model.UseCaseResult, 0, len(c.order))
	for _, inst := range c.Instances() {
		out = append(out, inst.UseCaseResult())
	}
	return out
}

func (c *Cart) instance(id string) (*Instance, error) {
	inst, ok := c.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotInCart, id)
	}
	return inst, nil
}

// Sum adds outcomes componentwise.
func Sum(outcomes ...model.Outcome) model.AggregateTotals {
	var t model.AggregateTotals
	for _, o := range outcomes {
		t.Add(o)
	}
	return t
}

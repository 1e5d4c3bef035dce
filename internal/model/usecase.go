package model

import "math"

type InputGroup string

const (
	GroupFrequency InputGroup = "frequency"
	GroupCost      InputGroup = "cost"
)

// InputSpec describes one user-tunable input of a use case.
// Max and Step are optional; zero means unbounded / derived.
type InputSpec struct {
	ID           string     `json:"id"`
	Label        string     `json:"label"`
	Group        InputGroup `json:"group"`
	DefaultValue float64    `json:"default_value"`
	Min          float64    `json:"min"`
	Max          float64    `json:"max,omitempty"`
	Step         float64    `json:"step,omitempty"`
	Help         string     `json:"help,omitempty"`
}

type Bounds struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

// Bounds returns the slider range for the input, deriving max and step when unset.
func (s InputSpec) Bounds() Bounds {
	b := Bounds{Min: s.Min, Max: s.Max, Step: s.Step}
	if b.Max == 0 {
		span := 100.0
		if s.DefaultValue != 0 {
			span = s.DefaultValue * 2
		}
		b.Max = math.Max(span, b.Min+1)
	}
	if b.Step == 0 {
		b.Step = (b.Max - b.Min) / 100
	}
	return b
}

// UseCaseDefinition is the static description of a registered use case.
type UseCaseDefinition struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Inputs      []InputSpec `json:"inputs"`
	Scenarios   ScenarioSet `json:"scenarios"`
	Assumptions []string    `json:"assumptions,omitempty"`
}

// Input returns the InputSpec for inputID.
func (d UseCaseDefinition) Input(inputID string) (InputSpec, bool) {
	for _, in := range d.Inputs {
		if in.ID == inputID {
			return in, true
		}
	}
	return InputSpec{}, false
}

// DefaultInputs returns a fresh input map populated with every input's default value.
func (d UseCaseDefinition) DefaultInputs() Inputs {
	out := make(Inputs, len(d.Inputs))
	for _, in := range d.Inputs {
		out[in.ID] = in.DefaultValue
	}
	return out
}

// Inputs maps an input id to its current numeric value.
type Inputs map[string]float64

// Get returns the value for id, or 0 when it is missing or not finite.
func (in Inputs) Get(id string) float64 {
	v, ok := in[id]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Percent returns Get(id) converted from a percentage to a fraction.
func (in Inputs) Percent(id string) float64 {
	return in.Get(id) / 100
}

func (in Inputs) Clone() Inputs {
	out := make(Inputs, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

package model

import (
	"fmt"
	"math"
	"strings"
)

const (
	ScenarioConservative = "conservative"
	ScenarioRealistic    = "realistic"
	ScenarioOptimistic   = "optimistic"
)

// ScenarioKeys lists the scenario keys in display order.
var ScenarioKeys = []string{ScenarioConservative, ScenarioRealistic, ScenarioOptimistic}

// ScenarioDefinition describes how much an improvement initiative is expected
// to cut event frequency and per-event cost. Both reductions are fractions in [0,1].
type ScenarioDefinition struct {
	Label              string  `json:"label"`
	FrequencyReduction float64 `json:"frequency_reduction"`
	CostReduction      float64 `json:"cost_reduction"`
}

// ScenarioSet maps a scenario key to its definition.
type ScenarioSet map[string]ScenarioDefinition

// ScenarioInfo is the display form of a scenario selection.
type ScenarioInfo struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Detail string `json:"detail"`
}

// Clone returns an independent copy of the set.
func (s ScenarioSet) Clone() ScenarioSet {
	if s == nil {
		return nil
	}
	out := make(ScenarioSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Describe returns the label and "-25% freq, -30% cost" detail for key.
// Unknown keys describe the realistic scenario they resolve to; when that is
// missing too the key itself is the label and the percentages read "--".
func (s ScenarioSet) Describe(key string) ScenarioInfo {
	def, ok := s[key]
	if !ok {
		def, ok = s[ScenarioRealistic]
	}
	label := def.Label
	if label == "" {
		label = titleCase(key)
	}
	freq, cost := "--", "--"
	if ok {
		freq = fmt.Sprintf("%d", int(math.Round(def.FrequencyReduction*100)))
		cost = fmt.Sprintf("%d", int(math.Round(def.CostReduction*100)))
	}
	return ScenarioInfo{
		Key:    key,
		Label:  label,
		Detail: fmt.Sprintf("-%s%% freq, -%s%% cost", freq, cost),
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

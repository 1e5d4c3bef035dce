package valuemodel

import (
	"math"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"

	"roi-engine/internal/model"
)

// ParseNumber converts a loosely typed form value into a finite number.
// Strings may carry thousands separators; an empty string is 0. Anything
// that does not produce a finite number yields fallback.
func ParseNumber(v any, fallback float64) float64 {
	var f float64
	switch x := v.(type) {
	case nil, bool:
		return fallback
	case json.Number:
		return ParseNumber(string(x), fallback)
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(x, ",", ""))
		if s == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fallback
		}
		f = parsed
	default:
		parsed, err := cast.ToFloat64E(x)
		if err != nil {
			return fallback
		}
		f = parsed
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fallback
	}
	return f
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func sortedKeys(set model.ScenarioSet) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

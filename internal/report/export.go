// Package report turns calculated use cases into exportable value summaries.
package report

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"roi-engine/internal/model"
)

type Entry struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Scenario    model.ScenarioInfo `json:"scenario"`
	Baseline    float64            `json:"baseline"`
	Improved    float64            `json:"improved"`
	AnnualValue float64            `json:"annual_value"`
}

type Export struct {
	Entries     []Entry               `json:"entries"`
	Totals      model.AggregateTotals `json:"totals"`
	Currency    string                `json:"currency"`
	GeneratedAt time.Time             `json:"generated_at"`
	Notes       string                `json:"notes,omitempty"`
}

type Options struct {
	// Selection limits and orders the entries; empty exports every result.
	Selection []string
	Currency  string
	Notes     string
	Now       time.Time
}

// Build collects the export entries. Results without an outcome and selected
// ids that have no result are skipped.
func Build(results []model.UseCaseResult, opts Options) Export {
	byID := make(map[string]model.UseCaseResult, len(results))
	order := make([]string, 0, len(results))
	for _, r := range results {
		if r.Outcome == nil {
			continue
		}
		if _, dup := byID[r.UseCaseID]; dup {
			continue
		}
		byID[r.UseCaseID] = r
		order = append(order, r.UseCaseID)
	}
	if len(opts.Selection) > 0 {
		order = opts.Selection
	}

	entries := []Entry{}
	seen := make(map[string]bool, len(order))
	var baseline, improved, value decimal.Decimal
	for _, id := range order {
		r, ok := byID[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		e := Entry{
			ID:          id,
			Name:        r.Name,
			Description: r.Description,
			Scenario:    r.Scenario,
			Baseline:    finite(r.Outcome.BaselineCost),
			Improved:    finite(r.Outcome.ImprovedCost),
			AnnualValue: finite(r.Outcome.AnnualValue),
		}
		entries = append(entries, e)
		baseline = baseline.Add(decimal.NewFromFloat(e.Baseline))
		improved = improved.Add(decimal.NewFromFloat(e.Improved))
		value = value.Add(decimal.NewFromFloat(e.AnnualValue))
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	return Export{
		Entries: entries,
		Totals: model.AggregateTotals{
			TotalBaselineCost: baseline.InexactFloat64(),
			TotalImprovedCost: improved.InexactFloat64(),
			TotalAnnualValue:  value.InexactFloat64(),
		},
		Currency:    NormalizeCurrency(opts.Currency),
		GeneratedAt: now.UTC(),
		Notes:       strings.TrimSpace(opts.Notes),
	}
}

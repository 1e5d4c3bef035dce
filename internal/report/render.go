package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"roi-engine/internal/model"
)

const notesWidth = 78

// Render writes a plain-text value summary.
func Render(w io.Writer, ex Export) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Value Summary\n")
	fmt.Fprintf(&b, "Generated: %s\n", ex.GeneratedAt.Format("2006-01-02"))
	fmt.Fprintf(&b, "Currency: %s\n\n", ex.Currency)

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Use case\tScenario\tBaseline\tImproved\tAnnual value\t")
	for _, e := range ex.Entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n",
			e.Name, e.Scenario.Label,
			FormatCurrency(e.Baseline, ex.Currency),
			FormatCurrency(e.Improved, ex.Currency),
			FormatCurrency(e.AnnualValue, ex.Currency))
	}
	fmt.Fprintf(tw, "Total\t\t%s\t%s\t%s\t\n",
		FormatCurrency(ex.Totals.TotalBaselineCost, ex.Currency),
		FormatCurrency(ex.Totals.TotalImprovedCost, ex.Currency),
		FormatCurrency(ex.Totals.TotalAnnualValue, ex.Currency))
	if err := tw.Flush(); err != nil {
		return err
	}

	if ex.Notes != "" {
		b.WriteString("\nNotes:\n")
		for _, line := range wrapLines(ex.Notes, notesWidth) {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// ChartRow is one bar of the baseline/improved comparison. Width is a
// percentage of the larger of the two costs.
type ChartRow struct {
	Label string
	Value float64
	Width float64
}

// ChartRows scales baseline and improved cost against max(baseline, improved, 1).
func ChartRows(o model.Outcome) []ChartRow {
	scale := math.Max(math.Max(o.BaselineCost, o.ImprovedCost), 1)
	width := func(v float64) float64 {
		return math.Min(100, v/scale*100)
	}
	return []ChartRow{
		{Label: "Baseline cost", Value: o.BaselineCost, Width: width(o.BaselineCost)},
		{Label: "Improved cost", Value: o.ImprovedCost, Width: width(o.ImprovedCost)},
	}
}

// Bar draws the row as a run of block characters out of cells.
func (r ChartRow) Bar(cells int) string {
	if cells <= 0 {
		return ""
	}
	n := 0
	if w := r.Width / 100 * float64(cells); w > 0 {
		n = min(cells, int(math.Round(w)))
	}
	return strings.Repeat("█", n) + strings.Repeat("░", cells-n)
}

func wrapLines(text string, width int) []string {
	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		next := word
		if current != "" {
			next = current + " " + word
		}
		if len(next) > width && current != "" {
			lines = append(lines, current)
			current = word
			continue
		}
		current = next
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

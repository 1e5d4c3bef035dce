package report

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/currency"
)

// DefaultCurrency is used for unknown or unsupported currency codes.
const DefaultCurrency = "USD"

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// Currencies lists the supported display currencies.
var Currencies = []string{"USD", "EUR", "GBP"}

// NormalizeCurrency returns the ISO code for code when it is a supported
// display currency, otherwise DefaultCurrency.
func NormalizeCurrency(code string) string {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return DefaultCurrency
	}
	if _, ok := currencySymbols[unit.String()]; !ok {
		return DefaultCurrency
	}
	return unit.String()
}

// FormatCurrency renders v rounded to whole units with grouping, e.g. "$182,115".
// Non-finite values render as zero.
func FormatCurrency(v float64, code string) string {
	sym := currencySymbols[NormalizeCurrency(code)]
	n := math.Round(finite(v))
	digits := humanize.Commaf(math.Abs(n))
	if n < 0 {
		return "-" + sym + digits
	}
	return sym + digits
}

// FormatNumber renders v with grouping and at most two decimals.
func FormatNumber(v float64) string {
	return humanize.CommafWithDigits(finite(v), 2)
}

// FormatCompact abbreviates v with a K, M or B suffix. Scaled values under ten
// keep one decimal; larger ones are rounded to whole numbers.
func FormatCompact(v float64) string {
	num := finite(v)
	abs := math.Abs(num)
	scaled, suffix := num, ""
	switch {
	case abs >= 1e9:
		scaled, suffix = num/1e9, "B"
	case abs >= 1e6:
		scaled, suffix = num/1e6, "M"
	case abs >= 1e3:
		scaled, suffix = num/1e3, "K"
	}
	var display float64
	if math.Abs(scaled) >= 10 {
		display = roundHalfUp(scaled)
	} else {
		display = roundHalfUp(scaled*10) / 10
	}
	return strconv.FormatFloat(display, 'f', -1, 64) + suffix
}

// roundHalfUp rounds halves towards positive infinity.
func roundHalfUp(v float64) float64 {
	r := math.Floor(v + 0.5)
	if r == 0 {
		return 0
	}
	return r
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

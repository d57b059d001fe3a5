// Package format renders amounts and percentages for reports
package format

import (
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/thisisprabha/networth/internal/domain"
)

const (
	crore = 10_000_000
	lakh  = 100_000
)

func currency(code string) *money.Currency {
	if c := money.GetCurrency(strings.ToUpper(code)); c != nil {
		return c
	}
	return money.GetCurrency(domain.DefaultCurrencyCode)
}

// Currency formats v in whole units of code with western digit grouping
// Unknown codes fall back to INR. Non-finite values render as zero
func Currency(v float64, code string) string {
	c := currency(code)
	f := money.NewFormatter(0, c.Decimal, c.Thousand, c.Grapheme, c.Template)
	return f.Format(wholeUnits(v))
}

// Compact formats v with a magnitude suffix and at most one decimal place
// INR uses Cr (1e7) and L (1e5); other currencies use M (1e6) and K (1e3)
// Values below the smallest step are formatted with Currency
func Compact(v float64, code string) string {
	c := currency(code)
	number, ok := compactNumber(v, c.Code)
	if !ok {
		return Currency(v, c.Code)
	}
	return strings.Replace(strings.Replace(c.Template, "1", number, 1), "$", c.Grapheme, 1)
}

// CompactNumber is Compact without the currency symbol
func CompactNumber(v float64, code string) string {
	c := currency(code)
	if number, ok := compactNumber(v, c.Code); ok {
		return number
	}
	f := money.NewFormatter(0, c.Decimal, c.Thousand, "", "$1")
	return f.Format(wholeUnits(v))
}

func compactNumber(v float64, code string) (string, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", false
	}
	type step struct {
		size   float64
		suffix string
	}
	steps := []step{{1_000_000_000, "B"}, {1_000_000, "M"}, {1_000, "K"}}
	if code == domain.DefaultCurrencyCode {
		steps = []step{{crore, "Cr"}, {lakh, "L"}}
	}
	for _, s := range steps {
		if v >= s.size {
			return decimal.NewFromFloat(v / s.size).Round(1).String() + s.suffix, true
		}
	}
	return "", false
}

// Percent formats a fraction as a percentage with one decimal, e.g. 0.125 -> 12.5%
func Percent(fraction float64) string {
	if math.IsNaN(fraction) || math.IsInf(fraction, 0) {
		fraction = 0
	}
	return decimal.NewFromFloat(fraction).Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}

// SignedPercent is Percent with an explicit + for positive values
func SignedPercent(fraction float64) string {
	p := Percent(fraction)
	if !strings.HasPrefix(p, "-") && p != "0.0%" {
		return "+" + p
	}
	return p
}

// OptionalPercent renders nil as a dash
func OptionalPercent(fraction *float64) string {
	if fraction == nil {
		return "–"
	}
	return SignedPercent(*fraction)
}

func wholeUnits(v float64) int64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(0).IntPart()
}

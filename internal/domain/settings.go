package domain

import "math"

// DefaultCurrencyCode is the display currency used when none is configured
const DefaultCurrencyCode = "INR"

// Settings holds the process-wide growth-rate overrides and display currency
// GrowthRates is keyed by category; rates are annual percentages
type Settings struct {
	CurrencyCode string
	GrowthRates  map[Category]float64
}

// DefaultSettings fills every category with its definition's default rate
func DefaultSettings() Settings {
	rates := make(map[Category]float64, len(declared))
	for _, c := range declared {
		rates[c] = Definition(c).GrowthRateDefault
	}
	return Settings{CurrencyCode: DefaultCurrencyCode, GrowthRates: rates}
}

// GrowthRate returns the override for c, falling back to the category default
// A non-finite override is ignored
func (s Settings) GrowthRate(c Category) float64 {
	if rate, ok := s.GrowthRates[c]; ok && !math.IsNaN(rate) && !math.IsInf(rate, 0) {
		return rate
	}
	return Definition(c).GrowthRateDefault
}

// Currency returns the configured currency code or the default
func (s Settings) Currency() string {
	if s.CurrencyCode == "" {
		return DefaultCurrencyCode
	}
	return s.CurrencyCode
}

// WithGrowthRate returns a copy with the override for c set to rate
func (s Settings) WithGrowthRate(c Category, rate float64) Settings {
	out := s.Clone()
	out.GrowthRates[c] = rate
	return out
}

// Clone returns a copy that shares no map with the receiver
func (s Settings) Clone() Settings {
	rates := make(map[Category]float64, len(s.GrowthRates))
	for c, r := range s.GrowthRates {
		rates[c] = r
	}
	return Settings{CurrencyCode: s.CurrencyCode, GrowthRates: rates}
}

// FillDefaults adds the default rate for every category missing an override
// It reports whether anything was added
func (s *Settings) FillDefaults() bool {
	changed := false
	if s.GrowthRates == nil {
		s.GrowthRates = make(map[Category]float64, len(declared))
	}
	for _, c := range declared {
		if _, ok := s.GrowthRates[c]; !ok {
			s.GrowthRates[c] = Definition(c).GrowthRateDefault
			changed = true
		}
	}
	if s.CurrencyCode == "" {
		s.CurrencyCode = DefaultCurrencyCode
		changed = true
	}
	return changed
}

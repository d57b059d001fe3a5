package projector

import (
	"math"

	"github.com/thisisprabha/networth/internal/domain"
	"github.com/thisisprabha/networth/internal/usecase/aggregator"
	"github.com/thisisprabha/networth/internal/usecase/valuation"
)

// DefaultMonths is the horizon of the one-year projection
const DefaultMonths = 12

// Factor returns the compounding multiplier for an annual percentage rate after m months
func Factor(annualRate float64, m int) float64 {
	monthly := annualRate / 12 / 100
	return math.Pow(1+monthly, float64(m))
}

// Projection returns points 0..months of projected net worth
// Logic:
//   - Point 0 is the current net worth
//   - For every later month each counted entry compounds independently at its category rate
//   - Liabilities keep their negative sign
//
// months <= 0 yields only point 0, and a point that overflows reads as 0
func Projection(entries []domain.Entry, settings domain.Settings, months int) []domain.ProjectionPoint {
	counted := countedEntries(entries)
	points := []domain.ProjectionPoint{{Month: 0, Value: aggregator.NetWorth(counted)}}
	for m := 1; m <= months; m++ {
		total := 0.0
		for _, e := range counted {
			total += valuation.Signed(e) * Factor(settings.GrowthRate(e.Category), m)
		}
		points = append(points, domain.ProjectionPoint{Month: m, Value: valuation.Finite(total)})
	}
	return points
}

// OneYearProjection returns the projected net worth twelve months out
func OneYearProjection(entries []domain.Entry, settings domain.Settings) float64 {
	points := Projection(entries, settings, DefaultMonths)
	return points[len(points)-1].Value
}

// CategorySeries returns, for each counted category, the signed projected contribution for months 0..months
func CategorySeries(entries []domain.Entry, settings domain.Settings, months int) map[domain.Category][]float64 {
	if months < 0 {
		months = 0
	}
	series := make(map[domain.Category][]float64)
	for _, e := range countedEntries(entries) {
		values, ok := series[e.Category]
		if !ok {
			values = make([]float64, months+1)
			series[e.Category] = values
		}
		signed := valuation.Signed(e)
		rate := settings.GrowthRate(e.Category)
		for m := 0; m <= months; m++ {
			values[m] += signed * Factor(rate, m)
		}
	}
	return series
}

// PercentGrowth returns (projected - current) / current as a fraction, or nil when current <= 0
func PercentGrowth(current, projected float64) *float64 {
	if current <= 0 {
		return nil
	}
	g := (projected - current) / current
	return &g
}

func countedEntries(entries []domain.Entry) []domain.Entry {
	out := make([]domain.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Definition().IncludesInNetWorth {
			out = append(out, e)
		}
	}
	return out
}

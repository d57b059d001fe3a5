package aggregator

import (
	"sort"

	"github.com/thisisprabha/networth/internal/domain"
	"github.com/thisisprabha/networth/internal/usecase/valuation"
)

// LiabilityFilter selects entries by their category's liability flag
type LiabilityFilter int

const (
	// AnyLiability does not filter on the liability flag
	AnyLiability LiabilityFilter = iota
	// AssetsOnly keeps non-liability categories
	AssetsOnly
	// LiabilitiesOnly keeps liability categories
	LiabilitiesOnly
)

func (f LiabilityFilter) matches(def domain.CategoryDefinition) bool {
	switch f {
	case AssetsOnly:
		return !def.IsLiability
	case LiabilitiesOnly:
		return def.IsLiability
	default:
		return true
	}
}

// Contribution returns the signed value an entry adds to net worth
// Coverage-only entries contribute 0
func Contribution(entry domain.Entry) float64 {
	if !entry.Definition().IncludesInNetWorth {
		return 0
	}
	return valuation.Signed(entry)
}

// NetWorth sums the signed values of every entry that counts toward net worth
// A sum that overflows reads as 0
func NetWorth(entries []domain.Entry) float64 {
	total := 0.0
	for _, e := range entries {
		total += Contribution(e)
	}
	return valuation.Finite(total)
}

// NetWorthByCategory groups signed contributions by category
// Categories without a counting entry are absent from the map
func NetWorthByCategory(entries []domain.Entry) map[domain.Category]float64 {
	totals := make(map[domain.Category]float64)
	for _, e := range entries {
		if !e.Definition().IncludesInNetWorth {
			continue
		}
		totals[e.Category] += valuation.Signed(e)
	}
	for c, v := range totals {
		totals[c] = valuation.Finite(v)
	}
	return totals
}

// CategorySummaries builds one unsigned summary per category matching both filters
// Logic:
//  1. Keep entries whose IncludesInNetWorth equals includeInNetWorth and that pass the liability filter
//  2. Sum ValueOf per category in first-appearance order
//  3. For the wealth view (counted, assets only) attach total / group total when the group total is positive
//  4. Sort descending by total, keeping input order for ties
func CategorySummaries(entries []domain.Entry, includeInNetWorth bool, filter LiabilityFilter) []domain.CategorySummary {
	var order []domain.Category
	totals := make(map[domain.Category]float64)
	for _, e := range entries {
		def := e.Definition()
		if def.IncludesInNetWorth != includeInNetWorth || !filter.matches(def) {
			continue
		}
		if _, seen := totals[e.Category]; !seen {
			order = append(order, e.Category)
		}
		totals[e.Category] += valuation.ValueOf(e)
	}

	withPercentage := includeInNetWorth && filter == AssetsOnly
	groupTotal := 0.0
	for _, c := range order {
		groupTotal += totals[c]
	}

	summaries := make([]domain.CategorySummary, 0, len(order))
	for _, c := range order {
		s := domain.CategorySummary{Category: c, Total: totals[c]}
		if withPercentage && groupTotal > 0 {
			p := totals[c] / groupTotal
			s.Percentage = &p
		}
		summaries = append(summaries, s)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Total > summaries[j].Total
	})
	return summaries
}

// Wealth is the counted, non-liability report view
func Wealth(entries []domain.Entry) []domain.CategorySummary {
	return CategorySummaries(entries, true, AssetsOnly)
}

// Liabilities is the counted, liability report view
func Liabilities(entries []domain.Entry) []domain.CategorySummary {
	return CategorySummaries(entries, true, LiabilitiesOnly)
}

// Protection is the coverage-only report view
func Protection(entries []domain.Entry) []domain.CategorySummary {
	return CategorySummaries(entries, false, AnyLiability)
}

// Total sums the totals of a report view
func Total(summaries []domain.CategorySummary) float64 {
	total := 0.0
	for _, s := range summaries {
		total += s.Total
	}
	return total
}

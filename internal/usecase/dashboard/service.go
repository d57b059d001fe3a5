package dashboard

import (
	"sort"
	"time"

	"github.com/thisisprabha/networth/internal/domain"
	"github.com/thisisprabha/networth/internal/usecase/aggregator"
	"github.com/thisisprabha/networth/internal/usecase/projector"
	"github.com/thisisprabha/networth/internal/usecase/snapshot"
	"github.com/thisisprabha/networth/internal/usecase/valuation"
)

const (
	// TrendLength is how many snapshots the trend chart shows
	TrendLength = 12
	// TopEntries is how many entries the top holdings list shows
	TopEntries = 3
)

// Source is the read side of the portfolio
type Source interface {
	Entries() []domain.Entry
	Settings() domain.Settings
	Snapshots() []domain.NetWorthSnapshot
}

// RankedEntry is an entry with its resolved value
type RankedEntry struct {
	Entry domain.Entry
	Value float64
}

// Dashboard represents the calculated home screen read model
type Dashboard struct {
	NetWorth          float64
	OneYearProjection float64
	PercentGrowth     *float64
	Wealth            []domain.CategorySummary
	Liabilities       []domain.CategorySummary
	Protection        []domain.CategorySummary
	TotalWealth       float64
	TotalLiabilities  float64
	TotalProtection   float64
	Projection        []domain.ProjectionPoint
	CategorySeries    map[domain.Category][]float64
	LatestChange      *snapshot.Change
	Drivers           []snapshot.Driver
	Trend             []domain.NetWorthSnapshot
	TopEntries        []RankedEntry
	LastUpdated       *time.Time
	CurrencyCode      string
}

// DashboardService handles dashboard-related operations
type DashboardService struct {
	Source           Source
	ProjectionMonths int
}

// NewDashboardService creates a new DashboardService instance
func NewDashboardService(source Source, projectionMonths int) *DashboardService {
	if projectionMonths < projector.DefaultMonths {
		projectionMonths = projector.DefaultMonths
	}
	return &DashboardService{
		Source:           source,
		ProjectionMonths: projectionMonths,
	}
}

// GetDashboard composes the read model from the current portfolio state
// Logic:
//   - Net worth and the three report views come from the aggregator
//   - The projection series spans ProjectionMonths, never fewer than 12; the one-year figure is month 12
//   - Latest change, drivers and trend come from the snapshot history
//   - Top entries are the counted, non-liability entries with the highest value
func (s *DashboardService) GetDashboard() *Dashboard {
	entries := s.Source.Entries()
	settings := s.Source.Settings()
	history := s.Source.Snapshots()

	months := s.ProjectionMonths
	if months < projector.DefaultMonths {
		months = projector.DefaultMonths
	}

	netWorth := aggregator.NetWorth(entries)
	points := projector.Projection(entries, settings, months)
	oneYear := points[projector.DefaultMonths].Value

	d := &Dashboard{
		NetWorth:          netWorth,
		OneYearProjection: oneYear,
		PercentGrowth:     projector.PercentGrowth(netWorth, oneYear),
		Wealth:            aggregator.Wealth(entries),
		Liabilities:       aggregator.Liabilities(entries),
		Protection:        aggregator.Protection(entries),
		Projection:        points,
		CategorySeries:    projector.CategorySeries(entries, settings, months),
		Drivers:           snapshot.Drivers(history),
		Trend:             snapshot.Trend(history, TrendLength),
		TopEntries:        Top(entries, TopEntries),
		LastUpdated:       LastUpdated(entries),
		CurrencyCode:      settings.Currency(),
	}
	d.TotalWealth = aggregator.Total(d.Wealth)
	d.TotalLiabilities = aggregator.Total(d.Liabilities)
	d.TotalProtection = aggregator.Total(d.Protection)

	if change, ok := snapshot.Delta(history); ok {
		d.LatestChange = &change
	}
	return d
}

// Top returns up to n counted, non-liability entries ordered by value, highest first
func Top(entries []domain.Entry, n int) []RankedEntry {
	var ranked []RankedEntry
	for _, e := range entries {
		def := e.Definition()
		if !def.IncludesInNetWorth || def.IsLiability {
			continue
		}
		ranked = append(ranked, RankedEntry{Entry: e, Value: valuation.ValueOf(e)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Value > ranked[j].Value
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// LastUpdated returns the newest UpdatedAt across entries, or nil when there are none
func LastUpdated(entries []domain.Entry) *time.Time {
	var latest *time.Time
	for i := range entries {
		t := entries[i].UpdatedAt
		if latest == nil || t.After(*latest) {
			latest = &t
		}
	}
	return latest
}

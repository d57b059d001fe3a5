package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	grpcadapter "github.com/thisisprabha/networth/internal/adapter/grpc"
	"github.com/thisisprabha/networth/internal/domain"
	"github.com/thisisprabha/networth/internal/usecase/dashboard"
	"github.com/thisisprabha/networth/internal/usecase/snapshot"
)

func TestRenderCategories(t *testing.T) {
	settings := domain.DefaultSettings().WithGrowthRate(domain.CategoryStocks, 14)
	md := renderCategories(settings)

	assert.Contains(t, md, "| Stock Investments | `stocks` | 14% |")
	assert.Contains(t, md, "`savingsBalance`")
	assert.Contains(t, md, "| liability |")
	assert.Contains(t, md, "| coverage |")
}

func TestRenderSummary(t *testing.T) {
	since := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	pct := 0.1
	share := 1.0
	d := &dashboard.Dashboard{
		NetWorth:          80000,
		OneYearProjection: 250000,
		PercentGrowth:     &pct,
		Wealth: []domain.CategorySummary{
			{Category: domain.CategorySavings, Total: 100000, Percentage: &share},
		},
		TotalWealth: 100000,
		LatestChange: &snapshot.Change{
			Absolute: 20000,
			Percent:  &pct,
			Since:    since,
		},
		Drivers:      []snapshot.Driver{{Category: domain.CategorySavings, Change: 20000}},
		TopEntries:   []dashboard.RankedEntry{{Entry: domain.Entry{Name: "Salary", Category: domain.CategorySavings}, Value: 100000}},
		CurrencyCode: "INR",
	}

	md := renderSummary(d)

	assert.Contains(t, md, "# Net worth: ₹80,000")
	assert.Contains(t, md, "In one year: **₹2.5L** (+10.0%)")
	assert.Contains(t, md, "+₹20,000 (+10.0%)")
	assert.Contains(t, md, "- Savings: ₹20,000")
	assert.Contains(t, md, "| Savings | ₹100,000 | 100.0% |")
	assert.Contains(t, md, "## Liabilities: ₹0\n\n_Nothing recorded._")
	assert.Contains(t, md, "1. Salary (Savings): ₹100,000")
	assert.NotContains(t, md, "Last updated")
}

func TestRenderProjection(t *testing.T) {
	points := []domain.ProjectionPoint{{Month: 0, Value: 1000}, {Month: 1, Value: 1010}}

	md := renderProjection(points, nil, "USD")

	assert.Contains(t, md, "# Projection over 1 months")
	assert.Contains(t, md, "One-year growth: –")
	assert.Contains(t, md, "| 0 | $1,000 |")
	assert.Contains(t, md, "| 1 | $1,010 |")
}

func TestRenderHistory(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		history  []domain.NetWorthSnapshot
		contains []string
	}{
		{
			name:     "empty",
			contains: []string{"_No snapshots yet._"},
		},
		{
			name: "newest first with change",
			history: []domain.NetWorthSnapshot{
				{Timestamp: t0, NetWorth: 100000, EntryCount: 1},
				{Timestamp: t0.Add(time.Hour), NetWorth: 350000, EntryCount: 2},
			},
			contains: []string{"| ₹350,000 | 2 | 2.5L |", "| ₹100,000 | 1 | – |"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := renderHistory(tt.history, "INR")
			for _, s := range tt.contains {
				assert.Contains(t, md, s)
			}
		})
	}

	md := renderHistory([]domain.NetWorthSnapshot{
		{Timestamp: t0, NetWorth: 1},
		{Timestamp: t0.Add(time.Hour), NetWorth: 2},
	}, "INR")
	assert.Less(t, strings.Index(md, "₹2 |"), strings.Index(md, "₹1 |"))
}

func TestRenderStatus(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	updated := now.Add(-2 * time.Hour)
	d := &grpcadapter.Dashboard{
		NetWorth:     1_500_000,
		TotalWealth:  2_000_000,
		Drivers:      []grpcadapter.Driver{{Category: "homeLoan", Change: -500_000}},
		LastUpdated:  &updated,
		CurrencyCode: "INR",
	}

	md := renderStatus("localhost:8080", d, now)

	assert.Contains(t, md, "# localhost:8080")
	assert.Contains(t, md, "- Net worth: **₹1,500,000**")
	assert.Contains(t, md, "- Wealth: ₹20L")
	assert.Contains(t, md, "  - Home Loan: -500,000")
	assert.Contains(t, md, "_Last updated 2h0m0s ago_")
}

func TestParseFieldValue(t *testing.T) {
	tests := []struct {
		name     string
		category domain.Category
		key      string
		raw      string
		want     domain.FieldValue
		wantErr  bool
	}{
		{"number", domain.CategorySavings, domain.FieldSavingsBalance, "250000", domain.NumberValue(250000), false},
		{"number with separators", domain.CategorySavings, domain.FieldSavingsBalance, "2,50,000", domain.NumberValue(250000), false},
		{"not a number", domain.CategorySavings, domain.FieldSavingsBalance, "lots", domain.FieldValue{}, true},
		{"unknown field", domain.CategorySavings, "balance", "1", domain.FieldValue{}, true},
		{"select option", domain.CategoryPersonalAssets, domain.FieldAssetType, "car", domain.TextValue("car"), false},
		{"unknown option", domain.CategoryPersonalAssets, domain.FieldAssetType, "yacht", domain.FieldValue{}, true},
		{"date", domain.CategoryFixedDeposits, domain.FieldMaturityDate, "2027-03-31",
			domain.DateValue(time.Date(2027, 3, 31, 0, 0, 0, 0, time.UTC)), false},
		{"bad date", domain.CategoryFixedDeposits, domain.FieldMaturityDate, "soon", domain.FieldValue{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFieldValue(tt.category.Definition(), tt.key, tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidEntry)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestFieldValuesFlag(t *testing.T) {
	v := fieldValues{}

	require.NoError(t, v.Set("savingsBalance=100"))
	require.NoError(t, v.Set(" name =a=b"))
	assert.Error(t, v.Set("novalue"))
	assert.Error(t, v.Set("=1"))

	assert.Equal(t, "a=b", v["name"])
	assert.Equal(t, "name=a=b,savingsBalance=100", v.String())
}

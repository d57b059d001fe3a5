package projector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thisisprabha/networth/internal/domain"
	"github.com/thisisprabha/networth/internal/usecase/aggregator"
)

func amountEntry(c domain.Category, key string, v float64) domain.Entry {
	return domain.Entry{ID: string(c), Category: c, Values: map[string]domain.FieldValue{key: domain.NumberValue(v)}}
}

func TestProjection_ZeroRateIsFlat(t *testing.T) {
	entries := []domain.Entry{
		amountEntry(domain.CategorySavings, domain.FieldSavingsBalance, 100000),
		amountEntry(domain.CategoryCreditCard, domain.FieldDebtBalance, 20000),
	}
	settings := domain.DefaultSettings().
		WithGrowthRate(domain.CategorySavings, 0).
		WithGrowthRate(domain.CategoryCreditCard, 0)

	points := Projection(entries, settings, 12)
	require.Len(t, points, 13)
	assert.Equal(t, 80000.0, aggregator.NetWorth(entries))
	assert.Equal(t, 12, points[12].Month)
	assert.InDelta(t, 80000.0, points[12].Value, 1e-9)
}

func TestProjection_CompoundsMonthly(t *testing.T) {
	entries := []domain.Entry{amountEntry(domain.CategoryStocks, domain.FieldStockValue, 100000)}
	settings := domain.DefaultSettings().WithGrowthRate(domain.CategoryStocks, 12)

	points := Projection(entries, settings, 12)
	assert.Equal(t, 100000.0, points[0].Value)
	assert.InDelta(t, 101000.0, points[1].Value, 1e-6)
	assert.InDelta(t, 112682.50301319, points[12].Value, 1e-6)
	assert.InDelta(t, points[12].Value, OneYearProjection(entries, settings), 1e-9)
}

func TestProjection_ZeroMonthsReturnsCurrentNetWorth(t *testing.T) {
	entries := []domain.Entry{
		amountEntry(domain.CategoryGold, domain.FieldGoldQuantity, 0),
		amountEntry(domain.CategoryBonds, domain.FieldBondValue, 4000),
		amountEntry(domain.CategoryCarLoan, domain.FieldDebtBalance, 1000),
	}

	for _, months := range []int{0, -3} {
		points := Projection(entries, domain.DefaultSettings(), months)
		require.Len(t, points, 1)
		assert.Equal(t, aggregator.NetWorth(entries), points[0].Value)
	}
}

func TestProjection_SkipsCoverageAndUsesDefaults(t *testing.T) {
	entries := []domain.Entry{
		amountEntry(domain.CategoryBonds, domain.FieldBondValue, 1000),
		amountEntry(domain.CategoryLifeInsurance, domain.FieldCoverageAmount, 1_000_000),
	}
	settings := domain.Settings{}

	points := Projection(entries, settings, 12)
	assert.InDelta(t, 1000*Factor(8, 12), points[12].Value, 1e-9)
}

func TestProjection_LiabilitiesStaySigned(t *testing.T) {
	entries := []domain.Entry{amountEntry(domain.CategoryPersonalLoan, domain.FieldDebtBalance, 1000)}
	settings := domain.DefaultSettings().WithGrowthRate(domain.CategoryPersonalLoan, 12)

	points := Projection(entries, settings, 1)
	assert.InDelta(t, -1010.0, points[1].Value, 1e-9)
}

func TestCategorySeries(t *testing.T) {
	entries := []domain.Entry{
		amountEntry(domain.CategoryStocks, domain.FieldStockValue, 1000),
		amountEntry(domain.CategoryStocks, domain.FieldStockValue, 1000),
		amountEntry(domain.CategoryHomeLoan, domain.FieldDebtBalance, 500),
		amountEntry(domain.CategoryVehicleInsurance, domain.FieldCoverageAmount, 9),
	}
	settings := domain.DefaultSettings()

	series := CategorySeries(entries, settings, 12)
	require.Len(t, series, 2)
	require.Len(t, series[domain.CategoryStocks], 13)
	assert.Equal(t, 2000.0, series[domain.CategoryStocks][0])
	assert.Equal(t, -500.0, series[domain.CategoryHomeLoan][12])

	points := Projection(entries, settings, 12)
	for m := range points {
		assert.InDelta(t, points[m].Value, series[domain.CategoryStocks][m]+series[domain.CategoryHomeLoan][m], 1e-6)
	}
}

func TestPercentGrowth(t *testing.T) {
	g := PercentGrowth(1000, 1100)
	require.NotNil(t, g)
	assert.InDelta(t, 0.1, *g, 1e-12)

	assert.Nil(t, PercentGrowth(0, 100))
	assert.Nil(t, PercentGrowth(-5, 100))
}

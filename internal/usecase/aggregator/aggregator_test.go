package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thisisprabha/networth/internal/domain"
)

func amountEntry(id string, c domain.Category, key string, v float64) domain.Entry {
	return domain.Entry{ID: id, Category: c, Values: map[string]domain.FieldValue{key: domain.NumberValue(v)}}
}

func fixture() []domain.Entry {
	return []domain.Entry{
		amountEntry("s1", domain.CategorySavings, domain.FieldSavingsBalance, 100000),
		amountEntry("c1", domain.CategoryCreditCard, domain.FieldDebtBalance, 20000),
		amountEntry("st1", domain.CategoryStocks, domain.FieldStockValue, 300000),
		amountEntry("h1", domain.CategoryHealthInsurance, domain.FieldCoverageAmount, 500000),
		amountEntry("l1", domain.CategoryHomeLoan, domain.FieldDebtBalance, 50000),
		amountEntry("s2", domain.CategorySavings, domain.FieldSavingsBalance, 100000),
	}
}

func TestNetWorth(t *testing.T) {
	t.Run("liabilities subtract and coverage is excluded", func(t *testing.T) {
		entries := []domain.Entry{
			amountEntry("s", domain.CategorySavings, domain.FieldSavingsBalance, 100000),
			amountEntry("c", domain.CategoryCreditCard, domain.FieldDebtBalance, 20000),
			amountEntry("i", domain.CategoryLifeInsurance, domain.FieldCoverageAmount, 1_000_000),
		}
		assert.Equal(t, 80000.0, NetWorth(entries))
	})

	t.Run("empty collection", func(t *testing.T) {
		assert.Zero(t, NetWorth(nil))
	})

	t.Run("overflowing sum reads as zero", func(t *testing.T) {
		entries := []domain.Entry{
			amountEntry("a", domain.CategorySavings, domain.FieldSavingsBalance, 1.5e308),
			amountEntry("b", domain.CategorySavings, domain.FieldSavingsBalance, 1.5e308),
		}
		assert.Zero(t, NetWorth(entries))
		assert.Zero(t, NetWorthByCategory(entries)[domain.CategorySavings])
	})
}

func TestNetWorth_EqualsWealthMinusLiabilities(t *testing.T) {
	entries := fixture()
	assert.InDelta(t, NetWorth(entries), Total(Wealth(entries))-Total(Liabilities(entries)), 1e-9)
}

func TestNetWorthByCategory(t *testing.T) {
	byCategory := NetWorthByCategory(fixture())

	assert.Equal(t, 200000.0, byCategory[domain.CategorySavings])
	assert.Equal(t, -20000.0, byCategory[domain.CategoryCreditCard])
	assert.Equal(t, -50000.0, byCategory[domain.CategoryHomeLoan])
	assert.NotContains(t, byCategory, domain.CategoryHealthInsurance)
}

func TestCategorySummaries_Wealth(t *testing.T) {
	summaries := Wealth(fixture())
	require.Len(t, summaries, 2)

	assert.Equal(t, domain.CategoryStocks, summaries[0].Category)
	assert.Equal(t, 300000.0, summaries[0].Total)
	require.NotNil(t, summaries[0].Percentage)
	assert.InDelta(t, 0.6, *summaries[0].Percentage, 1e-9)

	assert.Equal(t, domain.CategorySavings, summaries[1].Category)
	require.NotNil(t, summaries[1].Percentage)
	assert.InDelta(t, 0.4, *summaries[1].Percentage, 1e-9)

	sum := 0.0
	for _, s := range summaries {
		sum += *s.Percentage
	}
	assert.LessOrEqual(t, sum, 1.0+1e-9)
}

func TestCategorySummaries_LiabilitiesAreUnsignedWithoutPercentage(t *testing.T) {
	summaries := Liabilities(fixture())
	require.Len(t, summaries, 2)

	assert.Equal(t, domain.CategoryHomeLoan, summaries[0].Category)
	assert.Equal(t, 50000.0, summaries[0].Total)
	assert.Equal(t, domain.CategoryCreditCard, summaries[1].Category)
	for _, s := range summaries {
		assert.Nil(t, s.Percentage)
	}
}

func TestCategorySummaries_Protection(t *testing.T) {
	summaries := Protection(fixture())
	require.Len(t, summaries, 1)
	assert.Equal(t, domain.CategoryHealthInsurance, summaries[0].Category)
	assert.Equal(t, 500000.0, summaries[0].Total)
	assert.Nil(t, summaries[0].Percentage)
}

func TestCategorySummaries_ZeroTotalHasNoPercentage(t *testing.T) {
	entries := []domain.Entry{
		amountEntry("s", domain.CategorySavings, domain.FieldSavingsBalance, 0),
		amountEntry("b", domain.CategoryBonds, domain.FieldBondValue, 0),
	}
	for _, s := range Wealth(entries) {
		assert.Nil(t, s.Percentage)
	}
}

func TestCategorySummaries_TiesKeepInputOrder(t *testing.T) {
	entries := []domain.Entry{
		amountEntry("b", domain.CategoryBonds, domain.FieldBondValue, 1000),
		amountEntry("l", domain.CategoryLand, domain.FieldLandValue, 1000),
		amountEntry("s", domain.CategorySavings, domain.FieldSavingsBalance, 1000),
	}

	summaries := Wealth(entries)
	require.Len(t, summaries, 3)
	assert.Equal(t, domain.CategoryBonds, summaries[0].Category)
	assert.Equal(t, domain.CategoryLand, summaries[1].Category)
	assert.Equal(t, domain.CategorySavings, summaries[2].Category)
}

func TestCategorySummaries_AnyLiabilityHasNoPercentage(t *testing.T) {
	for _, s := range CategorySummaries(fixture(), true, AnyLiability) {
		assert.Nil(t, s.Percentage)
	}
}

func TestContribution(t *testing.T) {
	assert.Equal(t, -20000.0, Contribution(amountEntry("c", domain.CategoryCreditCard, domain.FieldDebtBalance, 20000)))
	assert.Zero(t, Contribution(amountEntry("i", domain.CategoryLifeInsurance, domain.FieldCoverageAmount, 10)))
}

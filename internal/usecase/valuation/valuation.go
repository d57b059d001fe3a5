package valuation

import (
	"math"

	"github.com/thisisprabha/networth/internal/domain"
)

// ValueOf computes the current monetary value of an entry
// Logic:
//   - Single-amount categories read one numeric field
//   - Gold and silver multiply quantity by rate per unit
//   - Belongings multiply unit value by quantity, with quantity floored at 1
//   - ESOP multiplies value per share by vested shares
//   - An unmapped category resolves with the formula of its fallback definition
//
// Missing or malformed fields read as 0, and so does a product that overflows,
// so ValueOf never fails and never returns NaN or Inf
func ValueOf(entry domain.Entry) float64 {
	return Finite(resolve(entry))
}

// Finite maps NaN and ±Inf to 0
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func resolve(entry domain.Entry) float64 {
	switch entry.Definition().Category {
	case domain.CategoryStocks:
		return entry.Number(domain.FieldStockValue)
	case domain.CategoryMutualFunds:
		return entry.Number(domain.FieldFundValue)
	case domain.CategoryGold:
		return entry.Number(domain.FieldGoldQuantity) * entry.Number(domain.FieldGoldRate)
	case domain.CategorySilver:
		return entry.Number(domain.FieldSilverGrams) * entry.Number(domain.FieldSilverRate)
	case domain.CategoryFixedDeposits:
		return entry.Number(domain.FieldPrincipalAmount)
	case domain.CategoryPersonalAssets:
		return entry.Number(domain.FieldAssetValue) * math.Max(entry.Number(domain.FieldQuantity), 1)
	case domain.CategoryBonds:
		return entry.Number(domain.FieldBondValue)
	case domain.CategoryLand:
		return entry.Number(domain.FieldLandValue)
	case domain.CategoryHome:
		return entry.Number(domain.FieldHomeValue)
	case domain.CategorySavings:
		return entry.Number(domain.FieldSavingsBalance)
	case domain.CategoryEmergencySavings:
		return entry.Number(domain.FieldEmergencyBalance)
	case domain.CategoryESOP:
		return entry.Number(domain.FieldESOPCurrentValue) * entry.Number(domain.FieldESOPShares)
	case domain.CategoryPrivateEquity:
		return entry.Number(domain.FieldPEValue)
	case domain.CategoryVPFPPF:
		return entry.Number(domain.FieldVPFAmount)
	case domain.CategoryHomeLoan,
		domain.CategoryCarLoan,
		domain.CategoryPersonalLoan,
		domain.CategoryCreditCard,
		domain.CategoryOtherDebt:
		return entry.Number(domain.FieldDebtBalance)
	case domain.CategoryLifeInsurance,
		domain.CategoryHealthInsurance,
		domain.CategoryVehicleInsurance:
		return entry.Number(domain.FieldCoverageAmount)
	default:
		return 0
	}
}

// Signed returns the entry's contribution to net worth: negative for liabilities
func Signed(entry domain.Entry) float64 {
	v := ValueOf(entry)
	if entry.Definition().IsLiability {
		return -v
	}
	return v
}

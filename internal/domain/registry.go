package domain

// Field keys read by the valuation rules
const (
	FieldStockValue       = "stockValue"
	FieldFundValue        = "fundValue"
	FieldGoldQuantity     = "goldQuantity"
	FieldGoldRate         = "goldRate"
	FieldSilverGrams      = "silverGrams"
	FieldSilverRate       = "silverRate"
	FieldPrincipalAmount  = "principalAmount"
	FieldInterestRate     = "interestRate"
	FieldMaturityDate     = "maturityDate"
	FieldAssetType        = "assetType"
	FieldAssetName        = "assetName"
	FieldQuantity         = "quantity"
	FieldAssetValue       = "assetValue"
	FieldBondValue        = "bondValue"
	FieldLandValue        = "landValue"
	FieldHomeValue        = "homeValue"
	FieldSavingsBalance   = "savingsBalance"
	FieldEmergencyBalance = "emergencyBalance"
	FieldESOPCurrentValue = "esopCurrentValue"
	FieldESOPShares       = "esopShares"
	FieldPEValue          = "peValue"
	FieldPEUnits          = "peUnits"
	FieldVPFAmount        = "vpfAmount"
	FieldDebtBalance      = "debtBalance"
	FieldLender           = "lender"
	FieldNextPaymentDate  = "nextPaymentDate"
	FieldIssuer           = "issuer"
	FieldPaymentDueDate   = "paymentDueDate"
	FieldNotes            = "notes"
	FieldCoverageAmount   = "coverageAmount"
	FieldAnnualPremium    = "annualPremium"
	FieldProvider         = "provider"
	FieldRenewalDate      = "renewalDate"
)

// ordered is the display order used by listings and reports
var ordered = []Category{
	CategoryStocks,
	CategoryMutualFunds,
	CategoryGold,
	CategorySilver,
	CategoryFixedDeposits,
	CategoryBonds,
	CategoryLand,
	CategoryHome,
	CategorySavings,
	CategoryEmergencySavings,
	CategoryESOP,
	CategoryPrivateEquity,
	CategoryVPFPPF,
	CategoryPersonalAssets,
	CategoryHomeLoan,
	CategoryCarLoan,
	CategoryPersonalLoan,
	CategoryCreditCard,
	CategoryOtherDebt,
	CategoryLifeInsurance,
	CategoryHealthInsurance,
	CategoryVehicleInsurance,
}

// OrderedCategories returns every category in display order
func OrderedCategories() []Category {
	out := make([]Category, len(ordered))
	copy(out, ordered)
	return out
}

// Definition returns the definition for c
// Unmapped categories resolve to the stocks definition so lookups never fail
func Definition(c Category) CategoryDefinition {
	if def, ok := registry[c]; ok {
		return def
	}
	return registry[CategoryStocks]
}

func ptr(v float64) *float64 { return &v }

func currencySlider(key, label string, min, max, step, def float64) FieldDefinition {
	return FieldDefinition{
		Key:     key,
		Label:   label,
		Kind:    FieldKindSlider,
		Min:     ptr(min),
		Max:     ptr(max),
		Step:    ptr(step),
		Default: NumberValue(def),
		Format:  FieldFormatCurrency,
	}
}

func numberField(key, label string, min float64, max *float64, step, def float64) FieldDefinition {
	return FieldDefinition{
		Key:     key,
		Label:   label,
		Kind:    FieldKindNumber,
		Min:     ptr(min),
		Max:     max,
		Step:    ptr(step),
		Default: NumberValue(def),
		Format:  FieldFormatPlain,
	}
}

func textField(key, label string) FieldDefinition {
	return FieldDefinition{Key: key, Label: label, Kind: FieldKindText, Default: TextValue(""), Format: FieldFormatPlain}
}

func dateField(key, label string) FieldDefinition {
	return FieldDefinition{Key: key, Label: label, Kind: FieldKindDate, Format: FieldFormatPlain}
}

var personalAssetOptions = []FieldOption{
	{Value: "bike", Label: "Bike", DefaultNumber: ptr(100000)},
	{Value: "car", Label: "Car", DefaultNumber: ptr(800000)},
	{Value: "cycle", Label: "Cycle", DefaultNumber: ptr(10000)},
	{Value: "phone", Label: "iPhone/Smartphone", DefaultNumber: ptr(80000)},
	{Value: "laptop", Label: "Laptop", DefaultNumber: ptr(90000)},
	{Value: "pc", Label: "PC", DefaultNumber: ptr(100000)},
	{Value: "watch", Label: "Smart Watch", DefaultNumber: ptr(30000)},
	{Value: "console", Label: "Gaming Console", DefaultNumber: ptr(50000)},
	{Value: "shoes", Label: "Luxury Shoes", DefaultNumber: ptr(15000)},
	{Value: "watch_luxury", Label: "Luxury Watch", DefaultNumber: ptr(100000)},
	{Value: "other", Label: "Other", DefaultNumber: ptr(10000)},
}

func debtFields(balanceLabel string, max, step, rateMax, rateDefault float64, rest ...FieldDefinition) []FieldDefinition {
	fields := []FieldDefinition{
		currencySlider(FieldDebtBalance, balanceLabel, 0, max, step, 0),
		numberField(FieldInterestRate, "Interest Rate (%)", 0, ptr(rateMax), 0.1, rateDefault),
	}
	return append(fields, rest...)
}

func coverageFields(max, step float64) []FieldDefinition {
	return []FieldDefinition{
		currencySlider(FieldCoverageAmount, "Coverage Amount", 0, max, step, 0),
		numberField(FieldAnnualPremium, "Annual Premium", 0, nil, 500, 0),
		textField(FieldProvider, "Provider (optional)"),
		dateField(FieldRenewalDate, "Renewal Date"),
	}
}

// registry is built once at package init and never mutated
var registry = map[Category]CategoryDefinition{
	CategoryStocks: {
		Category:   CategoryStocks,
		Name:       "Stock Investments",
		SymbolName: "chart.line.uptrend.xyaxis",
		Color:      "green",
		Fields: []FieldDefinition{
			currencySlider(FieldStockValue, "Approximate Total Value", 0, 10_000_000, 1_000, 0),
		},
		GrowthRateDefault:  17.5,
		GrowthRateRange:    &RateRange{Min: 15, Max: 20},
		IncludesInNetWorth: true,
	},
	CategoryMutualFunds: {
		Category:   CategoryMutualFunds,
		Name:       "Mutual Fund Investments",
		SymbolName: "chart.bar",
		Color:      "blue",
		Fields: []FieldDefinition{
			currencySlider(FieldFundValue, "Approximate Total Value", 0, 10_000_000, 1_000, 0),
		},
		GrowthRateDefault:  11.5,
		GrowthRateRange:    &RateRange{Min: 10, Max: 13},
		IncludesInNetWorth: true,
	},
	CategoryGold: {
		Category:   CategoryGold,
		Name:       "Gold",
		SymbolName: "circle.fill",
		Color:      "yellow",
		Fields: []FieldDefinition{
			numberField(FieldGoldQuantity, "Quantity (grams)", 0, nil, 0.1, 0),
			numberField(FieldGoldRate, "Current Rate (₹ per gram)", 0, nil, 100, 5000),
		},
		GrowthRateDefault:  9.5,
		GrowthRateRange:    &RateRange{Min: 9, Max: 10},
		IncludesInNetWorth: true,
	},
	CategorySilver: {
		Category:   CategorySilver,
		Name:       "Silver",
		SymbolName: "circle.dashed",
		Color:      "gray",
		Fields: []FieldDefinition{
			numberField(FieldSilverGrams, "Quantity (grams)", 0, nil, 1, 0),
			numberField(FieldSilverRate, "Current Rate (₹ per gram)", 0, nil, 1, 85),
		},
		GrowthRateDefault:  9.5,
		GrowthRateRange:    &RateRange{Min: 9, Max: 10},
		IncludesInNetWorth: true,
	},
	CategoryFixedDeposits: {
		Category:   CategoryFixedDeposits,
		Name:       "Fixed Deposits",
		SymbolName: "tray",
		Color:      "gray",
		Fields: []FieldDefinition{
			currencySlider(FieldPrincipalAmount, "Principal Amount", 0, 5_000_000, 1_000, 0),
			numberField(FieldInterestRate, "Interest Rate (%)", 0, ptr(12), 0.1, 7),
			dateField(FieldMaturityDate, "Maturity Date (optional)"),
		},
		GrowthRateDefault:  7,
		IncludesInNetWorth: true,
	},
	CategoryPersonalAssets: {
		Category:   CategoryPersonalAssets,
		Name:       "My Belongings",
		SymbolName: "shippingbox",
		Color:      "purple",
		Fields: []FieldDefinition{
			{
				Key:     FieldAssetType,
				Label:   "Asset Type",
				Kind:    FieldKindSelect,
				Default: TextValue(personalAssetOptions[0].Value),
				Format:  FieldFormatPlain,
				Options: personalAssetOptions,
			},
			textField(FieldAssetName, "Description (optional)"),
			numberField(FieldQuantity, "Quantity", 1, nil, 1, 1),
			currencySlider(FieldAssetValue, "Current Value", 0, 2_000_000, 1_000, 0),
		},
		GrowthRateDefault:  -7.5,
		GrowthRateRange:    &RateRange{Min: -10, Max: -5},
		IncludesInNetWorth: true,
	},
	CategoryBonds: {
		Category:   CategoryBonds,
		Name:       "Bonds",
		SymbolName: "doc.text",
		Color:      "blue",
		Fields: []FieldDefinition{
			currencySlider(FieldBondValue, "Approximate Total Value", 0, 5_000_000, 1_000, 0),
		},
		GrowthRateDefault:  8,
		IncludesInNetWorth: true,
	},
	CategoryLand: {
		Category:   CategoryLand,
		Name:       "Land",
		SymbolName: "map",
		Color:      "green",
		Fields: []FieldDefinition{
			currencySlider(FieldLandValue, "Estimated Current Value", 100_000, 50_000_000, 100_000, 1_000_000),
		},
		GrowthRateDefault:  9,
		IncludesInNetWorth: true,
	},
	CategoryHome: {
		Category:   CategoryHome,
		Name:       "Home (Real Estate)",
		SymbolName: "house",
		Color:      "red",
		Fields: []FieldDefinition{
			currencySlider(FieldHomeValue, "Estimated Current Value", 500_000, 50_000_000, 100_000, 5_000_000),
		},
		GrowthRateDefault:  9,
		IncludesInNetWorth: true,
	},
	CategorySavings: {
		Category:   CategorySavings,
		Name:       "Savings",
		SymbolName: "dollarsign.circle",
		Color:      "green",
		Fields: []FieldDefinition{
			currencySlider(FieldSavingsBalance, "Current Balance", 0, 5_000_000, 1_000, 0),
		},
		GrowthRateDefault:  4,
		IncludesInNetWorth: true,
	},
	CategoryEmergencySavings: {
		Category:   CategoryEmergencySavings,
		Name:       "Emergency Savings",
		SymbolName: "shield",
		Color:      "yellow",
		Fields: []FieldDefinition{
			currencySlider(FieldEmergencyBalance, "Current Balance", 0, 1_000_000, 1_000, 0),
		},
		GrowthRateDefault:  4,
		IncludesInNetWorth: true,
	},
	CategoryESOP: {
		Category:   CategoryESOP,
		Name:       "ESOP",
		SymbolName: "briefcase",
		Color:      "indigo",
		Fields: []FieldDefinition{
			numberField(FieldESOPCurrentValue, "Approximate Current Value per Share", 0, nil, 1, 1),
			numberField(FieldESOPShares, "Number of Vested Shares", 0, nil, 1, 0),
		},
		GrowthRateDefault:  15,
		IncludesInNetWorth: true,
	},
	CategoryPrivateEquity: {
		Category:   CategoryPrivateEquity,
		Name:       "Private Equity",
		SymbolName: "chart.line.uptrend.xyaxis",
		Color:      "teal",
		Fields: []FieldDefinition{
			currencySlider(FieldPEValue, "Estimated Current Value", 0, 50_000_000, 10_000, 100_000),
			numberField(FieldPEUnits, "Number of Units/Shares (Optional)", 0, nil, 1, 1),
		},
		GrowthRateDefault:  20,
		IncludesInNetWorth: true,
	},
	CategoryVPFPPF: {
		Category:   CategoryVPFPPF,
		Name:       "VPF/PPF",
		SymbolName: "lock",
		Color:      "orange",
		Fields: []FieldDefinition{
			currencySlider(FieldVPFAmount, "Current Balance", 0, 10_000_000, 1_000, 0),
		},
		GrowthRateDefault:  8.5,
		IncludesInNetWorth: true,
	},
	CategoryHomeLoan: {
		Category:   CategoryHomeLoan,
		Name:       "Home Loan",
		SymbolName: "house",
		Color:      "red",
		Fields: debtFields("Outstanding Balance", 100_000_000, 100_000, 20, 8,
			textField(FieldLender, "Lender (optional)"),
			dateField(FieldNextPaymentDate, "Next Payment Date"),
		),
		IncludesInNetWorth: true,
		IsLiability:        true,
	},
	CategoryCarLoan: {
		Category:   CategoryCarLoan,
		Name:       "Car Loan",
		SymbolName: "car",
		Color:      "orange",
		Fields: debtFields("Outstanding Balance", 10_000_000, 50_000, 20, 9,
			textField(FieldLender, "Lender (optional)"),
			dateField(FieldNextPaymentDate, "Next Payment Date"),
		),
		IncludesInNetWorth: true,
		IsLiability:        true,
	},
	CategoryPersonalLoan: {
		Category:   CategoryPersonalLoan,
		Name:       "Personal Loan",
		SymbolName: "person.text.rectangle",
		Color:      "purple",
		Fields: debtFields("Outstanding Balance", 10_000_000, 50_000, 30, 12,
			textField(FieldLender, "Lender (optional)"),
			dateField(FieldNextPaymentDate, "Next Payment Date"),
		),
		IncludesInNetWorth: true,
		IsLiability:        true,
	},
	CategoryCreditCard: {
		Category:   CategoryCreditCard,
		Name:       "Credit Card",
		SymbolName: "creditcard",
		Color:      "pink",
		Fields: debtFields("Current Balance", 2_000_000, 10_000, 50, 30,
			textField(FieldIssuer, "Issuer (optional)"),
			dateField(FieldPaymentDueDate, "Payment Due Date"),
		),
		IncludesInNetWorth: true,
		IsLiability:        true,
	},
	CategoryOtherDebt: {
		Category:   CategoryOtherDebt,
		Name:       "Other Debt",
		SymbolName: "exclamationmark.triangle",
		Color:      "gray",
		Fields: debtFields("Outstanding Balance", 5_000_000, 25_000, 40, 0,
			textField(FieldNotes, "Notes (optional)"),
		),
		IncludesInNetWorth: true,
		IsLiability:        true,
	},
	CategoryLifeInsurance: {
		Category:   CategoryLifeInsurance,
		Name:       "Life Insurance",
		SymbolName: "heart.text.square",
		Color:      "pink",
		Fields:     coverageFields(50_000_000, 50_000),
	},
	CategoryHealthInsurance: {
		Category:   CategoryHealthInsurance,
		Name:       "Health Insurance",
		SymbolName: "cross.case",
		Color:      "mint",
		Fields:     coverageFields(10_000_000, 50_000),
	},
	CategoryVehicleInsurance: {
		Category:   CategoryVehicleInsurance,
		Name:       "Vehicle Insurance",
		SymbolName: "car",
		Color:      "orange",
		Fields:     coverageFields(5_000_000, 25_000),
	},
}

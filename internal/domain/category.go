package domain

import "time"

// Category identifies the kind of an entry
// The set is closed and known at build time
type Category string

const (
	CategoryStocks           Category = "stocks"
	CategoryMutualFunds      Category = "mutualFunds"
	CategoryGold             Category = "gold"
	CategoryFixedDeposits    Category = "fixedDeposits"
	CategoryPersonalAssets   Category = "personalAssets"
	CategoryBonds            Category = "bonds"
	CategoryLand             Category = "land"
	CategoryHome             Category = "home"
	CategorySavings          Category = "savings"
	CategoryEmergencySavings Category = "emergencySavings"
	CategoryESOP             Category = "esop"
	CategoryPrivateEquity    Category = "privateEquity"
	CategoryVPFPPF           Category = "vpf_ppf"
	CategorySilver           Category = "silver"

	CategoryHomeLoan     Category = "homeLoan"
	CategoryCarLoan      Category = "carLoan"
	CategoryPersonalLoan Category = "personalLoan"
	CategoryCreditCard   Category = "creditCard"
	CategoryOtherDebt    Category = "otherDebt"

	CategoryLifeInsurance    Category = "lifeInsurance"
	CategoryHealthInsurance  Category = "healthInsurance"
	CategoryVehicleInsurance Category = "vehicleInsurance"
)

// declared keeps declaration order; it seeds default settings
var declared = []Category{
	CategoryStocks,
	CategoryMutualFunds,
	CategoryGold,
	CategoryFixedDeposits,
	CategoryPersonalAssets,
	CategoryBonds,
	CategoryLand,
	CategoryHome,
	CategorySavings,
	CategoryEmergencySavings,
	CategoryESOP,
	CategoryPrivateEquity,
	CategoryVPFPPF,
	CategorySilver,
	CategoryHomeLoan,
	CategoryCarLoan,
	CategoryPersonalLoan,
	CategoryCreditCard,
	CategoryOtherDebt,
	CategoryLifeInsurance,
	CategoryHealthInsurance,
	CategoryVehicleInsurance,
}

// Categories returns every category in declaration order
func Categories() []Category {
	out := make([]Category, len(declared))
	copy(out, declared)
	return out
}

// ParseCategory converts a raw value into a Category
// The second return value is false for values outside the closed set
func ParseCategory(raw string) (Category, bool) {
	c := Category(raw)
	if _, ok := registry[c]; ok {
		return c, true
	}
	return "", false
}

// String returns the raw value of the category
func (c Category) String() string {
	return string(c)
}

// Definition returns the registry definition for the category
func (c Category) Definition() CategoryDefinition {
	return Definition(c)
}

// FieldKind describes how a field is edited
type FieldKind string

const (
	FieldKindSlider FieldKind = "slider"
	FieldKindNumber FieldKind = "number"
	FieldKindText   FieldKind = "text"
	FieldKindSelect FieldKind = "select"
	FieldKindDate   FieldKind = "date"
)

// FieldFormat is a display hint for numeric fields
type FieldFormat string

const (
	FieldFormatPlain    FieldFormat = "plain"
	FieldFormatCurrency FieldFormat = "currency"
)

// FieldOption is one choice of a select field
// DefaultNumber, when set, is the value a form seeds into the sibling amount field
type FieldOption struct {
	Value         string
	Label         string
	DefaultNumber *float64
}

// FieldDefinition describes one input slot of a category
// Min, Max and Step are nil when the field has no numeric bound
type FieldDefinition struct {
	Key     string
	Label   string
	Kind    FieldKind
	Min     *float64
	Max     *float64
	Step    *float64
	Default FieldValue
	Format  FieldFormat
	Options []FieldOption
}

// DefaultValue returns the value a new draft starts with
// Date fields default to the supplied instant
func (f FieldDefinition) DefaultValue(now time.Time) FieldValue {
	if f.Kind == FieldKindDate {
		return DateValue(now)
	}
	return f.Default
}

// Option looks up a select option by value
func (f FieldDefinition) Option(value string) (FieldOption, bool) {
	for _, o := range f.Options {
		if o.Value == value {
			return o, true
		}
	}
	return FieldOption{}, false
}

// RateRange is the advisory growth-rate band shown next to a category
// It is guidance only and is never enforced
type RateRange struct {
	Min float64
	Max float64
}

// Contains reports whether rate lies inside the band, bounds included
func (r RateRange) Contains(rate float64) bool {
	return rate >= r.Min && rate <= r.Max
}

// CategoryDefinition holds the schema and behaviour flags of a category
type CategoryDefinition struct {
	Category           Category
	Name               string
	SymbolName         string
	Color              string
	Fields             []FieldDefinition
	GrowthRateDefault  float64
	GrowthRateRange    *RateRange
	IncludesInNetWorth bool
	IsLiability        bool
}

// Field looks up a field definition by key
func (d CategoryDefinition) Field(key string) (FieldDefinition, bool) {
	for _, f := range d.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return FieldDefinition{}, false
}

// IsCoverage reports whether the category is tracked but excluded from net worth
func (d CategoryDefinition) IsCoverage() bool {
	return !d.IncludesInNetWorth
}

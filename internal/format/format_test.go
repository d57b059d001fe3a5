package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		code string
		want string
	}{
		{"zero", 0, "INR", "₹0"},
		{"rounds to whole units", 1234.56, "INR", "₹1,235"},
		{"negative", -5000, "INR", "-₹5,000"},
		{"usd", 1500, "USD", "$1,500"},
		{"lowercase code", 1500, "usd", "$1,500"},
		{"unknown code falls back to INR", 10, "XYZ", "₹10"},
		{"nan is zero", math.NaN(), "INR", "₹0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Currency(tt.v, tt.code))
		})
	}
}

func TestCompact(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		code string
		want string
	}{
		{"crore", 15_000_000, "INR", "₹1.5Cr"},
		{"exact crore drops decimal", 20_000_000, "INR", "₹2Cr"},
		{"lakh", 250_000, "INR", "₹2.5L"},
		{"lakh rounds to one decimal", 123_456, "INR", "₹1.2L"},
		{"below lakh", 99_999, "INR", "₹99,999"},
		{"negative stays full", -250_000, "INR", "-₹250,000"},
		{"usd million", 2_500_000, "USD", "$2.5M"},
		{"usd thousand", 1_200, "USD", "$1.2K"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compact(tt.v, tt.code))
		})
	}
}

func TestCompactNumber(t *testing.T) {
	assert.Equal(t, "1.5Cr", CompactNumber(15_000_000, "INR"))
	assert.Equal(t, "2.5L", CompactNumber(250_000, "INR"))
	assert.Equal(t, "45,000", CompactNumber(45_000, "INR"))
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name     string
		fraction float64
		want     string
		signed   string
	}{
		{"positive", 0.125, "12.5%", "+12.5%"},
		{"negative", -0.034, "-3.4%", "-3.4%"},
		{"zero", 0, "0.0%", "0.0%"},
		{"whole", 1, "100.0%", "+100.0%"},
		{"inf", math.Inf(1), "0.0%", "0.0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Percent(tt.fraction))
			assert.Equal(t, tt.signed, SignedPercent(tt.fraction))
		})
	}
}

func TestOptionalPercent(t *testing.T) {
	assert.Equal(t, "–", OptionalPercent(nil))
	v := 0.05
	assert.Equal(t, "+5.0%", OptionalPercent(&v))
}

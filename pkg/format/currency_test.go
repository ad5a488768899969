package format

import "testing"

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"Zero", 0, "$0.00"},
		{"Small amount", 12.5, "$12.50"},
		{"Thousands separator", 1234.56, "$1,234.56"},
		{"Millions", 1234567.89, "$1,234,567.89"},
		{"Negative", -1234.56, "-$1,234.56"},
		{"Rounds to cents", 2023.094, "$2,023.09"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.amount); got != tt.expected {
				t.Errorf("Currency(%v) = %q, expected %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestNumericCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"Positive", 1234.5, "1,234.50"},
		{"Negative", -99.99, "-99.99"},
		{"Zero", 0, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NumericCurrency(tt.amount); got != tt.expected {
				t.Errorf("NumericCurrency(%v) = %q, expected %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(18.99); got != "18.99%" {
		t.Errorf("Percent(18.99) = %q, expected %q", got, "18.99%")
	}
	if got := Percent(0); got != "0.00%" {
		t.Errorf("Percent(0) = %q, expected %q", got, "0.00%")
	}
}

func TestMonths(t *testing.T) {
	tests := []struct {
		name     string
		months   int
		expected string
	}{
		{"Months only", 7, "7m"},
		{"Exact years", 24, "2y"},
		{"Years and months", 27, "2y 3m"},
		{"Zero", 0, "0m"},
		{"Cap value", 600, "50y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Months(tt.months); got != tt.expected {
				t.Errorf("Months(%d) = %q, expected %q", tt.months, got, tt.expected)
			}
		})
	}
}

package validation

import (
	"strings"
	"testing"

	"github.com/wvoelker/finance-engine/pkg/payoff"
)

func TestValidateDebts(t *testing.T) {
	goodDebt := payoff.Debt{Name: "Card", Balance: 5000, AnnualRate: 18.99, MinimumPayment: 125}

	tests := []struct {
		name        string
		debts       []payoff.Debt
		extra       float64
		wantValid   bool
		wantWarning bool
	}{
		{"Single good debt", []payoff.Debt{goodDebt}, 100, true, false},
		{"Zero extra payment is fine", []payoff.Debt{goodDebt}, 0, true, false},
		{"Negative extra payment", []payoff.Debt{goodDebt}, -1, false, false},
		{"No debts", nil, 0, false, false},
		{"Only ineligible debts", []payoff.Debt{{Name: "Done", Balance: 0, AnnualRate: 10, MinimumPayment: 50}}, 0, false, false},
		{"Negative balance", []payoff.Debt{{Name: "Bad", Balance: -10, AnnualRate: 10, MinimumPayment: 50}}, 0, false, false},
		{"Negative rate", []payoff.Debt{goodDebt, {Name: "Bad", Balance: 100, AnnualRate: -1, MinimumPayment: 50}}, 0, false, false},
		{"Minimum below interest warns", []payoff.Debt{{Name: "Treadmill", Balance: 10000, AnnualRate: 12, MinimumPayment: 100}}, 0, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateDebts(tt.debts, tt.extra)
			if result.Valid() != tt.wantValid {
				t.Errorf("Valid() = %v, expected %v (reasons: %v)", result.Valid(), tt.wantValid, result.Reasons)
			}
			if (len(result.Warnings) > 0) != tt.wantWarning {
				t.Errorf("warnings = %v, expected warning presence %v", result.Warnings, tt.wantWarning)
			}
		})
	}
}

func TestValidateDebtsNamesUnnamedDebts(t *testing.T) {
	result := ValidateDebts([]payoff.Debt{{Balance: -5, AnnualRate: 10, MinimumPayment: 50}}, 0)
	if result.Valid() {
		t.Fatal("expected invalid result")
	}
	found := false
	for _, reason := range result.Reasons {
		if strings.Contains(reason, "debt 1") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a reason naming 'debt 1', got %v", result.Reasons)
	}
}

func TestValidateLoan(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		term      int
		wantValid bool
	}{
		{"Standard mortgage", 320000, 6.5, 360, true},
		{"Zero rate allowed", 12000, 0, 12, true},
		{"Zero principal", 0, 5, 60, false},
		{"Negative rate", 1000, -1, 60, false},
		{"Zero term", 1000, 5, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateLoan(tt.principal, tt.rate, tt.term)
			if result.Valid() != tt.wantValid {
				t.Errorf("Valid() = %v, expected %v (reasons: %v)", result.Valid(), tt.wantValid, result.Reasons)
			}
		})
	}
}

func TestValidateGrowth(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		monthly   float64
		rate      float64
		years     int
		n         int
		wantValid bool
	}{
		{"Standard projection", 10000, 500, 7, 25, 12, true},
		{"Annual compounding", 1000, 0, 5, 10, 1, true},
		{"Daily compounding", 1000, 0, 5, 10, 365, true},
		{"Bad compounding frequency", 1000, 0, 5, 10, 7, false},
		{"Zero years", 1000, 0, 5, 0, 12, false},
		{"Negative contribution", 1000, -5, 5, 10, 12, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateGrowth(tt.principal, tt.monthly, tt.rate, tt.years, tt.n)
			if result.Valid() != tt.wantValid {
				t.Errorf("Valid() = %v, expected %v (reasons: %v)", result.Valid(), tt.wantValid, result.Reasons)
			}
		})
	}
}

func TestValidateGrowthWarnsOnLongHorizon(t *testing.T) {
	result := ValidateGrowth(1000, 0, 5, 250, 12)
	if !result.Valid() {
		t.Fatalf("expected valid result, reasons: %v", result.Reasons)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a horizon warning")
	}
}

func TestValidateGoal(t *testing.T) {
	tests := []struct {
		name      string
		balance   float64
		monthly   float64
		rate      float64
		target    float64
		wantValid bool
	}{
		{"Emergency fund", 1000, 500, 4, 15000, true},
		{"Already funded", 20000, 0, 4, 15000, true},
		{"Growth only", 1000, 0, 5, 2000, true},
		{"Zero target", 1000, 500, 4, 0, false},
		{"No progress possible", 1000, 0, 0, 2000, false},
		{"Zero balance and no contribution", 0, 0, 5, 2000, false},
		{"Negative contribution", 1000, -1, 4, 15000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateGoal(tt.balance, tt.monthly, tt.rate, tt.target)
			if result.Valid() != tt.wantValid {
				t.Errorf("Valid() = %v, expected %v (reasons: %v)", result.Valid(), tt.wantValid, result.Reasons)
			}
		})
	}
}

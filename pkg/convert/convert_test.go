package convert

import (
	"math"
	"testing"
)

func TestTip(t *testing.T) {
	tests := []struct {
		name       string
		bill       float64
		tipPercent float64
		people     int
		wantTip    float64
		wantTotal  float64
		wantEach   float64
	}{
		{"Standard 20% split four ways", 100, 20, 4, 20, 120, 30},
		{"Single payer", 50, 15, 1, 7.5, 57.5, 57.5},
		{"Zero people treated as one", 50, 10, 0, 5, 55, 55},
		{"Zero tip", 80, 0, 2, 0, 80, 40},
		{"Negative bill clamped", -10, 20, 1, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tip(tt.bill, tt.tipPercent, tt.people)
			if math.Abs(got.TipAmount-tt.wantTip) > 1e-9 ||
				math.Abs(got.Total-tt.wantTotal) > 1e-9 ||
				math.Abs(got.PerPerson-tt.wantEach) > 1e-9 {
				t.Errorf("Tip(%v, %v, %d) = %+v, expected tip %v total %v each %v",
					tt.bill, tt.tipPercent, tt.people, got, tt.wantTip, tt.wantTotal, tt.wantEach)
			}
		})
	}
}

func TestSalesTax(t *testing.T) {
	got := SalesTax(200, 8.25)
	if math.Abs(got.Tax-16.5) > 1e-9 || math.Abs(got.Total-216.5) > 1e-9 {
		t.Errorf("SalesTax(200, 8.25) = %+v, expected tax 16.50 total 216.50", got)
	}
}

func TestCurrency(t *testing.T) {
	// USD to USD is the identity.
	got, err := Currency(100, "USD", "USD")
	if err != nil || math.Abs(got-100) > 1e-9 {
		t.Errorf("Currency(100, USD, USD) = (%v, %v), expected (100, nil)", got, err)
	}

	// A round trip returns the original amount.
	eur, err := Currency(100, "USD", "EUR")
	if err != nil {
		t.Fatalf("USD->EUR failed: %v", err)
	}
	back, err := Currency(eur, "EUR", "USD")
	if err != nil {
		t.Fatalf("EUR->USD failed: %v", err)
	}
	if math.Abs(back-100) > 1e-9 {
		t.Errorf("round trip = %v, expected 100", back)
	}
}

func TestCurrencyUnknownCode(t *testing.T) {
	if _, err := Currency(100, "XXX", "USD"); err == nil {
		t.Error("expected error for unknown source code")
	}
	if _, err := Currency(100, "USD", "XXX"); err == nil {
		t.Error("expected error for unknown target code")
	}
}

func TestSupportedCurrencies(t *testing.T) {
	codes := SupportedCurrencies()
	if len(codes) == 0 {
		t.Fatal("expected at least one supported currency")
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Fatalf("codes not sorted: %v", codes)
		}
	}
}

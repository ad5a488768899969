// Package convert provides the everyday conversion helpers that ship
// alongside the planners: tip splitting, sales tax, and currency
// conversion over a fixed rate table.
package convert

import (
	"fmt"
	"sort"

	"github.com/wvoelker/finance-engine/pkg/mathutil"
)

// usdRates maps a currency code to its value per one USD. Rates are fixed
// constants; live rate fetching is out of scope for this product.
var usdRates = map[string]float64{
	"USD": 1.0,
	"EUR": 0.92,
	"GBP": 0.79,
	"JPY": 149.50,
	"CAD": 1.36,
	"AUD": 1.52,
	"CHF": 0.88,
	"CNY": 7.24,
	"INR": 83.10,
	"MXN": 17.05,
}

// TipResult holds a tip calculation for a shared bill.
type TipResult struct {
	TipAmount float64
	Total     float64
	PerPerson float64
}

// Tip computes the tip and the per-person share of the total. People below
// one is treated as a single payer.
func Tip(bill, tipPercent float64, people int) TipResult {
	if bill < 0 {
		bill = 0
	}
	if tipPercent < 0 {
		tipPercent = 0
	}
	if people < 1 {
		people = 1
	}

	tip := mathutil.ApplyPercentage(bill, tipPercent)
	total := bill + tip
	return TipResult{
		TipAmount: tip,
		Total:     total,
		PerPerson: total / float64(people),
	}
}

// SalesTaxResult holds a sales tax calculation.
type SalesTaxResult struct {
	Tax   float64
	Total float64
}

// SalesTax computes the tax on a price and the tax-inclusive total.
func SalesTax(price, taxPercent float64) SalesTaxResult {
	if price < 0 {
		price = 0
	}
	if taxPercent < 0 {
		taxPercent = 0
	}
	tax := mathutil.ApplyPercentage(price, taxPercent)
	return SalesTaxResult{Tax: tax, Total: price + tax}
}

// Currency converts an amount between two currency codes via the USD rate
// table. Unknown codes are errors.
func Currency(amount float64, from, to string) (float64, error) {
	fromRate, ok := usdRates[from]
	if !ok {
		return 0, fmt.Errorf("unknown currency code %q", from)
	}
	toRate, ok := usdRates[to]
	if !ok {
		return 0, fmt.Errorf("unknown currency code %q", to)
	}
	return amount / fromRate * toRate, nil
}

// SupportedCurrencies returns the known currency codes in sorted order.
func SupportedCurrencies() []string {
	codes := make([]string, 0, len(usdRates))
	for code := range usdRates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

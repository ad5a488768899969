// Package loans provides fixed-rate loan amortization: the level-payment
// annuity formula and the month-by-month principal/interest decomposition,
// plus the non-amortizing carrying costs a mortgage adds on top.
package loans

import (
	"fmt"
	"math"

	"github.com/wvoelker/finance-engine/pkg/constants"
	"github.com/wvoelker/finance-engine/pkg/mathutil"
	"go.uber.org/zap"
)

// Entry holds the decomposition of a single period's payment.
type Entry struct {
	Month     int
	Payment   float64
	Principal float64
	Interest  float64
	Balance   float64
}

// Schedule is the full amortization of one loan.
type Schedule struct {
	Payment       float64
	TotalInterest float64
	Entries       []Entry
}

// TotalPaid returns the sum of all level payments over the term.
func (s Schedule) TotalPaid() float64 {
	return s.Payment * float64(len(s.Entries))
}

// MonthlyPayment calculates the level monthly payment for a loan using the
// standard annuity formula. A zero rate degenerates to a straight-line
// split of the principal; this is special-cased to avoid dividing by zero.
func MonthlyPayment(principal, annualRatePercent float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	if annualRatePercent == 0 {
		return principal / float64(termMonths)
	}

	monthlyRate := mathutil.MonthlyRate(annualRatePercent)
	power := math.Pow(1.00+monthlyRate, float64(termMonths))
	discountFactor := (power - 1.00) / power
	return principal * monthlyRate / discountFactor
}

// InterestPayment calculates the interest portion of one payment.
func InterestPayment(remainingPrincipal, annualRatePercent float64) float64 {
	return remainingPrincipal * mathutil.MonthlyRate(annualRatePercent)
}

// Amortize decomposes a fixed-payment, fixed-rate loan into its
// month-by-month principal and interest portions. The balance is clamped
// at zero and, under correct inputs, closes to zero within floating
// tolerance at the final period. Degenerate inputs (non-positive principal
// or term, negative rate) yield an empty schedule.
func Amortize(logger *zap.Logger, principal, annualRatePercent float64, termMonths int) Schedule {
	if logger == nil {
		logger = zap.NewNop()
	}

	var schedule Schedule
	if principal <= 0 || termMonths <= 0 || annualRatePercent < 0 {
		return schedule
	}

	schedule.Payment = MonthlyPayment(principal, annualRatePercent, termMonths)
	schedule.TotalInterest = schedule.Payment*float64(termMonths) - principal
	schedule.Entries = make([]Entry, 0, termMonths)

	balance := principal
	for month := 1; month <= termMonths; month++ {
		interest := InterestPayment(balance, annualRatePercent)
		principalPortion := schedule.Payment - interest
		balance = mathutil.ClampNonNegative(balance - principalPortion)

		schedule.Entries = append(schedule.Entries, Entry{
			Month:     month,
			Payment:   schedule.Payment,
			Principal: principalPortion,
			Interest:  interest,
			Balance:   balance,
		})
	}

	final := schedule.Entries[len(schedule.Entries)-1].Balance
	if !mathutil.WithinTolerance(final, 0, constants.CurrencyTolerance) {
		logger.Debug(fmt.Sprintf("amortization left residual balance %.6f", final),
			zap.String("op", "loans.Amortize"),
		)
	}

	return schedule
}

// MortgageCosts holds the non-amortizing monthly add-ons of a mortgage.
// These are summed alongside the principal-and-interest payment, never
// compounded into it.
type MortgageCosts struct {
	PropertyTaxAnnual float64
	InsuranceAnnual   float64
	HOAMonthly        float64
	PMIMonthly        float64
	// PMICutoffPercent is the loan-to-value percentage at or below which
	// PMI is dropped. Zero selects the conventional default.
	PMICutoffPercent float64
}

// MonthlyCost returns the all-in monthly cost for one period: the P&I
// payment plus tax/12, insurance/12, HOA, and PMI while the remaining
// balance sits above the cutoff fraction of the original principal.
func (c MortgageCosts) MonthlyCost(paymentPI, balance, originalPrincipal float64) float64 {
	total := paymentPI +
		c.PropertyTaxAnnual/constants.MonthsPerYear +
		c.InsuranceAnnual/constants.MonthsPerYear +
		c.HOAMonthly

	if c.PMIMonthly > 0 && originalPrincipal > 0 {
		cutoff := c.PMICutoffPercent
		if cutoff == 0 {
			cutoff = constants.DefaultPMICutoffPercent
		}
		ltv := balance / originalPrincipal * constants.PercentageMultiplier
		if ltv > cutoff {
			total += c.PMIMonthly
		}
	}

	return total
}

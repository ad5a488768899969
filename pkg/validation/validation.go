// Package validation provides explicit input validation for the
// calculation engines. Inputs are checked up front and failures reported
// as tagged results with human-readable reasons; the engines themselves
// never raise errors for bad numeric input.
package validation

import (
	"fmt"

	"github.com/wvoelker/finance-engine/pkg/constants"
	"github.com/wvoelker/finance-engine/pkg/payoff"
)

// Result is the outcome of validating one calculation's inputs.
type Result struct {
	Reasons  []string // failures; empty means the inputs are valid
	Warnings []string // non-fatal findings worth surfacing
}

// Valid reports whether the inputs passed validation.
func (r Result) Valid() bool {
	return len(r.Reasons) == 0
}

func (r *Result) fail(format string, args ...interface{}) {
	r.Reasons = append(r.Reasons, fmt.Sprintf(format, args...))
}

func (r *Result) warn(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// ValidateDebts checks a payoff plan: a non-negative extra budget and at
// least one debt with a positive balance, rate, and minimum payment. Debts
// failing the eligibility check are not errors by themselves (they are
// filtered before simulation) but negative fields are, and a minimum that
// fails to cover first-month interest earns a warning since such a debt
// may never pay off.
func ValidateDebts(debts []payoff.Debt, extraPayment float64) Result {
	var result Result

	if extraPayment < 0 {
		result.fail("extra monthly payment must not be negative (got %.2f)", extraPayment)
	}

	eligible := 0
	for i, debt := range debts {
		name := debt.Name
		if name == "" {
			name = fmt.Sprintf("debt %d", i+1)
		}
		if debt.Balance < 0 {
			result.fail("%s: balance must not be negative (got %.2f)", name, debt.Balance)
		}
		if debt.AnnualRate < 0 {
			result.fail("%s: annual rate must not be negative (got %.2f)", name, debt.AnnualRate)
		}
		if debt.MinimumPayment < 0 {
			result.fail("%s: minimum payment must not be negative (got %.2f)", name, debt.MinimumPayment)
		}
		if debt.Eligible() {
			eligible++
			if debt.MinimumPayment <= debt.Balance*debt.MonthlyRate() {
				result.warn("%s: minimum payment %.2f does not cover monthly interest %.2f; may never pay off",
					name, debt.MinimumPayment, debt.Balance*debt.MonthlyRate())
			}
		}
	}

	if eligible == 0 {
		result.fail("at least one debt with positive balance, rate, and minimum payment is required")
	}

	return result
}

// ValidateLoan checks amortization inputs.
func ValidateLoan(principal, annualRatePercent float64, termMonths int) Result {
	var result Result
	if principal <= 0 {
		result.fail("principal must be positive (got %.2f)", principal)
	}
	if annualRatePercent < 0 {
		result.fail("annual rate must not be negative (got %.2f)", annualRatePercent)
	}
	if termMonths <= 0 {
		result.fail("term must be positive (got %d months)", termMonths)
	}
	return result
}

// ValidateGrowth checks projection inputs. Compounding frequency is
// restricted to the conventional schedules.
func ValidateGrowth(principal, monthlyContribution, annualRatePercent float64, years, compoundsPerYear int) Result {
	var result Result
	if principal < 0 {
		result.fail("principal must not be negative (got %.2f)", principal)
	}
	if monthlyContribution < 0 {
		result.fail("monthly contribution must not be negative (got %.2f)", monthlyContribution)
	}
	if annualRatePercent < 0 {
		result.fail("annual rate must not be negative (got %.2f)", annualRatePercent)
	}
	if years <= 0 {
		result.fail("years must be positive (got %d)", years)
	} else if years > constants.MaxProjectionYears {
		result.warn("projection horizon capped at %d years (got %d)", constants.MaxProjectionYears, years)
	}

	switch compoundsPerYear {
	case 1, 2, 4, 12, 365:
	default:
		result.fail("compounds per year must be one of 1, 2, 4, 12, 365 (got %d)", compoundsPerYear)
	}
	return result
}

// ValidateGoal checks months-to-goal inputs. Hitting the target requires
// either a contribution or a growing starting balance.
func ValidateGoal(startingBalance, monthlyContribution, annualRatePercent, target float64) Result {
	var result Result
	if target <= 0 {
		result.fail("target amount must be positive (got %.2f)", target)
	}
	if startingBalance < 0 {
		result.fail("starting balance must not be negative (got %.2f)", startingBalance)
	}
	if monthlyContribution < 0 {
		result.fail("monthly contribution must not be negative (got %.2f)", monthlyContribution)
	}
	if annualRatePercent < 0 {
		result.fail("annual rate must not be negative (got %.2f)", annualRatePercent)
	}
	if result.Valid() && startingBalance < target && monthlyContribution == 0 && (annualRatePercent == 0 || startingBalance == 0) {
		result.fail("target is unreachable without contributions or growth")
	}
	return result
}

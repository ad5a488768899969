// Package payoff implements the debt payoff simulation engine: a
// month-by-month amortization of a set of debts under a caller-chosen
// elimination order, plus the snowball/avalanche strategy comparison.
package payoff

import (
	"fmt"
	"sort"

	"github.com/wvoelker/finance-engine/pkg/constants"
	"github.com/wvoelker/finance-engine/pkg/mathutil"
	"go.uber.org/zap"
)

// Debt describes a single liability at simulation start.
type Debt struct {
	Name           string
	Balance        float64
	AnnualRate     float64 // APR in percent, e.g. 18.99
	MinimumPayment float64
}

// MonthlyRate returns the debt's monthly fractional interest rate.
func (d Debt) MonthlyRate() float64 {
	return mathutil.MonthlyRate(d.AnnualRate)
}

// Active reports whether the debt still carries a balance above the
// currency tolerance. Inactive debts accrue no interest and receive no
// payments.
func (d Debt) Active() bool {
	return d.Balance > constants.CurrencyTolerance
}

// Eligible reports whether the debt participates in a simulation at all.
// Debts with a zero balance, rate, or minimum payment contribute nothing
// and are filtered out before ordering.
func (d Debt) Eligible() bool {
	return d.Balance > 0 && d.AnnualRate > 0 && d.MinimumPayment > 0
}

// MonthlyPayment records one payment toward one debt in one month.
type MonthlyPayment struct {
	Month            int
	DebtName         string
	Payment          float64
	PrincipalPayment float64
	InterestPayment  float64
	RemainingBalance float64
}

// PayoffResult summarizes a full simulation run.
type PayoffResult struct {
	Method           string
	TotalMonths      int
	TotalInterest    float64
	MonthlyBreakdown []MonthlyPayment
	// CapReached is set when the simulation terminated at MaxPayoffMonths
	// with balances outstanding. TotalMonths is then the cap, not a payoff
	// time, and the result must not be reported as a payoff.
	CapReached bool
}

// Years returns the payoff time in fractional years.
func (r PayoffResult) Years() float64 {
	return float64(r.TotalMonths) / constants.MonthsPerYear
}

// Comparison holds both strategy outcomes. InterestSaved and MonthsSaved
// are only meaningful when HasSavings is true, i.e. when avalanche beat
// snowball on total interest strictly. Snowball can tie, and can rarely
// win on months, so no savings claim is made otherwise.
type Comparison struct {
	Snowball      PayoffResult
	Avalanche     PayoffResult
	HasSavings    bool
	InterestSaved float64
	MonthsSaved   int
}

// SnowballOrder returns the eligible debts sorted ascending by balance.
// The sort is stable so ties keep their input order.
func SnowballOrder(debts []Debt) []Debt {
	ordered := eligible(debts)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Balance < ordered[j].Balance
	})
	return ordered
}

// AvalancheOrder returns the eligible debts sorted descending by annual
// rate. The sort is stable so ties keep their input order.
func AvalancheOrder(debts []Debt) []Debt {
	ordered := eligible(debts)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].AnnualRate > ordered[j].AnnualRate
	})
	return ordered
}

func eligible(debts []Debt) []Debt {
	out := make([]Debt, 0, len(debts))
	for _, d := range debts {
		if d.Eligible() {
			out = append(out, d)
		}
	}
	return out
}

// Simulate runs the month-by-month payoff for debts in the caller-supplied
// elimination order. Each month every active debt accrues interest and
// receives its contractual minimum; afterwards the entire extra budget goes
// to the first active debt in order, clamped to its balance. Excess beyond
// that balance is not cascaded within the month; freed-up budget only
// redirects the following month via the same first-active rule.
//
// The loop stops when no balance exceeds the currency tolerance or at
// MaxPayoffMonths, whichever comes first. Empty input yields a zero-valued
// result. The simulation works on a copy; the caller's debts are not
// mutated.
func Simulate(logger *zap.Logger, method string, orderedDebts []Debt, extraPayment float64) PayoffResult {
	if logger == nil {
		logger = zap.NewNop()
	}

	result := PayoffResult{Method: method}
	if len(orderedDebts) == 0 {
		return result
	}
	if extraPayment < 0 {
		extraPayment = 0
	}

	working := make([]Debt, len(orderedDebts))
	copy(working, orderedDebts)

	month := 0
	for {
		if !anyActive(working) {
			result.TotalMonths = month
			break
		}
		if month >= constants.MaxPayoffMonths {
			result.TotalMonths = constants.MaxPayoffMonths
			result.CapReached = true
			logger.Debug(fmt.Sprintf("%s simulation hit %d-month cap with balances outstanding",
				method, constants.MaxPayoffMonths),
				zap.String("op", "payoff.Simulate"),
			)
			break
		}
		month++

		// Apply contractual minimums to every active debt. The principal
		// portion can be negative when the minimum does not cover accrued
		// interest; the balance then grows and the cap guards termination.
		for i := range working {
			if !working[i].Active() {
				continue
			}
			interest := working[i].Balance * working[i].MonthlyRate()
			principal := mathutil.Min(working[i].MinimumPayment-interest, working[i].Balance)
			working[i].Balance = mathutil.ClampNonNegative(working[i].Balance - principal)

			result.TotalInterest += interest
			result.MonthlyBreakdown = append(result.MonthlyBreakdown, MonthlyPayment{
				Month:            month,
				DebtName:         working[i].Name,
				Payment:          interest + principal,
				PrincipalPayment: principal,
				InterestPayment:  interest,
				RemainingBalance: working[i].Balance,
			})
		}

		// The whole extra budget targets the first active debt in order.
		if extraPayment > 0 {
			for i := range working {
				if !working[i].Active() {
					continue
				}
				applied := mathutil.Min(extraPayment, working[i].Balance)
				working[i].Balance = mathutil.ClampNonNegative(working[i].Balance - applied)
				if applied < extraPayment {
					logger.Debug(fmt.Sprintf("month %d: %s retired mid-budget, %.2f of extra payment unused this month",
						month, working[i].Name, extraPayment-applied),
						zap.String("op", "payoff.Simulate"),
					)
				}
				break
			}
		}
	}

	return result
}

func anyActive(debts []Debt) bool {
	for _, d := range debts {
		if d.Active() {
			return true
		}
	}
	return false
}

// Compare runs both canonical strategies over the same debt set and derives
// the avalanche savings when avalanche is strictly better on interest.
func Compare(logger *zap.Logger, debts []Debt, extraPayment float64) Comparison {
	snowball := Simulate(logger, constants.StrategySnowball, SnowballOrder(debts), extraPayment)
	avalanche := Simulate(logger, constants.StrategyAvalanche, AvalancheOrder(debts), extraPayment)

	comparison := Comparison{Snowball: snowball, Avalanche: avalanche}
	if avalanche.TotalInterest < snowball.TotalInterest {
		comparison.HasSavings = true
		comparison.InterestSaved = snowball.TotalInterest - avalanche.TotalInterest
		comparison.MonthsSaved = snowball.TotalMonths - avalanche.TotalMonths
	}
	return comparison
}

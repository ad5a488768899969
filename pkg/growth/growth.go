// Package growth projects compound growth of a lump sum with periodic
// contributions, and solves the inverse months-to-goal problem by forward
// simulation.
package growth

import (
	"fmt"
	"math"

	"github.com/wvoelker/finance-engine/pkg/constants"
	"github.com/wvoelker/finance-engine/pkg/mathutil"
	"go.uber.org/zap"
)

// YearlyBreakdown holds the cumulative position at the end of one year.
type YearlyBreakdown struct {
	Year      int
	Principal float64 // cumulative contributions including the initial lump sum
	Interest  float64 // growth beyond contributions
	Total     float64
}

// Projection is the result of a compound-growth projection.
type Projection struct {
	TotalValue         float64
	TotalContributions float64
	TotalInterest      float64
	Yearly             []YearlyBreakdown
}

// / valueAt evaluates the closed forms at a point in time: lump-sum growth
// compounded n times per year, plus the future value of a monthly-compounded
// contribution annuity. Contributions compound monthly regardless of n.
func valueAt(principal, monthlyContribution, annualRatePercent, years float64, compoundsPerYear int) float64 {
	rate := annualRatePercent / constants.PercentageMultiplier
	n := float64(compoundsPerYear)

	lumpSum := principal * math.Pow(1+rate/n, n*years)

	months := years * constants.MonthsPerYear
	monthlyRate := rate / constants.MonthsPerYear
	var contributions float64
	if monthlyRate == 0 {
		contributions = monthlyContribution * months
	} else {
		contributions = monthlyContribution * (math.Pow(1+monthlyRate, months) - 1) / monthlyRate
	}

	return lumpSum + contributions
}

// Project computes the future value of principal plus monthly contributions
// over the given whole number of years, with a year-by-year breakdown. Each
// year is evaluated independently from the closed forms, so the breakdown
// carries no accumulated iteration error. Degenerate inputs (non-positive
// years, negative money or rate) yield a zero-valued projection. Years are
// capped at MaxProjectionYears.
func Project(logger *zap.Logger, principal, monthlyContribution, annualRatePercent float64, years, compoundsPerYear int) Projection {
	if logger == nil {
		logger = zap.NewNop()
	}

	var projection Projection
	if years <= 0 || principal < 0 || monthlyContribution < 0 || annualRatePercent < 0 {
		return projection
	}
	if compoundsPerYear <= 0 {
		compoundsPerYear = constants.MonthsPerYear
	}
	if years > constants.MaxProjectionYears {
		logger.Debug(fmt.Sprintf("capping projection horizon from %d to %d years",
			years, constants.MaxProjectionYears),
			zap.String("op", "growth.Project"),
		)
		years = constants.MaxProjectionYears
	}

	projection.Yearly = make([]YearlyBreakdown, 0, years+1)
	for year := 0; year <= years; year++ {
		total := valueAt(principal, monthlyContribution, annualRatePercent, float64(year), compoundsPerYear)
		contributed := principal + monthlyContribution*float64(year)*constants.MonthsPerYear
		projection.Yearly = append(projection.Yearly, YearlyBreakdown{
			Year:      year,
			Principal: contributed,
			Interest:  total - contributed,
			Total:     total,
		})
	}

	projection.TotalValue = projection.Yearly[years].Total
	projection.TotalContributions = projection.Yearly[years].Principal
	projection.TotalInterest = projection.TotalValue - projection.TotalContributions
	return projection
}

// MonthsToGoal solves for the number of months of contributing and
// compounding needed for the balance to reach the target. There is no
// closed form with both contributions and compounding, so the balance is
// stepped forward month by month, capped at MaxPayoffMonths. The boolean
// reports whether the target was reached within the cap; an already-met
// target returns (0, true). A zero rate is solved directly by division.
func MonthsToGoal(logger *zap.Logger, startingBalance, monthlyContribution, annualRatePercent, target float64) (int, bool) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if target <= 0 || startingBalance >= target {
		return 0, true
	}

	monthlyRate := annualRatePercent / constants.PercentageMultiplier / constants.MonthsPerYear
	if monthlyRate == 0 {
		if monthlyContribution <= 0 {
			return constants.MaxPayoffMonths, false
		}
		months := int(math.Ceil((target - startingBalance) / monthlyContribution))
		if months > constants.MaxPayoffMonths {
			return constants.MaxPayoffMonths, false
		}
		return months, true
	}

	balance := mathutil.ClampNonNegative(startingBalance)
	for month := 1; month <= constants.MaxPayoffMonths; month++ {
		balance = balance*(1+monthlyRate) + monthlyContribution
		if balance >= target {
			return month, true
		}
	}

	logger.Debug(fmt.Sprintf("target %.2f not reached within %d months", target, constants.MaxPayoffMonths),
		zap.String("op", "growth.MonthsToGoal"),
	)
	return constants.MaxPayoffMonths, false
}

// AdjustForInflation deflates a future amount into today's purchasing
// power at the given annual inflation rate.
func AdjustForInflation(amount, annualInflationPercent float64, years int) float64 {
	if years <= 0 || annualInflationPercent == 0 {
		return amount
	}
	return amount / math.Pow(1+annualInflationPercent/constants.PercentageMultiplier, float64(years))
}

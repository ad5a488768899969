// Package report runs every calculation in a loaded configuration and
// assembles the results into a single Report for rendering.
package report

import (
	"fmt"

	"github.com/wvoelker/finance-engine/internal/config"
	"github.com/wvoelker/finance-engine/pkg/convert"
	"github.com/wvoelker/finance-engine/pkg/growth"
	"github.com/wvoelker/finance-engine/pkg/loans"
	"github.com/wvoelker/finance-engine/pkg/payoff"
	"github.com/wvoelker/finance-engine/pkg/validation"
	"go.uber.org/zap"
)

// Report holds the outcome of every configured calculation. Sections that
// failed validation carry their reasons in Skipped and no results.
type Report struct {
	Payoff      *PayoffSection
	Loans       []LoanSection
	Growth      []GrowthSection
	Goals       []GoalSection
	Conversions *ConversionSection
	Warnings    []string
}

// PayoffSection is the snowball/avalanche comparison.
type PayoffSection struct {
	Comparison payoff.Comparison
	Skipped    []string
}

// LoanSection is one loan's amortization. AllInMonthlyCost is the
// first-month cost including carrying costs, meaningful when HasCosts.
type LoanSection struct {
	Name             string
	Schedule         loans.Schedule
	HasCosts         bool
	AllInMonthlyCost float64
	Skipped          []string
}

// GrowthSection is one compound-growth projection. InflationAdjusted is
// the final value in today's purchasing power, set when an inflation rate
// was configured.
type GrowthSection struct {
	Name              string
	Projection        growth.Projection
	InflationRate     float64
	InflationAdjusted float64
	Skipped           []string
}

// GoalSection is one months-to-goal solve. Reached is false when the
// target was not met within the simulation cap.
type GoalSection struct {
	Name    string
	Target  float64
	Months  int
	Reached bool
	Skipped []string
}

// ConversionSection pairs each conversion request with its result.
type ConversionSection struct {
	Tips       []TipLine
	SalesTaxes []SalesTaxLine
	Currencies []CurrencyLine
}

// TipLine is one tip request and its result.
type TipLine struct {
	Request config.TipRequest
	Result  convert.TipResult
}

// SalesTaxLine is one sales tax request and its result.
type SalesTaxLine struct {
	Request config.SalesTaxRequest
	Result  convert.SalesTaxResult
}

// CurrencyLine is one currency request and its result; Err carries the
// failure for unknown codes.
type CurrencyLine struct {
	Request config.CurrencyRequest
	Result  float64
	Err     string
}

// Generate runs every section of the configuration through its engine.
func Generate(logger *zap.Logger, conf config.Configuration) Report {
	if logger == nil {
		logger = zap.NewNop()
	}

	report := Report{Warnings: conf.ValidateConfiguration()}

	if len(conf.Plan.Debts) > 0 {
		report.Payoff = payoffSection(logger, conf.Plan)
	}
	for _, loan := range conf.Loans {
		report.Loans = append(report.Loans, loanSection(logger, loan))
	}
	for _, scenario := range conf.Growth {
		report.Growth = append(report.Growth, growthSection(logger, scenario))
	}
	for _, goal := range conf.Goals {
		report.Goals = append(report.Goals, goalSection(logger, goal))
	}
	if len(conf.Conversions.Tips) > 0 || len(conf.Conversions.SalesTaxes) > 0 || len(conf.Conversions.Currencies) > 0 {
		report.Conversions = conversionSection(logger, conf.Conversions)
	}

	return report
}

func payoffSection(logger *zap.Logger, plan config.PayoffPlan) *PayoffSection {
	debts := plan.EngineDebts()
	result := validation.ValidateDebts(debts, plan.ExtraMonthlyPayment)
	if !result.Valid() {
		logger.Debug("skipping payoff section due to invalid inputs",
			zap.String("op", "report.payoffSection"),
			zap.Strings("reasons", result.Reasons),
		)
		return &PayoffSection{Skipped: result.Reasons}
	}
	return &PayoffSection{
		Comparison: payoff.Compare(logger, debts, plan.ExtraMonthlyPayment),
	}
}

func loanSection(logger *zap.Logger, loan config.Loan) LoanSection {
	section := LoanSection{Name: loan.Name}

	result := validation.ValidateLoan(loan.Principal, loan.AnnualRate, loan.Term())
	if !result.Valid() {
		section.Skipped = result.Reasons
		return section
	}

	section.Schedule = loans.Amortize(logger, loan.Principal, loan.AnnualRate, loan.Term())
	if loan.HasCosts() {
		section.HasCosts = true
		section.AllInMonthlyCost = loan.Costs().MonthlyCost(section.Schedule.Payment, loan.Principal, loan.Principal)
	}
	return section
}

func growthSection(logger *zap.Logger, scenario config.GrowthScenario) GrowthSection {
	section := GrowthSection{Name: scenario.Name, InflationRate: scenario.InflationRate}

	result := validation.ValidateGrowth(scenario.Principal, scenario.MonthlyContribution,
		scenario.AnnualRate, scenario.Years, scenario.Compounds())
	if !result.Valid() {
		section.Skipped = result.Reasons
		return section
	}

	section.Projection = growth.Project(logger, scenario.Principal, scenario.MonthlyContribution,
		scenario.AnnualRate, scenario.Years, scenario.Compounds())
	if scenario.InflationRate > 0 {
		section.InflationAdjusted = growth.AdjustForInflation(
			section.Projection.TotalValue, scenario.InflationRate, scenario.Years)
	}
	return section
}

func goalSection(logger *zap.Logger, goal config.Goal) GoalSection {
	section := GoalSection{Name: goal.Name, Target: goal.Target()}

	result := validation.ValidateGoal(goal.StartingBalance, goal.MonthlyContribution,
		goal.AnnualRate, section.Target)
	if !result.Valid() {
		section.Skipped = result.Reasons
		return section
	}

	section.Months, section.Reached = growth.MonthsToGoal(logger, goal.StartingBalance,
		goal.MonthlyContribution, goal.AnnualRate, section.Target)
	return section
}

func conversionSection(logger *zap.Logger, conversions config.Conversions) *ConversionSection {
	section := &ConversionSection{}

	for _, req := range conversions.Tips {
		section.Tips = append(section.Tips, TipLine{
			Request: req,
			Result:  convert.Tip(req.Bill, req.TipPercent, req.People),
		})
	}
	for _, req := range conversions.SalesTaxes {
		section.SalesTaxes = append(section.SalesTaxes, SalesTaxLine{
			Request: req,
			Result:  convert.SalesTax(req.Price, req.TaxPercent),
		})
	}
	for _, req := range conversions.Currencies {
		line := CurrencyLine{Request: req}
		amount, err := convert.Currency(req.Amount, req.From, req.To)
		if err != nil {
			line.Err = err.Error()
			logger.Debug(fmt.Sprintf("currency conversion failed: %v", err),
				zap.String("op", "report.conversionSection"),
			)
		} else {
			line.Result = amount
		}
		section.Currencies = append(section.Currencies, line)
	}

	return section
}

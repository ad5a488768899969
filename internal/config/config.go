// Package config defines the data structures related to configuration and
// includes functions for loading and validating the plan file.
package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/wvoelker/finance-engine/pkg/loans"
	"github.com/wvoelker/finance-engine/pkg/payoff"
	"github.com/wvoelker/finance-engine/pkg/validation"
)

// Configuration holds the full plan for finance-engine.
type Configuration struct {
	Plan        PayoffPlan       `yaml:"plan,omitempty"`
	Loans       []Loan           `yaml:"loans,omitempty"`
	Growth      []GrowthScenario `yaml:"growth,omitempty"`
	Goals       []Goal           `yaml:"goals,omitempty"`
	Conversions Conversions      `yaml:"conversions,omitempty"`
	Logging     LoggingConfig    `yaml:"logging,omitempty"`
	Output      OutputConfig     `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// PayoffPlan is the debt payoff input: the debts and the extra monthly
// budget applied on top of all minimums.
type PayoffPlan struct {
	Debts               []Debt  `yaml:"debts,omitempty"`
	ExtraMonthlyPayment float64 `yaml:"extraMonthlyPayment,omitempty"`
}

// Debt describes one liability in the plan file.
type Debt struct {
	Name           string  `yaml:"name,omitempty"`
	Balance        float64 `yaml:"balance,omitempty"`
	AnnualRate     float64 `yaml:"annualRate,omitempty"`
	MinimumPayment float64 `yaml:"minimumPayment,omitempty"`
}

// ToEngine converts the config debt into the engine's model.
func (d Debt) ToEngine() payoff.Debt {
	return payoff.Debt{
		Name:           d.Name,
		Balance:        d.Balance,
		AnnualRate:     d.AnnualRate,
		MinimumPayment: d.MinimumPayment,
	}
}

// EngineDebts converts the whole plan's debt list.
func (p PayoffPlan) EngineDebts() []payoff.Debt {
	debts := make([]payoff.Debt, 0, len(p.Debts))
	for _, d := range p.Debts {
		debts = append(debts, d.ToEngine())
	}
	return debts
}

// Loan describes a fixed-rate loan to amortize, with optional mortgage
// carrying costs. Either termMonths or termYears may be given; months win
// when both are set.
type Loan struct {
	Name              string  `yaml:"name,omitempty"`
	Principal         float64 `yaml:"principal,omitempty"`
	AnnualRate        float64 `yaml:"annualRate,omitempty"`
	TermMonths        int     `yaml:"termMonths,omitempty"`
	TermYears         int     `yaml:"termYears,omitempty"`
	PropertyTaxAnnual float64 `yaml:"propertyTaxAnnual,omitempty"`
	InsuranceAnnual   float64 `yaml:"insuranceAnnual,omitempty"`
	HOAMonthly        float64 `yaml:"hoaMonthly,omitempty"`
	PMIMonthly        float64 `yaml:"pmiMonthly,omitempty"`
	PMICutoffPercent  float64 `yaml:"pmiCutoffPercent,omitempty"`
}

// Term returns the loan term in months.
func (l Loan) Term() int {
	if l.TermMonths > 0 {
		return l.TermMonths
	}
	return l.TermYears * 12
}

// Costs returns the loan's non-amortizing monthly add-ons.
func (l Loan) Costs() loans.MortgageCosts {
	return loans.MortgageCosts{
		PropertyTaxAnnual: l.PropertyTaxAnnual,
		InsuranceAnnual:   l.InsuranceAnnual,
		HOAMonthly:        l.HOAMonthly,
		PMIMonthly:        l.PMIMonthly,
		PMICutoffPercent:  l.PMICutoffPercent,
	}
}

// HasCosts reports whether any carrying cost is configured.
func (l Loan) HasCosts() bool {
	return l.PropertyTaxAnnual > 0 || l.InsuranceAnnual > 0 || l.HOAMonthly > 0 || l.PMIMonthly > 0
}

// GrowthScenario describes one compound-growth projection. An optional
// inflation rate also reports the final value in today's purchasing power.
type GrowthScenario struct {
	Name                string  `yaml:"name,omitempty"`
	Principal           float64 `yaml:"principal,omitempty"`
	MonthlyContribution float64 `yaml:"monthlyContribution,omitempty"`
	AnnualRate          float64 `yaml:"annualRate,omitempty"`
	Years               int     `yaml:"years,omitempty"`
	CompoundsPerYear    int     `yaml:"compoundsPerYear,omitempty"`
	InflationRate       float64 `yaml:"inflationRate,omitempty"`
}

// Compounds returns the compounding frequency, defaulting to monthly.
func (g GrowthScenario) Compounds() int {
	if g.CompoundsPerYear == 0 {
		return 12
	}
	return g.CompoundsPerYear
}

// Goal describes a savings target. The target is either an explicit
// amount, or an emergency-fund style "months of expenses" pair.
type Goal struct {
	Name                string  `yaml:"name,omitempty"`
	StartingBalance     float64 `yaml:"startingBalance,omitempty"`
	MonthlyContribution float64 `yaml:"monthlyContribution,omitempty"`
	AnnualRate          float64 `yaml:"annualRate,omitempty"`
	TargetAmount        float64 `yaml:"targetAmount,omitempty"`
	MonthlyExpenses     float64 `yaml:"monthlyExpenses,omitempty"`
	TargetMonths        float64 `yaml:"targetMonths,omitempty"`
}

// Target resolves the goal amount: an explicit target wins, otherwise
// months-of-expenses.
func (g Goal) Target() float64 {
	if g.TargetAmount > 0 {
		return g.TargetAmount
	}
	return g.MonthlyExpenses * g.TargetMonths
}

// Conversions holds the everyday conversion requests in the plan file.
type Conversions struct {
	Tips       []TipRequest      `yaml:"tips,omitempty"`
	SalesTaxes []SalesTaxRequest `yaml:"salesTaxes,omitempty"`
	Currencies []CurrencyRequest `yaml:"currencies,omitempty"`
}

// TipRequest is one tip calculation.
type TipRequest struct {
	Bill       float64 `yaml:"bill,omitempty"`
	TipPercent float64 `yaml:"tipPercent,omitempty"`
	People     int     `yaml:"people,omitempty"`
}

// SalesTaxRequest is one sales tax calculation.
type SalesTaxRequest struct {
	Price      float64 `yaml:"price,omitempty"`
	TaxPercent float64 `yaml:"taxPercent,omitempty"`
}

// CurrencyRequest is one currency conversion.
type CurrencyRequest struct {
	Amount float64 `yaml:"amount,omitempty"`
	From   string  `yaml:"from,omitempty"`
	To     string  `yaml:"to,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "error reading config file %s", configPath)
	}

	var configuration Configuration
	if err := viper.Unmarshal(&configuration); err != nil {
		return nil, errors.Wrap(err, "unable to decode config into struct")
	}

	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration
// and returns warnings. Hard per-section failures are reported when the
// section runs; this pass surfaces the non-fatal findings up front.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(c.Plan.Debts) > 0 {
		result := validation.ValidateDebts(c.Plan.EngineDebts(), c.Plan.ExtraMonthlyPayment)
		warnings = append(warnings, result.Warnings...)
	}

	for _, g := range c.Growth {
		result := validation.ValidateGrowth(g.Principal, g.MonthlyContribution, g.AnnualRate, g.Years, g.Compounds())
		warnings = append(warnings, result.Warnings...)
	}

	if len(c.Plan.Debts) == 0 && len(c.Loans) == 0 && len(c.Growth) == 0 && len(c.Goals) == 0 &&
		len(c.Conversions.Tips) == 0 && len(c.Conversions.SalesTaxes) == 0 && len(c.Conversions.Currencies) == 0 {
		warnings = append(warnings, "configuration contains no calculations")
	}

	return warnings
}

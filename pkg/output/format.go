// Package output provides utilities for formatting and displaying report results.
package output

import (
	"fmt"

	"github.com/wvoelker/finance-engine/internal/report"
	"github.com/wvoelker/finance-engine/pkg/format"
	"github.com/wvoelker/finance-engine/pkg/payoff"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(result report.Report) {
	p := message.NewPrinter(language.English)

	for _, warning := range result.Warnings {
		fmt.Printf("warning: %s\n", warning)
	}

	if result.Payoff != nil {
		fmt.Printf("--- Debt Payoff ---\n")
		if len(result.Payoff.Skipped) > 0 {
			printSkipped(result.Payoff.Skipped)
		} else {
			comparison := result.Payoff.Comparison
			fmt.Printf("Strategy  | Payoff Time | Total Interest\n")
			fmt.Printf("________  | ___________ | ______________\n")
			printStrategy(p, comparison.Snowball.Method, comparison.Snowball.TotalMonths,
				comparison.Snowball.CapReached, comparison.Snowball.TotalInterest)
			printStrategy(p, comparison.Avalanche.Method, comparison.Avalanche.TotalMonths,
				comparison.Avalanche.CapReached, comparison.Avalanche.TotalInterest)
			if comparison.HasSavings {
				fmt.Printf("Avalanche saves %s in interest and %d month(s)\n",
					format.Currency(comparison.InterestSaved), comparison.MonthsSaved)
			}
		}
		fmt.Printf("\n")
	}

	for _, loan := range result.Loans {
		fmt.Printf("--- Loan: %s ---\n", sectionName(loan.Name))
		if len(loan.Skipped) > 0 {
			printSkipped(loan.Skipped)
			fmt.Printf("\n")
			continue
		}
		fmt.Printf("Monthly payment: %s over %d months\n",
			format.Currency(loan.Schedule.Payment), len(loan.Schedule.Entries))
		fmt.Printf("Total interest:  %s\n", format.Currency(loan.Schedule.TotalInterest))
		fmt.Printf("Total paid:      %s\n", format.Currency(loan.Schedule.TotalPaid()))
		if loan.HasCosts {
			fmt.Printf("All-in monthly cost (first month): %s\n", format.Currency(loan.AllInMonthlyCost))
		}
		fmt.Printf("\n")
	}

	for _, scenario := range result.Growth {
		fmt.Printf("--- Growth: %s ---\n", sectionName(scenario.Name))
		if len(scenario.Skipped) > 0 {
			printSkipped(scenario.Skipped)
			fmt.Printf("\n")
			continue
		}
		fmt.Printf("Year | Contributions | Interest      | Total\n")
		fmt.Printf("____ | _____________ | _____________ | _____\n")
		for _, year := range scenario.Projection.Yearly {
			_, _ = p.Printf("%4d | $%.2f | $%.2f | $%.2f\n",
				year.Year, year.Principal, year.Interest, year.Total)
		}
		fmt.Printf("Final value: %s (%s contributed, %s growth)\n",
			format.Currency(scenario.Projection.TotalValue),
			format.Currency(scenario.Projection.TotalContributions),
			format.Currency(scenario.Projection.TotalInterest))
		if scenario.InflationRate > 0 {
			fmt.Printf("In today's dollars at %s inflation: %s\n",
				format.Percent(scenario.InflationRate), format.Currency(scenario.InflationAdjusted))
		}
		fmt.Printf("\n")
	}

	for _, goal := range result.Goals {
		fmt.Printf("--- Goal: %s ---\n", sectionName(goal.Name))
		if len(goal.Skipped) > 0 {
			printSkipped(goal.Skipped)
			fmt.Printf("\n")
			continue
		}
		if goal.Reached {
			fmt.Printf("Target %s reached in %s\n", format.Currency(goal.Target), format.Months(goal.Months))
		} else {
			fmt.Printf("Target %s not reached within %s\n", format.Currency(goal.Target), format.Months(goal.Months))
		}
		fmt.Printf("\n")
	}

	if result.Conversions != nil {
		fmt.Printf("--- Conversions ---\n")
		for _, tip := range result.Conversions.Tips {
			fmt.Printf("Tip %s on %s: total %s, %s per person (%d people)\n",
				format.Percent(tip.Request.TipPercent), format.Currency(tip.Request.Bill),
				format.Currency(tip.Result.Total), format.Currency(tip.Result.PerPerson),
				maxInt(tip.Request.People, 1))
		}
		for _, tax := range result.Conversions.SalesTaxes {
			fmt.Printf("Sales tax %s on %s: %s tax, %s total\n",
				format.Percent(tax.Request.TaxPercent), format.Currency(tax.Request.Price),
				format.Currency(tax.Result.Tax), format.Currency(tax.Result.Total))
		}
		for _, currency := range result.Conversions.Currencies {
			if currency.Err != "" {
				fmt.Printf("%.2f %s -> %s: %s\n",
					currency.Request.Amount, currency.Request.From, currency.Request.To, currency.Err)
			} else {
				fmt.Printf("%.2f %s = %.2f %s\n",
					currency.Request.Amount, currency.Request.From, currency.Result, currency.Request.To)
			}
		}
		fmt.Printf("\n")
	}
}

func printStrategy(p *message.Printer, method string, months int, capReached bool, interest float64) {
	payoffTime := format.Months(months)
	if capReached {
		payoffTime = "not resolved"
	}
	_, _ = p.Printf("%-9s | %-11s | $%.2f\n", method, payoffTime, interest)
}

func printSkipped(reasons []string) {
	for _, reason := range reasons {
		fmt.Printf("skipped: %s\n", reason)
	}
}

func sectionName(name string) string {
	if name == "" {
		return "(unnamed)"
	}
	return name
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// CsvFormat outputs the detailed ledgers in comma-separated value format,
// one block per section type.
func CsvFormat(result report.Report) {
	if result.Payoff != nil && len(result.Payoff.Skipped) == 0 {
		fmt.Printf("\"strategy\",\"month\",\"debt\",\"payment\",\"principal\",\"interest\",\"balance\"\n")
		results := []payoff.PayoffResult{result.Payoff.Comparison.Snowball, result.Payoff.Comparison.Avalanche}
		for _, res := range results {
			for _, mp := range res.MonthlyBreakdown {
				fmt.Printf("\"%s\",\"%d\",\"%s\",\"%.2f\",\"%.2f\",\"%.2f\",\"%.2f\"\n",
					res.Method, mp.Month, mp.DebtName, mp.Payment,
					mp.PrincipalPayment, mp.InterestPayment, mp.RemainingBalance)
			}
		}
		fmt.Printf("\n")
	}

	for _, loan := range result.Loans {
		if len(loan.Skipped) > 0 {
			continue
		}
		fmt.Printf("\"loan\",\"month\",\"payment\",\"principal\",\"interest\",\"balance\"\n")
		for _, entry := range loan.Schedule.Entries {
			fmt.Printf("\"%s\",\"%d\",\"%.2f\",\"%.2f\",\"%.2f\",\"%.2f\"\n",
				sectionName(loan.Name), entry.Month, entry.Payment,
				entry.Principal, entry.Interest, entry.Balance)
		}
		fmt.Printf("\n")
	}

	for _, scenario := range result.Growth {
		if len(scenario.Skipped) > 0 {
			continue
		}
		fmt.Printf("\"scenario\",\"year\",\"contributions\",\"interest\",\"total\"\n")
		for _, year := range scenario.Projection.Yearly {
			fmt.Printf("\"%s\",\"%d\",\"%.2f\",\"%.2f\",\"%.2f\"\n",
				sectionName(scenario.Name), year.Year, year.Principal, year.Interest, year.Total)
		}
		fmt.Printf("\n")
	}
}

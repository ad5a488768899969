package output

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/wvoelker/finance-engine/internal/report"
	"github.com/wvoelker/finance-engine/pkg/growth"
	"github.com/wvoelker/finance-engine/pkg/loans"
	"github.com/wvoelker/finance-engine/pkg/payoff"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func sampleReport() report.Report {
	return report.Report{
		Payoff: &report.PayoffSection{
			Comparison: payoff.Comparison{
				Snowball: payoff.PayoffResult{
					Method: "Snowball", TotalMonths: 41, TotalInterest: 2522.10,
					MonthlyBreakdown: []payoff.MonthlyPayment{
						{Month: 1, DebtName: "Credit Card", Payment: 125, PrincipalPayment: 45.88, InterestPayment: 79.12, RemainingBalance: 4954.12},
					},
				},
				Avalanche: payoff.PayoffResult{
					Method: "Avalanche", TotalMonths: 40, TotalInterest: 2322.63,
					MonthlyBreakdown: []payoff.MonthlyPayment{
						{Month: 1, DebtName: "Credit Card", Payment: 125, PrincipalPayment: 45.88, InterestPayment: 79.12, RemainingBalance: 4954.12},
					},
				},
				HasSavings:    true,
				InterestSaved: 199.47,
				MonthsSaved:   1,
			},
		},
		Loans: []report.LoanSection{
			{
				Name: "Mortgage",
				Schedule: loans.Schedule{
					Payment:       2022.62,
					TotalInterest: 408143.24,
					Entries:       []loans.Entry{{Month: 1, Payment: 2022.62, Principal: 289.28, Interest: 1733.33, Balance: 319710.72}},
				},
				HasCosts:         true,
				AllInMonthlyCost: 2622.62,
			},
		},
		Growth: []report.GrowthSection{
			{
				Name: "Retirement",
				Projection: growth.Projection{
					TotalValue:         460354.52,
					TotalContributions: 160000,
					TotalInterest:      300354.52,
					Yearly: []growth.YearlyBreakdown{
						{Year: 0, Principal: 10000, Interest: 0, Total: 10000},
						{Year: 1, Principal: 16000, Interest: 911.55, Total: 16911.55},
					},
				},
			},
		},
		Goals: []report.GoalSection{
			{Name: "Emergency Fund", Target: 15000, Months: 27, Reached: true},
		},
		Warnings: []string{"sample warning"},
	}
}

func TestPrettyFormat(t *testing.T) {
	out := captureStdout(t, func() { PrettyFormat(sampleReport()) })

	for _, want := range []string{
		"warning: sample warning",
		"--- Debt Payoff ---",
		"Snowball",
		"Avalanche",
		"Avalanche saves $199.47 in interest and 1 month(s)",
		"--- Loan: Mortgage ---",
		"Monthly payment: $2,022.62 over 1 months",
		"All-in monthly cost (first month): $2,622.62",
		"--- Growth: Retirement ---",
		"Final value: $460,354.52",
		"--- Goal: Emergency Fund ---",
		"Target $15,000.00 reached in 2y 3m",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("PrettyFormat output missing %q\noutput:\n%s", want, out)
		}
	}
}

func TestPrettyFormatSkippedSection(t *testing.T) {
	result := report.Report{
		Payoff: &report.PayoffSection{Skipped: []string{"no eligible debts"}},
	}

	out := captureStdout(t, func() { PrettyFormat(result) })

	if !strings.Contains(out, "skipped: no eligible debts") {
		t.Errorf("expected skipped reason in output:\n%s", out)
	}
}

func TestPrettyFormatCapReached(t *testing.T) {
	result := report.Report{
		Payoff: &report.PayoffSection{
			Comparison: payoff.Comparison{
				Snowball:  payoff.PayoffResult{Method: "Snowball", TotalMonths: 600, TotalInterest: 60000, CapReached: true},
				Avalanche: payoff.PayoffResult{Method: "Avalanche", TotalMonths: 600, TotalInterest: 60000, CapReached: true},
			},
		},
	}

	out := captureStdout(t, func() { PrettyFormat(result) })

	if !strings.Contains(out, "not resolved") {
		t.Errorf("capped result should render as unresolved, got:\n%s", out)
	}
}

func TestCsvFormat(t *testing.T) {
	out := captureStdout(t, func() { CsvFormat(sampleReport()) })

	for _, want := range []string{
		`"strategy","month","debt","payment","principal","interest","balance"`,
		`"Snowball","1","Credit Card","125.00","45.88","79.12","4954.12"`,
		`"loan","month","payment","principal","interest","balance"`,
		`"Mortgage","1","2022.62","289.28","1733.33","319710.72"`,
		`"scenario","year","contributions","interest","total"`,
		`"Retirement","0","10000.00","0.00","10000.00"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("CsvFormat output missing %q\noutput:\n%s", want, out)
		}
	}
}

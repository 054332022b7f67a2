package http

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fincalc/domain"
)

var usd = formatter{locale: "en-US", currency: "USD"}

func TestResultViewScalars(t *testing.T) {
	view := usd.newResultView(&domain.RefinanceResult{
		CurrentPayment:  1000,
		NewPayment:      805.82,
		MonthlySavings:  194.18,
		BreakEvenMonths: 21,
		BreaksEven:      true,
		LifetimeSavings: 12345.6,
	})

	want := []resultItem{
		{"Current payment", "$1,000.00"},
		{"New payment", "$805.82"},
		{"Monthly savings", "$194.18"},
		{"Break even months", "21"},
		{"Breaks even", "Yes"},
		{"Lifetime savings", "$12,345.60"},
	}
	if diff := cmp.Diff(want, view.Items); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, view.Tables)
}

func TestResultViewNestedAndTables(t *testing.T) {
	view := usd.newResultView(&domain.DebtExitResult{
		Strategy:          domain.StrategyAvalanche,
		TotalDebt:         3000,
		TotalInterestPaid: 120.5,
		MonthsToPayoff:    2,
		MonthlyPlan: []domain.MonthlyPlan{
			{Month: 1, TotalPaid: 1500, Payments: []domain.MonthlyPayment{{DebtName: "Card", Payment: 1500}}},
			{Month: 2, TotalPaid: 1620.5},
		},
		Comparison: &domain.Comparison{
			Savings: domain.Savings{InterestSaved: 40, MonthsSaved: 1},
		},
		Explanation: "Pay the card first.",
	})

	assert.Equal(t, "Pay the card first.", view.Explanation)
	assert.Contains(t, view.Items, resultItem{"Strategy", "avalanche"})
	assert.Contains(t, view.Items, resultItem{"Comparison: savings: interest saved", "$40.00"})
	assert.Contains(t, view.Items, resultItem{"Comparison: savings: months saved", "1"})

	require.Len(t, view.Tables, 1)
	table := view.Tables[0]
	assert.Equal(t, "Monthly plan", table.Title)
	assert.Equal(t, []string{"Month", "Total paid"}, table.Columns)
	assert.Equal(t, [][]string{{"1", "$1,500.00"}, {"2", "$1,620.50"}}, table.Rows)
}

func TestResultViewPercentAndOptional(t *testing.T) {
	view := usd.newResultView(&domain.PercentageResult{PercentOf: 37.5})
	assert.Equal(t, []resultItem{{"Percent of", "37.5"}}, view.Items)

	change := 25.0
	view = usd.newResultView(&domain.PercentageResult{PercentOf: 37.5, PercentChange: &change})
	assert.Contains(t, view.Items, resultItem{"Percent change", "25%"})

	view = usd.newResultView(&domain.MortgageResult{LoanToValue: 80, MonthlyHOA: 50})
	assert.Contains(t, view.Items, resultItem{"LTV", "80%"})
	assert.Contains(t, view.Items, resultItem{"HOA", "$50.00"})
}

func TestSummarize(t *testing.T) {
	items := usd.summarize(map[string]any{
		"monthly_payment": 500.0,
		"months":          24.0,
		"apr":             6.7,
		"schedule":        []any{},
		"explanation":     "skip me",
	})

	want := []resultItem{
		{"APR", "6.7%"},
		{"Monthly payment", "$500.00"},
		{"Months", "24"},
	}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

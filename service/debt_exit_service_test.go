package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fincalc/domain"
	"fincalc/finance"
)

func sampleDebts() []domain.Debt {
	return []domain.Debt{
		{Name: "Card", Amount: 4500, InterestRate: 22.9, MinimumPayment: 135},
		{Name: "Car", Amount: 12000, InterestRate: 6.5, MinimumPayment: 290},
		{Name: "Student", Amount: 3000, InterestRate: 4.5, MinimumPayment: 60},
	}
}

func newDebtService() *DebtExitService {
	return NewDebtExitService(NewExplanationService("", ""))
}

func TestDebtExitPlan_Compare(t *testing.T) {
	service := newDebtService()

	result, err := service.CalculateDebtExitPlan(domain.DebtExitInput{
		Debts:                   sampleDebts(),
		AvailableMonthlyPayment: 800,
		Strategy:                domain.StrategyCompare,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Comparison)

	c := result.Comparison
	assert.LessOrEqual(t, c.Avalanche.TotalInterestPaid, c.Snowball.TotalInterestPaid)
	assert.GreaterOrEqual(t, c.Savings.InterestSaved, 0.0)
	assert.Equal(t, 19500.0, result.TotalDebt)
	assert.Len(t, result.MonthlyPlan, result.MonthsToPayoff)
	assert.NotEmpty(t, result.Explanation)

	last := result.MonthlyPlan[len(result.MonthlyPlan)-1]
	for _, p := range last.Payments {
		assert.LessOrEqual(t, p.RemainingBalance, DebtBalanceTolerance, p.DebtName)
	}
}

func TestDebtExitPlan_SnowballPaysSmallestFirst(t *testing.T) {
	service := newDebtService()

	result, err := service.CalculateDebtExitPlan(domain.DebtExitInput{
		Debts:                   sampleDebts(),
		AvailableMonthlyPayment: 800,
		Strategy:                domain.StrategySnowball,
	})
	require.NoError(t, err)
	assert.Nil(t, result.Comparison)

	// The surplus goes to the smallest balance, so Student leads the first month.
	first := result.MonthlyPlan[0]
	var student domain.MonthlyPayment
	for _, p := range first.Payments {
		if p.DebtName == "Student" {
			student = p
		}
	}
	assert.Greater(t, student.Payment, 60.0)
	assert.InDelta(t, 800, first.TotalPaid, 0.01)
}

func TestDebtExitPlan_Rejects(t *testing.T) {
	service := newDebtService()

	tests := []struct {
		name  string
		input domain.DebtExitInput
	}{
		{"no debts", domain.DebtExitInput{AvailableMonthlyPayment: 100, Strategy: domain.StrategySnowball}},
		{"budget below minimums", domain.DebtExitInput{Debts: sampleDebts(), AvailableMonthlyPayment: 300, Strategy: domain.StrategySnowball}},
		{"unknown strategy", domain.DebtExitInput{Debts: sampleDebts(), AvailableMonthlyPayment: 800, Strategy: "random"}},
		{"duplicate names", domain.DebtExitInput{
			Debts: []domain.Debt{
				{Name: "A", Amount: 100, InterestRate: 5, MinimumPayment: 10},
				{Name: "A", Amount: 200, InterestRate: 5, MinimumPayment: 10},
			},
			AvailableMonthlyPayment: 100,
			Strategy:                domain.StrategyAvalanche,
		}},
		{"minimum below interest", domain.DebtExitInput{
			Debts:                   []domain.Debt{{Name: "A", Amount: 10000, InterestRate: 24, MinimumPayment: 50}},
			AvailableMonthlyPayment: 500,
			Strategy:                domain.StrategyAvalanche,
		}},
		{"not repaid within the month limit", domain.DebtExitInput{
			Debts:                   []domain.Debt{{Name: "Mortgage", Amount: 100000, InterestRate: 5.99, MinimumPayment: 500}},
			AvailableMonthlyPayment: 500,
			Strategy:                domain.StrategySnowball,
		}},
		{"compare not repaid within the month limit", domain.DebtExitInput{
			Debts:                   []domain.Debt{{Name: "Mortgage", Amount: 100000, InterestRate: 5.99, MinimumPayment: 500}},
			AvailableMonthlyPayment: 500,
			Strategy:                domain.StrategyCompare,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CalculateDebtExitPlan(tt.input)
			assert.True(t, domain.IsValidation(err), "got %v", err)
		})
	}
}

func TestDebtExitPlan_MonthLimit(t *testing.T) {
	service := newDebtService()

	_, err := service.CalculateDebtExitPlan(domain.DebtExitInput{
		Debts:                   []domain.Debt{{Name: "Mortgage", Amount: 100000, InterestRate: 5.99, MinimumPayment: 500}},
		AvailableMonthlyPayment: 500,
		Strategy:                domain.StrategySnowball,
	})
	var ve domain.ValidationError
	require.True(t, errors.As(err, &ve), "got %v", err)
	assert.Equal(t, "available_monthly_payment", ve.Field)
	assert.Contains(t, ve.Message, "600 months")
}

func TestDebtExitPlan_MinimumEqualsInterest(t *testing.T) {
	service := newDebtService()

	debt := domain.Debt{Name: "Loan", Amount: 12000, InterestRate: 12}
	debt.MinimumPayment = debt.Amount * finance.MonthlyRate(debt.InterestRate)

	t.Run("surplus pays it down", func(t *testing.T) {
		result, err := service.CalculateDebtExitPlan(domain.DebtExitInput{
			Debts:                   []domain.Debt{debt},
			AvailableMonthlyPayment: 500,
			Strategy:                domain.StrategyAvalanche,
		})
		require.NoError(t, err)
		assert.Less(t, result.MonthsToPayoff, MaxDebtPayoffMonths)
		assert.InDelta(t, 500, result.MonthlyPlan[0].TotalPaid, 0.01)

		last := result.MonthlyPlan[len(result.MonthlyPlan)-1]
		require.Len(t, last.Payments, 1)
		assert.LessOrEqual(t, last.Payments[0].RemainingBalance, DebtBalanceTolerance)
	})

	t.Run("interest only never clears", func(t *testing.T) {
		_, err := service.CalculateDebtExitPlan(domain.DebtExitInput{
			Debts:                   []domain.Debt{debt},
			AvailableMonthlyPayment: debt.MinimumPayment,
			Strategy:                domain.StrategySnowball,
		})
		assert.True(t, domain.IsValidation(err), "got %v", err)
	})
}

func TestCreditCardPayoff(t *testing.T) {
	service := newDebtService()

	result, err := service.CalculateCreditCardPayoff(domain.CreditCardInput{
		Balance:        6000,
		APR:            24.99,
		MonthlyPayment: 250,
	})
	require.NoError(t, err)
	assert.Equal(t, 34, result.Months)
	assert.InDelta(t, 2403.20, result.TotalInterest, 0.01)
	assert.InDelta(t, 8403.20, result.TotalPaid, 0.01)
}

func TestCreditCardPayoff_ZeroAPR(t *testing.T) {
	service := newDebtService()

	result, err := service.CalculateCreditCardPayoff(domain.CreditCardInput{
		Balance:        1000,
		MonthlyPayment: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, result.Months)
	assert.Zero(t, result.TotalInterest)
}

func TestCreditCardPayoff_PaymentTooSmall(t *testing.T) {
	service := newDebtService()

	_, err := service.CalculateCreditCardPayoff(domain.CreditCardInput{
		Balance:        6000,
		APR:            24,
		MonthlyPayment: 120,
	})
	assert.True(t, domain.IsValidation(err))
}

package service

import (
	"math"
	"slices"

	"fincalc/domain"
	"fincalc/finance"
)

// SavingsService covers the growth calculators: compound interest,
// savings goal and retirement.
type SavingsService struct{}

func NewSavingsService() *SavingsService {
	return &SavingsService{}
}

func (s *SavingsService) CompoundInterest(
	input domain.CompoundInterestInput,
) (domain.CompoundInterestResult, error) {

	if err := firstError(
		nonNegativeAmount("principal", input.Principal, MaxLoanAmount),
		interestRate("annual_rate", input.InterestRate),
		years("years", input.Years, 1),
		nonNegativeAmount("monthly_contribution", input.MonthlyContribution, MaxLoanAmount),
	); err != nil {
		return domain.CompoundInterestResult{}, err
	}
	if input.CompoundsPerYear == 0 {
		input.CompoundsPerYear = finance.MonthsPerYear
	}
	if !slices.Contains(AllowedCompounding, input.CompoundsPerYear) {
		return domain.CompoundInterestResult{}, domain.Invalid("compounds_per_year",
			"must be one of %v", AllowedCompounding)
	}
	if input.Principal == 0 && input.MonthlyContribution == 0 {
		return domain.CompoundInterestResult{}, domain.Invalid("principal",
			"principal or monthly contribution must be greater than zero")
	}

	fv := finance.FutureValue(input.Principal, input.InterestRate, input.Years, input.CompoundsPerYear, input.MonthlyContribution)
	if err := representable("annual_rate", fv); err != nil {
		return domain.CompoundInterestResult{}, err
	}
	contributions := input.Principal + input.MonthlyContribution*float64(input.Years*finance.MonthsPerYear)

	return domain.CompoundInterestResult{
		FutureValue:        finance.Round2(fv),
		TotalContributions: finance.Round2(contributions),
		TotalInterest:      finance.Round2(fv - contributions),
		Yearly:             finance.Grow(input.Principal, input.InterestRate, input.Years, input.CompoundsPerYear, input.MonthlyContribution),
	}, nil
}

// SavingsGoal finds the monthly deposit that reaches the goal in time,
// with interest compounded monthly.
func (s *SavingsService) SavingsGoal(
	input domain.SavingsGoalInput,
) (domain.SavingsGoalResult, error) {

	if err := firstError(
		positiveAmount("goal_amount", input.GoalAmount, MaxLoanAmount),
		nonNegativeAmount("current_savings", input.CurrentSavings, MaxLoanAmount),
		interestRate("annual_rate", input.InterestRate),
		years("years", input.Years, 1),
	); err != nil {
		return domain.SavingsGoalResult{}, err
	}

	rate := finance.MonthlyRate(input.InterestRate)
	months := input.Years * finance.MonthsPerYear
	growth := math.Pow(1+rate, float64(months))
	grown := input.CurrentSavings * growth
	if err := representable("annual_rate", growth, grown); err != nil {
		return domain.SavingsGoalResult{}, err
	}

	if grown >= input.GoalAmount {
		return domain.SavingsGoalResult{
			TotalContributions: finance.Round2(input.CurrentSavings),
			InterestEarned:     finance.Round2(grown - input.CurrentSavings),
			AlreadyReached:     true,
		}, nil
	}

	deposit := finance.PaymentForFutureValue(input.GoalAmount, input.CurrentSavings, rate, months)
	contributions := input.CurrentSavings + deposit*float64(months)

	return domain.SavingsGoalResult{
		MonthlyContribution: finance.Round2(deposit),
		TotalContributions:  finance.Round2(contributions),
		InterestEarned:      finance.Round2(input.GoalAmount - contributions),
	}, nil
}

// Retirement projects the balance at retirement age and the income a
// fixed withdrawal rate draws from it.
func (s *SavingsService) Retirement(
	input domain.RetirementInput,
) (domain.RetirementResult, error) {

	if input.WithdrawalRate == 0 {
		input.WithdrawalRate = DefaultWithdrawalRate
	}
	if err := firstError(
		nonNegativeAmount("current_savings", input.CurrentSavings, MaxLoanAmount),
		nonNegativeAmount("monthly_contribution", input.MonthlyContribution, MaxLoanAmount),
		interestRate("annual_return", input.AnnualReturn),
		positiveAmount("withdrawal_rate", input.WithdrawalRate, 100),
	); err != nil {
		return domain.RetirementResult{}, err
	}
	if input.CurrentAge < 0 || input.CurrentAge > MaxAge {
		return domain.RetirementResult{}, domain.Invalid("current_age", "must be between 0 and %d", MaxAge)
	}
	if input.RetirementAge <= input.CurrentAge || input.RetirementAge > MaxAge {
		return domain.RetirementResult{}, domain.Invalid("retirement_age",
			"must be after the current age and at most %d", MaxAge)
	}

	span := input.RetirementAge - input.CurrentAge
	balance := finance.FutureValue(input.CurrentSavings, input.AnnualReturn, span, finance.MonthsPerYear, input.MonthlyContribution)
	if err := representable("annual_return", balance); err != nil {
		return domain.RetirementResult{}, err
	}
	contributions := input.CurrentSavings + input.MonthlyContribution*float64(span*finance.MonthsPerYear)
	annual := balance * input.WithdrawalRate / 100

	return domain.RetirementResult{
		YearsToRetirement:   span,
		BalanceAtRetirement: finance.Round2(balance),
		TotalContributions:  finance.Round2(contributions),
		AnnualIncome:        finance.Round2(annual),
		MonthlyIncome:       finance.Round2(annual / finance.MonthsPerYear),
	}, nil
}

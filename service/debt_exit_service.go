package service

import (
	"log/slog"
	"math"
	"sort"

	"fincalc/domain"
	"fincalc/finance"
)

type DebtExitService struct {
	explainer *ExplanationService
}

func NewDebtExitService(explainer *ExplanationService) *DebtExitService {
	return &DebtExitService{explainer: explainer}
}

// CalculateDebtExitPlan simulates paying every debt off with the snowball or
// avalanche ordering, or both when the strategy is "compare".
func (s *DebtExitService) CalculateDebtExitPlan(
	input domain.DebtExitInput,
) (domain.DebtExitResult, error) {

	if len(input.Debts) == 0 {
		return domain.DebtExitResult{}, domain.Invalid("debts", "at least one debt is required")
	}
	if len(input.Debts) > MaxDebtsPerRequest {
		return domain.DebtExitResult{}, domain.Invalid("debts", "at most %d debts are allowed", MaxDebtsPerRequest)
	}
	if err := positiveAmount("available_monthly_payment", input.AvailableMonthlyPayment, MaxDebtAmount); err != nil {
		return domain.DebtExitResult{}, err
	}

	names := make(map[string]bool)
	for _, debt := range input.Debts {
		if debt.Name == "" {
			return domain.DebtExitResult{}, domain.Invalid("debts.name", "must not be empty")
		}
		if names[debt.Name] {
			return domain.DebtExitResult{}, domain.Invalid("debts.name", "duplicate debt name %q", debt.Name)
		}
		names[debt.Name] = true
	}

	switch input.Strategy {
	case domain.StrategySnowball, domain.StrategyAvalanche, domain.StrategyCompare:
	default:
		return domain.DebtExitResult{}, domain.Invalid("strategy", "must be snowball, avalanche or compare")
	}

	totalMinimumPayments := 0.0
	for _, debt := range input.Debts {
		if err := firstError(
			positiveAmount("debts.amount", debt.Amount, MaxDebtAmount),
			interestRate("debts.annual_rate", debt.InterestRate),
			positiveAmount("debts.minimum_payment", debt.MinimumPayment, MaxDebtAmount),
		); err != nil {
			return domain.DebtExitResult{}, err
		}
		// The minimum payment has to cover at least the monthly interest.
		monthlyInterest := debt.Amount * finance.MonthlyRate(debt.InterestRate)
		if debt.MinimumPayment < monthlyInterest {
			return domain.DebtExitResult{}, domain.Invalid("debts.minimum_payment",
				"minimum payment for %s ($%.2f) is below the monthly interest ($%.2f)",
				debt.Name, debt.MinimumPayment, monthlyInterest)
		}
		totalMinimumPayments += debt.MinimumPayment
	}

	if totalMinimumPayments > input.AvailableMonthlyPayment {
		return domain.DebtExitResult{}, domain.Invalid("available_monthly_payment",
			"does not cover the minimum payments ($%.2f)", totalMinimumPayments)
	}

	var result domain.DebtExitResult

	if input.Strategy == domain.StrategyCompare {
		snowballResult, snowballPaid := s.calculateStrategy(input, domain.StrategySnowball)
		avalancheResult, avalanchePaid := s.calculateStrategy(input, domain.StrategyAvalanche)
		if !snowballPaid || !avalanchePaid {
			return domain.DebtExitResult{}, errNotRepaid()
		}

		// The cheaper plan becomes the main result.
		if avalancheResult.TotalInterestPaid < snowballResult.TotalInterestPaid {
			result = avalancheResult
		} else {
			result = snowballResult
		}

		result.Comparison = &domain.Comparison{
			Snowball: domain.StrategyResult{
				TotalInterestPaid: snowballResult.TotalInterestPaid,
				MonthsToPayoff:    snowballResult.MonthsToPayoff,
			},
			Avalanche: domain.StrategyResult{
				TotalInterestPaid: avalancheResult.TotalInterestPaid,
				MonthsToPayoff:    avalancheResult.MonthsToPayoff,
			},
			Savings: domain.Savings{
				InterestSaved: finance.Round2(
					math.Max(0, snowballResult.TotalInterestPaid-avalancheResult.TotalInterestPaid),
				),
				MonthsSaved: snowballResult.MonthsToPayoff - avalancheResult.MonthsToPayoff,
			},
		}
	} else {
		var paid bool
		result, paid = s.calculateStrategy(input, input.Strategy)
		if !paid {
			return domain.DebtExitResult{}, errNotRepaid()
		}
	}

	result.Explanation = s.explainer.DebtStrategy(result)
	return result, nil
}

func errNotRepaid() error {
	return domain.Invalid("available_monthly_payment",
		"debts are not repaid within %d months", MaxDebtPayoffMonths)
}

// calculateStrategy simulates one ordering month by month. It reports false
// when a balance is still owed after MaxDebtPayoffMonths.
func (s *DebtExitService) calculateStrategy(
	input domain.DebtExitInput,
	strategy string,
) (domain.DebtExitResult, bool) {

	debts := make([]domain.Debt, len(input.Debts))
	copy(debts, input.Debts)

	if strategy == domain.StrategySnowball {
		// Smallest balance first.
		sort.SliceStable(debts, func(i, j int) bool {
			return debts[i].Amount < debts[j].Amount
		})
	} else {
		// Highest rate first.
		sort.SliceStable(debts, func(i, j int) bool {
			return debts[i].InterestRate > debts[j].InterestRate
		})
	}

	balances := make(map[string]float64)
	for _, debt := range debts {
		balances[debt.Name] = debt.Amount
	}

	monthlyPlan := []domain.MonthlyPlan{}
	totalInterestPaid := 0.0
	month := 0
	allPaid := false

	for {
		month++
		available := input.AvailableMonthlyPayment
		payments := []domain.MonthlyPayment{}
		totalPaid := 0.0

		// Accrue the month's interest on every open debt.
		interestMap := make(map[string]float64)
		for _, debt := range debts {
			if balances[debt.Name] <= 0 {
				continue
			}
			interest := balances[debt.Name] * finance.MonthlyRate(debt.InterestRate)
			interestMap[debt.Name] = interest
			totalInterestPaid += interest
		}

		// First pass: minimum payments, never less than the interest due.
		for _, debt := range debts {
			if balances[debt.Name] <= 0 {
				continue
			}

			interest := interestMap[debt.Name]
			payment := math.Max(debt.MinimumPayment, interest)
			payment = math.Min(payment, balances[debt.Name]+interest)
			payment = math.Min(payment, available)

			if payment > 0 {
				principalPaid := math.Max(0, payment-interest)
				balances[debt.Name] = math.Max(0, balances[debt.Name]-principalPaid)

				payments = append(payments, domain.MonthlyPayment{
					DebtName:         debt.Name,
					Payment:          finance.Round2(payment),
					RemainingBalance: finance.Round2(balances[debt.Name]),
				})

				available -= payment
				totalPaid += payment
			}
		}

		// Second pass: the surplus goes to the first open debt in strategy order.
		if available > 0 {
			for _, debt := range debts {
				if balances[debt.Name] <= 0 {
					continue
				}
				extraPayment := math.Min(available, balances[debt.Name])
				for i := range payments {
					if payments[i].DebtName == debt.Name {
						balances[debt.Name] = math.Max(0, balances[debt.Name]-extraPayment)
						payments[i].Payment = finance.Round2(payments[i].Payment + extraPayment)
						payments[i].RemainingBalance = finance.Round2(balances[debt.Name])
						totalPaid += extraPayment
						available -= extraPayment
						break
					}
				}
				break
			}
		}

		monthlyPlan = append(monthlyPlan, domain.MonthlyPlan{
			Month:     month,
			Payments:  payments,
			TotalPaid: finance.Round2(totalPaid),
		})

		allPaid = true
		for _, debt := range debts {
			if balances[debt.Name] > DebtBalanceTolerance {
				allPaid = false
				break
			}
		}
		if allPaid {
			break
		}

		if month >= MaxDebtPayoffMonths {
			slog.Warn("debt payoff simulation hit the month limit", "limit", MaxDebtPayoffMonths, "strategy", strategy)
			break
		}
	}

	totalDebt := 0.0
	for _, debt := range input.Debts {
		totalDebt += debt.Amount
	}

	return domain.DebtExitResult{
		Strategy:          strategy,
		TotalDebt:         finance.Round2(totalDebt),
		TotalInterestPaid: finance.Round2(totalInterestPaid),
		MonthsToPayoff:    month,
		MonthlyPlan:       monthlyPlan,
	}, allPaid
}

// CalculateCreditCardPayoff runs a fixed monthly payment against a card
// balance until it is cleared.
func (s *DebtExitService) CalculateCreditCardPayoff(
	input domain.CreditCardInput,
) (domain.CreditCardResult, error) {

	if err := firstError(
		positiveAmount("balance", input.Balance, MaxDebtAmount),
		interestRate("apr", input.APR),
		positiveAmount("monthly_payment", input.MonthlyPayment, MaxDebtAmount),
	); err != nil {
		return domain.CreditCardResult{}, err
	}

	rate := finance.MonthlyRate(input.APR)
	if input.MonthlyPayment <= input.Balance*rate {
		return domain.CreditCardResult{}, domain.Invalid("monthly_payment",
			"must exceed the first month's interest of $%.2f", input.Balance*rate)
	}

	balance := input.Balance
	interestTotal := 0.0
	paid := 0.0
	months := 0
	for balance > DebtBalanceTolerance && months < MaxDebtPayoffMonths {
		months++
		interest := balance * rate
		interestTotal += interest
		payment := math.Min(input.MonthlyPayment, balance+interest)
		balance = balance + interest - payment
		paid += payment
	}
	if balance > DebtBalanceTolerance {
		return domain.CreditCardResult{}, domain.Invalid("monthly_payment",
			"balance is not repaid within %d months", MaxDebtPayoffMonths)
	}

	return domain.CreditCardResult{
		Months:        months,
		TotalInterest: finance.Round2(interestTotal),
		TotalPaid:     finance.Round2(paid),
	}, nil
}

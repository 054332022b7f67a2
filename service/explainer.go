package service

import (
	"fmt"
	"strings"

	"fincalc/domain"
	"fincalc/finance"
)

// ExplanationService turns calculator results into short plain-language
// summaries. Amounts are formatted for the configured locale and currency.
type ExplanationService struct {
	locale   string
	currency string
}

func NewExplanationService(locale, currency string) *ExplanationService {
	if locale == "" {
		locale = finance.DefaultLocale
	}
	if currency == "" {
		currency = finance.DefaultCurrency
	}
	return &ExplanationService{locale: locale, currency: currency}
}

func (s *ExplanationService) money(v float64) string {
	return finance.DisplayCurrency(v, s.locale, s.currency)
}

// TermRecommendation explains why the top term was chosen and how it
// compares with the runner-up alternatives.
func (s *ExplanationService) TermRecommendation(
	input domain.TermRecommendationInput,
	top domain.TermRecommendation,
	alternatives []domain.TermRecommendation,
) string {
	var b strings.Builder

	switch input.Preference {
	case domain.PreferenceMinimizeInterest:
		fmt.Fprintf(&b, "A %d-month term keeps total interest at %s for a monthly payment of %s.",
			top.TermMonths, s.money(top.TotalInterest), s.money(top.MonthlyPayment))
	case domain.PreferenceMinimizePayment:
		fmt.Fprintf(&b, "A %d-month term lowers the monthly payment to %s, with %s of interest over the life of the loan.",
			top.TermMonths, s.money(top.MonthlyPayment), s.money(top.TotalInterest))
	default:
		fmt.Fprintf(&b, "A %d-month term balances a monthly payment of %s against %s of total interest.",
			top.TermMonths, s.money(top.MonthlyPayment), s.money(top.TotalInterest))
	}

	if len(alternatives) > 0 {
		parts := make([]string, 0, len(alternatives))
		for _, alt := range alternatives {
			parts = append(parts, fmt.Sprintf("%d months at %s", alt.TermMonths, s.money(alt.MonthlyPayment)))
		}
		fmt.Fprintf(&b, " Close alternatives: %s.", strings.Join(parts, ", "))
	}
	return b.String()
}

// DebtStrategy summarises a payoff plan and, when both strategies were
// simulated, what choosing the cheaper one saves.
func (s *ExplanationService) DebtStrategy(result domain.DebtExitResult) string {
	var b strings.Builder

	name, tip := "snowball", "Paying the smallest balances first clears accounts quickly and keeps momentum up."
	if result.Strategy == domain.StrategyAvalanche {
		name, tip = "avalanche", "Paying the highest rates first keeps the total interest as low as possible."
	}

	fmt.Fprintf(&b, "With the %s method you pay %s in interest on %s of debt and are debt-free in %s.",
		name, s.money(result.TotalInterestPaid), s.money(result.TotalDebt), months(result.MonthsToPayoff))
	b.WriteString(" ")
	b.WriteString(tip)

	if c := result.Comparison; c != nil {
		if c.Savings.InterestSaved > 0 || c.Savings.MonthsSaved > 0 {
			fmt.Fprintf(&b, " Compared with snowball, avalanche saves %s and %s.",
				s.money(c.Savings.InterestSaved), months(c.Savings.MonthsSaved))
		} else {
			b.WriteString(" Both strategies cost the same for these debts.")
		}
	}
	return b.String()
}

func months(n int) string {
	if n == 1 {
		return "1 month"
	}
	if n >= 24 {
		return fmt.Sprintf("%d months (%.1f years)", n, float64(n)/12)
	}
	return fmt.Sprintf("%d months", n)
}

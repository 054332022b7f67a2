package service

import (
	"log/slog"
	"sort"

	"fincalc/domain"
	"fincalc/finance"
)

type TermRecommendationService struct {
	loanService *LoanService
	explainer   *ExplanationService
}

func NewTermRecommendationService(loanService *LoanService, explainer *ExplanationService) *TermRecommendationService {
	return &TermRecommendationService{
		loanService: loanService,
		explainer:   explainer,
	}
}

// RecommendTerm scores every term in the requested range and ranks the ones
// whose payment fits the monthly budget.
func (s *TermRecommendationService) RecommendTerm(
	input domain.TermRecommendationInput,
) (domain.TermRecommendationResult, error) {

	if err := firstError(
		positiveAmount("amount", input.Amount, MaxLoanAmount),
		interestRate("annual_rate", input.InterestRate),
		termMonths("min_term_months", input.MinTermMonths),
		termMonths("max_term_months", input.MaxTermMonths),
		positiveAmount("max_monthly_payment", input.MaxMonthlyPayment, MaxLoanAmount),
	); err != nil {
		return domain.TermRecommendationResult{}, err
	}
	if input.MinTermMonths > input.MaxTermMonths {
		return domain.TermRecommendationResult{}, domain.Invalid("min_term_months", "must not exceed max_term_months")
	}
	// Wide ranges make the scan expensive.
	if input.MaxTermMonths-input.MinTermMonths > MaxTermRangeMonths {
		return domain.TermRecommendationResult{}, domain.Invalid("max_term_months",
			"term range exceeds the maximum of %d months", MaxTermRangeMonths)
	}

	switch input.Preference {
	case domain.PreferenceMinimizeInterest, domain.PreferenceMinimizePayment, domain.PreferenceBalanced:
	default:
		return domain.TermRecommendationResult{}, domain.Invalid("preference",
			"must be minimize_interest, minimize_payment or balanced")
	}

	recommendations := []domain.TermRecommendation{}

	for term := input.MinTermMonths; term <= input.MaxTermMonths; term++ {
		result, err := s.loanService.CalculateLoan(domain.LoanInput{
			Amount:       input.Amount,
			InterestRate: input.InterestRate,
			TermMonths:   term,
		})
		if err != nil {
			slog.Warn("failed to calculate loan for term", "term", term, "error", err)
			continue
		}

		if result.MonthlyPayment > input.MaxMonthlyPayment {
			continue
		}

		recommendations = append(recommendations, domain.TermRecommendation{
			TermMonths:     term,
			MonthlyPayment: result.MonthlyPayment,
			TotalInterest:  result.TotalInterest,
			Score:          s.calculateScore(result, input, term),
			Reason:         s.generateReason(input),
		})
	}

	if len(recommendations) == 0 {
		return domain.TermRecommendationResult{}, domain.Invalid("max_monthly_payment",
			"no term in the range keeps the payment under the maximum")
	}

	// Highest score first; ties go to the shorter term.
	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	const maxAlternatives = 3
	alternatives := recommendations[1:min(len(recommendations), maxAlternatives+1)]
	recommendations[0].Reason = s.explainer.TermRecommendation(input, recommendations[0], alternatives)

	return domain.TermRecommendationResult{
		RecommendedTerm: recommendations[0].TermMonths,
		Recommendations: recommendations,
	}, nil
}

func (s *TermRecommendationService) calculateScore(
	result domain.LoanResult,
	input domain.TermRecommendationInput,
	term int,
) float64 {
	// Each component is normalised to 0-10.
	maxPossibleInterest := input.Amount * (input.InterestRate / 100) * float64(input.MaxTermMonths) / 12
	minPossibleInterest := input.Amount * (input.InterestRate / 100) * float64(input.MinTermMonths) / 12

	interestRange := maxPossibleInterest - minPossibleInterest
	floorPayment := input.Amount / float64(input.MaxTermMonths)
	paymentRange := input.MaxMonthlyPayment - floorPayment

	interestScore := 0.0
	paymentScore := 0.0
	termScore := 10.0

	if interestRange > 0 {
		interestScore = 10.0 * (1.0 - (result.TotalInterest-minPossibleInterest)/interestRange)
	}
	if paymentRange > 0 {
		paymentScore = 10.0 * (1.0 - (result.MonthlyPayment-floorPayment)/paymentRange)
	}
	if span := input.MaxTermMonths - input.MinTermMonths; span > 0 {
		termScore = 10.0 * (1.0 - float64(term-input.MinTermMonths)/float64(span))
	}

	var score float64
	switch input.Preference {
	case domain.PreferenceMinimizeInterest:
		score = 0.6*interestScore + 0.2*paymentScore + 0.2*termScore
	case domain.PreferenceMinimizePayment:
		score = 0.2*interestScore + 0.6*paymentScore + 0.2*termScore
	default:
		score = 0.4*interestScore + 0.4*paymentScore + 0.2*termScore
	}

	return finance.Round2(score)
}

func (s *TermRecommendationService) generateReason(input domain.TermRecommendationInput) string {
	switch input.Preference {
	case domain.PreferenceMinimizeInterest:
		return "Term chosen to minimise the total interest paid"
	case domain.PreferenceMinimizePayment:
		return "Term chosen to minimise the monthly payment"
	default:
		return "Balance between monthly payment and total cost"
	}
}

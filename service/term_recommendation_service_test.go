package service

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fincalc/domain"
)

func newTermService() *TermRecommendationService {
	return NewTermRecommendationService(NewLoanService(), NewExplanationService("", ""))
}

func TestRecommendTerm_FitsBudget(t *testing.T) {
	service := newTermService()

	for _, pref := range []string{
		domain.PreferenceBalanced,
		domain.PreferenceMinimizeInterest,
		domain.PreferenceMinimizePayment,
	} {
		t.Run(pref, func(t *testing.T) {
			result, err := service.RecommendTerm(domain.TermRecommendationInput{
				Amount:            20000,
				InterestRate:      9,
				MinTermMonths:     12,
				MaxTermMonths:     72,
				MaxMonthlyPayment: 600,
				Preference:        pref,
			})
			require.NoError(t, err)
			require.NotEmpty(t, result.Recommendations)

			assert.Equal(t, result.Recommendations[0].TermMonths, result.RecommendedTerm)
			assert.True(t, sort.SliceIsSorted(result.Recommendations, func(i, j int) bool {
				return result.Recommendations[i].Score > result.Recommendations[j].Score
			}))
			for _, r := range result.Recommendations {
				assert.LessOrEqual(t, r.MonthlyPayment, 600.0)
			}
			assert.Contains(t, result.Recommendations[0].Reason, "-month term")
		})
	}
}

func TestRecommendTerm_MinimizeInterestPrefersShortestTerm(t *testing.T) {
	service := newTermService()

	result, err := service.RecommendTerm(domain.TermRecommendationInput{
		Amount:            20000,
		InterestRate:      9,
		MinTermMonths:     12,
		MaxTermMonths:     72,
		MaxMonthlyPayment: 600,
		Preference:        domain.PreferenceMinimizeInterest,
	})
	require.NoError(t, err)

	shortest := result.Recommendations[0].TermMonths
	for _, r := range result.Recommendations {
		shortest = min(shortest, r.TermMonths)
	}
	assert.Equal(t, shortest, result.RecommendedTerm)
}

func TestRecommendTerm_Rejects(t *testing.T) {
	service := newTermService()

	base := domain.TermRecommendationInput{
		Amount:            20000,
		InterestRate:      9,
		MinTermMonths:     12,
		MaxTermMonths:     72,
		MaxMonthlyPayment: 600,
		Preference:        domain.PreferenceBalanced,
	}

	tests := []struct {
		name   string
		mutate func(*domain.TermRecommendationInput)
	}{
		{"min above max", func(in *domain.TermRecommendationInput) { in.MinTermMonths = 80 }},
		{"range too wide", func(in *domain.TermRecommendationInput) { in.MinTermMonths, in.MaxTermMonths = 12, 360 }},
		{"bad preference", func(in *domain.TermRecommendationInput) { in.Preference = "cheapest" }},
		{"budget too small", func(in *domain.TermRecommendationInput) { in.MaxMonthlyPayment = 50 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.mutate(&in)
			_, err := service.RecommendTerm(in)
			assert.True(t, domain.IsValidation(err), "got %v", err)
		})
	}
}

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fincalc/domain"
)

func TestDefaultCatalog(t *testing.T) {
	catalog := NewDefaultCatalog(NewExplanationService("", ""))

	want := []string{
		"mortgage", "loan", "amortization", "apr", "auto-loan", "refinance", "loan-term",
		"debt-payoff", "credit-card-payoff", "compound-interest", "savings-goal",
		"retirement", "inflation", "percentage",
	}
	assert.Equal(t, want, catalog.Slugs())

	for _, info := range catalog.Infos() {
		assert.NotEmpty(t, info.Title, info.Slug)
		assert.NotEmpty(t, info.Description, info.Slug)
		assert.NotEmpty(t, info.Fields, info.Slug)
		assert.Equal(t, "/calculators/"+info.Slug, info.Path())
	}
}

func TestCatalog_Get(t *testing.T) {
	catalog := NewDefaultCatalog(NewExplanationService("", ""))

	calc, err := catalog.Get("apr")
	require.NoError(t, err)
	assert.IsType(t, &domain.APRInput{}, calc.NewInput())
	assert.IsType(t, &domain.APRResult{}, calc.NewResult())

	_, err = catalog.Get("lottery")
	assert.ErrorIs(t, err, domain.ErrUnknownCalculator)
}

func TestCatalog_RunRejectsWrongType(t *testing.T) {
	catalog := NewDefaultCatalog(NewExplanationService("", ""))
	calc, err := catalog.Get("loan")
	require.NoError(t, err)

	_, err = calc.Run(domain.MortgageInput{})
	assert.Error(t, err)
}

func TestCatalog_DebtPayoffDropsBlankRows(t *testing.T) {
	catalog := NewDefaultCatalog(NewExplanationService("", ""))
	calc, err := catalog.Get("debt-payoff")
	require.NoError(t, err)

	out, err := calc.Run(&domain.DebtExitInput{
		Debts: []domain.Debt{
			{Name: "Card", Amount: 1000, InterestRate: 20, MinimumPayment: 50},
			{},
		},
		AvailableMonthlyPayment: 200,
		Strategy:                domain.StrategyAvalanche,
	})
	require.NoError(t, err)
	assert.Equal(t, 1000.0, out.(*domain.DebtExitResult).TotalDebt)
}

func TestNewCatalog_DuplicateSlugPanics(t *testing.T) {
	info := domain.CalculatorInfo{Slug: "x"}
	fn := func(in int) (int, error) { return in, nil }

	assert.Panics(t, func() {
		NewCatalog(Define(info, fn), Define(info, fn))
	})
}

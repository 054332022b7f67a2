package service

import (
	"math"

	"fincalc/domain"
	"fincalc/finance"
)

type EverydayService struct{}

func NewEverydayService() *EverydayService {
	return &EverydayService{}
}

// Percentage computes percent of value and, when from is non-zero, the
// percent change from from to to.
func (s *EverydayService) Percentage(
	input domain.PercentageInput,
) (domain.PercentageResult, error) {

	for _, f := range []struct {
		name string
		v    float64
	}{{"value", input.Value}, {"percent", input.Percent}, {"from", input.From}, {"to", input.To}} {
		if err := finite(f.name, f.v); err != nil {
			return domain.PercentageResult{}, err
		}
		if math.Abs(f.v) > MaxPercentValue {
			return domain.PercentageResult{}, domain.Invalid(f.name, "exceeds the maximum magnitude of %g", MaxPercentValue)
		}
	}

	result := domain.PercentageResult{
		PercentOf: finance.Round(input.Value*input.Percent/100, 4),
	}
	if input.From != 0 {
		change := finance.Round((input.To-input.From)/math.Abs(input.From)*100, 4)
		result.PercentChange = &change
	}
	return result, nil
}

// Inflation grows an amount at a constant annual inflation rate.
func (s *EverydayService) Inflation(
	input domain.InflationInput,
) (domain.InflationResult, error) {

	if err := firstError(
		positiveAmount("amount", input.Amount, MaxLoanAmount),
		finite("inflation_rate", input.InflationRate),
		years("years", input.Years, 1),
	); err != nil {
		return domain.InflationResult{}, err
	}
	if input.InflationRate <= -100 || input.InflationRate > MaxInterestRate {
		return domain.InflationResult{}, domain.Invalid("inflation_rate",
			"must be greater than -100 and at most %.0f", MaxInterestRate)
	}

	factor := math.Pow(1+input.InflationRate/100, float64(input.Years))

	return domain.InflationResult{
		FutureCost:      finance.Round2(input.Amount * factor),
		PurchasingPower: finance.Round2(input.Amount / factor),
		CumulativeRate:  finance.Round((factor-1)*100, 4),
	}, nil
}

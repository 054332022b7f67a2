package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fincalc/domain"
)

func TestPercentage(t *testing.T) {
	service := NewEverydayService()

	result, err := service.Percentage(domain.PercentageInput{Value: 250, Percent: 15, From: 80, To: 100})
	require.NoError(t, err)
	assert.Equal(t, 37.5, result.PercentOf)
	require.NotNil(t, result.PercentChange)
	assert.Equal(t, 25.0, *result.PercentChange)
}

func TestPercentage_ChangeFromNegative(t *testing.T) {
	service := NewEverydayService()

	result, err := service.Percentage(domain.PercentageInput{From: -50, To: -25})
	require.NoError(t, err)
	require.NotNil(t, result.PercentChange)
	assert.Equal(t, 50.0, *result.PercentChange)
}

func TestPercentage_NoChangeFromZero(t *testing.T) {
	service := NewEverydayService()

	result, err := service.Percentage(domain.PercentageInput{Value: 10, Percent: 10, To: 5})
	require.NoError(t, err)
	assert.Nil(t, result.PercentChange)
}

func TestPercentage_RejectsNaN(t *testing.T) {
	service := NewEverydayService()

	_, err := service.Percentage(domain.PercentageInput{Value: math.NaN()})
	assert.True(t, domain.IsValidation(err))
}

func TestInflation(t *testing.T) {
	service := NewEverydayService()

	result, err := service.Inflation(domain.InflationInput{Amount: 1000, InflationRate: 3, Years: 10})
	require.NoError(t, err)
	assert.InDelta(t, 1343.92, result.FutureCost, 0.001)
	assert.InDelta(t, 744.09, result.PurchasingPower, 0.001)
	assert.InDelta(t, 34.3916, result.CumulativeRate, 0.0001)
}

func TestInflation_Deflation(t *testing.T) {
	service := NewEverydayService()

	result, err := service.Inflation(domain.InflationInput{Amount: 1000, InflationRate: -2, Years: 1})
	require.NoError(t, err)
	assert.InDelta(t, 980, result.FutureCost, 0.001)

	_, err = service.Inflation(domain.InflationInput{Amount: 1000, InflationRate: -100, Years: 1})
	assert.True(t, domain.IsValidation(err))
}

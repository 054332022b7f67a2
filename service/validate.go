package service

import (
	"math"

	"fincalc/domain"
)

func finite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return domain.Invalid(field, "must be a number")
	}
	return nil
}

// representable rejects a computed value that overflowed float64.
func representable(field string, vs ...float64) error {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return domain.Invalid(field, "the result is too large to compute; lower the rate or the time horizon")
		}
	}
	return nil
}

func positiveAmount(field string, v, limit float64) error {
	if err := finite(field, v); err != nil {
		return err
	}
	if v <= 0 {
		return domain.Invalid(field, "must be greater than zero")
	}
	if v > limit {
		return domain.Invalid(field, "exceeds the maximum of %.2f", limit)
	}
	return nil
}

func nonNegativeAmount(field string, v, limit float64) error {
	if err := finite(field, v); err != nil {
		return err
	}
	if v < 0 {
		return domain.Invalid(field, "must not be negative")
	}
	if v > limit {
		return domain.Invalid(field, "exceeds the maximum of %.2f", limit)
	}
	return nil
}

func interestRate(field string, v float64) error {
	if err := finite(field, v); err != nil {
		return err
	}
	if v < 0 {
		return domain.Invalid(field, "must not be negative")
	}
	if v > MaxInterestRate {
		return domain.Invalid(field, "exceeds the maximum of %.2f%%", MaxInterestRate)
	}
	return nil
}

func termMonths(field string, v int) error {
	if v < MinTermMonths {
		return domain.Invalid(field, "must be at least %d month", MinTermMonths)
	}
	if v > MaxTermMonths {
		return domain.Invalid(field, "exceeds the maximum of %d months", MaxTermMonths)
	}
	return nil
}

func years(field string, v, min int) error {
	if v < min {
		return domain.Invalid(field, "must be at least %d", min)
	}
	if v > MaxHorizonYears {
		return domain.Invalid(field, "exceeds the maximum of %d years", MaxHorizonYears)
	}
	return nil
}

// firstError returns the first non-nil error.
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

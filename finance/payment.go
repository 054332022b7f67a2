package finance

import (
	"math"

	"fincalc/domain"
)

// MonthlyRate converts an annual percentage rate to a monthly fraction.
func MonthlyRate(annualRatePct float64) float64 {
	return annualRatePct / 100 / MonthsPerYear
}

// MonthlyPayment is the level payment that retires principal over months
// periods at the given annual rate.
func MonthlyPayment(principal, annualRatePct float64, months int) float64 {
	if months <= 0 {
		return 0
	}
	n := float64(months)
	r := MonthlyRate(annualRatePct)
	if r == 0 {
		return principal / n
	}
	return principal * (r / (1 - math.Pow(1+r, -n)))
}

// PresentValue discounts a stream of months level payments at the annual rate.
func PresentValue(payment, annualRatePct float64, months int) float64 {
	n := float64(months)
	r := MonthlyRate(annualRatePct)
	if r == 0 {
		return payment * n
	}
	return payment * (1 - math.Pow(1+r, -n)) / r
}

// RemainingBalance is the unpaid principal after paid level payments.
func RemainingBalance(principal, annualRatePct float64, months, paid int) float64 {
	if paid >= months {
		return 0
	}
	payment := MonthlyPayment(principal, annualRatePct, months)
	return PresentValue(payment, annualRatePct, months-paid)
}

// Amortize builds the payment schedule for a level-payment loan with an
// optional extra principal payment every month. The last row clears any
// remainder so the closing balance is exactly zero. Row amounts are rounded
// to cents; the returned total interest is not.
func Amortize(principal, annualRatePct float64, months int, extra float64) ([]domain.ScheduleRow, float64) {
	if principal <= 0 || months <= 0 {
		return nil, 0
	}

	payment := MonthlyPayment(principal, annualRatePct, months)
	r := MonthlyRate(annualRatePct)
	balance := principal
	totalInterest := 0.0
	rows := make([]domain.ScheduleRow, 0, months)

	for month := 1; month <= months && balance > 0; month++ {
		interest := balance * r
		principalPart := payment - interest
		extraPart := extra

		if principalPart >= balance || month == months {
			principalPart = balance
			extraPart = 0
		} else if principalPart+extraPart > balance {
			extraPart = balance - principalPart
		}

		balance -= principalPart + extraPart
		if balance < CurrencyTolerance/100 {
			balance = 0
		}
		totalInterest += interest

		rows = append(rows, domain.ScheduleRow{
			Month:     month,
			Payment:   Round2(principalPart + interest + extraPart),
			Principal: Round2(principalPart),
			Interest:  Round2(interest),
			Extra:     Round2(extraPart),
			Balance:   Round2(balance),
		})
	}

	return rows, totalInterest
}

// EffectiveMonthlyRate converts an annual rate compounded compoundsPerYear
// times into the equivalent monthly growth rate.
func EffectiveMonthlyRate(annualRatePct float64, compoundsPerYear int) float64 {
	if compoundsPerYear <= 0 {
		compoundsPerYear = MonthsPerYear
	}
	k := float64(compoundsPerYear)
	return math.Pow(1+annualRatePct/100/k, k/MonthsPerYear) - 1
}

// FutureValue is the closed-form balance after years of compounding with a
// contribution at the end of every month.
func FutureValue(principal, annualRatePct float64, years, compoundsPerYear int, monthlyContribution float64) float64 {
	i := EffectiveMonthlyRate(annualRatePct, compoundsPerYear)
	n := float64(years * MonthsPerYear)
	growth := math.Pow(1+i, n)
	if i == 0 {
		return principal + monthlyContribution*n
	}
	return principal*growth + monthlyContribution*(growth-1)/i
}

// Grow simulates the balance month by month and reports it per year.
func Grow(principal, annualRatePct float64, years, compoundsPerYear int, monthlyContribution float64) []domain.YearBalance {
	i := EffectiveMonthlyRate(annualRatePct, compoundsPerYear)
	balance := principal
	contributions := principal
	yearly := make([]domain.YearBalance, 0, years)

	for year := 1; year <= years; year++ {
		for m := 0; m < MonthsPerYear; m++ {
			balance = balance*(1+i) + monthlyContribution
			contributions += monthlyContribution
		}
		yearly = append(yearly, domain.YearBalance{
			Year:          year,
			Contributions: Round2(contributions),
			Interest:      Round2(balance - contributions),
			Balance:       Round2(balance),
		})
	}
	return yearly
}

// PaymentForFutureValue is the monthly contribution needed to grow
// principal into target over months at the given effective monthly rate.
func PaymentForFutureValue(target, principal, monthlyRate float64, months int) float64 {
	n := float64(months)
	growth := math.Pow(1+monthlyRate, n)
	remaining := target - principal*growth
	if remaining <= 0 {
		return 0
	}
	if monthlyRate == 0 {
		return remaining / n
	}
	return remaining * monthlyRate / (growth - 1)
}

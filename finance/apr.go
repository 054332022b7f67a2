package finance

import (
	"fincalc/domain"
)

const (
	aprMaxIterations = 200
	aprTolerance     = 1e-9
	// aprSearchWidth is the initial bracket above the nominal rate, in percentage points.
	aprSearchWidth = 10.0
	aprRateCeiling = 200.0
)

// APRParams describes the loan whose annual percentage rate is solved for.
type APRParams struct {
	Principal   float64
	AnnualRate  float64
	TermMonths  int
	UpfrontFees float64
	MonthlyFee  float64
}

// SolveAPR finds the annual rate at which the present value of the
// borrower's payments (loan payment plus any monthly fee) equals the amount
// actually received (principal less upfront fees).
//
// The present value falls as the rate rises, so the root is bracketed and
// bisected. The bracket starts at [nominal, nominal+10], falling back to a
// lower bound of 0 when the nominal rate already undershoots, and doubles its
// upper bound until it reaches aprRateCeiling.
func SolveAPR(p APRParams) (float64, error) {
	financed := p.Principal - p.UpfrontFees
	if p.Principal <= 0 || p.TermMonths <= 0 || financed <= 0 {
		return 0, domain.ErrNoConvergence
	}

	payment := MonthlyPayment(p.Principal, p.AnnualRate, p.TermMonths) + p.MonthlyFee
	excess := func(rate float64) float64 {
		return PresentValue(payment, rate, p.TermMonths) - financed
	}

	lo := p.AnnualRate
	if excess(lo) < 0 {
		lo = 0
		if excess(lo) < 0 {
			// Payments total less than the amount received.
			return 0, domain.ErrNoConvergence
		}
	}
	if excess(lo) == 0 {
		return lo, nil
	}

	hi := lo + aprSearchWidth
	for excess(hi) > 0 {
		if hi >= aprRateCeiling {
			return 0, domain.ErrNoConvergence
		}
		hi *= 2
		if hi > aprRateCeiling {
			hi = aprRateCeiling
		}
	}

	for i := 0; i < aprMaxIterations && hi-lo > aprTolerance; i++ {
		mid := (lo + hi) / 2
		if excess(mid) > 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2, nil
}

package service

import "time"

const (
	MaxLoanAmount        = 1_000_000_000.0 // 1 billion
	MaxInterestRate      = 1000.0          // 1000% per year
	MaxTermMonths        = 600             // 50 years
	MinTermMonths        = 1
	MaxTermYears         = MaxTermMonths / 12
	MaxDebtAmount        = 100_000_000.0 // 100 million
	MaxDebtsPerRequest   = 50            // debts accepted per request
	MaxDebtPayoffMonths  = 600           // 50 years to pay off every debt
	DebtBalanceTolerance = 0.01          // balance treated as paid

	// Bounds for term recommendation.
	MaxTermRangeMonths = 120 // widest term range evaluated (10 years)

	MaxHorizonYears = 100
	MaxAge          = 120
	MaxPercentValue = 1e12

	DefaultWithdrawalRate = 4.0 // percent of the retirement balance drawn per year
	MinPasswordLength     = 8

	DefaultCacheTTL = 24 * time.Hour
)

// AllowedCompounding lists the compounding frequencies the compound interest calculator accepts.
var AllowedCompounding = []int{1, 2, 4, 12, 52, 365}

package domain

type CompoundInterestInput struct {
	Principal           float64 `json:"principal" form:"principal"`
	InterestRate        float64 `json:"annual_rate" form:"annual_rate"`
	Years               int     `json:"years" form:"years"`
	CompoundsPerYear    int     `json:"compounds_per_year" form:"compounds_per_year"`
	MonthlyContribution float64 `json:"monthly_contribution" form:"monthly_contribution"`
}

type YearBalance struct {
	Year          int     `json:"year"`
	Contributions float64 `json:"contributions"`
	Interest      float64 `json:"interest"`
	Balance       float64 `json:"balance"`
}

type CompoundInterestResult struct {
	FutureValue        float64       `json:"future_value"`
	TotalContributions float64       `json:"total_contributions"`
	TotalInterest      float64       `json:"total_interest"`
	Yearly             []YearBalance `json:"yearly"`
}

type SavingsGoalInput struct {
	GoalAmount     float64 `json:"goal_amount" form:"goal_amount"`
	CurrentSavings float64 `json:"current_savings" form:"current_savings"`
	InterestRate   float64 `json:"annual_rate" form:"annual_rate"`
	Years          int     `json:"years" form:"years"`
}

type SavingsGoalResult struct {
	MonthlyContribution float64 `json:"monthly_contribution"`
	TotalContributions  float64 `json:"total_contributions"`
	InterestEarned      float64 `json:"interest_earned"`
	AlreadyReached      bool    `json:"already_reached"`
}

type RetirementInput struct {
	CurrentAge          int     `json:"current_age" form:"current_age"`
	RetirementAge       int     `json:"retirement_age" form:"retirement_age"`
	CurrentSavings      float64 `json:"current_savings" form:"current_savings"`
	MonthlyContribution float64 `json:"monthly_contribution" form:"monthly_contribution"`
	AnnualReturn        float64 `json:"annual_return" form:"annual_return"`
	WithdrawalRate      float64 `json:"withdrawal_rate" form:"withdrawal_rate"`
}

type RetirementResult struct {
	YearsToRetirement   int     `json:"years_to_retirement"`
	BalanceAtRetirement float64 `json:"balance_at_retirement"`
	TotalContributions  float64 `json:"total_contributions"`
	AnnualIncome        float64 `json:"annual_income"`
	MonthlyIncome       float64 `json:"monthly_income"`
}

type InflationInput struct {
	Amount        float64 `json:"amount" form:"amount"`
	InflationRate float64 `json:"inflation_rate" form:"inflation_rate"`
	Years         int     `json:"years" form:"years"`
}

type InflationResult struct {
	FutureCost      float64 `json:"future_cost"`
	PurchasingPower float64 `json:"purchasing_power"`
	CumulativeRate  float64 `json:"cumulative_rate"`
}

package domain

type LoanInput struct {
	Amount       float64 `json:"amount" form:"amount"`
	InterestRate float64 `json:"annual_rate" form:"annual_rate"`
	TermMonths   int     `json:"term_months" form:"term_months"`
}

type LoanResult struct {
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalPayment   float64 `json:"total_payment"`
	TotalInterest  float64 `json:"total_interest"`
}

type AmortizationInput struct {
	Amount       float64 `json:"amount" form:"amount"`
	InterestRate float64 `json:"annual_rate" form:"annual_rate"`
	TermMonths   int     `json:"term_months" form:"term_months"`
	ExtraPayment float64 `json:"extra_payment" form:"extra_payment"`
}

// ScheduleRow is one period of an amortization schedule.
type ScheduleRow struct {
	Month     int     `json:"month"`
	Payment   float64 `json:"payment"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Extra     float64 `json:"extra"`
	Balance   float64 `json:"balance"`
}

type AmortizationResult struct {
	MonthlyPayment float64       `json:"monthly_payment"`
	Months         int           `json:"months"`
	TotalPayment   float64       `json:"total_payment"`
	TotalInterest  float64       `json:"total_interest"`
	InterestSaved  float64       `json:"interest_saved"`
	MonthsSaved    int           `json:"months_saved"`
	Schedule       []ScheduleRow `json:"schedule"`
}

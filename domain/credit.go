package domain

type CreditCardInput struct {
	Balance        float64 `json:"balance" form:"balance"`
	APR            float64 `json:"apr" form:"apr"`
	MonthlyPayment float64 `json:"monthly_payment" form:"monthly_payment"`
}

type CreditCardResult struct {
	Months        int     `json:"months"`
	TotalInterest float64 `json:"total_interest"`
	TotalPaid     float64 `json:"total_paid"`
}

type AutoLoanInput struct {
	VehiclePrice float64 `json:"vehicle_price" form:"vehicle_price"`
	DownPayment  float64 `json:"down_payment" form:"down_payment"`
	TradeIn      float64 `json:"trade_in" form:"trade_in"`
	SalesTaxRate float64 `json:"sales_tax_rate" form:"sales_tax_rate"`
	Fees         float64 `json:"fees" form:"fees"`
	InterestRate float64 `json:"annual_rate" form:"annual_rate"`
	TermMonths   int     `json:"term_months" form:"term_months"`
}

type AutoLoanResult struct {
	SalesTax       float64 `json:"sales_tax"`
	AmountFinanced float64 `json:"amount_financed"`
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalInterest  float64 `json:"total_interest"`
	TotalCost      float64 `json:"total_cost"`
}

type RefinanceInput struct {
	CurrentBalance  float64 `json:"current_balance" form:"current_balance"`
	CurrentRate     float64 `json:"current_rate" form:"current_rate"`
	RemainingMonths int     `json:"remaining_months" form:"remaining_months"`
	NewRate         float64 `json:"new_rate" form:"new_rate"`
	NewTermMonths   int     `json:"new_term_months" form:"new_term_months"`
	ClosingCosts    float64 `json:"closing_costs" form:"closing_costs"`
}

type RefinanceResult struct {
	CurrentPayment  float64 `json:"current_payment"`
	NewPayment      float64 `json:"new_payment"`
	MonthlySavings  float64 `json:"monthly_savings"`
	BreakEvenMonths int     `json:"break_even_months"`
	BreaksEven      bool    `json:"breaks_even"`
	LifetimeSavings float64 `json:"lifetime_savings"`
}

package domain

type MortgageInput struct {
	HomePrice    float64 `json:"home_price" form:"home_price"`
	DownPayment  float64 `json:"down_payment" form:"down_payment"`
	InterestRate float64 `json:"annual_rate" form:"annual_rate"`
	TermYears    int     `json:"term_years" form:"term_years"`
	PropertyTax  float64 `json:"property_tax" form:"property_tax"` // annual
	Insurance    float64 `json:"insurance" form:"insurance"`       // annual
	PMIRate      float64 `json:"pmi_rate" form:"pmi_rate"`         // annual % of the loan, charged while LTV > 80%
	HOA          float64 `json:"hoa" form:"hoa"`                   // monthly
}

type MortgageResult struct {
	LoanAmount          float64 `json:"loan_amount"`
	LoanToValue         float64 `json:"ltv"`
	PrincipalInterest   float64 `json:"principal_and_interest"`
	MonthlyPropertyTax  float64 `json:"tax"`
	MonthlyInsurance    float64 `json:"insurance"`
	MonthlyPMI          float64 `json:"pmi"`
	MonthlyHOA          float64 `json:"hoa"`
	TotalMonthlyPayment float64 `json:"total_monthly"`
	TotalInterest       float64 `json:"total_interest"`
}

package domain

type APRInput struct {
	Principal      float64 `json:"principal" form:"principal"`
	InterestRate   float64 `json:"annual_rate" form:"annual_rate"`
	TermMonths     int     `json:"term_months" form:"term_months"`
	OriginationFee float64 `json:"origination_fee" form:"origination_fee"`
	ApplicationFee float64 `json:"application_fee" form:"application_fee"`
	InsuranceFee   float64 `json:"insurance_fee" form:"insurance_fee"`
	OtherFees      float64 `json:"other_fees" form:"other_fees"`
	MonthlyFee     float64 `json:"monthly_fee" form:"monthly_fee"`
}

// UpfrontFees sums the one-time charges paid at origination.
func (in APRInput) UpfrontFees() float64 {
	return in.OriginationFee + in.ApplicationFee + in.InsuranceFee + in.OtherFees
}

type APRResult struct {
	APR            float64 `json:"apr"`
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalFees      float64 `json:"total_fees"`
	FinanceCharge  float64 `json:"finance_charge"`
	AmountFinanced float64 `json:"amount_financed"`
}

package service

import (
	"fincalc/domain"
	"fincalc/finance"
)

// LoanService evaluates the installment-loan calculators: plain loan,
// amortization schedule, APR, auto loan and refinance.
type LoanService struct{}

func NewLoanService() *LoanService {
	return &LoanService{}
}

// CalculateLoan calculates the loan details based on the input parameters.
func (s *LoanService) CalculateLoan(
	input domain.LoanInput,
) (domain.LoanResult, error) {

	if err := firstError(
		positiveAmount("amount", input.Amount, MaxLoanAmount),
		interestRate("annual_rate", input.InterestRate),
		termMonths("term_months", input.TermMonths),
	); err != nil {
		return domain.LoanResult{}, err
	}

	payment := finance.MonthlyPayment(input.Amount, input.InterestRate, input.TermMonths)
	total := payment * float64(input.TermMonths)
	interest := total - input.Amount

	return domain.LoanResult{
		MonthlyPayment: finance.Round2(payment),
		TotalPayment:   finance.Round2(total),
		TotalInterest:  finance.Round2(interest),
	}, nil
}

// Amortize builds the full schedule and, when an extra monthly payment is
// given, how much interest and time it saves.
func (s *LoanService) Amortize(
	input domain.AmortizationInput,
) (domain.AmortizationResult, error) {

	if err := firstError(
		positiveAmount("amount", input.Amount, MaxLoanAmount),
		interestRate("annual_rate", input.InterestRate),
		termMonths("term_months", input.TermMonths),
		nonNegativeAmount("extra_payment", input.ExtraPayment, MaxLoanAmount),
	); err != nil {
		return domain.AmortizationResult{}, err
	}

	schedule, interest := finance.Amortize(input.Amount, input.InterestRate, input.TermMonths, input.ExtraPayment)
	_, baseInterest := finance.Amortize(input.Amount, input.InterestRate, input.TermMonths, 0)

	total := 0.0
	for _, row := range schedule {
		total += row.Payment
	}

	return domain.AmortizationResult{
		MonthlyPayment: finance.Round2(finance.MonthlyPayment(input.Amount, input.InterestRate, input.TermMonths)),
		Months:         len(schedule),
		TotalPayment:   finance.Round2(total),
		TotalInterest:  finance.Round2(interest),
		InterestSaved:  finance.Round2(baseInterest - interest),
		MonthsSaved:    input.TermMonths - len(schedule),
		Schedule:       schedule,
	}, nil
}

// CalculateAPR reports the annual percentage rate implied by the fees.
func (s *LoanService) CalculateAPR(
	input domain.APRInput,
) (domain.APRResult, error) {

	fees := input.UpfrontFees()
	if err := firstError(
		positiveAmount("principal", input.Principal, MaxLoanAmount),
		interestRate("annual_rate", input.InterestRate),
		termMonths("term_months", input.TermMonths),
		nonNegativeAmount("origination_fee", input.OriginationFee, MaxLoanAmount),
		nonNegativeAmount("application_fee", input.ApplicationFee, MaxLoanAmount),
		nonNegativeAmount("insurance_fee", input.InsuranceFee, MaxLoanAmount),
		nonNegativeAmount("other_fees", input.OtherFees, MaxLoanAmount),
		nonNegativeAmount("monthly_fee", input.MonthlyFee, MaxLoanAmount),
	); err != nil {
		return domain.APRResult{}, err
	}
	if fees >= input.Principal {
		return domain.APRResult{}, domain.Invalid("fees", "upfront fees must be less than the principal")
	}

	apr, err := finance.SolveAPR(finance.APRParams{
		Principal:   input.Principal,
		AnnualRate:  input.InterestRate,
		TermMonths:  input.TermMonths,
		UpfrontFees: fees,
		MonthlyFee:  input.MonthlyFee,
	})
	if err != nil {
		return domain.APRResult{}, domain.Invalid("apr", "fees are too large to express as an annual rate")
	}

	payment := finance.MonthlyPayment(input.Principal, input.InterestRate, input.TermMonths)
	totalPaid := (payment + input.MonthlyFee) * float64(input.TermMonths)
	financed := input.Principal - fees

	return domain.APRResult{
		APR:            finance.Round(apr, 3),
		MonthlyPayment: finance.Round2(payment + input.MonthlyFee),
		TotalFees:      finance.Round2(fees + input.MonthlyFee*float64(input.TermMonths)),
		FinanceCharge:  finance.Round2(totalPaid - financed),
		AmountFinanced: finance.Round2(financed),
	}, nil
}

// CalculateAutoLoan adds sales tax and fees to the vehicle price and
// finances what the down payment and trade-in do not cover.
func (s *LoanService) CalculateAutoLoan(
	input domain.AutoLoanInput,
) (domain.AutoLoanResult, error) {

	if err := firstError(
		positiveAmount("vehicle_price", input.VehiclePrice, MaxLoanAmount),
		nonNegativeAmount("down_payment", input.DownPayment, MaxLoanAmount),
		nonNegativeAmount("trade_in", input.TradeIn, MaxLoanAmount),
		nonNegativeAmount("sales_tax_rate", input.SalesTaxRate, 100),
		nonNegativeAmount("fees", input.Fees, MaxLoanAmount),
		interestRate("annual_rate", input.InterestRate),
		termMonths("term_months", input.TermMonths),
	); err != nil {
		return domain.AutoLoanResult{}, err
	}

	// Most states tax the price net of the trade-in.
	taxable := input.VehiclePrice - input.TradeIn
	if taxable < 0 {
		taxable = 0
	}
	tax := taxable * input.SalesTaxRate / 100
	financed := input.VehiclePrice + tax + input.Fees - input.DownPayment - input.TradeIn
	if financed <= 0 {
		return domain.AutoLoanResult{}, domain.Invalid("down_payment", "down payment and trade-in cover the full price")
	}

	payment := finance.MonthlyPayment(financed, input.InterestRate, input.TermMonths)
	interest := payment*float64(input.TermMonths) - financed

	return domain.AutoLoanResult{
		SalesTax:       finance.Round2(tax),
		AmountFinanced: finance.Round2(financed),
		MonthlyPayment: finance.Round2(payment),
		TotalInterest:  finance.Round2(interest),
		TotalCost:      finance.Round2(input.VehiclePrice + tax + input.Fees + interest),
	}, nil
}

// CalculateRefinance compares the remaining payments on the current loan
// with a new loan for the same balance.
func (s *LoanService) CalculateRefinance(
	input domain.RefinanceInput,
) (domain.RefinanceResult, error) {

	if err := firstError(
		positiveAmount("current_balance", input.CurrentBalance, MaxLoanAmount),
		interestRate("current_rate", input.CurrentRate),
		termMonths("remaining_months", input.RemainingMonths),
		interestRate("new_rate", input.NewRate),
		termMonths("new_term_months", input.NewTermMonths),
		nonNegativeAmount("closing_costs", input.ClosingCosts, MaxLoanAmount),
	); err != nil {
		return domain.RefinanceResult{}, err
	}

	current := finance.MonthlyPayment(input.CurrentBalance, input.CurrentRate, input.RemainingMonths)
	next := finance.MonthlyPayment(input.CurrentBalance, input.NewRate, input.NewTermMonths)
	savings := current - next

	breakEven := 0
	if savings > 0 {
		breakEven = ceilDiv(input.ClosingCosts, savings)
	}

	currentTotal := current * float64(input.RemainingMonths)
	newTotal := next*float64(input.NewTermMonths) + input.ClosingCosts

	return domain.RefinanceResult{
		CurrentPayment:  finance.Round2(current),
		NewPayment:      finance.Round2(next),
		MonthlySavings:  finance.Round2(savings),
		BreakEvenMonths: breakEven,
		BreaksEven:      savings > 0,
		LifetimeSavings: finance.Round2(currentTotal - newTotal),
	}, nil
}

func ceilDiv(amount, per float64) int {
	if amount <= 0 {
		return 0
	}
	n := int(amount / per)
	if float64(n)*per < amount {
		n++
	}
	return n
}

package service

import (
	"fincalc/domain"
	"fincalc/finance"
)

// pmiLTVThreshold is the loan-to-value ratio above which PMI is charged.
const pmiLTVThreshold = 80.0

type MortgageService struct {
	loanService *LoanService
}

func NewMortgageService(loanService *LoanService) *MortgageService {
	return &MortgageService{loanService: loanService}
}

// CalculateMortgage returns the full monthly housing payment (PITI plus
// PMI and HOA dues) for a fixed-rate mortgage.
func (s *MortgageService) CalculateMortgage(
	input domain.MortgageInput,
) (domain.MortgageResult, error) {

	if err := firstError(
		positiveAmount("home_price", input.HomePrice, MaxLoanAmount),
		nonNegativeAmount("down_payment", input.DownPayment, MaxLoanAmount),
		interestRate("annual_rate", input.InterestRate),
		nonNegativeAmount("property_tax", input.PropertyTax, MaxLoanAmount),
		nonNegativeAmount("insurance", input.Insurance, MaxLoanAmount),
		nonNegativeAmount("pmi_rate", input.PMIRate, 100),
		nonNegativeAmount("hoa", input.HOA, MaxLoanAmount),
	); err != nil {
		return domain.MortgageResult{}, err
	}
	if input.TermYears < 1 || input.TermYears > MaxTermYears {
		return domain.MortgageResult{}, domain.Invalid("term_years", "must be between 1 and %d", MaxTermYears)
	}
	if input.DownPayment >= input.HomePrice {
		return domain.MortgageResult{}, domain.Invalid("down_payment", "must be less than the home price")
	}

	loanAmount := input.HomePrice - input.DownPayment
	loan, err := s.loanService.CalculateLoan(domain.LoanInput{
		Amount:       loanAmount,
		InterestRate: input.InterestRate,
		TermMonths:   input.TermYears * 12,
	})
	if err != nil {
		return domain.MortgageResult{}, err
	}

	ltv := loanAmount / input.HomePrice * 100
	pmi := 0.0
	if ltv > pmiLTVThreshold {
		pmi = loanAmount * input.PMIRate / 100 / 12
	}
	tax := input.PropertyTax / 12
	insurance := input.Insurance / 12

	return domain.MortgageResult{
		LoanAmount:          finance.Round2(loanAmount),
		LoanToValue:         finance.Round2(ltv),
		PrincipalInterest:   loan.MonthlyPayment,
		MonthlyPropertyTax:  finance.Round2(tax),
		MonthlyInsurance:    finance.Round2(insurance),
		MonthlyPMI:          finance.Round2(pmi),
		MonthlyHOA:          finance.Round2(input.HOA),
		TotalMonthlyPayment: finance.Round2(loan.MonthlyPayment + tax + insurance + pmi + input.HOA),
		TotalInterest:       loan.TotalInterest,
	}, nil
}

package service

import (
	"strconv"

	"fincalc/domain"
)

func money(name, label, def string) domain.Field {
	return domain.Field{Name: name, Label: label, Unit: "$", Default: def, Step: "0.01"}
}

func percent(name, label, def string) domain.Field {
	return domain.Field{Name: name, Label: label, Unit: "%", Default: def, Step: "0.001"}
}

func count(name, label, unit, def string) domain.Field {
	return domain.Field{Name: name, Label: label, Unit: unit, Default: def, Step: "1"}
}

func categoryImage(category string) string {
	return "/static/img/" + category + ".svg"
}

// debtRows is the number of debt rows on the debt payoff form.
const debtRows = 4

func debtFields() []domain.Field {
	fields := []domain.Field{}
	defaults := [][3]string{
		{"Credit card", "4500", "22.9"},
		{"Car loan", "12000", "6.5"},
		{"Student loan", "18000", "4.5"},
	}
	mins := []string{"135", "290", "190"}
	for i := range debtRows {
		var name, amount, rate, minimum string
		if i < len(defaults) {
			name, amount, rate, minimum = defaults[i][0], defaults[i][1], defaults[i][2], mins[i]
		}
		prefix := "debts[" + strconv.Itoa(i) + "]."
		fields = append(fields,
			domain.Field{Name: prefix + "name", Label: "Debt name", Default: name},
			money(prefix+"amount", "Balance", amount),
			percent(prefix+"annual_rate", "Interest rate", rate),
			money(prefix+"minimum_payment", "Minimum payment", minimum),
		)
	}
	return append(fields,
		money("available_monthly_payment", "Monthly budget for debt", "800"),
		domain.Field{
			Name:    "strategy",
			Label:   "Strategy",
			Default: domain.StrategyCompare,
			Options: []string{domain.StrategyCompare, domain.StrategySnowball, domain.StrategyAvalanche},
		},
	)
}

// compactDebts drops form rows left blank.
func compactDebts(debts []domain.Debt) []domain.Debt {
	out := debts[:0:0]
	for _, d := range debts {
		if d.Name == "" && d.Amount == 0 && d.MinimumPayment == 0 {
			continue
		}
		out = append(out, d)
	}
	return out
}

// NewDefaultCatalog registers every calculator the site offers.
func NewDefaultCatalog(explainer *ExplanationService) *Catalog {
	loans := NewLoanService()
	mortgages := NewMortgageService(loans)
	debts := NewDebtExitService(explainer)
	terms := NewTermRecommendationService(loans, explainer)
	savings := NewSavingsService()
	everyday := NewEverydayService()

	return NewCatalog(
		Define(domain.CalculatorInfo{
			Slug:        "mortgage",
			Title:       "Mortgage Calculator",
			Description: "Estimate your monthly mortgage payment including taxes, insurance, PMI and HOA dues.",
			Category:    domain.CategoryMortgage,
			Keywords:    []string{"mortgage", "home loan", "piti", "pmi", "house payment"},
			Image:       categoryImage(domain.CategoryMortgage),
			Fields: []domain.Field{
				money("home_price", "Home price", "400000"),
				money("down_payment", "Down payment", "80000"),
				percent("annual_rate", "Interest rate", "6.5"),
				count("term_years", "Loan term", "years", "30"),
				money("property_tax", "Property tax per year", "4800"),
				money("insurance", "Home insurance per year", "1500"),
				percent("pmi_rate", "PMI rate", "0.5"),
				money("hoa", "HOA dues per month", "0"),
			},
		}, mortgages.CalculateMortgage),

		Define(domain.CalculatorInfo{
			Slug:        "loan",
			Title:       "Loan Calculator",
			Description: "Work out the monthly payment, total cost and interest of a fixed-rate loan.",
			Category:    domain.CategoryLoans,
			Keywords:    []string{"loan", "personal loan", "monthly payment", "installment"},
			Image:       categoryImage(domain.CategoryLoans),
			Fields: []domain.Field{
				money("amount", "Loan amount", "10000"),
				percent("annual_rate", "Interest rate", "12"),
				count("term_months", "Loan term", "months", "24"),
			},
		}, loans.CalculateLoan),

		Define(domain.CalculatorInfo{
			Slug:        "amortization",
			Title:       "Amortization Schedule Calculator",
			Description: "See every payment split into principal and interest, and what extra payments save.",
			Category:    domain.CategoryLoans,
			Keywords:    []string{"amortization", "schedule", "extra payment", "principal"},
			Image:       categoryImage(domain.CategoryLoans),
			Fields: []domain.Field{
				money("amount", "Loan amount", "200000"),
				percent("annual_rate", "Interest rate", "6"),
				count("term_months", "Loan term", "months", "360"),
				money("extra_payment", "Extra monthly payment", "0"),
			},
		}, loans.Amortize),

		Define(domain.CalculatorInfo{
			Slug:        "apr",
			Title:       "APR Calculator",
			Description: "Find the true annual percentage rate of a loan once fees are included.",
			Category:    domain.CategoryLoans,
			Keywords:    []string{"apr", "annual percentage rate", "loan fees", "true cost"},
			Image:       categoryImage(domain.CategoryLoans),
			Fields: []domain.Field{
				money("principal", "Loan amount", "250000"),
				percent("annual_rate", "Nominal interest rate", "6.5"),
				count("term_months", "Loan term", "months", "360"),
				money("origination_fee", "Origination fee", "2500"),
				money("application_fee", "Application fee", "500"),
				money("insurance_fee", "Mortgage insurance", "0"),
				money("other_fees", "Other fees", "2000"),
				money("monthly_fee", "Monthly fee", "0"),
			},
		}, loans.CalculateAPR),

		Define(domain.CalculatorInfo{
			Slug:        "auto-loan",
			Title:       "Auto Loan Calculator",
			Description: "Price a car loan with sales tax, fees, down payment and trade-in.",
			Category:    domain.CategoryLoans,
			Keywords:    []string{"auto loan", "car loan", "vehicle", "trade-in"},
			Image:       categoryImage(domain.CategoryLoans),
			Fields: []domain.Field{
				money("vehicle_price", "Vehicle price", "35000"),
				money("down_payment", "Down payment", "5000"),
				money("trade_in", "Trade-in value", "0"),
				percent("sales_tax_rate", "Sales tax", "7"),
				money("fees", "Title and registration fees", "600"),
				percent("annual_rate", "Interest rate", "7.5"),
				count("term_months", "Loan term", "months", "60"),
			},
		}, loans.CalculateAutoLoan),

		Define(domain.CalculatorInfo{
			Slug:        "refinance",
			Title:       "Refinance Calculator",
			Description: "Compare your current loan with a refinance and find the break-even point.",
			Category:    domain.CategoryMortgage,
			Keywords:    []string{"refinance", "break even", "closing costs", "mortgage rate"},
			Image:       categoryImage(domain.CategoryMortgage),
			Fields: []domain.Field{
				money("current_balance", "Current balance", "250000"),
				percent("current_rate", "Current rate", "7"),
				count("remaining_months", "Remaining term", "months", "300"),
				percent("new_rate", "New rate", "5.75"),
				count("new_term_months", "New term", "months", "300"),
				money("closing_costs", "Closing costs", "4000"),
			},
		}, loans.CalculateRefinance),

		Define(domain.CalculatorInfo{
			Slug:        "loan-term",
			Title:       "Loan Term Calculator",
			Description: "Rank loan terms that fit your budget by interest, payment or a balance of both.",
			Category:    domain.CategoryLoans,
			Keywords:    []string{"loan term", "how long", "best term", "payment budget"},
			Image:       categoryImage(domain.CategoryLoans),
			Fields: []domain.Field{
				money("amount", "Loan amount", "20000"),
				percent("annual_rate", "Interest rate", "9"),
				count("min_term_months", "Shortest term", "months", "12"),
				count("max_term_months", "Longest term", "months", "72"),
				money("max_monthly_payment", "Maximum monthly payment", "600"),
				{
					Name:    "preference",
					Label:   "Priority",
					Default: domain.PreferenceBalanced,
					Options: []string{domain.PreferenceBalanced, domain.PreferenceMinimizeInterest, domain.PreferenceMinimizePayment},
				},
			},
		}, terms.RecommendTerm),

		Define(domain.CalculatorInfo{
			Slug:        "debt-payoff",
			Title:       "Debt Payoff Calculator",
			Description: "Plan your way out of debt with the snowball or avalanche method.",
			Category:    domain.CategoryDebt,
			Keywords:    []string{"debt payoff", "snowball", "avalanche", "debt free"},
			Image:       categoryImage(domain.CategoryDebt),
			Fields:      debtFields(),
		}, func(in domain.DebtExitInput) (domain.DebtExitResult, error) {
			in.Debts = compactDebts(in.Debts)
			return debts.CalculateDebtExitPlan(in)
		}),

		Define(domain.CalculatorInfo{
			Slug:        "credit-card-payoff",
			Title:       "Credit Card Payoff Calculator",
			Description: "See how long a fixed monthly payment takes to clear a card balance.",
			Category:    domain.CategoryDebt,
			Keywords:    []string{"credit card", "payoff", "balance", "apr"},
			Image:       categoryImage(domain.CategoryDebt),
			Fields: []domain.Field{
				money("balance", "Card balance", "6000"),
				percent("apr", "Card APR", "24.99"),
				money("monthly_payment", "Monthly payment", "250"),
			},
		}, debts.CalculateCreditCardPayoff),

		Define(domain.CalculatorInfo{
			Slug:        "compound-interest",
			Title:       "Compound Interest Calculator",
			Description: "Project how savings grow with compounding and regular contributions.",
			Category:    domain.CategorySavings,
			Keywords:    []string{"compound interest", "investment growth", "future value"},
			Image:       categoryImage(domain.CategorySavings),
			Fields: []domain.Field{
				money("principal", "Initial deposit", "10000"),
				percent("annual_rate", "Annual interest rate", "5"),
				count("years", "Years", "years", "10"),
				{
					Name:    "compounds_per_year",
					Label:   "Compounding per year",
					Default: "12",
					Options: []string{"1", "2", "4", "12", "52", "365"},
				},
				money("monthly_contribution", "Monthly contribution", "200"),
			},
		}, savings.CompoundInterest),

		Define(domain.CalculatorInfo{
			Slug:        "savings-goal",
			Title:       "Savings Goal Calculator",
			Description: "Find the monthly deposit needed to reach a savings target.",
			Category:    domain.CategorySavings,
			Keywords:    []string{"savings goal", "monthly savings", "target"},
			Image:       categoryImage(domain.CategorySavings),
			Fields: []domain.Field{
				money("goal_amount", "Savings goal", "25000"),
				money("current_savings", "Current savings", "2000"),
				percent("annual_rate", "Interest rate", "4"),
				count("years", "Years to goal", "years", "5"),
			},
		}, savings.SavingsGoal),

		Define(domain.CalculatorInfo{
			Slug:        "retirement",
			Title:       "Retirement Calculator",
			Description: "Estimate your nest egg at retirement and the income it can provide.",
			Category:    domain.CategoryRetirement,
			Keywords:    []string{"retirement", "nest egg", "401k", "withdrawal rate"},
			Image:       categoryImage(domain.CategoryRetirement),
			Fields: []domain.Field{
				count("current_age", "Current age", "years", "35"),
				count("retirement_age", "Retirement age", "years", "67"),
				money("current_savings", "Current savings", "50000"),
				money("monthly_contribution", "Monthly contribution", "750"),
				percent("annual_return", "Expected annual return", "6"),
				percent("withdrawal_rate", "Withdrawal rate", "4"),
			},
		}, savings.Retirement),

		Define(domain.CalculatorInfo{
			Slug:        "inflation",
			Title:       "Inflation Calculator",
			Description: "See what today's money will cost and be worth after years of inflation.",
			Category:    domain.CategoryEveryday,
			Keywords:    []string{"inflation", "purchasing power", "cost of living"},
			Image:       categoryImage(domain.CategoryEveryday),
			Fields: []domain.Field{
				money("amount", "Amount today", "1000"),
				percent("inflation_rate", "Inflation rate", "3"),
				count("years", "Years", "years", "10"),
			},
		}, everyday.Inflation),

		Define(domain.CalculatorInfo{
			Slug:        "percentage",
			Title:       "Percentage Calculator",
			Description: "Work out a percentage of a number and the percent change between two values.",
			Category:    domain.CategoryEveryday,
			Keywords:    []string{"percentage", "percent change", "percent of"},
			Image:       categoryImage(domain.CategoryEveryday),
			Fields: []domain.Field{
				{Name: "value", Label: "Value", Default: "250", Step: "any"},
				{Name: "percent", Label: "Percent", Unit: "%", Default: "15", Step: "any"},
				{Name: "from", Label: "Change from", Default: "80", Step: "any"},
				{Name: "to", Label: "Change to", Default: "100", Step: "any"},
			},
		}, everyday.Percentage),
	)
}

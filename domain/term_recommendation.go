package domain

const (
	PreferenceMinimizeInterest = "minimize_interest"
	PreferenceMinimizePayment  = "minimize_payment"
	PreferenceBalanced         = "balanced"
)

type TermRecommendationInput struct {
	Amount            float64 `json:"amount" form:"amount"`
	InterestRate      float64 `json:"annual_rate" form:"annual_rate"`
	MinTermMonths     int     `json:"min_term_months" form:"min_term_months"`
	MaxTermMonths     int     `json:"max_term_months" form:"max_term_months"`
	MaxMonthlyPayment float64 `json:"max_monthly_payment" form:"max_monthly_payment"`
	Preference        string  `json:"preference" form:"preference"` // "minimize_interest", "minimize_payment", "balanced"
}

type TermRecommendation struct {
	TermMonths     int     `json:"term_months"`
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalInterest  float64 `json:"total_interest"`
	Score          float64 `json:"score"`
	Reason         string  `json:"reason"`
}

type TermRecommendationResult struct {
	RecommendedTerm int                  `json:"recommended_term"`
	Recommendations []TermRecommendation `json:"recommendations"`
}

package domain

// Calculator categories used for grouping on the index page.
const (
	CategoryLoans      = "loans"
	CategoryMortgage   = "mortgage"
	CategoryDebt       = "debt"
	CategorySavings    = "savings"
	CategoryRetirement = "retirement"
	CategoryEveryday   = "everyday"
)

// Field describes one input of a calculator form.
type Field struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Unit    string   `json:"unit,omitempty"` // "$", "%", "months", "years"
	Default string   `json:"default,omitempty"`
	Step    string   `json:"step,omitempty"`
	Options []string `json:"options,omitempty"`
	Help    string   `json:"help,omitempty"`
}

// CalculatorInfo is the public description of a calculator page.
type CalculatorInfo struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Keywords    []string `json:"keywords,omitempty"`
	Image       string   `json:"image,omitempty"`
	Fields      []Field  `json:"fields"`
}

// Path returns the page route of the calculator.
func (c CalculatorInfo) Path() string {
	return "/calculators/" + c.Slug
}

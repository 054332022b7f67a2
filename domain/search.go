package domain

const (
	HitCalculator = "calculator"
	HitArticle    = "article"
)

type SearchHit struct {
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

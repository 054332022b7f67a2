package service

import (
	"strings"

	"fincalc/domain"
)

// ArticleSource provides the published articles to search.
type ArticleSource interface {
	Articles() []domain.Article
}

type SearchService struct {
	catalog  *Catalog
	articles ArticleSource
}

func NewSearchService(catalog *Catalog, articles ArticleSource) *SearchService {
	return &SearchService{catalog: catalog, articles: articles}
}

// Search matches every whitespace-separated term case-insensitively.
// Calculators are listed before articles; each group keeps its own order.
func (s *SearchService) Search(query string) []domain.SearchHit {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return nil
	}

	hits := []domain.SearchHit{}
	for _, info := range s.catalog.Infos() {
		text := info.Title + " " + info.Description + " " + strings.Join(info.Keywords, " ")
		if matchesAll(text, terms) {
			hits = append(hits, domain.SearchHit{
				Kind:        domain.HitCalculator,
				Title:       info.Title,
				Description: info.Description,
				URL:         info.Path(),
			})
		}
	}

	if s.articles == nil {
		return hits
	}
	for _, a := range s.articles.Articles() {
		text := a.Title + " " + a.Description + " " + strings.Join(a.Tags, " ") + " " + a.Text
		if matchesAll(text, terms) {
			hits = append(hits, domain.SearchHit{
				Kind:        domain.HitArticle,
				Title:       a.Title,
				Description: a.Description,
				URL:         a.Path(),
			})
		}
	}
	return hits
}

func matchesAll(text string, terms []string) bool {
	text = strings.ToLower(text)
	for _, term := range terms {
		if !strings.Contains(text, term) {
			return false
		}
	}
	return true
}

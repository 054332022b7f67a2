package http

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/angelofallars/htmx-go"

	"fincalc/domain"
	"fincalc/seo"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pageNames = []string{
	"home", "calculators", "calculator", "blog", "article", "page",
	"search", "login", "register", "account", "not_found",
}

var categoryTitles = map[string]string{
	domain.CategoryLoans:      "Loans",
	domain.CategoryMortgage:   "Mortgage",
	domain.CategoryDebt:       "Debt",
	domain.CategorySavings:    "Savings",
	domain.CategoryRetirement: "Retirement",
	domain.CategoryEveryday:   "Everyday math",
}

var categoryOrder = []string{
	domain.CategoryLoans, domain.CategoryMortgage, domain.CategoryDebt,
	domain.CategorySavings, domain.CategoryRetirement, domain.CategoryEveryday,
}

type calculatorGroup struct {
	Category    string
	Title       string
	Calculators []domain.CalculatorInfo
}

type savedView struct {
	domain.Calculation
	Title string
	Path  string
	Items []resultItem
}

// pageData feeds every template; each page reads the fields it needs.
type pageData struct {
	Site   seo.Site
	Meta   seo.Metadata
	JSONLD template.JS
	User   *domain.User
	Year   int

	Groups     []calculatorGroup
	Calculator domain.CalculatorInfo
	Values     map[string]string
	Result     *resultView
	Error      string
	ErrorField string

	Articles []domain.Article
	Article  domain.Article
	Body     template.HTML

	Query string
	Hits  []domain.SearchHit

	Saved []savedView
	Next  string
	Email string
}

type views struct {
	pages    map[string]*template.Template
	partials *template.Template
	fmt      formatter
}

func newViews(site seo.Site, currency string) (*views, error) {
	f := formatter{locale: site.Locale, currency: currency}
	funcs := template.FuncMap{
		"money":     f.money,
		"date":      func(t time.Time) string { return t.Format("January 2, 2006") },
		"isoDate":   func(t time.Time) string { return t.Format("2006-01-02") },
		"category":  func(c string) string { return categoryTitles[c] },
		"value":     func(values map[string]string, name string) string { return values[name] },
		"inputType": inputType,
		"join":      strings.Join,
	}

	partials, err := template.New("partials").Funcs(funcs).ParseFS(templateFS, "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse partials: %w", err)
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := partials.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		pages[name] = t
	}

	return &views{pages: pages, partials: partials, fmt: f}, nil
}

// inputType picks the HTML input type for a form field.
func inputType(field domain.Field) string {
	if field.Step == "" {
		return "text"
	}
	return "number"
}

// page wraps a named page template as a templ component.
func (v *views) page(name string, data pageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t, ok := v.pages[name]
		if !ok {
			return fmt.Errorf("unknown page %q", name)
		}
		return t.ExecuteTemplate(w, "layout", data)
	})
}

func (v *views) partial(name string, data pageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return v.partials.ExecuteTemplate(w, name, data)
	})
}

func render(w http.ResponseWriter, r *http.Request, status int, component templ.Component) {
	templ.Handler(component, templ.WithStatus(status)).ServeHTTP(w, r)
}

// redirect uses HX-Redirect for htmx requests so the whole page changes.
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	if htmx.IsHTMX(r) {
		if err := htmx.NewResponse().Redirect(target).Write(w); err != nil {
			slog.Warn("failed to write htmx redirect", "error", err)
		}
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func staticHandler() http.Handler {
	return http.FileServer(http.FS(staticFS))
}

// base fills the fields shared by every page.
func (s *Server) base(r *http.Request, meta seo.Metadata) pageData {
	data := pageData{
		Site: s.site,
		Meta: meta,
		Year: time.Now().Year(),
	}
	if u, ok := currentUser(r.Context()); ok {
		data.User = &u
	}
	return data
}

func (s *Server) withJSONLD(data *pageData, things ...seo.Thing) {
	raw, err := seo.Marshal(things...)
	if err != nil {
		slog.Warn("failed to encode structured data", "error", err)
		return
	}
	data.JSONLD = template.JS(raw)
}

func groupCalculators(infos []domain.CalculatorInfo) []calculatorGroup {
	byCategory := make(map[string][]domain.CalculatorInfo)
	for _, info := range infos {
		byCategory[info.Category] = append(byCategory[info.Category], info)
	}
	groups := make([]calculatorGroup, 0, len(categoryOrder))
	for _, c := range categoryOrder {
		if len(byCategory[c]) == 0 {
			continue
		}
		groups = append(groups, calculatorGroup{
			Category:    c,
			Title:       categoryTitles[c],
			Calculators: byCategory[c],
		})
	}
	return groups
}

package http

import (
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/angelofallars/htmx-go"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/form/v4"

	"fincalc/domain"
	"fincalc/seo"
	"fincalc/service"
)

var staticPages = []string{"about", "contact", "privacy", "terms", "cookies"}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	data := s.base(r, s.site.Page("", s.site.Description, "/", ""))
	data.Groups = groupCalculators(s.calculators.Catalog().Infos())
	data.Articles = latest(s.content.Articles(), 3)
	s.withJSONLD(&data, s.site.WebSite())
	render(w, r, http.StatusOK, s.views.page("home", data))
}

func latest(articles []domain.Article, n int) []domain.Article {
	if len(articles) > n {
		return articles[:n]
	}
	return articles
}

func (s *Server) handleCalculatorIndex(w http.ResponseWriter, r *http.Request) {
	meta := s.site.Page("Financial Calculators", "Every calculator on "+s.site.Name+", grouped by topic.", "/calculators", "")
	data := s.base(r, meta)
	data.Groups = groupCalculators(s.calculators.Catalog().Infos())
	s.withJSONLD(&data, s.site.Breadcrumbs(
		seo.Crumb{Name: "Home", Path: "/"},
		seo.Crumb{Name: "Calculators", Path: "/calculators"},
	))
	render(w, r, http.StatusOK, s.views.page("calculators", data))
}

func (s *Server) calculatorData(r *http.Request, calc service.Calculator) pageData {
	info := calc.Info()
	meta := s.site.Page(info.Title, info.Description, info.Path(), info.Image)
	meta.Keywords = info.Keywords
	data := s.base(r, meta)
	data.Calculator = info
	s.withJSONLD(&data,
		s.site.WebApplication(info),
		s.site.Breadcrumbs(
			seo.Crumb{Name: "Home", Path: "/"},
			seo.Crumb{Name: "Calculators", Path: "/calculators"},
			seo.Crumb{Name: info.Title, Path: info.Path()},
		),
	)
	return data
}

func defaultValues(info domain.CalculatorInfo) map[string]string {
	values := make(map[string]string, len(info.Fields))
	for _, f := range info.Fields {
		values[f.Name] = f.Default
	}
	return values
}

// handleCalculatorPage shows the form filled with defaults and their
// result, so the page is useful before any input.
func (s *Server) handleCalculatorPage(w http.ResponseWriter, r *http.Request) {
	calc, err := s.calculators.Catalog().Get(chi.URLParam(r, "slug"))
	if err != nil {
		s.handleNotFound(w, r)
		return
	}

	data := s.calculatorData(r, calc)
	data.Values = defaultValues(data.Calculator)
	if input, err := s.decodeForm(calc, valuesFrom(data.Values)); err == nil {
		if result, err := s.calculators.Evaluate(r.Context(), data.Calculator.Slug, input); err == nil {
			data.Result = s.views.fmt.newResultView(result)
		}
	}
	render(w, r, http.StatusOK, s.views.page("calculator", data))
}

// handleCalculatorSubmit evaluates a posted form. htmx requests get only
// the result panel and a "calculated" trigger.
func (s *Server) handleCalculatorSubmit(w http.ResponseWriter, r *http.Request) {
	calc, err := s.calculators.Catalog().Get(chi.URLParam(r, "slug"))
	if err != nil {
		s.handleNotFound(w, r)
		return
	}

	data := s.calculatorData(r, calc)
	status := http.StatusOK

	input, err := s.parseCalculatorForm(w, r, calc, &data)
	if err == nil {
		var result any
		result, err = s.calculators.Evaluate(r.Context(), data.Calculator.Slug, input)
		if err == nil {
			data.Result = s.views.fmt.newResultView(result)
		}
	}
	if err != nil {
		status = s.formError(&data, err)
	}

	if htmx.IsHTMX(r) {
		resp := htmx.NewResponse()
		if err == nil {
			resp = resp.AddTrigger(htmx.Trigger("calculated"))
		} else if status >= http.StatusInternalServerError {
			resp = resp.StatusCode(status)
		}
		if werr := resp.RenderTempl(r.Context(), w, s.views.partial("result", data)); werr != nil {
			slog.Warn("failed to render result partial", "error", werr)
		}
		return
	}
	render(w, r, status, s.views.page("calculator", data))
}

// handleCalculatorSave stores the posted form as a saved calculation.
func (s *Server) handleCalculatorSave(w http.ResponseWriter, r *http.Request) {
	calc, err := s.calculators.Catalog().Get(chi.URLParam(r, "slug"))
	if err != nil {
		s.handleNotFound(w, r)
		return
	}

	data := s.calculatorData(r, calc)
	input, err := s.parseCalculatorForm(w, r, calc, &data)
	if err == nil {
		var raw []byte
		raw, err = json.Marshal(input)
		if err == nil {
			_, err = s.calculations.Save(r.Context(), userID(r), data.Calculator.Slug, raw)
		}
	}
	if err != nil {
		status := s.formError(&data, err)
		if htmx.IsHTMX(r) {
			render(w, r, http.StatusOK, s.views.partial("result", data))
			return
		}
		render(w, r, status, s.views.page("calculator", data))
		return
	}
	redirect(w, r, "/account")
}

func (s *Server) parseCalculatorForm(w http.ResponseWriter, r *http.Request, calc service.Calculator, data *pageData) (any, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		data.Values = defaultValues(data.Calculator)
		return nil, domain.Invalid("form", "could not read the form")
	}
	data.Values = make(map[string]string, len(data.Calculator.Fields))
	for _, f := range data.Calculator.Fields {
		data.Values[f.Name] = strings.TrimSpace(r.PostForm.Get(f.Name))
	}
	return s.decodeForm(calc, valuesFrom(data.Values))
}

func valuesFrom(m map[string]string) url.Values {
	v := make(url.Values, len(m))
	for k, s := range m {
		v.Set(k, s)
	}
	return v
}

// decodeForm fills a fresh calculator input from form values.
func (s *Server) decodeForm(calc service.Calculator, values url.Values) (any, error) {
	input := calc.NewInput()
	if err := s.forms.Decode(input, values); err != nil {
		var decodeErrs form.DecodeErrors
		if errors.As(err, &decodeErrs) && len(decodeErrs) > 0 {
			fields := make([]string, 0, len(decodeErrs))
			for field := range decodeErrs {
				fields = append(fields, field)
			}
			sort.Strings(fields)
			return nil, domain.Invalid(formFieldName(calc, fields[0]), "must be a number")
		}
		return nil, domain.Invalid("form", "could not read the form: %v", err)
	}
	return input, nil
}

// formFieldName maps a decoder namespace such as "LoanInput.amount" back to
// the form field name.
func formFieldName(calc service.Calculator, namespace string) string {
	fields := calc.Info().Fields
	for _, f := range fields {
		if namespace == f.Name {
			return f.Name
		}
	}
	for _, f := range fields {
		if strings.HasSuffix(namespace, "."+f.Name) {
			return f.Name
		}
	}
	return namespace
}

func (s *Server) formError(data *pageData, err error) int {
	status := statusFor(err)
	var ve domain.ValidationError
	switch {
	case errors.As(err, &ve):
		data.Error = ve.Message
		data.ErrorField = ve.Field
	case status >= http.StatusInternalServerError:
		slog.Error("calculator form failed", "calculator", data.Calculator.Slug, "error", err)
		data.Error = "Something went wrong. Please try again."
	default:
		data.Error = err.Error()
	}
	return status
}

func (s *Server) handleBlogIndex(w http.ResponseWriter, r *http.Request) {
	meta := s.site.Page("Blog", "Guides to borrowing, saving and paying off debt.", "/blog", "")
	data := s.base(r, meta)
	data.Articles = s.content.Articles()
	s.withJSONLD(&data, s.site.Breadcrumbs(
		seo.Crumb{Name: "Home", Path: "/"},
		seo.Crumb{Name: "Blog", Path: "/blog"},
	))
	render(w, r, http.StatusOK, s.views.page("blog", data))
}

func (s *Server) handleArticle(w http.ResponseWriter, r *http.Request) {
	article, err := s.content.Article(chi.URLParam(r, "slug"))
	if err != nil {
		s.handleNotFound(w, r)
		return
	}

	meta := s.site.Page(article.Title, article.Description, article.Path(), article.Image)
	meta.Type = "article"
	meta.Published = article.Date
	meta.Modified = article.LastModified()
	meta.Keywords = article.Tags

	data := s.base(r, meta)
	data.Article = article
	data.Body = template.HTML(article.HTML)
	s.withJSONLD(&data,
		s.site.BlogPosting(article),
		s.site.Breadcrumbs(
			seo.Crumb{Name: "Home", Path: "/"},
			seo.Crumb{Name: "Blog", Path: "/blog"},
			seo.Crumb{Name: article.Title, Path: article.Path()},
		),
	)
	render(w, r, http.StatusOK, s.views.page("article", data))
}

func (s *Server) handleStaticPage(slug string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := s.content.Page(slug)
		if err != nil {
			s.handleNotFound(w, r)
			return
		}
		data := s.base(r, s.site.Page(page.Title, page.Description, page.Path(), page.Image))
		data.Article = page
		data.Body = template.HTML(page.HTML)
		render(w, r, http.StatusOK, s.views.page("page", data))
	}
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	meta := s.site.Page("Search", "Search calculators and articles.", "/search", "").NoIndex()
	data := s.base(r, meta)
	data.Query = q
	data.Hits = s.search.Search(q)
	if htmx.IsHTMX(r) {
		render(w, r, http.StatusOK, s.views.partial("search_results", data))
		return
	}
	render(w, r, http.StatusOK, s.views.page("search", data))
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	meta := s.site.Page("Page not found", "", r.URL.Path, "").NoIndex()
	data := s.base(r, meta)
	data.Groups = groupCalculators(s.calculators.Catalog().Infos())
	render(w, r, http.StatusNotFound, s.views.page("not_found", data))
}

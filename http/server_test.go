package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fincalc/content"
	"fincalc/repository"
	"fincalc/seo"
	"fincalc/service"
)

type testEnv struct {
	server  *httptest.Server
	catalog *service.Catalog
}

func newTestEnv(t *testing.T, limiter *RateLimiter) *testEnv {
	t.Helper()

	library, err := content.NewLibrary(content.Embedded())
	require.NoError(t, err)

	catalog := service.NewDefaultCatalog(service.NewExplanationService("en-US", "USD"))
	calculators := service.NewCalculatorService(catalog, repository.NewMemoryCache(), time.Hour)

	srv, err := NewServer(Options{
		Calculators:  calculators,
		Calculations: service.NewCalculationService(repository.NewCalculationRepositoryMemory(), calculators),
		Auth:         service.NewAuthService(repository.NewUserRepositoryMemory()),
		Search:       service.NewSearchService(catalog, library),
		Content:      library,
		Sessions:     scs.New(),
		Limiter:      limiter,
		Site: seo.Site{
			Name:        "FinCalc",
			BaseURL:     "https://fincalc.test",
			Description: "Financial calculators.",
			Logo:        "/static/img/logo.svg",
			Locale:      "en-US",
		},
		Currency: "USD",
		Started:  time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return &testEnv{server: ts, catalog: catalog}
}

// client returns an HTTP client with its own cookie jar that does not
// follow redirects.
func (e *testEnv) client(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (e *testEnv) do(t *testing.T, c *http.Client, method, path, contentType string, body io.Reader, headers ...string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(method, e.server.URL+path, body)
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := c.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(data)
}

func (e *testEnv) json(t *testing.T, c *http.Client, method, path string, v any) (*http.Response, string) {
	t.Helper()
	var body io.Reader
	if v != nil {
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	return e.do(t, c, method, path, "application/json", body)
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t, nil)

	resp, body := env.do(t, env.client(t), http.MethodGet, "/healthz", "", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

func TestListCalculators(t *testing.T) {
	env := newTestEnv(t, nil)

	resp, body := env.do(t, env.client(t), http.MethodGet, "/api/calculators", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var infos []struct {
		Slug string `json:"slug"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &infos))
	require.Len(t, infos, len(env.catalog.Slugs()))
	assert.Equal(t, "mortgage", infos[0].Slug)
}

func TestEvaluateLoan(t *testing.T) {
	env := newTestEnv(t, nil)

	resp, body := env.json(t, env.client(t), http.MethodPost, "/api/calculators/loan", map[string]any{
		"amount":      10000,
		"annual_rate": 12,
		"term_months": 24,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, body)

	var out struct {
		Calculator string `json:"calculator"`
		Result     struct {
			MonthlyPayment float64 `json:"monthly_payment"`
			TotalInterest  float64 `json:"total_interest"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.Equal(t, "loan", out.Calculator)
	assert.Equal(t, 470.73, out.Result.MonthlyPayment)
	assert.Equal(t, 1297.63, out.Result.TotalInterest)
}

func TestEvaluateErrors(t *testing.T) {
	env := newTestEnv(t, nil)
	c := env.client(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		field  string
	}{
		{"unknown calculator", "/api/calculators/nope", `{}`, http.StatusNotFound, ""},
		{"invalid amount", "/api/calculators/loan", `{"amount":-1,"annual_rate":5,"term_months":12}`, http.StatusBadRequest, "amount"},
		{"unknown field", "/api/calculators/loan", `{"amount":1000,"bogus":1}`, http.StatusBadRequest, "input"},
		{"malformed json", "/api/calculators/loan", `{"amount":`, http.StatusBadRequest, "input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := env.do(t, c, http.MethodPost, tt.path, "application/json", strings.NewReader(tt.body))
			assert.Equal(t, tt.status, resp.StatusCode, body)

			var e errorBody
			require.NoError(t, json.Unmarshal([]byte(body), &e))
			assert.NotEmpty(t, e.Error)
			assert.Equal(t, tt.field, e.Field)
		})
	}
}

func defaultForm(fields map[string]string) url.Values {
	v := url.Values{}
	for k, s := range fields {
		v.Set(k, s)
	}
	return v
}

func TestCalculatorPages(t *testing.T) {
	env := newTestEnv(t, nil)
	c := env.client(t)

	for _, calc := range env.catalog.All() {
		info := calc.Info()
		t.Run(info.Slug, func(t *testing.T) {
			resp, body := env.do(t, c, http.MethodGet, info.Path(), "", nil)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, body, "<h1>"+info.Title+"</h1>")
			assert.Contains(t, body, `"WebApplication"`)
			assert.Contains(t, body, `<dl class="summary">`, "defaults should produce a result")

			form := defaultForm(defaultValues(info))
			resp, body = env.do(t, c, http.MethodPost, info.Path(),
				"application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.NotContains(t, body, `class="error"`)
			assert.Contains(t, body, `<dl class="summary">`)
		})
	}
}

func TestCalculatorSubmitHTMX(t *testing.T) {
	env := newTestEnv(t, nil)
	c := env.client(t)

	form := url.Values{"amount": {"10000"}, "annual_rate": {"12"}, "term_months": {"24"}}
	resp, body := env.do(t, c, http.MethodPost, "/calculators/loan",
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()), "HX-Request", "true")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("HX-Trigger"), "calculated")
	assert.NotContains(t, body, "<html")
	assert.Contains(t, body, `id="result"`)
	assert.Contains(t, body, "$470.73")
}

func TestCalculatorSubmitValidation(t *testing.T) {
	env := newTestEnv(t, nil)
	c := env.client(t)

	form := url.Values{"amount": {"abc"}, "annual_rate": {"12"}, "term_months": {"24"}}
	resp, body := env.do(t, c, http.MethodPost, "/calculators/loan",
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, `class="error"`)
	assert.Contains(t, body, `value="abc"`)

	form = url.Values{"amount": {"10000"}, "annual_rate": {"12"}, "term_months": {"0"}}
	resp, body = env.do(t, c, http.MethodPost, "/calculators/loan",
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()), "HX-Request", "true")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("HX-Trigger"))
	assert.Contains(t, body, "term_months")
}

func TestUnknownCalculatorPage(t *testing.T) {
	env := newTestEnv(t, nil)

	resp, body := env.do(t, env.client(t), http.MethodGet, "/calculators/nope", "", nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "Page not found")
	assert.Contains(t, body, "noindex")
}

func TestSavedCalculationsRequireSession(t *testing.T) {
	env := newTestEnv(t, nil)
	c := env.client(t)

	resp, _ := env.do(t, c, http.MethodGet, "/api/calculations", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = env.do(t, c, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = env.do(t, c, http.MethodGet, "/account", "", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login?next=%2Faccount", resp.Header.Get("Location"))
}

func register(t *testing.T, env *testEnv, email string) *http.Client {
	t.Helper()
	c := env.client(t)
	resp, body := env.json(t, c, http.MethodPost, "/api/auth/register", credentials{Email: email, Password: "correct horse"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	return c
}

func TestAuthFlow(t *testing.T) {
	env := newTestEnv(t, nil)
	c := register(t, env, "Ana@Example.com")

	resp, body := env.do(t, c, http.MethodGet, "/api/auth/me", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"email":"ana@example.com"`)
	assert.NotContains(t, body, "password")

	resp, _ = env.json(t, env.client(t), http.MethodPost, "/api/auth/register", credentials{Email: "ana@example.com", Password: "another pass"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = env.json(t, c, http.MethodPost, "/api/auth/logout", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = env.do(t, c, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = env.json(t, c, http.MethodPost, "/api/auth/login", credentials{Email: "ana@example.com", Password: "wrong password"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = env.json(t, c, http.MethodPost, "/api/auth/login", credentials{Email: "ana@example.com", Password: "correct horse"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = env.do(t, c, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSavedCalculationsLifecycle(t *testing.T) {
	env := newTestEnv(t, nil)
	owner := register(t, env, "owner@example.com")
	other := register(t, env, "other@example.com")

	resp, body := env.json(t, owner, http.MethodPost, "/api/calculations", map[string]any{
		"calculator_type": "loan",
		"inputs":          map[string]any{"amount": 10000, "annual_rate": 12, "term_months": 24},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)

	var saved struct {
		ID      string         `json:"id"`
		Results map[string]any `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &saved))
	require.NotEmpty(t, saved.ID)
	assert.Equal(t, 470.73, saved.Results["monthly_payment"])

	resp, body = env.do(t, owner, http.MethodGet, "/api/calculations", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, saved.ID)

	resp, body = env.do(t, other, http.MethodGet, "/api/calculations", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, body)

	resp, _ = env.do(t, other, http.MethodGet, "/api/calculations/"+saved.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = env.json(t, other, http.MethodPut, "/api/calculations/"+saved.ID+"/favorite", map[string]bool{"favorite": true})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = env.do(t, other, http.MethodDelete, "/api/calculations/"+saved.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = env.json(t, owner, http.MethodPut, "/api/calculations/"+saved.ID+"/favorite", map[string]bool{"favorite": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"favorite":true`)

	resp, body = env.do(t, owner, http.MethodGet, "/api/calculations?favorites=true", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, saved.ID)

	resp, _ = env.do(t, owner, http.MethodPut, "/api/calculations/"+saved.ID+"/favorite",
		"application/x-www-form-urlencoded", strings.NewReader("favorite=false"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, body = env.do(t, owner, http.MethodGet, "/api/calculations?favorites=true", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, body)

	resp, body = env.do(t, owner, http.MethodGet, "/account", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Loan Calculator")
	assert.Contains(t, body, "$470.73")

	resp, _ = env.do(t, owner, http.MethodDelete, "/api/calculations/"+saved.ID, "", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = env.do(t, owner, http.MethodGet, "/api/calculations/"+saved.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSaveCalculationRejectsBadInput(t *testing.T) {
	env := newTestEnv(t, nil)
	c := register(t, env, "user@example.com")

	resp, _ := env.json(t, c, http.MethodPost, "/api/calculations", map[string]any{
		"calculator_type": "loan",
		"inputs":          map[string]any{"amount": 0, "annual_rate": 5, "term_months": 12},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = env.json(t, c, http.MethodPost, "/api/calculations", map[string]any{
		"calculator_type": "nope",
		"inputs":          map[string]any{},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSaveFromCalculatorPage(t *testing.T) {
	env := newTestEnv(t, nil)
	c := register(t, env, "saver@example.com")

	form := url.Values{"amount": {"10000"}, "annual_rate": {"12"}, "term_months": {"24"}}
	resp, _ := env.do(t, c, http.MethodPost, "/calculators/loan/save",
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/account", resp.Header.Get("Location"))

	resp, body := env.do(t, c, http.MethodGet, "/api/calculations", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"calculator_type":"loan"`)
}

func TestLoginPageFlow(t *testing.T) {
	env := newTestEnv(t, nil)
	register(t, env, "page@example.com")
	c := env.client(t)

	form := url.Values{"email": {"page@example.com"}, "password": {"nope nope"}, "next": {"/account"}}
	resp, body := env.do(t, c, http.MethodPost, "/login", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Email or password is incorrect.")

	form.Set("password", "correct horse")
	form.Set("next", "https://evil.example/")
	resp, _ = env.do(t, c, http.MethodPost, "/login", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/account", resp.Header.Get("Location"))

	resp, _ = env.do(t, c, http.MethodGet, "/account", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRateLimitedAPI(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute)
	t.Cleanup(limiter.Stop)
	env := newTestEnv(t, limiter)
	c := env.client(t)

	body := `{"amount":10000,"annual_rate":12,"term_months":24}`
	for i := 0; i < 2; i++ {
		resp, _ := env.do(t, c, http.MethodPost, "/api/calculators/loan", "application/json", strings.NewReader(body))
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, out := env.do(t, c, http.MethodPost, "/api/calculators/loan", "application/json", strings.NewReader(body))
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
	assert.Contains(t, out, "rate limit exceeded")

	resp, _ = env.do(t, c, http.MethodGet, "/api/calculators", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "reads are not limited")
}

func TestContentPages(t *testing.T) {
	env := newTestEnv(t, nil)
	c := env.client(t)

	resp, body := env.do(t, c, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"SearchAction"`)
	assert.Contains(t, body, `<link rel="canonical" href="https://fincalc.test/">`)

	resp, body = env.do(t, c, http.MethodGet, "/blog", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "/blog/what-is-apr")
	assert.NotContains(t, body, "budgeting-draft")

	resp, body = env.do(t, c, http.MethodGet, "/blog/what-is-apr", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"BlogPosting"`)
	assert.Contains(t, body, `<meta property="og:type" content="article">`)

	resp, _ = env.do(t, c, http.MethodGet, "/blog/budgeting-draft", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	for _, slug := range staticPages {
		resp, _ = env.do(t, c, http.MethodGet, "/"+slug, "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode, slug)
	}

	resp, _ = env.do(t, c, http.MethodGet, "/static/css/site.css", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSearchPage(t *testing.T) {
	env := newTestEnv(t, nil)
	c := env.client(t)

	resp, body := env.do(t, c, http.MethodGet, "/search?q=mortgage", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `href="/calculators/mortgage"`)
	assert.Contains(t, body, "<html")

	resp, body = env.do(t, c, http.MethodGet, "/search?q=mortgage", "", nil, "HX-Request", "true")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, body, "<html")
	assert.Contains(t, body, `id="search-results"`)

	_, body = env.do(t, c, http.MethodGet, "/search?q=zzzzqqq", "", nil)
	assert.Contains(t, body, "No results")
}

func TestSEOEndpoints(t *testing.T) {
	env := newTestEnv(t, nil)
	c := env.client(t)

	resp, body := env.do(t, c, http.MethodGet, "/sitemap.xml", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/xml")
	assert.Contains(t, body, "<loc>https://fincalc.test/calculators/mortgage</loc>")
	assert.Contains(t, body, "<loc>https://fincalc.test/blog/what-is-apr</loc>")

	resp, body = env.do(t, c, http.MethodGet, "/image-sitemap.xml", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<image:loc>https://fincalc.test/static/img/loans.svg</image:loc>")

	resp, body = env.do(t, c, http.MethodGet, "/robots.txt", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Sitemap: https://fincalc.test/sitemap.xml")
}

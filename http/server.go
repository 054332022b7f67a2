// Package http serves the calculator website and its JSON API.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/form/v4"

	"fincalc/content"
	"fincalc/seo"
	"fincalc/service"
)

const maxBodyBytes = 1 << 20

// Options are the dependencies of a Server. Limiter is optional.
type Options struct {
	Calculators  *service.CalculatorService
	Calculations *service.CalculationService
	Auth         *service.AuthService
	Search       *service.SearchService
	Content      *content.Library
	Sessions     *scs.SessionManager
	Limiter      *RateLimiter
	Site         seo.Site
	Currency     string
	// Started stamps sitemap routes that carry no date of their own.
	Started time.Time
}

type Server struct {
	calculators  *service.CalculatorService
	calculations *service.CalculationService
	auth         *service.AuthService
	search       *service.SearchService
	content      *content.Library
	sessions     *scs.SessionManager
	limiter      *RateLimiter
	site         seo.Site
	currency     string
	started      time.Time

	views *views
	forms *form.Decoder
}

func NewServer(opts Options) (*Server, error) {
	if opts.Calculators == nil || opts.Calculations == nil || opts.Auth == nil ||
		opts.Search == nil || opts.Content == nil || opts.Sessions == nil {
		return nil, errors.New("http: missing server dependency")
	}

	v, err := newViews(opts.Site, opts.Currency)
	if err != nil {
		return nil, err
	}

	decoder := form.NewDecoder()
	decoder.SetTagName("form")

	started := opts.Started
	if started.IsZero() {
		started = time.Now()
	}

	return &Server{
		calculators:  opts.Calculators,
		calculations: opts.Calculations,
		auth:         opts.Auth,
		search:       opts.Search,
		content:      opts.Content,
		sessions:     opts.Sessions,
		limiter:      opts.Limiter,
		site:         opts.Site,
		currency:     opts.Currency,
		started:      started,
		views:        v,
		forms:        decoder,
	}, nil
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(s.sessions.LoadAndSave)
	r.Use(s.loadUser)

	limit := func(next http.Handler) http.Handler { return next }
	if s.limiter != nil {
		limit = RateLimitMiddleware(s.limiter)
	}

	r.Get("/healthz", s.handleHealth)
	r.Get("/robots.txt", s.handleRobots)
	r.Get("/sitemap.xml", s.handleSitemap)
	r.Get("/image-sitemap.xml", s.handleImageSitemap)
	r.Handle("/static/*", staticHandler())

	r.Get("/", s.handleHome)
	r.Get("/search", s.handleSearch)
	r.Get("/calculators", s.handleCalculatorIndex)
	r.Get("/calculators/{slug}", s.handleCalculatorPage)
	r.With(limit).Post("/calculators/{slug}", s.handleCalculatorSubmit)
	r.With(limit, s.requirePageUser).Post("/calculators/{slug}/save", s.handleCalculatorSave)
	r.Get("/blog", s.handleBlogIndex)
	r.Get("/blog/{slug}", s.handleArticle)
	for _, slug := range staticPages {
		r.Get("/"+slug, s.handleStaticPage(slug))
	}

	r.Get("/login", s.handleLoginPage)
	r.With(limit).Post("/login", s.handleLoginSubmit)
	r.Get("/register", s.handleRegisterPage)
	r.With(limit).Post("/register", s.handleRegisterSubmit)
	r.Post("/logout", s.handleLogoutSubmit)
	r.With(s.requirePageUser).Get("/account", s.handleAccount)

	r.Route("/api", func(r chi.Router) {
		r.Get("/calculators", s.handleListCalculators)
		r.Get("/calculators/{slug}", s.handleDescribeCalculator)
		r.With(limit).Post("/calculators/{slug}", s.handleEvaluate)

		r.Route("/auth", func(r chi.Router) {
			r.With(limit).Post("/register", s.handleRegister)
			r.With(limit).Post("/login", s.handleLogin)
			r.Post("/logout", s.handleLogout)
			r.Get("/me", s.handleMe)
		})

		r.Route("/calculations", func(r chi.Router) {
			r.Use(s.requireUser)
			r.Get("/", s.handleListCalculations)
			r.With(limit).Post("/", s.handleSaveCalculation)
			r.Get("/{id}", s.handleGetCalculation)
			r.With(limit).Delete("/{id}", s.handleDeleteCalculation)
			r.With(limit).Put("/{id}/favorite", s.handleSetFavorite)
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, r, NewHTTPError(http.StatusNotFound, "no such endpoint"))
		})
	})

	r.NotFound(s.handleNotFound)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

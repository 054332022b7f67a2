// Package app assembles the website from its configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"

	"fincalc/config"
	"fincalc/content"
	httpLayer "fincalc/http"
	"fincalc/repository"
	"fincalc/seo"
	"fincalc/service"
)

const redisPingTimeout = 3 * time.Second

// App holds the wired services and the HTTP handler.
type App struct {
	cfg         config.Config
	site        seo.Site
	catalog     *service.Catalog
	calculators *service.CalculatorService
	content     *content.Library
	limiter     *httpLayer.RateLimiter
	handler     http.Handler
	closers     []func() error
}

// SiteFromConfig maps the site settings onto the SEO model.
func SiteFromConfig(c config.SiteConfig) seo.Site {
	return seo.Site{
		Name:        c.Name,
		BaseURL:     c.BaseURL,
		Description: c.Description,
		Logo:        c.Logo,
		Twitter:     c.Twitter,
		Locale:      c.Locale,
	}
}

// New validates cfg and wires repositories, cache, services and router.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	a := &App{cfg: cfg, site: SiteFromConfig(cfg.Site)}

	calcRepo, userRepo, err := a.openStorage()
	if err != nil {
		return nil, err
	}

	cache := a.openCache(ctx)

	library, err := content.Open(cfg.Content.Dir)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("load content: %w", err)
	}
	a.content = library

	explainer := service.NewExplanationService(cfg.Site.Locale, cfg.Site.Currency)
	a.catalog = service.NewDefaultCatalog(explainer)
	a.calculators = service.NewCalculatorService(a.catalog, cache, cfg.Cache.TTL)

	a.limiter = httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Refill)
	a.closers = append(a.closers, func() error {
		a.limiter.Stop()
		return nil
	})

	server, err := httpLayer.NewServer(httpLayer.Options{
		Calculators:  a.calculators,
		Calculations: service.NewCalculationService(calcRepo, a.calculators),
		Auth:         service.NewAuthService(userRepo),
		Search:       service.NewSearchService(a.catalog, library),
		Content:      library,
		Sessions:     newSessionManager(cfg.Session),
		Limiter:      a.limiter,
		Site:         a.site,
		Currency:     cfg.Site.Currency,
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	a.handler = server.Routes()

	return a, nil
}

func (a *App) openStorage() (repository.CalculationRepository, repository.UserRepository, error) {
	switch a.cfg.Storage.Driver {
	case config.DriverSQLite:
		store, err := repository.OpenSQLite(a.cfg.Storage.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		slog.Info("using sqlite storage", "dsn", a.cfg.Storage.DSN)
		return store, store, nil
	default:
		slog.Info("using in-memory storage")
		return repository.NewCalculationRepositoryMemory(), repository.NewUserRepositoryMemory(), nil
	}
}

// openCache connects to redis when configured. An unreachable redis is
// not fatal; results are then cached in memory.
func (a *App) openCache(ctx context.Context) repository.CacheRepository {
	c := a.cfg.Cache
	if c.Driver != config.DriverRedis {
		return repository.NewMemoryCache()
	}

	redis := repository.NewRedisCache(c.RedisAddr, c.RedisPassword, c.RedisDB, c.Prefix)
	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := redis.Ping(pingCtx); err != nil {
		slog.Warn("redis unavailable, caching in memory", "addr", c.RedisAddr, "error", err)
		_ = redis.Close()
		return repository.NewMemoryCache()
	}

	a.closers = append(a.closers, redis.Close)
	slog.Info("using redis cache", "addr", c.RedisAddr)
	return redis
}

func newSessionManager(c config.SessionConfig) *scs.SessionManager {
	sessionManager := scs.New()
	sessionManager.Store = memstore.New()
	sessionManager.Lifetime = c.Lifetime
	sessionManager.Cookie.Name = c.CookieName
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = c.Secure
	return sessionManager
}

func (a *App) Handler() http.Handler                   { return a.handler }
func (a *App) Catalog() *service.Catalog               { return a.catalog }
func (a *App) Calculators() *service.CalculatorService { return a.calculators }
func (a *App) Content() *content.Library               { return a.content }
func (a *App) Site() seo.Site                          { return a.site }

// Run serves HTTP until ctx is cancelled, then shuts down within the
// configured grace period.
func (a *App) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:         a.cfg.Server.Addr,
		Handler:      a.handler,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	if a.cfg.Content.Watch {
		go a.watchContent(ctx)
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", a.cfg.Server.Addr, "base_url", a.cfg.Site.BaseURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		slog.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server exited")
	return nil
}

func (a *App) watchContent(ctx context.Context) {
	err := a.content.Watch(ctx, content.DefaultDebounce, nil)
	switch {
	case errors.Is(err, content.ErrNotWatchable):
		slog.Warn("content.watch ignored for embedded content")
	case err != nil:
		slog.Error("content watcher stopped", "error", err)
	}
}

// Close releases storage, cache and background workers.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

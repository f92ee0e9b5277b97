package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tendant/chi-demo/app"
	"github.com/tendant/simple-portfolio/pkg/portfolio"
)

// DefaultSiteTitle is the heading shown on the page
const DefaultSiteTitle = "Richard Quintero"

// RouterOption configures NewRouter
type RouterOption func(*routerConfig)

type routerConfig struct {
	siteTitle string
	cors      bool
	timeout   time.Duration
}

// WithSiteTitle sets the page heading
func WithSiteTitle(title string) RouterOption {
	return func(c *routerConfig) { c.siteTitle = title }
}

// WithCORS allows cross-origin reads of the JSON API
func WithCORS(enabled bool) RouterOption {
	return func(c *routerConfig) { c.cors = enabled }
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) RouterOption {
	return func(c *routerConfig) { c.timeout = d }
}

// NewRouter wires the page, the JSON API, the asset routes and health checks.
func NewRouter(provider portfolio.Provider, store portfolio.AssetStore, opts ...RouterOption) *chi.Mux {
	cfg := routerConfig{siteTitle: DefaultSiteTitle, timeout: 60 * time.Second}
	for _, opt := range opts {
		opt(&cfg)
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(cfg.timeout))
	if cfg.cors {
		r.Use(corsMiddleware)
	}

	app.RoutesHealthz(r)
	app.RoutesHealthzReady(r)

	page := NewPageHandler(provider, cfg.siteTitle)
	r.Get("/", page.Page)

	r.Mount("/api/v1", NewContentHandler(provider).Routes())

	if store != nil {
		NewAssetHandler(store).Mount(r)
	}

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

package handlers

import (
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"momir/internal/config"
	localMiddleware "momir/internal/middleware"
)

// RouterOptions allows customization of router setup for tests
type RouterOptions struct {
	DisableRateLimiting  bool
	DisableRequestLogger bool
	CustomMiddleware     []func(http.Handler) http.Handler
	StaticFS             fs.FS // defaults to the "static" directory
}

// SetupRouter creates the application router with all routes and middleware
func SetupRouter(h *Handler, cfg *config.Config, opts *RouterOptions) *chi.Mux {
	if opts == nil {
		opts = &RouterOptions{}
	}
	static := opts.StaticFS
	if static == nil {
		static = os.DirFS("static")
	}

	r := chi.NewRouter()

	if !opts.DisableRequestLogger {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	r.Use(localMiddleware.RequestSizeLimiter(cfg.Server.MaxRequestSize))
	r.Use(localMiddleware.SecurityHeaders())

	if !opts.DisableRateLimiting {
		rateLimiter := localMiddleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateLimitBurst, h.logger)
		r.Use(rateLimiter.Middleware())
	}

	for _, mw := range opts.CustomMiddleware {
		r.Use(mw)
	}

	// Pages and assets are short requests
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout(cfg)))

		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
		r.Get("/", h.Home)
		r.Get("/share/qr.png", h.ShareQR)

		// Health check endpoints (no auth required)
		r.Get("/health/live", h.Live)
		r.Get("/health/ready", h.Ready)
	})

	// Actions stream over SSE until the fetch or print job settles
	r.Group(func(r chi.Router) {
		r.Use(ValidateDatastarRequest)

		r.Post("/momir/{mv}", h.Momir)
		r.Post("/mode/{mode}", h.SetMode)
		r.Post("/history/{id}", h.RecallHistory)
		r.Post("/card/print", h.CardClicked)
		r.Post("/print", h.Print)
	})

	return r
}

func requestTimeout(cfg *config.Config) time.Duration {
	if cfg.Server.RequestTimeout > 0 {
		return cfg.Server.RequestTimeout
	}
	return 60 * time.Second
}

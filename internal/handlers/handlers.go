package handlers

import (
	"context"
	"log/slog"

	"momir/internal/config"
	"momir/internal/momir"
	"momir/internal/scryfall"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	app        *momir.App
	cfg        *config.Config
	manaValues []int
	logger     *slog.Logger
	ready      func(ctx context.Context) error
}

// New creates a new handler
func New(app *momir.App, cfg *config.Config, logger *slog.Logger) *Handler {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		app:        app,
		cfg:        cfg,
		manaValues: scryfall.ManaValues(),
		logger:     logger,
	}
}

// App returns the handler's application state (for testing)
func (h *Handler) App() *momir.App {
	return h.app
}

// SetReadinessCheck sets the check behind /health/ready
func (h *Handler) SetReadinessCheck(check func(ctx context.Context) error) {
	h.ready = check
}

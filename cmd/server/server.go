package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/go-chi/chi/v5"
	static "momir"
	"momir/internal/config"
	"momir/internal/handlers"
	"momir/internal/momir"
	"momir/internal/rawbt"
	"momir/internal/scryfall"
	"momir/internal/store"
)

// Server bundles the router with the resources it owns
type Server struct {
	Router *chi.Mux
	App    *momir.App
	Store  store.Store
}

// SetupServer wires the preference store, the card client and the printer
// bridge into the app and its routes
func SetupServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Server, error) {
	prefs, err := store.Open(cfg.Store.Driver, cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("open preference store: %w", err)
	}

	client := scryfall.NewClient(scryfall.Config{
		RandomURL:       cfg.Scryfall.BaseURL,
		UserAgent:       cfg.Scryfall.UserAgent,
		Timeout:         cfg.Scryfall.Timeout,
		RequestInterval: cfg.Scryfall.RequestInterval,
		Query:           scryfall.QueryOptions{ExcludedCards: cfg.Scryfall.ExcludedCards},
		Logger:          logger.With("component", "scryfall"),
	})

	app := momir.NewApp(client, newPrinter(cfg, logger), prefs, momir.Options{
		HistoryCapacity: cfg.History.Capacity,
		Logger:          logger.With("component", "app"),
	})
	app.Restore(ctx)

	h := handlers.New(app, cfg, logger.With("component", "http"))
	h.SetReadinessCheck(prefs.Ping)

	router := handlers.SetupRouter(h, cfg, &handlers.RouterOptions{
		StaticFS: static.StaticFS(),
	})

	return &Server{Router: router, App: app, Store: prefs}, nil
}

// Close releases the preference store
func (s *Server) Close() error {
	return s.Store.Close()
}

// newPrinter picks the RawBT strategy from config
func newPrinter(cfg *config.Config, logger *slog.Logger) momir.Printer {
	if cfg.Printer.Strategy == config.StrategyScheme {
		return rawbt.SchemePrinter{}
	}
	return rawbt.NewSocketPrinter(rawbt.SocketConfig{
		URL:           cfg.Printer.WebSocketURL,
		DialTimeout:   cfg.Printer.DialTimeout,
		JobTimeout:    cfg.Printer.JobTimeout,
		GraphicFilter: cfg.Printer.GraphicFilter,
		Logger:        logger.With("component", "rawbt"),
	})
}

// newLogger builds the process logger from the server settings
func newLogger(settings config.ServerSettings, w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(settings.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(settings.LogFormat) == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

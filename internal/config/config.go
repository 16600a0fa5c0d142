package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// This file defines the configuration structures used by viper_config.go
// The actual loading is handled by viper in viper_config.go

// Config is the complete application configuration
type Config struct {
	Server   ServerSettings   `yaml:"server"`
	Scryfall ScryfallSettings `yaml:"scryfall"`
	Printer  PrinterSettings  `yaml:"printer"`
	Store    StoreSettings    `yaml:"store"`
	History  HistorySettings  `yaml:"history"`
}

// ServerSettings contains HTTP server settings
type ServerSettings struct {
	Port            string        `yaml:"port"`
	Host            string        `yaml:"host"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	IdleTimeout     time.Duration `yaml:"idleTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	RequestTimeout  time.Duration `yaml:"requestTimeout"` // middleware timeout for page requests

	// Rate limiting (using golang.org/x/time/rate)
	RateLimit      float64 `yaml:"rateLimit"` // requests per second
	RateLimitBurst int     `yaml:"rateLimitBurst"`

	MaxRequestSize int64 `yaml:"maxRequestSize"`

	LogLevel  string `yaml:"logLevel"`
	LogFormat string `yaml:"logFormat"`
}

// ScryfallSettings configures the card image API
type ScryfallSettings struct {
	BaseURL         string        `yaml:"baseURL"`
	UserAgent       string        `yaml:"userAgent"`
	Timeout         time.Duration `yaml:"timeout"`
	RequestInterval time.Duration `yaml:"requestInterval"`
	ExcludedCards   []string      `yaml:"excludedCards"`
}

// PrinterSettings configures the RawBT bridge
type PrinterSettings struct {
	Strategy      string        `yaml:"strategy"` // websocket or scheme
	WebSocketURL  string        `yaml:"websocketURL"`
	DialTimeout   time.Duration `yaml:"dialTimeout"`
	JobTimeout    time.Duration `yaml:"jobTimeout"`
	GraphicFilter int           `yaml:"graphicFilter"`
}

// StoreSettings selects where preferences are kept
type StoreSettings struct {
	Driver string `yaml:"driver"` // memory or sqlite
	Path   string `yaml:"path"`
}

// HistorySettings configures the recent-cards strip
type HistorySettings struct {
	Capacity int `yaml:"capacity"`
}

// Printer strategies
const (
	StrategyWebSocket = "websocket"
	StrategyScheme    = "scheme"
)

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Port:            "8080",
			Host:            "localhost",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    0, // SSE responses stay open while printing
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RequestTimeout:  60 * time.Second,

			RateLimit:      10,
			RateLimitBurst: 20,

			MaxRequestSize: 1048576, // 1MB

			LogLevel:  "info",
			LogFormat: "text",
		},
		Scryfall: ScryfallSettings{
			BaseURL:         "https://api.scryfall.com/cards/random",
			UserAgent:       "momir/1.0",
			Timeout:         30 * time.Second,
			RequestInterval: 100 * time.Millisecond,
			ExcludedCards:   []string{"Shadowborn Apostle"},
		},
		Printer: PrinterSettings{
			Strategy:      StrategyWebSocket,
			WebSocketURL:  "ws://localhost:40213/",
			DialTimeout:   5 * time.Second,
			JobTimeout:    2 * time.Minute,
			GraphicFilter: 2,
		},
		Store: StoreSettings{
			Driver: "sqlite",
			Path:   "momir.db",
		},
		History: HistorySettings{
			Capacity: 5,
		},
	}
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port must be set")
	}
	if c.Server.Host == "" {
		return fmt.Errorf("server host must be set")
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("rateLimit cannot be negative")
	}
	if c.Server.MaxRequestSize <= 0 {
		return fmt.Errorf("maxRequestSize must be positive")
	}

	switch strings.ToLower(c.Server.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown logLevel %q", c.Server.LogLevel)
	}
	switch strings.ToLower(c.Server.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown logFormat %q", c.Server.LogFormat)
	}

	if _, err := url.ParseRequestURI(c.Scryfall.BaseURL); err != nil {
		return fmt.Errorf("scryfall baseURL: %w", err)
	}
	if c.Scryfall.Timeout <= 0 {
		return fmt.Errorf("scryfall timeout must be positive")
	}

	switch c.Printer.Strategy {
	case StrategyWebSocket:
		u, err := url.Parse(c.Printer.WebSocketURL)
		if err != nil {
			return fmt.Errorf("printer websocketURL: %w", err)
		}
		if u.Scheme != "ws" && u.Scheme != "wss" {
			return fmt.Errorf("printer websocketURL must use ws or wss, got %q", u.Scheme)
		}
	case StrategyScheme:
	default:
		return fmt.Errorf("unknown printer strategy %q", c.Printer.Strategy)
	}

	switch c.Store.Driver {
	case "memory":
	case "sqlite":
		if c.Store.Path == "" {
			return fmt.Errorf("store path must be set for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}

	if c.History.Capacity < 1 {
		return fmt.Errorf("history capacity must be at least 1")
	}

	return nil
}

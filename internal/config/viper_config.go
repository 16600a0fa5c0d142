package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads configuration using Viper
// Priority order: Environment variables > Config file > Defaults
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("momir")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/momir")
	}

	// MOMIR_SERVER_PORT and PORT both work
	v.SetEnvPrefix("momir")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("server.port", "MOMIR_SERVER_PORT", "PORT")
	v.BindEnv("server.host", "MOMIR_SERVER_HOST", "HOST")
	v.BindEnv("server.loglevel", "MOMIR_SERVER_LOGLEVEL", "LOG_LEVEL")
	v.BindEnv("server.logformat", "MOMIR_SERVER_LOGFORMAT", "LOG_FORMAT")
	v.BindEnv("server.ratelimit", "MOMIR_SERVER_RATELIMIT", "RATE_LIMIT")
	v.BindEnv("server.ratelimitburst", "MOMIR_SERVER_RATELIMITBURST", "RATE_LIMIT_BURST")
	v.BindEnv("printer.strategy", "MOMIR_PRINTER_STRATEGY", "RAWBT_STRATEGY")
	v.BindEnv("printer.websocketurl", "MOMIR_PRINTER_WEBSOCKETURL", "RAWBT_URL")
	v.BindEnv("store.driver", "MOMIR_STORE_DRIVER", "STORE_DRIVER")
	v.BindEnv("store.path", "MOMIR_STORE_PATH", "STORE_PATH")

	setDefaults(v, DefaultConfig())

	// Only the searched-for file is optional; a path given explicitly must exist
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.readtimeout", d.Server.ReadTimeout)
	v.SetDefault("server.writetimeout", d.Server.WriteTimeout)
	v.SetDefault("server.idletimeout", d.Server.IdleTimeout)
	v.SetDefault("server.shutdowntimeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.requesttimeout", d.Server.RequestTimeout)
	v.SetDefault("server.ratelimit", d.Server.RateLimit)
	v.SetDefault("server.ratelimitburst", d.Server.RateLimitBurst)
	v.SetDefault("server.maxrequestsize", d.Server.MaxRequestSize)
	v.SetDefault("server.loglevel", d.Server.LogLevel)
	v.SetDefault("server.logformat", d.Server.LogFormat)

	v.SetDefault("scryfall.baseurl", d.Scryfall.BaseURL)
	v.SetDefault("scryfall.useragent", d.Scryfall.UserAgent)
	v.SetDefault("scryfall.timeout", d.Scryfall.Timeout)
	v.SetDefault("scryfall.requestinterval", d.Scryfall.RequestInterval)
	v.SetDefault("scryfall.excludedcards", d.Scryfall.ExcludedCards)

	v.SetDefault("printer.strategy", d.Printer.Strategy)
	v.SetDefault("printer.websocketurl", d.Printer.WebSocketURL)
	v.SetDefault("printer.dialtimeout", d.Printer.DialTimeout)
	v.SetDefault("printer.jobtimeout", d.Printer.JobTimeout)
	v.SetDefault("printer.graphicfilter", d.Printer.GraphicFilter)

	v.SetDefault("store.driver", d.Store.Driver)
	v.SetDefault("store.path", d.Store.Path)

	v.SetDefault("history.capacity", d.History.Capacity)
}

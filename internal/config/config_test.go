package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("LoadDefaultWhenMissing", func(t *testing.T) {
		config, err := LoadConfig("")
		require.NoError(t, err)
		require.NotNil(t, config)

		assert.Equal(t, "8080", config.Server.Port)
		assert.Equal(t, "localhost", config.Server.Host)
		assert.Equal(t, 5, config.History.Capacity)
		assert.Equal(t, StrategyWebSocket, config.Printer.Strategy)
		assert.Equal(t, "ws://localhost:40213/", config.Printer.WebSocketURL)
		assert.Equal(t, []string{"Shadowborn Apostle"}, config.Scryfall.ExcludedCards)
		assert.Equal(t, 100*time.Millisecond, config.Scryfall.RequestInterval)
	})

	t.Run("LoadFromYAML", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "momir.yaml")

		yamlContent := `
server:
  port: "9090"
  logFormat: json
scryfall:
  timeout: 5s
  excludedCards:
    - Shadowborn Apostle
    - Relentless Rats
printer:
  strategy: scheme
store:
  driver: memory
history:
  capacity: 8
`
		require.NoError(t, os.WriteFile(configPath, []byte(yamlContent), 0644))

		config, err := LoadConfig(configPath)
		require.NoError(t, err)

		assert.Equal(t, "9090", config.Server.Port)
		assert.Equal(t, "json", config.Server.LogFormat)
		assert.Equal(t, 5*time.Second, config.Scryfall.Timeout)
		assert.Equal(t, []string{"Shadowborn Apostle", "Relentless Rats"}, config.Scryfall.ExcludedCards)
		assert.Equal(t, StrategyScheme, config.Printer.Strategy)
		assert.Equal(t, "memory", config.Store.Driver)
		assert.Equal(t, 8, config.History.Capacity)
		// untouched keys keep their defaults
		assert.Equal(t, "localhost", config.Server.Host)
	})

	t.Run("EnvOverridesFile", func(t *testing.T) {
		t.Setenv("PORT", "7070")
		t.Setenv("RAWBT_URL", "ws://192.168.1.20:40213/")

		config, err := LoadConfig("")
		require.NoError(t, err)

		assert.Equal(t, "7070", config.Server.Port)
		assert.Equal(t, "ws://192.168.1.20:40213/", config.Printer.WebSocketURL)
	})

	t.Run("MissingExplicitFileIsAnError", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nonexistent.yaml"))
		assert.ErrorContains(t, err, "error reading config file")
	})

	t.Run("InvalidFileIsRejected", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "momir.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("printer:\n  strategy: bluetooth\n"), 0644))

		_, err := LoadConfig(configPath)
		assert.ErrorContains(t, err, "unknown printer strategy")
	})
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c *Config)
		errorMsg string
	}{
		{"ValidConfig", func(c *Config) {}, ""},
		{"MissingPort", func(c *Config) { c.Server.Port = "" }, "server port must be set"},
		{"MissingHost", func(c *Config) { c.Server.Host = "" }, "server host must be set"},
		{"BadLogLevel", func(c *Config) { c.Server.LogLevel = "loud" }, "unknown logLevel"},
		{"BadLogFormat", func(c *Config) { c.Server.LogFormat = "xml" }, "unknown logFormat"},
		{"BadScryfallURL", func(c *Config) { c.Scryfall.BaseURL = "not a url" }, "scryfall baseURL"},
		{"HTTPWebSocketURL", func(c *Config) { c.Printer.WebSocketURL = "http://localhost:40213/" }, "must use ws or wss"},
		{"SchemeIgnoresWebSocketURL", func(c *Config) {
			c.Printer.Strategy = StrategyScheme
			c.Printer.WebSocketURL = ""
		}, ""},
		{"UnknownStore", func(c *Config) { c.Store.Driver = "redis" }, "unknown store driver"},
		{"SQLiteNeedsPath", func(c *Config) { c.Store.Path = "" }, "store path must be set"},
		{"ZeroHistory", func(c *Config) { c.History.Capacity = 0 }, "history capacity must be at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errorMsg)
		})
	}
}

func TestAddr(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, "localhost:8080", c.Addr())
}

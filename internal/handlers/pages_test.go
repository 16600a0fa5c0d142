package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"momir/internal/momir"
)

func TestHomePage(t *testing.T) {
	t.Run("renders controls for every mana value", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(http.MethodGet, "/", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		body := w.Body.String()
		assert.Contains(t, body, "<title>Momir</title>")
		assert.Contains(t, body, `id="momir-buttons"`)
		assert.Contains(t, body, "@post(&#39;/momir/0&#39;)")
		assert.Contains(t, body, "@post(&#39;/momir/16&#39;)")
		assert.NotContains(t, body, "@post(&#39;/momir/17&#39;)")
	})

	t.Run("restored mode is pre-selected", func(t *testing.T) {
		env := newTestEnv(t)
		env.prefs.Set(context.Background(), momir.PreferenceKey, "rawbt")
		env.handler.App().Restore(context.Background())

		w := env.do(http.MethodGet, "/", "")
		assert.Contains(t, w.Body.String(), `value="rawbt" checked`)
	})

	t.Run("invalid stored mode selects nothing", func(t *testing.T) {
		env := newTestEnv(t)
		env.prefs.Set(context.Background(), momir.PreferenceKey, "carrier-pigeon")
		env.handler.App().Restore(context.Background())

		w := env.do(http.MethodGet, "/", "")
		assert.NotContains(t, w.Body.String(), "checked")
	})

	t.Run("security headers are set", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(http.MethodGet, "/", "")
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	})
}

func TestStaticFiles(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/static/momir.css", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "margin: 0")

	w = env.do(http.MethodGet, "/static/missing.css", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestShareQR(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/share/qr.png", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG\r\n\x1a\n")), "body is not a PNG")
}

func TestHealthEndpoints(t *testing.T) {
	t.Run("live", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(http.MethodGet, "/health/live", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "OK", w.Body.String())
	})

	t.Run("ready uses the store check", func(t *testing.T) {
		env := newTestEnv(t)
		env.handler.SetReadinessCheck(env.prefs.Ping)
		w := env.do(http.MethodGet, "/health/ready", "")
		assert.Equal(t, http.StatusOK, w.Code)

		env.handler.SetReadinessCheck(func(context.Context) error {
			return errors.New("database is locked")
		})
		w = env.do(http.MethodGet, "/health/ready", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

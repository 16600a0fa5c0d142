package handlers

import (
	"crypto/tls"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"momir/internal/momir"
)

func TestNew(t *testing.T) {
	app := momir.NewApp(nil, nil, nil, momir.Options{})
	handler := New(app, nil, nil)

	if handler == nil {
		t.Fatal("New returned nil handler")
	}
	if handler.App() != app {
		t.Error("handler app is not the provided app")
	}
	if handler.cfg == nil {
		t.Error("handler config defaulted to nil")
	}
	assert.Len(t, handler.manaValues, 17)
}

func TestParseManaValue(t *testing.T) {
	tests := []struct {
		raw  string
		want int
		ok   bool
	}{
		{"0", 0, true},
		{"14", 14, true},
		{"15", 15, true},
		{"16", 16, true},
		{"17", 0, false},
		{"-1", 0, false},
		{"", 0, false},
		{"three", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseManaValue(tt.raw)
		assert.Equal(t, tt.ok, ok, "parseManaValue(%q)", tt.raw)
		assert.Equal(t, tt.want, got, "parseManaValue(%q)", tt.raw)
	}
}

func TestLaunchScript(t *testing.T) {
	script := launchScript(`rawbt:data:image/png;base64,ab+/=`)
	assert.Equal(t, `window.location.href = "rawbt:data:image/png;base64,ab+/="`, script)

	// quotes and tags cannot break out of the string literal
	script = launchScript(`rawbt:"</script>`)
	assert.Equal(t, `window.location.href = "rawbt:\"\u003c/script\u003e"`, script)
}

func TestGetBaseURL(t *testing.T) {
	req := httptest.NewRequest("GET", "http://momir.local:8080/share/qr.png", nil)
	assert.Equal(t, "http://momir.local:8080", getBaseURL(req))

	req.TLS = &tls.ConnectionState{}
	assert.Equal(t, "https://momir.local:8080", getBaseURL(req))

	req.Header.Set("X-Forwarded-Proto", "http")
	req.Header.Set("X-Forwarded-Host", "192.168.1.10:8080")
	assert.Equal(t, "http://192.168.1.10:8080", getBaseURL(req))
}

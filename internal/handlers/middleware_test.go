package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDatastarRequest(t *testing.T) {
	// Echo the body so tests can check it survives validation
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK" + string(body)))
	})

	handler := ValidateDatastarRequest(testHandler)

	get := func(query string) *http.Request {
		return httptest.NewRequest(http.MethodGet, "/momir/3?"+query, nil)
	}
	post := func(body string) *http.Request {
		return httptest.NewRequest(http.MethodPost, "/momir/3", strings.NewReader(body))
	}
	bigState := `{"mode":"` + strings.Repeat("a", 8200) + `"}`

	tests := []struct {
		name   string
		req    *http.Request
		status int
		body   string
	}{
		{"known signal in query", get("datastar=" + url.QueryEscape(`{"mode":"show"}`)), http.StatusOK, "OK"},
		{"no parameters", get(""), http.StatusOK, "OK"},
		{"unknown parameter", get("invalid=test"), http.StatusBadRequest, "Invalid parameter"},
		{"unknown parameter next to datastar", get("datastar=%7B%7D&invalid=test"), http.StatusBadRequest, "Invalid parameter"},
		{"oversized datastar parameter", get("datastar=" + strings.Repeat("a", 8193)), http.StatusBadRequest, "Datastar state too large"},
		{"oversized query string", get("datastar=" + strings.Repeat("a", 10001)), http.StatusRequestURITooLong, "Query string too large"},
		{"repeated datastar parameter", get("datastar=%7B%7D&datastar=%7B%7D"), http.StatusBadRequest, "Invalid datastar parameter"},
		{"malformed query", get("datastar=%"), http.StatusBadRequest, "Invalid query parameters"},
		{"body with known signals is passed on", post(`{"mode":"print","loading":false}`), http.StatusOK, `OK{"mode":"print","loading":false}`},
		{"zen signal from the page", post(`{"mode":"show","loading":false,"zen":true}`), http.StatusOK, `OK{"mode":"show","loading":false,"zen":true}`},
		{"empty body", post(""), http.StatusOK, "OK"},
		{"body with unknown signal", post(`{"mode":"print","maliciousSignal":"hack"}`), http.StatusBadRequest, "Invalid signal in datastar: maliciousSignal"},
		{"body with broken JSON", post(`{invalid json`), http.StatusBadRequest, "Invalid datastar JSON"},
		{"oversized body", post(bigState), http.StatusBadRequest, "Datastar state too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, tt.req)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

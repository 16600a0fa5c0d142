package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
)

const (
	maxQueryLength  = 10000
	maxSignalsBytes = 8192
)

// allowedDatastarSignals defines all valid signal names a datastar request may carry
var allowedDatastarSignals = map[string]bool{
	"mode":    true,
	"loading": true,
	"zen":     true,
}

// ValidateDatastarRequest rejects datastar requests carrying unknown signals.
// GET requests send signals in the "datastar" query parameter, other methods
// send them as the JSON body.
func ValidateDatastarRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(r.URL.RawQuery) > maxQueryLength {
			http.Error(w, "Query string too large", http.StatusRequestURITooLong)
			return
		}

		params, err := url.ParseQuery(r.URL.RawQuery)
		if err != nil {
			http.Error(w, "Invalid query parameters", http.StatusBadRequest)
			return
		}

		for key, values := range params {
			if key != "datastar" {
				http.Error(w, "Invalid parameter", http.StatusBadRequest)
				return
			}
			if len(values) != 1 {
				http.Error(w, "Invalid datastar parameter", http.StatusBadRequest)
				return
			}
			if msg, status := validateSignals([]byte(values[0])); status != http.StatusOK {
				http.Error(w, msg, status)
				return
			}
		}

		if r.Method != http.MethodGet && r.Body != nil {
			body, err := io.ReadAll(io.LimitReader(r.Body, maxSignalsBytes+1))
			if err != nil {
				http.Error(w, "Invalid request body", http.StatusBadRequest)
				return
			}
			r.Body.Close()
			if msg, status := validateSignals(body); status != http.StatusOK {
				http.Error(w, msg, status)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		next.ServeHTTP(w, r)
	})
}

// validateSignals checks a signals payload; empty is OK
func validateSignals(payload []byte) (string, int) {
	if len(payload) > maxSignalsBytes {
		return "Datastar state too large", http.StatusBadRequest
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		return "", http.StatusOK
	}

	var signals map[string]interface{}
	if err := json.Unmarshal(payload, &signals); err != nil {
		return "Invalid datastar JSON", http.StatusBadRequest
	}
	for name := range signals {
		if !allowedDatastarSignals[name] {
			return "Invalid signal in datastar: " + name, http.StatusBadRequest
		}
	}
	return "", http.StatusOK
}

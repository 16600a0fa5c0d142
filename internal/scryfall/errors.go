package scryfall

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// NetworkError is a transport-level failure talking to the API
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError is a non-success response from the API
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// errorBody is the subset of the API error object we surface
type errorBody struct {
	Details  string          `json:"details"`
	Warnings json.RawMessage `json:"warnings"`
}

// ErrorMessage reads a failed response body into a human readable message.
// JSON bodies yield their details (and warnings, when present); anything
// else is returned as raw text.
func ErrorMessage(resp *http.Response) string {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Sprintf("unreadable error body: %v", err)
	}

	if !strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		return string(body)
	}

	var payload errorBody
	if err := json.Unmarshal(body, &payload); err != nil {
		return string(body)
	}

	warnings := formatWarnings(payload.Warnings)
	if warnings == "" {
		return payload.Details
	}
	return payload.Details + " " + warnings
}

// formatWarnings renders warnings the way a browser stringifies them:
// arrays joined with commas, strings as they are. A missing or null field
// renders as nothing.
func formatWarnings(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, ",")
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}
	return string(raw)
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/a-h/templ"
	datastar "github.com/starfederation/datastar-go/datastar"
	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"
	"momir/internal/momir"
	"momir/internal/views/components"
	"momir/internal/views/pages"
)

// stream returns a notify func that pushes every intermediate state to the page
func (h *Handler) stream(sse *datastar.ServerSentEventGenerator) momir.Notify {
	return func(state momir.State) {
		h.sendState(sse, state)
	}
}

// sendState patches every region that depends on state
func (h *Handler) sendState(sse *datastar.ServerSentEventGenerator, state momir.State) {
	regions := []struct {
		selector  string
		component templ.Component
	}{
		{"#content", components.Content(state)},
		{"#controls", components.Controls(state, h.manaValues)},
		{"#card", components.Card(state)},
	}
	for _, region := range regions {
		if err := sse.PatchElements(renderToString(region.component), datastar.WithSelector(region.selector)); err != nil {
			h.logger.Debug("patch failed", "selector", region.selector, "error", err)
			return
		}
	}
	if err := sse.MarshalAndPatchSignals(pages.SignalsFor(state)); err != nil {
		h.logger.Debug("signal patch failed", "error", err)
	}
}

// sendEffects runs the browser side effects an action asked for
func (h *Handler) sendEffects(sse *datastar.ServerSentEventGenerator, effects momir.Effects) {
	if effects.PrintDialog {
		if err := sse.ExecuteScript("window.print()"); err != nil {
			h.logger.Debug("print script failed", "error", err)
		}
	}
	if effects.LaunchURL != "" {
		if err := sse.ExecuteScript(launchScript(effects.LaunchURL)); err != nil {
			h.logger.Debug("launch script failed", "error", err)
		}
	}
}

// launchScript navigates the browser to url, handing it to the app registered for its scheme
func launchScript(url string) string {
	quoted, err := json.Marshal(url)
	if err != nil {
		return ""
	}
	return "window.location.href = " + string(quoted)
}

// renderToString renders a templ component to string
func renderToString(component templ.Component) string {
	buf := &bytes.Buffer{}
	if err := component.Render(context.Background(), buf); err != nil {
		slog.Error("render failed", "error", err)
	}
	return buf.String()
}

// generateQRCode generates a PNG QR code for the given URL
func generateQRCode(url string) ([]byte, error) {
	qrc, err := qrcode.NewWith(url,
		qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium),
		qrcode.WithEncodingMode(qrcode.EncModeByte),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	tmp, err := os.CreateTemp("", "momir-qr-*.png")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpFile := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpFile)

	w, err := standard.New(tmpFile,
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
		standard.WithQRWidth(8), // 8 pixels per module
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create writer: %w", err)
	}

	if err := qrc.Save(w); err != nil {
		return nil, fmt.Errorf("failed to save QR code: %w", err)
	}

	data, err := os.ReadFile(tmpFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read QR code file: %w", err)
	}
	return data, nil
}

// getBaseURL constructs the base URL from the request
func getBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	// Check for X-Forwarded-Proto header (common in reverse proxy setups)
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	host := r.Host
	if forwardedHost := r.Header.Get("X-Forwarded-Host"); forwardedHost != "" {
		host = forwardedHost
	}

	return fmt.Sprintf("%s://%s", scheme, host)
}

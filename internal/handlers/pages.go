package handlers

import (
	"net/http"

	"momir/internal/views/pages"
)

// Home renders the app page for the current state
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	component := pages.Home(h.app.State(), h.manaValues)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		h.logger.Error("render home failed", "error", err)
	}
}

// ShareQR serves a QR code of the page URL so it can be opened on a phone
func (h *Handler) ShareQR(w http.ResponseWriter, r *http.Request) {
	png, err := generateQRCode(getBaseURL(r) + "/")
	if err != nil {
		h.logger.Error("qr code failed", "error", err)
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(png)
}

// Live reports that the process is up
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// Ready reports whether the preference store is reachable
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil {
		if err := h.ready(r.Context()); err != nil {
			h.logger.Warn("readiness check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("Store not ready"))
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

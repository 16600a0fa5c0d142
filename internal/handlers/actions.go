package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	datastar "github.com/starfederation/datastar-go/datastar"
	"momir/internal/momir"
)

const maxManaValue = 16

// parseManaValue accepts 0 through 16
func parseManaValue(raw string) (int, bool) {
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 || v > maxManaValue {
		return 0, false
	}
	return v, true
}

// Momir fetches a random creature for the mana value and shows or prints it
// according to the selected mode, streaming each step to the page
func (h *Handler) Momir(w http.ResponseWriter, r *http.Request) {
	manaValue, ok := parseManaValue(chi.URLParam(r, "mv"))
	if !ok {
		http.Error(w, "Invalid mana value", http.StatusBadRequest)
		return
	}

	sse := datastar.NewSSE(w, r)
	effects, err := h.app.Momir(r.Context(), manaValue, h.stream(sse))
	if errors.Is(err, momir.ErrBusy) {
		h.logger.Debug("ignoring trigger while loading", "mana_value", manaValue)
		return
	}
	if err != nil {
		h.logger.Warn("momir cycle failed", "mana_value", manaValue, "error", err)
	}

	h.sendState(sse, h.app.State())
	h.sendEffects(sse, effects)
}

// RecallHistory swaps a history thumbnail with the displayed card
func (h *Handler) RecallHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	sse := datastar.NewSSE(w, r)
	effects, err := h.app.Recall(r.Context(), id, h.stream(sse))
	switch {
	case errors.Is(err, momir.ErrBusy):
		h.logger.Debug("ignoring recall while loading", "id", id)
		return
	case errors.Is(err, momir.ErrHistoryEntryNotFound):
		h.logger.Info("history entry not found", "id", id)
	case err != nil:
		h.logger.Warn("recall failed", "id", id, "error", err)
	}

	h.sendState(sse, h.app.State())
	h.sendEffects(sse, effects)
}

// SetMode selects and persists the print mode
func (h *Handler) SetMode(w http.ResponseWriter, r *http.Request) {
	mode, ok := momir.ParseMode(chi.URLParam(r, "mode"))
	if !ok {
		http.Error(w, "Invalid mode", http.StatusBadRequest)
		return
	}

	if err := h.app.SetMode(r.Context(), mode); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.logger.Info("print mode selected", "mode", mode)

	sse := datastar.NewSSE(w, r)
	h.sendState(sse, h.app.State())
}

// CardClicked re-opens the print dialog when the card is clicked in print mode
func (h *Handler) CardClicked(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)
	h.sendEffects(sse, h.app.CardClicked())
}

// Print opens the print dialog for the displayed card
func (h *Handler) Print(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)
	h.sendEffects(sse, h.app.Print())
}

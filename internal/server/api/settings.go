package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/ayusman/obakehunt/internal/game"
	"github.com/ayusman/obakehunt/internal/store"
)

// SettingsHandler reads and writes the aim sensitivity.
type SettingsHandler struct {
	store  *store.Store
	bounds game.SensitivityConfig

	// OnSensitivity is called with each accepted value.
	OnSensitivity func(v float64)
}

// NewSettingsHandler creates a handler accepting values within bounds.
func NewSettingsHandler(s *store.Store, bounds game.SensitivityConfig) *SettingsHandler {
	return &SettingsHandler{store: s, bounds: bounds}
}

// Routes mounts the settings endpoints on r.
func (h *SettingsHandler) Routes(r chi.Router) {
	r.Get("/sensitivity", h.GetSensitivity)
	r.Put("/sensitivity", h.PutSensitivity)
}

type sensitivityPayload struct {
	Sensitivity *float64 `json:"sensitivity"`
}

type sensitivityResponse struct {
	Sensitivity float64 `json:"sensitivity"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Step        float64 `json:"step"`
}

func (h *SettingsHandler) respond(w http.ResponseWriter, v float64) {
	writeJSON(w, http.StatusOK, sensitivityResponse{
		Sensitivity: v,
		Min:         h.bounds.Min,
		Max:         h.bounds.Max,
		Step:        h.bounds.Step,
	})
}

// GetSensitivity handles GET /api/settings/sensitivity. With nothing saved it
// reports the configured initial value.
func (h *SettingsHandler) GetSensitivity(w http.ResponseWriter, r *http.Request) {
	v, err := h.store.Settings().GetFloat(store.SettingSensitivity)
	if errors.Is(err, store.ErrNotFound) {
		v, err = h.bounds.Initial, nil
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read sensitivity")
		return
	}

	h.respond(w, v)
}

// PutSensitivity handles PUT /api/settings/sensitivity.
func (h *SettingsHandler) PutSensitivity(w http.ResponseWriter, r *http.Request) {
	var req sensitivityPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Sensitivity == nil {
		writeError(w, http.StatusBadRequest, "sensitivity is required")
		return
	}

	v := *req.Sensitivity
	if v < h.bounds.Min || v > h.bounds.Max {
		writeError(w, http.StatusBadRequest, "sensitivity out of range")
		return
	}

	if err := h.store.Settings().SetFloat(store.SettingSensitivity, v); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save sensitivity")
		return
	}

	if h.OnSensitivity != nil {
		h.OnSensitivity(v)
	}

	h.respond(w, v)
}

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/ayusman/obakehunt/internal/store"
)

// MaxListLimit caps the limit query parameter.
const MaxListLimit = 100

// RoundHandler serves the round history.
type RoundHandler struct {
	store *store.Store
}

// NewRoundHandler creates a new RoundHandler with the given store.
func NewRoundHandler(s *store.Store) *RoundHandler {
	return &RoundHandler{store: s}
}

// Routes mounts the round endpoints on r.
func (h *RoundHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/best", h.Best)
	r.Get("/{id}", h.Get)
}

type roundResponse struct {
	ID          string  `json:"id"`
	Score       int     `json:"score"`
	Waves       int     `json:"waves"`
	Shots       int     `json:"shots"`
	Hits        int     `json:"hits"`
	Accuracy    float64 `json:"accuracy"`
	Sensitivity float64 `json:"sensitivity"`
	StartedAt   string  `json:"started_at"`
	FinishedAt  string  `json:"finished_at"`
}

type listRoundsResponse struct {
	Rounds []roundResponse `json:"rounds"`
}

func toRoundResponse(r *store.Round) roundResponse {
	return roundResponse{
		ID:          r.ID,
		Score:       r.Score,
		Waves:       r.Waves,
		Shots:       r.Shots,
		Hits:        r.Hits,
		Accuracy:    r.Accuracy(),
		Sensitivity: r.Sensitivity,
		StartedAt:   r.StartedAt.Format(timeLayout),
		FinishedAt:  r.FinishedAt.Format(timeLayout),
	}
}

// List handles GET /api/rounds?limit=N, newest first.
func (h *RoundHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := store.DefaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, MaxListLimit)
	}

	rounds, err := h.store.Rounds().List(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list rounds")
		return
	}

	response := listRoundsResponse{
		Rounds: make([]roundResponse, 0, len(rounds)),
	}
	for _, round := range rounds {
		response.Rounds = append(response.Rounds, toRoundResponse(round))
	}

	writeJSON(w, http.StatusOK, response)
}

// Best handles GET /api/rounds/best.
func (h *RoundHandler) Best(w http.ResponseWriter, r *http.Request) {
	round, err := h.store.Rounds().Best()
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "No rounds recorded")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get best round")
		return
	}

	writeJSON(w, http.StatusOK, toRoundResponse(round))
}

// Get handles GET /api/rounds/{id}.
func (h *RoundHandler) Get(w http.ResponseWriter, r *http.Request) {
	round, err := h.store.Rounds().GetByID(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Round not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get round")
		return
	}

	writeJSON(w, http.StatusOK, toRoundResponse(round))
}

package matching

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/refundtrack/internal/matching"
)

type Handler struct {
	svc *matching.Service
}

func NewHandler(svc *matching.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/suggest", h.suggest)
	r.Post("/", h.learn)
}

type suggestResponse struct {
	RawItem       string `json:"raw_item"`
	PreferredItem string `json:"preferred_item"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	rawItem := r.URL.Query().Get("raw_item")
	if rawItem == "" {
		http.Error(w, "raw_item query parameter is required", http.StatusBadRequest)
		return
	}

	preferred, err := h.svc.Suggest(r.Context(), rawItem)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(suggestResponse{
		RawItem:       rawItem,
		PreferredItem: preferred,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type learnRequest struct {
	RawPattern    string `json:"raw_pattern"`
	PreferredItem string `json:"preferred_item"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.Learn(r.Context(), req.RawPattern, req.PreferredItem); err != nil {
		if errors.Is(err, matching.ErrEmptyMapping) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusCreated)
}

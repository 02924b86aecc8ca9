package contract

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/MrJamesThe3rd/sitebook/internal/backend"
	"github.com/MrJamesThe3rd/sitebook/internal/clock"
	"github.com/MrJamesThe3rd/sitebook/internal/contract"
	"github.com/MrJamesThe3rd/sitebook/internal/dashboard"
	"github.com/MrJamesThe3rd/sitebook/internal/snapshot"
)

type Handler struct {
	svc      *dashboard.Service
	clock    clock.Clock
	validate *validator.Validate
}

func NewHandler(svc *dashboard.Service, c clock.Clock) *Handler {
	return &Handler{svc: svc, clock: c, validate: validator.New()}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}/summary", h.summary)
	r.Get("/{id}/transitions", h.allowed)
	r.Post("/{id}/transitions", h.transition)
}

// StatusRoutes serves the status enumeration.
func (h *Handler) StatusRoutes(r chi.Router) {
	r.Get("/", h.statuses)
}

func (h *Handler) statuses(w http.ResponseWriter, _ *http.Request) {
	statuses := contract.Statuses()

	resp := make([]statusResponse, len(statuses))
	for i, s := range statuses {
		resp[i] = statusResponse{Key: s, Label: s.Label()}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	now, err := h.clock.At(r.URL.Query().Get("now"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	all, err := h.svc.Summaries(r.Context(), now, dashboard.Filter{})
	if err != nil {
		slog.Error("failed to compute summaries", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	filtered := all
	if s := strings.TrimSpace(r.URL.Query().Get("status")); s != "" {
		status, ok := contract.Lookup(s)
		if !ok {
			http.Error(w, "unknown status", http.StatusBadRequest)
			return
		}

		filtered = contract.FilterByStatus(all, status)
	}

	writeJSON(w, http.StatusOK, toListResponse(all, filtered, now))
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	now, err := h.clock.At(r.URL.Query().Get("now"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s, err := h.svc.Summary(r.Context(), chi.URLParam(r, "id"), now)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(s))
}

type allowedResponse struct {
	Events []contract.Event `json:"events"`
}

func (h *Handler) allowed(w http.ResponseWriter, r *http.Request) {
	now, err := h.clock.At(r.URL.Query().Get("now"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	events, err := h.svc.Allowed(r.Context(), chi.URLParam(r, "id"), now)
	if err != nil {
		writeError(w, err)
		return
	}

	if events == nil {
		events = []contract.Event{}
	}

	writeJSON(w, http.StatusOK, allowedResponse{Events: events})
}

type transitionRequest struct {
	Event contract.Event `json:"event" validate:"required,oneof=suspend resume cancel close reopen"`
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request) {
	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "invalid event", http.StatusBadRequest)
		return
	}

	s, err := h.svc.Transition(r.Context(), chi.URLParam(r, "id"), req.Event, h.clock())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(s))
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dashboard.ErrNotFound), errors.Is(err, backend.ErrNotFound):
		http.Error(w, "contract not found", http.StatusNotFound)
	case errors.Is(err, contract.ErrTransitionNotAllowed):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, snapshot.ErrReadOnly):
		http.Error(w, err.Error(), http.StatusMethodNotAllowed)
	default:
		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

package report

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/sitebook/internal/clock"
	"github.com/MrJamesThe3rd/sitebook/internal/contract"
	"github.com/MrJamesThe3rd/sitebook/internal/dashboard"
	"github.com/MrJamesThe3rd/sitebook/internal/report"
)

type Handler struct {
	svc      *dashboard.Service
	exporter *report.Exporter
	clock    clock.Clock
}

func NewHandler(svc *dashboard.Service, exporter *report.Exporter, c clock.Clock) *Handler {
	return &Handler{svc: svc, exporter: exporter, clock: c}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summaries", h.summaries)
}

func (h *Handler) summaries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	format, err := report.ParseFormat(q.Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	now, err := h.clock.At(q.Get("now"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var filter dashboard.Filter

	if s := q.Get("status"); s != "" {
		status, ok := contract.Lookup(s)
		if !ok {
			http.Error(w, "unknown status", http.StatusBadRequest)
			return
		}

		filter.Status = new(status)
	}

	summaries, err := h.svc.Summaries(r.Context(), now, filter)
	if err != nil {
		slog.Error("failed to compute summaries", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	rep := report.New(summaries, now)

	// Render fully before writing headers so failures still produce a 500.
	var buf bytes.Buffer
	if err := h.exporter.Export(&buf, format, rep); err != nil {
		if errors.Is(err, report.ErrUnknownFormat) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		slog.Error("failed to export report", "format", format, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rep.Filename(format)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Report-Run", rep.RunID.String())

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write report", "error", err)
	}
}

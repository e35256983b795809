package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/refundtrack/internal/export"
	httpproduct "github.com/MrJamesThe3rd/refundtrack/internal/http/product"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
	r.Get("/report", h.report)
}

// download streams the current dashboard rows as CSV. The file is built in
// memory first so that a failure can still be reported with a status code.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	criteria, err := httpproduct.CriteriaFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := h.svc.Export(r.Context(), criteria, &buf); err != nil {
		slog.Error("export failed", "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"products_%s.csv\"", time.Now().Format("20060102")))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	criteria, err := httpproduct.CriteriaFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := h.svc.WriteReport(r.Context(), criteria, &buf); err != nil {
		slog.Error("report failed", "error", err)
		http.Error(w, "report failed", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write report", "error", err)
	}
}

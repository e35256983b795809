package receipt

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/refundtrack/internal/product"
	"github.com/MrJamesThe3rd/refundtrack/internal/receipt"
	"github.com/MrJamesThe3rd/refundtrack/internal/receipt/ocr"
)

const maxUpload = 10 << 20

type Handler struct {
	svc *receipt.Service
}

func NewHandler(svc *receipt.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.upload)
}

type createdProduct struct {
	ID        string              `json:"id"`
	Item      string              `json:"item"`
	OrderDate *string             `json:"order_date"`
	Paid      decimal.NullDecimal `json:"paid"`
	Status    string              `json:"status"`
}

type uploadResponse struct {
	Created  int              `json:"created"`
	Products []createdProduct `json:"products"`
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	products, err := h.svc.Import(r.Context(), file, header.Header.Get("Content-Type"))
	if err != nil {
		switch {
		case errors.Is(err, receipt.ErrNoItems):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, ocr.ErrNotConfigured):
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
		default:
			slog.Error("receipt import failed", "error", err)
			http.Error(w, "receipt import failed", http.StatusBadGateway)
		}

		return
	}

	resp := uploadResponse{
		Created:  len(products),
		Products: make([]createdProduct, 0, len(products)),
	}

	for _, p := range products {
		cp := createdProduct{
			ID:     p.ID.String(),
			Item:   p.Item,
			Paid:   p.Paid(),
			Status: string(product.Classify(p)),
		}

		if p.OrderDate != nil {
			cp.OrderDate = new(p.OrderDate.Format(time.DateOnly))
		}

		resp.Products = append(resp.Products, cp)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

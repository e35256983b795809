package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/refundtrack/internal/importer"
	"github.com/MrJamesThe3rd/refundtrack/internal/matching"
	"github.com/MrJamesThe3rd/refundtrack/internal/product"
)

type Handler struct {
	importSvc  *importer.Service
	productSvc *product.Service
	matchSvc   *matching.Service
}

func NewHandler(importSvc *importer.Service, productSvc *product.Service, matchSvc *matching.Service) *Handler {
	return &Handler{
		importSvc:  importSvc,
		productSvc: productSvc,
		matchSvc:   matchSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
	r.Post("/confirm", h.confirmImport)
}

type productResponse struct {
	ID        uuid.UUID           `json:"id"`
	Item      string              `json:"item"`
	OrderDate *string             `json:"order_date"`
	Paid      decimal.NullDecimal `json:"paid"`
	Received  decimal.NullDecimal `json:"received"`
	Delta     decimal.NullDecimal `json:"delta"`
	Status    product.Status      `json:"status"`
}

type importSuccessResponse struct {
	Imported int               `json:"imported"`
	Products []productResponse `json:"products"`
}

// createParamsDTO carries a pending row through the conflict round trip,
// stage flags included.
type createParamsDTO struct {
	Item           string              `json:"item"`
	URL            string              `json:"url,omitempty"`
	OrderDate      *string             `json:"order_date"`
	Paid           decimal.NullDecimal `json:"paid"`
	Received       decimal.NullDecimal `json:"received"`
	OrderPlaced    bool                `json:"order_placed"`
	OrderDelivered bool                `json:"order_delivered"`
	ReviewAdded    bool                `json:"review_added"`
	ReviewLive     bool                `json:"review_live"`
	ReviewSSSent   bool                `json:"review_ss_sent"`
	IsVoid         bool                `json:"is_void"`
}

type conflictDTO struct {
	Incoming createParamsDTO `json:"incoming"`
	Existing productResponse `json:"existing"`
}

type importConflictResponse struct {
	New       []createParamsDTO `json:"new"`
	Conflicts []conflictDTO     `json:"conflicts"`
}

type confirmRequest struct {
	Params []createParamsDTO `json:"params"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(importer.Format(r.FormValue("format")), file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	for i, p := range params {
		renamed, err := h.matchSvc.Rename(r.Context(), p.Item)
		if err != nil {
			slog.Warn("item rename failed", "item", p.Item, "error", err)
			continue
		}

		params[i].Item = renamed
	}

	result, err := h.productSvc.ImportBatch(r.Context(), params)
	if err != nil {
		slog.Error("import failed", "error", err)
		http.Error(w, "import failed", http.StatusInternalServerError)

		return
	}

	if len(result.Conflicts) > 0 {
		resp := importConflictResponse{
			New:       make([]createParamsDTO, 0, len(result.New)),
			Conflicts: make([]conflictDTO, 0, len(result.Conflicts)),
		}
		for _, p := range result.New {
			resp.New = append(resp.New, toParamsDTO(p))
		}

		for _, c := range result.Conflicts {
			resp.Conflicts = append(resp.Conflicts, conflictDTO{
				Incoming: toParamsDTO(c.Incoming),
				Existing: toProductResponse(c.Existing),
			})
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			slog.Error("failed to encode response", "error", err)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toSuccessResponse(result.Imported)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) confirmImport(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	params := make([]product.CreateParams, 0, len(req.Params))
	for _, p := range req.Params {
		params = append(params, fromParamsDTO(p))
	}

	products, err := h.productSvc.CreateBatch(r.Context(), params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toSuccessResponse(products)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toSuccessResponse(products []*product.Product) importSuccessResponse {
	responses := make([]productResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, toProductResponse(p))
	}

	return importSuccessResponse{
		Imported: len(products),
		Products: responses,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}

	return new(t.Format(time.DateOnly))
}

func toProductResponse(p *product.Product) productResponse {
	return productResponse{
		ID:        p.ID,
		Item:      p.Item,
		OrderDate: formatDate(p.OrderDate),
		Paid:      p.Paid(),
		Received:  p.Received(),
		Delta:     p.Delta(),
		Status:    product.Classify(p),
	}
}

// toParamsDTO resolves the params' edits by building the product they describe.
func toParamsDTO(params product.CreateParams) createParamsDTO {
	p := product.New(params)

	return createParamsDTO{
		Item:           p.Item,
		URL:            p.URL,
		OrderDate:      formatDate(p.OrderDate),
		Paid:           p.Paid(),
		Received:       p.Received(),
		OrderPlaced:    p.OrderPlaced,
		OrderDelivered: p.OrderDelivered,
		ReviewAdded:    p.ReviewAdded,
		ReviewLive:     p.ReviewLive,
		ReviewSSSent:   p.ReviewSSSent,
		IsVoid:         p.IsVoid,
	}
}

func fromParamsDTO(dto createParamsDTO) product.CreateParams {
	params := product.CreateParams{
		Item:     dto.Item,
		URL:      dto.URL,
		Paid:     dto.Paid,
		Received: dto.Received,
		Edits: []product.Edit{
			product.SetStage{Stage: product.StageOrderPlaced, Done: dto.OrderPlaced},
			product.SetStage{Stage: product.StageOrderDelivered, Done: dto.OrderDelivered},
			product.SetStage{Stage: product.StageReviewAdded, Done: dto.ReviewAdded},
			product.SetStage{Stage: product.StageReviewLive, Done: dto.ReviewLive},
			product.SetStage{Stage: product.StageReviewSSSent, Done: dto.ReviewSSSent},
		},
	}

	if dto.OrderDate != nil {
		params.OrderDate = product.ParseDate(*dto.OrderDate)
	}

	if dto.IsVoid {
		params.Edits = append(params.Edits, product.MarkVoid{})
	}

	return params
}

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/refundtrack/internal/http/export"
	"github.com/MrJamesThe3rd/refundtrack/internal/http/importcsv"
	"github.com/MrJamesThe3rd/refundtrack/internal/http/matching"
	"github.com/MrJamesThe3rd/refundtrack/internal/http/metrics"
	"github.com/MrJamesThe3rd/refundtrack/internal/http/product"
	"github.com/MrJamesThe3rd/refundtrack/internal/http/receipt"
)

type Handlers struct {
	Products *product.Handler
	Import   *importcsv.Handler
	Receipts *receipt.Handler
	Matching *matching.Handler
	Export   *export.Handler
}

func New(h Handlers, m *metrics.HTTPMetrics, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))
	router.Use(m.Middleware)

	router.Handle("/metrics", m.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Products.Routes(r)
		})

		r.Route("/import", h.Import.Routes)
		r.Route("/receipts", h.Receipts.Routes)

		r.Route("/matching", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Matching.Routes(r)
		})

		r.Route("/export", h.Export.Routes)
	})

	return router
}

package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/refundtrack/internal/http/metrics"
)

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	m := metrics.New("refundtrack")

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/products/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/ok", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", m.Handler())

	for _, path := range []string{"/products/abc", "/products/def", "/ok"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	out := string(body)
	assert.Contains(t, out, `http_requests_total{method="GET",path="/products/{id}",service="refundtrack",status="404"} 2`)
	assert.Contains(t, out, `http_requests_total{method="GET",path="/ok",service="refundtrack",status="200"} 1`)
	assert.NotContains(t, out, "/products/abc")
}

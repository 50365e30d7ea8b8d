// Package api exposes the serve-mode HTTP surface: the latest catalog
// document, liveness, and Prometheus metrics.
package api

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/astrokat/gwcat/internal/catalog"
)

// Handler holds the latest generated document behind the HTTP routes.
type Handler struct {
	mux *http.ServeMux

	mu          sync.RWMutex
	doc         *catalog.Document
	generatedAt time.Time
}

// New creates an HTTP handler and registers all routes.
func New() *Handler {
	h := &Handler{mux: http.NewServeMux()}

	h.mux.HandleFunc("GET /catalog", h.getCatalog)
	h.mux.HandleFunc("GET /healthz", h.healthz)
	h.mux.Handle("GET /metrics", promhttp.Handler())

	return h
}

// ServeHTTP implements http.Handler with request logging.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	h.mux.ServeHTTP(w, r)
	slog.Debug("http request", "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
}

// SetDocument publishes a freshly generated document.
func (h *Handler) SetDocument(doc *catalog.Document) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.doc = doc
	h.generatedAt = time.Now()
}

// GET /catalog — the latest catalog document.
func (h *Handler) getCatalog(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	doc, at := h.doc, h.generatedAt
	h.mu.RUnlock()
	if doc == nil {
		writeError(w, http.StatusServiceUnavailable, "no catalog generated yet")
		return
	}
	w.Header().Set("Last-Modified", at.UTC().Format(http.TimeFormat))
	writeJSON(w, http.StatusOK, doc)
}

// GET /healthz — always 200 (liveness probe).
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

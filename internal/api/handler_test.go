package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/astrokat/gwcat/internal/catalog"
)

func TestHealthz(t *testing.T) {
	h := New()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestGetCatalog(t *testing.T) {
	h := New()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("before first run: status = %d, want 503", rec.Code)
	}

	doc := catalog.NewDocument()
	doc.Events["GW150914"] = &catalog.FailureNote{CommonName: "GW150914", Error: "missing column"}
	h.SetDocument(doc)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("after SetDocument: status = %d, want 200", rec.Code)
	}
	var decoded struct {
		Events map[string]any `json:"events"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if _, ok := decoded.Events["GW150914"]; !ok {
		t.Errorf("events = %v, want GW150914", decoded.Events)
	}
}

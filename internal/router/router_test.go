package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ahmedhamdy1234/OXTCHAT/internal/handlers"
	"github.com/ahmedhamdy1234/OXTCHAT/internal/models"
)

type stubGenerator struct{}

func (stubGenerator) Generate(_ context.Context, _ string, _ []models.HistoryMessage) (string, error) {
	return "ok", nil
}

func newTestRouter() http.Handler {
	return New(handlers.NewChatHandler(stubGenerator{}), "http://localhost:3000")
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Status = %d", rec.Code)
	}
	if rec.Body.String() != `{"status":"ok"}` {
		t.Errorf("Body = %q", rec.Body.String())
	}
}

func TestCORSHeaders(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Allow-Origin = %q", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("Status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got == "" {
		t.Error("Expected Allow-Methods header")
	}
}

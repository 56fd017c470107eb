package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ahmedhamdy1234/OXTCHAT/internal/models"
	"github.com/ahmedhamdy1234/OXTCHAT/internal/services"
)

// fakeGenerator lets handler tests script the service outcome.
type fakeGenerator struct {
	reply string
	err   error

	gotMessage string
	gotHistory []models.HistoryMessage
	calls      int
}

func (f *fakeGenerator) Generate(ctx context.Context, message string, history []models.HistoryMessage) (string, error) {
	f.calls++
	f.gotMessage = message
	f.gotHistory = history
	return f.reply, f.err
}

func doRelay(t *testing.T, h *ChatHandler, method string, body []byte) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, "/api/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	h.Relay(rr, req)
	return rr
}

func TestRelay_RejectsNonPost(t *testing.T) {
	gen := &fakeGenerator{}
	h := NewChatHandler(gen)

	rr := doRelay(t, h, http.MethodGet, nil)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", rr.Code)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Message != "Method Not Allowed" {
		t.Errorf("Message = %q, want 'Method Not Allowed'", resp.Message)
	}
	if gen.calls != 0 {
		t.Errorf("Expected no service call, got %d", gen.calls)
	}
}

func TestRelay_RejectsMissingMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty message", `{"message":"","history":[]}`},
		{"whitespace message", `{"message":"   ","history":[{"text":"hi","sender":"user"}]}`},
		{"no message field", `{"history":[]}`},
		{"invalid json", `{not json`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gen := &fakeGenerator{}
			h := NewChatHandler(gen)

			rr := doRelay(t, h, http.MethodPost, []byte(tc.body))

			if rr.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rr.Code)
			}

			var resp models.ErrorResponse
			json.NewDecoder(rr.Body).Decode(&resp)
			if resp.Message != "Message is required" {
				t.Errorf("Message = %q, want 'Message is required'", resp.Message)
			}
			if gen.calls != 0 {
				t.Errorf("Expected no service call, got %d", gen.calls)
			}
		})
	}
}

func TestRelay_Success(t *testing.T) {
	gen := &fakeGenerator{reply: "Hello back"}
	h := NewChatHandler(gen)

	body, _ := json.Marshal(models.ChatRequest{
		Message: "Hello",
		History: []models.HistoryMessage{{Text: "earlier", Sender: "user"}},
	})

	rr := doRelay(t, h, http.MethodPost, body)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp models.ChatResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Response != "Hello back" {
		t.Errorf("Response = %q, want 'Hello back'", resp.Response)
	}

	if gen.gotMessage != "Hello" {
		t.Errorf("Service got message %q", gen.gotMessage)
	}
	if len(gen.gotHistory) != 1 || gen.gotHistory[0].Text != "earlier" {
		t.Errorf("Service got history %+v", gen.gotHistory)
	}
}

func TestRelay_MissingKeyIs500(t *testing.T) {
	gen := &fakeGenerator{err: &services.ConfigError{Message: "AI API key not configured on the server."}}
	h := NewChatHandler(gen)

	rr := doRelay(t, h, http.MethodPost, []byte(`{"message":"hello","history":[]}`))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", rr.Code)
	}

	var resp models.ErrorResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Message != "AI API key not configured on the server." {
		t.Errorf("Message = %q", resp.Message)
	}
}

func TestRelay_ForwardsUpstreamStatusAndBody(t *testing.T) {
	gen := &fakeGenerator{err: &services.UpstreamError{
		StatusCode: http.StatusTooManyRequests,
		Message:    "Quota exceeded",
		Body:       []byte(`{"error":{"message":"Quota exceeded","status":"RESOURCE_EXHAUSTED"}}`),
	}}
	h := NewChatHandler(gen)

	rr := doRelay(t, h, http.MethodPost, []byte(`{"message":"hello","history":[]}`))

	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("Expected 429, got %d", rr.Code)
	}

	var resp struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Message != "Quota exceeded" {
		t.Errorf("Message = %q", resp.Message)
	}
	if !strings.Contains(string(resp.Error), "RESOURCE_EXHAUSTED") {
		t.Errorf("Error body not forwarded: %s", resp.Error)
	}
}

func TestRelay_ForwardsNonJSONUpstreamBody(t *testing.T) {
	gen := &fakeGenerator{err: &services.UpstreamError{
		StatusCode: http.StatusBadGateway,
		Message:    "Failed to get response from AI API",
		Body:       []byte("upstream exploded"),
	}}
	h := NewChatHandler(gen)

	rr := doRelay(t, h, http.MethodPost, []byte(`{"message":"hello","history":[]}`))

	if rr.Code != http.StatusBadGateway {
		t.Errorf("Expected 502, got %d", rr.Code)
	}

	var resp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Message != "Failed to get response from AI API" {
		t.Errorf("Message = %q", resp.Message)
	}
	if resp.Error != "upstream exploded" {
		t.Errorf("Error = %q", resp.Error)
	}
}

func TestRelay_UnexpectedErrorIs500(t *testing.T) {
	gen := &fakeGenerator{err: context.DeadlineExceeded}
	h := NewChatHandler(gen)

	rr := doRelay(t, h, http.MethodPost, []byte(`{"message":"hello","history":[]}`))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", rr.Code)
	}

	var resp models.ErrorResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Message != "Internal server error" {
		t.Errorf("Message = %q", resp.Message)
	}
}

// End-to-end over the real service: name queries short-circuit before any
// upstream call.
func TestRelay_NameQueryEndToEnd(t *testing.T) {
	calls := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer upstream.Close()

	svc := services.NewGeminiService("test-key", "test-model", upstream.URL)
	h := NewChatHandler(svc)

	rr := doRelay(t, h, http.MethodPost, []byte(`{"message":"who are you","history":[]}`))

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	var resp models.ChatResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Response != "I am a large language model, trained by OXT. My name is OXT." {
		t.Errorf("Response = %q", resp.Response)
	}
	if calls != 0 {
		t.Errorf("Expected zero upstream calls, got %d", calls)
	}
}

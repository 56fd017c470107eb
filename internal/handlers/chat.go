package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ahmedhamdy1234/OXTCHAT/internal/models"
	"github.com/ahmedhamdy1234/OXTCHAT/internal/services"
)

// generator is the slice of GeminiService the chat handler needs.
type generator interface {
	Generate(ctx context.Context, message string, history []models.HistoryMessage) (string, error)
}

type ChatHandler struct {
	gemini generator
}

func NewChatHandler(gemini generator) *ChatHandler {
	return &ChatHandler{gemini: gemini}
}

// Relay forwards one {message, history} pair to the upstream model and
// returns {response} or a structured error body.
func (h *ChatHandler) Relay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, models.ErrorResponse{Message: "Method Not Allowed"})
		return
	}

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Message: "Message is required"})
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Message: "Message is required"})
		return
	}

	response, err := h.gemini.Generate(r.Context(), req.Message, req.History)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Response: response})
}

func handleServiceError(w http.ResponseWriter, err error) {
	var validationErr *services.ValidationError
	var configErr *services.ConfigError
	var upstreamErr *services.UpstreamError

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Message: validationErr.Message})
	case errors.As(err, &configErr):
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Message: configErr.Message})
	case errors.As(err, &upstreamErr):
		// A proxy can answer with a non-JSON body; embedding that as raw
		// JSON would break the encode, so fall back to a plain string.
		var detail interface{}
		if json.Valid(upstreamErr.Body) {
			detail = json.RawMessage(upstreamErr.Body)
		} else if len(upstreamErr.Body) > 0 {
			detail = string(upstreamErr.Body)
		}
		writeJSON(w, upstreamErr.StatusCode, models.ErrorResponse{
			Message: upstreamErr.Message,
			Error:   detail,
		})
	default:
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Message: "Internal server error",
			Error:   err.Error(),
		})
	}
}

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/ahmedhamdy1234/OXTCHAT/internal/models"
)

// noResponseFallback is returned when the upstream reply has no usable text.
const noResponseFallback = "No response from AI."

// GeminiService translates one {message, history} pair into one upstream
// generateContent call. It holds no per-conversation state.
type GeminiService struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewGeminiService builds the upstream client. An empty apiKey is allowed;
// Generate reports a ConfigError per call until one is configured. The HTTP
// client carries no timeout: a hanging upstream call blocks its logical turn
// and nothing else.
func NewGeminiService(apiKey, model, endpoint string) *GeminiService {
	return &GeminiService{
		apiKey:   apiKey,
		model:    model,
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{},
	}
}

// Upstream wire format: {contents:[{role, parts:[{text}]}]}.

type upstreamPart struct {
	Text string `json:"text"`
}

type upstreamContent struct {
	Role  string         `json:"role"`
	Parts []upstreamPart `json:"parts"`
}

type upstreamRequest struct {
	Contents []upstreamContent `json:"contents"`
}

type upstreamResponse struct {
	Candidates []struct {
		Content struct {
			Parts []upstreamPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type upstreamErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate answers the current message given the prior history. Name queries
// short-circuit with the fixed identity reply and never reach the upstream.
func (s *GeminiService) Generate(ctx context.Context, message string, history []models.HistoryMessage) (string, error) {
	if s.apiKey == "" {
		return "", &ConfigError{Message: "AI API key not configured on the server."}
	}

	if IsNameQuery(message) {
		return IdentityResponse, nil
	}

	contents := make([]upstreamContent, 0, len(history)+1)
	for _, turn := range history {
		role := "model"
		if turn.Sender == models.SenderUser {
			role = "user"
		}
		contents = append(contents, upstreamContent{
			Role:  role,
			Parts: []upstreamPart{{Text: turn.Text}},
		})
	}
	contents = append(contents, upstreamContent{
		Role:  "user",
		Parts: []upstreamPart{{Text: message}},
	})

	body, err := json.Marshal(upstreamRequest{Contents: contents})
	if err != nil {
		return "", fmt.Errorf("failed to encode upstream request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", s.endpoint, s.model, s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build upstream request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upstream call failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read upstream response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("AI API error (status %d): %s", resp.StatusCode, respBody)

		errMessage := "Failed to get response from AI API"
		var errBody upstreamErrorBody
		if json.Unmarshal(respBody, &errBody) == nil && errBody.Error.Message != "" {
			errMessage = errBody.Error.Message
		}
		return "", &UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    errMessage,
			Body:       respBody,
		}
	}

	var parsed upstreamResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse upstream response: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 ||
		parsed.Candidates[0].Content.Parts[0].Text == "" {
		return noResponseFallback, nil
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

package models

// Sender values used on the wire and in client storage.
const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// HistoryMessage is one prior conversation turn as the client sends it.
// Only text and sender travel to the relay; ids and timestamps stay local.
type HistoryMessage struct {
	Text   string `json:"text"`
	Sender string `json:"sender"`
}

// ChatRequest is the payload of POST /api/chat.
type ChatRequest struct {
	Message string           `json:"message"`
	History []HistoryMessage `json:"history"`
}

// ChatResponse is the success reply from the relay.
type ChatResponse struct {
	Response string `json:"response"`
}

// ErrorResponse is the failure reply from the relay. Error carries the raw
// upstream error body when the upstream rejected the call, and is omitted
// for relay-local failures.
type ErrorResponse struct {
	Message string      `json:"message"`
	Error   interface{} `json:"error,omitempty"`
}

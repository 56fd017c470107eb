// Package chat owns the client-side conversation state: the ordered message
// list, edit/delete bookkeeping, and the single in-flight relay turn.
package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/ahmedhamdy1234/OXTCHAT/internal/models"
)

// Message is one conversation entry as rendered and persisted locally.
type Message struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Sender    string `json:"sender"`
	Timestamp string `json:"timestamp"`
	Edited    bool   `json:"edited,omitempty"`
}

// newID builds a creation-time-ordered id with a sender suffix.
func newID(suffix string) string {
	return fmt.Sprintf("%d-%s", time.Now().UnixNano(), suffix)
}

func newUserMessage(text string) Message {
	return Message{
		ID:        newID("user"),
		Text:      text,
		Sender:    models.SenderUser,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func newAIMessage(text string) Message {
	return Message{
		ID:        newID("ai"),
		Text:      text,
		Sender:    models.SenderAI,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// composeText folds staged attachment names into the outgoing text the same
// way the message list displays them.
func composeText(text string, attachments []string) string {
	if len(attachments) == 0 {
		return text
	}
	names := strings.Join(attachments, ", ")
	if text == "" {
		return fmt.Sprintf("(Files attached: %s)", names)
	}
	return fmt.Sprintf("%s\n\n(Files attached: %s)", text, names)
}

package chat

import (
	"encoding/json"
	"log"
	"regexp"
	"strings"

	"github.com/ahmedhamdy1234/OXTCHAT/internal/models"
	"github.com/ahmedhamdy1234/OXTCHAT/internal/storage"
)

// KV is the slice of the local storage the store persists through.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// PendingSend is the relay payload produced by SendMessage. The caller is
// responsible for issuing the call and feeding the outcome back through
// ReceiveResponse or ReceiveError.
type PendingSend struct {
	MessageID string
	Message   string
	History   []models.HistoryMessage
}

// attachmentSuffix matches the display form of staged attachments so editing
// a message puts only the typed text back into the input.
var attachmentSuffix = regexp.MustCompile(`\n\n\(Files attached: .+\)$`)

// Store is the conversation state machine. All methods are called from the
// single UI event loop; the store itself takes no locks.
type Store struct {
	kv KV

	messages          []Message
	editingID         string
	lastUserMessageID string
	inFlight          bool
	apiError          string
	attachments       []string
}

// NewStore restores any persisted conversation. A corrupt entry starts an
// empty conversation rather than failing.
func NewStore(kv KV) *Store {
	s := &Store{kv: kv}

	if raw, ok := kv.Get(storage.KeyMessages); ok {
		if err := json.Unmarshal([]byte(raw), &s.messages); err != nil {
			log.Printf("discarding unreadable conversation: %v", err)
			s.messages = nil
		}
	}

	return s
}

// Messages returns a copy of the conversation in insertion order.
func (s *Store) Messages() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Store) Len() int { return len(s.messages) }

// InFlight reports whether a relay call is outstanding.
func (s *Store) InFlight() bool { return s.inFlight }

// Error returns the current API error banner text, empty when none.
func (s *Store) Error() string { return s.apiError }

// ─── Attachment staging ───

// StageAttachment adds a file name to the staged list. Attachments are
// display-only; no content is read or uploaded.
func (s *Store) StageAttachment(name string) {
	for _, a := range s.attachments {
		if a == name {
			return
		}
	}
	s.attachments = append(s.attachments, name)
}

func (s *Store) RemoveAttachment(name string) {
	kept := s.attachments[:0]
	for _, a := range s.attachments {
		if a != name {
			kept = append(kept, a)
		}
	}
	s.attachments = kept
}

func (s *Store) Attachments() []string {
	out := make([]string, len(s.attachments))
	copy(out, s.attachments)
	return out
}

// ─── Sending ───

// SendMessage appends a user message and returns the relay payload. It
// returns (nil, false) when there is nothing to send or a call is already in
// flight. When an edit is active it saves the edit instead and returns
// (nil, true): no network call occurs.
func (s *Store) SendMessage(text string) (*PendingSend, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" && len(s.attachments) == 0 {
		return nil, false
	}
	if s.inFlight {
		return nil, false
	}

	s.apiError = ""

	composed := composeText(trimmed, s.attachments)

	if s.editingID != "" {
		s.SaveEdit(s.editingID, composed)
		s.attachments = nil
		return nil, true
	}

	// History is serialized before the new message is appended: the relay
	// receives the new text once, as the current message.
	history := make([]models.HistoryMessage, 0, len(s.messages))
	for _, m := range s.messages {
		history = append(history, models.HistoryMessage{Text: m.Text, Sender: m.Sender})
	}

	msg := newUserMessage(composed)
	s.messages = append(s.messages, msg)
	s.lastUserMessageID = msg.ID
	s.inFlight = true
	s.attachments = nil
	s.persist()

	return &PendingSend{MessageID: msg.ID, Message: composed, History: history}, true
}

// ─── Editing ───

// CanEdit reports whether a message may enter edit mode: only the most
// recent user message, and never while a call is in flight.
func (s *Store) CanEdit(id string) bool {
	if s.inFlight {
		return false
	}
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].Sender == models.SenderUser {
			return s.messages[i].ID == id
		}
	}
	return false
}

// StartEdit enters edit mode and returns the text to load into the input,
// with any attachment suffix stripped.
func (s *Store) StartEdit(id string) (string, bool) {
	if !s.CanEdit(id) {
		return "", false
	}
	msg := s.find(id)
	if msg == nil {
		return "", false
	}
	s.editingID = id
	s.attachments = nil
	return attachmentSuffix.ReplaceAllString(msg.Text, ""), true
}

func (s *Store) CancelEdit() { s.editingID = "" }

func (s *Store) EditingID() string { return s.editingID }

// SaveEdit replaces the message text and marks it edited. An unknown id is a
// silent no-op. Saving the same text twice leaves the message unchanged
// after the first call.
func (s *Store) SaveEdit(id, text string) {
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages[i].Text = text
			s.messages[i].Edited = true
			if s.editingID == id {
				s.editingID = ""
			}
			s.persist()
			return
		}
	}
}

// ─── Receiving ───

// ReceiveResponse appends the AI reply. A reply identical to the trailing AI
// message is suppressed, and a reply arriving after the conversation was
// reset (no pending user turn, nothing on screen) is discarded.
func (s *Store) ReceiveResponse(text string) {
	s.inFlight = false

	isDuplicate := false
	if last := s.last(); last != nil && last.Sender == models.SenderAI && last.Text == text {
		isDuplicate = true
	}

	if s.lastUserMessageID == "" && len(s.messages) == 0 && !isDuplicate {
		return
	}

	if !isDuplicate {
		s.messages = append(s.messages, newAIMessage(text))
		s.apiError = ""
		s.lastUserMessageID = ""
		s.persist()
	}
}

// ReceiveError surfaces the relay failure. The optimistically appended user
// message stays: error banner and partial history coexist.
func (s *Store) ReceiveError(message string) {
	s.inFlight = false
	s.apiError = message
	s.lastUserMessageID = ""
}

// ─── Deleting and resetting ───

// DeleteMessage removes a message by id. Deleting the message being edited
// exits edit mode and clears attachment staging.
func (s *Store) DeleteMessage(id string) bool {
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			if s.editingID == id {
				s.editingID = ""
				s.attachments = nil
			}
			s.persist()
			return true
		}
	}
	return false
}

// StartNewChat clears the conversation and every piece of transient state.
// The caller obtains user confirmation first. An in-flight call is not
// cancelled; its late reply falls to the ReceiveResponse guards.
func (s *Store) StartNewChat() {
	s.messages = nil
	s.apiError = ""
	s.lastUserMessageID = ""
	s.editingID = ""
	s.attachments = nil
	if err := s.kv.Delete(storage.KeyMessages); err != nil {
		log.Printf("failed to clear stored conversation: %v", err)
	}
}

// ─── Internal ───

func (s *Store) find(id string) *Message {
	for i := range s.messages {
		if s.messages[i].ID == id {
			return &s.messages[i]
		}
	}
	return nil
}

func (s *Store) last() *Message {
	if len(s.messages) == 0 {
		return nil
	}
	return &s.messages[len(s.messages)-1]
}

// persist writes the full conversation on every mutation. An emptied
// conversation removes the storage entry instead of writing an empty array.
func (s *Store) persist() {
	if len(s.messages) == 0 {
		if err := s.kv.Delete(storage.KeyMessages); err != nil {
			log.Printf("failed to clear stored conversation: %v", err)
		}
		return
	}

	data, err := json.Marshal(s.messages)
	if err != nil {
		log.Printf("failed to serialize conversation: %v", err)
		return
	}
	if err := s.kv.Set(storage.KeyMessages, string(data)); err != nil {
		log.Printf("failed to persist conversation: %v", err)
	}
}

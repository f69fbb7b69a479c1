package store

import (
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/dmitrymomot/outbox/pkg/mail"
)

// History persists sent and failed messages, one file per attempt.
// Failed sends are recorded alongside successful ones: the history view is
// the only audit trail the application has.
type History struct {
	records *Collection[*mail.Message]
}

// NewHistory creates the history collection under dir.
func NewHistory(dir string, log *slog.Logger) (*History, error) {
	records, err := NewCollection[*mail.Message](dir, "email_", log)
	if err != nil {
		return nil, err
	}
	return &History{records: records}, nil
}

// Add persists the message, assigning a record id on first save.
func (h *History) Add(msg *mail.Message) error {
	if msg.RecordID == "" {
		msg.RecordID = uuid.NewString()
	}
	return h.records.Save(msg.RecordID, msg)
}

// LoadAll returns every recorded attempt, most recent first.
func (h *History) LoadAll() ([]*mail.Message, error) {
	msgs, err := h.records.LoadAll()
	if err != nil {
		return nil, err
	}
	sort.Slice(msgs, func(i, j int) bool {
		return msgs[i].SentAt.After(msgs[j].SentAt)
	})
	return msgs, nil
}

// Delete removes one attempt by its record id. Absence is not an error.
func (h *History) Delete(recordID string) error {
	return h.records.Delete(recordID)
}

// Clear deletes every recorded attempt. Calling it on an already-empty
// history is a no-op.
func (h *History) Clear() error {
	return h.records.Clear()
}

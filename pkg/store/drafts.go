package store

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/outbox/pkg/mail"
)

// Drafts persists unsent messages saved by the user.
type Drafts struct {
	records *Collection[*mail.Message]
}

// NewDrafts creates the drafts collection under dir.
func NewDrafts(dir string, log *slog.Logger) (*Drafts, error) {
	records, err := NewCollection[*mail.Message](dir, "draft_", log)
	if err != nil {
		return nil, err
	}
	return &Drafts{records: records}, nil
}

// Save persists the draft, assigning a record id on first save. Saving the
// same draft again overwrites the stored copy.
func (d *Drafts) Save(msg *mail.Message) error {
	if msg.RecordID == "" {
		msg.RecordID = uuid.NewString()
	}
	return d.records.Save(msg.RecordID, msg)
}

// LoadAll returns every saved draft in directory-listing order.
func (d *Drafts) LoadAll() ([]*mail.Message, error) {
	return d.records.LoadAll()
}

// Delete removes a draft by its record id. Absence is not an error.
func (d *Drafts) Delete(recordID string) error {
	return d.records.Delete(recordID)
}

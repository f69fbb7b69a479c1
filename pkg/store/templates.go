package store

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/outbox/pkg/mail"
)

// Templates persists reusable email templates keyed by template id, so
// re-saving a template updates it in place.
type Templates struct {
	records *Collection[*mail.Template]
}

// NewTemplates creates the templates collection under dir.
func NewTemplates(dir string, log *slog.Logger) (*Templates, error) {
	records, err := NewCollection[*mail.Template](dir, "", log)
	if err != nil {
		return nil, err
	}
	return &Templates{records: records}, nil
}

// Save persists the template, assigning an id on first save.
func (t *Templates) Save(tpl *mail.Template) error {
	if tpl.ID == "" {
		tpl.ID = uuid.NewString()
	}
	return t.records.Save(tpl.ID, tpl)
}

// LoadAll returns every saved template in directory-listing order.
func (t *Templates) LoadAll() ([]*mail.Template, error) {
	return t.records.LoadAll()
}

// Get returns the template with the given id, or nil if it does not exist.
func (t *Templates) Get(id string) (*mail.Template, error) {
	tpls, err := t.records.LoadAll()
	if err != nil {
		return nil, err
	}
	for _, tpl := range tpls {
		if tpl.ID == id {
			return tpl, nil
		}
	}
	return nil, nil
}

// Delete removes a template by id. Absence is not an error.
func (t *Templates) Delete(id string) error {
	return t.records.Delete(id)
}

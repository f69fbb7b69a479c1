package mail

import "time"

// Template is a reusable message body saved by the user. Re-saving under the
// same ID overwrites the stored copy; Touch must be called on every mutation
// so UpdatedAt never falls behind CreatedAt.
type Template struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Subject   string    `json:"subject"`
	HTML      string    `json:"html"`
	Markdown  bool      `json:"markdown,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTemplate creates a template with both timestamps set to now.
func NewTemplate(name, subject, html string) *Template {
	now := time.Now()
	return &Template{
		Name:      name,
		Subject:   subject,
		HTML:      html,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch refreshes UpdatedAt.
func (t *Template) Touch() {
	t.UpdatedAt = time.Now()
}

package mail

import (
	"strings"
	"time"
)

// Status is the lifecycle state of a message. Sent and failed are terminal:
// a message never leaves either state once it is reached.
type Status string

const (
	StatusDraft   Status = "DRAFT"
	StatusSending Status = "SENDING"
	StatusSent    Status = "SENT"
	StatusFailed  Status = "FAILED"
)

// Terminal reports whether no further transition is possible from s.
func (s Status) Terminal() bool {
	return s == StatusSent || s == StatusFailed
}

// Message is a single email and its send outcome. ID is assigned by the
// provider and is set if and only if the message reached StatusSent.
// RecordID is the local persistence key, assigned on first save.
type Message struct {
	ID          string    `json:"id,omitempty"`
	RecordID    string    `json:"record_id,omitempty"`
	FromName    string    `json:"from_name"`
	FromAddress string    `json:"from_address"`
	Recipients  []string  `json:"recipients"`
	Subject     string    `json:"subject"`
	HTML        string    `json:"html"`
	SentAt      time.Time `json:"sent_at"`
	Status      Status    `json:"status"`
	Error       string    `json:"error,omitempty"`
}

// From returns the sender in RFC 5322 display form.
func (m *Message) From() string {
	return FormatFrom(m.FromName, m.FromAddress)
}

// FormatFrom formats a name and address into "Name <address>" form.
// Returns the bare address if name is empty.
func FormatFrom(name, address string) string {
	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)
	if name == "" {
		return address
	}
	return name + " <" + address + ">"
}

// SplitRecipients parses a semicolon-delimited recipient list. Segments are
// trimmed and empty segments discarded, so trailing delimiters are harmless.
func SplitRecipients(s string) []string {
	parts := strings.Split(s, ";")
	recipients := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			recipients = append(recipients, p)
		}
	}
	return recipients
}

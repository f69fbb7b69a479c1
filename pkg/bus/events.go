package bus

import "github.com/dmitrymomot/outbox/pkg/mail"

// Kind discriminates the closed set of event variants carried by the bus.
type Kind int

const (
	KindStatusUpdate Kind = iota
	KindSendResult
	KindTemplateLoaded
)

// String returns the variant name for logging.
func (k Kind) String() string {
	switch k {
	case KindStatusUpdate:
		return "status_update"
	case KindSendResult:
		return "send_result"
	case KindTemplateLoaded:
		return "template_loaded"
	default:
		return "unknown"
	}
}

// Event is the closed union of messages carried by the bus. Events are
// value objects: constructed once, never mutated after publish.
type Event interface {
	Kind() Kind
}

// StatusUpdate is a human-readable progress or error line for the status bar.
type StatusUpdate struct {
	Message string
	IsError bool
}

// Kind implements Event.
func (StatusUpdate) Kind() Kind { return KindStatusUpdate }

// SendResult is the terminal outcome of one send attempt. Err carries the
// provider failure text verbatim when Success is false.
type SendResult struct {
	Message *mail.Message
	Err     string
	Success bool
}

// Kind implements Event.
func (SendResult) Kind() Kind { return KindSendResult }

// TemplateLoaded announces that a template was selected for editing.
type TemplateLoaded struct {
	Template *mail.Template
}

// Kind implements Event.
func (TemplateLoaded) Kind() Kind { return KindTemplateLoaded }

package send

import "errors"

var (
	// ErrMissingAPIKey indicates no provider API key is configured. The
	// send fails fast before any state transition or network activity.
	ErrMissingAPIKey = errors.New("missing API key: configure one before sending")

	// ErrInvalidSender indicates the sender address does not look like a
	// deliverable email address.
	ErrInvalidSender = errors.New("invalid sender address")

	// ErrNoRecipients indicates the recipient list is empty after parsing.
	ErrNoRecipients = errors.New("at least one recipient is required")

	// ErrEmptySubject indicates a blank subject line.
	ErrEmptySubject = errors.New("subject must not be empty")

	// ErrEmptyBody indicates the HTML body carries no visible content.
	ErrEmptyBody = errors.New("email body must not be empty")

	// ErrMissingSender indicates a draft is missing sender name or address.
	ErrMissingSender = errors.New("sender name and address are required")

	// ErrEmptyTemplateName indicates a template without a name.
	ErrEmptyTemplateName = errors.New("template name must not be empty")

	// ErrEmptyTemplateBody indicates a template without a body.
	ErrEmptyTemplateBody = errors.New("template body must not be empty")

	// ErrSendFailed wraps provider and transport failures.
	ErrSendFailed = errors.New("failed to send email")
)

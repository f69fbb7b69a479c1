package send

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/outbox/pkg/bus"
	"github.com/dmitrymomot/outbox/pkg/config"
	"github.com/dmitrymomot/outbox/pkg/logger"
	"github.com/dmitrymomot/outbox/pkg/mail"
	"github.com/dmitrymomot/outbox/pkg/store"
)

// ProviderFactory builds a provider client for the given API key. The key
// is read from configuration at send time, so a key change applies to the
// next send without restarting.
type ProviderFactory func(apiKey string) mail.Provider

// Request carries the user's input for one send or draft save. Recipients
// is a single semicolon-delimited string, as typed into the form field.
type Request struct {
	FromName    string
	FromAddress string
	Recipients  string
	Subject     string
	HTML        string
}

// Coordinator owns the send pipeline: pre-flight validation on the caller's
// goroutine, the blocking provider call on a dedicated goroutine per send,
// the DRAFT -> SENDING -> SENT|FAILED state machine, history persistence,
// and event publication. None of its public operations let an error escape
// past their return value: provider and persistence failures become events.
type Coordinator struct {
	cfg       *config.Store
	history   *store.History
	drafts    *store.Drafts
	templates *store.Templates
	bus       *bus.Bus
	provider  ProviderFactory
	log       *slog.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the coordinator logger. Defaults to a discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a send coordinator.
func New(
	cfg *config.Store,
	history *store.History,
	drafts *store.Drafts,
	templates *store.Templates,
	eventBus *bus.Bus,
	provider ProviderFactory,
	opts ...Option,
) *Coordinator {
	c := &Coordinator{
		cfg:       cfg,
		history:   history,
		drafts:    drafts,
		templates: templates,
		bus:       eventBus,
		provider:  provider,
		log:       logger.NewNope(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send validates the request and, on success, dispatches the provider call
// to its own goroutine and returns a ticket for the in-flight send. A
// validation failure returns immediately with no state transition, no
// network call, and no history record; the failure is also published as an
// error StatusUpdate so observers can surface it.
//
// There is one attempt per call. A failed send is terminal and requires a
// new user-initiated send.
func (c *Coordinator) Send(ctx context.Context, req Request) (*Ticket, error) {
	msg := &mail.Message{
		FromName:    strings.TrimSpace(req.FromName),
		FromAddress: strings.TrimSpace(req.FromAddress),
		Recipients:  mail.SplitRecipients(req.Recipients),
		Subject:     strings.TrimSpace(req.Subject),
		HTML:        req.HTML,
		Status:      mail.StatusDraft,
	}

	apiKey := c.cfg.Get(config.KeyAPIKey)
	if err := validateSend(msg, apiKey); err != nil {
		c.bus.Publish(bus.StatusUpdate{Message: err.Error(), IsError: true})
		return nil, err
	}

	msg.Status = mail.StatusSending
	ticket := newTicket(msg)
	c.bus.Publish(bus.StatusUpdate{Message: "Sending email to " + strings.Join(msg.Recipients, ", ") + "..."})

	// The attempt must outlive the caller's scope: once dispatched there
	// is no cancellation, only the provider's own timeout.
	go c.deliver(context.WithoutCancel(ctx), ticket, apiKey)

	return ticket, nil
}

func validateSend(msg *mail.Message, apiKey string) error {
	if apiKey == "" {
		return ErrMissingAPIKey
	}
	if !mail.ValidAddress(msg.FromAddress) {
		return ErrInvalidSender
	}
	if len(msg.Recipients) == 0 {
		return ErrNoRecipients
	}
	if msg.Subject == "" {
		return ErrEmptySubject
	}
	if mail.IsBlankHTML(msg.HTML) {
		return ErrEmptyBody
	}
	return nil
}

func (c *Coordinator) deliver(ctx context.Context, ticket *Ticket, apiKey string) {
	msg := ticket.msg

	id, err := c.provider(apiKey).Send(ctx, msg)
	msg.SentAt = time.Now()
	if err != nil {
		msg.Status = mail.StatusFailed
		msg.Error = err.Error()
		c.log.Error("email send failed",
			slog.String("subject", msg.Subject),
			slog.Any("error", err))
		c.persist(msg)
		c.bus.Publish(bus.SendResult{Message: msg, Success: false, Err: msg.Error})
		c.bus.Publish(bus.StatusUpdate{Message: "Failed to send email: " + msg.Error, IsError: true})
		ticket.complete(errors.Join(ErrSendFailed, err))
		return
	}

	msg.ID = id
	msg.Status = mail.StatusSent
	c.log.Info("email sent",
		slog.String("id", id),
		slog.String("subject", msg.Subject))
	c.persist(msg)
	c.bus.Publish(bus.SendResult{Message: msg, Success: true})
	c.bus.Publish(bus.StatusUpdate{Message: "Email sent, id: " + id})
	ticket.complete(nil)
}

// persist writes the terminal outcome to history. Failed sends are recorded
// too; the history view is the only audit trail. A history write failure
// never undoes the send outcome, it is logged and dropped.
func (c *Coordinator) persist(msg *mail.Message) {
	if err := c.history.Add(msg); err != nil {
		c.log.Error("failed to persist message to history",
			slog.String("subject", msg.Subject),
			slog.Any("error", err))
	}
}

// SaveDraft validates sender fields and writes the draft through the record
// store. No network is involved. The outcome, success or failure, is
// published as a StatusUpdate.
func (c *Coordinator) SaveDraft(req Request) (*mail.Message, error) {
	fromName := strings.TrimSpace(req.FromName)
	fromAddress := strings.TrimSpace(req.FromAddress)
	if fromName == "" || fromAddress == "" {
		c.bus.Publish(bus.StatusUpdate{Message: ErrMissingSender.Error(), IsError: true})
		return nil, ErrMissingSender
	}

	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = "(no subject)"
	}

	msg := &mail.Message{
		FromName:    fromName,
		FromAddress: fromAddress,
		Recipients:  mail.SplitRecipients(req.Recipients),
		Subject:     subject,
		HTML:        req.HTML,
		SentAt:      time.Now(),
		Status:      mail.StatusDraft,
	}

	if err := c.drafts.Save(msg); err != nil {
		c.log.Error("failed to save draft", slog.Any("error", err))
		c.bus.Publish(bus.StatusUpdate{Message: "Failed to save draft: " + err.Error(), IsError: true})
		return nil, err
	}

	c.bus.Publish(bus.StatusUpdate{Message: "Draft saved: " + subject})
	return msg, nil
}

// SaveTemplate validates and writes the template through the record store,
// refreshing UpdatedAt. Saving an existing template id overwrites it.
func (c *Coordinator) SaveTemplate(tpl *mail.Template) error {
	if strings.TrimSpace(tpl.Name) == "" {
		c.bus.Publish(bus.StatusUpdate{Message: ErrEmptyTemplateName.Error(), IsError: true})
		return ErrEmptyTemplateName
	}
	if strings.TrimSpace(tpl.HTML) == "" {
		c.bus.Publish(bus.StatusUpdate{Message: ErrEmptyTemplateBody.Error(), IsError: true})
		return ErrEmptyTemplateBody
	}

	tpl.Touch()
	if err := c.templates.Save(tpl); err != nil {
		c.log.Error("failed to save template",
			slog.String("name", tpl.Name),
			slog.Any("error", err))
		c.bus.Publish(bus.StatusUpdate{Message: "Failed to save template: " + err.Error(), IsError: true})
		return err
	}

	c.bus.Publish(bus.StatusUpdate{Message: "Template saved: " + tpl.Name})
	return nil
}

package outbox

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dmitrymomot/outbox/pkg/bus"
	"github.com/dmitrymomot/outbox/pkg/config"
	"github.com/dmitrymomot/outbox/pkg/logger"
	"github.com/dmitrymomot/outbox/pkg/mail"
	"github.com/dmitrymomot/outbox/pkg/mail/resend"
	"github.com/dmitrymomot/outbox/pkg/render"
	"github.com/dmitrymomot/outbox/pkg/send"
	"github.com/dmitrymomot/outbox/pkg/store"
)

// Client is the presenter-facing facade over the send pipeline. It wires
// the config store, record collections, event bus, and send coordinator
// together under one base directory.
//
// All methods are safe to call from the presenter's goroutine: long-running
// operations (send, key verification) return handles and deliver outcomes
// through the bus. Subscribers that drive a single-threaded UI must hop
// back to their rendering context themselves.
type Client struct {
	baseDir     string
	cfg         *config.Store
	bus         *bus.Bus
	history     *store.History
	drafts      *store.Drafts
	templates   *store.Templates
	coordinator *send.Coordinator
	verifier    *send.Verifier
	renderer    *render.Renderer
	provider    send.ProviderFactory
	keyVerifier mail.KeyVerifier
	log         *slog.Logger
}

// New creates a client rooted at the base directory (default ~/.outbox),
// creating the settings file and record directories on first run.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		renderer:    render.New(),
		keyVerifier: resend.Verifier{},
		log:         logger.NewNope(),
	}
	c.provider = func(apiKey string) mail.Provider {
		return resend.New(apiKey)
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		c.baseDir = filepath.Join(home, ".outbox")
	}
	if c.bus == nil {
		c.bus = bus.New(bus.WithLogger(c.log))
	}

	c.cfg = config.Open(filepath.Join(c.baseDir, "config.yaml"), config.WithLogger(c.log))

	var err error
	if c.history, err = store.NewHistory(filepath.Join(c.baseDir, "history"), c.log); err != nil {
		return nil, err
	}
	if c.drafts, err = store.NewDrafts(filepath.Join(c.baseDir, "drafts"), c.log); err != nil {
		return nil, err
	}
	if c.templates, err = store.NewTemplates(filepath.Join(c.baseDir, "templates"), c.log); err != nil {
		return nil, err
	}

	c.coordinator = send.New(c.cfg, c.history, c.drafts, c.templates, c.bus, c.provider,
		send.WithLogger(c.log))
	c.verifier = send.NewVerifier(c.keyVerifier, send.WithVerifierLogger(c.log))

	return c, nil
}

// SendEmail validates and dispatches one send. The returned ticket can be
// awaited or ignored; the outcome is also published on the bus.
func (c *Client) SendEmail(ctx context.Context, req send.Request) (*send.Ticket, error) {
	return c.coordinator.Send(ctx, req)
}

// SaveDraft persists the request as a draft without touching the network.
func (c *Client) SaveDraft(req send.Request) (*mail.Message, error) {
	return c.coordinator.SaveDraft(req)
}

// SaveTemplate persists a template; re-saving the same id updates it.
func (c *Client) SaveTemplate(tpl *mail.Template) error {
	return c.coordinator.SaveTemplate(tpl)
}

// ImportMarkdownTemplate parses a markdown document with optional YAML
// frontmatter (name, subject) and saves it as a template.
func (c *Client) ImportMarkdownTemplate(content []byte) (*mail.Template, error) {
	tpl, err := render.ParseMarkdown(content)
	if err != nil {
		return nil, err
	}
	if err := c.coordinator.SaveTemplate(tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

// LoadTemplate fetches a template by id and announces the selection on the
// bus so editor panels can populate themselves. Returns nil when the id is
// unknown.
func (c *Client) LoadTemplate(id string) (*mail.Template, error) {
	tpl, err := c.templates.Get(id)
	if err != nil {
		return nil, err
	}
	if tpl != nil {
		c.bus.Publish(bus.TemplateLoaded{Template: tpl})
	}
	return tpl, nil
}

// RenderTemplate fills template placeholders with data and returns the
// subject and HTML body ready to put into a send request.
func (c *Client) RenderTemplate(tpl *mail.Template, data map[string]any) (subject, html string, err error) {
	return c.renderer.Render(tpl, data)
}

// DeleteTemplate removes a template. A missing id is not an error.
func (c *Client) DeleteTemplate(id string) error {
	return c.templates.Delete(id)
}

// DeleteDraft removes a draft. A missing id is not an error.
func (c *Client) DeleteDraft(recordID string) error {
	return c.drafts.Delete(recordID)
}

// ListHistory returns all recorded send attempts, most recent first.
func (c *Client) ListHistory() ([]*mail.Message, error) {
	return c.history.LoadAll()
}

// ListDrafts returns all saved drafts.
func (c *Client) ListDrafts() ([]*mail.Message, error) {
	return c.drafts.LoadAll()
}

// ListTemplates returns all saved templates.
func (c *Client) ListTemplates() ([]*mail.Template, error) {
	return c.templates.LoadAll()
}

// ClearHistory deletes every history record. Clearing an empty history is
// a no-op.
func (c *Client) ClearHistory() error {
	return c.history.Clear()
}

// VerifyAPIKey checks the key against the provider off the caller's
// goroutine and reports validity on the returned channel.
func (c *Client) VerifyAPIKey(ctx context.Context, key string) <-chan bool {
	return c.verifier.Verify(ctx, key)
}

// Config returns the settings store.
func (c *Client) Config() *config.Store {
	return c.cfg
}

// Bus returns the event bus for subscribing to status and result events.
func (c *Client) Bus() *bus.Bus {
	return c.bus
}

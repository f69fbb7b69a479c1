package outbox

import (
	"log/slog"

	"github.com/dmitrymomot/outbox/pkg/bus"
	"github.com/dmitrymomot/outbox/pkg/mail"
	"github.com/dmitrymomot/outbox/pkg/send"
)

// Option configures the client.
type Option func(*Client)

// WithBaseDir sets the directory holding the settings file and record
// collections. Defaults to ~/.outbox.
func WithBaseDir(dir string) Option {
	return func(c *Client) {
		if dir != "" {
			c.baseDir = dir
		}
	}
}

// WithLogger sets the logger shared by all components.
// If nil, logging is disabled.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithBus supplies an external event bus, e.g. one shared with other
// application components. Defaults to a fresh bus.
func WithBus(b *bus.Bus) Option {
	return func(c *Client) {
		if b != nil {
			c.bus = b
		}
	}
}

// WithProviderFactory replaces the Resend-backed provider. Primarily a
// test seam.
func WithProviderFactory(f send.ProviderFactory) Option {
	return func(c *Client) {
		if f != nil {
			c.provider = f
		}
	}
}

// WithKeyVerifier replaces the Resend-backed API key check.
func WithKeyVerifier(kv mail.KeyVerifier) Option {
	return func(c *Client) {
		if kv != nil {
			c.keyVerifier = kv
		}
	}
}

package send

import (
	"context"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/outbox/pkg/logger"
	"github.com/dmitrymomot/outbox/pkg/mail"
)

// Verifier checks candidate API keys against the provider off the caller's
// goroutine. Concurrent verifications of the same key (double-clicked
// button) are collapsed into a single provider call.
type Verifier struct {
	verifier mail.KeyVerifier
	group    singleflight.Group
	log      *slog.Logger
}

// VerifierOption configures a Verifier.
type VerifierOption func(*Verifier)

// WithVerifierLogger sets the verifier logger. Defaults to a discard logger.
func WithVerifierLogger(l *slog.Logger) VerifierOption {
	return func(v *Verifier) {
		if l != nil {
			v.log = l
		}
	}
}

// NewVerifier creates a key verifier backed by the given provider check.
func NewVerifier(kv mail.KeyVerifier, opts ...VerifierOption) *Verifier {
	v := &Verifier{verifier: kv, log: logger.NewNope()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify reports key validity on the returned channel. Only the boolean
// reaches the caller; the underlying provider error is logged for
// diagnostics. An empty key is invalid without a provider call.
func (v *Verifier) Verify(ctx context.Context, key string) <-chan bool {
	out := make(chan bool, 1)

	if key == "" {
		out <- false
		return out
	}

	go func() {
		_, err, _ := v.group.Do(key, func() (any, error) {
			return nil, v.verifier.VerifyKey(ctx, key)
		})
		if err != nil {
			v.log.Error("API key verification failed", slog.Any("error", err))
			out <- false
			return
		}
		out <- true
	}()

	return out
}

package mail

import "context"

// Provider delivers messages through an external transactional-email service.
// Send blocks for a single attempt and returns the provider-assigned message
// id on acknowledgment. Implementations must not retry.
type Provider interface {
	Send(ctx context.Context, msg *Message) (string, error)
}

// KeyVerifier checks an API key against the provider with a lightweight
// read-only call. Any error classifies the key as invalid.
type KeyVerifier interface {
	VerifyKey(ctx context.Context, key string) error
}

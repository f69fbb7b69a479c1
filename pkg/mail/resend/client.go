package resend

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/outbox/pkg/mail"
)

// Client implements mail.Provider using the Resend API.
type Client struct {
	client *resend.Client
}

// New creates a Resend-backed provider for the given API key.
func New(apiKey string) *Client {
	return &Client{client: resend.NewClient(apiKey)}
}

// Send delivers the message and returns the provider-assigned id.
// It performs exactly one attempt; retrying is the caller's decision.
func (c *Client) Send(ctx context.Context, msg *mail.Message) (string, error) {
	req := &resend.SendEmailRequest{
		From:    msg.From(),
		To:      msg.Recipients,
		Subject: msg.Subject,
		Html:    msg.HTML,
	}

	resp, err := c.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		return "", fmt.Errorf("resend: failed to send email: %w", err)
	}

	return resp.Id, nil
}

// VerifyKey checks a candidate API key with a read-only domain listing on a
// throwaway client. Any provider error classifies the key as invalid.
func VerifyKey(ctx context.Context, apiKey string) error {
	client := resend.NewClient(apiKey)
	if _, err := client.Domains.ListWithContext(ctx); err != nil {
		return fmt.Errorf("resend: key verification failed: %w", err)
	}
	return nil
}

// Verifier adapts VerifyKey to the mail.KeyVerifier interface.
type Verifier struct{}

// VerifyKey implements mail.KeyVerifier.
func (Verifier) VerifyKey(ctx context.Context, key string) error {
	return VerifyKey(ctx, key)
}

package send

import (
	"context"

	"github.com/dmitrymomot/outbox/pkg/mail"
)

// Ticket is the handle returned for one accepted send. The caller can await
// the outcome through Wait or Done, or ignore the ticket entirely and rely
// on bus events; the send proceeds either way.
type Ticket struct {
	msg  *mail.Message
	err  error
	done chan struct{}
}

func newTicket(msg *mail.Message) *Ticket {
	return &Ticket{msg: msg, done: make(chan struct{})}
}

// Done is closed when the send reaches a terminal state.
func (t *Ticket) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the send completes or ctx is cancelled. Cancelling the
// wait does not cancel the send itself: the attempt runs to completion.
func (t *Ticket) Wait(ctx context.Context) (*mail.Message, error) {
	select {
	case <-t.done:
		return t.msg, t.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Message returns the message owned by this ticket. It must only be read
// after Done is closed; until then the worker goroutine owns it.
func (t *Ticket) Message() *mail.Message {
	return t.msg
}

func (t *Ticket) complete(err error) {
	t.err = err
	close(t.done)
}

// Package outbox is the core of a desktop email client built on the Resend
// API: an asynchronous send pipeline with local persistence and an
// in-process event bus.
//
// The Client facade accepts send requests from a presenter, validates them
// synchronously, performs the blocking provider call on a dedicated
// goroutine per send, records every terminal outcome (sent or failed) to a
// file-backed history, and broadcasts progress as typed events. Reusable
// templates and unsent drafts are persisted the same way, one JSON file per
// record under the client's base directory.
//
//	client, err := outbox.New(outbox.WithLogger(logger.New()))
//	if err != nil {
//		// ...
//	}
//
//	client.Bus().Subscribe(bus.KindSendResult, func(e bus.Event) {
//		res := e.(bus.SendResult)
//		// marshal back onto the UI context before rendering
//	})
//
//	ticket, err := client.SendEmail(ctx, send.Request{
//		FromName:    "Alice",
//		FromAddress: "alice@example.com",
//		Recipients:  "bob@example.com; carol@example.com",
//		Subject:     "Hello",
//		HTML:        "<p>Hi there</p>",
//	})
//
// Delivery is acknowledged, not guaranteed: the pipeline issues exactly one
// provider attempt per user-initiated send, with no retries and no
// cancellation of an attempt in flight.
package outbox

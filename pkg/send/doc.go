// Package send implements the asynchronous send pipeline. A send request is
// validated synchronously on the caller's goroutine; the blocking provider
// call runs on its own goroutine, one per user-initiated send, with no
// shared queue, concurrency limit, or retry. The coordinator advances each
// message through DRAFT -> SENDING -> SENT|FAILED, persists terminal
// outcomes to history, and publishes progress on the event bus.
//
// Event order per request is fixed: an in-flight StatusUpdate, then the
// terminal SendResult, then the terminal StatusUpdate. No ordering holds
// across concurrent sends; subscribers disambiguate via the Message carried
// by each event.
//
// There is no cancellation: once dispatched, an attempt runs to the
// provider's own completion or timeout. Callers that stop caring drop the
// Ticket.
package send

// Package mail defines the core email domain types shared across the module:
// the Message lifecycle (DRAFT -> SENDING -> SENT | FAILED), reusable
// templates, recipient parsing, and the Provider interface implemented by
// delivery backends.
//
// A Message is owned by exactly one component at a time: the send coordinator
// while in flight, the record store once persisted, and observers receive it
// read-only through bus events.
package mail

// Package bus connects the send coordinator to its observers through a
// typed in-process publish/subscribe broadcaster. The event set is a closed
// union (StatusUpdate, SendResult, TemplateLoaded) dispatched by variant
// kind, with no reflection, buffering, or cross-kind wildcards. Delivery is
// "called once per handler registered at publish time", in registration
// order, on the publisher's goroutine.
package bus

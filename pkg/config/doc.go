// Package config implements the durable key/value settings store: API key,
// default sender, default recipient. The store is a process-wide handle
// constructed once at startup and passed explicitly to consumers; there is
// no hidden global state. Writes are last-write-wins with a whole-file
// flush on every mutation, which is acceptable at the human-paced write
// rates of a settings screen.
package config

// Package render fills template placeholders and converts markdown-authored
// templates to HTML before a message is composed. Rendering happens when a
// template is applied, never on the send path itself: the coordinator only
// ever sees a finished HTML body.
package render

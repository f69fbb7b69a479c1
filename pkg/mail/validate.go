package mail

import (
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Deliberately conservative local@domain pattern. Full RFC 5322 validation is
// out of scope; the provider is the final arbiter of deliverability.
var addressPattern = regexp.MustCompile(`^[\w.+-]+@[\w-]+(\.[\w-]+)+$`)

// ValidAddress reports whether addr looks like a deliverable email address.
func ValidAddress(addr string) bool {
	return addressPattern.MatchString(strings.TrimSpace(addr))
}

var (
	textPolicy  *bluemonday.Policy
	mediaPolicy *bluemonday.Policy
	policyOnce  sync.Once
)

// IsBlankHTML reports whether the HTML body carries no visible content.
// Rich-text editors produce non-empty boilerplate markup for an empty
// document (e.g. <html><head></head><body contenteditable="true"></body></html>),
// so emptiness is judged on the stripped text rather than the raw markup.
// Embedded media counts as content: a body that is a single <img> with no
// surrounding text is not blank.
func IsBlankHTML(html string) bool {
	policyOnce.Do(func() {
		// StrictPolicy strips all HTML, leaving only text
		textPolicy = bluemonday.StrictPolicy()
		mediaPolicy = bluemonday.NewPolicy()
		mediaPolicy.AllowElements("img", "video", "audio", "iframe", "embed", "object")
	})
	if strings.TrimSpace(textPolicy.Sanitize(html)) != "" {
		return false
	}
	return strings.TrimSpace(mediaPolicy.Sanitize(html)) == ""
}

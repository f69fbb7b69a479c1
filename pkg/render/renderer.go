package render

import (
	"bytes"
	"errors"
	texttemplate "text/template"

	"github.com/yuin/goldmark"

	"github.com/dmitrymomot/outbox/pkg/mail"
)

// ErrRenderFailed indicates template execution or markdown conversion failed.
var ErrRenderFailed = errors.New("failed to render template")

// Renderer produces the final subject and HTML body from a stored template.
// Subject and body both support {{.Variable}} placeholders; templates
// flagged as markdown are converted to HTML after placeholder substitution.
type Renderer struct {
	md goldmark.Markdown
}

// New creates a renderer.
func New() *Renderer {
	return &Renderer{md: goldmark.New()}
}

// Render applies data to the template and returns the subject and HTML body
// ready for sending.
func (r *Renderer) Render(tpl *mail.Template, data map[string]any) (subject, html string, err error) {
	subject, err = execute("subject", tpl.Subject, data)
	if err != nil {
		return "", "", errors.Join(ErrRenderFailed, err)
	}

	body, err := execute("body", tpl.HTML, data)
	if err != nil {
		return "", "", errors.Join(ErrRenderFailed, err)
	}

	if tpl.Markdown {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(body), &buf); err != nil {
			return "", "", errors.Join(ErrRenderFailed, err)
		}
		body = buf.String()
	}

	return subject, body, nil
}

func execute(name, src string, data map[string]any) (string, error) {
	tmpl, err := texttemplate.New(name).Parse(src)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

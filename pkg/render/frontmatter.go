package render

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/outbox/pkg/mail"
)

// ErrInvalidFrontmatter indicates malformed YAML frontmatter.
var ErrInvalidFrontmatter = errors.New("invalid frontmatter")

var delimiter = []byte("---")

// ParseMarkdown builds a template from a markdown document with optional
// YAML frontmatter:
//
//	---
//	name: Welcome
//	subject: Welcome {{.Name}}
//	---
//	Hello **{{.Name}}**!
//
// Without frontmatter the whole content becomes the body and name/subject
// stay empty for the caller to fill in.
func ParseMarkdown(content []byte) (*mail.Template, error) {
	meta, body, err := splitFrontmatter(content)
	if err != nil {
		return nil, err
	}

	tpl := mail.NewTemplate(meta.Name, meta.Subject, string(body))
	tpl.Markdown = true
	return tpl, nil
}

type frontmatter struct {
	Name    string `yaml:"name"`
	Subject string `yaml:"subject"`
}

func splitFrontmatter(content []byte) (frontmatter, []byte, error) {
	var meta frontmatter

	if !bytes.HasPrefix(content, delimiter) {
		return meta, content, nil
	}

	rest := bytes.TrimPrefix(content, delimiter)
	rest = bytes.TrimLeft(rest, "\r\n")
	end := bytes.Index(rest, delimiter)
	if end == -1 {
		return meta, nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
	}

	if raw := bytes.TrimSpace(rest[:end]); len(raw) > 0 {
		if err := yaml.Unmarshal(raw, &meta); err != nil {
			return meta, nil, errors.Join(ErrInvalidFrontmatter, err)
		}
	}

	body := rest[end+len(delimiter):]
	body = bytes.TrimLeft(body, "\r\n")
	return meta, body, nil
}

package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Template names a message layout. Each layout file defines the "subject",
// "text" and "html" templates.
type Template string

const (
	TemplateVerifyEmail   Template = "verify_email"
	TemplateResetPassword Template = "reset_password"
)

// LinkData is the data every layout is rendered with.
type LinkData struct {
	FirstName string
	LastName  string
	Link      string
}

type view struct {
	text *texttemplate.Template
	html *htmltemplate.Template
}

// Mailer renders the embedded layouts and hands the result to a Sender.
type Mailer struct {
	from   Address
	sender Sender
	views  map[Template]view
}

// NewMailer parses every layout up front so a broken template fails at
// startup rather than on the first registration.
func NewMailer(from Address, sender Sender) (*Mailer, error) {
	m := &Mailer{
		from:   from,
		sender: sender,
		views:  make(map[Template]view),
	}

	for _, name := range []Template{TemplateVerifyEmail, TemplateResetPassword} {
		file := "templates/" + string(name) + ".tmpl"

		text, err := texttemplate.New(string(name)).ParseFS(templateFS, file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		html, err := htmltemplate.New(string(name)).ParseFS(templateFS, file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		for _, part := range []string{"subject", "text"} {
			if text.Lookup(part) == nil {
				return nil, fmt.Errorf("template %s: missing %q", name, part)
			}
		}
		if html.Lookup("html") == nil {
			return nil, fmt.Errorf("template %s: missing \"html\"", name)
		}

		m.views[name] = view{text: text, html: html}
	}

	return m, nil
}

// Render produces the message for the given layout without sending it.
func (m *Mailer) Render(name Template, to Address, data LinkData) (Message, error) {
	v, ok := m.views[name]
	if !ok {
		return Message{}, fmt.Errorf("unknown template %q", name)
	}

	var subject, text, html bytes.Buffer
	if err := v.text.ExecuteTemplate(&subject, "subject", data); err != nil {
		return Message{}, fmt.Errorf("render %s subject: %w", name, err)
	}
	if err := v.text.ExecuteTemplate(&text, "text", data); err != nil {
		return Message{}, fmt.Errorf("render %s text: %w", name, err)
	}
	if err := v.html.ExecuteTemplate(&html, "html", data); err != nil {
		return Message{}, fmt.Errorf("render %s html: %w", name, err)
	}

	return Message{
		From:     m.from,
		To:       to,
		Subject:  strings.TrimSpace(subject.String()),
		TextBody: strings.TrimSpace(text.String()),
		HTMLBody: strings.TrimSpace(html.String()),
	}, nil
}

// Send renders the layout and delivers it.
func (m *Mailer) Send(ctx context.Context, name Template, to Address, data LinkData) error {
	msg, err := m.Render(name, to, data)
	if err != nil {
		return err
	}
	if err := m.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("send %s: %w", name, err)
	}
	return nil
}

// Package mail renders notification templates and hands the result to a
// transport.
package mail

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/Prince260602/internhubs/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var defaultTemplates []byte

// RecipientAdmin routes a message to the configured site mailbox.
const RecipientAdmin = "admin"

type templateSpec struct {
	To       string   `yaml:"to"`
	ReplyTo  string   `yaml:"reply_to"`
	Required []string `yaml:"required"`
	Subject  string   `yaml:"subject"`
	Text     string   `yaml:"text"`
}

type compiled struct {
	spec    templateSpec
	subject *template.Template
	text    *template.Template
}

type Templates struct {
	byKind map[models.NotificationKind]compiled
}

// ErrNoRecipient is returned by Render when the resolved recipient is blank,
// which for admin-bound kinds means MAIL_USER is unset.
var ErrNoRecipient = errors.New("mail: no recipient")

func DefaultTemplates() (*Templates, error) { return ParseTemplates(defaultTemplates) }

func ParseTemplates(src []byte) (*Templates, error) {
	var raw map[string]templateSpec
	if err := yaml.Unmarshal(src, &raw); err != nil {
		return nil, fmt.Errorf("parse mail templates: %w", err)
	}

	t := &Templates{byKind: make(map[models.NotificationKind]compiled, len(raw))}
	for name, spec := range raw {
		if spec.To == "" {
			return nil, fmt.Errorf("mail template %q: missing recipient", name)
		}
		subj, err := template.New(name + ".subject").Option("missingkey=zero").Parse(spec.Subject)
		if err != nil {
			return nil, fmt.Errorf("mail template %q subject: %w", name, err)
		}
		body, err := template.New(name + ".text").Option("missingkey=zero").Parse(spec.Text)
		if err != nil {
			return nil, fmt.Errorf("mail template %q text: %w", name, err)
		}
		t.byKind[models.NotificationKind(name)] = compiled{spec: spec, subject: subj, text: body}
	}
	return t, nil
}

func (t *Templates) Has(kind models.NotificationKind) bool {
	_, ok := t.byKind[kind]
	return ok
}

// Missing lists the required fields absent or blank in vars.
func (t *Templates) Missing(kind models.NotificationKind, vars map[string]string) []string {
	c, ok := t.byKind[kind]
	if !ok {
		return nil
	}
	var out []string
	for _, f := range c.spec.Required {
		if strings.TrimSpace(vars[f]) == "" {
			out = append(out, f)
		}
	}
	return out
}

// AddressFields lists the request fields that must hold an email address.
func (t *Templates) AddressFields(kind models.NotificationKind) []string {
	c, ok := t.byKind[kind]
	if !ok {
		return nil
	}
	var out []string
	if c.spec.To != RecipientAdmin {
		out = append(out, c.spec.To)
	}
	if c.spec.ReplyTo != "" {
		out = append(out, c.spec.ReplyTo)
	}
	return out
}

// Render builds the message for kind. from is the authenticated sender and
// admin the site mailbox.
func (t *Templates) Render(kind models.NotificationKind, vars map[string]string, from, admin string) (models.Email, error) {
	c, ok := t.byKind[kind]
	if !ok {
		return models.Email{}, fmt.Errorf("no mail template for %q", kind)
	}

	var subj, body bytes.Buffer
	if err := c.subject.Execute(&subj, vars); err != nil {
		return models.Email{}, fmt.Errorf("render %s subject: %w", kind, err)
	}
	if err := c.text.Execute(&body, vars); err != nil {
		return models.Email{}, fmt.Errorf("render %s text: %w", kind, err)
	}

	to := admin
	if c.spec.To != RecipientAdmin {
		to = vars[c.spec.To]
	}
	if strings.TrimSpace(to) == "" {
		return models.Email{}, fmt.Errorf("render %s: %w", kind, ErrNoRecipient)
	}

	e := models.Email{
		Kind:    kind,
		From:    from,
		To:      []string{to},
		Subject: strings.TrimSpace(subj.String()),
		Text:    body.String(),
	}
	if c.spec.ReplyTo != "" {
		e.ReplyTo = vars[c.spec.ReplyTo]
	}
	return e, nil
}

// Package outreach generates the audit-offer email for a lead and delivers
// it over SMTP.
package outreach

import (
	"bytes"
	"os"
	"strings"
	"text/template"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// DefaultSubject is the subject line of every outreach email.
const DefaultSubject = "Free 15-Min Workflow Audit"

// DefaultSignOff closes every generated email.
const DefaultSignOff = "Best,\nThe Workflow Audit Team"

const defaultSystem = "You write short, friendly, plain-text B2B outreach emails. " +
	"Return only the email body: no subject line, no markdown, no placeholders."

const defaultPrompt = `Write an email to {{.Name}} offering a free 15-minute workflow audit.
Subject: {{.Subject}}

Open with "Hi {{.Name}},".
Mention that, as a professional in the {{.Industry}} space, they could save hours every week with AI automation.
Offer a free 15-minute audit to optimize their processes.
Keep it under 120 words and end with exactly this sign-off:
{{.SignOff}}`

// Template is the fixed shape of the outreach email. Prompt is a
// text/template rendered with PromptData.
type Template struct {
	Subject string `yaml:"subject"`
	SignOff string `yaml:"sign_off"`
	System  string `yaml:"system"`
	Prompt  string `yaml:"prompt"`
}

// PromptData is the data passed to Template.Prompt.
type PromptData struct {
	Name     string
	Industry string
	Subject  string
	SignOff  string
}

// DefaultTemplate returns the built-in template.
func DefaultTemplate() Template {
	return Template{
		Subject: DefaultSubject,
		SignOff: DefaultSignOff,
		System:  defaultSystem,
		Prompt:  defaultPrompt,
	}
}

// LoadTemplate reads a YAML template file. Fields left blank in the file keep
// their built-in values.
func LoadTemplate(path string) (Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Template{}, eris.Wrapf(err, "outreach: read template %s", path)
	}

	var file Template
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Template{}, eris.Wrapf(err, "outreach: parse template %s", path)
	}

	t := DefaultTemplate().merge(file)
	if _, err := t.parse(); err != nil {
		return Template{}, err
	}
	return t, nil
}

// merge overlays the non-blank fields of o onto t.
func (t Template) merge(o Template) Template {
	if strings.TrimSpace(o.Subject) != "" {
		t.Subject = o.Subject
	}
	if strings.TrimSpace(o.SignOff) != "" {
		t.SignOff = o.SignOff
	}
	if strings.TrimSpace(o.System) != "" {
		t.System = o.System
	}
	if strings.TrimSpace(o.Prompt) != "" {
		t.Prompt = o.Prompt
	}
	return t
}

func (t Template) parse() (*template.Template, error) {
	tmpl, err := template.New("prompt").Option("missingkey=error").Parse(t.Prompt)
	if err != nil {
		return nil, eris.Wrap(err, "outreach: parse prompt template")
	}
	return tmpl, nil
}

// Render fills the prompt for one lead.
func (t Template) Render(name, industry string) (string, error) {
	tmpl, err := t.parse()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, PromptData{
		Name:     name,
		Industry: industry,
		Subject:  t.Subject,
		SignOff:  t.SignOff,
	})
	if err != nil {
		return "", eris.Wrap(err, "outreach: render prompt")
	}
	return buf.String(), nil
}

package email

import (
	"bytes"
	"fmt"
	"html/template"
)

type templateData struct {
	Subject    string
	UserName   string
	Message    string
	ActionURL  string
	ActionText string
	FromName   string
}

const baseTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>{{.Subject}}</h2>
  {{if .UserName}}<p>Hi {{.UserName}},</p>{{end}}
  <p>{{.Message}}</p>
  {{if .ActionURL}}<p><a href="{{.ActionURL}}" style="background:#2563eb;color:#fff;padding:10px 18px;border-radius:4px;text-decoration:none;">{{.ActionText}}</a></p>{{end}}
  <p>— {{.FromName}}</p>
</body>
</html>`

type templateRenderer struct {
	tpl *template.Template
}

func newTemplateRenderer() (*templateRenderer, error) {
	tpl, err := template.New("base").Parse(baseTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base email template: %w", err)
	}
	return &templateRenderer{tpl: tpl}, nil
}

func (r *templateRenderer) Render(data templateData) (string, error) {
	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render email template: %w", err)
	}
	return buf.String(), nil
}

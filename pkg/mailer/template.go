package mailer

import (
	"bytes"
	"html/template"

	"github.com/Masterminds/sprig/v3"
)

// RenderTemplate executes an html template with the sprig function set.
func RenderTemplate(name, tmplStr string, data interface{}) (string, error) {
	tmpl, err := template.New(name).Funcs(sprig.FuncMap()).Parse(tmplStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

const welcomeSubjectTemplate = `Welcome to {{ .AppName }}, {{ .Name | trim | title }}!`

const welcomeBodyTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: sans-serif">
  <h1>Hi {{ .Name | trim | title }},</h1>
  <p>Your {{ .AppName }} account <strong>@{{ .Username | lower }}</strong> is ready.</p>
  <p>Rate the beaches you visit, keep a list of favourites and see how every island ranks.</p>
  {{- if .ClientURL }}
  <p><a href="{{ .ClientURL }}">Start exploring</a></p>
  {{- end }}
  <p style="color: #888">Sent {{ .SentAt | date "2006-01-02" }}</p>
</body>
</html>`

// WelcomeData feeds the welcome mail templates.
type WelcomeData struct {
	AppName   string
	Name      string
	Username  string
	ClientURL string
	SentAt    interface{}
}

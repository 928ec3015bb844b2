// Package templates renders the transactional emails sent by the worker.
package templates

import (
	"bytes"
	"fmt"
	htmpl "html/template"
	"strings"
	texttpl "text/template"
)

const Welcome = "welcome"

// Data is the template input; unset links are omitted from the output.
type Data struct {
	AppName    string
	Email      string
	SupportURL string
}

type set struct {
	subject string
	text    *texttpl.Template
	html    *htmpl.Template
}

var registry = map[string]set{
	Welcome: {
		subject: "Welcome to {{.AppName}}",
		text: texttpl.Must(texttpl.New("welcome.txt").Parse(`Hi {{.Email}},

Your {{.AppName}} account is ready. Create a topic, add your research notes
and start drafting.
{{if .SupportURL}}
Questions? {{.SupportURL}}
{{end}}`)),
		html: htmpl.Must(htmpl.New("welcome.html").Parse(`<!DOCTYPE html>
<html><body style="font-family: Georgia, serif; color: #222;">
<h2>Welcome to {{.AppName}}</h2>
<p>Hi {{.Email}},</p>
<p>Your account is ready. Create a topic, add your research notes and start drafting.</p>
{{if .SupportURL}}<p>Questions? <a href="{{.SupportURL}}">Contact support</a></p>{{end}}
</body></html>`)),
	},
}

// Render returns subject, text and HTML bodies for the named template.
func Render(name string, data Data) (string, string, string, error) {
	tpl, ok := registry[strings.ToLower(name)]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
	if data.AppName == "" {
		data.AppName = "Heart"
	}

	subject, err := texttpl.New("subject").Parse(tpl.subject)
	if err != nil {
		return "", "", "", err
	}
	var sb, tb, hb bytes.Buffer
	if err := subject.Execute(&sb, data); err != nil {
		return "", "", "", err
	}
	if err := tpl.text.Execute(&tb, data); err != nil {
		return "", "", "", err
	}
	if err := tpl.html.Execute(&hb, data); err != nil {
		return "", "", "", err
	}
	return sb.String(), tb.String(), hb.String(), nil
}

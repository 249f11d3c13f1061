package templates

import (
	"bytes"
	"fmt"
	htmltpl "html/template"
	texttpl "text/template"
)

// Rendered templates for the notification emails the dealership sends.
// Data keys: Name, DealershipName, Role (role_updated only).

const welcomeSubject = "Welcome to {{.DealershipName}}"

const welcomeText = `Hi {{.Name}},

Your account at {{.DealershipName}} is ready. Browse the catalog, save the
cars you like, and reach out any time during our working hours.

The {{.DealershipName}} team`

const welcomeHTML = `<html><body>
<p>Hi {{.Name}},</p>
<p>Your account at <strong>{{.DealershipName}}</strong> is ready. Browse the
catalog, save the cars you like, and reach out any time during our working
hours.</p>
<p>The {{.DealershipName}} team</p>
</body></html>`

const roleUpdatedSubject = "Your account role was changed"

const roleUpdatedText = `Hi {{.Name}},

An administrator changed your account role at {{.DealershipName}} to
"{{.Role}}". If this is unexpected, contact us.

The {{.DealershipName}} team`

const roleUpdatedHTML = `<html><body>
<p>Hi {{.Name}},</p>
<p>An administrator changed your account role at
<strong>{{.DealershipName}}</strong> to <strong>{{.Role}}</strong>.
If this is unexpected, contact us.</p>
<p>The {{.DealershipName}} team</p>
</body></html>`

type tset struct {
	subject *texttpl.Template
	text    *texttpl.Template
	html    *htmltpl.Template
}

var registry = map[string]tset{
	"welcome": {
		subject: texttpl.Must(texttpl.New("s").Parse(welcomeSubject)),
		text:    texttpl.Must(texttpl.New("t").Parse(welcomeText)),
		html:    htmltpl.Must(htmltpl.New("h").Parse(welcomeHTML)),
	},
	"role_updated": {
		subject: texttpl.Must(texttpl.New("s").Parse(roleUpdatedSubject)),
		text:    texttpl.Must(texttpl.New("t").Parse(roleUpdatedText)),
		html:    htmltpl.Must(htmltpl.New("h").Parse(roleUpdatedHTML)),
	},
}

// Render produces subject, text and HTML bodies for a named template.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	ts, ok := registry[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
	var sb, tb, hb bytes.Buffer
	if err := ts.subject.Execute(&sb, data); err != nil {
		return "", "", "", err
	}
	if err := ts.text.Execute(&tb, data); err != nil {
		return "", "", "", err
	}
	if err := ts.html.Execute(&hb, data); err != nil {
		return "", "", "", err
	}
	return sb.String(), tb.String(), hb.String(), nil
}

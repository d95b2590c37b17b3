package services

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/rafabene/blog-backend/internal/domain/ports"
)

var (
	verificationEmailTemplate = template.Must(template.New("verification").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Welcome to Blog App, {{.Name}}!</h2>
  <p>Use the code below to verify your email address:</p>
  <p style="font-size: 28px; font-weight: bold; letter-spacing: 6px;">{{.Code}}</p>
  <p>This code expires in {{.ValidFor}}.</p>
</body>
</html>`))

	resetPasswordEmailTemplate = template.Must(template.New("reset").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Password reset</h2>
  <p>Hello {{.Name}}, we received a request to reset your password.</p>
  <p><a href="{{.Link}}">Reset your password</a></p>
  <p>This link expires in {{.ValidFor}}. If you did not request it, ignore this email.</p>
</body>
</html>`))
)

type verificationEmailData struct {
	Name     string
	Code     string
	ValidFor string
}

type resetPasswordEmailData struct {
	Name     string
	Link     string
	ValidFor string
}

func renderEmail(to, subject string, tmpl *template.Template, data interface{}) (ports.Email, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return ports.Email{}, err
	}
	return ports.Email{To: to, Subject: subject, HTML: buf.String()}, nil
}

func humanDuration(d time.Duration) string {
	if d >= time.Hour && d%time.Hour == 0 {
		return fmt.Sprintf("%d hours", d/time.Hour)
	}
	return fmt.Sprintf("%d minutes", d/time.Minute)
}

package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"os"
)

// EmailData feeds the HTML templates under templates/. Detail carries the
// template-specific payload: an order summary line, a reset link, a
// business name.
type EmailData struct {
	Name    string
	Message string
	Detail  string
}

func SendEmail(to string, subject string, data EmailData, templatePath string) error {
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return fmt.Errorf("template parse error: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	from := os.Getenv("FROM_EMAIL")
	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		from, to, subject, body.String(),
	)

	auth := smtp.PlainAuth("", from, os.Getenv("FROM_EMAIL_PASSWORD"), os.Getenv("FROM_EMAIL_SMTP"))

	if err := smtp.SendMail(os.Getenv("SMTP_ADDRESS"), auth, from, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

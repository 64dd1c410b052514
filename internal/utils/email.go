package utils

import (
	"adminkit_backend/internal/config"

	"gopkg.in/gomail.v2"
)

type EmailSender struct {
	cfg *config.Config
}

func NewEmailSender(cfg *config.Config) *EmailSender {
	return &EmailSender{cfg: cfg}
}

func (e *EmailSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", e.cfg.Email.FromEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		e.cfg.Email.SMTPHost,
		e.cfg.Email.SMTPPort,
		e.cfg.Email.SMTPUser,
		e.cfg.Email.SMTPPassword,
	)

	return d.DialAndSend(m)
}

// SendAdminAlert шлет письмо на настроенный адрес администратора.
// No-op если почта выключена или адрес не задан.
func (e *EmailSender) SendAdminAlert(subject, body string) error {
	if !e.cfg.Email.Enabled || e.cfg.Email.AdminEmail == "" {
		return nil
	}
	return e.Send(e.cfg.Email.AdminEmail, subject, body)
}

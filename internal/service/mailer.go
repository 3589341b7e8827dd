package service

import (
	"fmt"
	"net/smtp"

	"judoacademy.app/hub/internal/config"
)

type Mailer struct {
	cfg config.SMTPConfig
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) IsConfigured() bool {
	return m.cfg.Host != "" && m.cfg.Username != "" && m.cfg.Password != "" && m.cfg.From != ""
}

func (m *Mailer) Send(to, subject, body string) error {
	if !m.IsConfigured() {
		return nil
	}

	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		m.cfg.From, to, subject, body)

	return smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg))
}

func (m *Mailer) SendPasswordReset(to, resetURL string) error {
	subject := "Restablecer contraseña - Judo Academy Hub"
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Restablecer contraseña</h2>
			<p>Hola,</p>
			<p>Hemos recibido una solicitud para restablecer tu contraseña.</p>
			<p><a href="%s">Haz clic aquí para elegir una nueva contraseña</a></p>
			<p>Si no has sido tú, puedes ignorar este mensaje.</p>
		</body>
		</html>
	`, resetURL)

	return m.Send(to, subject, body)
}

package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dvillegas/multierp-api/internal/application/auth"
	"github.com/dvillegas/multierp-api/pkg/config"
)

// New elige el mailer según configuración: SMTP si hay host, log en desarrollo.
func New(cfg config.MailConfig, log zerolog.Logger) auth.Mailer {
	if cfg.Host == "" {
		return &LogMailer{log: log}
	}
	return &SMTPMailer{cfg: cfg}
}

var _ auth.Mailer = (*LogMailer)(nil)

// LogMailer escribe el correo al log en vez de enviarlo (modo desarrollo).
type LogMailer struct {
	log zerolog.Logger
}

// NewLogMailer construye el mailer de log.
func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, to, subject, body string) error {
	m.log.Info().
		Str("to", to).
		Str("subject", subject).
		Str("body", body).
		Msg("correo no enviado (mailer de desarrollo)")
	return nil
}

var _ auth.Mailer = (*SMTPMailer)(nil)

// SMTPMailer envío por SMTP plano con auth opcional.
type SMTPMailer struct {
	cfg config.MailConfig
}

// NewSMTPMailer construye el mailer SMTP.
func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(_ context.Context, to, subject, body string) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var a smtp.Auth
	if m.cfg.Username != "" {
		a = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	if err := smtp.SendMail(addr, a, m.cfg.From, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

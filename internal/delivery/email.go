// Package delivery sends the rendered digest to the configured recipient.
package delivery

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/ats/lynchboard/pkg/config"
	"github.com/ats/lynchboard/pkg/logger"
)

// Mailer sends HTML email over SMTP with plain auth.
type Mailer struct {
	cfg    config.EmailConfig
	logger *logger.Logger

	// send is swappable for tests
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewMailer creates a mailer from config.
func NewMailer(cfg config.EmailConfig, log *logger.Logger) *Mailer {
	return &Mailer{
		cfg:    cfg,
		logger: log,
		send:   smtp.SendMail,
	}
}

// Enabled reports whether delivery is configured. A missing recipient or
// password disables email without failing the run.
func (m *Mailer) Enabled() bool {
	return m.cfg.Recipient != "" && m.cfg.Password != ""
}

// SendHTML delivers an HTML body with the configured subject.
func (m *Mailer) SendHTML(subject, htmlBody string) error {
	if !m.Enabled() {
		m.logger.Warn("Email delivery not configured, skipping")
		return nil
	}

	msg := buildMessage(m.cfg.From, m.cfg.Recipient, subject, htmlBody)
	addr := m.cfg.SMTPHost + ":" + m.cfg.SMTPPort
	auth := smtp.PlainAuth("", m.cfg.From, m.cfg.Password, m.cfg.SMTPHost)

	if err := m.send(addr, auth, m.cfg.From, []string{m.cfg.Recipient}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.WithFields(map[string]interface{}{
		"to":      m.cfg.Recipient,
		"subject": subject,
	}).Info("Email sent")
	return nil
}

// buildMessage assembles the RFC 5322 message with an HTML content type.
func buildMessage(from, to, subject, htmlBody string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}

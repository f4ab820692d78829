// Package mail sends invitation notifications over SMTP.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"strings"
)

// Config captures the SMTP endpoint and sender identity.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// BaseURL is the public address used to build invitation links.
	BaseURL string
}

type sendFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

// Mailer delivers invitation mails. Delivery failures are logged, never
// surfaced; an invitation is created whether or not its mail goes out.
type Mailer struct {
	cfg    Config
	send   sendFunc
	logger *slog.Logger
}

// NewMailer constructs a Mailer for the given SMTP configuration.
func NewMailer(cfg Config, logger *slog.Logger) *Mailer {
	if cfg.From == "" {
		cfg.From = "mailforyamp@gmail.com"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Mailer{cfg: cfg, send: smtp.SendMail, logger: logger}
}

// SendInvitation mails the invitation link for invitationID to recipientEmail.
func (m *Mailer) SendInvitation(ctx context.Context, recipientEmail, invitationID string) {
	if m == nil {
		return
	}

	logger := m.logger.With("recipient", recipientEmail, "invitation_id", invitationID)

	recipient := strings.TrimSpace(recipientEmail)
	if recipient == "" {
		logger.WarnContext(ctx, "skipping invitation mail without recipient")
		return
	}

	link := m.InvitationLink(invitationID)
	msg := buildMessage(m.cfg.From, recipient, "YAMP Invitation", invitationBody(link))

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	if err := m.send(addr, auth, m.cfg.From, []string{recipient}, msg); err != nil {
		logger.ErrorContext(ctx, "failed to send invitation mail", "error", err)
		return
	}

	logger.InfoContext(ctx, "invitation mail sent")
}

// InvitationLink returns the public link for an invitation.
func (m *Mailer) InvitationLink(invitationID string) string {
	base := strings.TrimRight(m.cfg.BaseURL, "/")
	return base + "/meeting-invitation/" + invitationID
}

func invitationBody(link string) string {
	return "Hello stranger,\n\n" +
		"You have been invited to a meeting.\n" +
		"Please visit the following link and see what is all about:\n" +
		link + "\n\n" +
		"Kind regards,\nYAMP team."
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}

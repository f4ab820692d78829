package mail

import (
	"context"
	"errors"
	"log/slog"
	"net/smtp"
	"strings"
	"testing"
)

func newTestMailer(send sendFunc) *Mailer {
	mailer := NewMailer(Config{
		Host:    "smtp.example.com",
		Port:    587,
		From:    "mailforyamp@gmail.com",
		BaseURL: "http://localhost:3000/",
	}, slog.Default())
	mailer.send = send
	return mailer
}

func TestMailer_SendInvitation(t *testing.T) {
	t.Parallel()

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	mailer := newTestMailer(func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	})

	mailer.SendInvitation(context.Background(), "guest@example.com", "inv-42")

	if gotAddr != "smtp.example.com:587" {
		t.Fatalf("expected SMTP address smtp.example.com:587, got %q", gotAddr)
	}
	if gotFrom != "mailforyamp@gmail.com" {
		t.Fatalf("expected sender mailforyamp@gmail.com, got %q", gotFrom)
	}
	if len(gotTo) != 1 || gotTo[0] != "guest@example.com" {
		t.Fatalf("expected single recipient guest@example.com, got %v", gotTo)
	}

	message := string(gotMsg)
	if !strings.Contains(message, "Subject: YAMP Invitation\r\n") {
		t.Fatalf("expected invitation subject, got %q", message)
	}
	if !strings.Contains(message, "http://localhost:3000/meeting-invitation/inv-42") {
		t.Fatalf("expected invitation link in body, got %q", message)
	}
	if !strings.Contains(message, "Hello stranger,") {
		t.Fatalf("expected greeting in body, got %q", message)
	}
}

func TestMailer_SendInvitation_DeliveryFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	mailer := newTestMailer(func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
		return errors.New("connection refused")
	})

	// Must not panic or surface the error.
	mailer.SendInvitation(context.Background(), "guest@example.com", "inv-1")
}

func TestMailer_SendInvitation_EmptyRecipient(t *testing.T) {
	t.Parallel()

	called := false
	mailer := newTestMailer(func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
		called = true
		return nil
	})

	mailer.SendInvitation(context.Background(), "   ", "inv-1")
	if called {
		t.Fatalf("expected no delivery attempt without a recipient")
	}
}

func TestMailer_InvitationLink(t *testing.T) {
	t.Parallel()

	mailer := NewMailer(Config{BaseURL: "https://yamp.example.com"}, nil)
	if got := mailer.InvitationLink("abc"); got != "https://yamp.example.com/meeting-invitation/abc" {
		t.Fatalf("expected canonical link, got %q", got)
	}
}

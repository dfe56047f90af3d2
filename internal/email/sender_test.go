package email

import (
	"context"
	"strings"
	"testing"
	"time"

	"localesite/internal/config"
	"localesite/internal/i18n"
)

func TestBuildMessageHTML(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	msg := string(buildMessage("site@example.com", "team@example.com", "fr", i18n.EmailContent{
		Subject: "Nouveau message de Zoé",
		Text:    "plain",
		HTML:    "<p>rich</p>",
	}, now))

	for _, want := range []string{
		"From: site@example.com\r\n",
		"To: team@example.com\r\n",
		"Subject: =?utf-8?q?",
		"Date: Fri, 01 Mar 2024 12:00:00 +0000\r\n",
		"Content-Language: fr\r\n",
		"Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n<p>rich</p>",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestBuildMessagePlainText(t *testing.T) {
	t.Parallel()

	msg := string(buildMessage("a@example.com", "b@example.com", "", i18n.EmailContent{
		Subject: "Hello",
		Text:    "plain body",
	}, time.Now()))

	if !strings.Contains(msg, "Subject: Hello\r\n") {
		t.Fatalf("ASCII subject was encoded:\n%s", msg)
	}
	if strings.Contains(msg, "Content-Language") {
		t.Fatalf("unexpected Content-Language header:\n%s", msg)
	}
	if !strings.HasSuffix(msg, "Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\nplain body") {
		t.Fatalf("message = %q", msg)
	}
}

func TestSenderDisabled(t *testing.T) {
	t.Parallel()

	var nilSender *Sender
	if nilSender.Enabled() {
		t.Fatal("nil sender Enabled() = true")
	}

	s := NewSender(config.EmailConfig{Port: 587})
	if s.Enabled() {
		t.Fatal("Enabled() = true without host")
	}
	if err := s.Send(context.Background(), "a@example.com", "en", i18n.EmailContent{}); err == nil {
		t.Fatal("Send error = nil, want not configured")
	}
}

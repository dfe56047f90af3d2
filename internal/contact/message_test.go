package contact

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewMessage(t *testing.T) {
	t.Parallel()

	m, err := NewMessage("ar", "  Layla ", " layla@example.com ", "\nمرحبا\n")
	if err != nil {
		t.Fatalf("NewMessage: %v", err)
	}
	if m.ID == uuid.Nil {
		t.Fatal("ID not set")
	}
	if m.Locale != "ar" || m.Name != "Layla" || m.Email != "layla@example.com" || m.Body != "مرحبا" {
		t.Fatalf("NewMessage = %+v", m)
	}
}

func TestNewMessageValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		from      string
		email     string
		body      string
		wantField string
		wantKey   string
	}{
		{name: "blank name", from: "  ", email: "a@example.com", body: "hi", wantField: "name", wantKey: "contact.form.invalid_name"},
		{name: "long name", from: strings.Repeat("n", MaxNameLength+1), email: "a@example.com", body: "hi", wantField: "name", wantKey: "contact.form.too_long"},
		{name: "bad email", from: "Ada", email: "not-an-email", body: "hi", wantField: "email", wantKey: "contact.form.invalid_email"},
		{name: "display name email", from: "Ada", email: "Ada <a@example.com>", body: "hi", wantField: "email", wantKey: "contact.form.invalid_email"},
		{name: "blank body", from: "Ada", email: "a@example.com", body: " \n", wantField: "message", wantKey: "contact.form.invalid_message"},
		{name: "long body", from: "Ada", email: "a@example.com", body: strings.Repeat("é", MaxMessageLength+1), wantField: "message", wantKey: "contact.form.too_long"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewMessage("en", tt.from, tt.email, tt.body)
			var fieldErr *FieldError
			if !errors.As(err, &fieldErr) {
				t.Fatalf("error = %v, want *FieldError", err)
			}
			if fieldErr.Field != tt.wantField || fieldErr.Key != tt.wantKey {
				t.Fatalf("FieldError = %+v, want %s/%s", fieldErr, tt.wantField, tt.wantKey)
			}
		})
	}
}

func TestNewMessageAcceptsMaxLengthBody(t *testing.T) {
	t.Parallel()

	if _, err := NewMessage("fr", "Ada", "a@example.com", strings.Repeat("é", MaxMessageLength)); err != nil {
		t.Fatalf("NewMessage(max body): %v", err)
	}
}

package contact

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxNameLength    = 120
	MaxEmailLength   = 254
	MaxMessageLength = 4000
)

type Message struct {
	ID        uuid.UUID
	Locale    string
	Name      string
	Email     string
	Body      string
	IP        string
	UserAgent string
	CreatedAt time.Time
}

// FieldError names an invalid form field and the bundle key describing it.
type FieldError struct {
	Field string
	Key   string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Key
}

// NewMessage trims and validates a submitted form. The returned message has a
// fresh ID; CreatedAt is set by the store.
func NewMessage(locale, name, email, body string) (*Message, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	body = strings.TrimSpace(body)

	switch {
	case name == "":
		return nil, &FieldError{Field: "name", Key: "contact.form.invalid_name"}
	case utf8.RuneCountInString(name) > MaxNameLength:
		return nil, &FieldError{Field: "name", Key: "contact.form.too_long"}
	case !validateEmail(email):
		return nil, &FieldError{Field: "email", Key: "contact.form.invalid_email"}
	case body == "":
		return nil, &FieldError{Field: "message", Key: "contact.form.invalid_message"}
	case utf8.RuneCountInString(body) > MaxMessageLength:
		return nil, &FieldError{Field: "message", Key: "contact.form.too_long"}
	}

	return &Message{
		ID:     uuid.New(),
		Locale: locale,
		Name:   name,
		Email:  email,
		Body:   body,
	}, nil
}

func validateEmail(email string) bool {
	if email == "" || len(email) > MaxEmailLength {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

package i18n

import (
	"html"
	"strings"
)

type EmailContent struct {
	Subject string
	Text    string
	HTML    string
}

// ContactNotificationEmail renders the staff notification for a new contact
// message in the translator's locale. Values are HTML-escaped in the HTML part.
func ContactNotificationEmail(t *Translator, name, email, body, locale string) EmailContent {
	values := []string{
		"name", name,
		"email", email,
		"message", body,
		"locale", locale,
	}

	escaped := make([]string, len(values))
	for i, v := range values {
		if i%2 == 1 {
			v = strings.ReplaceAll(html.EscapeString(v), "\n", "<br>")
		}
		escaped[i] = v
	}

	return EmailContent{
		Subject: t.T("email.contact.subject", values...),
		Text:    t.T("email.contact.text", values...),
		HTML:    t.T("email.contact.html", escaped...),
	}
}

package server

import (
	"net/http"

	"localesite/internal/contact"
	"localesite/internal/i18n"
)

// sendContactNotification mails staff about msg in the default locale.
func (s *Server) sendContactNotification(r *http.Request, msg *contact.Message) error {
	if s.Mailer == nil || !s.Mailer.Enabled() || s.Config.ContactNotifyTo == "" {
		return nil
	}

	locale := s.Locales.Default()
	t := s.translator(r, locale)
	content := i18n.ContactNotificationEmail(t, msg.Name, msg.Email, msg.Body, msg.Locale)

	return s.Mailer.Send(r.Context(), s.Config.ContactNotifyTo, locale, content)
}

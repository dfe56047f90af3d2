package server

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"localesite/internal/audit"
	"localesite/internal/i18n"
)

const localeCookieMaxAge = 365 * 24 * time.Hour

// handleSwitch stores the visitor's language choice and sends them to the
// same page in that language.
func (s *Server) handleSwitch(w http.ResponseWriter, r *http.Request) {
	locale := chi.URLParam(r, "locale")
	if !s.Locales.IsSupported(locale) {
		s.handleNotFound(w, r)
		return
	}

	next := localPath(r.URL.Query().Get("next"))
	if next == "" {
		next = "/" + locale
	}
	target, from := switchTarget(s.Locales, next, locale)

	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName(),
		Value:    locale,
		Path:     "/",
		MaxAge:   int(localeCookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	if s.Switches != nil {
		err := s.Switches.Record(r.Context(), audit.SwitchEvent{
			From:      from,
			To:        locale,
			Path:      target,
			IP:        clientIP(r, s.trustedProxies),
			UserAgent: r.UserAgent(),
		})
		if err != nil {
			s.Logger.Warn("record locale switch", zap.String("to", locale), zap.Error(err))
		}
	}

	http.Redirect(w, r, target, http.StatusSeeOther)
}

// switchTarget rewrites next into locale. A path without a supported locale
// segment gets locale prepended instead of losing its first segment.
func switchTarget(locales *i18n.Locales, next, locale string) (target, from string) {
	u, err := url.Parse(next)
	if err != nil {
		return "/" + locale, ""
	}
	if current, ok := locales.PathLocale(u.Path); ok {
		from = current
		u.Path = i18n.SwitchPath(u.Path, locale)
	} else {
		u.Path = "/" + locale + u.Path
	}
	u.RawPath = ""
	return u.String(), from
}

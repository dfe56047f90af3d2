package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"localesite/internal/config"
	"localesite/internal/i18n"
)

type ctxKey string

const localeContextKey ctxKey = "locale"

// unlocalizedSegments are first path segments served without a locale prefix.
var unlocalizedSegments = map[string]struct{}{
	"api":         {},
	"static":      {},
	"locales":     {},
	"switch":      {},
	"healthz":     {},
	"favicon.ico": {},
}

func skipLocaleRouting(path string) bool {
	trimmed := strings.TrimPrefix(path, "/")
	first := trimmed
	if idx := strings.IndexByte(trimmed, '/'); idx >= 0 {
		first = trimmed[:idx]
	}
	if _, ok := unlocalizedSegments[first]; ok {
		return true
	}
	last := trimmed
	if idx := strings.LastIndexByte(trimmed, '/'); idx >= 0 {
		last = trimmed[idx+1:]
	}
	return strings.Contains(last, ".")
}

// localeRouting makes sure every page request carries a supported locale
// segment, rewriting or redirecting as decided by Locales.Decide.
func (s *Server) localeRouting(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if skipLocaleRouting(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		d := s.Locales.Decide(r.URL.Path, s.preferences(r))
		if d.Action != i18n.PassThrough {
			s.Logger.Debug("locale routing",
				zap.String("action", d.Action.String()),
				zap.String("path", r.URL.Path),
				zap.String("target", d.Path),
			)
		}

		switch d.Action {
		case i18n.Redirect:
			target := d.Path
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, target, http.StatusTemporaryRedirect)
			return
		case i18n.Rewrite:
			r = r.Clone(r.Context())
			r.URL.Path = d.Path
			r.URL.RawPath = ""
		}

		next.ServeHTTP(w, r)
	})
}

// preferences lists the visitor's languages: a stored switcher choice first,
// then the Accept-Language header.
func (s *Server) preferences(r *http.Request) []string {
	header := r.Header.Get("Accept-Language")

	var prefs []string
	if s.Config.Locales.Negotiation == config.NegotiationWeighted {
		prefs = i18n.ParseWeightedPreferences(header)
	} else {
		prefs = i18n.ParsePreferences(header)
	}

	if c, err := r.Cookie(s.cookieName()); err == nil && s.Locales.IsSupported(c.Value) {
		prefs = append([]string{c.Value}, prefs...)
	}
	return prefs
}

// requireLocale validates the {locale} URL parameter of page routes.
func (s *Server) requireLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		locale := chi.URLParam(r, "locale")
		if !s.Locales.IsSupported(locale) {
			s.handleNotFound(w, r)
			return
		}

		w.Header().Set("Content-Language", locale)
		ctx := context.WithValue(r.Context(), localeContextKey, locale)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// localeFromRequest returns the locale set by requireLocale, falling back to
// the locale segment of the path and finally the visitor's preferences.
func (s *Server) localeFromRequest(r *http.Request) string {
	if val, ok := r.Context().Value(localeContextKey).(string); ok && val != "" {
		return val
	}
	if locale, ok := s.Locales.PathLocale(r.URL.Path); ok {
		return locale
	}
	return s.Locales.Preferred(s.preferences(r))
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("ip", clientIP(r, s.trustedProxies)),
			}
			if status >= http.StatusInternalServerError {
				s.Logger.Error("request", fields...)
				return
			}
			s.Logger.Info("request", fields...)
		}()

		next.ServeHTTP(ww, r)
	})
}

func (s *Server) cookieName() string {
	if s.Config.Locales.CookieName != "" {
		return s.Config.Locales.CookieName
	}
	return "locale"
}

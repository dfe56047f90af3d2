package server

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"localesite/internal/contact"
)

const maxContactFormBytes = 64 << 10

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	data := s.newPage(r, "contact")
	data.Form.Sent = r.URL.Query().Get("sent") == "1"
	data.Form.Disabled = s.Contacts == nil
	s.render(w, data)
}

func (s *Server) handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	data := s.newPage(r, "contact")
	locale := data.Locale

	if s.Contacts == nil {
		data.Form.Disabled = true
		data.Status = http.StatusServiceUnavailable
		s.render(w, data)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxContactFormBytes)
	if err := r.ParseForm(); err != nil {
		data.Form.ErrorKey = "contact.form.too_long"
		data.Status = http.StatusRequestEntityTooLarge
		s.render(w, data)
		return
	}
	data.Form.Name = r.PostForm.Get("name")
	data.Form.Email = r.PostForm.Get("email")
	data.Form.Message = r.PostForm.Get("message")

	ip := clientIP(r, s.trustedProxies)
	if s.RateLimiter != nil {
		allowed, retryIn, err := s.RateLimiter.Allow(r.Context(), ip)
		if err != nil {
			s.Logger.Warn("contact rate limit check failed", zap.String("ip", ip), zap.Error(err))
		} else if !allowed {
			minutes := int(math.Ceil(retryIn.Minutes()))
			if minutes < 1 {
				minutes = 1
			}
			data.Form.ErrorKey = "contact.form.rate_limited"
			data.Form.ErrorArgs = []string{"minutes", strconv.Itoa(minutes)}
			data.Status = http.StatusTooManyRequests
			s.render(w, data)
			return
		}
	}

	msg, err := contact.NewMessage(locale, data.Form.Name, data.Form.Email, data.Form.Message)
	if err != nil {
		var fieldErr *contact.FieldError
		if !errors.As(err, &fieldErr) {
			s.Logger.Error("contact validation", zap.Error(err))
			s.renderError(w, r, http.StatusInternalServerError)
			return
		}
		data.Form.ErrorKey = fieldErr.Key
		data.Status = http.StatusUnprocessableEntity
		s.render(w, data)
		return
	}
	msg.IP = ip
	msg.UserAgent = r.UserAgent()

	if err := s.Contacts.Create(r.Context(), msg); err != nil {
		s.Logger.Error("store contact message", zap.String("locale", locale), zap.Error(err))
		data.Form.ErrorKey = "common.error"
		data.Status = http.StatusInternalServerError
		s.render(w, data)
		return
	}

	if err := s.sendContactNotification(r, msg); err != nil {
		s.Logger.Warn("contact notification failed", zap.String("id", msg.ID.String()), zap.Error(err))
	}

	http.Redirect(w, r, "/"+locale+"/contact?sent=1", http.StatusSeeOther)
}

package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	healthCheckTimeout = 3 * time.Second
	recentSwitchLimit  = 20
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string, len(s.healthChecks))
	healthy := true
	for name, check := range s.healthChecks {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		err := check(ctx)
		cancel()
		if err != nil {
			healthy = false
			checks[name] = err.Error()
			continue
		}
		checks[name] = "ok"
	}

	if !healthy {
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{"status": "degraded", "checks": checks})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ok", "checks": checks})
}

// handleBundle serves a locale's raw bundle for client-side translation.
func (s *Server) handleBundle(w http.ResponseWriter, r *http.Request) {
	locale := chi.URLParam(r, "locale")
	if !s.Locales.IsSupported(locale) {
		writeError(w, http.StatusNotFound, "Unknown locale")
		return
	}

	raw, err := s.Bundles.Raw(locale)
	if err != nil {
		s.Logger.Error("error loading translation", zap.String("locale", locale), zap.Error(err))
		raw = []byte("{}")
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

func (s *Server) handleLocales(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"supported":   s.Locales.Supported(),
		"default":     s.Locales.Default(),
		"negotiation": s.Config.Locales.Negotiation,
	})
}

type switchSummary struct {
	From      string    `json:"from,omitempty"`
	To        string    `json:"to"`
	Timestamp time.Time `json:"timestamp"`
}

// handleLocaleStats reports language switches and contact messages per
// locale, for whichever backends are configured.
func (s *Server) handleLocaleStats(w http.ResponseWriter, r *http.Request) {
	if s.Switches == nil && s.Contacts == nil {
		writeError(w, http.StatusServiceUnavailable, "Locale statistics are not available")
		return
	}

	resp := map[string]interface{}{}
	if s.Switches != nil {
		counts, err := s.Switches.Counts(r.Context())
		if err != nil {
			s.Logger.Error("read switch counts", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to read locale statistics")
			return
		}
		events, err := s.Switches.Recent(r.Context(), recentSwitchLimit)
		if err != nil {
			s.Logger.Error("read recent switches", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to read locale statistics")
			return
		}
		recent := make([]switchSummary, 0, len(events))
		for _, e := range events {
			recent = append(recent, switchSummary{From: e.From, To: e.To, Timestamp: e.Timestamp})
		}
		resp["switches"] = counts
		resp["recentSwitches"] = recent
	}
	if s.Contacts != nil {
		counts, err := s.Contacts.CountByLocale(r.Context())
		if err != nil {
			s.Logger.Error("count contact messages", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to read locale statistics")
			return
		}
		resp["contactMessages"] = counts
	}

	writeJSON(w, http.StatusOK, resp)
}

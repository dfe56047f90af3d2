package server

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"localesite/internal/audit"
	"localesite/internal/config"
	"localesite/internal/contact"
	"localesite/internal/i18n"
)

// ContactStore persists contact form submissions.
type ContactStore interface {
	Create(ctx context.Context, m *contact.Message) error
	CountByLocale(ctx context.Context) (map[string]int64, error)
}

// SubmitLimiter throttles contact submissions per client IP.
type SubmitLimiter interface {
	Allow(ctx context.Context, ip string) (bool, time.Duration, error)
}

// SwitchRecorder keeps track of language switches.
type SwitchRecorder interface {
	Record(ctx context.Context, e audit.SwitchEvent) error
	Counts(ctx context.Context) (map[string]int64, error)
	Recent(ctx context.Context, limit int64) ([]audit.SwitchEvent, error)
}

type Mailer interface {
	Enabled() bool
	Send(ctx context.Context, to, lang string, content i18n.EmailContent) error
}

// Deps are the optional backends. Leave a field nil when the backing service
// is not configured; the features that need it degrade instead of failing.
// HealthChecks are run by /healthz, keyed by component name.
type Deps struct {
	Contacts     ContactStore
	RateLimiter  SubmitLimiter
	Switches     SwitchRecorder
	Mailer       Mailer
	HealthChecks map[string]func(context.Context) error
}

type Server struct {
	Config         config.Config
	Locales        *i18n.Locales
	Bundles        *i18n.Loader
	Logger         *zap.Logger
	Contacts       ContactStore
	RateLimiter    SubmitLimiter
	Switches       SwitchRecorder
	Mailer         Mailer
	healthChecks   map[string]func(context.Context) error
	pages          map[string]*template.Template
	trustedProxies proxySet
}

func NewServer(cfg config.Config, locales *i18n.Locales, bundles *i18n.Loader, logger *zap.Logger, deps Deps) (*Server, error) {
	if locales == nil {
		return nil, errors.New("locales are required")
	}
	if bundles == nil {
		return nil, errors.New("bundle loader is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	pages, err := parsePages()
	if err != nil {
		return nil, err
	}

	return &Server{
		Config:         cfg,
		Locales:        locales,
		Bundles:        bundles,
		Logger:         logger,
		Contacts:       deps.Contacts,
		RateLimiter:    deps.RateLimiter,
		Switches:       deps.Switches,
		Mailer:         deps.Mailer,
		healthChecks:   deps.HealthChecks,
		pages:          pages,
		trustedProxies: parseProxies(cfg.TrustedProxies),
	}, nil
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(secureHeaders)
	r.Use(s.localeRouting)

	r.NotFound(s.handleNotFound)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/static/*", staticHandler())
	r.Get("/locales/{locale}/translation.json", s.handleBundle)
	r.Get("/switch/{locale}", s.handleSwitch)

	r.Route("/api", func(ar chi.Router) {
		ar.Get("/locales", s.handleLocales)
		ar.Get("/stats/locales", s.handleLocaleStats)
	})

	r.Route("/{locale}", func(lr chi.Router) {
		lr.Use(s.requireLocale)
		lr.Get("/", s.handleHome)
		lr.Get("/about", s.handleAbout)
		lr.Get("/contact", s.handleContact)
		lr.Post("/contact", s.handleContactSubmit)
		lr.NotFound(s.handleNotFound)
	})

	return r
}

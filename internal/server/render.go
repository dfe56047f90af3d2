package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"localesite/internal/i18n"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pageNames = []string{"home", "about", "contact", "error"}

type navLink struct {
	Key    string
	Href   string
	Active bool
}

type feature struct {
	Key  string
	Icon string
}

var homeFeatures = []feature{
	{Key: "home.features.ssr", Icon: "🖥️"},
	{Key: "home.features.clientComponents", Icon: "⚛️"},
	{Key: "home.features.autoDetection", Icon: "🌐"},
	{Key: "home.features.staticContent", Icon: "📄"},
}

// contactForm echoes submitted values back into the form. ErrorArgs are
// key/value pairs interpolated into ErrorKey.
type contactForm struct {
	Name      string
	Email     string
	Message   string
	ErrorKey  string
	ErrorArgs []string
	Sent      bool
	Disabled  bool
}

// pageData is handed to every template. The embedded translator supplies
// {{.T "key"}}, {{.Locale}} and {{.Dir}}.
type pageData struct {
	*i18n.Translator
	Page      string
	Path      string
	Languages []i18n.LanguageOption
	Nav       []navLink
	Features  []feature
	BundleURL string
	BaseURL   string
	Form      contactForm
	Status    int
}

// ErrorText renders the form error in the page locale.
func (p *pageData) ErrorText() string {
	if p.Form.ErrorKey == "" {
		return ""
	}
	return p.T(p.Form.ErrorKey, p.Form.ErrorArgs...)
}

func parsePages() (map[string]*template.Template, error) {
	base, err := template.ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templateFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

// translator builds the per-render translation config for locale. Keys the
// locale lacks fall back to the default locale's bundle.
func (s *Server) translator(r *http.Request, locale string) *i18n.Translator {
	msgs := s.Bundles.Load(r.Context(), locale)
	var fallback i18n.Messages
	if def := s.Locales.Default(); def != locale {
		fallback = s.Bundles.Load(r.Context(), def)
	}
	return i18n.NewTranslator(locale, msgs, fallback)
}

func (s *Server) newPage(r *http.Request, name string) *pageData {
	locale := s.localeFromRequest(r)
	t := s.translator(r, locale)

	path := r.URL.Path
	if _, ok := s.Locales.PathLocale(path); !ok {
		path = "/" + locale
	}

	base := "/" + locale
	return &pageData{
		Translator: t,
		Page:       name,
		Path:       path,
		Languages:  i18n.BuildSwitcher(s.Locales, t, path),
		Nav: []navLink{
			{Key: "navigation.home", Href: base, Active: name == "home"},
			{Key: "navigation.about", Href: base + "/about", Active: name == "about"},
			{Key: "navigation.contact", Href: base + "/contact", Active: name == "contact"},
		},
		BundleURL: "/locales/" + locale + "/" + i18n.BundleFile,
		BaseURL:   strings.TrimRight(s.Config.BaseURL, "/"),
		Status:    http.StatusOK,
	}
}

func (s *Server) render(w http.ResponseWriter, data *pageData) {
	tmpl, ok := s.pages[data.Page]
	if !ok {
		s.Logger.Error("unknown page template", zap.String("page", data.Page))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		s.Logger.Error("render page", zap.String("page", data.Page), zap.String("locale", data.Locale), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(data.Status)
	_, _ = buf.WriteTo(w)
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

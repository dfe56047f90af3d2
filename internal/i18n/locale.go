package i18n

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

// maxAcceptLanguageLength bounds the amount of header text we look at.
const maxAcceptLanguageLength = 4096

// Locales is the fixed set of locale codes served by the site.
// It is built once at startup and only read afterwards.
type Locales struct {
	codes []string
	set   map[string]struct{}
	def   string
}

func NewLocales(codes []string, def string) (*Locales, error) {
	l := &Locales{set: make(map[string]struct{}, len(codes))}
	for _, raw := range codes {
		code := strings.ToLower(strings.TrimSpace(raw))
		if code == "" {
			continue
		}
		if _, err := language.Parse(code); err != nil {
			return nil, fmt.Errorf("invalid locale %q: %w", raw, err)
		}
		if _, dup := l.set[code]; dup {
			continue
		}
		l.set[code] = struct{}{}
		l.codes = append(l.codes, code)
	}
	if len(l.codes) == 0 {
		return nil, errors.New("at least one supported locale is required")
	}

	def = strings.ToLower(strings.TrimSpace(def))
	if _, ok := l.set[def]; !ok {
		return nil, fmt.Errorf("default locale %q is not in supported locales %v", def, l.codes)
	}
	l.def = def
	return l, nil
}

// Supported returns the supported codes in configuration order.
func (l *Locales) Supported() []string {
	out := make([]string, len(l.codes))
	copy(out, l.codes)
	return out
}

func (l *Locales) Default() string {
	return l.def
}

// IsSupported reports whether code is exactly one of the supported codes.
func (l *Locales) IsSupported(code string) bool {
	_, ok := l.set[code]
	return ok
}

// Preferred returns the first preference that is supported, or the default locale.
func (l *Locales) Preferred(prefs []string) string {
	for _, p := range prefs {
		if l.IsSupported(p) {
			return p
		}
	}
	return l.def
}

// LocaleFromRequest picks a locale for r from its Accept-Language header alone.
func (l *Locales) LocaleFromRequest(r *http.Request) string {
	if r == nil {
		return l.def
	}
	return l.Preferred(ParsePreferences(r.Header.Get("Accept-Language")))
}

// ParsePreferences extracts primary language subtags from an Accept-Language
// header in the order they appear. Quality values are ignored.
func ParsePreferences(header string) []string {
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}
	if strings.TrimSpace(header) == "" {
		return []string{}
	}

	parts := strings.Split(header, ",")
	prefs := make([]string, 0, len(parts))
	for _, part := range parts {
		lang := part
		if idx := strings.Index(lang, ";"); idx >= 0 {
			lang = lang[:idx]
		}
		lang = strings.ToLower(strings.TrimSpace(lang))
		if idx := strings.Index(lang, "-"); idx >= 0 {
			lang = lang[:idx]
		}
		if !isPrimarySubtag(lang) {
			continue
		}
		prefs = append(prefs, lang)
	}
	return prefs
}

// ParseWeightedPreferences orders primary subtags by their q-value, highest
// first. Ties keep header order. Headers x/text cannot parse fall back to
// ParsePreferences so one bad entry does not discard the rest.
func ParseWeightedPreferences(header string) []string {
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return ParsePreferences(header)
	}

	prefs := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if tag == language.Und {
			continue
		}
		base, conf := tag.Base()
		if conf == language.No {
			continue
		}
		code := base.String()
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		prefs = append(prefs, code)
	}
	return prefs
}

func isPrimarySubtag(s string) bool {
	if len(s) == 0 || len(s) > 8 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

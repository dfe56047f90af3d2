package i18n

import (
	"net/url"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// LanguageOption is one entry of the language switcher. URL goes through the
// switch endpoint; Href links straight to the translated page.
type LanguageOption struct {
	Code   string
	Label  string
	URL    string
	Href   string
	Active bool
}

// SwitchURL is the endpoint that records a language choice and then sends
// the visitor to next in that language.
func SwitchURL(locale, next string) string {
	return "/switch/" + locale + "?" + url.Values{"next": {next}}.Encode()
}

// BuildSwitcher lists every supported locale for the page at currentPath.
func BuildSwitcher(locales *Locales, t *Translator, currentPath string) []LanguageOption {
	codes := locales.Supported()
	options := make([]LanguageOption, 0, len(codes))
	for _, code := range codes {
		options = append(options, LanguageOption{
			Code:   code,
			Label:  LanguageLabel(t, code),
			URL:    SwitchURL(code, currentPath),
			Href:   SwitchPath(currentPath, code),
			Active: code == t.Locale,
		})
	}
	return options
}

// LanguageLabel names a locale for the switcher. The bundle key is derived
// from the English language name ("common.arabic"); without a translation
// the language's own name is used, then the bare code.
func LanguageLabel(t *Translator, code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Languages().Name(tag); name != "" {
		key := "common." + strings.ToLower(strings.ReplaceAll(name, " ", "_"))
		if t != nil && t.Has(key) {
			return t.T(key)
		}
	}
	if self := display.Self.Name(tag); self != "" {
		return self
	}
	return code
}

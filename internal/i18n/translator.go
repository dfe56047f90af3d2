package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Translator holds the resolved strings for one locale. A new one is built
// for every render and passed down explicitly.
type Translator struct {
	Locale   string
	Dir      string
	messages Messages
	fallback Messages
}

// NewTranslator builds a translator for locale. fallback is consulted for keys
// the locale does not define and may be nil.
func NewTranslator(locale string, msgs, fallback Messages) *Translator {
	if msgs == nil {
		msgs = Messages{}
	}
	return &Translator{
		Locale:   locale,
		Dir:      Direction(locale),
		messages: msgs,
		fallback: fallback,
	}
}

// T looks up key and interpolates {{name}} placeholders from key/value pairs.
// Unknown keys render as the key itself.
func (t *Translator) T(key string, pairs ...string) string {
	msg, ok := t.messages[key]
	if !ok {
		msg, ok = t.fallback[key]
	}
	if !ok {
		return key
	}
	if len(pairs) < 2 {
		return msg
	}

	replacements := make([]string, 0, len(pairs))
	for i := 0; i+1 < len(pairs); i += 2 {
		replacements = append(replacements, "{{"+pairs[i]+"}}", pairs[i+1])
	}
	return strings.NewReplacer(replacements...).Replace(msg)
}

// Has reports whether key resolves to a translation.
func (t *Translator) Has(key string) bool {
	if _, ok := t.messages[key]; ok {
		return true
	}
	_, ok := t.fallback[key]
	return ok
}

var rtlScripts = map[string]struct{}{
	"Arab": {},
	"Hebr": {},
	"Syrc": {},
	"Thaa": {},
	"Nkoo": {},
	"Adlm": {},
	"Rohg": {},
	"Mand": {},
	"Samr": {},
}

// Direction returns "rtl" for locales written in a right-to-left script and
// "ltr" otherwise.
func Direction(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return "ltr"
	}
	script, conf := tag.Script()
	if conf == language.No {
		return "ltr"
	}
	if _, ok := rtlScripts[script.String()]; ok {
		return "rtl"
	}
	return "ltr"
}

package i18n

import (
	"errors"
	"strings"

	"golang.org/x/text/language"
)

// Action is what the locale middleware does with a request.
type Action int

const (
	PassThrough Action = iota
	Rewrite
	Redirect
)

func (a Action) String() string {
	switch a {
	case PassThrough:
		return "pass-through"
	case Rewrite:
		return "rewrite"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision is the outcome of routing one request path. Path is set for
// Rewrite and Redirect and always starts with a supported locale segment.
type Decision struct {
	Action Action
	Path   string
}

// PathLocale returns the first segment of path when it is exactly a
// supported locale code.
func (l *Locales) PathLocale(path string) (string, bool) {
	seg, _ := splitFirstSegment(path)
	if l.IsSupported(seg) {
		return seg, true
	}
	return "", false
}

// Decide routes path given the visitor's ordered language preferences.
//
// A supported first segment passes through. A first segment that looks like a
// locale tag but is not supported is redirected to the default locale with
// the rest of the path kept. Anything else gets the preferred locale prepended.
func (l *Locales) Decide(path string, prefs []string) Decision {
	path = normalizePath(path)
	if _, ok := l.PathLocale(path); ok {
		return Decision{Action: PassThrough}
	}

	seg, rest := splitFirstSegment(path)
	if seg != "" && looksLikeLocale(seg) {
		return Decision{Action: Redirect, Path: "/" + l.def + rest}
	}

	return Decision{Action: Rewrite, Path: "/" + l.Preferred(prefs) + path}
}

// SwitchPath returns path with its locale segment replaced by locale.
func SwitchPath(path, locale string) string {
	segments := strings.Split(normalizePath(path), "/")
	segments[1] = locale
	return strings.Join(segments, "/")
}

func normalizePath(path string) string {
	if !strings.HasPrefix(path, "/") {
		return "/" + path
	}
	return path
}

// splitFirstSegment splits "/xx/rest" into "xx" and "/rest".
func splitFirstSegment(path string) (string, string) {
	trimmed := strings.TrimPrefix(path, "/")
	if idx := strings.IndexByte(trimmed, '/'); idx >= 0 {
		return trimmed[:idx], trimmed[idx:]
	}
	return trimmed, ""
}

// looksLikeLocale reports whether seg has the shape of a language tag with a
// two or three letter primary subtag ("xx", "EN", "pt-BR", "zh_Hant").
// Ordinary page names like "about" or "dashboard" do not qualify.
func looksLikeLocale(seg string) bool {
	seg = strings.ReplaceAll(seg, "_", "-")
	primary := seg
	if idx := strings.IndexByte(seg, '-'); idx >= 0 {
		primary = seg[:idx]
	}
	if len(primary) < 2 || len(primary) > 3 {
		return false
	}
	for i := 0; i < len(primary); i++ {
		c := primary[i] | 0x20
		if c < 'a' || c > 'z' {
			return false
		}
	}
	if primary == seg {
		return true
	}

	// Unknown but well-formed subtags come back as a ValueError.
	_, err := language.Parse(seg)
	if err == nil {
		return true
	}
	var verr language.ValueError
	return errors.As(err, &verr)
}

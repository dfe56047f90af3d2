package server

import (
	"errors"
	"net/http"
	"testing"

	"localesite/internal/i18n"
)

func TestSwitchLocale(t *testing.T) {
	t.Parallel()

	switches := &fakeSwitches{}
	h := newTestServer(t, testConfig(), Deps{Switches: switches}).Router()

	rec := get(t, h, "/switch/ar?next=%2Fen%2Fabout%3Ftab%3D2", "User-Agent", "test-agent")
	assertStatus(t, rec, http.StatusSeeOther)
	if got := rec.Header().Get("Location"); got != "/ar/about?tab=2" {
		t.Fatalf("Location = %q, want %q", got, "/ar/about?tab=2")
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %v, want one", cookies)
	}
	c := cookies[0]
	if c.Name != "locale" || c.Value != "ar" || c.Path != "/" || !c.HttpOnly || c.SameSite != http.SameSiteLaxMode || c.MaxAge <= 0 {
		t.Fatalf("cookie = %+v", c)
	}

	if len(switches.events) != 1 {
		t.Fatalf("recorded %d events, want 1", len(switches.events))
	}
	e := switches.events[0]
	if e.From != "en" || e.To != "ar" || e.Path != "/ar/about?tab=2" || e.UserAgent != "test-agent" {
		t.Fatalf("event = %+v", e)
	}
}

func TestSwitchLocaleNextTargets(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, testConfig(), Deps{}).Router()

	tests := []struct {
		target string
		want   string
	}{
		{target: "/switch/fr", want: "/fr"},
		{target: "/switch/fr?next=https%3A%2F%2Fevil.example%2F", want: "/fr"},
		{target: "/switch/fr?next=%2F%2Fevil.example", want: "/fr"},
		{target: "/switch/fr?next=%2Fabout", want: "/fr/about"},
		{target: "/switch/en?next=%2Far", want: "/en"},
	}
	for _, tt := range tests {
		rec := get(t, h, tt.target)
		assertStatus(t, rec, http.StatusSeeOther)
		if got := rec.Header().Get("Location"); got != tt.want {
			t.Fatalf("GET %s Location = %q, want %q", tt.target, got, tt.want)
		}
	}
}

func TestSwitchLocaleUnsupported(t *testing.T) {
	t.Parallel()

	switches := &fakeSwitches{}
	h := newTestServer(t, testConfig(), Deps{Switches: switches}).Router()

	rec := get(t, h, "/switch/de?next=%2Fen")
	assertStatus(t, rec, http.StatusNotFound)
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("cookie set for unsupported locale")
	}
	if len(switches.events) != 0 {
		t.Fatal("switch recorded for unsupported locale")
	}
}

func TestSwitchLocaleRecorderFailure(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, testConfig(), Deps{Switches: &fakeSwitches{err: errors.New("redis down")}}).Router()
	rec := get(t, h, "/switch/fr?next=%2Fen")
	assertStatus(t, rec, http.StatusSeeOther)
	if got := rec.Header().Get("Location"); got != "/fr" {
		t.Fatalf("Location = %q, want /fr", got)
	}
}

func TestSwitchTarget(t *testing.T) {
	t.Parallel()

	locales, err := i18n.NewLocales([]string{"en", "ar"}, "en")
	if err != nil {
		t.Fatal(err)
	}
	target, from := switchTarget(locales, "/en/contact?sent=1", "ar")
	if target != "/ar/contact?sent=1" || from != "en" {
		t.Fatalf("switchTarget = %q, %q", target, from)
	}
	target, from = switchTarget(locales, "/", "ar")
	if target != "/ar/" || from != "" {
		t.Fatalf("switchTarget(/) = %q, %q", target, from)
	}
}

func TestLocalPath(t *testing.T) {
	t.Parallel()

	for raw, want := range map[string]string{
		"/en/about?x=1":        "/en/about?x=1",
		" /fr ":                "/fr",
		"":                     "",
		"en/about":             "",
		"//evil.example":       "",
		"/\\evil.example":      "",
		"https://evil.example": "",
	} {
		if got := localPath(raw); got != want {
			t.Fatalf("localPath(%q) = %q, want %q", raw, got, want)
		}
	}
}

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"localesite/internal/audit"
	"localesite/internal/config"
)

func decodeJSON(t *testing.T, body []byte, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
}

func TestLocalesEndpoint(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Locales.Negotiation = config.NegotiationWeighted
	rec := get(t, newTestServer(t, cfg, Deps{}).Router(), "/api/locales")
	assertStatus(t, rec, http.StatusOK)

	var got struct {
		Supported   []string `json:"supported"`
		Default     string   `json:"default"`
		Negotiation string   `json:"negotiation"`
	}
	decodeJSON(t, rec.Body.Bytes(), &got)
	if !reflect.DeepEqual(got.Supported, []string{"en", "ar", "fr"}) || got.Default != "en" || got.Negotiation != "weighted" {
		t.Fatalf("locales = %+v", got)
	}
}

func TestBundleEndpoint(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, testConfig(), Deps{}).Router()

	rec := get(t, h, "/locales/ar/translation.json")
	assertStatus(t, rec, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("Content-Type = %q", ct)
	}
	var bundle map[string]interface{}
	decodeJSON(t, rec.Body.Bytes(), &bundle)
	if _, ok := bundle["navigation"]; !ok {
		t.Fatalf("bundle has no navigation section: %s", rec.Body.String())
	}

	rec = get(t, h, "/locales/de/translation.json")
	assertStatus(t, rec, http.StatusNotFound)
}

func TestLocaleStatsUnavailable(t *testing.T) {
	t.Parallel()

	rec := get(t, newTestServer(t, testConfig(), Deps{}).Router(), "/api/stats/locales")
	assertStatus(t, rec, http.StatusServiceUnavailable)
}

func TestLocaleStats(t *testing.T) {
	t.Parallel()

	switches := &fakeSwitches{}
	contacts := &fakeContacts{counts: map[string]int64{"fr": 3}}
	h := newTestServer(t, testConfig(), Deps{Switches: switches, Contacts: contacts}).Router()

	get(t, h, "/switch/ar?next=%2Fen")
	get(t, h, "/switch/fr?next=%2Far%2Fabout")

	rec := get(t, h, "/api/stats/locales")
	assertStatus(t, rec, http.StatusOK)

	var got struct {
		Switches        map[string]int64 `json:"switches"`
		RecentSwitches  []switchSummary  `json:"recentSwitches"`
		ContactMessages map[string]int64 `json:"contactMessages"`
	}
	decodeJSON(t, rec.Body.Bytes(), &got)

	if got.Switches["ar"] != 1 || got.Switches["fr"] != 1 {
		t.Fatalf("switches = %v", got.Switches)
	}
	if len(got.RecentSwitches) != 2 || got.RecentSwitches[0].To != "fr" || got.RecentSwitches[0].From != "ar" {
		t.Fatalf("recentSwitches = %+v", got.RecentSwitches)
	}
	if got.ContactMessages["fr"] != 3 {
		t.Fatalf("contactMessages = %v", got.ContactMessages)
	}
}

func TestLocaleStatsHidesVisitorDetails(t *testing.T) {
	t.Parallel()

	switches := &fakeSwitches{events: []audit.SwitchEvent{{From: "en", To: "ar", IP: "203.0.113.9", UserAgent: "secret-agent"}}}
	rec := get(t, newTestServer(t, testConfig(), Deps{Switches: switches}).Router(), "/api/stats/locales")
	assertStatus(t, rec, http.StatusOK)

	var raw map[string]interface{}
	decodeJSON(t, rec.Body.Bytes(), &raw)
	if _, ok := raw["contactMessages"]; ok {
		t.Fatal("contactMessages reported without a store")
	}
	body := rec.Body.String()
	for _, secret := range []string{"203.0.113.9", "secret-agent"} {
		if strings.Contains(body, secret) {
			t.Fatalf("stats leak %q: %s", secret, body)
		}
	}
}

func TestLocaleStatsStoreError(t *testing.T) {
	t.Parallel()

	rec := get(t, newTestServer(t, testConfig(), Deps{Contacts: &fakeContacts{err: errors.New("db down")}}).Router(), "/api/stats/locales")
	assertStatus(t, rec, http.StatusInternalServerError)
	assertBody(t, rec, `"message"`)
}

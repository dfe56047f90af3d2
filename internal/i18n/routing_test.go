package i18n

import "testing"

func TestDecide(t *testing.T) {
	t.Parallel()

	l := testLocales(t)
	tests := []struct {
		name  string
		path  string
		prefs []string
		want  Decision
	}{
		{name: "supported locale", path: "/fr/about", want: Decision{Action: PassThrough}},
		{name: "bare supported locale", path: "/ar", want: Decision{Action: PassThrough}},
		{name: "root", path: "/", prefs: []string{"fr"}, want: Decision{Action: Rewrite, Path: "/fr/"}},
		{name: "root without preferences", path: "/", want: Decision{Action: Rewrite, Path: "/en/"}},
		{name: "page without locale", path: "/dashboard", prefs: []string{"de", "ar"}, want: Decision{Action: Rewrite, Path: "/ar/dashboard"}},
		{name: "nested page without locale", path: "/about/team", prefs: []string{"fr"}, want: Decision{Action: Rewrite, Path: "/fr/about/team"}},
		{name: "unsupported locale", path: "/xx/dashboard", prefs: []string{"fr"}, want: Decision{Action: Redirect, Path: "/en/dashboard"}},
		{name: "unsupported locale alone", path: "/de", want: Decision{Action: Redirect, Path: "/en"}},
		{name: "region tag", path: "/pt-BR/about", want: Decision{Action: Redirect, Path: "/en/about"}},
		{name: "underscore tag", path: "/zh_Hant/about", want: Decision{Action: Redirect, Path: "/en/about"}},
		{name: "wrong case", path: "/EN/about", want: Decision{Action: Redirect, Path: "/en/about"}},
		{name: "relative path", path: "about", prefs: []string{"ar"}, want: Decision{Action: Rewrite, Path: "/ar/about"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := l.Decide(tt.path, tt.prefs)
			if got != tt.want {
				t.Fatalf("Decide(%q, %v) = %+v, want %+v", tt.path, tt.prefs, got, tt.want)
			}
		})
	}
}

func TestDecideTargetsAreStable(t *testing.T) {
	t.Parallel()

	l := testLocales(t)
	paths := []string{"/", "/dashboard", "/xx/dashboard", "/de", "/pt-BR/a/b", "/about"}
	for _, p := range paths {
		first := l.Decide(p, []string{"fr"})
		if first.Action == PassThrough {
			t.Fatalf("Decide(%q) = pass-through, want rewrite or redirect", p)
		}
		if _, ok := l.PathLocale(first.Path); !ok {
			t.Fatalf("Decide(%q).Path = %q, want supported locale segment", p, first.Path)
		}
		if second := l.Decide(first.Path, []string{"fr"}); second.Action != PassThrough {
			t.Fatalf("Decide(%q) = %+v, want pass-through", first.Path, second)
		}
	}
}

func TestPathLocale(t *testing.T) {
	t.Parallel()

	l := testLocales(t)
	tests := []struct {
		path   string
		want   string
		wantOK bool
	}{
		{path: "/fr/about", want: "fr", wantOK: true},
		{path: "/ar", want: "ar", wantOK: true},
		{path: "/", wantOK: false},
		{path: "/de/about", wantOK: false},
		{path: "/french", wantOK: false},
	}
	for _, tt := range tests {
		got, ok := l.PathLocale(tt.path)
		if got != tt.want || ok != tt.wantOK {
			t.Fatalf("PathLocale(%q) = %q, %v, want %q, %v", tt.path, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSwitchPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path   string
		locale string
		want   string
	}{
		{path: "/en/about", locale: "ar", want: "/ar/about"},
		{path: "/en", locale: "fr", want: "/fr"},
		{path: "/fr/a/b/", locale: "en", want: "/en/a/b/"},
		{path: "/", locale: "ar", want: "/ar"},
	}
	for _, tt := range tests {
		if got := SwitchPath(tt.path, tt.locale); got != tt.want {
			t.Fatalf("SwitchPath(%q, %q) = %q, want %q", tt.path, tt.locale, got, tt.want)
		}
	}
}

func TestLooksLikeLocale(t *testing.T) {
	t.Parallel()

	yes := []string{"xx", "de", "EN", "pt-BR", "zh_Hant", "yue", "sr-Latn-RS"}
	no := []string{"", "a", "about", "dashboard", "12", "e1", "en-!!"}
	for _, s := range yes {
		if !looksLikeLocale(s) {
			t.Fatalf("looksLikeLocale(%q) = false, want true", s)
		}
	}
	for _, s := range no {
		if looksLikeLocale(s) {
			t.Fatalf("looksLikeLocale(%q) = true, want false", s)
		}
	}
}

func TestActionString(t *testing.T) {
	t.Parallel()

	if got := Redirect.String(); got != "redirect" {
		t.Fatalf("Redirect.String() = %q, want %q", got, "redirect")
	}
	if got := Action(42).String(); got != "unknown" {
		t.Fatalf("Action(42).String() = %q, want %q", got, "unknown")
	}
}

func TestDecideFromHeader(t *testing.T) {
	t.Parallel()

	l := testLocales(t)
	prefs := ParsePreferences("ar;q=0.9,en;q=0.5")

	if got, want := l.Decide("/dashboard", prefs), (Decision{Action: Rewrite, Path: "/ar/dashboard"}); got != want {
		t.Fatalf("Decide(/dashboard) = %+v, want %+v", got, want)
	}
	if got, want := l.Decide("/xx/dashboard", prefs), (Decision{Action: Redirect, Path: "/en/dashboard"}); got != want {
		t.Fatalf("Decide(/xx/dashboard) = %+v, want %+v", got, want)
	}
	if got := l.Decide("/fr/dashboard", prefs); got.Action != PassThrough {
		t.Fatalf("Decide(/fr/dashboard) = %+v, want pass-through", got)
	}
}

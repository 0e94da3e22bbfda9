package sharelink

import "testing"

func TestVariants(t *testing.T) {
	got := Variants("https://x.com/user/status/123/en", DefaultLanguages)
	want := []string{
		"https://x.com/user/status/123/ua",
		"https://x.com/user/status/123/sk",
		"https://x.com/user/status/123/en",
	}
	if len(got) != len(want) {
		t.Fatalf("len: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].URL != want[i] {
			t.Fatalf("variant %d: got %q, want %q", i, got[i].URL, want[i])
		}
		if got[i].Code != DefaultLanguages[i].Code || got[i].Label != DefaultLanguages[i].Label {
			t.Fatalf("variant %d: got %+v", i, got[i].Language)
		}
	}

	if v := Variants("", DefaultLanguages); v != nil {
		t.Fatalf("empty url: got %v", v)
	}
	if v := Variants("https://x.com/user/status/123", []Language{{Code: ""}, {Code: "de"}}); len(v) != 1 || v[0].URL != "https://x.com/user/status/123/de" {
		t.Fatalf("skip empty code: got %+v", v)
	}
}

func TestParseLanguages(t *testing.T) {
	got := ParseLanguages(" UA, sk,,ua , de ")
	want := []Language{
		{Code: "ua", Label: "🇺🇦 UA"},
		{Code: "sk", Label: "🇸🇰 SK"},
		{Code: "de", Label: "DE"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("lang %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
	if got := ParseLanguages(""); len(got) != 0 {
		t.Fatalf("empty: got %+v", got)
	}
}

func TestValidateURL(t *testing.T) {
	for _, ok := range []string{"https://x.com/user/status/123", "http://twitter.com/u/status/1"} {
		if err := ValidateURL(ok); err != nil {
			t.Fatalf("ValidateURL(%q): %v", ok, err)
		}
	}
	for _, bad := range []string{"", "x.com/user/status/1", "ftp://x.com/a", "https://", "://bad"} {
		if err := ValidateURL(bad); err != ErrInvalidURL {
			t.Fatalf("ValidateURL(%q): got %v, want ErrInvalidURL", bad, err)
		}
	}
}

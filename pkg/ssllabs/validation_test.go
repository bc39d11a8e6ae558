package ssllabs

import "testing"

func TestUrlValidatorIsValid(t *testing.T) {
	var v UrlValidator
	cases := map[string]bool{
		"example.com":                  true,
		"www.example.co.uk":            true,
		"Example.COM":                  true,
		"bücher.example":               true,
		"xn--bcher-kva.example":        true,
		"example.com.":                 true,
		"https://example.com":          true,
		"https://example.com:8443/x":   true,
		"http://[2001:db8::1]/":        true,
		"192.0.2.10":                   true,
		"2001:db8::1":                  true,
		"":                             false,
		" example.com":                 false,
		"exa mple.com":                 false,
		"example":                      false,
		"under_score.example.com":      false,
		"-dash.example.com":            false,
		"dash-.example.com":            false,
		"a..example.com":               false,
		"ftp://example.com":            false,
		"https://user:pw@example.com":  false,
		"https://":                     false,
		"256.1.1.1":                    false,
		"[2001:db8::1]":                true,
		"[1.2.3.4]":                    false,
		"[::1":                         false,
		"::1]":                         false,
		"[]":                           false,
		"ex[ample.com":                 false,
		"https://[1.2.3.4]/":           false,
		"https://example.com:443":      true,
		"https://example.com:99999999": false,
		"https://example.com:0":        false,
	}
	for host, want := range cases {
		if got := v.IsValid(host); got != want {
			t.Errorf("IsValid(%q) = %v, want %v", host, got, want)
		}
	}
}

func TestUrlValidatorRejectsLongLabels(t *testing.T) {
	var v UrlValidator
	label := make([]byte, 64)
	for i := range label {
		label[i] = 'a'
	}
	if v.IsValid(string(label) + ".com") {
		t.Fatalf("expected 64 octet label to be rejected")
	}
	if !v.IsValid(string(label[:63]) + ".com") {
		t.Fatalf("expected 63 octet label to be accepted")
	}
}

func TestUrlValidatorFormat(t *testing.T) {
	var v UrlValidator
	cases := map[string]string{
		"https://api.example.com":        "https://api.example.com/",
		"https://api.example.com/":       "https://api.example.com/",
		"https://api.example.com/api//":  "https://api.example.com/api/",
		" api.ssllabs.com/api/v2 ":       "https://api.ssllabs.com/api/v2/",
		"http://localhost:8080/ssllabs/": "http://localhost:8080/ssllabs/",
		"":                               "",
	}
	for in, want := range cases {
		if got := v.Format(in); got != want {
			t.Errorf("Format(%q) = %q, want %q", in, got, want)
		}
	}
}

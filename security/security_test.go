package security

import (
	"net/http"
	"testing"
)

func TestValidateContentType(t *testing.T) {
	valid := []string{
		"application/json",
		"application/json; charset=utf-8",
		"multipart/form-data; boundary=xyz",
		"application/x-www-form-urlencoded",
	}
	invalid := []string{"", "text/plain", "application/xml", "json"}
	for _, ct := range valid {
		if !ValidateContentType(ct) {
			t.Errorf("expected %q to be accepted", ct)
		}
	}
	for _, ct := range invalid {
		if ValidateContentType(ct) {
			t.Errorf("expected %q to be rejected", ct)
		}
	}
}

func TestSanitizeHeaders(t *testing.T) {
	h := http.Header{}
	h.Set("Authorization", "Bearer x")
	h.Set("Cookie", "a=b")
	h.Set("User-Agent", "test")

	out := SanitizeHeaders(h)
	if out.Get("Authorization") != "" || out.Get("Cookie") != "" {
		t.Fatalf("credentials left in %v", out)
	}
	if out.Get("User-Agent") != "test" {
		t.Fatalf("non-sensitive header dropped")
	}
	if h.Get("Authorization") == "" {
		t.Fatalf("input headers must not be modified")
	}
}

func TestRandomToken(t *testing.T) {
	a, err := RandomToken(32)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := RandomToken(32)
	if a == b || len(a) != 44 {
		t.Fatalf("unexpected tokens %q %q", a, b)
	}
}

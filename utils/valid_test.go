package utils

import "testing"

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "first.last@example.com", "x+tag@sub.domain.lk"}
	invalid := []string{"", "plain", "a@b", "a b@c.com", "@example.com", "a@.com x"}
	for _, e := range valid {
		if !IsValidEmail(e) {
			t.Errorf("expected %q to be valid", e)
		}
	}
	for _, e := range invalid {
		if IsValidEmail(e) {
			t.Errorf("expected %q to be invalid", e)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Ana@Example.COM "); got != "ana@example.com" {
		t.Fatalf("got %q", got)
	}
}

func TestSanitizeInput(t *testing.T) {
	got := SanitizeInput("  hello\x00 world\nbye\x07 ")
	if got != "hello world\nbye" {
		t.Fatalf("got %q", got)
	}
}

func TestAllPresent(t *testing.T) {
	if !AllPresent("a", "b") {
		t.Fatalf("expected present")
	}
	if AllPresent("a", "  ") {
		t.Fatalf("blank value must count as missing")
	}
}

func TestParseObjectID(t *testing.T) {
	if _, ok := ParseObjectID("64b7f0c2a1e4d3f2b1a09876"); !ok {
		t.Fatalf("expected valid id")
	}
	for _, bad := range []string{"", "123", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		if _, ok := ParseObjectID(bad); ok {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"25.5", 25.5, false},
		{" 0 ", 0, false},
		{"100", 100, false},
		{"", 0, true},
		{"abc", 0, true},
		{"-1", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
		{"-Inf", 0, true},
		{"1e400", 0, true},
	}
	for _, tt := range tests {
		got, err := ParsePrice(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParsePrice(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParsePrice(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatal(err)
	}
	if hash == "secret123" {
		t.Fatalf("hash equals plaintext")
	}
	if !CheckPassword(hash, "secret123") || CheckPassword(hash, "secret124") {
		t.Fatalf("CheckPassword disagrees with HashPassword")
	}
	if IsValidPassword("12345") || !IsValidPassword("123456") {
		t.Fatalf("minimum length is %d", MinPasswordLength)
	}
}

package validate

import "testing"

func TestQ(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"lamp", "lamp", true},
		{"  teak table ", "teak table", true},
		{"o'brien-style_2", "o'brien-style_2", true},
		{"", "", false},
		{"   ", "", false},
		{"<script>", "<script>", false},
		{"a; DROP TABLE products", "a; DROP TABLE products", false},
	}
	for _, c := range cases {
		got, ok := Q(c.in)
		if ok != c.ok || (ok && got != c.want) {
			t.Errorf("Q(%q) = %q, %v", c.in, got, ok)
		}
	}
}

func TestSlug(t *testing.T) {
	good := []string{"lamp", "brass-floor-lamp", "a1-b2"}
	for _, s := range good {
		if _, ok := Slug(s); !ok {
			t.Errorf("Slug(%q) rejected", s)
		}
	}
	bad := []string{"", "Brass-Lamp", "-lamp", "lamp-", "a--b", "a b", "a/../b"}
	for _, s := range bad {
		if _, ok := Slug(s); ok {
			t.Errorf("Slug(%q) accepted", s)
		}
	}
}

func TestPhone(t *testing.T) {
	if _, ok := Phone("+62 812-3456-789"); !ok {
		t.Error("valid phone rejected")
	}
	for _, s := range []string{"", "call me", "+", "12345"} {
		if _, ok := Phone(s); ok {
			t.Errorf("Phone(%q) accepted", s)
		}
	}
}

package score

import "testing"

// TestNormalizeToken verifies the canonical forms from the scoring contract.
func TestNormalizeToken(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1,000.50", "1000.5"},
		{"1,000.00", "1000"},
		{"75%", "75"},
		{"$500", "500"},
		{`"New York"`, "new york"},
		{"  extra  spaces  ", "extra spaces"},
		{"St. Louis", "st. louis"},
		{"3.50", "3.5"},
		{"0.5", "0.5"},
		{".5", "0.5"},
		{"-0.00", "0"},
		{"1e3", "1000"},
		{"answer.", "answer"},
		{",\n0a9", "0a9"},
		{"a , b", "a b"},
		{"a.%", "a"},
		{"5%.", "5"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeToken(tc.in); got != tc.want {
			t.Fatalf("NormalizeToken(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// TestNormalizeTokenIdempotent verifies normalize(normalize(x)) == normalize(x).
func TestNormalizeTokenIdempotent(t *testing.T) {
	inputs := []string{
		"1,000.50", "75%", "$500", `"New York"`, "  extra  spaces  ",
		"abc%", "$$5", `""quoted""`, "1.5e-2", "-42", "0.015", "plain text",
		"3,2", "don't know.", "100%", "$1,234.00",
		",\n0a9", "a , b", "a.%", "5%.", "5'", "$'5'", ", .",
	}
	for _, in := range inputs {
		once := NormalizeToken(in)
		twice := NormalizeToken(once)
		if once != twice {
			t.Fatalf("NormalizeToken not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

// TestNormalizeTokenNonNumericFallback verifies unparseable values keep the
// stripped string form.
func TestNormalizeTokenNonNumericFallback(t *testing.T) {
	if got := NormalizeToken("12 points"); got != "12 points" {
		t.Fatalf("expected %q, got %q", "12 points", got)
	}
	if got := NormalizeToken("N/A%"); got != "n/a" {
		t.Fatalf("expected %q, got %q", "n/a", got)
	}
}

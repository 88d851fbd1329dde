package blocks

import "testing"

// TestSlugify exercises anchor slug derivation across typical block names,
// punctuation, whitespace runs, and edge cases.
func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple two words",
			input: "Hello World",
			want:  "hello-world",
		},
		{
			name:  "punctuation stripped",
			input: "Why It Works!",
			want:  "why-it-works",
		},
		{
			name:  "internal whitespace collapsed",
			input: "  Multi   Space  ",
			want:  "multi-space",
		},
		{
			name:  "tabs and newlines collapsed",
			input: "hello\t\nworld",
			want:  "hello-world",
		},
		{
			name:  "hyphen runs collapsed",
			input: "well---known -- fact",
			want:  "well-known-fact",
		},
		{
			name:  "no leading or trailing hyphen",
			input: "---Pricing Plans---",
			want:  "pricing-plans",
		},
		{
			name:  "numbers kept",
			input: "Top 10 Reasons",
			want:  "top-10-reasons",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only special characters",
			input: "!@#$%",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slugify(tt.input)
			if got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestSlugify_Idempotent verifies a derived anchor slugs to itself.
func TestSlugify_Idempotent(t *testing.T) {
	for _, s := range []string{"why-it-works", "pricing", "top-10"} {
		if got := Slugify(s); got != s {
			t.Errorf("Slugify(%q) = %q, want idempotent result", s, got)
		}
	}
}

// TestAnchor verifies explicit anchor ids take precedence over derived slugs.
func TestAnchor(t *testing.T) {
	b := &Block{Kind: KindPricing, Name: "Pricing Plans"}
	if got := Anchor(b); got != "pricing-plans" {
		t.Errorf("Anchor = %q, want %q", got, "pricing-plans")
	}

	b.AnchorID = "custom-anchor"
	if got := Anchor(b); got != "custom-anchor" {
		t.Errorf("Anchor with explicit id = %q, want %q", got, "custom-anchor")
	}
}

package slug

import "testing"

// TestGenerate exercises the stem generator with theme prompts, special
// characters, unicode and boundary conditions.
func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// --- Theme prompts ---
		{name: "single word", input: "Toys", want: "toys"},
		{name: "two words", input: "summer food", want: "summer-food"},
		{name: "mixed case", input: "Office Supplies", want: "office-supplies"},
		{name: "with digits", input: "web 3 icons", want: "web-3-icons"},

		// --- Whitespace ---
		{name: "tabs and newlines", input: "rainy\tweather\nicons", want: "rainy-weather-icons"},
		{name: "repeated spaces", input: "space    travel", want: "space-travel"},
		{name: "surrounding spaces", input: "   music   ", want: "music"},

		// --- Special characters ---
		{name: "punctuation", input: "Pets! Cats & Dogs?", want: "pets-cats-dogs"},
		{name: "path separators", input: "../etc/passwd", want: "etcpasswd"},
		{name: "dots removed", input: "v1.2 release", want: "v12-release"},
		{name: "underscore kept", input: "snake_case theme", want: "snake_case-theme"},
		{name: "hyphen runs collapsed", input: "a -- b", want: "a-b"},

		// --- Unicode ---
		{name: "accented letters kept", input: "Café Crème", want: "café-crème"},
		{name: "non-latin letters kept", input: "东京 旅行", want: "东京-旅行"},
		{name: "emoji stripped", input: "pizza 🍕 party", want: "pizza-party"},

		// --- Boundaries ---
		{name: "empty", input: "", want: Fallback},
		{name: "only symbols", input: "!!! ???", want: Fallback},
		{name: "only hyphens", input: "---", want: Fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(tt.input); got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGenerateIdempotent(t *testing.T) {
	inputs := []string{"Summer Food", "Café Crème", "a -- b", ""}
	for _, in := range inputs {
		once := Generate(in)
		if twice := Generate(once); twice != once {
			t.Errorf("Generate not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

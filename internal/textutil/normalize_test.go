package textutil

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"marker with colon", "Ingredients:", "ingredients"},
		{"mixed case and punctuation", "Shopping-List!!", "shoppinglist"},
		{"keeps newlines", "Method:\n1. Boil", "method\n1 boil"},
		{"keeps inner spaces", "  Wake up, eat  ", "  wake up eat  "},
		{"non ascii lowercased", "CRÈME Brûlée", "crème brûlée"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizedLines(t *testing.T) {
	lines := NormalizedLines("Ingredients\n- eggs\n\nDirections")
	want := []string{"ingredients", " eggs", "", "directions"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10/06/26 - 10/13/26", "10-06-26 - 10-13-26"},
		{"  what?  ", "what"},
		{"a:b*c", "a-b-c"},
		{"???", "digest"},
		{"", "digest"},
	}
	for _, tt := range tests {
		if got := SanitizeFileName(tt.in); got != tt.want {
			t.Fatalf("SanitizeFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

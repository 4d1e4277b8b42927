package security

import (
	"strings"
	"testing"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain name untouched", "Aldrin", "Aldrin"},
		{"html stripped", "<b>Aldrin</b>", "Aldrin"},
		{"script removed", "<script>alert(1)</script>Aldrin", "Aldrin"},
		{"null bytes dropped", "Ald\x00rin", "Aldrin"},
		{"whitespace collapsed", "  New   Ville \t", "New Ville"},
		{"overlong capped", strings.Repeat("a", 80), strings.Repeat("a", 60)},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeName(tt.input); got != tt.want {
				t.Errorf("SanitizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"Aldrin", true},
		{"ab", true},
		{"a", false},
		{"", false},
		{strings.Repeat("a", 60), true},
		{strings.Repeat("a", 61), false},
	}

	for _, tt := range tests {
		if got := ValidateName(tt.input); got != tt.want {
			t.Errorf("ValidateName(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

package security

import (
	"testing"
)

func TestSanitizeHandle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain handle",
			input: "alice",
			want:  "alice",
		},
		{
			name:  "strips html",
			input: "<script>alert(1)</script>bob",
			want:  "bob",
		},
		{
			name:  "trims whitespace",
			input: "  carol  ",
			want:  "carol",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeHandle(tt.input); got != tt.want {
				t.Errorf("SanitizeHandle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeGenderTag_Lowercases(t *testing.T) {
	if got := SanitizeGenderTag(" F "); got != "f" {
		t.Errorf("SanitizeGenderTag() = %q, want %q", got, "f")
	}
}

func TestValidateAge(t *testing.T) {
	tests := []struct {
		age  int
		want bool
	}{
		{12, false},
		{13, true},
		{30, true},
		{100, true},
		{101, false},
	}

	for _, tt := range tests {
		if got := ValidateAge(tt.age); got != tt.want {
			t.Errorf("ValidateAge(%d) = %v, want %v", tt.age, got, tt.want)
		}
	}
}

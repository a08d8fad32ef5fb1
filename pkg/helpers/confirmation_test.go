package helpers

import "testing"

func TestNewConfirmationCodeRotates(t *testing.T) {
	first, err := NewConfirmationCode("secret", "reader", "reader@example.com")
	if err != nil {
		t.Fatalf("NewConfirmationCode: %v", err)
	}
	second, err := NewConfirmationCode("secret", "reader", "reader@example.com")
	if err != nil {
		t.Fatalf("NewConfirmationCode: %v", err)
	}
	if first == second {
		t.Error("two codes for the same identity must differ")
	}
	if len(first) != confirmationCodeBytes*2 {
		t.Errorf("code length = %d, want %d", len(first), confirmationCodeBytes*2)
	}
}

func TestConfirmationCodeMatches(t *testing.T) {
	code, err := NewConfirmationCode("secret", "u", "u@example.com")
	if err != nil {
		t.Fatalf("NewConfirmationCode: %v", err)
	}
	tests := []struct {
		name     string
		stored   string
		supplied string
		want     bool
	}{
		{"exact match", code, code, true},
		{"wrong code", code, "deadbeef", false},
		{"empty stored never matches", "", "", false},
		{"empty supplied", code, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConfirmationCodeMatches(tt.stored, tt.supplied); got != tt.want {
				t.Errorf("ConfirmationCodeMatches(%q, %q) = %v, want %v", tt.stored, tt.supplied, got, tt.want)
			}
		})
	}
}

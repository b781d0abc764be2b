package chat

import (
	"strings"
	"testing"
)

func TestFormatWithPCName(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"search the abandoned mill", "Rin: search the abandoned mill"},
		{"Mara: The road north is washed out.", "Mara: The road north is washed out."},
		{"Rin: I ask about the road.", "Rin: I ask about the road."},
		// A colon early in a sentence reads as a speaker label.
		{"I read the sign: beware of wolves", "I read the sign: beware of wolves"},
		{"", "Rin: "},
		{strings.Repeat("x", maxSpeakerLength+1) + ": not a speaker", "Rin: " + strings.Repeat("x", maxSpeakerLength+1) + ": not a speaker"},
	}

	for _, tt := range tests {
		if got := FormatWithPCName(tt.message, "Rin"); got != tt.want {
			t.Errorf("FormatWithPCName(%q) = %q, want %q", tt.message, got, tt.want)
		}
	}
}

func TestValidateMessage(t *testing.T) {
	tests := []struct {
		name    string
		message string
		wantErr string
	}{
		{"ordinary action", "light a torch and look around", ""},
		{"exactly at the limit", strings.Repeat("a", MaxMessageLength), ""},
		{"over the limit", strings.Repeat("a", MaxMessageLength+1), "exceeds maximum length"},
		{"blank", " \t\n", "cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMessage(tt.message)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateMessage() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

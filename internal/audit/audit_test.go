package audit

import (
	"testing"
)

// Sensitive metadata keys must be redacted before the event reaches the log
// stream.
func TestAudit_IsSecret(t *testing.T) {
	tests := []struct {
		key      string
		isSecret bool
	}{
		{"password", true},
		{"token", true},
		{"secret", true},
		{"key", true},
		{"authorization", true},
		{"account_id", false},
		{"brand_id", false},
		{"email", false},
		{"status", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := isSecret(tt.key); got != tt.isSecret {
				t.Errorf("isSecret(%q) = %v, want %v", tt.key, got, tt.isSecret)
			}
		})
	}
}

package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"Valid", "prompt_author42", false},
		{"Valid With Hyphen", "jane-doe", false},
		{"Exactly Min Length", "abc", false},
		{"Too Short", "ab", true},
		{"Too Long", strings.Repeat("a", 31), true},
		{"Illegal Chars", "user@123", true},
		{"Starts Dash", "-user", true},
		{"Ends Underscore", "user_", true},
		{"Reserved", "admin", true},
		{"Reserved Mixed Case", "Admin", true},
		{"Reserved Route", "prompts", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"Valid", "student@example.edu", false},
		{"Valid Plus Tag", "student+tag@example.edu", false},
		{"Missing At", "student.example.edu", true},
		{"Missing TLD", "student@example", true},
		{"Too Long", strings.Repeat("a", 250) + "@x.io", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"Valid", "correcthorse1", false},
		{"Exactly Min Length", "abcdefg1", false},
		{"Exactly Max Length", strings.Repeat("b", 127) + "1", false},
		{"Too Short", "abc1", true},
		{"Too Long", strings.Repeat("b", 128) + "1", true},
		{"No Digit", "abcdefgh", true},
		{"No Letter", "12345678", true},
		{"Unicode Letters", "pässwörd1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name        string
		username    string
		expectError bool
	}{
		{"Valid username", "alice", false},
		{"Valid with digits and separators", "alice_91-dev", false},
		{"Too short", "ab", true},
		{"Too long", strings.Repeat("a", 151), true},
		{"Contains spaces", "alice smith", true},
		{"Contains special characters", "alice!", true},
		{"Leading underscore", "_alice", true},
		{"Trailing hyphen", "alice-", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name        string
		email       string
		expectError bool
	}{
		{"Valid email", "alice@example.com", false},
		{"Valid with plus addressing", "alice+blog@example.co.uk", false},
		{"Missing at sign", "alice.example.com", true},
		{"Missing domain", "alice@", true},
		{"Missing TLD", "alice@example", true},
		{"Too long", strings.Repeat("a", 250) + "@example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name        string
		password    string
		expectError bool
	}{
		{"Valid password", "Password1234", false},
		{"Too short", "Pass1", true},
		{"Too long", "Aa1" + strings.Repeat("x", 126), true},
		{"No uppercase", "password1234", true},
		{"No lowercase", "PASSWORD1234", true},
		{"No digit", "PasswordWord", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateSlug(t *testing.T) {
	tests := []struct {
		name        string
		slug        string
		expectError bool
	}{
		{"Valid slug", "my-first-post", false},
		{"Single character", "a", false},
		{"Digits only", "2024", false},
		{"Empty", "", true},
		{"Uppercase letters", "My-Post", true},
		{"Spaces", "my post", true},
		{"Leading hyphen", "-post", true},
		{"Trailing hyphen", "post-", true},
		{"Too long", strings.Repeat("a", 251), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSlug(tt.slug)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

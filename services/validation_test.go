package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		ok       bool
		message  string
	}{
		{name: "valid", password: "Abc123!", ok: true},
		{name: "empty", password: "", ok: false, message: "password is required"},
		{name: "too short", password: "Ab1!", ok: false, message: "password length must be between 6 and 12 characters"},
		{name: "too long", password: "Abcdefgh1234!", ok: false, message: "password length must be between 6 and 12 characters"},
		{name: "no uppercase", password: "abc123!", ok: false, message: "password must contain at least one uppercase letter"},
		{name: "no lowercase", password: "ABC123!", ok: false, message: "password must contain at least one lowercase letter"},
		{name: "no special", password: "Abc12345", ok: false, message: "password must contain at least one special character"},
		{name: "special outside the set", password: "Abc123*", ok: false, message: "password must contain at least one special character"},
		{name: "all special chars accepted", password: "Ab1@#$%^", ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := validatePassword(tt.password)
			require.Equal(t, tt.ok, ok)
			if !tt.ok {
				require.Equal(t, tt.message, msg)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"jo@x.com", "first.last@example.co.uk", "a+b@domain.io"}
	for _, email := range valid {
		_, ok := validateEmail(email)
		require.True(t, ok, "expected %q to be valid", email)
	}

	invalid := []string{"", "plainaddress", "@missing-local.org", "user@", "user@domain", "user @domain.com"}
	for _, email := range invalid {
		_, ok := validateEmail(email)
		require.False(t, ok, "expected %q to be invalid", email)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := ValidationError{
		"email":    "not a valid email address",
		"password": "password is required",
	}
	require.Equal(t, "validation failed: email: not a valid email address; password: password is required", err.Error())
}

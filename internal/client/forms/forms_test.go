package forms

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/emprende/internal/client/client"
)

func TestCheck_Login(t *testing.T) {
	tests := []struct {
		name    string
		form    Login
		wantErr string
	}{
		{"ok", Login{Identifier: "ana@example.com", Password: "secret1"}, ""},
		{"bad email", Login{Identifier: "ana", Password: "secret1"}, "email must be a valid email address"},
		{"short password", Login{Identifier: "ana@example.com", Password: "12345"}, "password must be at least 6 characters"},
		{"empty", Login{}, "email is required; password is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.form)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, client.ErrInvalidFormat)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestCheck_Code(t *testing.T) {
	ok := Code{Digits: [6]string{"1", "2", "3", "4", "5", "6"}}
	require.NoError(t, Check(ok))
	assert.Equal(t, "123456", ok.Value())

	for name, digits := range map[string][6]string{
		"empty box":  {"1", "2", "", "4", "5", "6"},
		"letter":     {"1", "2", "a", "4", "5", "6"},
		"two digits": {"1", "2", "34", "4", "5", "6"},
	} {
		t.Run(name, func(t *testing.T) {
			err := Check(Code{Digits: digits})
			require.ErrorIs(t, err, client.ErrInvalidFormat)
		})
	}
}

func TestStrongPassword(t *testing.T) {
	tests := map[string]bool{
		"Abcdef1!":    true,
		"Zz9@Zz9@":    true,
		"abcdef1!":    false, // no upper
		"ABCDEF1!":    false, // no lower
		"Abcdefg!":    false, // no digit
		"Abcdefg1":    false, // no special
		"Ab1!":        false, // short
		"Abcdef1!#":   false, // '#' not allowed
		"Abcdef1! x":  false,
		"Pässwort1!a": false,
	}
	for pw, want := range tests {
		assert.Equal(t, want, StrongPassword(pw), pw)
	}
}

func TestCheck_NewPassword(t *testing.T) {
	require.NoError(t, Check(NewPassword{Password: "Abcdef1!", Confirm: "Abcdef1!"}))

	err := Check(NewPassword{Password: "Abcdef1!", Confirm: "Abcdef1?"})
	require.ErrorIs(t, err, client.ErrInvalidFormat)
	assert.Equal(t, "passwords do not match", err.Error())

	err = Check(NewPassword{Password: "weak", Confirm: "weak"})
	require.ErrorIs(t, err, client.ErrInvalidFormat)
	assert.Contains(t, err.Error(), "password needs at least 8 characters")
}

func TestCheck_NonStruct(t *testing.T) {
	err := Check("not a struct")
	require.Error(t, err)
	assert.False(t, errors.Is(err, client.ErrInvalidFormat))
}

package helpers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizku_backend/internals/helpers/apperr"
)

func fieldsOf(t *testing.T, err error) map[string][]string {
	t.Helper()
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae))
	return ae.Fields
}

func TestValidateRegisterInput(t *testing.T) {
	assert.NoError(t, ValidateRegisterInput("ana@example.com", "secret1"))

	f := fieldsOf(t, ValidateRegisterInput("not-an-email", "123"))
	assert.Contains(t, f, "email")
	assert.Contains(t, f, "password")
}

func TestValidateResetPassword_Mismatch(t *testing.T) {
	f := fieldsOf(t, ValidateResetPassword("ana@example.com", "secret1", "secret2"))
	assert.Equal(t, []string{"passwords do not match"}, f["confirmPassword"])
}

func TestHashPassword_RoundTrip(t *testing.T) {
	h, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", h)
	assert.NoError(t, CheckPasswordHash(h, "secret1"))
	assert.Error(t, CheckPasswordHash(h, "wrong"))
}

func TestValidateChangePassword(t *testing.T) {
	assert.NoError(t, ValidateChangePassword("secret1", "secret2"))

	f := fieldsOf(t, ValidateChangePassword("secret1", "secret1"))
	assert.Equal(t, []string{"must differ from the current password"}, f["newPassword"])

	f = fieldsOf(t, ValidateChangePassword("", "abc"))
	assert.Equal(t, []string{"is required"}, f["currentPassword"])
	assert.Equal(t, []string{"must be at least 6 characters"}, f["newPassword"])
}

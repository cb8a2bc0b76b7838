package helper

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizku_backend/internals/helpers/apperr"
)

type signup struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func TestValidateStruct_UsesJSONNames(t *testing.T) {
	err := ValidateStruct(NewValidator(), signup{Email: "nope", Password: "123"})
	require.Error(t, err)

	var ae *apperr.Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, apperr.KindValidation, ae.Kind)
	assert.Contains(t, ae.Fields, "email")
	assert.Contains(t, ae.Fields, "password")
}

func TestValidateStruct_OK(t *testing.T) {
	assert.NoError(t, ValidateStruct(NewValidator(), signup{Email: "a@b.co", Password: "123456"}))
}

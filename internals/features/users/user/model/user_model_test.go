package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizku_backend/internals/constants"
	"quizku_backend/internals/features/users/user/model"
	"quizku_backend/internals/testutil"
)

func TestBeforeCreate_Roles(t *testing.T) {
	db := testutil.OpenDB(t)

	u := model.UserModel{UserName: "ana", Email: " Ana@Example.com ", Password: "x"}
	require.NoError(t, db.Create(&u).Error)
	assert.Equal(t, constants.RoleUser, u.Role)
	assert.Equal(t, "ana@example.com", u.Email)

	bad := model.UserModel{UserName: "eve", Email: "eve@example.com", Password: "x", Role: "superuser"}
	assert.Error(t, db.Create(&bad).Error)

	var n int64
	require.NoError(t, db.Model(&model.UserModel{}).Where("user_name = ?", "eve").Count(&n).Error)
	assert.Zero(t, n)
}

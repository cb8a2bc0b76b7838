package helpers

import (
	"errors"

	helper "quizku_backend/internals/helpers"
	"quizku_backend/internals/helpers/apperr"
)

var validate = helper.NewValidator()

type registerInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type resetInput struct {
	Username        string `json:"username" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type changeInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// check runs the struct tags, then extra for rules that span fields.
func check(in any, extra func(v *apperr.Violations)) error {
	var v apperr.Violations
	if err := helper.ValidateStruct(validate, in); err != nil {
		var ae *apperr.Error
		if !errors.As(err, &ae) {
			return err
		}
		for field, msgs := range ae.Fields {
			for _, m := range msgs {
				v.Add(field, m)
			}
		}
	}
	if extra != nil {
		extra(&v)
	}
	return v.Err()
}

func ValidateRegisterInput(email, password string) error {
	return check(registerInput{Email: email, Password: password}, nil)
}

func ValidateLoginInput(username, password string) error {
	return check(loginInput{Username: username, Password: password}, nil)
}

func ValidateResetPassword(username, newPassword, confirmPassword string) error {
	in := resetInput{Username: username, NewPassword: newPassword, ConfirmPassword: confirmPassword}
	return check(in, func(v *apperr.Violations) {
		if confirmPassword != "" && newPassword != confirmPassword {
			v.Add("confirmPassword", "passwords do not match")
		}
	})
}

func ValidateChangePassword(current, newPassword string) error {
	in := changeInput{CurrentPassword: current, NewPassword: newPassword}
	return check(in, func(v *apperr.Violations) {
		if current != "" && current == newPassword {
			v.Add("newPassword", "must differ from the current password")
		}
	})
}

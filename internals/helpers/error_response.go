package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"quizku_backend/internals/helpers/apperr"
	"quizku_backend/internals/logger"
)

var kindStatus = map[apperr.Kind]int{
	apperr.KindValidation:         fiber.StatusBadRequest,
	apperr.KindUnauthenticated:    fiber.StatusUnauthorized,
	apperr.KindInvalidToken:       fiber.StatusUnauthorized,
	apperr.KindForbidden:          fiber.StatusForbidden,
	apperr.KindNotFound:           fiber.StatusNotFound,
	apperr.KindConflict:           fiber.StatusBadRequest,
	apperr.KindInvalidCredentials: fiber.StatusBadRequest,
	apperr.KindDependency:         fiber.StatusInternalServerError,
	apperr.KindInternal:           fiber.StatusInternalServerError,
}

var kindCode = map[apperr.Kind]string{
	apperr.KindValidation:         "VALIDATION_ERROR",
	apperr.KindUnauthenticated:    "UNAUTHORIZED",
	apperr.KindInvalidToken:       "INVALID_TOKEN",
	apperr.KindForbidden:          "FORBIDDEN",
	apperr.KindNotFound:           "NOT_FOUND",
	apperr.KindConflict:           "CONFLICT",
	apperr.KindInvalidCredentials: "INVALID_CREDENTIALS",
	apperr.KindDependency:         "DEPENDENCY_FAILURE",
	apperr.KindInternal:           "INTERNAL_ERROR",
}

// StatusOf maps an error onto the HTTP status the API answers with.
func StatusOf(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	if s, ok := kindStatus[apperr.KindOf(err)]; ok {
		return s
	}
	return fiber.StatusInternalServerError
}

// FromError writes the JSON error envelope for any service error.
// Internal causes are logged and never echoed to the client.
func FromError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}

	var ae *apperr.Error
	if !errors.As(err, &ae) {
		logger.FromCtx(c).WithError(err).Error("unclassified error")
		return JsonError(c, fiber.StatusInternalServerError, "Something went wrong")
	}

	status := kindStatus[ae.Kind]
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	if status >= 500 {
		logger.FromCtx(c).WithError(err).WithField("kind", ae.Kind).Error("request failed")
	}
	if ae.Kind == apperr.KindValidation {
		return JsonValidationError(c, ae.Message, ae.Fields)
	}
	return jsonErrorWithCode(c, status, ae.Message, kindCode[ae.Kind], nil)
}

// ErrorHandler is installed as fiber.Config.ErrorHandler so routing errors,
// middleware errors and recovered panics share the envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return FromError(c, err)
}

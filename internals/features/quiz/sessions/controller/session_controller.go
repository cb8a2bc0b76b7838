package controller

import (
	"github.com/gofiber/fiber/v2"

	"quizku_backend/internals/features/quiz/sessions/dto"
	"quizku_backend/internals/features/quiz/sessions/service"
	helper "quizku_backend/internals/helpers"
	helperAuth "quizku_backend/internals/helpers/auth"
)

type SessionController struct {
	Service *service.Service
}

func NewSessionController(svc *service.Service) *SessionController {
	return &SessionController{Service: svc}
}

// GET /api/quiz/questions/:language
func (ctl *SessionController) Questions(c *fiber.Ctx) error {
	id, err := helperAuth.GetIdentity(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	qs, err := ctl.Service.FetchSample(c.UserContext(), id, c.Params("language"))
	if err != nil {
		return helper.FromError(c, err)
	}
	msg := "ok"
	if len(qs) == 0 {
		msg = "No quiz available for this language"
	}
	return helper.JsonOK(c, msg, qs)
}

// POST /api/quiz/submit
func (ctl *SessionController) Submit(c *fiber.Ctx) error {
	id, err := helperAuth.GetIdentity(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	out, err := ctl.Service.Submit(c.UserContext(), id, req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Quiz submitted", out)
}

// GET /api/quiz/history
func (ctl *SessionController) History(c *fiber.Ctx) error {
	id, err := helperAuth.GetIdentity(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	rows, err := ctl.Service.History(c.UserContext(), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", rows)
}

package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	qdto "quizku_backend/internals/features/quiz/questions/dto"
	qservice "quizku_backend/internals/features/quiz/questions/service"
	helper "quizku_backend/internals/helpers"
	"quizku_backend/internals/helpers/apperr"
)

/* =========================================================
   Controller
========================================================= */

type QuestionController struct {
	Service *qservice.Service
}

func NewQuestionController(svc *qservice.Service) *QuestionController {
	return &QuestionController{Service: svc}
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return uuid.Nil, apperr.Invalid("id", "must be a valid question id")
	}
	return id, nil
}

/* =========================================================
   READ
========================================================= */

// GET /api/admin/questions?language=&difficulty=&q=&page=&per_page=
func (ctl *QuestionController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctl.Service.List(c.UserContext(), qdto.ListQuery{
		Language:   c.Query("language"),
		Difficulty: c.Query("difficulty"),
		Q:          c.Query("q"),
		Offset:     p.Offset,
		Limit:      p.Limit,
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", qdto.ToAdminList(rows), p.Pagination(total))
}

// GET /api/admin/questions/:id
func (ctl *QuestionController) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	q, err := ctl.Service.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", qdto.ToAdmin(*q))
}

/* =========================================================
   WRITE
========================================================= */

// POST /api/admin/questions
func (ctl *QuestionController) Create(c *fiber.Ctx) error {
	var req qdto.CreateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	q, err := ctl.Service.Create(c.UserContext(), req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Question added successfully", qdto.ToAdmin(*q))
}

// PUT /api/admin/questions/:id
func (ctl *QuestionController) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var req qdto.UpdateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	q, err := ctl.Service.Update(c.UserContext(), id, req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Question updated successfully", qdto.ToAdmin(*q))
}

// DELETE /api/admin/questions/:id
func (ctl *QuestionController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := ctl.Service.Delete(c.UserContext(), id); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "Question deleted successfully", fiber.Map{"id": id})
}

// GET /api/quiz/languages
func (ctl *QuestionController) Languages(c *fiber.Ctx) error {
	out, err := ctl.Service.Languages(c.UserContext())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}

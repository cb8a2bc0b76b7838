package controller

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"quizku_backend/internals/features/admin/service"
	helper "quizku_backend/internals/helpers"
	"quizku_backend/internals/logger"
)

// ExportCleanupDelay is how long an exported report survives after download.
const ExportCleanupDelay = time.Second

type AdminController struct {
	Service *service.Service
}

func NewAdminController(svc *service.Service) *AdminController {
	return &AdminController{Service: svc}
}

// GET /api/admin/results
func (ctl *AdminController) Results(c *fiber.Ctx) error {
	paged := c.Query("page") != "" || c.Query("per_page") != "" || c.Query("limit") != ""
	var p helper.Paging
	if paged {
		p = helper.ResolvePaging(c, 20, 200)
	}
	rows, total, err := ctl.Service.AllResults(c.UserContext(), p.Offset, p.Limit)
	if err != nil {
		return helper.FromError(c, err)
	}
	if !paged {
		return helper.JsonOK(c, "ok", rows)
	}
	return helper.JsonList(c, "ok", rows, p.Pagination(total))
}

// GET /api/admin/results/filter?startDate=&endDate=
func (ctl *AdminController) Filter(c *fiber.Ctx) error {
	rows, err := ctl.Service.FilterResults(c.UserContext(), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", rows)
}

// GET /api/admin/results/search?username=
func (ctl *AdminController) Search(c *fiber.Ctx) error {
	rows, err := ctl.Service.SearchResults(c.UserContext(), c.Query("username"))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", rows)
}

// GET /api/admin/results/export/:username
func (ctl *AdminController) Export(c *fiber.Ctx) error {
	art, err := ctl.Service.ExportResults(c.UserContext(), c.Params("username"))
	if err != nil {
		return helper.FromError(c, err)
	}
	ctl.Service.Reports.RemoveLater(art.FileName, ExportCleanupDelay)
	logger.FromCtx(c).WithField("file", art.FileName).Info("results exported")
	return c.Download(art.LocalPath, art.FileName)
}

// DELETE /api/admin/results/:username/:resultId
func (ctl *AdminController) DeleteResult(c *fiber.Ctx) error {
	resultID, err := uuid.Parse(c.Params("resultId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid result id")
	}
	if err := ctl.Service.DeleteResult(c.UserContext(), c.Params("username"), resultID); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "Quiz result deleted", fiber.Map{"resultId": resultID})
}

// GET /api/admin/user-quiz-details/:userId
func (ctl *AdminController) UserQuizDetails(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}
	out, err := ctl.Service.UserQuizDetails(c.UserContext(), userID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}

// PUT /api/admin/users/:username/block
func (ctl *AdminController) Block(c *fiber.Ctx) error { return ctl.setBlocked(c, true) }

// PUT /api/admin/users/:username/unblock
func (ctl *AdminController) Unblock(c *fiber.Ctx) error { return ctl.setBlocked(c, false) }

func (ctl *AdminController) setBlocked(c *fiber.Ctx, blocked bool) error {
	out, err := ctl.Service.SetBlocked(c.UserContext(), c.Params("username"), blocked)
	if err != nil {
		return helper.FromError(c, err)
	}
	verb := "unblocked"
	if blocked {
		verb = "blocked"
	}
	return helper.JsonUpdated(c, fmt.Sprintf("User %s has been %s.", out.Username, verb), out)
}

// GET /api/admin/statistics
func (ctl *AdminController) Statistics(c *fiber.Ctx) error {
	st, err := ctl.Service.Statistics(c.UserContext())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", st)
}

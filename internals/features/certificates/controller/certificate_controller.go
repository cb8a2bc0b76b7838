package controller

import (
	"github.com/gofiber/fiber/v2"

	"quizku_backend/internals/constants"
	certService "quizku_backend/internals/features/certificates/service"
	helper "quizku_backend/internals/helpers"
)

type CertificateController struct {
	Store *certService.Store
}

func NewCertificateController(store *certService.Store) *CertificateController {
	return &CertificateController{Store: store}
}

// GET /api/quiz/certificate/:fileName
func (ctl *CertificateController) Download(c *fiber.Ctx) error {
	name := c.Params("fileName")
	path, err := ctl.Store.Open(name)
	if err != nil {
		return helper.FromError(c, err)
	}
	c.Set(fiber.HeaderContentType, constants.ContentTypeFromExt(name))
	return c.Download(path, name)
}

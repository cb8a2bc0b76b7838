package route

import (
	"github.com/gofiber/fiber/v2"

	certController "quizku_backend/internals/features/certificates/controller"
	certService "quizku_backend/internals/features/certificates/service"
)

// CertificateRoutes serves generated artifacts. Both mounts are public.
func CertificateRoutes(app *fiber.App, store *certService.Store) {
	ctrl := certController.NewCertificateController(store)

	app.Static("/temp", store.Dir, fiber.Static{
		Browse:   false,
		Download: false,
	}) // GET /temp/<fileName>

	app.Get("/api/quiz/certificate/:fileName", ctrl.Download) // GET /api/quiz/certificate/:fileName
}

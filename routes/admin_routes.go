package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tutorbridge/volunteer_tutor/handlers"
	"github.com/tutorbridge/volunteer_tutor/middleware"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Get("/tutors/pending", handlers.ListPendingTutors)
	admin.Post("/tutors/:tutorId/verify", handlers.VerifyTutor)

	admin.Post("/subjects", handlers.CreateSubject)
	admin.Put("/subjects/:subjectId", handlers.UpdateSubject)
	admin.Delete("/subjects/:subjectId", handlers.DeleteSubject)

	admin.Get("/users", handlers.ListUsers)
	admin.Patch("/users/:userId/status", handlers.SetUserStatus)
}

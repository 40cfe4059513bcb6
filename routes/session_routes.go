package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tutorbridge/volunteer_tutor/handlers"
	"github.com/tutorbridge/volunteer_tutor/middleware"
)

func SessionRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	sessions := api.Group("/sessions", middleware.Protected())
	sessions.Post("", handlers.BookSession)
	sessions.Get("/me", handlers.GetMySessions)
	sessions.Get("/:sessionId", handlers.GetSessionDetail)
	sessions.Get("/:sessionId/completion-status", handlers.CheckCompletionStatus)
	sessions.Post("/:sessionId/review", handlers.CreateReview)
	// keep the review route above this wildcard
	sessions.Post("/:sessionId/:action", handlers.SessionAction)
}

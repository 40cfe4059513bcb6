package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tutorbridge/volunteer_tutor/handlers"
	"github.com/tutorbridge/volunteer_tutor/middleware"
)

func ProfileRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	profile := api.Group("/profile/me", middleware.Protected())
	profile.Get("", handlers.GetProfile)
	profile.Put("", handlers.UpdateProfile)
	profile.Get("/progress", handlers.GetMyProgress)

	api.Get("/users/:userId/profile", middleware.Protected(), handlers.GetUserProfile)
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tutorbridge/volunteer_tutor/handlers"
	"github.com/tutorbridge/volunteer_tutor/middleware"
)

func TutorRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/tutors", handlers.ListTutors)
	api.Get("/tutors/:tutorId", handlers.GetTutorDetail)
	api.Get("/tutors/:tutorId/reviews", handlers.GetTutorReviews)
	api.Get("/subjects", handlers.ListSubjects)

	tutor := api.Group("/tutor", middleware.Protected())
	tutor.Post("/apply", handlers.ApplyToBeATutor)

	profile := tutor.Group("/profile")
	profile.Get("/me", handlers.GetMyTutorProfile)
	profile.Put("/me", handlers.UpdateMyTutorProfile)

	verified := tutor.Group("", middleware.TutorRequired())
	verified.Get("/sessions", handlers.GetMyTutorSessions)
	verified.Get("/reviews/me", handlers.GetMyReviews)
	verified.Get("/volunteer/stats", handlers.GetVolunteerStats)
	verified.Get("/certificates", handlers.GetMyCertificates)

	subjects := tutor.Group("/subjects", middleware.TutorRequired())
	subjects.Post("", handlers.AddSubjectToProfile)
	subjects.Delete("/:subjectId", handlers.RemoveSubjectFromProfile)
}

package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/tutorbridge/volunteer_tutor/database"
	"github.com/tutorbridge/volunteer_tutor/lifecycle"
	"github.com/tutorbridge/volunteer_tutor/services"
)

var validate = validator.New()

func sessionService() *services.SessionService {
	return services.NewSessionService(database.DB, lifecycle.SystemClock())
}

func ratingService() *services.RatingService {
	return services.NewRatingService(database.DB)
}

func volunteerService() *services.VolunteerService {
	return services.NewVolunteerService(database.DB, services.NewCertificateService())
}

// domainErrorStatus maps service and lifecycle errors to HTTP codes at
// the request boundary; every domain failure surfaces as a 4xx with
// the error message in the body.
func domainErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrSessionNotFound),
		errors.Is(err, services.ErrTutorNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, lifecycle.ErrNotParticipant),
		errors.Is(err, lifecycle.ErrTutorOnly),
		errors.Is(err, services.ErrNotSessionStudent):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrDuplicateReview):
		return fiber.StatusConflict
	default:
		return fiber.StatusBadRequest
	}
}

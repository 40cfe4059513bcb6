package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/tutorbridge/volunteer_tutor/database"
	"github.com/tutorbridge/volunteer_tutor/models"
)

type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

func CreateReview(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	studentID, _ := uuid.Parse(claims["user_id"].(string))
	sessionID, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id"})
	}

	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	review, err := ratingService().SubmitReview(sessionID, studentID, req.Rating, req.Comment)
	if err != nil {
		return c.Status(domainErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(review)
}

// GetTutorReviews lists a tutor's reviews, newest first.
func GetTutorReviews(c *fiber.Ctx) error {
	tutorID := c.Params("tutorId")

	var reviews []models.Review
	database.DB.Preload("Student").
		Where("tutor_id = ?", tutorID).
		Order("created_at desc").
		Find(&reviews)

	return c.JSON(reviews)
}

func GetMyReviews(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	tutorID := claims["user_id"].(string)

	var reviews []models.Review
	database.DB.Preload("Student").
		Where("tutor_id = ?", tutorID).
		Order("created_at desc").
		Find(&reviews)

	return c.JSON(reviews)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/tutorbridge/volunteer_tutor/database"
	"github.com/tutorbridge/volunteer_tutor/lifecycle"
	"github.com/tutorbridge/volunteer_tutor/models"
)

type UpdateProfileRequest struct {
	FullName        *string `json:"full_name"`
	Phone           *string `json:"phone"`
	Bio             *string `json:"bio"`
	Location        *string `json:"location"`
	School          *string `json:"school"`
	GradeLevel      *string `json:"grade_level"`
	Interests       *string `json:"interests"`
	IsProfilePublic *bool   `json:"is_profile_public"`
}

func GetProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(user)
}

func UpdateProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.Location != nil {
		user.Location = req.Location
	}
	if req.School != nil {
		user.School = req.School
	}
	if req.GradeLevel != nil {
		user.GradeLevel = req.GradeLevel
	}
	if req.Interests != nil {
		user.Interests = req.Interests
	}
	if req.IsProfilePublic != nil {
		user.IsProfilePublic = *req.IsProfilePublic
	}

	database.DB.Save(&user)

	return c.JSON(user)
}

// GetUserProfile is the public profile page. Private profiles are only
// visible to their owner.
func GetUserProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	requesterID := claims["user_id"].(string)
	profileUserID := c.Params("userId")

	var user models.User
	if err := database.DB.Where("id = ?", profileUserID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	if !user.IsProfilePublic && user.ID.String() != requesterID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This profile is private"})
	}

	response := fiber.Map{"user": user}
	if user.Role == "tutor" {
		var profile models.TutorProfile
		if err := database.DB.Preload("Subjects").Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
			response["tutor_profile"] = profile
		}
	}

	return c.JSON(response)
}

// GetMyProgress reports a student's completed session count and hours
// learned.
func GetMyProgress(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	studentID, _ := uuid.Parse(claims["user_id"].(string))

	var totalSessions int64
	database.DB.Model(&models.Session{}).
		Where("student_id = ? AND status = ?", studentID, lifecycle.StatusCompleted).
		Count(&totalSessions)

	var totalHours float64
	database.DB.Model(&models.Session{}).
		Where("student_id = ? AND status = ?", studentID, lifecycle.StatusCompleted).
		Select("COALESCE(SUM(duration_hours), 0)").
		Row().Scan(&totalHours)

	return c.JSON(fiber.Map{
		"total_sessions_completed": totalSessions,
		"total_hours_learned":      totalHours,
	})
}

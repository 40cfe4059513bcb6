package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	config "github.com/tutorbridge/volunteer_tutor/configs"
	"github.com/tutorbridge/volunteer_tutor/database"
	"github.com/tutorbridge/volunteer_tutor/models"
)

type TutorApplicationRequest struct {
	Headline     string  `json:"headline" validate:"required"`
	Bio          string  `json:"bio" validate:"required"`
	Availability string  `json:"availability" validate:"required"`
	Education    *string `json:"education"`
	Motivation   *string `json:"motivation"`
}

func ApplyToBeATutor(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req TutorApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var existing models.TutorProfile
	err := database.DB.Where("user_id = ?", userID).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You have already submitted an application."})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	application := models.TutorProfile{
		UserID:             userID,
		Headline:           &req.Headline,
		Bio:                &req.Bio,
		Availability:       &req.Availability,
		Education:          req.Education,
		Motivation:         req.Motivation,
		VolunteerHoursGoal: config.ConfigFloat("DEFAULT_VOLUNTEER_HOURS_GOAL", 10),
	}

	if err := database.DB.Create(&application).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create application"})
	}

	return c.Status(fiber.StatusCreated).JSON(application)
}

func GetMyTutorProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var profile models.TutorProfile
	if err := database.DB.Preload("Subjects").Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tutor profile not found"})
	}

	return c.JSON(profile)
}

type UpdateTutorProfileRequest struct {
	Headline           *string  `json:"headline"`
	Bio                *string  `json:"bio"`
	Availability       *string  `json:"availability"`
	Education          *string  `json:"education"`
	ExperienceLevel    *string  `json:"experience_level" validate:"omitempty,oneof=beginner intermediate experienced expert"`
	TeachingStyle      *string  `json:"teaching_style" validate:"omitempty,oneof=visual hands_on discussion structured flexible"`
	Motivation         *string  `json:"motivation"`
	VolunteerHoursGoal *float64 `json:"volunteer_hours_goal" validate:"omitempty,gt=0"`
}

func UpdateMyTutorProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var profile models.TutorProfile
	if err := database.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tutor profile not found"})
	}

	var req UpdateTutorProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Headline != nil {
		profile.Headline = req.Headline
	}
	if req.Bio != nil {
		profile.Bio = req.Bio
	}
	if req.Availability != nil {
		profile.Availability = req.Availability
	}
	if req.Education != nil {
		profile.Education = req.Education
	}
	if req.ExperienceLevel != nil {
		profile.ExperienceLevel = *req.ExperienceLevel
	}
	if req.TeachingStyle != nil {
		profile.TeachingStyle = *req.TeachingStyle
	}
	if req.Motivation != nil {
		profile.Motivation = req.Motivation
	}
	if req.VolunteerHoursGoal != nil {
		profile.VolunteerHoursGoal = *req.VolunteerHoursGoal
	}

	database.DB.Save(&profile)

	return c.JSON(profile)
}

// ListTutors is the discovery endpoint: verified tutors only, with
// optional subject and category filters.
func ListTutors(c *fiber.Ctx) error {
	query := database.DB.Preload("Subjects").Preload("User").
		Where("is_verified = ?", true)

	if subjectID := c.Query("subject_id"); subjectID != "" {
		query = query.
			Joins("JOIN tutor_subjects ON tutor_subjects.tutor_profile_user_id = tutor_profiles.user_id").
			Where("tutor_subjects.subject_id = ?", subjectID)
	}
	if category := c.Query("category"); category != "" {
		query = query.
			Joins("JOIN tutor_subjects ts ON ts.tutor_profile_user_id = tutor_profiles.user_id").
			Joins("JOIN subjects ON subjects.id = ts.subject_id").
			Where("subjects.category = ?", category)
	}

	var tutors []models.TutorProfile
	if err := query.Distinct("tutor_profiles.*").Find(&tutors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to search tutors"})
	}

	return c.JSON(tutors)
}

// GetTutorDetail returns a tutor's public profile with their five most
// recent reviews.
func GetTutorDetail(c *fiber.Ctx) error {
	tutorID := c.Params("tutorId")

	var profile models.TutorProfile
	if err := database.DB.Preload("Subjects").Preload("User").
		Where("user_id = ?", tutorID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tutor not found"})
	}

	var reviews []models.Review
	database.DB.Preload("Student").
		Where("tutor_id = ?", tutorID).
		Order("created_at desc").
		Limit(5).
		Find(&reviews)

	return c.JSON(fiber.Map{
		"tutor":   profile,
		"reviews": reviews,
	})
}

func ListSubjects(c *fiber.Ctx) error {
	var subjects []models.Subject
	database.DB.Order("category, name").Find(&subjects)
	return c.JSON(subjects)
}

type AddSubjectRequest struct {
	SubjectID string `json:"subject_id" validate:"required,uuid"`
}

func AddSubjectToProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var req AddSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var profile models.TutorProfile
	if err := database.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tutor profile not found"})
	}

	var subject models.Subject
	if err := database.DB.Where("id = ?", req.SubjectID).First(&subject).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Subject not found"})
	}

	database.DB.Model(&profile).Association("Subjects").Append(&subject)

	return c.JSON(fiber.Map{"message": "Subject added successfully"})
}

func RemoveSubjectFromProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)
	subjectID := c.Params("subjectId")

	var profile models.TutorProfile
	if err := database.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tutor profile not found"})
	}

	var subject models.Subject
	if err := database.DB.Where("id = ?", subjectID).First(&subject).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Subject not found"})
	}

	database.DB.Model(&profile).Association("Subjects").Delete(&subject)

	return c.SendStatus(fiber.StatusNoContent)
}

func GetVolunteerStats(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	tutorID, _ := uuid.Parse(claims["user_id"].(string))

	stats, err := volunteerService().Stats(tutorID)
	if err != nil {
		return c.Status(domainErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(stats)
}

func GetMyCertificates(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	tutorID := claims["user_id"].(string)

	var certs []models.Certificate
	database.DB.Where("tutor_id = ?", tutorID).Order("issued_at desc").Find(&certs)

	return c.JSON(certs)
}

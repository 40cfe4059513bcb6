package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/tutorbridge/volunteer_tutor/database"
	"github.com/tutorbridge/volunteer_tutor/models"
	"github.com/tutorbridge/volunteer_tutor/notifications"
)

func ListPendingTutors(c *fiber.Ctx) error {
	var pending []models.TutorProfile
	if err := database.DB.Preload("User").Where("is_verified = ?", false).Find(&pending).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(pending)
}

// VerifyTutor approves or rejects a tutor application. Approval marks
// the profile verified and promotes the user to the tutor role.
func VerifyTutor(c *fiber.Ctx) error {
	type VerifyRequest struct {
		Decision string `json:"decision" validate:"required,oneof=approve reject"`
	}

	var req VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	tutorUserID := c.Params("tutorId")

	var profile models.TutorProfile
	if err := database.DB.Where("user_id = ?", tutorUserID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Application not found"})
	}

	var user models.User
	if err := database.DB.Where("id = ?", tutorUserID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Associated user not found"})
	}

	if req.Decision == "approve" {
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			profile.IsVerified = true
			if err := tx.Save(&profile).Error; err != nil {
				return err
			}
			user.Role = "tutor"
			return tx.Save(&user).Error
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to approve application"})
		}

		go notifications.SendEmail(
			user.FullName,
			user.Email,
			"Your Tutor Application has been Approved!",
			"<h1>Congratulations!</h1><p>Your application to become a volunteer tutor has been approved. You can now add subjects and receive session requests.</p>",
		)
	} else {
		if err := database.DB.Delete(&profile).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to reject application"})
		}

		go notifications.SendEmail(
			user.FullName,
			user.Email,
			"Update on Your Tutor Application",
			"<h1>Application Update</h1><p>We regret to inform you that after careful review, your tutor application was not approved at this time.</p>",
		)
	}

	return c.JSON(fiber.Map{"message": "Application processed successfully"})
}

type SubjectRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func CreateSubject(c *fiber.Ctx) error {
	var req SubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	subject := models.Subject{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.Category != "" {
		subject.Category = req.Category
	}
	if err := database.DB.Create(&subject).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create subject"})
	}

	return c.Status(fiber.StatusCreated).JSON(subject)
}

func UpdateSubject(c *fiber.Ctx) error {
	subjectID := c.Params("subjectId")
	var subject models.Subject
	if err := database.DB.Where("id = ?", subjectID).First(&subject).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Subject not found"})
	}

	var req SubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	subject.Name = req.Name
	subject.Description = req.Description
	if req.Category != "" {
		subject.Category = req.Category
	}
	if err := database.DB.Save(&subject).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update subject"})
	}

	return c.JSON(subject)
}

func DeleteSubject(c *fiber.Ctx) error {
	subjectID := c.Params("subjectId")
	var subject models.Subject
	if err := database.DB.Where("id = ?", subjectID).First(&subject).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Subject not found"})
	}

	if err := database.DB.Delete(&subject).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete subject"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func ListUsers(c *fiber.Ctx) error {
	var users []models.User
	database.DB.Order("created_at desc").Find(&users)
	return c.JSON(users)
}

func SetUserStatus(c *fiber.Ctx) error {
	type StatusRequest struct {
		IsActive *bool `json:"is_active" validate:"required"`
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	userID := c.Params("userId")
	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	user.IsActive = *req.IsActive
	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update user"})
	}

	return c.JSON(user)
}

package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/tutorbridge/volunteer_tutor/database"
	"github.com/tutorbridge/volunteer_tutor/lifecycle"
	"github.com/tutorbridge/volunteer_tutor/models"
	"github.com/tutorbridge/volunteer_tutor/notifications"
	"github.com/tutorbridge/volunteer_tutor/services"
)

type BookSessionRequest struct {
	TutorID       string  `json:"tutor_id" validate:"required,uuid"`
	SubjectID     string  `json:"subject_id" validate:"required,uuid"`
	StartTime     string  `json:"start_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	DurationHours float64 `json:"duration_hours" validate:"required,gt=0"`
	Notes         string  `json:"notes"`
}

func BookSession(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	studentID, _ := uuid.Parse(claims["user_id"].(string))

	var req BookSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	tutorID, _ := uuid.Parse(req.TutorID)
	subjectID, _ := uuid.Parse(req.SubjectID)
	startTime, _ := time.Parse(time.RFC3339, req.StartTime)

	session, err := sessionService().Book(services.BookSessionInput{
		StudentID:     studentID,
		TutorID:       tutorID,
		SubjectID:     subjectID,
		StartTime:     startTime,
		DurationHours: req.DurationHours,
		Notes:         req.Notes,
	})
	if err != nil {
		return c.Status(domainErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	go func() {
		var tutor models.User
		if err := database.DB.First(&tutor, "id = ?", tutorID).Error; err == nil {
			notifications.SendEmail(tutor.FullName, tutor.Email, "New Session Request",
				"<h1>New Session Request</h1><p>A student has requested a tutoring session with you. Log in to your dashboard to accept or decline.</p>")
		}
	}()

	return c.Status(fiber.StatusCreated).JSON(session)
}

func GetMySessions(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	studentID, _ := uuid.Parse(claims["user_id"].(string))

	var sessions []models.Session
	database.DB.
		Preload("Tutor").
		Preload("Subject").
		Where("student_id = ?", studentID).
		Order("start_time desc").
		Find(&sessions)

	return c.JSON(sessions)
}

func GetMyTutorSessions(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	tutorID, _ := uuid.Parse(claims["user_id"].(string))

	var sessions []models.Session
	database.DB.
		Preload("Student").
		Preload("Subject").
		Where("tutor_id = ?", tutorID).
		Order("start_time desc").
		Find(&sessions)

	return c.JSON(sessions)
}

func GetSessionDetail(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))
	sessionID := c.Params("sessionId")

	var session models.Session
	if err := database.DB.Preload("Student").Preload("Tutor").Preload("Subject").
		First(&session, "id = ?", sessionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}

	if session.StudentID != userID && session.TutorID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You don't have permission to view this session"})
	}

	return c.JSON(session)
}

// SessionAction applies one of accept/reject/cancel/complete to a
// session on behalf of the authenticated user.
func SessionAction(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	actorID, _ := uuid.Parse(claims["user_id"].(string))
	sessionID, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id"})
	}

	action, err := lifecycle.ParseAction(c.Params("action"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	session, err := sessionService().Transition(sessionID, actorID, action)
	if err != nil {
		return c.Status(domainErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	go notifyTransition(session, action)
	if session.Status == lifecycle.StatusCompleted {
		go volunteerService().AwardRecognition(session.TutorID)
	}

	response := fiber.Map{"session": session}
	if session.Status == lifecycle.StatusCompleted {
		response["message"] = fmt.Sprintf("Session completed! %.1f volunteer hours added to your profile.", session.DurationHours)
	}
	return c.JSON(response)
}

// CheckCompletionStatus is the polling endpoint the dashboard uses to
// enable the complete button once the time gate opens.
func CheckCompletionStatus(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))
	sessionID, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id"})
	}

	var session models.Session
	if err := database.DB.First(&session, "id = ?", sessionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}
	if session.StudentID != userID && session.TutorID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You don't have permission to view this session"})
	}

	status, err := sessionService().CanComplete(sessionID, time.Now())
	if err != nil {
		return c.Status(domainErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"can_complete":      status.CanComplete,
		"time_left_seconds": status.TimeLeftSeconds,
		"session_end_time":  status.SessionEndTime.Format(time.RFC3339),
	})
}

func notifyTransition(session *models.Session, action lifecycle.Action) {
	var student, tutor models.User
	if err := database.DB.First(&student, "id = ?", session.StudentID).Error; err != nil {
		return
	}
	if err := database.DB.First(&tutor, "id = ?", session.TutorID).Error; err != nil {
		return
	}

	switch action {
	case lifecycle.ActionAccept:
		notifications.SendEmail(student.FullName, student.Email, "Your Session is Confirmed!",
			fmt.Sprintf("<h1>Session Confirmed</h1><p>%s has accepted your session request for %s.</p>",
				tutor.FullName, session.StartTime.Format("January 2, 2006 at 3:04 PM")))
	case lifecycle.ActionReject, lifecycle.ActionCancel:
		notifications.SendEmail(student.FullName, student.Email, "Session Cancelled",
			"<h1>Session Cancelled</h1><p>Your tutoring session has been cancelled.</p>")
	case lifecycle.ActionComplete:
		notifications.SendEmail(student.FullName, student.Email, "How Was Your Session?",
			"<h1>Session Completed</h1><p>Your session has been marked as completed. Leave a review for your tutor!</p>")
	}
}

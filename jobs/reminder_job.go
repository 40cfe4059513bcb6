package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/tutorbridge/volunteer_tutor/database"
	"github.com/tutorbridge/volunteer_tutor/lifecycle"
	"github.com/tutorbridge/volunteer_tutor/models"
	"github.com/tutorbridge/volunteer_tutor/notifications"
)

// SendSessionReminders emails both parties of confirmed sessions
// starting in roughly an hour. Runs every 5 minutes, so the window is
// 60-65 minutes out to hit each session once.
func SendSessionReminders() {
	log.Println("Running job: SendSessionReminders...")

	now := time.Now()
	lowerBound := now.Add(60 * time.Minute)
	upperBound := now.Add(65 * time.Minute)

	var upcoming []models.Session

	err := database.DB.
		Preload("Student").
		Preload("Tutor").
		Preload("Subject").
		Where("status = ? AND start_time BETWEEN ? AND ?", lifecycle.StatusConfirmed, lowerBound, upperBound).
		Find(&upcoming).Error

	if err != nil {
		log.Printf("Error checking for upcoming sessions: %v", err)
		return
	}

	if len(upcoming) == 0 {
		return
	}

	for _, session := range upcoming {
		log.Printf("Sending reminder for session ID: %s", session.ID)

		emailSubject := "Reminder: Your Session Starts in 1 Hour!"
		emailBody := fmt.Sprintf(
			"<h1>Session Reminder</h1><p>Hi there,</p><p>This is a friendly reminder that your %s session is scheduled to start in one hour at %s.</p>",
			session.Subject.Name,
			session.StartTime.Format(time.Kitchen),
		)

		go notifications.SendEmail(session.Student.FullName, session.Student.Email, emailSubject, emailBody)
		go notifications.SendEmail(session.Tutor.FullName, session.Tutor.Email, emailSubject, emailBody)
	}
}

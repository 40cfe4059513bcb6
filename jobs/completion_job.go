package jobs

import (
	"log"
	"time"

	"github.com/tutorbridge/volunteer_tutor/database"
	"github.com/tutorbridge/volunteer_tutor/lifecycle"
	"github.com/tutorbridge/volunteer_tutor/models"
	"github.com/tutorbridge/volunteer_tutor/services"
)

// completeOverdueAfter is how long past its end a confirmed session
// waits for the tutor before the automated check completes it.
const completeOverdueAfter = 24 * time.Hour

// CompleteOverdueSessions closes out confirmed sessions whose end time
// passed more than a day ago. It goes through the same transition path
// as a tutor-triggered completion, so hour crediting and recognition
// stay in one code path.
func CompleteOverdueSessions() {
	log.Println("Running job: CompleteOverdueSessions...")

	cutoff := time.Now().Add(-completeOverdueAfter)

	var overdue []models.Session
	err := database.DB.
		Where("status = ? AND start_time + (duration_hours * interval '1 hour') < ?", lifecycle.StatusConfirmed, cutoff).
		Find(&overdue).Error
	if err != nil {
		log.Printf("Error checking for overdue sessions: %v", err)
		return
	}

	if len(overdue) == 0 {
		return
	}

	svc := services.NewSessionService(database.DB, lifecycle.SystemClock())
	volunteers := services.NewVolunteerService(database.DB, services.NewCertificateService())

	completed := 0
	for _, session := range overdue {
		if _, err := svc.Transition(session.ID, session.TutorID, lifecycle.ActionComplete); err != nil {
			log.Printf("Could not auto-complete session %s: %v", session.ID, err)
			continue
		}
		volunteers.AwardRecognition(session.TutorID)
		completed++
	}

	log.Printf("Auto-completed %d overdue session(s).", completed)
}

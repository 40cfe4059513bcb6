package services

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tutorbridge/volunteer_tutor/lifecycle"
	"github.com/tutorbridge/volunteer_tutor/models"
)

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrTutorNotFound     = errors.New("tutor not found")
	ErrTutorNotVerified  = errors.New("this tutor is not verified yet")
	ErrSubjectNotOffered = errors.New("this tutor does not offer the selected subject")
	ErrStartInPast       = errors.New("you cannot book a session in the past")
	ErrBadDuration       = errors.New("duration must be between 0.5 and 3 hours in half-hour steps")
)

// SessionService owns the session lifecycle: booking, the transition
// state machine, the completion time gate and the volunteer hour
// credit. The clock is injected so the gate can be tested against a
// simulated now.
type SessionService struct {
	DB    *gorm.DB
	Clock lifecycle.Clock
}

func NewSessionService(db *gorm.DB, clock lifecycle.Clock) *SessionService {
	return &SessionService{DB: db, Clock: clock}
}

type BookSessionInput struct {
	StudentID     uuid.UUID
	TutorID       uuid.UUID
	SubjectID     uuid.UUID
	StartTime     time.Time
	DurationHours float64
	Notes         string
}

// Book creates a pending session against one of the tutor's advertised
// subjects.
func (s *SessionService) Book(in BookSessionInput) (*models.Session, error) {
	if in.DurationHours < 0.5 || in.DurationHours > 3 ||
		math.Mod(in.DurationHours*2, 1) != 0 {
		return nil, ErrBadDuration
	}
	if in.StartTime.Before(s.Clock.Now()) {
		return nil, ErrStartInPast
	}

	var session models.Session
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var profile models.TutorProfile
		if err := tx.First(&profile, "user_id = ?", in.TutorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTutorNotFound
			}
			return err
		}
		if !profile.IsVerified {
			return ErrTutorNotVerified
		}

		var offered int64
		if err := tx.Model(&models.TutorSubject{}).
			Where("tutor_profile_user_id = ? AND subject_id = ?", in.TutorID, in.SubjectID).
			Count(&offered).Error; err != nil {
			return err
		}
		if offered == 0 {
			return ErrSubjectNotOffered
		}

		session = models.Session{
			StudentID:     in.StudentID,
			TutorID:       in.TutorID,
			SubjectID:     in.SubjectID,
			StartTime:     in.StartTime,
			DurationHours: in.DurationHours,
			Status:        lifecycle.StatusPending,
			Notes:         in.Notes,
		}
		return tx.Create(&session).Error
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Transition applies one lifecycle action on behalf of an actor. The
// status change is written as a compare-and-set against the status the
// session was read with, so two concurrent requests can never both
// succeed; completing credits the tutor's volunteer hours in the same
// transaction.
func (s *SessionService) Transition(sessionID, actorID uuid.UUID, action lifecycle.Action) (*models.Session, error) {
	var session models.Session
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&session, "id = ?", sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSessionNotFound
			}
			return err
		}

		if err := lifecycle.Authorize(action, actorID, session.StudentID, session.TutorID); err != nil {
			return err
		}
		next, err := lifecycle.Next(session.Status, action)
		if err != nil {
			return err
		}
		if action == lifecycle.ActionComplete && !session.CanComplete(s.Clock.Now()) {
			return lifecycle.ErrNotYetCompletable
		}

		res := tx.Model(&models.Session{}).
			Where("id = ? AND status = ?", session.ID, session.Status).
			Update("status", next)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return lifecycle.ErrInvalidTransition
		}

		if next == lifecycle.StatusCompleted {
			if err := tx.Model(&models.TutorProfile{}).
				Where("user_id = ?", session.TutorID).
				Update("volunteer_hours_completed",
					gorm.Expr("volunteer_hours_completed + ?", session.DurationHours)).Error; err != nil {
				return err
			}
		}

		session.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// CompletionStatus describes the time gate for the polling endpoint.
type CompletionStatus struct {
	CanComplete     bool          `json:"can_complete"`
	TimeLeft        time.Duration `json:"-"`
	TimeLeftSeconds int           `json:"time_left_seconds"`
	SessionEndTime  time.Time     `json:"session_end_time"`
}

// CanComplete evaluates the gate for a session at the given instant.
// Pure with respect to now: no state is touched.
func (s *SessionService) CanComplete(sessionID uuid.UUID, now time.Time) (*CompletionStatus, error) {
	var session models.Session
	if err := s.DB.First(&session, "id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	left := session.TimeUntilCompletion(now)
	return &CompletionStatus{
		CanComplete:     session.CanComplete(now),
		TimeLeft:        left,
		TimeLeftSeconds: int(left.Seconds()),
		SessionEndTime:  session.EndTime(),
	}, nil
}

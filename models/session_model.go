package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tutorbridge/volunteer_tutor/lifecycle"
)

// Session is one booked tutoring engagement. Rows are never deleted;
// cancelled and completed sessions stay as the historical record that
// reviews and volunteer hours hang off.
type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StudentID uuid.UUID `gorm:"not null" json:"student_id"`
	TutorID   uuid.UUID `gorm:"not null" json:"tutor_id"`
	SubjectID uuid.UUID `gorm:"not null" json:"subject_id"`

	StartTime     time.Time        `gorm:"not null" json:"start_time"`
	DurationHours float64          `gorm:"type:numeric(3,1);not null;default:1.0" json:"duration_hours"`
	Status        lifecycle.Status `gorm:"size:10;not null;default:'pending'" json:"status"`
	Notes         string           `gorm:"type:text" json:"notes"`

	Student User    `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Tutor   User    `gorm:"foreignkey:TutorID" json:"tutor,omitempty"`
	Subject Subject `gorm:"foreignkey:SubjectID" json:"subject,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// EndTime is the scheduled end: start + duration.
func (s *Session) EndTime() time.Time {
	return s.StartTime.Add(time.Duration(s.DurationHours * float64(time.Hour)))
}

// CanComplete reports whether the completion time gate is open at the
// given instant. The gate opens exactly at the scheduled end.
func (s *Session) CanComplete(now time.Time) bool {
	return s.Status == lifecycle.StatusConfirmed && !now.Before(s.EndTime())
}

// TimeUntilCompletion is how long until the gate opens, zero once it
// has. Used by the completion-status polling endpoint.
func (s *Session) TimeUntilCompletion(now time.Time) time.Duration {
	left := s.EndTime().Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

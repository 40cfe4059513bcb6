package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is the student's one-per-session rating of the tutor. The
// unique session_id column enforces the one-to-one structurally.
type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SessionID uuid.UUID `gorm:"not null;unique" json:"session_id"`
	StudentID uuid.UUID `gorm:"not null" json:"student_id"`
	TutorID   uuid.UUID `gorm:"not null" json:"tutor_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`

	Session Session `gorm:"foreignkey:SessionID" json:"-"`
	Student User    `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Tutor   User    `gorm:"foreignkey:TutorID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

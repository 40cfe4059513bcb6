package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Certificate records a volunteer recognition certificate issued when
// a tutor crosses a recognition level threshold. One per level.
type Certificate struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TutorID        uuid.UUID `gorm:"not null;index:idx_tutor_level,unique" json:"tutor_id"`
	Level          string    `gorm:"size:50;not null;index:idx_tutor_level,unique" json:"level"`
	HoursAtIssue   float64   `gorm:"type:numeric(7,1);not null" json:"hours_at_issue"`
	IssuedAt       time.Time `gorm:"not null" json:"issued_at"`
	CertificateURL string    `gorm:"size:255" json:"certificate_url"`

	Tutor User `gorm:"foreignkey:TutorID" json:"-"`
}

func (c *Certificate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

package models

import "github.com/google/uuid"

type TutorSubject struct {
	TutorProfileUserID uuid.UUID `gorm:"type:uuid;primaryKey"`
	SubjectID          uuid.UUID `gorm:"type:uuid;primaryKey"`

	TutorProfile TutorProfile `gorm:"foreignKey:TutorProfileUserID"`
	Subject      Subject      `gorm:"foreignKey:SubjectID"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FullName string    `gorm:"size:255;not null" json:"full_name"`
	Email    string    `gorm:"size:255;not null;unique" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"size:20;not null;default:'student'" json:"role"`

	Birthday *time.Time `json:"birthday"`
	Phone    *string    `gorm:"size:15" json:"phone"`
	Bio      *string    `gorm:"type:text" json:"bio"`

	Location   *string `gorm:"size:100" json:"location"`
	School     *string `gorm:"size:200" json:"school"`
	GradeLevel *string `gorm:"size:50" json:"grade_level"`
	Interests  *string `gorm:"type:text" json:"interests"`

	IsProfilePublic bool `gorm:"default:true" json:"is_profile_public"`
	IsActive        bool `gorm:"default:true" json:"is_active"`

	Conversations []*Conversation `gorm:"many2many:conversation_participants;" json:"-"`

	ResetPasswordToken          *string    `gorm:"size:255;unique" json:"-"`
	ResetPasswordTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

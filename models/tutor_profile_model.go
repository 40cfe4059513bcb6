package models

import (
	"time"

	"github.com/google/uuid"
)

// TutorProfile holds the volunteer tutor's public profile plus two
// groups of derived fields: the rating aggregates, which are caches
// recomputed from the Review set (never hand-edited), and the
// volunteer hour counters, credited only by session completion.
type TutorProfile struct {
	UserID       uuid.UUID `gorm:"primary_key" json:"user_id"`
	Headline     *string   `gorm:"size:255" json:"headline"`
	Bio          *string   `gorm:"type:text" json:"bio"`
	Availability *string   `gorm:"type:text" json:"availability"`
	Education    *string   `gorm:"size:200" json:"education"`

	ExperienceLevel string `gorm:"size:20;default:'beginner'" json:"experience_level"`
	TeachingStyle   string `gorm:"size:20;default:'flexible'" json:"teaching_style"`
	Motivation      *string `gorm:"type:text" json:"motivation"`

	IsVerified   bool    `gorm:"default:false" json:"is_verified"`
	Rating       float64 `gorm:"type:numeric(3,2);default:0" json:"rating"`
	TotalReviews int     `gorm:"default:0" json:"total_reviews"`

	VolunteerHoursCompleted float64    `gorm:"type:numeric(7,1);default:0" json:"volunteer_hours_completed"`
	VolunteerHoursGoal      float64    `gorm:"type:numeric(5,1);default:10" json:"volunteer_hours_goal"`
	VolunteerStartDate      *time.Time `json:"volunteer_start_date"`

	Subjects []*Subject `gorm:"many2many:tutor_subjects;" json:"subjects"`
	User     User       `gorm:"foreignkey:UserID" json:"user"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// GoalCompletionRate is the percentage of the volunteer hour goal
// reached, capped at 100.
func (p *TutorProfile) GoalCompletionRate() float64 {
	if p.VolunteerHoursGoal <= 0 {
		return 0
	}
	rate := p.VolunteerHoursCompleted / p.VolunteerHoursGoal * 100
	if rate > 100 {
		return 100
	}
	return rate
}

package services

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tutorbridge/volunteer_tutor/models"
)

const levelNew = "New Volunteer"

// Recognition tiers by completed volunteer hours, highest first.
var recognitionLevels = []struct {
	Name      string
	Threshold float64
}{
	{"Master Volunteer", 100},
	{"Expert Volunteer", 50},
	{"Experienced Volunteer", 25},
	{"Active Volunteer", 10},
}

// LevelForHours maps completed hours to a recognition level name.
func LevelForHours(hours float64) string {
	for _, lvl := range recognitionLevels {
		if hours >= lvl.Threshold {
			return lvl.Name
		}
	}
	return levelNew
}

// NextThreshold returns the hours needed for the next level, or 0 when
// the tutor already holds the top level.
func NextThreshold(hours float64) float64 {
	next := 0.0
	for _, lvl := range recognitionLevels {
		if hours < lvl.Threshold {
			next = lvl.Threshold
		}
	}
	return next
}

type VolunteerStats struct {
	HoursCompleted     float64 `json:"hours_completed"`
	HoursGoal          float64 `json:"hours_goal"`
	GoalCompletionRate float64 `json:"goal_completion_rate"`
	Level              string  `json:"level"`
	NextLevelHours     float64 `json:"next_level_hours"`
	Rating             float64 `json:"rating"`
	TotalReviews       int     `json:"total_reviews"`
}

// VolunteerService reports volunteer progress and issues recognition
// certificates when a tutor crosses a level threshold.
type VolunteerService struct {
	DB    *gorm.DB
	Certs *CertificateService
}

func NewVolunteerService(db *gorm.DB, certs *CertificateService) *VolunteerService {
	return &VolunteerService{DB: db, Certs: certs}
}

func (s *VolunteerService) Stats(tutorID uuid.UUID) (*VolunteerStats, error) {
	var profile models.TutorProfile
	if err := s.DB.First(&profile, "user_id = ?", tutorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTutorNotFound
		}
		return nil, err
	}

	return &VolunteerStats{
		HoursCompleted:     profile.VolunteerHoursCompleted,
		HoursGoal:          profile.VolunteerHoursGoal,
		GoalCompletionRate: profile.GoalCompletionRate(),
		Level:              LevelForHours(profile.VolunteerHoursCompleted),
		NextLevelHours:     NextThreshold(profile.VolunteerHoursCompleted),
		Rating:             profile.Rating,
		TotalReviews:       profile.TotalReviews,
	}, nil
}

// AwardRecognition issues a certificate for the tutor's current level
// if one hasn't been issued yet. Called after each session completion;
// safe to call repeatedly.
func (s *VolunteerService) AwardRecognition(tutorID uuid.UUID) {
	var profile models.TutorProfile
	if err := s.DB.Preload("User").First(&profile, "user_id = ?", tutorID).Error; err != nil {
		log.Printf("🔥 Failed to load tutor profile %s for recognition: %v", tutorID, err)
		return
	}

	level := LevelForHours(profile.VolunteerHoursCompleted)
	if level == levelNew {
		return
	}

	var existing models.Certificate
	if err := s.DB.Where("tutor_id = ? AND level = ?", tutorID, level).First(&existing).Error; err == nil {
		return
	}

	certURL := ""
	if s.Certs != nil {
		url, err := s.Certs.Generate(profile.User.FullName, level, profile.VolunteerHoursCompleted, tutorID)
		if err != nil {
			log.Printf("🔥 Failed to generate certificate for tutor %s: %v", tutorID, err)
		} else {
			certURL = url
		}
	}

	cert := models.Certificate{
		TutorID:        tutorID,
		Level:          level,
		HoursAtIssue:   profile.VolunteerHoursCompleted,
		IssuedAt:       time.Now(),
		CertificateURL: certURL,
	}
	if err := s.DB.Create(&cert).Error; err != nil {
		log.Printf("🔥 Failed to record certificate for tutor %s: %v", tutorID, err)
		return
	}
	log.Printf("✅ Issued '%s' certificate to tutor %s.", level, tutorID)
}

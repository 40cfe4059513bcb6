package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tutorbridge/volunteer_tutor/models"
)

// fakeClock lets the tests move "now" across the completion gate.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.TutorProfile{},
		&models.Subject{},
		&models.TutorSubject{},
		&models.Session{},
		&models.Review{},
		&models.Certificate{},
		&models.Conversation{},
		&models.Message{},
	)
	require.NoError(t, err)

	return db
}

func createUser(t *testing.T, db *gorm.DB, name, role string) models.User {
	t.Helper()

	user := models.User{
		FullName: name,
		Email:    uuid.NewString() + "@example.com",
		Password: "hashed",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// createVerifiedTutor sets up a tutor user with a verified profile
// offering one subject, and returns the user and the subject.
func createVerifiedTutor(t *testing.T, db *gorm.DB) (models.User, models.Subject) {
	t.Helper()

	tutor := createUser(t, db, "Tutor Tester", "tutor")

	profile := models.TutorProfile{
		UserID:             tutor.ID,
		IsVerified:         true,
		VolunteerHoursGoal: 10,
	}
	require.NoError(t, db.Create(&profile).Error)

	subject := models.Subject{Name: "Mathematics " + uuid.NewString(), Category: "Academic"}
	require.NoError(t, db.Create(&subject).Error)
	require.NoError(t, db.Create(&models.TutorSubject{
		TutorProfileUserID: tutor.ID,
		SubjectID:          subject.ID,
	}).Error)

	return tutor, subject
}

func tutorHours(t *testing.T, db *gorm.DB, tutorID uuid.UUID) float64 {
	t.Helper()

	var profile models.TutorProfile
	require.NoError(t, db.First(&profile, "user_id = ?", tutorID).Error)
	return profile.VolunteerHoursCompleted
}

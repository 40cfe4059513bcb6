package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorbridge/volunteer_tutor/models"
)

func TestLevelForHours(t *testing.T) {
	cases := []struct {
		hours float64
		want  string
	}{
		{0, "New Volunteer"},
		{9.5, "New Volunteer"},
		{10, "Active Volunteer"},
		{24.5, "Active Volunteer"},
		{25, "Experienced Volunteer"},
		{50, "Expert Volunteer"},
		{99.5, "Expert Volunteer"},
		{100, "Master Volunteer"},
		{500, "Master Volunteer"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, LevelForHours(tc.hours), "hours=%v", tc.hours)
	}
}

func TestNextThreshold(t *testing.T) {
	assert.Equal(t, 10.0, NextThreshold(0))
	assert.Equal(t, 25.0, NextThreshold(10))
	assert.Equal(t, 50.0, NextThreshold(30))
	assert.Equal(t, 100.0, NextThreshold(50))
	assert.Zero(t, NextThreshold(100), "top level has no next threshold")
}

func TestVolunteerStats(t *testing.T) {
	db := setupTestDB(t)
	svc := NewVolunteerService(db, nil)
	tutor, _ := createVerifiedTutor(t, db)

	require.NoError(t, db.Model(&models.TutorProfile{}).
		Where("user_id = ?", tutor.ID).
		Updates(map[string]interface{}{
			"volunteer_hours_completed": 12.5,
			"volunteer_hours_goal":      50.0,
			"rating":                    4.33,
			"total_reviews":             3,
		}).Error)

	stats, err := svc.Stats(tutor.ID)
	require.NoError(t, err)
	assert.Equal(t, 12.5, stats.HoursCompleted)
	assert.Equal(t, 50.0, stats.HoursGoal)
	assert.InDelta(t, 25.0, stats.GoalCompletionRate, 0.001)
	assert.Equal(t, "Active Volunteer", stats.Level)
	assert.Equal(t, 25.0, stats.NextLevelHours)
	assert.Equal(t, 4.33, stats.Rating)
	assert.Equal(t, 3, stats.TotalReviews)
}

func TestAwardRecognitionIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewVolunteerService(db, nil)
	tutor, _ := createVerifiedTutor(t, db)

	// Below the first threshold nothing is issued.
	svc.AwardRecognition(tutor.ID)
	var count int64
	require.NoError(t, db.Model(&models.Certificate{}).Where("tutor_id = ?", tutor.ID).Count(&count).Error)
	assert.Zero(t, count)

	require.NoError(t, db.Model(&models.TutorProfile{}).
		Where("user_id = ?", tutor.ID).
		Update("volunteer_hours_completed", 11.0).Error)

	svc.AwardRecognition(tutor.ID)
	svc.AwardRecognition(tutor.ID)

	var certs []models.Certificate
	require.NoError(t, db.Where("tutor_id = ?", tutor.ID).Find(&certs).Error)
	require.Len(t, certs, 1, "repeat calls never issue a second certificate for the same level")
	assert.Equal(t, "Active Volunteer", certs[0].Level)
	assert.Equal(t, 11.0, certs[0].HoursAtIssue)

	// Crossing the next threshold issues the next level alongside.
	require.NoError(t, db.Model(&models.TutorProfile{}).
		Where("user_id = ?", tutor.ID).
		Update("volunteer_hours_completed", 26.0).Error)

	svc.AwardRecognition(tutor.ID)
	require.NoError(t, db.Model(&models.Certificate{}).Where("tutor_id = ?", tutor.ID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

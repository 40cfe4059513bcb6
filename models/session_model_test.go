package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tutorbridge/volunteer_tutor/lifecycle"
)

func TestSessionEndTime(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	session := Session{StartTime: start, DurationHours: 1.5}

	assert.Equal(t, time.Date(2024, 1, 1, 11, 30, 0, 0, time.UTC), session.EndTime())
}

func TestSessionCanComplete(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	session := Session{
		StartTime:     start,
		DurationHours: 1.5,
		Status:        lifecycle.StatusConfirmed,
	}

	assert.False(t, session.CanComplete(start.Add(30*time.Minute)), "mid-session")
	assert.False(t, session.CanComplete(start.Add(60*time.Minute)), "before scheduled end")
	assert.True(t, session.CanComplete(start.Add(90*time.Minute)), "gate opens exactly at the end")
	assert.True(t, session.CanComplete(start.Add(24*time.Hour)))

	// The gate only applies to confirmed sessions.
	session.Status = lifecycle.StatusPending
	assert.False(t, session.CanComplete(start.Add(24*time.Hour)))

	session.Status = lifecycle.StatusCompleted
	assert.False(t, session.CanComplete(start.Add(24*time.Hour)))
}

func TestSessionTimeUntilCompletion(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	session := Session{StartTime: start, DurationHours: 1.5}

	assert.Equal(t, 30*time.Minute, session.TimeUntilCompletion(start.Add(time.Hour)))
	assert.Equal(t, time.Duration(0), session.TimeUntilCompletion(start.Add(90*time.Minute)))
	assert.Equal(t, time.Duration(0), session.TimeUntilCompletion(start.Add(3*time.Hour)))
}

func TestGoalCompletionRate(t *testing.T) {
	profile := TutorProfile{VolunteerHoursCompleted: 5, VolunteerHoursGoal: 10}
	assert.InDelta(t, 50.0, profile.GoalCompletionRate(), 0.001)

	profile.VolunteerHoursCompleted = 25
	assert.InDelta(t, 100.0, profile.GoalCompletionRate(), 0.001, "capped at 100")

	profile.VolunteerHoursGoal = 0
	assert.Zero(t, profile.GoalCompletionRate())
}

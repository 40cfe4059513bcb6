package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorbridge/volunteer_tutor/lifecycle"
	"github.com/tutorbridge/volunteer_tutor/models"
)

var testNow = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func newTestSessionService(t *testing.T) (*SessionService, *fakeClock) {
	t.Helper()

	clock := &fakeClock{now: testNow}
	return NewSessionService(setupTestDB(t), clock), clock
}

func bookTestSession(t *testing.T, svc *SessionService, studentID, tutorID, subjectID uuid.UUID, start time.Time, duration float64) *models.Session {
	t.Helper()

	session, err := svc.Book(BookSessionInput{
		StudentID:     studentID,
		TutorID:       tutorID,
		SubjectID:     subjectID,
		StartTime:     start,
		DurationHours: duration,
	})
	require.NoError(t, err)
	return session
}

func TestBookSession(t *testing.T) {
	svc, _ := newTestSessionService(t)
	student := createUser(t, svc.DB, "Student", "student")
	tutor, subject := createVerifiedTutor(t, svc.DB)

	session := bookTestSession(t, svc, student.ID, tutor.ID, subject.ID, testNow.Add(time.Hour), 1.5)

	assert.Equal(t, lifecycle.StatusPending, session.Status)
	assert.Equal(t, 1.5, session.DurationHours)
	assert.NotEqual(t, uuid.Nil, session.ID)
}

func TestBookSessionValidation(t *testing.T) {
	svc, _ := newTestSessionService(t)
	student := createUser(t, svc.DB, "Student", "student")
	tutor, subject := createVerifiedTutor(t, svc.DB)
	start := testNow.Add(time.Hour)

	cases := []struct {
		name    string
		in      BookSessionInput
		wantErr error
	}{
		{
			name:    "start in the past",
			in:      BookSessionInput{StudentID: student.ID, TutorID: tutor.ID, SubjectID: subject.ID, StartTime: testNow.Add(-time.Hour), DurationHours: 1},
			wantErr: ErrStartInPast,
		},
		{
			name:    "duration too short",
			in:      BookSessionInput{StudentID: student.ID, TutorID: tutor.ID, SubjectID: subject.ID, StartTime: start, DurationHours: 0.25},
			wantErr: ErrBadDuration,
		},
		{
			name:    "duration too long",
			in:      BookSessionInput{StudentID: student.ID, TutorID: tutor.ID, SubjectID: subject.ID, StartTime: start, DurationHours: 3.5},
			wantErr: ErrBadDuration,
		},
		{
			name:    "duration off the half-hour grid",
			in:      BookSessionInput{StudentID: student.ID, TutorID: tutor.ID, SubjectID: subject.ID, StartTime: start, DurationHours: 1.2},
			wantErr: ErrBadDuration,
		},
		{
			name:    "unknown tutor",
			in:      BookSessionInput{StudentID: student.ID, TutorID: uuid.New(), SubjectID: subject.ID, StartTime: start, DurationHours: 1},
			wantErr: ErrTutorNotFound,
		},
		{
			name:    "subject not offered",
			in:      BookSessionInput{StudentID: student.ID, TutorID: tutor.ID, SubjectID: uuid.New(), StartTime: start, DurationHours: 1},
			wantErr: ErrSubjectNotOffered,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Book(tc.in)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestBookSessionUnverifiedTutor(t *testing.T) {
	svc, _ := newTestSessionService(t)
	student := createUser(t, svc.DB, "Student", "student")
	tutor := createUser(t, svc.DB, "Unverified", "tutor")
	require.NoError(t, svc.DB.Create(&models.TutorProfile{UserID: tutor.ID}).Error)

	_, err := svc.Book(BookSessionInput{
		StudentID:     student.ID,
		TutorID:       tutor.ID,
		SubjectID:     uuid.New(),
		StartTime:     testNow.Add(time.Hour),
		DurationHours: 1,
	})
	assert.ErrorIs(t, err, ErrTutorNotVerified)
}

func TestTransitionAcceptRejectCancel(t *testing.T) {
	svc, _ := newTestSessionService(t)
	student := createUser(t, svc.DB, "Student", "student")
	tutor, subject := createVerifiedTutor(t, svc.DB)
	start := testNow.Add(time.Hour)

	// Tutor accepts a pending session.
	session := bookTestSession(t, svc, student.ID, tutor.ID, subject.ID, start, 1)
	updated, err := svc.Transition(session.ID, tutor.ID, lifecycle.ActionAccept)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusConfirmed, updated.Status)

	// Student cannot accept.
	session = bookTestSession(t, svc, student.ID, tutor.ID, subject.ID, start, 1)
	_, err = svc.Transition(session.ID, student.ID, lifecycle.ActionAccept)
	assert.ErrorIs(t, err, lifecycle.ErrTutorOnly)

	// Tutor rejects.
	_, err = svc.Transition(session.ID, tutor.ID, lifecycle.ActionReject)
	require.NoError(t, err)

	// A cancelled session can't be accepted afterwards.
	_, err = svc.Transition(session.ID, tutor.ID, lifecycle.ActionAccept)
	assert.ErrorIs(t, err, lifecycle.ErrInvalidTransition)

	// Student cancels a confirmed session.
	session = bookTestSession(t, svc, student.ID, tutor.ID, subject.ID, start, 1)
	_, err = svc.Transition(session.ID, tutor.ID, lifecycle.ActionAccept)
	require.NoError(t, err)
	updated, err = svc.Transition(session.ID, student.ID, lifecycle.ActionCancel)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusCancelled, updated.Status)
}

func TestTransitionNonParticipant(t *testing.T) {
	svc, _ := newTestSessionService(t)
	student := createUser(t, svc.DB, "Student", "student")
	stranger := createUser(t, svc.DB, "Stranger", "student")
	tutor, subject := createVerifiedTutor(t, svc.DB)

	session := bookTestSession(t, svc, student.ID, tutor.ID, subject.ID, testNow.Add(time.Hour), 1)

	_, err := svc.Transition(session.ID, stranger.ID, lifecycle.ActionCancel)
	assert.ErrorIs(t, err, lifecycle.ErrNotParticipant)

	_, err = svc.Transition(uuid.New(), student.ID, lifecycle.ActionCancel)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestCompleteRespectsTimeGate(t *testing.T) {
	svc, clock := newTestSessionService(t)
	student := createUser(t, svc.DB, "Student", "student")
	tutor, subject := createVerifiedTutor(t, svc.DB)

	// 10:00 start, 1.5h duration: the gate opens at 11:30.
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	session := bookTestSession(t, svc, student.ID, tutor.ID, subject.ID, start, 1.5)
	_, err := svc.Transition(session.ID, tutor.ID, lifecycle.ActionAccept)
	require.NoError(t, err)

	clock.now = time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC)
	_, err = svc.Transition(session.ID, tutor.ID, lifecycle.ActionComplete)
	assert.ErrorIs(t, err, lifecycle.ErrNotYetCompletable)
	assert.Zero(t, tutorHours(t, svc.DB, tutor.ID), "no hours credited on a refused completion")

	clock.now = time.Date(2024, 1, 1, 11, 30, 0, 0, time.UTC)
	updated, err := svc.Transition(session.ID, tutor.ID, lifecycle.ActionComplete)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusCompleted, updated.Status)
	assert.Equal(t, 1.5, tutorHours(t, svc.DB, tutor.ID))
}

func TestCompleteCreditsHoursExactlyOnce(t *testing.T) {
	svc, clock := newTestSessionService(t)
	student := createUser(t, svc.DB, "Student", "student")
	tutor, subject := createVerifiedTutor(t, svc.DB)

	session := bookTestSession(t, svc, student.ID, tutor.ID, subject.ID, testNow.Add(time.Hour), 2)
	_, err := svc.Transition(session.ID, tutor.ID, lifecycle.ActionAccept)
	require.NoError(t, err)

	clock.now = testNow.Add(4 * time.Hour)
	_, err = svc.Transition(session.ID, tutor.ID, lifecycle.ActionComplete)
	require.NoError(t, err)

	// A second complete on the same session fails and credits nothing.
	_, err = svc.Transition(session.ID, tutor.ID, lifecycle.ActionComplete)
	assert.ErrorIs(t, err, lifecycle.ErrInvalidTransition)
	assert.Equal(t, 2.0, tutorHours(t, svc.DB, tutor.ID))
}

func TestCompleteOnlyByTutor(t *testing.T) {
	svc, clock := newTestSessionService(t)
	student := createUser(t, svc.DB, "Student", "student")
	tutor, subject := createVerifiedTutor(t, svc.DB)

	session := bookTestSession(t, svc, student.ID, tutor.ID, subject.ID, testNow.Add(time.Hour), 1)
	_, err := svc.Transition(session.ID, tutor.ID, lifecycle.ActionAccept)
	require.NoError(t, err)

	clock.now = testNow.Add(3 * time.Hour)
	_, err = svc.Transition(session.ID, student.ID, lifecycle.ActionComplete)
	assert.ErrorIs(t, err, lifecycle.ErrTutorOnly)
	assert.Zero(t, tutorHours(t, svc.DB, tutor.ID))
}

func TestCanCompleteStatus(t *testing.T) {
	svc, clock := newTestSessionService(t)
	student := createUser(t, svc.DB, "Student", "student")
	tutor, subject := createVerifiedTutor(t, svc.DB)

	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	session := bookTestSession(t, svc, student.ID, tutor.ID, subject.ID, start, 1.5)
	_, err := svc.Transition(session.ID, tutor.ID, lifecycle.ActionAccept)
	require.NoError(t, err)

	status, err := svc.CanComplete(session.ID, time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, status.CanComplete)
	assert.Equal(t, 30*60, status.TimeLeftSeconds)
	assert.Equal(t, time.Date(2024, 1, 1, 11, 30, 0, 0, time.UTC), status.SessionEndTime.UTC())

	status, err = svc.CanComplete(session.ID, time.Date(2024, 1, 1, 11, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, status.CanComplete)
	assert.Zero(t, status.TimeLeftSeconds)

	// Checking the gate never mutates the session.
	var stored models.Session
	require.NoError(t, svc.DB.First(&stored, "id = ?", session.ID).Error)
	assert.Equal(t, lifecycle.StatusConfirmed, stored.Status)

	_, err = svc.CanComplete(uuid.New(), clock.Now())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

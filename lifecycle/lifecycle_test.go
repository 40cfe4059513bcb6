package lifecycle

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextLegalEdges(t *testing.T) {
	cases := []struct {
		from   Status
		action Action
		want   Status
	}{
		{StatusPending, ActionAccept, StatusConfirmed},
		{StatusPending, ActionReject, StatusCancelled},
		{StatusPending, ActionCancel, StatusCancelled},
		{StatusConfirmed, ActionCancel, StatusCancelled},
		{StatusConfirmed, ActionComplete, StatusCompleted},
	}

	for _, tc := range cases {
		got, err := Next(tc.from, tc.action)
		require.NoError(t, err, "%s + %s", tc.from, tc.action)
		assert.Equal(t, tc.want, got)
	}
}

func TestNextIllegalEdges(t *testing.T) {
	cases := []struct {
		from   Status
		action Action
	}{
		{StatusPending, ActionComplete},
		{StatusConfirmed, ActionAccept},
		{StatusConfirmed, ActionReject},
		{StatusCompleted, ActionAccept},
		{StatusCompleted, ActionReject},
		{StatusCompleted, ActionCancel},
		{StatusCompleted, ActionComplete},
		{StatusCancelled, ActionAccept},
		{StatusCancelled, ActionReject},
		{StatusCancelled, ActionCancel},
		{StatusCancelled, ActionComplete},
	}

	for _, tc := range cases {
		_, err := Next(tc.from, tc.action)
		assert.ErrorIs(t, err, ErrInvalidTransition, "%s + %s", tc.from, tc.action)
	}
}

func TestTerminalStatesHaveNoOutgoingEdges(t *testing.T) {
	for e := range transitions {
		assert.NotEqual(t, StatusCompleted, e.From)
		assert.NotEqual(t, StatusCancelled, e.From)
	}
}

func TestParseAction(t *testing.T) {
	for _, raw := range []string{"accept", "reject", "cancel", "complete"} {
		action, err := ParseAction(raw)
		require.NoError(t, err)
		assert.Equal(t, Action(raw), action)
	}

	for _, raw := range []string{"", "Accept", "approve", "done", "delete"} {
		_, err := ParseAction(raw)
		assert.ErrorIs(t, err, ErrUnknownAction, "raw=%q", raw)
	}
}

func TestAuthorize(t *testing.T) {
	student := uuid.New()
	tutor := uuid.New()
	stranger := uuid.New()

	// Tutor may do everything.
	for _, action := range []Action{ActionAccept, ActionReject, ActionCancel, ActionComplete} {
		assert.NoError(t, Authorize(action, tutor, student, tutor))
	}

	// Student may only cancel.
	assert.NoError(t, Authorize(ActionCancel, student, student, tutor))
	for _, action := range []Action{ActionAccept, ActionReject, ActionComplete} {
		assert.ErrorIs(t, Authorize(action, student, student, tutor), ErrTutorOnly)
	}

	// Non-participants get nothing, not even cancel.
	for _, action := range []Action{ActionAccept, ActionReject, ActionCancel, ActionComplete} {
		assert.ErrorIs(t, Authorize(action, stranger, student, tutor), ErrNotParticipant)
	}
}

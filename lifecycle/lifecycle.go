package lifecycle

import (
	"errors"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a tutoring session. A session only
// ever moves along the edges in the transition table below; completed
// and cancelled are terminal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Action is a request to move a session to its next state.
type Action string

const (
	ActionAccept   Action = "accept"
	ActionReject   Action = "reject"
	ActionCancel   Action = "cancel"
	ActionComplete Action = "complete"
)

var (
	ErrUnknownAction     = errors.New("unknown session action")
	ErrInvalidTransition = errors.New("action is not allowed in the session's current status")
	ErrNotParticipant    = errors.New("you are not a participant in this session")
	ErrTutorOnly         = errors.New("only the tutor can perform this action")
	ErrNotYetCompletable = errors.New("session hasn't finished yet")
)

type edge struct {
	From   Status
	Action Action
}

var transitions = map[edge]Status{
	{StatusPending, ActionAccept}:     StatusConfirmed,
	{StatusPending, ActionReject}:     StatusCancelled,
	{StatusPending, ActionCancel}:     StatusCancelled,
	{StatusConfirmed, ActionCancel}:   StatusCancelled,
	{StatusConfirmed, ActionComplete}: StatusCompleted,
}

// tutor-only actions; cancel is open to either participant.
var tutorActions = map[Action]bool{
	ActionAccept:   true,
	ActionReject:   true,
	ActionComplete: true,
}

// ParseAction validates a raw action string from a route parameter.
func ParseAction(raw string) (Action, error) {
	switch Action(raw) {
	case ActionAccept, ActionReject, ActionCancel, ActionComplete:
		return Action(raw), nil
	}
	return "", ErrUnknownAction
}

// Next returns the status a session moves to when action is applied,
// or ErrInvalidTransition when no such edge exists.
func Next(from Status, action Action) (Status, error) {
	to, ok := transitions[edge{from, action}]
	if !ok {
		return from, ErrInvalidTransition
	}
	return to, nil
}

// Authorize checks that the actor may request the action on a session
// between studentID and tutorID.
func Authorize(action Action, actorID, studentID, tutorID uuid.UUID) error {
	if actorID != studentID && actorID != tutorID {
		return ErrNotParticipant
	}
	if tutorActions[action] && actorID != tutorID {
		return ErrTutorOnly
	}
	return nil
}

package domain

import (
	"context"
	"errors"
	"time"
)

// ErrAlreadyParticipant is returned when adding a user who already participates in the event.
var ErrAlreadyParticipant = errors.New("already a participant")

// ErrNotParticipant is returned when an operation requires the actor to be a participant and they are not.
var ErrNotParticipant = errors.New("not a participant")

// ErrInvalidInput is returned when the request is invalid.
var ErrInvalidInput = errors.New("invalid input")

// Participant is the membership fact that a user belongs to an event's participant set.
// The (event_id, user_id) pair is unique, enforced by the store.
type Participant struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// EventParticipant is a participant row joined with the user's display fields.
// swagger:model EventParticipant
type EventParticipant struct {
	EventID  string `json:"event_id"`
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	LastName string `json:"last_name"`
	Email    string `json:"email"`
}

// ParticipantRepository defines the interface for participant storage.
type ParticipantRepository interface {
	Add(ctx context.Context, eventID, userID string) error
	Exists(ctx context.Context, eventID, userID string) (bool, error)
	Remove(ctx context.Context, eventID, userID string) error
	ListByEventID(ctx context.Context, eventID string, params PaginationParams) ([]*EventParticipant, int, error)
	DeleteAllByEventID(ctx context.Context, eventID string) error
	DeleteAllByUserID(ctx context.Context, userID string) error
}

// ParticipantService maintains the membership invariant: every event always has the
// organizer among its participants, and no (event, user) pair appears twice.
type ParticipantService interface {
	// Join adds the user to the event. Fails with ErrAlreadyParticipant if the pair
	// exists, ErrNotFound if the event is missing, ErrUserNotFound if the user is.
	Join(ctx context.Context, eventID, userID string) error
	// Leave removes targetUserID from the event. The actor must be the organizer or
	// the target themselves; the organizer cannot remove their own membership.
	Leave(ctx context.Context, eventID, targetUserID, actorID string) error
	IsParticipant(ctx context.Context, eventID, userID string) (bool, error)
	ListParticipants(ctx context.Context, eventID string, params PaginationParams) ([]*EventParticipant, int, error)
	// RemoveAll bulk-deletes every participant of the event. Cascade use only; it
	// performs no permission check of its own.
	RemoveAll(ctx context.Context, eventID string) error
}

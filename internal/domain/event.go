package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors shared across event operations.
var (
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("forbidden")
	ErrDuplicateTitle = errors.New("event title already in use")
	ErrEmptyList      = errors.New("empty result")
)

// Event represents a planned event. The organizer is set at creation and never changes.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Date        time.Time `json:"date"`
	OrganizerID string    `json:"organizer_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(title, description, location, organizerID string, date time.Time, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Title:       title,
		Description: description,
		Location:    location,
		Date:        date,
		OrganizerID: organizerID,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetByTitle(ctx context.Context, title string) (*Event, error)
	List(ctx context.Context, params PaginationParams) ([]*Event, int, error)
	ListByParticipantID(ctx context.Context, userID string, params PaginationParams) ([]*Event, int, error)
	CountByOrganizerID(ctx context.Context, userID string) (int, error)
	Update(ctx context.Context, eventID string, title, description, location *string, date *time.Time) (*Event, error)
	Delete(ctx context.Context, id string) error
}

// EventService defines the event lifecycle: creation (the organizer becomes the first
// participant in the same transaction), lookups, organizer-only updates, and the
// cascading delete that removes participants, invitations, photos, and photo files
// as one unit.
type EventService interface {
	Create(ctx context.Context, organizerID, title, description, location string, date time.Time) (*Event, error)
	GetByID(ctx context.Context, eventID string) (*Event, error)
	GetByTitle(ctx context.Context, title string) (*Event, error)
	List(ctx context.Context, params PaginationParams) ([]*Event, int, error)
	ListByParticipant(ctx context.Context, userID string, params PaginationParams) ([]*Event, int, error)
	Update(ctx context.Context, eventID, actorID string, title, description, location *string, date *time.Time) (*Event, error)
	Delete(ctx context.Context, eventID, actorID string) error
}

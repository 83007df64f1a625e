package domain

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrStorageIO is returned when a filesystem operation fails during photo handling.
// It aborts the surrounding transaction so the database and filesystem never diverge.
var ErrStorageIO = errors.New("storage i/o failure")

// Photo is the bookkeeping record for an uploaded event photo. The bytes live in the
// file area under the event's directory; the record only tracks the path.
// swagger:model Photo
type Photo struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
}

// PhotoRepository defines storage operations for photo metadata.
type PhotoRepository interface {
	Create(ctx context.Context, photo *Photo) error
	GetByID(ctx context.Context, id string) (*Photo, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Photo, error)
	Delete(ctx context.Context, id string) error
	DeleteAllByEventID(ctx context.Context, eventID string) error
}

// FileStore is the blob/file area holding uploaded photo bytes. Each event owns one
// directory; deleting an event removes the whole directory.
type FileStore interface {
	PathFor(eventID, fileName string) string
	FileExists(path string) (bool, error)
	WriteFile(eventID, fileName string, r io.Reader) (string, error)
	DeleteFile(path string) error
	DeleteEventDir(eventID string) error
}

// PhotoService manages photo bookkeeping. The byte transfer itself happens at the
// HTTP boundary; Attach records an already-stored file.
type PhotoService interface {
	Attach(ctx context.Context, eventID, actorID, fileName string) (*Photo, error)
	ListByEvent(ctx context.Context, eventID string) ([]*Photo, error)
	Delete(ctx context.Context, photoID, actorID string) error
}

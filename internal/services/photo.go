package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventplanner/internal/domain"
)

type photoService struct {
	photoRepo      domain.PhotoRepository
	eventRepo      domain.EventRepository
	files          domain.FileStore
	tx             domain.Transactor
	contextTimeout time.Duration
}

func NewPhotoService(photoRepo domain.PhotoRepository,
	eventRepo domain.EventRepository,
	files domain.FileStore,
	tx domain.Transactor,
	timeout time.Duration,
) domain.PhotoService {
	return &photoService{
		photoRepo:      photoRepo,
		eventRepo:      eventRepo,
		files:          files,
		tx:             tx,
		contextTimeout: timeout,
	}
}

// Attach records a photo whose bytes were already written under the event's
// directory by the upload handler.
func (s *photoService) Attach(ctx context.Context, eventID, actorID, fileName string) (*domain.Photo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !domain.CanManagePhotos(event, actorID) {
		return nil, domain.ErrForbidden
	}

	path := s.files.PathFor(eventID, fileName)
	exists, err := s.files.FileExists(path)
	if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %v", domain.ErrStorageIO, path, err)
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	photo := &domain.Photo{
		EventID:   eventID,
		Path:      path,
		CreatedAt: time.Now(),
	}
	if err := s.photoRepo.Create(ctx, photo); err != nil {
		return nil, fmt.Errorf("create photo: %w", err)
	}
	return photo, nil
}

func (s *photoService) ListByEvent(ctx context.Context, eventID string) ([]*domain.Photo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	photos, err := s.photoRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	if photos == nil {
		photos = []*domain.Photo{}
	}
	return photos, nil
}

func (s *photoService) Delete(ctx context.Context, photoID, actorID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get photo: %w", err)
	}
	event, err := s.eventRepo.GetByID(ctx, photo.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if !domain.CanManagePhotos(event, actorID) {
		return domain.ErrForbidden
	}

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.files.DeleteFile(photo.Path); err != nil {
			return fmt.Errorf("%w: delete %s: %v", domain.ErrStorageIO, photo.Path, err)
		}
		if err := s.photoRepo.Delete(ctx, photoID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("delete photo: %w", err)
		}
		return nil
	})
}

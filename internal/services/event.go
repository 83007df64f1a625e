package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventplanner/internal/domain"
)

type eventService struct {
	eventRepo       domain.EventRepository
	participantRepo domain.ParticipantRepository
	participants    domain.ParticipantService
	invitationRepo  domain.InvitationRepository
	photoRepo       domain.PhotoRepository
	userRepo        domain.UserRepository
	files           domain.FileStore
	tx              domain.Transactor
	contextTimeout  time.Duration
}

func NewEventService(eventRepo domain.EventRepository,
	participantRepo domain.ParticipantRepository,
	participants domain.ParticipantService,
	invitationRepo domain.InvitationRepository,
	photoRepo domain.PhotoRepository,
	userRepo domain.UserRepository,
	files domain.FileStore,
	tx domain.Transactor,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		participants:    participants,
		invitationRepo:  invitationRepo,
		photoRepo:       photoRepo,
		userRepo:        userRepo,
		files:           files,
		tx:              tx,
		contextTimeout:  timeout,
	}
}

func (s *eventService) Create(ctx context.Context, organizerID, title, description, location string, date time.Time) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.ErrInvalidInput
	}
	exists, err := s.userRepo.Exists(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("check organizer: %w", err)
	}
	if !exists {
		return nil, domain.ErrUserNotFound
	}

	now := time.Now()
	event := domain.NewEvent(title, description, location, organizerID, date, now, now)

	// Event insert and organizer membership are one unit: if the membership step
	// fails, the event must not be observable afterward.
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.eventRepo.Create(ctx, event); err != nil {
			if errors.Is(err, domain.ErrDuplicateTitle) {
				return domain.ErrDuplicateTitle
			}
			return fmt.Errorf("create event: %w", err)
		}
		if err := s.participantRepo.Add(ctx, event.ID, organizerID); err != nil {
			return fmt.Errorf("add organizer participant: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) GetByID(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetByTitle(ctx context.Context, title string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event by title: %w", err)
	}
	return event, nil
}

func (s *eventService) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, total, err := s.eventRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	if total == 0 {
		return nil, 0, domain.ErrEmptyList
	}
	return events, total, nil
}

func (s *eventService) ListByParticipant(ctx context.Context, userID string, params domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, total, err := s.eventRepo.ListByParticipantID(ctx, userID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events by participant: %w", err)
	}
	if total == 0 {
		return nil, 0, domain.ErrEmptyList
	}
	return events, total, nil
}

func (s *eventService) Update(ctx context.Context, eventID, actorID string, title, description, location *string, date *time.Time) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !domain.CanModifyEvent(event, actorID) {
		return nil, domain.ErrForbidden
	}
	if title != nil && strings.TrimSpace(*title) == "" {
		return nil, domain.ErrInvalidInput
	}
	updated, err := s.eventRepo.Update(ctx, eventID, title, description, location, date)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		if errors.Is(err, domain.ErrDuplicateTitle) {
			return nil, domain.ErrDuplicateTitle
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func (s *eventService) Delete(ctx context.Context, eventID, actorID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if !domain.CanModifyEvent(event, actorID) {
		return domain.ErrForbidden
	}

	// Cascade order: photo files, photo rows, participants, invitations, and the
	// event row last, since everything above references it. A file removal failure
	// aborts the whole transaction so filesystem and database stay in step.
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.files.DeleteEventDir(eventID); err != nil {
			return fmt.Errorf("%w: delete event dir: %v", domain.ErrStorageIO, err)
		}
		if err := s.photoRepo.DeleteAllByEventID(ctx, eventID); err != nil {
			return fmt.Errorf("delete photos: %w", err)
		}
		if err := s.participants.RemoveAll(ctx, eventID); err != nil {
			return fmt.Errorf("delete participants: %w", err)
		}
		if err := s.invitationRepo.DeleteAllByEventID(ctx, eventID); err != nil {
			return fmt.Errorf("delete invitations: %w", err)
		}
		if err := s.eventRepo.Delete(ctx, eventID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("delete event: %w", err)
		}
		return nil
	})
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventplanner/internal/domain"
)

type participantService struct {
	participantRepo domain.ParticipantRepository
	eventRepo       domain.EventRepository
	userRepo        domain.UserRepository
	contextTimeout  time.Duration
}

func NewParticipantService(participantRepo domain.ParticipantRepository,
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	timeout time.Duration,
) domain.ParticipantService {
	return &participantService{
		participantRepo: participantRepo,
		eventRepo:       eventRepo,
		userRepo:        userRepo,
		contextTimeout:  timeout,
	}
}

func (s *participantService) Join(ctx context.Context, eventID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return domain.ErrUserNotFound
	}
	// The unique constraint is authoritative: two concurrent joins for the same
	// pair resolve to one success and one ErrAlreadyParticipant.
	if err := s.participantRepo.Add(ctx, eventID, userID); err != nil {
		if errors.Is(err, domain.ErrAlreadyParticipant) {
			return domain.ErrAlreadyParticipant
		}
		return fmt.Errorf("add participant: %w", err)
	}
	return nil
}

func (s *participantService) Leave(ctx context.Context, eventID, targetUserID, actorID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if !domain.CanRemoveParticipant(event, targetUserID, actorID) {
		return domain.ErrForbidden
	}
	if err := s.participantRepo.Remove(ctx, eventID, targetUserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("remove participant: %w", err)
	}
	return nil
}

func (s *participantService) IsParticipant(ctx context.Context, eventID, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.participantRepo.Exists(ctx, eventID, userID)
}

func (s *participantService) ListParticipants(ctx context.Context, eventID string, params domain.PaginationParams) ([]*domain.EventParticipant, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, domain.ErrNotFound
		}
		return nil, 0, fmt.Errorf("get event: %w", err)
	}
	participants, total, err := s.participantRepo.ListByEventID(ctx, eventID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list participants: %w", err)
	}
	// Unreachable while the organizer-auto-join invariant holds; checked defensively.
	if total == 0 {
		return nil, 0, domain.ErrEmptyList
	}
	return participants, total, nil
}

func (s *participantService) RemoveAll(ctx context.Context, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	if err := s.participantRepo.DeleteAllByEventID(ctx, eventID); err != nil {
		return fmt.Errorf("remove all participants: %w", err)
	}
	return nil
}

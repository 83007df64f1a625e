package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventplanner/internal/domain"
)

type invitationService struct {
	invitationRepo  domain.InvitationRepository
	participantRepo domain.ParticipantRepository
	eventRepo       domain.EventRepository
	userRepo        domain.UserRepository
	participants    domain.ParticipantService
	codec           domain.LinkCodec
	emailService    domain.EmailService
	tx              domain.Transactor
	logger          *slog.Logger
	contextTimeout  time.Duration
}

func NewInvitationService(invitationRepo domain.InvitationRepository,
	participantRepo domain.ParticipantRepository,
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	participants domain.ParticipantService,
	codec domain.LinkCodec,
	emailService domain.EmailService,
	tx domain.Transactor,
	logger *slog.Logger,
	timeout time.Duration,
) domain.InvitationService {
	return &invitationService{
		invitationRepo:  invitationRepo,
		participantRepo: participantRepo,
		eventRepo:       eventRepo,
		userRepo:        userRepo,
		participants:    participants,
		codec:           codec,
		emailService:    emailService,
		tx:              tx,
		logger:          logger,
		contextTimeout:  timeout,
	}
}

func (s *invitationService) IssueLink(ctx context.Context, eventID, inviterID, inviteeID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("get event: %w", err)
	}
	isMember, err := s.participantRepo.Exists(ctx, eventID, inviterID)
	if err != nil {
		return "", fmt.Errorf("check inviter: %w", err)
	}
	if !isMember {
		return "", domain.ErrNotParticipant
	}

	var invitee *domain.User
	if inviteeID != "" {
		invitee, err = s.userRepo.GetByID(ctx, inviteeID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return "", domain.ErrUserNotFound
			}
			return "", fmt.Errorf("get invitee: %w", err)
		}
	}

	token, err := s.codec.Encode(eventID, inviteeID, inviterID)
	if err != nil {
		return "", fmt.Errorf("encode link: %w", err)
	}

	inv := &domain.Invitation{
		EventID:   eventID,
		InviterID: inviterID,
		Link:      token,
		CreatedAt: time.Now(),
	}
	if inviteeID != "" {
		inv.InviteeID = &inviteeID
	}
	if err := s.invitationRepo.Create(ctx, inv); err != nil {
		return "", fmt.Errorf("create invitation: %w", err)
	}

	// Addressed invitations are mailed to the invitee. A send failure does not
	// invalidate the link; the inviter can still pass it along by hand.
	if invitee != nil {
		inviterName := "An event participant"
		if inviter, err := s.userRepo.GetByID(ctx, inviterID); err == nil {
			inviterName = inviter.DisplayName()
		}
		data := &domain.InvitationEmailData{
			Email:       invitee.Email,
			InviterName: inviterName,
			EventTitle:  event.Title,
			Link:        token,
		}
		if err := s.emailService.SendInvitation(ctx, data); err != nil {
			s.logger.Warn("invitation email not sent", "event_id", eventID, "err", err)
		}
	}
	return token, nil
}

func (s *invitationService) Redeem(ctx context.Context, token, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	eventID, inviteeID, inviterID, err := s.codec.Decode(token)
	if err != nil {
		return domain.ErrMalformedLink
	}

	// Membership can lapse between issuance and redemption; the inviter must still
	// be a participant for the link to be honored.
	inviterStillMember, err := s.participantRepo.Exists(ctx, eventID, inviterID)
	if err != nil {
		return fmt.Errorf("check inviter: %w", err)
	}
	if !inviterStillMember {
		return domain.ErrNotParticipant
	}
	if inviteeID != "" && inviteeID != userID {
		return domain.ErrForbidden
	}
	already, err := s.participantRepo.Exists(ctx, eventID, userID)
	if err != nil {
		return fmt.Errorf("check membership: %w", err)
	}
	if already {
		return domain.ErrUserIsParticipant
	}

	// Join and invitation removal are one transactional step: both happen or neither.
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.participants.Join(ctx, eventID, userID); err != nil {
			if errors.Is(err, domain.ErrAlreadyParticipant) {
				return domain.ErrUserIsParticipant
			}
			return err
		}
		if err := s.invitationRepo.DeleteByLink(ctx, token); err != nil {
			return fmt.Errorf("delete invitation: %w", err)
		}
		return nil
	})
}

func (s *invitationService) Decline(ctx context.Context, invitationID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.invitationRepo.Delete(ctx, invitationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("decline invitation: %w", err)
	}
	return nil
}

func (s *invitationService) Status(ctx context.Context, invitationID string) (domain.InvitationStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	inv, err := s.invitationRepo.GetByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("get invitation: %w", err)
	}
	event, err := s.eventRepo.GetByID(ctx, inv.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("get event: %w", err)
	}
	if event.Date.Before(time.Now()) {
		return domain.InvitationStatusEventEnded, nil
	}
	return domain.InvitationStatusPending, nil
}

func (s *invitationService) Delete(ctx context.Context, invitationID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.invitationRepo.Delete(ctx, invitationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete invitation: %w", err)
	}
	return nil
}

func (s *invitationService) ListByEvent(ctx context.Context, eventID, actorID string, params domain.PaginationParams) ([]*domain.Invitation, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, domain.ErrNotFound
		}
		return nil, 0, fmt.Errorf("get event: %w", err)
	}
	if !domain.IsOrganizer(event, actorID) {
		return nil, 0, domain.ErrForbidden
	}
	invs, total, err := s.invitationRepo.ListByEventID(ctx, eventID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list invitations: %w", err)
	}
	if total == 0 {
		return nil, 0, domain.ErrEmptyList
	}
	return invs, total, nil
}

func (s *invitationService) ListByUser(ctx context.Context, userID string, params domain.PaginationParams) ([]*domain.Invitation, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	invs, total, err := s.invitationRepo.ListByInviteeID(ctx, userID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list invitations: %w", err)
	}
	if total == 0 {
		return nil, 0, domain.ErrEmptyList
	}
	return invs, total, nil
}

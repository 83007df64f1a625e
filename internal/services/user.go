package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"eventplanner/internal/domain"
)

const (
	tokenExpiry            = 24 * time.Hour
	confirmationCodeDigits = 6
)

var confirmationCodeRegex = regexp.MustCompile(`^\d{6}$`)

type userService struct {
	userRepo         domain.UserRepository
	confirmationRepo domain.EmailConfirmationRepository
	participantRepo  domain.ParticipantRepository
	invitationRepo   domain.InvitationRepository
	eventRepo        domain.EventRepository
	hasher           domain.PasswordHasher
	tokens           domain.TokenIssuer
	emailService     domain.EmailService
	tx               domain.Transactor
	logger           *slog.Logger
	contextTimeout   time.Duration
}

func NewUserService(userRepo domain.UserRepository,
	confirmationRepo domain.EmailConfirmationRepository,
	participantRepo domain.ParticipantRepository,
	invitationRepo domain.InvitationRepository,
	eventRepo domain.EventRepository,
	hasher domain.PasswordHasher,
	tokens domain.TokenIssuer,
	emailService domain.EmailService,
	tx domain.Transactor,
	logger *slog.Logger,
	timeout time.Duration,
) domain.UserService {
	return &userService{
		userRepo:         userRepo,
		confirmationRepo: confirmationRepo,
		participantRepo:  participantRepo,
		invitationRepo:   invitationRepo,
		eventRepo:        eventRepo,
		hasher:           hasher,
		tokens:           tokens,
		emailService:     emailService,
		tx:               tx,
		logger:           logger,
		contextTimeout:   timeout,
	}
}

func (s *userService) Register(ctx context.Context, email, password, name, lastName string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := domain.NewUser(email, name, lastName, now, now)
	user.Salt = salt
	user.PasswordHash = hash

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	code, err := generateConfirmationCode(confirmationCodeDigits)
	if err != nil {
		return nil, fmt.Errorf("generate confirmation code: %w", err)
	}
	confirmation := &domain.EmailConfirmation{
		UserID:    user.ID,
		CodeHash:  hashConfirmationCode(code),
		CreatedAt: now,
	}
	if err := s.confirmationRepo.Create(ctx, confirmation); err != nil {
		return nil, fmt.Errorf("store confirmation code: %w", err)
	}

	welcome := &domain.WelcomeMessageEmailData{Email: user.Email, FirstName: user.Name}
	if err := s.emailService.SendWelcomeMessage(ctx, welcome); err != nil {
		s.logger.Warn("welcome email not sent", "email", user.Email, "err", err)
	}
	codeMail := &domain.ConfirmationCodeEmailData{Email: user.Email, FirstName: user.Name, Code: code}
	if err := s.emailService.SendConfirmationCode(ctx, codeMail); err != nil {
		s.logger.Warn("confirmation email not sent", "email", user.Email, "err", err)
	}
	return user, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, password); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(user.ID, user.Email, tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, userID string, name, lastName, email *string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if name != nil {
		user.Name = *name
	}
	if lastName != nil {
		user.LastName = *lastName
	}
	if email != nil {
		normalized := strings.TrimSpace(strings.ToLower(*email))
		if normalized == "" {
			return nil, domain.ErrInvalidInput
		}
		user.Email = normalized
	}
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *userService) ConfirmEmail(ctx context.Context, userID, code string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	code = strings.TrimSpace(code)
	if !confirmationCodeRegex.MatchString(code) {
		return domain.ErrWrongConfirmationCode
	}
	confirmation, err := s.confirmationRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get confirmation: %w", err)
	}
	if confirmation.Confirmed {
		return domain.ErrEmailAlreadyConfirmed
	}
	if hashConfirmationCode(code) != confirmation.CodeHash {
		return domain.ErrWrongConfirmationCode
	}
	confirmation.Confirmed = true
	if err := s.confirmationRepo.Update(ctx, confirmation); err != nil {
		return fmt.Errorf("update confirmation: %w", err)
	}
	return nil
}

func (s *userService) ResendConfirmationCode(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("get user: %w", err)
	}
	confirmation, err := s.confirmationRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get confirmation: %w", err)
	}
	if confirmation.Confirmed {
		return domain.ErrEmailAlreadyConfirmed
	}
	code, err := generateConfirmationCode(confirmationCodeDigits)
	if err != nil {
		return fmt.Errorf("generate confirmation code: %w", err)
	}
	confirmation.CodeHash = hashConfirmationCode(code)
	confirmation.CreatedAt = time.Now()
	if err := s.confirmationRepo.Update(ctx, confirmation); err != nil {
		return fmt.Errorf("update confirmation: %w", err)
	}
	data := &domain.ConfirmationCodeEmailData{Email: user.Email, FirstName: user.Name, Code: code}
	if err := s.emailService.SendConfirmationCode(ctx, data); err != nil {
		return fmt.Errorf("send confirmation email: %w", err)
	}
	return nil
}

func (s *userService) Delete(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// Organized events reference the user as organizer; the account can only go
	// once those events are deleted.
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		organized, err := s.eventRepo.CountByOrganizerID(ctx, userID)
		if err != nil {
			return fmt.Errorf("count organized events: %w", err)
		}
		if organized > 0 {
			return domain.ErrUserOwnsEvents
		}
		if err := s.participantRepo.DeleteAllByUserID(ctx, userID); err != nil {
			return fmt.Errorf("delete memberships: %w", err)
		}
		if err := s.invitationRepo.DeleteAllByUserID(ctx, userID); err != nil {
			return fmt.Errorf("delete invitations: %w", err)
		}
		if err := s.confirmationRepo.DeleteByUserID(ctx, userID); err != nil {
			return fmt.Errorf("delete confirmation: %w", err)
		}
		if err := s.userRepo.Delete(ctx, userID); err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return domain.ErrUserNotFound
			}
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
}

func generateConfirmationCode(digits int) (string, error) {
	const digitspace = "0123456789"
	b := make([]byte, digits)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = digitspace[int(b[i])%len(digitspace)]
	}
	return string(b), nil
}

func hashConfirmationCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

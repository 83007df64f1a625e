package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for the email confirmation flow.
var (
	ErrEmailAlreadyConfirmed = errors.New("email already confirmed")
	ErrWrongConfirmationCode = errors.New("wrong confirmation code")
)

// EmailConfirmation tracks the one-time code mailed to a user at registration.
// One row per user; the code is stored hashed.
type EmailConfirmation struct {
	ID        string
	UserID    string
	CodeHash  string
	CreatedAt time.Time
	Confirmed bool
}

// EmailConfirmationRepository defines storage for confirmation records.
type EmailConfirmationRepository interface {
	Create(ctx context.Context, confirmation *EmailConfirmation) error
	GetByUserID(ctx context.Context, userID string) (*EmailConfirmation, error)
	Update(ctx context.Context, confirmation *EmailConfirmation) error
	DeleteByUserID(ctx context.Context, userID string) error
}

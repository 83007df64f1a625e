package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventplanner/internal/domain"
)

type confirmationRepository struct {
	DB *sql.DB
}

func NewEmailConfirmationRepository(db *sql.DB) domain.EmailConfirmationRepository {
	return &confirmationRepository{
		DB: db,
	}
}

func (r *confirmationRepository) Create(ctx context.Context, confirmation *domain.EmailConfirmation) error {
	query := `
		INSERT INTO email_confirmations (user_id, code_hash, created_at, confirmed)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return querier(ctx, r.DB).QueryRowContext(ctx, query,
		confirmation.UserID, confirmation.CodeHash, confirmation.CreatedAt, confirmation.Confirmed,
	).Scan(&confirmation.ID)
}

func (r *confirmationRepository) GetByUserID(ctx context.Context, userID string) (*domain.EmailConfirmation, error) {
	query := `
		SELECT id, user_id, code_hash, created_at, confirmed
		FROM email_confirmations
		WHERE user_id = $1
	`
	c := &domain.EmailConfirmation{}
	err := querier(ctx, r.DB).QueryRowContext(ctx, query, userID).Scan(
		&c.ID, &c.UserID, &c.CodeHash, &c.CreatedAt, &c.Confirmed,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *confirmationRepository) Update(ctx context.Context, confirmation *domain.EmailConfirmation) error {
	query := `
		UPDATE email_confirmations
		SET code_hash = $1, created_at = $2, confirmed = $3
		WHERE user_id = $4
	`
	result, err := querier(ctx, r.DB).ExecContext(ctx, query,
		confirmation.CodeHash, confirmation.CreatedAt, confirmation.Confirmed, confirmation.UserID,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *confirmationRepository) DeleteByUserID(ctx context.Context, userID string) error {
	query := `DELETE FROM email_confirmations WHERE user_id = $1`
	_, err := querier(ctx, r.DB).ExecContext(ctx, query, userID)
	return err
}

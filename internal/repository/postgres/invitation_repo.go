package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventplanner/internal/domain"
)

type invitationRepository struct {
	DB *sql.DB
}

func NewInvitationRepository(db *sql.DB) domain.InvitationRepository {
	return &invitationRepository{
		DB: db,
	}
}

func (r *invitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	query := `
		INSERT INTO invitations (event_id, inviter_id, invitee_id, link, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var invitee sql.NullString
	if inv.InviteeID != nil {
		invitee = sql.NullString{String: *inv.InviteeID, Valid: true}
	}
	err := querier(ctx, r.DB).QueryRowContext(ctx, query,
		inv.EventID, inv.InviterID, invitee, inv.Link, inv.CreatedAt,
	).Scan(&inv.ID)
	if err != nil {
		return err
	}
	return nil
}

func (r *invitationRepository) GetByID(ctx context.Context, id string) (*domain.Invitation, error) {
	query := `
		SELECT id, event_id, inviter_id, invitee_id, link, created_at
		FROM invitations
		WHERE id = $1
	`
	return r.scanOne(querier(ctx, r.DB).QueryRowContext(ctx, query, id))
}

func (r *invitationRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM invitations WHERE id = $1`
	result, err := querier(ctx, r.DB).ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByLink removes the invitation row carrying the token. Open links may be
// redeemed after their row is already gone, so zero affected rows is fine.
func (r *invitationRepository) DeleteByLink(ctx context.Context, link string) error {
	query := `DELETE FROM invitations WHERE link = $1`
	_, err := querier(ctx, r.DB).ExecContext(ctx, query, link)
	return err
}

func (r *invitationRepository) DeleteAllByEventID(ctx context.Context, eventID string) error {
	query := `DELETE FROM invitations WHERE event_id = $1`
	_, err := querier(ctx, r.DB).ExecContext(ctx, query, eventID)
	return err
}

func (r *invitationRepository) DeleteAllByUserID(ctx context.Context, userID string) error {
	query := `DELETE FROM invitations WHERE inviter_id = $1 OR invitee_id = $1`
	_, err := querier(ctx, r.DB).ExecContext(ctx, query, userID)
	return err
}

func (r *invitationRepository) ListByEventID(ctx context.Context, eventID string, params domain.PaginationParams) ([]*domain.Invitation, int, error) {
	q := querier(ctx, r.DB)

	var total int
	countQuery := `SELECT COUNT(*) FROM invitations WHERE event_id = $1`
	if err := q.QueryRowContext(ctx, countQuery, eventID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, event_id, inviter_id, invitee_id, link, created_at
		FROM invitations
		WHERE event_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := q.QueryContext(ctx, query, eventID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	invitations, err := r.scanAll(rows)
	if err != nil {
		return nil, 0, err
	}
	return invitations, total, nil
}

func (r *invitationRepository) ListByInviteeID(ctx context.Context, userID string, params domain.PaginationParams) ([]*domain.Invitation, int, error) {
	q := querier(ctx, r.DB)

	var total int
	countQuery := `SELECT COUNT(*) FROM invitations WHERE invitee_id = $1`
	if err := q.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, event_id, inviter_id, invitee_id, link, created_at
		FROM invitations
		WHERE invitee_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := q.QueryContext(ctx, query, userID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	invitations, err := r.scanAll(rows)
	if err != nil {
		return nil, 0, err
	}
	return invitations, total, nil
}

func (r *invitationRepository) scanOne(row *sql.Row) (*domain.Invitation, error) {
	inv := &domain.Invitation{}
	var invitee sql.NullString
	err := row.Scan(&inv.ID, &inv.EventID, &inv.InviterID, &invitee, &inv.Link, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if invitee.Valid {
		inv.InviteeID = &invitee.String
	}
	return inv, nil
}

func (r *invitationRepository) scanAll(rows *sql.Rows) ([]*domain.Invitation, error) {
	invitations := make([]*domain.Invitation, 0)
	for rows.Next() {
		inv := &domain.Invitation{}
		var invitee sql.NullString
		if err := rows.Scan(&inv.ID, &inv.EventID, &inv.InviterID, &invitee, &inv.Link, &inv.CreatedAt); err != nil {
			return nil, err
		}
		if invitee.Valid {
			inv.InviteeID = &invitee.String
		}
		invitations = append(invitations, inv)
	}
	return invitations, rows.Err()
}

package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"eventplanner/internal/domain"
)

type participantRepository struct {
	DB *sql.DB
}

func NewParticipantRepository(db *sql.DB) domain.ParticipantRepository {
	return &participantRepository{
		DB: db,
	}
}

// Add inserts the membership pair. The unique constraint on (event_id, user_id)
// is what makes two concurrent joins resolve to exactly one success.
func (r *participantRepository) Add(ctx context.Context, eventID, userID string) error {
	query := `
		INSERT INTO event_participants (event_id, user_id)
		VALUES ($1, $2)
	`
	_, err := querier(ctx, r.DB).ExecContext(ctx, query, eventID, userID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return domain.ErrAlreadyParticipant
			case "23503":
				return domain.ErrNotFound
			}
		}
		return err
	}
	return nil
}

func (r *participantRepository) Exists(ctx context.Context, eventID, userID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM event_participants WHERE event_id = $1 AND user_id = $2
		)
	`
	var exists bool
	if err := querier(ctx, r.DB).QueryRowContext(ctx, query, eventID, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *participantRepository) Remove(ctx context.Context, eventID, userID string) error {
	query := `DELETE FROM event_participants WHERE event_id = $1 AND user_id = $2`
	result, err := querier(ctx, r.DB).ExecContext(ctx, query, eventID, userID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *participantRepository) ListByEventID(ctx context.Context, eventID string, params domain.PaginationParams) ([]*domain.EventParticipant, int, error) {
	q := querier(ctx, r.DB)

	var total int
	countQuery := `SELECT COUNT(*) FROM event_participants WHERE event_id = $1`
	if err := q.QueryRowContext(ctx, countQuery, eventID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT p.event_id, p.user_id, u.name, u.last_name, u.email
		FROM event_participants p
		JOIN users u ON u.id = p.user_id
		WHERE p.event_id = $1
		ORDER BY p.user_id
		LIMIT $2 OFFSET $3
	`
	rows, err := q.QueryContext(ctx, query, eventID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	participants := make([]*domain.EventParticipant, 0)
	for rows.Next() {
		p := &domain.EventParticipant{}
		var name, lastName sql.NullString
		if err := rows.Scan(&p.EventID, &p.UserID, &name, &lastName, &p.Email); err != nil {
			return nil, 0, err
		}
		p.Name = name.String
		p.LastName = lastName.String
		participants = append(participants, p)
	}
	return participants, total, rows.Err()
}

func (r *participantRepository) DeleteAllByEventID(ctx context.Context, eventID string) error {
	query := `DELETE FROM event_participants WHERE event_id = $1`
	_, err := querier(ctx, r.DB).ExecContext(ctx, query, eventID)
	return err
}

func (r *participantRepository) DeleteAllByUserID(ctx context.Context, userID string) error {
	query := `DELETE FROM event_participants WHERE user_id = $1`
	_, err := querier(ctx, r.DB).ExecContext(ctx, query, userID)
	return err
}

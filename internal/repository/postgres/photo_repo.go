package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventplanner/internal/domain"
)

type photoRepository struct {
	DB *sql.DB
}

func NewPhotoRepository(db *sql.DB) domain.PhotoRepository {
	return &photoRepository{
		DB: db,
	}
}

func (r *photoRepository) Create(ctx context.Context, photo *domain.Photo) error {
	query := `
		INSERT INTO photos (event_id, path, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	return querier(ctx, r.DB).QueryRowContext(ctx, query,
		photo.EventID, photo.Path, photo.CreatedAt,
	).Scan(&photo.ID)
}

func (r *photoRepository) GetByID(ctx context.Context, id string) (*domain.Photo, error) {
	query := `
		SELECT id, event_id, path, created_at
		FROM photos
		WHERE id = $1
	`
	p := &domain.Photo{}
	err := querier(ctx, r.DB).QueryRowContext(ctx, query, id).Scan(&p.ID, &p.EventID, &p.Path, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *photoRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Photo, error) {
	query := `
		SELECT id, event_id, path, created_at
		FROM photos
		WHERE event_id = $1
		ORDER BY created_at ASC
	`
	rows, err := querier(ctx, r.DB).QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	photos := make([]*domain.Photo, 0)
	for rows.Next() {
		p := &domain.Photo{}
		if err := rows.Scan(&p.ID, &p.EventID, &p.Path, &p.CreatedAt); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

func (r *photoRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM photos WHERE id = $1`
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

func (r *photoRepository) DeleteAllByEventID(ctx context.Context, eventID string) error {
	query := `DELETE FROM photos WHERE event_id = $1`
	_, err := querier(ctx, r.DB).ExecContext(ctx, query, eventID)
	return err
}

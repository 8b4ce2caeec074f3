package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/huellas-salud/vet-api/internal/model"
	"github.com/huellas-salud/vet-api/internal/repository"
)

const announcementColumns = `id, description, cell_phone, active, activated_at, created_at, updated_at`

func (r *announcementRepository) Create(ctx context.Context, announcement *model.Announcement) error {
	query := `
		INSERT INTO announcements (id, description, cell_phone, active, activated_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	announcement.CreatedAt = time.Now()
	announcement.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		announcement.ID,
		announcement.Description,
		announcement.CellPhone,
		announcement.Active,
		announcement.ActivatedAt,
		announcement.CreatedAt,
		announcement.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create announcement: %w", err)
	}
	return nil
}

func (r *announcementRepository) Get(ctx context.Context, id string) (*model.Announcement, error) {
	query := `SELECT ` + announcementColumns + ` FROM announcements WHERE id = $1`

	var announcement model.Announcement
	err := r.db.GetContext(ctx, &announcement, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get announcement: %w", err)
	}
	return &announcement, nil
}

func (r *announcementRepository) Update(ctx context.Context, announcement *model.Announcement) error {
	query := `
		UPDATE announcements
		SET description = $1, cell_phone = $2, active = $3, activated_at = $4, updated_at = $5
		WHERE id = $6
	`
	announcement.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		announcement.Description,
		announcement.CellPhone,
		announcement.Active,
		announcement.ActivatedAt,
		announcement.UpdatedAt,
		announcement.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update announcement: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *announcementRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *announcementRepository) List(ctx context.Context) ([]*model.Announcement, error) {
	query := `SELECT ` + announcementColumns + ` FROM announcements ORDER BY created_at DESC`

	var announcements []*model.Announcement
	if err := r.db.SelectContext(ctx, &announcements, query); err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	return announcements, nil
}

func (r *announcementRepository) ListActive(ctx context.Context) ([]*model.Announcement, error) {
	query := `SELECT ` + announcementColumns + ` FROM announcements WHERE active = true ORDER BY activated_at DESC`

	var announcements []*model.Announcement
	if err := r.db.SelectContext(ctx, &announcements, query); err != nil {
		return nil, fmt.Errorf("failed to list active announcements: %w", err)
	}
	return announcements, nil
}

// DeactivateActivatedBefore flips off every active announcement that was
// activated before the cutoff and returns the records it touched.
func (r *announcementRepository) DeactivateActivatedBefore(ctx context.Context, cutoff time.Time) ([]*model.Announcement, error) {
	query := `
		UPDATE announcements
		SET active = false, updated_at = $1
		WHERE active = true AND activated_at IS NOT NULL AND activated_at < $2
		RETURNING ` + announcementColumns

	var announcements []*model.Announcement
	if err := r.db.SelectContext(ctx, &announcements, query, time.Now(), cutoff); err != nil {
		return nil, fmt.Errorf("failed to deactivate expired announcements: %w", err)
	}
	return announcements, nil
}

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

const scheduleColumns = `
	id, veterinarian_id, day_of_week, start_time, end_time,
	lunch_start, lunch_end, active, created_at, updated_at`

func (r *scheduleRepository) Create(ctx context.Context, schedule *model.Schedule) error {
	query := `
		INSERT INTO schedules (
			id, veterinarian_id, day_of_week, start_time, end_time,
			lunch_start, lunch_end, active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	schedule.CreatedAt = time.Now()
	schedule.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		schedule.ID,
		schedule.VeterinarianID,
		schedule.DayOfWeek,
		schedule.StartTime,
		schedule.EndTime,
		schedule.LunchStart,
		schedule.LunchEnd,
		schedule.Active,
		schedule.CreatedAt,
		schedule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create schedule: %w", err)
	}
	return nil
}

func (r *scheduleRepository) Get(ctx context.Context, id string) (*model.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE id = $1`

	var schedule model.Schedule
	err := r.db.GetContext(ctx, &schedule, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return &schedule, nil
}

func (r *scheduleRepository) Update(ctx context.Context, schedule *model.Schedule) error {
	query := `
		UPDATE schedules
		SET veterinarian_id = $1, day_of_week = $2, start_time = $3, end_time = $4,
			lunch_start = $5, lunch_end = $6, active = $7, updated_at = $8
		WHERE id = $9
	`
	schedule.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		schedule.VeterinarianID,
		schedule.DayOfWeek,
		schedule.StartTime,
		schedule.EndTime,
		schedule.LunchStart,
		schedule.LunchEnd,
		schedule.Active,
		schedule.UpdatedAt,
		schedule.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update schedule: %w", err)
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

func (r *scheduleRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
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

func (r *scheduleRepository) List(ctx context.Context) ([]*model.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules ORDER BY created_at DESC`

	var schedules []*model.Schedule
	if err := r.db.SelectContext(ctx, &schedules, query); err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedules, nil
}

func (r *scheduleRepository) ListByVeterinarian(ctx context.Context, vetID string) ([]*model.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE veterinarian_id = $1 ORDER BY day_of_week ASC`

	var schedules []*model.Schedule
	if err := r.db.SelectContext(ctx, &schedules, query, vetID); err != nil {
		return nil, fmt.Errorf("failed to list schedules by veterinarian: %w", err)
	}
	return schedules, nil
}

func (r *scheduleRepository) FindByVeterinarianAndDay(ctx context.Context, vetID string, day model.DayOfWeek) (*model.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE veterinarian_id = $1 AND day_of_week = $2`

	var schedule model.Schedule
	err := r.db.GetContext(ctx, &schedule, query, vetID, day)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find schedule: %w", err)
	}
	return &schedule, nil
}

func (r *scheduleRepository) ExistsForDay(ctx context.Context, vetID string, day model.DayOfWeek, excludeID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM schedules
			WHERE veterinarian_id = $1 AND day_of_week = $2
	`
	args := []interface{}{vetID, day}

	if excludeID != "" {
		query += " AND id != $3"
		args = append(args, excludeID)
	}
	query += ")"

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, args...); err != nil {
		return false, fmt.Errorf("failed to check schedule existence: %w", err)
	}
	return exists, nil
}

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

const appointmentColumns = `
	id, owner_id, pet_id, veterinarian_id, service_ids,
	start_time, status, notes, created_at, updated_at`

// Create inserts the appointment inside a transaction that holds a
// per-veterinarian advisory lock, so the overlap re-check and the insert
// are serialized against concurrent bookings for the same veterinarian.
func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := lockVeterinarian(ctx, tx, appointment.VeterinarianID); err != nil {
		return err
	}

	conflict, err := hasOverlap(ctx, tx, appointment.VeterinarianID, appointment.StartTime, appointment.EndTime(), "")
	if err != nil {
		return err
	}
	if conflict {
		return repository.ErrConflict
	}

	query := `
		INSERT INTO appointments (
			id, owner_id, pet_id, veterinarian_id, service_ids,
			start_time, status, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = time.Now()

	_, err = tx.ExecContext(ctx, query,
		appointment.ID,
		appointment.OwnerID,
		appointment.PetID,
		appointment.VeterinarianID,
		appointment.ServiceIDs,
		appointment.StartTime,
		appointment.Status,
		appointment.Notes,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id string) (*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

	var appointment model.Appointment
	err := r.db.GetContext(ctx, &appointment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

// Update rewrites the stored record under the same per-veterinarian lock as
// Create, skipping the record itself in the overlap re-check.
func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := lockVeterinarian(ctx, tx, appointment.VeterinarianID); err != nil {
		return err
	}

	if !appointment.IsCancelled() {
		conflict, err := hasOverlap(ctx, tx, appointment.VeterinarianID, appointment.StartTime, appointment.EndTime(), appointment.ID)
		if err != nil {
			return err
		}
		if conflict {
			return repository.ErrConflict
		}
	}

	query := `
		UPDATE appointments
		SET owner_id = $1, pet_id = $2, veterinarian_id = $3, service_ids = $4,
			start_time = $5, status = $6, notes = $7, updated_at = $8
		WHERE id = $9
	`
	appointment.UpdatedAt = time.Now()

	result, err := tx.ExecContext(ctx, query,
		appointment.OwnerID,
		appointment.PetID,
		appointment.VeterinarianID,
		appointment.ServiceIDs,
		appointment.StartTime,
		appointment.Status,
		appointment.Notes,
		appointment.UpdatedAt,
		appointment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
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

func (r *appointmentRepository) List(ctx context.Context) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments ORDER BY created_at DESC`

	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListByOwner(ctx context.Context, ownerID string) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE owner_id = $1 ORDER BY start_time ASC`

	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list appointments by owner: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListByVeterinarian(ctx context.Context, vetID string) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE veterinarian_id = $1 AND status != 'CANCELLED'
		ORDER BY start_time ASC`

	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, vetID); err != nil {
		return nil, fmt.Errorf("failed to list appointments by veterinarian: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListByVeterinarianAndDate(ctx context.Context, vetID string, date time.Time) ([]*model.Appointment, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	query := `SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE veterinarian_id = $1
		AND start_time >= $2 AND start_time < $3
		AND status != 'CANCELLED'
		ORDER BY start_time ASC`

	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, vetID, dayStart, dayEnd); err != nil {
		return nil, fmt.Errorf("failed to list appointments by date: %w", err)
	}
	return appointments, nil
}

type execQueryer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

func lockVeterinarian(ctx context.Context, tx execQueryer, vetID string) error {
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, vetID); err != nil {
		return fmt.Errorf("failed to lock veterinarian: %w", err)
	}
	return nil
}

func hasOverlap(ctx context.Context, tx execQueryer, vetID string, start, end time.Time, excludeID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE veterinarian_id = $1
			AND status != 'CANCELLED'
			AND start_time < $3
			AND start_time + interval '30 minutes' > $2
	`
	args := []interface{}{vetID, start, end}

	if excludeID != "" {
		query += " AND id != $4"
		args = append(args, excludeID)
	}
	query += ")"

	var conflict bool
	if err := tx.GetContext(ctx, &conflict, query, args...); err != nil {
		return false, fmt.Errorf("failed to check conflicts: %w", err)
	}
	return conflict, nil
}

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

const petColumns = `id, owner_id, name, species, breed, weight_kg, vaccines, created_at, updated_at`

func (r *petRepository) Create(ctx context.Context, pet *model.Pet) error {
	query := `
		INSERT INTO pets (id, owner_id, name, species, breed, weight_kg, vaccines, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	pet.CreatedAt = time.Now()
	pet.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		pet.ID,
		pet.OwnerID,
		pet.Name,
		pet.Species,
		pet.Breed,
		pet.WeightKG,
		pet.Vaccines,
		pet.CreatedAt,
		pet.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create pet: %w", err)
	}
	return nil
}

func (r *petRepository) Get(ctx context.Context, id string) (*model.Pet, error) {
	query := `SELECT ` + petColumns + ` FROM pets WHERE id = $1`

	var pet model.Pet
	err := r.db.GetContext(ctx, &pet, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pet: %w", err)
	}
	return &pet, nil
}

func (r *petRepository) Update(ctx context.Context, pet *model.Pet) error {
	query := `
		UPDATE pets
		SET name = $1, species = $2, breed = $3, weight_kg = $4, vaccines = $5, updated_at = $6
		WHERE id = $7
	`
	pet.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		pet.Name,
		pet.Species,
		pet.Breed,
		pet.WeightKG,
		pet.Vaccines,
		pet.UpdatedAt,
		pet.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update pet: %w", err)
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

func (r *petRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete pet: %w", err)
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

func (r *petRepository) List(ctx context.Context) ([]*model.Pet, error) {
	query := `SELECT ` + petColumns + ` FROM pets ORDER BY created_at DESC`

	var pets []*model.Pet
	if err := r.db.SelectContext(ctx, &pets, query); err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}
	return pets, nil
}

func (r *petRepository) ListByOwner(ctx context.Context, ownerID string) ([]*model.Pet, error) {
	query := `SELECT ` + petColumns + ` FROM pets WHERE owner_id = $1 ORDER BY name ASC`

	var pets []*model.Pet
	if err := r.db.SelectContext(ctx, &pets, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list pets by owner: %w", err)
	}
	return pets, nil
}

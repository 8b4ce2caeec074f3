package pet

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/huellas-salud/vet-api/internal/model"
	"github.com/huellas-salud/vet-api/internal/repository"
	apperrors "github.com/huellas-salud/vet-api/pkg/errors"
)

type Service struct {
	repo  repository.PetRepository
	users repository.UserRepository
}

func NewService(repo repository.PetRepository, users repository.UserRepository) *Service {
	return &Service{repo: repo, users: users}
}

func (s *Service) Create(ctx context.Context, req *model.CreatePetRequest) (*model.Pet, error) {
	exists, err := s.users.ExistsByDocument(ctx, req.OwnerID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if !exists {
		return nil, apperrors.BadRequest(fmt.Sprintf("owner %s does not exist", req.OwnerID), nil)
	}

	pet := &model.Pet{
		ID:       uuid.NewString(),
		OwnerID:  req.OwnerID,
		Name:     req.Name,
		Species:  req.Species,
		Breed:    req.Breed,
		WeightKG: req.WeightKG,
		Vaccines: req.Vaccines,
	}
	if err := s.repo.Create(ctx, pet); err != nil {
		return nil, apperrors.Internal(err)
	}
	return pet, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.Pet, error) {
	pet, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("pet", err)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return pet, nil
}

func (s *Service) Update(ctx context.Context, id string, req *model.UpdatePetRequest) (*model.Pet, error) {
	pet, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("pet", err)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if req.Name != nil {
		pet.Name = *req.Name
	}
	if req.Breed != nil {
		pet.Breed = *req.Breed
	}
	if req.WeightKG != nil {
		pet.WeightKG = *req.WeightKG
	}
	if req.Vaccines != nil {
		pet.Vaccines = req.Vaccines
	}

	if err := s.repo.Update(ctx, pet); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("pet", err)
		}
		return nil, apperrors.Internal(err)
	}
	return pet, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("pet", err)
		}
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]*model.Pet, error) {
	pets, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return pets, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]*model.Pet, error) {
	pets, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return pets, nil
}

package vetservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/huellas-salud/vet-api/internal/model"
	"github.com/huellas-salud/vet-api/internal/repository"
	"github.com/huellas-salud/vet-api/internal/scheduling"
	apperrors "github.com/huellas-salud/vet-api/pkg/errors"
)

// Service manages the clinic's veterinary offerings and prices them
// against pet weights.
type Service struct {
	repo repository.ServiceRepository
	pets repository.PetRepository
}

func NewService(repo repository.ServiceRepository, pets repository.PetRepository) *Service {
	return &Service{repo: repo, pets: pets}
}

func (s *Service) Create(ctx context.Context, req *model.CreateServiceRequest) (*model.Service, error) {
	if err := validateRules(req.PriceByWeight, req.WeightPriceRules); err != nil {
		return nil, err
	}

	svc := &model.Service{
		ID:               uuid.NewString(),
		Name:             req.Name,
		ShortDescription: req.ShortDescription,
		LongDescription:  req.LongDescription,
		BasePrice:        req.BasePrice,
		PriceByWeight:    req.PriceByWeight,
		Active:           true,
		WeightPriceRules: req.WeightPriceRules,
	}
	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, apperrors.Internal(err)
	}
	return svc, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.Service, error) {
	svc, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("service", err)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return svc, nil
}

func (s *Service) Update(ctx context.Context, id string, req *model.UpdateServiceRequest) (*model.Service, error) {
	svc, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("service", err)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.ShortDescription != nil {
		svc.ShortDescription = *req.ShortDescription
	}
	if req.LongDescription != nil {
		svc.LongDescription = *req.LongDescription
	}
	if req.BasePrice != nil {
		svc.BasePrice = *req.BasePrice
	}
	if req.PriceByWeight != nil {
		svc.PriceByWeight = *req.PriceByWeight
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}
	if req.WeightPriceRules != nil {
		svc.WeightPriceRules = req.WeightPriceRules
	}

	if err := validateRules(svc.PriceByWeight, svc.WeightPriceRules); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, svc); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("service", err)
		}
		return nil, apperrors.Internal(err)
	}
	return svc, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("service", err)
		}
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]*model.Service, error) {
	services, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return services, nil
}

// PriceForPet resolves what the service costs for one pet, applying the
// weight rules when the service is weight-priced.
func (s *Service) PriceForPet(ctx context.Context, serviceID, petID string) (float64, error) {
	svc, err := s.repo.Get(ctx, serviceID)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, apperrors.NotFound("service", err)
	}
	if err != nil {
		return 0, apperrors.Internal(err)
	}

	pet, err := s.pets.Get(ctx, petID)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, apperrors.NotFound("pet", err)
	}
	if err != nil {
		return 0, apperrors.Internal(err)
	}

	return scheduling.PriceForWeight(svc, pet.WeightKG), nil
}

func validateRules(priceByWeight bool, rules []model.WeightPriceRule) error {
	if priceByWeight && len(rules) == 0 {
		return apperrors.BadRequest("weight-priced services require at least one price rule", nil)
	}
	for i, rule := range rules {
		if rule.MinWeight < 0 || rule.MaxWeight < rule.MinWeight {
			return apperrors.BadRequest(fmt.Sprintf("price rule %d has an invalid weight range", i), nil)
		}
		if rule.Price <= 0 {
			return apperrors.BadRequest(fmt.Sprintf("price rule %d must have a positive price", i), nil)
		}
	}
	return nil
}

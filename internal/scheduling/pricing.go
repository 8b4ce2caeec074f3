package scheduling

import (
	"context"
	"fmt"

	"github.com/huellas-salud/vet-api/internal/model"
)

// PetLookup and ServiceLookup resolve the entities pricing depends on.
// A nil entity with a nil error means it does not exist.
type PetLookup interface {
	PetByID(ctx context.Context, id string) (*model.Pet, error)
}

type ServiceLookup interface {
	ServiceByID(ctx context.Context, id string) (*model.Service, error)
}

// PriceForWeight resolves the price of a service for a pet of the given
// weight. Services that are not weight-priced, or carry no rules, cost
// their base price. Otherwise the first rule (in stored order) whose
// inclusive range covers the weight wins. A weight outside every range
// falls back to the most expensive rule, not the base price: unmatched
// weights are priced at the highest applicable tier.
func PriceForWeight(svc *model.Service, weightKG float64) float64 {
	if !svc.PriceByWeight || len(svc.WeightPriceRules) == 0 {
		return svc.BasePrice
	}

	maxPrice := svc.WeightPriceRules[0].Price
	for _, rule := range svc.WeightPriceRules {
		if weightKG >= rule.MinWeight && weightKG <= rule.MaxWeight {
			return rule.Price
		}
		if rule.Price > maxPrice {
			maxPrice = rule.Price
		}
	}
	return maxPrice
}

// Pricer prices service bundles for a pet.
type Pricer struct {
	pets     PetLookup
	services ServiceLookup
}

func NewPricer(pets PetLookup, services ServiceLookup) *Pricer {
	return &Pricer{pets: pets, services: services}
}

// TotalForServices sums PriceForWeight over the referenced services,
// looking up the pet's weight once.
func (p *Pricer) TotalForServices(ctx context.Context, petID string, serviceIDs []string) (float64, error) {
	pet, err := p.pets.PetByID(ctx, petID)
	if err != nil {
		return 0, fmt.Errorf("pet lookup: %w", err)
	}
	if pet == nil {
		return 0, fmt.Errorf("pet %s: %w", petID, ErrEntityNotFound)
	}

	var total float64
	for _, id := range serviceIDs {
		svc, err := p.services.ServiceByID(ctx, id)
		if err != nil {
			return 0, fmt.Errorf("service lookup: %w", err)
		}
		if svc == nil {
			return 0, fmt.Errorf("service %s: %w", id, ErrEntityNotFound)
		}
		total += PriceForWeight(svc, pet.WeightKG)
	}
	return total, nil
}

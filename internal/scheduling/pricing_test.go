package scheduling

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huellas-salud/vet-api/internal/model"
)

func weightPricedService(rules ...model.WeightPriceRule) *model.Service {
	return &model.Service{
		ID:               "svc-1",
		Name:             "General checkup",
		BasePrice:        50000,
		PriceByWeight:    true,
		WeightPriceRules: rules,
	}
}

func TestPriceForWeight(t *testing.T) {
	rules := []model.WeightPriceRule{
		{MinWeight: 0, MaxWeight: 10, Price: 100},
		{MinWeight: 10, MaxWeight: 20, Price: 150},
	}

	t.Run("not weight priced uses base price", func(t *testing.T) {
		svc := weightPricedService(rules...)
		svc.PriceByWeight = false
		assert.Equal(t, 50000.0, PriceForWeight(svc, 5))
	})

	t.Run("weight priced without rules uses base price", func(t *testing.T) {
		assert.Equal(t, 50000.0, PriceForWeight(weightPricedService(), 5))
	})

	t.Run("matching rule wins", func(t *testing.T) {
		assert.Equal(t, 100.0, PriceForWeight(weightPricedService(rules...), 5))
		assert.Equal(t, 150.0, PriceForWeight(weightPricedService(rules...), 15))
	})

	t.Run("inclusive bounds", func(t *testing.T) {
		assert.Equal(t, 100.0, PriceForWeight(weightPricedService(rules...), 0))
		assert.Equal(t, 150.0, PriceForWeight(weightPricedService(rules...), 20))
	})

	t.Run("overlapping ranges pick the first in stored order", func(t *testing.T) {
		svc := weightPricedService(rules...)
		// both rules cover weight 10; the first one wins
		assert.Equal(t, 100.0, PriceForWeight(svc, 10))
	})

	t.Run("unmatched weight falls back to maximum rule price", func(t *testing.T) {
		assert.Equal(t, 150.0, PriceForWeight(weightPricedService(rules...), 25))
	})

	t.Run("fallback ignores rule order", func(t *testing.T) {
		svc := weightPricedService(
			model.WeightPriceRule{MinWeight: 10, MaxWeight: 20, Price: 150},
			model.WeightPriceRule{MinWeight: 0, MaxWeight: 10, Price: 100},
		)
		assert.Equal(t, 150.0, PriceForWeight(svc, 40))
	})
}

type fakePetLookup struct {
	pets map[string]*model.Pet
}

func (f *fakePetLookup) PetByID(_ context.Context, id string) (*model.Pet, error) {
	return f.pets[id], nil
}

type fakeServiceLookup struct {
	services map[string]*model.Service
}

func (f *fakeServiceLookup) ServiceByID(_ context.Context, id string) (*model.Service, error) {
	return f.services[id], nil
}

func TestTotalForServices(t *testing.T) {
	ctx := context.Background()

	checkup := weightPricedService(
		model.WeightPriceRule{MinWeight: 0, MaxWeight: 10, Price: 100},
		model.WeightPriceRule{MinWeight: 10, MaxWeight: 20, Price: 150},
	)
	grooming := &model.Service{ID: "svc-2", Name: "Grooming", BasePrice: 80}

	pricer := NewPricer(
		&fakePetLookup{pets: map[string]*model.Pet{
			"pet-1": {ID: "pet-1", Name: "Rocky", WeightKG: 15},
		}},
		&fakeServiceLookup{services: map[string]*model.Service{
			"svc-1": checkup,
			"svc-2": grooming,
		}},
	)

	t.Run("sums per-service prices with one weight lookup", func(t *testing.T) {
		total, err := pricer.TotalForServices(ctx, "pet-1", []string{"svc-1", "svc-2"})
		require.NoError(t, err)
		assert.Equal(t, 230.0, total)
	})

	t.Run("unknown pet", func(t *testing.T) {
		_, err := pricer.TotalForServices(ctx, "missing", []string{"svc-1"})
		assert.ErrorIs(t, err, ErrEntityNotFound)
	})

	t.Run("unknown service", func(t *testing.T) {
		_, err := pricer.TotalForServices(ctx, "pet-1", []string{"missing"})
		assert.ErrorIs(t, err, ErrEntityNotFound)
	})
}

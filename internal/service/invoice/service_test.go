package invoice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huellas-salud/vet-api/internal/model"
	"github.com/huellas-salud/vet-api/internal/repository/memory"
	apperrors "github.com/huellas-salud/vet-api/pkg/errors"
)

const (
	clientDoc = "1013100931"
	petID     = "pet-1"
	svcID     = "svc-1"
	prodID    = "prod-1"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()

	users := memory.NewUserRepository()
	products := memory.NewProductRepository()
	services := memory.NewServiceRepository()
	pets := memory.NewPetRepository()

	require.NoError(t, users.Create(ctx, &model.User{
		DocumentID: clientDoc, Name: "Laura Gomez", Email: "laura@example.com", Role: model.UserRoleClient,
	}))
	require.NoError(t, products.Create(ctx, &model.Product{
		ID: prodID, Name: "Puppy food 2kg", Category: model.ProductCategoryFood, Price: 30, Stock: 10, Active: true,
	}))
	require.NoError(t, services.Create(ctx, &model.Service{
		ID: svcID, Name: "Grooming session", BasePrice: 50, PriceByWeight: true, Active: true,
		WeightPriceRules: model.WeightPriceRules{
			{MinWeight: 0, MaxWeight: 10, Price: 100},
			{MinWeight: 10, MaxWeight: 20, Price: 150},
		},
	}))
	require.NoError(t, pets.Create(ctx, &model.Pet{
		ID: petID, OwnerID: clientDoc, Name: "Firulais", Species: "dog", WeightKG: 25,
	}))

	return NewService(memory.NewInvoiceRepository(), users, products, services, pets)
}

func assertAppCode(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func TestCreateInvoice(t *testing.T) {
	ctx := context.Background()

	t.Run("prices products at catalog price", func(t *testing.T) {
		s := newTestService(t)
		inv, err := s.Create(ctx, &model.CreateInvoiceRequest{
			ClientID: clientDoc,
			Items:    []model.InvoiceItem{{ProductID: prodID, Quantity: 3}},
		})
		require.NoError(t, err)
		assert.Equal(t, model.InvoiceStatusPending, inv.Status)
		assert.Equal(t, 30.0, inv.Items[0].UnitPrice)
		assert.Equal(t, 90.0, inv.Items[0].Subtotal)
		assert.Equal(t, 90.0, inv.Total)
	})

	t.Run("prices weight-priced services against the pet", func(t *testing.T) {
		s := newTestService(t)
		// Weight 25 matches no rule; the most expensive rule applies.
		inv, err := s.Create(ctx, &model.CreateInvoiceRequest{
			ClientID: clientDoc,
			Items:    []model.InvoiceItem{{ServiceID: svcID, PetID: petID, Quantity: 1}},
		})
		require.NoError(t, err)
		assert.Equal(t, 150.0, inv.Total)
	})

	t.Run("prices services at base price without a pet", func(t *testing.T) {
		s := newTestService(t)
		inv, err := s.Create(ctx, &model.CreateInvoiceRequest{
			ClientID: clientDoc,
			Items:    []model.InvoiceItem{{ServiceID: svcID, Quantity: 2}},
		})
		require.NoError(t, err)
		assert.Equal(t, 100.0, inv.Total)
	})

	t.Run("rejects unknown client", func(t *testing.T) {
		s := newTestService(t)
		_, err := s.Create(ctx, &model.CreateInvoiceRequest{
			ClientID: "0000",
			Items:    []model.InvoiceItem{{ProductID: prodID, Quantity: 1}},
		})
		assertAppCode(t, err, apperrors.ErrBadRequest)
	})

	t.Run("rejects item without product or service", func(t *testing.T) {
		s := newTestService(t)
		_, err := s.Create(ctx, &model.CreateInvoiceRequest{
			ClientID: clientDoc,
			Items:    []model.InvoiceItem{{Quantity: 1}},
		})
		assertAppCode(t, err, apperrors.ErrBadRequest)
	})

	t.Run("rejects item with both product and service", func(t *testing.T) {
		s := newTestService(t)
		_, err := s.Create(ctx, &model.CreateInvoiceRequest{
			ClientID: clientDoc,
			Items:    []model.InvoiceItem{{ProductID: prodID, ServiceID: svcID, Quantity: 1}},
		})
		assertAppCode(t, err, apperrors.ErrBadRequest)
	})

	t.Run("rejects unknown product", func(t *testing.T) {
		s := newTestService(t)
		_, err := s.Create(ctx, &model.CreateInvoiceRequest{
			ClientID: clientDoc,
			Items:    []model.InvoiceItem{{ProductID: "missing", Quantity: 1}},
		})
		assertAppCode(t, err, apperrors.ErrBadRequest)
	})
}

func TestUpdateInvoice(t *testing.T) {
	ctx := context.Background()

	t.Run("reprices the replaced items", func(t *testing.T) {
		s := newTestService(t)
		inv, err := s.Create(ctx, &model.CreateInvoiceRequest{
			ClientID: clientDoc,
			Items:    []model.InvoiceItem{{ProductID: prodID, Quantity: 1}},
		})
		require.NoError(t, err)

		updated, err := s.Update(ctx, inv.ID, &model.UpdateInvoiceRequest{
			ClientID: clientDoc,
			Items:    []model.InvoiceItem{{ProductID: prodID, Quantity: 5}},
			Status:   model.InvoiceStatusPending,
		})
		require.NoError(t, err)
		assert.Equal(t, 150.0, updated.Total)
	})

	t.Run("a paid invoice is immutable", func(t *testing.T) {
		s := newTestService(t)
		inv, err := s.Create(ctx, &model.CreateInvoiceRequest{
			ClientID: clientDoc,
			Items:    []model.InvoiceItem{{ProductID: prodID, Quantity: 1}},
		})
		require.NoError(t, err)

		_, err = s.Update(ctx, inv.ID, &model.UpdateInvoiceRequest{
			ClientID: clientDoc,
			Items:    []model.InvoiceItem{{ProductID: prodID, Quantity: 1}},
			Status:   model.InvoiceStatusPaid,
		})
		require.NoError(t, err)

		_, err = s.Update(ctx, inv.ID, &model.UpdateInvoiceRequest{
			ClientID: clientDoc,
			Items:    []model.InvoiceItem{{ProductID: prodID, Quantity: 2}},
			Status:   model.InvoiceStatusPending,
		})
		assertAppCode(t, err, apperrors.ErrConflict)
	})
}

package invoice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/huellas-salud/vet-api/internal/model"
	"github.com/huellas-salud/vet-api/internal/repository"
	"github.com/huellas-salud/vet-api/internal/scheduling"
	apperrors "github.com/huellas-salud/vet-api/pkg/errors"
)

// Service builds and maintains invoices. Prices are always resolved
// server-side: product items at catalog price, service items through the
// weight-pricing rules when a pet is referenced.
type Service struct {
	repo     repository.InvoiceRepository
	users    repository.UserRepository
	products repository.ProductRepository
	services repository.ServiceRepository
	pets     repository.PetRepository
}

func NewService(
	repo repository.InvoiceRepository,
	users repository.UserRepository,
	products repository.ProductRepository,
	services repository.ServiceRepository,
	pets repository.PetRepository,
) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		products: products,
		services: services,
		pets:     pets,
	}
}

func (s *Service) Create(ctx context.Context, req *model.CreateInvoiceRequest) (*model.Invoice, error) {
	exists, err := s.users.ExistsByDocument(ctx, req.ClientID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if !exists {
		return nil, apperrors.BadRequest(fmt.Sprintf("client %s does not exist", req.ClientID), nil)
	}

	items, total, err := s.priceItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	invoice := &model.Invoice{
		ID:       uuid.NewString(),
		ClientID: req.ClientID,
		Date:     time.Now(),
		Items:    items,
		Status:   model.InvoiceStatusPending,
		Total:    total,
	}
	if err := s.repo.Create(ctx, invoice); err != nil {
		return nil, apperrors.Internal(err)
	}
	return invoice, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.Invoice, error) {
	invoice, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("invoice", err)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return invoice, nil
}

// Update replaces the invoice's items and status. A paid invoice is
// immutable.
func (s *Service) Update(ctx context.Context, id string, req *model.UpdateInvoiceRequest) (*model.Invoice, error) {
	invoice, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("invoice", err)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if invoice.Status == model.InvoiceStatusPaid {
		return nil, apperrors.Conflict("paid invoices cannot be modified", nil)
	}

	exists, err := s.users.ExistsByDocument(ctx, req.ClientID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if !exists {
		return nil, apperrors.BadRequest(fmt.Sprintf("client %s does not exist", req.ClientID), nil)
	}

	items, total, err := s.priceItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	invoice.ClientID = req.ClientID
	invoice.Items = items
	invoice.Status = req.Status
	invoice.Total = total

	if err := s.repo.Update(ctx, invoice); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("invoice", err)
		}
		return nil, apperrors.Internal(err)
	}
	return invoice, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("invoice", err)
		}
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]*model.Invoice, error) {
	invoices, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return invoices, nil
}

func (s *Service) ListByClient(ctx context.Context, clientID string) ([]*model.Invoice, error) {
	invoices, err := s.repo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return invoices, nil
}

// priceItems validates every item and resolves its unit price. Each item
// references exactly one of a product or a service.
func (s *Service) priceItems(ctx context.Context, items []model.InvoiceItem) (model.InvoiceItems, float64, error) {
	priced := make(model.InvoiceItems, 0, len(items))
	var total float64

	for i, item := range items {
		if (item.ProductID == "") == (item.ServiceID == "") {
			return nil, 0, apperrors.BadRequest(
				fmt.Sprintf("item %d must reference exactly one of a product or a service", i), nil)
		}
		if item.Quantity < 1 {
			return nil, 0, apperrors.BadRequest(
				fmt.Sprintf("item %d must have a quantity of at least 1", i), nil)
		}

		unitPrice, err := s.unitPrice(ctx, i, item)
		if err != nil {
			return nil, 0, err
		}

		item.UnitPrice = unitPrice
		item.Subtotal = unitPrice * float64(item.Quantity)
		total += item.Subtotal
		priced = append(priced, item)
	}

	return priced, total, nil
}

func (s *Service) unitPrice(ctx context.Context, i int, item model.InvoiceItem) (float64, error) {
	if item.ProductID != "" {
		product, err := s.products.Get(ctx, item.ProductID)
		if errors.Is(err, repository.ErrNotFound) {
			return 0, apperrors.BadRequest(fmt.Sprintf("item %d: product %s does not exist", i, item.ProductID), err)
		}
		if err != nil {
			return 0, apperrors.Internal(err)
		}
		return product.Price, nil
	}

	svc, err := s.services.Get(ctx, item.ServiceID)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, apperrors.BadRequest(fmt.Sprintf("item %d: service %s does not exist", i, item.ServiceID), err)
	}
	if err != nil {
		return 0, apperrors.Internal(err)
	}

	if item.PetID == "" {
		return svc.BasePrice, nil
	}

	pet, err := s.pets.Get(ctx, item.PetID)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, apperrors.BadRequest(fmt.Sprintf("item %d: pet %s does not exist", i, item.PetID), err)
	}
	if err != nil {
		return 0, apperrors.Internal(err)
	}

	return scheduling.PriceForWeight(svc, pet.WeightKG), nil
}

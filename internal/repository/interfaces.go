package repository

import (
	"context"
	"errors"
	"time"

	"github.com/huellas-salud/vet-api/internal/model"
)

// Sentinel errors shared by all implementations.
var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when an appointment write loses the race
	// against a concurrent booking for the same veterinarian.
	ErrConflict = errors.New("conflicting appointment exists")
)

// All repository interfaces in one file
type (
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		GetByDocument(ctx context.Context, documentID string) (*model.User, error)
		ExistsByDocument(ctx context.Context, documentID string) (bool, error)
		Update(ctx context.Context, user *model.User) error
		Delete(ctx context.Context, documentID string) error
		List(ctx context.Context) ([]*model.User, error)
	}

	PetRepository interface {
		Create(ctx context.Context, pet *model.Pet) error
		Get(ctx context.Context, id string) (*model.Pet, error)
		Update(ctx context.Context, pet *model.Pet) error
		Delete(ctx context.Context, id string) error
		List(ctx context.Context) ([]*model.Pet, error)
		ListByOwner(ctx context.Context, ownerID string) ([]*model.Pet, error)
	}

	ServiceRepository interface {
		Create(ctx context.Context, service *model.Service) error
		Get(ctx context.Context, id string) (*model.Service, error)
		Update(ctx context.Context, service *model.Service) error
		Delete(ctx context.Context, id string) error
		List(ctx context.Context) ([]*model.Service, error)
	}

	ProductRepository interface {
		Create(ctx context.Context, product *model.Product) error
		Get(ctx context.Context, id string) (*model.Product, error)
		Update(ctx context.Context, product *model.Product) error
		Delete(ctx context.Context, id string) error
		List(ctx context.Context) ([]*model.Product, error)
	}

	AnnouncementRepository interface {
		Create(ctx context.Context, announcement *model.Announcement) error
		Get(ctx context.Context, id string) (*model.Announcement, error)
		Update(ctx context.Context, announcement *model.Announcement) error
		Delete(ctx context.Context, id string) error
		List(ctx context.Context) ([]*model.Announcement, error)
		ListActive(ctx context.Context) ([]*model.Announcement, error)
		DeactivateActivatedBefore(ctx context.Context, cutoff time.Time) ([]*model.Announcement, error)
	}

	InvoiceRepository interface {
		Create(ctx context.Context, invoice *model.Invoice) error
		Get(ctx context.Context, id string) (*model.Invoice, error)
		Update(ctx context.Context, invoice *model.Invoice) error
		Delete(ctx context.Context, id string) error
		List(ctx context.Context) ([]*model.Invoice, error)
		ListByClient(ctx context.Context, clientID string) ([]*model.Invoice, error)
	}

	ScheduleRepository interface {
		Create(ctx context.Context, schedule *model.Schedule) error
		Get(ctx context.Context, id string) (*model.Schedule, error)
		Update(ctx context.Context, schedule *model.Schedule) error
		Delete(ctx context.Context, id string) error
		List(ctx context.Context) ([]*model.Schedule, error)
		ListByVeterinarian(ctx context.Context, vetID string) ([]*model.Schedule, error)
		// FindByVeterinarianAndDay returns (nil, nil) when no schedule is
		// registered for the pair.
		FindByVeterinarianAndDay(ctx context.Context, vetID string, day model.DayOfWeek) (*model.Schedule, error)
		// ExistsForDay reports whether the veterinarian already has a
		// schedule on the day, skipping excludeID when non-empty.
		ExistsForDay(ctx context.Context, vetID string, day model.DayOfWeek, excludeID string) (bool, error)
	}

	AppointmentRepository interface {
		// Create inserts the appointment after re-checking for overlaps
		// inside a transaction serialized per veterinarian. Returns
		// ErrConflict when a concurrent booking won the slot.
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id string) (*model.Appointment, error)
		// Update rewrites the appointment under the same per-veterinarian
		// serialization as Create, excluding the record itself from the
		// overlap re-check.
		Update(ctx context.Context, appointment *model.Appointment) error
		Delete(ctx context.Context, id string) error
		List(ctx context.Context) ([]*model.Appointment, error)
		ListByOwner(ctx context.Context, ownerID string) ([]*model.Appointment, error)
		// ListByVeterinarian returns the veterinarian's non-cancelled
		// appointments, the overlap candidates for a new booking.
		ListByVeterinarian(ctx context.Context, vetID string) ([]*model.Appointment, error)
		ListByVeterinarianAndDate(ctx context.Context, vetID string, date time.Time) ([]*model.Appointment, error)
	}
)

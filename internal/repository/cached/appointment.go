package cached

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/huellas-salud/vet-api/internal/model"
	"github.com/huellas-salud/vet-api/internal/repository"
	"github.com/huellas-salud/vet-api/pkg/metrics"
)

// appointmentRepository caches only the full listing; everything the
// conflict checker reads goes straight to the inner repository, so a
// cached entry can never mask a booking.
type appointmentRepository struct {
	inner   repository.AppointmentRepository
	cache   *gocache.Cache
	metrics *metrics.Metrics
}

func NewAppointmentRepository(inner repository.AppointmentRepository, c *gocache.Cache, m *metrics.Metrics) repository.AppointmentRepository {
	return &appointmentRepository{inner: inner, cache: c, metrics: m}
}

const appointmentListKey = "appointments:all"

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	if err := r.inner.Create(ctx, appointment); err != nil {
		return err
	}
	r.cache.Delete(appointmentListKey)
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id string) (*model.Appointment, error) {
	return r.inner.Get(ctx, id)
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	if err := r.inner.Update(ctx, appointment); err != nil {
		return err
	}
	r.cache.Delete(appointmentListKey)
	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id string) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	r.cache.Delete(appointmentListKey)
	return nil
}

func (r *appointmentRepository) List(ctx context.Context) ([]*model.Appointment, error) {
	if cached, ok := r.cache.Get(appointmentListKey); ok {
		if r.metrics != nil {
			r.metrics.CacheHits.WithLabelValues("appointments").Inc()
		}
		return cached.([]*model.Appointment), nil
	}
	if r.metrics != nil {
		r.metrics.CacheMisses.WithLabelValues("appointments").Inc()
	}

	appointments, err := r.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	r.cache.Set(appointmentListKey, appointments, gocache.DefaultExpiration)
	return appointments, nil
}

func (r *appointmentRepository) ListByOwner(ctx context.Context, ownerID string) ([]*model.Appointment, error) {
	return r.inner.ListByOwner(ctx, ownerID)
}

func (r *appointmentRepository) ListByVeterinarian(ctx context.Context, vetID string) ([]*model.Appointment, error) {
	return r.inner.ListByVeterinarian(ctx, vetID)
}

func (r *appointmentRepository) ListByVeterinarianAndDate(ctx context.Context, vetID string, date time.Time) ([]*model.Appointment, error) {
	return r.inner.ListByVeterinarianAndDate(ctx, vetID, date)
}

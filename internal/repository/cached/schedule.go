package cached

import (
	"context"
	"fmt"

	gocache "github.com/patrickmn/go-cache"

	"github.com/huellas-salud/vet-api/internal/model"
	"github.com/huellas-salud/vet-api/internal/repository"
	"github.com/huellas-salud/vet-api/pkg/metrics"
)

// scheduleRepository decorates a ScheduleRepository with a read cache on
// the list paths. Every mutation flushes the cache wholesale; schedules
// change rarely enough that finer invalidation buys nothing.
type scheduleRepository struct {
	inner   repository.ScheduleRepository
	cache   *gocache.Cache
	metrics *metrics.Metrics
}

func NewScheduleRepository(inner repository.ScheduleRepository, c *gocache.Cache, m *metrics.Metrics) repository.ScheduleRepository {
	return &scheduleRepository{inner: inner, cache: c, metrics: m}
}

const scheduleListKey = "schedules:all"

func scheduleVetKey(vetID string) string {
	return fmt.Sprintf("schedules:vet:%s", vetID)
}

func (r *scheduleRepository) Create(ctx context.Context, schedule *model.Schedule) error {
	if err := r.inner.Create(ctx, schedule); err != nil {
		return err
	}
	r.cache.Flush()
	return nil
}

func (r *scheduleRepository) Get(ctx context.Context, id string) (*model.Schedule, error) {
	return r.inner.Get(ctx, id)
}

func (r *scheduleRepository) Update(ctx context.Context, schedule *model.Schedule) error {
	if err := r.inner.Update(ctx, schedule); err != nil {
		return err
	}
	r.cache.Flush()
	return nil
}

func (r *scheduleRepository) Delete(ctx context.Context, id string) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	r.cache.Flush()
	return nil
}

func (r *scheduleRepository) List(ctx context.Context) ([]*model.Schedule, error) {
	if cached, ok := r.cache.Get(scheduleListKey); ok {
		r.hit()
		return cached.([]*model.Schedule), nil
	}
	r.miss()

	schedules, err := r.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	r.cache.Set(scheduleListKey, schedules, gocache.DefaultExpiration)
	return schedules, nil
}

func (r *scheduleRepository) ListByVeterinarian(ctx context.Context, vetID string) ([]*model.Schedule, error) {
	key := scheduleVetKey(vetID)
	if cached, ok := r.cache.Get(key); ok {
		r.hit()
		return cached.([]*model.Schedule), nil
	}
	r.miss()

	schedules, err := r.inner.ListByVeterinarian(ctx, vetID)
	if err != nil {
		return nil, err
	}
	r.cache.Set(key, schedules, gocache.DefaultExpiration)
	return schedules, nil
}

func (r *scheduleRepository) FindByVeterinarianAndDay(ctx context.Context, vetID string, day model.DayOfWeek) (*model.Schedule, error) {
	return r.inner.FindByVeterinarianAndDay(ctx, vetID, day)
}

func (r *scheduleRepository) ExistsForDay(ctx context.Context, vetID string, day model.DayOfWeek, excludeID string) (bool, error) {
	return r.inner.ExistsForDay(ctx, vetID, day, excludeID)
}

func (r *scheduleRepository) hit() {
	if r.metrics != nil {
		r.metrics.CacheHits.WithLabelValues("schedules").Inc()
	}
}

func (r *scheduleRepository) miss() {
	if r.metrics != nil {
		r.metrics.CacheMisses.WithLabelValues("schedules").Inc()
	}
}

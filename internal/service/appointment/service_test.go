package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huellas-salud/vet-api/internal/model"
	"github.com/huellas-salud/vet-api/internal/repository/memory"
	"github.com/huellas-salud/vet-api/internal/scheduling"
	apperrors "github.com/huellas-salud/vet-api/pkg/errors"
	"github.com/huellas-salud/vet-api/pkg/logger"
)

const (
	ownerDoc = "1013100931"
	vetDoc   = "79355602"
	petID    = "pet-1"
	svcID    = "svc-1"
)

// 2025-12-05 is a Friday.
func at(hour, minute int) time.Time {
	return time.Date(2025, 12, 5, hour, minute, 0, 0, time.UTC)
}

func str(s string) *string { return &s }

type fixture struct {
	svc          *Service
	appointments *memory.AppointmentRepository
	pets         *memory.PetRepository
	services     *memory.ServiceRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	users := memory.NewUserRepository()
	pets := memory.NewPetRepository()
	services := memory.NewServiceRepository()
	schedules := memory.NewScheduleRepository()
	appointments := memory.NewAppointmentRepository()

	require.NoError(t, users.Create(ctx, &model.User{
		DocumentID: ownerDoc, Name: "Laura Gomez", Email: "laura@example.com", Role: model.UserRoleClient,
	}))
	require.NoError(t, users.Create(ctx, &model.User{
		DocumentID: vetDoc, Name: "Carlos Ruiz", Email: "carlos@example.com", Role: model.UserRoleVeterinarian,
	}))
	require.NoError(t, pets.Create(ctx, &model.Pet{
		ID: petID, OwnerID: ownerDoc, Name: "Firulais", Species: "dog", WeightKG: 12,
	}))
	require.NoError(t, services.Create(ctx, &model.Service{
		ID: svcID, Name: "General consultation", BasePrice: 80, Active: true,
	}))
	require.NoError(t, schedules.Create(ctx, &model.Schedule{
		ID: "sched-1", VeterinarianID: vetDoc, DayOfWeek: model.Friday,
		StartTime: "08:00", EndTime: "17:00",
		LunchStart: str("12:00"), LunchEnd: str("13:00"),
		Active: true,
	}))

	checker := scheduling.NewChecker(schedules, appointments)
	svc := NewService(appointments, users, pets, services, checker, nil, nil, nil, logger.New(nil))

	return &fixture{svc: svc, appointments: appointments, pets: pets, services: services}
}

func createRequest(start time.Time) *model.CreateAppointmentRequest {
	return &model.CreateAppointmentRequest{
		OwnerID:        ownerDoc,
		PetID:          petID,
		VeterinarianID: vetDoc,
		ServiceIDs:     []string{svcID},
		StartTime:      start,
	}
}

func assertAppCode(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func TestCreateAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("books a free slot as pending", func(t *testing.T) {
		f := newFixture(t)
		apt, err := f.svc.Create(ctx, createRequest(at(9, 0)))
		require.NoError(t, err)
		assert.NotEmpty(t, apt.ID)
		assert.Equal(t, model.AppointmentStatusPending, apt.Status)
		assert.Equal(t, at(9, 30), apt.EndTime())
	})

	t.Run("rejects unknown owner", func(t *testing.T) {
		f := newFixture(t)
		req := createRequest(at(9, 0))
		req.OwnerID = "0000"
		_, err := f.svc.Create(ctx, req)
		assertAppCode(t, err, apperrors.ErrBadRequest)
	})

	t.Run("rejects pet of another owner", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.pets.Create(ctx, &model.Pet{
			ID: "pet-2", OwnerID: "someone-else", Name: "Michi", Species: "cat", WeightKG: 4,
		}))
		req := createRequest(at(9, 0))
		req.PetID = "pet-2"
		_, err := f.svc.Create(ctx, req)
		assertAppCode(t, err, apperrors.ErrBadRequest)
	})

	t.Run("rejects a client posing as veterinarian", func(t *testing.T) {
		f := newFixture(t)
		req := createRequest(at(9, 0))
		req.VeterinarianID = ownerDoc
		_, err := f.svc.Create(ctx, req)
		assertAppCode(t, err, apperrors.ErrBadRequest)
	})

	t.Run("rejects slot outside working hours", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Create(ctx, createRequest(at(18, 0)))
		assertAppCode(t, err, apperrors.ErrBadRequest)
	})

	t.Run("rejects slot overlapping lunch", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Create(ctx, createRequest(at(12, 0)))
		assertAppCode(t, err, apperrors.ErrBadRequest)
	})

	t.Run("rejects a taken slot with conflict", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Create(ctx, createRequest(at(10, 0)))
		require.NoError(t, err)

		_, err = f.svc.Create(ctx, createRequest(at(10, 0)))
		assertAppCode(t, err, apperrors.ErrConflict)
	})

	t.Run("cancelled appointment frees its slot", func(t *testing.T) {
		f := newFixture(t)
		apt, err := f.svc.Create(ctx, createRequest(at(10, 0)))
		require.NoError(t, err)

		cancelled := model.AppointmentStatusCancelled
		_, err = f.svc.Update(ctx, apt.ID, &model.UpdateAppointmentRequest{Status: &cancelled})
		require.NoError(t, err)

		_, err = f.svc.Create(ctx, createRequest(at(10, 0)))
		assert.NoError(t, err)
	})
}

func TestUpdateAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("merges only the provided fields", func(t *testing.T) {
		f := newFixture(t)
		apt, err := f.svc.Create(ctx, createRequest(at(9, 0)))
		require.NoError(t, err)

		notes := "bring the vaccination card"
		updated, err := f.svc.Update(ctx, apt.ID, &model.UpdateAppointmentRequest{Notes: &notes})
		require.NoError(t, err)
		assert.Equal(t, notes, updated.Notes)
		assert.Equal(t, at(9, 0), updated.StartTime)
		assert.Equal(t, vetDoc, updated.VeterinarianID)
	})

	t.Run("moving to a free slot does not conflict with itself", func(t *testing.T) {
		f := newFixture(t)
		apt, err := f.svc.Create(ctx, createRequest(at(9, 0)))
		require.NoError(t, err)

		newStart := at(9, 30)
		updated, err := f.svc.Update(ctx, apt.ID, &model.UpdateAppointmentRequest{StartTime: &newStart})
		require.NoError(t, err)
		assert.Equal(t, newStart, updated.StartTime)
	})

	t.Run("moving onto another booking conflicts", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Create(ctx, createRequest(at(9, 0)))
		require.NoError(t, err)
		apt, err := f.svc.Create(ctx, createRequest(at(10, 0)))
		require.NoError(t, err)

		newStart := at(9, 0)
		_, err = f.svc.Update(ctx, apt.ID, &model.UpdateAppointmentRequest{StartTime: &newStart})
		assertAppCode(t, err, apperrors.ErrConflict)
	})

	t.Run("unknown appointment is not found", func(t *testing.T) {
		f := newFixture(t)
		notes := "x"
		_, err := f.svc.Update(ctx, "missing", &model.UpdateAppointmentRequest{Notes: &notes})
		assertAppCode(t, err, apperrors.ErrNotFound)
	})
}

func TestGetAvailableSlots(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Create(ctx, createRequest(at(16, 0)))
	require.NoError(t, err)

	slots, err := f.svc.GetAvailableSlots(ctx, vetDoc, at(0, 0))
	require.NoError(t, err)

	assert.NotContains(t, slots, "16:00")
	assert.Contains(t, slots, "15:30")
	assert.Contains(t, slots, "16:30")
	assert.NotContains(t, slots, "12:00")
	assert.Contains(t, slots, "11:30")
}

// Concurrent bookings for the same slot must admit exactly one winner.
func TestConcurrentBookingsSameSlot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	const attempts = 20
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Create(ctx, createRequest(at(11, 0)))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var won, conflicted int
	for err := range results {
		if err == nil {
			won++
			continue
		}
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		require.Equal(t, apperrors.ErrConflict, appErr.Code)
		conflicted++
	}

	assert.Equal(t, 1, won)
	assert.Equal(t, attempts-1, conflicted)
}

func TestEstimatePrice(t *testing.T) {
	ctx := context.Background()

	t.Run("sums weight-adjusted prices across services", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.services.Create(ctx, &model.Service{
			ID: "svc-groom", Name: "Grooming", BasePrice: 40, Active: true,
			PriceByWeight: true,
			WeightPriceRules: model.WeightPriceRules{
				{MinWeight: 0, MaxWeight: 10, Price: 50},
				{MinWeight: 10.01, MaxWeight: 25, Price: 75},
			},
		}))

		req := createRequest(at(9, 0))
		req.ServiceIDs = []string{svcID, "svc-groom"}
		apt, err := f.svc.Create(ctx, req)
		require.NoError(t, err)

		// 80 base consultation + 75 for the 12kg grooming tier.
		price, err := f.svc.EstimatePrice(ctx, apt.ID)
		require.NoError(t, err)
		assert.Equal(t, 155.0, price)
	})

	t.Run("unknown appointment is not found", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.EstimatePrice(ctx, "missing")
		assertAppCode(t, err, apperrors.ErrNotFound)
	})
}

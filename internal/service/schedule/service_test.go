package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huellas-salud/vet-api/internal/model"
	"github.com/huellas-salud/vet-api/internal/repository/memory"
	apperrors "github.com/huellas-salud/vet-api/pkg/errors"
)

const vetDoc = "79355602"

func str(s string) *string { return &s }

func newTestService(t *testing.T) *Service {
	t.Helper()
	users := memory.NewUserRepository()
	require.NoError(t, users.Create(context.Background(), &model.User{
		DocumentID: vetDoc, Name: "Carlos Ruiz", Email: "carlos@example.com", Role: model.UserRoleVeterinarian,
	}))
	return NewService(memory.NewScheduleRepository(), users)
}

func mondayRequest() *model.CreateScheduleRequest {
	return &model.CreateScheduleRequest{
		VeterinarianID: vetDoc,
		DayOfWeek:      model.Monday,
		StartTime:      "08:00",
		EndTime:        "17:00",
		LunchStart:     str("12:00"),
		LunchEnd:       str("13:00"),
		Active:         true,
	}
}

func assertAppCode(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func TestCreateSchedule(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a valid schedule", func(t *testing.T) {
		s := newTestService(t)
		schedule, err := s.Create(ctx, mondayRequest())
		require.NoError(t, err)
		assert.NotEmpty(t, schedule.ID)
		assert.True(t, schedule.HasLunch())
	})

	t.Run("rejects unknown veterinarian", func(t *testing.T) {
		s := newTestService(t)
		req := mondayRequest()
		req.VeterinarianID = "0000"
		_, err := s.Create(ctx, req)
		assertAppCode(t, err, apperrors.ErrBadRequest)
	})

	t.Run("rejects a second schedule for the same day", func(t *testing.T) {
		s := newTestService(t)
		_, err := s.Create(ctx, mondayRequest())
		require.NoError(t, err)

		req := mondayRequest()
		req.StartTime = "09:00"
		_, err = s.Create(ctx, req)
		assertAppCode(t, err, apperrors.ErrBadRequest)
	})

	t.Run("allows schedules on different days", func(t *testing.T) {
		s := newTestService(t)
		_, err := s.Create(ctx, mondayRequest())
		require.NoError(t, err)

		req := mondayRequest()
		req.DayOfWeek = model.Tuesday
		_, err = s.Create(ctx, req)
		assert.NoError(t, err)
	})

	t.Run("rejects start after end", func(t *testing.T) {
		s := newTestService(t)
		req := mondayRequest()
		req.StartTime = "17:00"
		req.EndTime = "08:00"
		_, err := s.Create(ctx, req)
		assertAppCode(t, err, apperrors.ErrBadRequest)
	})

	t.Run("rejects a lone lunch bound", func(t *testing.T) {
		s := newTestService(t)
		req := mondayRequest()
		req.LunchEnd = nil
		_, err := s.Create(ctx, req)
		assertAppCode(t, err, apperrors.ErrBadRequest)
	})

	t.Run("rejects lunch outside working hours", func(t *testing.T) {
		s := newTestService(t)
		req := mondayRequest()
		req.LunchStart = str("07:00")
		req.LunchEnd = str("08:30")
		_, err := s.Create(ctx, req)
		assertAppCode(t, err, apperrors.ErrBadRequest)
	})
}

func TestUpdateSchedule(t *testing.T) {
	ctx := context.Background()

	t.Run("saving a schedule unchanged does not trip the duplicate rule", func(t *testing.T) {
		s := newTestService(t)
		schedule, err := s.Create(ctx, mondayRequest())
		require.NoError(t, err)

		req := &model.UpdateScheduleRequest{
			VeterinarianID: vetDoc,
			DayOfWeek:      model.Monday,
			StartTime:      "08:00",
			EndTime:        "16:00",
			Active:         true,
		}
		updated, err := s.Update(ctx, schedule.ID, req)
		require.NoError(t, err)
		assert.Equal(t, "16:00", updated.EndTime)
		assert.False(t, updated.HasLunch())
	})

	t.Run("moving onto another schedule's day is rejected", func(t *testing.T) {
		s := newTestService(t)
		_, err := s.Create(ctx, mondayRequest())
		require.NoError(t, err)

		tuesday := mondayRequest()
		tuesday.DayOfWeek = model.Tuesday
		second, err := s.Create(ctx, tuesday)
		require.NoError(t, err)

		req := &model.UpdateScheduleRequest{
			VeterinarianID: vetDoc,
			DayOfWeek:      model.Monday,
			StartTime:      "08:00",
			EndTime:        "17:00",
			Active:         true,
		}
		_, err = s.Update(ctx, second.ID, req)
		assertAppCode(t, err, apperrors.ErrBadRequest)
	})

	t.Run("unknown schedule is not found", func(t *testing.T) {
		s := newTestService(t)
		req := &model.UpdateScheduleRequest{
			VeterinarianID: vetDoc,
			DayOfWeek:      model.Monday,
			StartTime:      "08:00",
			EndTime:        "17:00",
		}
		_, err := s.Update(ctx, "missing", req)
		assertAppCode(t, err, apperrors.ErrNotFound)
	})
}

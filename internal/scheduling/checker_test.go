package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huellas-salud/vet-api/internal/model"
)

type fakeScheduleLookup struct {
	schedules map[string]*model.Schedule // keyed by vetID + day
}

func (f *fakeScheduleLookup) FindByVeterinarianAndDay(_ context.Context, vetID string, day model.DayOfWeek) (*model.Schedule, error) {
	return f.schedules[vetID+"/"+string(day)], nil
}

type fakeAppointmentLookup struct {
	appointments []*model.Appointment
}

func (f *fakeAppointmentLookup) ListByVeterinarian(_ context.Context, vetID string) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, a := range f.appointments {
		if a.VeterinarianID == vetID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentLookup) ListByVeterinarianAndDate(_ context.Context, vetID string, date time.Time) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, a := range f.appointments {
		y1, m1, d1 := a.StartTime.Date()
		y2, m2, d2 := date.Date()
		if a.VeterinarianID == vetID && y1 == y2 && m1 == m2 && d1 == d2 {
			out = append(out, a)
		}
	}
	return out, nil
}

func str(s string) *string { return &s }

// 2025-12-05 is a Friday.
func fridaySchedule(vetID string, active bool) *model.Schedule {
	return &model.Schedule{
		ID:             "sched-1",
		VeterinarianID: vetID,
		DayOfWeek:      model.Friday,
		StartTime:      "08:00",
		EndTime:        "17:00",
		LunchStart:     str("12:00"),
		LunchEnd:       str("13:00"),
		Active:         active,
	}
}

func newTestChecker(schedule *model.Schedule, appointments ...*model.Appointment) *Checker {
	schedules := &fakeScheduleLookup{schedules: map[string]*model.Schedule{}}
	if schedule != nil {
		schedules.schedules[schedule.VeterinarianID+"/"+string(schedule.DayOfWeek)] = schedule
	}
	return NewChecker(schedules, &fakeAppointmentLookup{appointments: appointments})
}

func TestValidateWithinSchedule(t *testing.T) {
	ctx := context.Background()
	vet := "1013100931"

	t.Run("no schedule for day", func(t *testing.T) {
		c := newTestChecker(nil)
		err := c.ValidateWithinSchedule(ctx, vet, at(9, 0), at(9, 30))
		assert.ErrorIs(t, err, ErrNoScheduleForDay)
	})

	t.Run("inactive schedule", func(t *testing.T) {
		c := newTestChecker(fridaySchedule(vet, false))
		err := c.ValidateWithinSchedule(ctx, vet, at(9, 0), at(9, 30))
		assert.ErrorIs(t, err, ErrScheduleInactive)
	})

	t.Run("outside working hours", func(t *testing.T) {
		c := newTestChecker(fridaySchedule(vet, true))
		assert.ErrorIs(t, c.ValidateWithinSchedule(ctx, vet, at(7, 0), at(7, 30)), ErrOutsideWorkingHours)
		assert.ErrorIs(t, c.ValidateWithinSchedule(ctx, vet, at(16, 45), at(17, 15)), ErrOutsideWorkingHours)
	})

	t.Run("overlaps lunch", func(t *testing.T) {
		c := newTestChecker(fridaySchedule(vet, true))
		assert.ErrorIs(t, c.ValidateWithinSchedule(ctx, vet, at(12, 0), at(12, 30)), ErrOverlapsLunch)
		assert.ErrorIs(t, c.ValidateWithinSchedule(ctx, vet, at(12, 30), at(13, 0)), ErrOverlapsLunch)
	})

	t.Run("slot touching lunch start is allowed", func(t *testing.T) {
		c := newTestChecker(fridaySchedule(vet, true))
		assert.NoError(t, c.ValidateWithinSchedule(ctx, vet, at(11, 30), at(12, 0)))
	})

	t.Run("slot starting at lunch end is allowed", func(t *testing.T) {
		c := newTestChecker(fridaySchedule(vet, true))
		assert.NoError(t, c.ValidateWithinSchedule(ctx, vet, at(13, 0), at(13, 30)))
	})

	t.Run("last slot of the day is allowed", func(t *testing.T) {
		c := newTestChecker(fridaySchedule(vet, true))
		assert.NoError(t, c.ValidateWithinSchedule(ctx, vet, at(16, 30), at(17, 0)))
	})

	t.Run("schedule without lunch", func(t *testing.T) {
		s := fridaySchedule(vet, true)
		s.LunchStart, s.LunchEnd = nil, nil
		c := newTestChecker(s)
		assert.NoError(t, c.ValidateWithinSchedule(ctx, vet, at(12, 0), at(12, 30)))
	})
}

func TestValidateNoOverlap(t *testing.T) {
	ctx := context.Background()
	vet := "1013100931"

	booked := &model.Appointment{
		ID:             "apt-1",
		VeterinarianID: vet,
		StartTime:      at(16, 0),
		Status:         model.AppointmentStatusPending,
	}

	t.Run("conflicting slot rejected", func(t *testing.T) {
		c := newTestChecker(fridaySchedule(vet, true), booked)
		assert.ErrorIs(t, c.ValidateNoOverlap(ctx, vet, at(16, 0), at(16, 30), ""), ErrSlotConflict)
		assert.ErrorIs(t, c.ValidateNoOverlap(ctx, vet, at(15, 45), at(16, 15), ""), ErrSlotConflict)
	})

	t.Run("adjacent slots allowed", func(t *testing.T) {
		c := newTestChecker(fridaySchedule(vet, true), booked)
		assert.NoError(t, c.ValidateNoOverlap(ctx, vet, at(15, 30), at(16, 0), ""))
		assert.NoError(t, c.ValidateNoOverlap(ctx, vet, at(16, 30), at(17, 0), ""))
	})

	t.Run("cancelled appointments never conflict", func(t *testing.T) {
		cancelled := &model.Appointment{
			ID:             "apt-2",
			VeterinarianID: vet,
			StartTime:      at(16, 0),
			Status:         model.AppointmentStatusCancelled,
		}
		c := newTestChecker(fridaySchedule(vet, true), cancelled)
		assert.NoError(t, c.ValidateNoOverlap(ctx, vet, at(16, 0), at(16, 30), ""))
	})

	t.Run("updating an appointment to its own slot succeeds", func(t *testing.T) {
		c := newTestChecker(fridaySchedule(vet, true), booked)
		assert.NoError(t, c.ValidateNoOverlap(ctx, vet, at(16, 0), at(16, 30), booked.ID))
	})

	t.Run("other veterinarians do not conflict", func(t *testing.T) {
		c := newTestChecker(fridaySchedule(vet, true), booked)
		assert.NoError(t, c.ValidateNoOverlap(ctx, "other-vet", at(16, 0), at(16, 30), ""))
	})
}

func TestListAvailableSlots(t *testing.T) {
	ctx := context.Background()
	vet := "1013100931"
	date := at(0, 0)

	t.Run("full grid excludes lunch", func(t *testing.T) {
		c := newTestChecker(fridaySchedule(vet, true))
		slots, err := c.ListAvailableSlots(ctx, vet, date)
		require.NoError(t, err)

		want := []string{
			"08:00", "08:30", "09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
			"13:00", "13:30", "14:00", "14:30", "15:00", "15:30", "16:00", "16:30",
		}
		assert.Equal(t, want, slots)
		assert.NotContains(t, slots, "12:00")
		assert.NotContains(t, slots, "12:30")
		assert.Contains(t, slots, "11:30")
	})

	t.Run("booked slot excluded, neighbours kept", func(t *testing.T) {
		booked := &model.Appointment{
			ID:             "apt-1",
			VeterinarianID: vet,
			StartTime:      time.Date(2025, 12, 5, 16, 0, 0, 0, time.UTC),
			Status:         model.AppointmentStatusConfirmed,
		}
		c := newTestChecker(fridaySchedule(vet, true), booked)
		slots, err := c.ListAvailableSlots(ctx, vet, date)
		require.NoError(t, err)

		assert.NotContains(t, slots, "16:00")
		assert.Contains(t, slots, "15:30")
		assert.Contains(t, slots, "16:30")
	})

	t.Run("cancelled booking frees its slot", func(t *testing.T) {
		cancelled := &model.Appointment{
			ID:             "apt-2",
			VeterinarianID: vet,
			StartTime:      time.Date(2025, 12, 5, 16, 0, 0, 0, time.UTC),
			Status:         model.AppointmentStatusCancelled,
		}
		c := newTestChecker(fridaySchedule(vet, true), cancelled)
		slots, err := c.ListAvailableSlots(ctx, vet, date)
		require.NoError(t, err)
		assert.Contains(t, slots, "16:00")
	})

	t.Run("missing schedule", func(t *testing.T) {
		c := newTestChecker(nil)
		_, err := c.ListAvailableSlots(ctx, vet, date)
		assert.ErrorIs(t, err, ErrNoScheduleForDay)
	})

	t.Run("inactive schedule", func(t *testing.T) {
		c := newTestChecker(fridaySchedule(vet, false))
		_, err := c.ListAvailableSlots(ctx, vet, date)
		assert.ErrorIs(t, err, ErrScheduleInactive)
	})
}

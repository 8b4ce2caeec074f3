package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/huellas-salud/vet-api/internal/model"
)

// ScheduleLookup resolves a veterinarian's schedule for one day of the week,
// active or not. A nil schedule with a nil error means none is registered.
type ScheduleLookup interface {
	FindByVeterinarianAndDay(ctx context.Context, vetID string, day model.DayOfWeek) (*model.Schedule, error)
}

// AppointmentLookup fetches the bookings a proposed appointment could
// collide with.
type AppointmentLookup interface {
	ListByVeterinarian(ctx context.Context, vetID string) ([]*model.Appointment, error)
	ListByVeterinarianAndDate(ctx context.Context, vetID string, date time.Time) ([]*model.Appointment, error)
}

// Checker validates appointment timing against schedules and existing
// bookings. It owns no state; all reads go through the lookups.
type Checker struct {
	schedules    ScheduleLookup
	appointments AppointmentLookup
}

func NewChecker(schedules ScheduleLookup, appointments AppointmentLookup) *Checker {
	return &Checker{schedules: schedules, appointments: appointments}
}

// ValidateWithinSchedule checks that [start, end] sits inside the
// veterinarian's active work window for start's day of week and clears the
// lunch break.
func (c *Checker) ValidateWithinSchedule(ctx context.Context, vetID string, start, end time.Time) error {
	schedule, err := c.schedules.FindByVeterinarianAndDay(ctx, vetID, model.DayOfWeekFromTime(start))
	if err != nil {
		return fmt.Errorf("schedule lookup: %w", err)
	}
	if schedule == nil {
		return ErrNoScheduleForDay
	}
	if !schedule.IsActive() {
		return ErrScheduleInactive
	}

	workStart, workEnd, err := schedule.WorkWindowOn(start)
	if err != nil {
		return fmt.Errorf("resolve work window: %w", err)
	}
	if !Contains(workStart, workEnd, start, end) {
		return ErrOutsideWorkingHours
	}

	lunchStart, lunchEnd, hasLunch, err := schedule.LunchWindowOn(start)
	if err != nil {
		return fmt.Errorf("resolve lunch window: %w", err)
	}
	if hasLunch && Overlaps(lunchStart, lunchEnd, start, end) {
		return ErrOverlapsLunch
	}

	return nil
}

// ValidateNoOverlap checks [start, end) against every non-cancelled
// appointment of the veterinarian. excludeID, when non-empty, skips the
// appointment being updated so it never conflicts with itself.
func (c *Checker) ValidateNoOverlap(ctx context.Context, vetID string, start, end time.Time, excludeID string) error {
	existing, err := c.appointments.ListByVeterinarian(ctx, vetID)
	if err != nil {
		return fmt.Errorf("appointment lookup: %w", err)
	}

	for _, apt := range existing {
		if apt.IsCancelled() {
			continue
		}
		if excludeID != "" && apt.ID == excludeID {
			continue
		}
		if Overlaps(apt.StartTime, apt.EndTime(), start, end) {
			return ErrSlotConflict
		}
	}
	return nil
}

// ListAvailableSlots returns the free slot start times for one
// veterinarian and date as ascending "15:04" strings. Past slots are not
// filtered out; a caller asking for yesterday gets yesterday's free grid.
func (c *Checker) ListAvailableSlots(ctx context.Context, vetID string, date time.Time) ([]string, error) {
	schedule, err := c.schedules.FindByVeterinarianAndDay(ctx, vetID, model.DayOfWeekFromTime(date))
	if err != nil {
		return nil, fmt.Errorf("schedule lookup: %w", err)
	}
	if schedule == nil {
		return nil, ErrNoScheduleForDay
	}
	if !schedule.IsActive() {
		return nil, ErrScheduleInactive
	}

	workStart, workEnd, err := schedule.WorkWindowOn(date)
	if err != nil {
		return nil, fmt.Errorf("resolve work window: %w", err)
	}
	lunchStart, lunchEnd, hasLunch, err := schedule.LunchWindowOn(date)
	if err != nil {
		return nil, fmt.Errorf("resolve lunch window: %w", err)
	}

	booked, err := c.appointments.ListByVeterinarianAndDate(ctx, vetID, date)
	if err != nil {
		return nil, fmt.Errorf("appointment lookup: %w", err)
	}

	slots := make([]string, 0)
	for _, slotStart := range SlotStarts(workStart, workEnd, model.SlotDuration) {
		slotEnd := slotStart.Add(model.SlotDuration)

		if hasLunch && Overlaps(lunchStart, lunchEnd, slotStart, slotEnd) {
			continue
		}

		taken := false
		for _, apt := range booked {
			if apt.IsCancelled() {
				continue
			}
			if Overlaps(apt.StartTime, apt.EndTime(), slotStart, slotEnd) {
				taken = true
				break
			}
		}
		if taken {
			continue
		}

		slots = append(slots, slotStart.Format(model.TimeOfDayLayout))
	}

	return slots, nil
}

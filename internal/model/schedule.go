package model

import (
	"fmt"
	"time"
)

// DayOfWeek is one of the seven fixed tokens MONDAY..SUNDAY.
type DayOfWeek string

const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
	Sunday    DayOfWeek = "SUNDAY"
)

var weekdayTokens = map[time.Weekday]DayOfWeek{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
	time.Sunday:    Sunday,
}

// DayOfWeekFromTime resolves the day token for a date.
func DayOfWeekFromTime(t time.Time) DayOfWeek {
	return weekdayTokens[t.Weekday()]
}

// TimeOfDayLayout is the wall-clock format used for schedule times.
const TimeOfDayLayout = "15:04"

// Schedule is one veterinarian's availability envelope for one day of the
// week. Times are wall-clock "15:04" strings; no timezone arithmetic is
// performed on them.
type Schedule struct {
	ID             string    `json:"id" db:"id"`
	VeterinarianID string    `json:"veterinarian_id" db:"veterinarian_id"`
	DayOfWeek      DayOfWeek `json:"day_of_week" db:"day_of_week"`
	StartTime      string    `json:"start_time" db:"start_time"`
	EndTime        string    `json:"end_time" db:"end_time"`
	LunchStart     *string   `json:"lunch_start,omitempty" db:"lunch_start"`
	LunchEnd       *string   `json:"lunch_end,omitempty" db:"lunch_end"`
	Active         bool      `json:"active" db:"active"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// IsActive reports whether the schedule accepts bookings.
func (s *Schedule) IsActive() bool {
	return s.Active
}

// HasLunch reports whether a lunch window is configured. Both bounds are
// present or both absent.
func (s *Schedule) HasLunch() bool {
	return s.LunchStart != nil && s.LunchEnd != nil
}

// WorkWindowOn anchors the schedule's work window on a calendar date.
func (s *Schedule) WorkWindowOn(date time.Time) (time.Time, time.Time, error) {
	start, err := atTimeOfDay(date, s.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid work start: %w", err)
	}
	end, err := atTimeOfDay(date, s.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid work end: %w", err)
	}
	return start, end, nil
}

// LunchWindowOn anchors the lunch window on a calendar date. The boolean is
// false when no lunch window is configured.
func (s *Schedule) LunchWindowOn(date time.Time) (time.Time, time.Time, bool, error) {
	if !s.HasLunch() {
		return time.Time{}, time.Time{}, false, nil
	}
	start, err := atTimeOfDay(date, *s.LunchStart)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("invalid lunch start: %w", err)
	}
	end, err := atTimeOfDay(date, *s.LunchEnd)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("invalid lunch end: %w", err)
	}
	return start, end, true, nil
}

func atTimeOfDay(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse(TimeOfDayLayout, clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

type CreateScheduleRequest struct {
	VeterinarianID string    `json:"veterinarian_id" binding:"required"`
	DayOfWeek      DayOfWeek `json:"day_of_week" binding:"required,dayofweek"`
	StartTime      string    `json:"start_time" binding:"required,timeofday"`
	EndTime        string    `json:"end_time" binding:"required,timeofday"`
	LunchStart     *string   `json:"lunch_start" binding:"omitempty,timeofday"`
	LunchEnd       *string   `json:"lunch_end" binding:"omitempty,timeofday"`
	Active         bool      `json:"active"`
}

// UpdateScheduleRequest replaces all time fields of a schedule.
type UpdateScheduleRequest struct {
	VeterinarianID string    `json:"veterinarian_id" binding:"required"`
	DayOfWeek      DayOfWeek `json:"day_of_week" binding:"required,dayofweek"`
	StartTime      string    `json:"start_time" binding:"required,timeofday"`
	EndTime        string    `json:"end_time" binding:"required,timeofday"`
	LunchStart     *string   `json:"lunch_start" binding:"omitempty,timeofday"`
	LunchEnd       *string   `json:"lunch_end" binding:"omitempty,timeofday"`
	Active         bool      `json:"active"`
}

package scheduling

import (
	"errors"
)

// Validation failures raised by the conflict checker. All are
// client-correctable; none are retried.
var (
	ErrNoScheduleForDay    = errors.New("veterinarian has no schedule for that day")
	ErrScheduleInactive    = errors.New("veterinarian's schedule for that day is inactive")
	ErrOutsideWorkingHours = errors.New("appointment falls outside working hours")
	ErrOverlapsLunch       = errors.New("appointment overlaps the lunch break")
	ErrSlotConflict        = errors.New("slot conflicts with an existing appointment")
	ErrEntityNotFound      = errors.New("referenced entity not found")
)

package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/huellas-salud/vet-api/internal/model"
	"github.com/huellas-salud/vet-api/internal/repository"
	apperrors "github.com/huellas-salud/vet-api/pkg/errors"
)

// Service manages veterinarian weekly schedules. A veterinarian holds at
// most one schedule per day of the week.
type Service struct {
	repo  repository.ScheduleRepository
	users repository.UserRepository
}

func NewService(repo repository.ScheduleRepository, users repository.UserRepository) *Service {
	return &Service{repo: repo, users: users}
}

func (s *Service) Create(ctx context.Context, req *model.CreateScheduleRequest) (*model.Schedule, error) {
	if err := s.validateVeterinarian(ctx, req.VeterinarianID); err != nil {
		return nil, err
	}
	if err := validateWindows(req.StartTime, req.EndTime, req.LunchStart, req.LunchEnd); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsForDay(ctx, req.VeterinarianID, req.DayOfWeek, "")
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if exists {
		return nil, apperrors.BadRequest(
			fmt.Sprintf("veterinarian %s already has a schedule for %s", req.VeterinarianID, req.DayOfWeek), nil)
	}

	schedule := &model.Schedule{
		ID:             uuid.NewString(),
		VeterinarianID: req.VeterinarianID,
		DayOfWeek:      req.DayOfWeek,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		LunchStart:     req.LunchStart,
		LunchEnd:       req.LunchEnd,
		Active:         req.Active,
	}

	if err := s.repo.Create(ctx, schedule); err != nil {
		return nil, apperrors.Internal(err)
	}
	return schedule, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.Schedule, error) {
	schedule, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("schedule", err)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return schedule, nil
}

// Update replaces every time field of the schedule. The duplicate-day
// check excludes the schedule itself, so saving it unchanged never
// trips the rule.
func (s *Service) Update(ctx context.Context, id string, req *model.UpdateScheduleRequest) (*model.Schedule, error) {
	schedule, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("schedule", err)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if err := s.validateVeterinarian(ctx, req.VeterinarianID); err != nil {
		return nil, err
	}
	if err := validateWindows(req.StartTime, req.EndTime, req.LunchStart, req.LunchEnd); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsForDay(ctx, req.VeterinarianID, req.DayOfWeek, id)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if exists {
		return nil, apperrors.BadRequest(
			fmt.Sprintf("veterinarian %s already has a schedule for %s", req.VeterinarianID, req.DayOfWeek), nil)
	}

	schedule.VeterinarianID = req.VeterinarianID
	schedule.DayOfWeek = req.DayOfWeek
	schedule.StartTime = req.StartTime
	schedule.EndTime = req.EndTime
	schedule.LunchStart = req.LunchStart
	schedule.LunchEnd = req.LunchEnd
	schedule.Active = req.Active

	if err := s.repo.Update(ctx, schedule); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("schedule", err)
		}
		return nil, apperrors.Internal(err)
	}
	return schedule, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("schedule", err)
		}
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]*model.Schedule, error) {
	schedules, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return schedules, nil
}

func (s *Service) ListByVeterinarian(ctx context.Context, vetID string) ([]*model.Schedule, error) {
	schedules, err := s.repo.ListByVeterinarian(ctx, vetID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return schedules, nil
}

func (s *Service) validateVeterinarian(ctx context.Context, vetID string) error {
	vet, err := s.users.GetByDocument(ctx, vetID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.BadRequest(fmt.Sprintf("veterinarian %s does not exist", vetID), err)
	}
	if err != nil {
		return apperrors.Internal(err)
	}
	if vet.Role != model.UserRoleVeterinarian {
		return apperrors.BadRequest(fmt.Sprintf("user %s is not a veterinarian", vetID), nil)
	}
	return nil
}

// validateWindows enforces the schedule invariants the binding layer
// cannot express: work start strictly before work end, lunch bounds both
// present or both absent, and the lunch window strictly inside the work
// window.
func validateWindows(startTime, endTime string, lunchStart, lunchEnd *string) error {
	start, err := time.Parse(model.TimeOfDayLayout, startTime)
	if err != nil {
		return apperrors.BadRequest("invalid start time", err)
	}
	end, err := time.Parse(model.TimeOfDayLayout, endTime)
	if err != nil {
		return apperrors.BadRequest("invalid end time", err)
	}
	if !start.Before(end) {
		return apperrors.BadRequest("start time must be before end time", nil)
	}

	if (lunchStart == nil) != (lunchEnd == nil) {
		return apperrors.BadRequest("lunch start and lunch end must be set together", nil)
	}
	if lunchStart == nil {
		return nil
	}

	ls, err := time.Parse(model.TimeOfDayLayout, *lunchStart)
	if err != nil {
		return apperrors.BadRequest("invalid lunch start", err)
	}
	le, err := time.Parse(model.TimeOfDayLayout, *lunchEnd)
	if err != nil {
		return apperrors.BadRequest("invalid lunch end", err)
	}
	if !ls.Before(le) {
		return apperrors.BadRequest("lunch start must be before lunch end", nil)
	}
	if ls.Before(start) || le.After(end) {
		return apperrors.BadRequest("lunch window must fall within working hours", nil)
	}
	return nil
}

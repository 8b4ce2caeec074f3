package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/huellas-salud/vet-api/internal/email"
	"github.com/huellas-salud/vet-api/internal/model"
	"github.com/huellas-salud/vet-api/internal/repository"
	"github.com/huellas-salud/vet-api/internal/scheduling"
	apperrors "github.com/huellas-salud/vet-api/pkg/errors"
	"github.com/huellas-salud/vet-api/pkg/logger"
	"github.com/huellas-salud/vet-api/pkg/messaging"
	"github.com/huellas-salud/vet-api/pkg/metrics"
)

// Service orchestrates appointment booking: referenced entities are
// validated, then the slot is checked against the veterinarian's schedule
// and existing bookings, and only then is anything written.
type Service struct {
	repo     repository.AppointmentRepository
	users    repository.UserRepository
	pets     repository.PetRepository
	services repository.ServiceRepository
	checker  *scheduling.Checker
	pricer   *scheduling.Pricer
	broker   messaging.Broker
	mailer   email.Sender
	metrics  *metrics.Metrics
	logger   *logger.Logger
}

func NewService(
	repo repository.AppointmentRepository,
	users repository.UserRepository,
	pets repository.PetRepository,
	services repository.ServiceRepository,
	checker *scheduling.Checker,
	broker messaging.Broker,
	mailer email.Sender,
	m *metrics.Metrics,
	l *logger.Logger,
) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		pets:     pets,
		services: services,
		checker:  checker,
		pricer:   scheduling.NewPricer(petLookup{pets}, serviceLookup{services}),
		broker:   broker,
		mailer:   mailer,
		metrics:  m,
		logger:   l,
	}
}

func (s *Service) Create(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	owner, err := s.users.GetByDocument(ctx, req.OwnerID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.BadRequest(fmt.Sprintf("owner %s does not exist", req.OwnerID), err)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	pet, err := s.pets.Get(ctx, req.PetID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.BadRequest(fmt.Sprintf("pet %s does not exist", req.PetID), err)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if pet.OwnerID != req.OwnerID {
		return nil, apperrors.BadRequest(fmt.Sprintf("pet %s does not belong to owner %s", req.PetID, req.OwnerID), nil)
	}

	if err := s.validateVeterinarian(ctx, req.VeterinarianID); err != nil {
		return nil, err
	}
	if err := s.validateServices(ctx, req.ServiceIDs); err != nil {
		return nil, err
	}

	apt := &model.Appointment{
		ID:             uuid.NewString(),
		OwnerID:        req.OwnerID,
		PetID:          req.PetID,
		VeterinarianID: req.VeterinarianID,
		ServiceIDs:     req.ServiceIDs,
		StartTime:      req.StartTime,
		Status:         model.AppointmentStatusPending,
		Notes:          req.Notes,
	}

	if err := s.validateSlot(ctx, apt.VeterinarianID, apt.StartTime, ""); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, apt); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			s.countConflict()
			return nil, apperrors.Conflict("slot is no longer available", err)
		}
		return nil, apperrors.Internal(err)
	}

	s.publish("appointment.created", apt)
	s.notifyOwner(owner, apt)

	return apt, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("appointment", err)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return apt, nil
}

// Update merges the request into the stored appointment: nil fields keep
// their stored values, and the start time is only rewritten when it
// actually differs. Timing is revalidated whenever the slot or the
// veterinarian changed, excluding the appointment itself from the overlap
// check.
func (s *Service) Update(ctx context.Context, id string, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("appointment", err)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	timingChanged := false

	if req.PetID != nil && *req.PetID != apt.PetID {
		pet, err := s.pets.Get(ctx, *req.PetID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.BadRequest(fmt.Sprintf("pet %s does not exist", *req.PetID), err)
		}
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		if pet.OwnerID != apt.OwnerID {
			return nil, apperrors.BadRequest(fmt.Sprintf("pet %s does not belong to owner %s", *req.PetID, apt.OwnerID), nil)
		}
		apt.PetID = *req.PetID
	}

	if req.VeterinarianID != nil && *req.VeterinarianID != apt.VeterinarianID {
		if err := s.validateVeterinarian(ctx, *req.VeterinarianID); err != nil {
			return nil, err
		}
		apt.VeterinarianID = *req.VeterinarianID
		timingChanged = true
	}

	if len(req.ServiceIDs) > 0 {
		if err := s.validateServices(ctx, req.ServiceIDs); err != nil {
			return nil, err
		}
		apt.ServiceIDs = req.ServiceIDs
	}

	if req.StartTime != nil && !req.StartTime.Equal(apt.StartTime) {
		apt.StartTime = *req.StartTime
		timingChanged = true
	}

	if req.Status != nil {
		apt.Status = *req.Status
	}
	if req.Notes != nil {
		apt.Notes = *req.Notes
	}

	// A cancelled appointment no longer occupies its slot, so there is
	// nothing to check it against.
	if timingChanged && !apt.IsCancelled() {
		if err := s.validateSlot(ctx, apt.VeterinarianID, apt.StartTime, apt.ID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, apt); err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			s.countConflict()
			return nil, apperrors.Conflict("slot is no longer available", err)
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperrors.NotFound("appointment", err)
		default:
			return nil, apperrors.Internal(err)
		}
	}

	s.publish("appointment.updated", apt)

	return apt, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("appointment", err)
		}
		return apperrors.Internal(err)
	}
	s.publish("appointment.deleted", map[string]string{"id": id})
	return nil
}

func (s *Service) List(ctx context.Context) ([]*model.Appointment, error) {
	apts, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return apts, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]*model.Appointment, error) {
	apts, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return apts, nil
}

func (s *Service) ListByVeterinarian(ctx context.Context, vetID string) ([]*model.Appointment, error) {
	apts, err := s.repo.ListByVeterinarian(ctx, vetID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return apts, nil
}

// EstimatePrice totals the weight-adjusted prices of the appointment's
// services for its pet.
func (s *Service) EstimatePrice(ctx context.Context, id string) (float64, error) {
	apt, err := s.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	total, err := s.pricer.TotalForServices(ctx, apt.PetID, apt.ServiceIDs)
	if err != nil {
		if errors.Is(err, scheduling.ErrEntityNotFound) {
			return 0, apperrors.NotFound(err.Error(), err)
		}
		return 0, apperrors.Internal(err)
	}
	return total, nil
}

// petLookup and serviceLookup adapt the repositories to the pricing
// lookups, which expect nil for a missing entity.
type petLookup struct {
	repo repository.PetRepository
}

func (p petLookup) PetByID(ctx context.Context, id string) (*model.Pet, error) {
	pet, err := p.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return pet, err
}

type serviceLookup struct {
	repo repository.ServiceRepository
}

func (s serviceLookup) ServiceByID(ctx context.Context, id string) (*model.Service, error) {
	svc, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return svc, err
}

// GetAvailableSlots lists the free "15:04" start times for a veterinarian
// on a date.
func (s *Service) GetAvailableSlots(ctx context.Context, vetID string, date time.Time) ([]string, error) {
	if s.metrics != nil {
		s.metrics.SlotQueries.Inc()
	}

	slots, err := s.checker.ListAvailableSlots(ctx, vetID, date)
	if err != nil {
		return nil, mapSchedulingError(err)
	}
	return slots, nil
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

func (s *Service) validateServices(ctx context.Context, serviceIDs []string) error {
	for _, id := range serviceIDs {
		svc, err := s.services.Get(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.BadRequest(fmt.Sprintf("service %s does not exist", id), err)
		}
		if err != nil {
			return apperrors.Internal(err)
		}
		if !svc.Active {
			return apperrors.BadRequest(fmt.Sprintf("service %s is not active", id), nil)
		}
	}
	return nil
}

func (s *Service) validateSlot(ctx context.Context, vetID string, start time.Time, excludeID string) error {
	end := start.Add(model.SlotDuration)

	if err := s.checker.ValidateWithinSchedule(ctx, vetID, start, end); err != nil {
		return mapSchedulingError(err)
	}
	if err := s.checker.ValidateNoOverlap(ctx, vetID, start, end, excludeID); err != nil {
		if errors.Is(err, scheduling.ErrSlotConflict) {
			s.countConflict()
		}
		return mapSchedulingError(err)
	}
	return nil
}

func (s *Service) countConflict() {
	if s.metrics != nil {
		s.metrics.BookingConflicts.Inc()
	}
}

func (s *Service) publish(eventType string, payload interface{}) {
	if s.broker == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	event := messaging.Event{Type: eventType, Payload: payload}
	if err := s.broker.Publish(ctx, messaging.ChannelAppointments, event); err != nil {
		s.logger.Error(err, "failed to publish appointment event",
			map[string]interface{}{"event": eventType})
	}
}

// notifyOwner is best-effort: a failed confirmation mail is logged, never
// surfaced to the caller.
func (s *Service) notifyOwner(owner *model.User, apt *model.Appointment) {
	if s.mailer == nil || owner.Email == "" {
		return
	}

	subject := "Appointment confirmation"
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your appointment on %s has been registered and is pending confirmation.</p>",
		owner.Name, apt.StartTime.Format("2006-01-02 15:04"),
	)
	if err := s.mailer.Send(owner.Email, subject, body); err != nil {
		s.logger.Error(err, "failed to send confirmation email",
			map[string]interface{}{"appointment_id": apt.ID})
	}
}

// mapSchedulingError translates checker sentinels into API errors. All
// timing violations are client-correctable; only a taken slot is a
// conflict.
func mapSchedulingError(err error) error {
	switch {
	case errors.Is(err, scheduling.ErrSlotConflict):
		return apperrors.Conflict("slot conflicts with an existing appointment", err)
	case errors.Is(err, scheduling.ErrNoScheduleForDay),
		errors.Is(err, scheduling.ErrScheduleInactive),
		errors.Is(err, scheduling.ErrOutsideWorkingHours),
		errors.Is(err, scheduling.ErrOverlapsLunch):
		return apperrors.BadRequest(err.Error(), err)
	default:
		return apperrors.Internal(err)
	}
}

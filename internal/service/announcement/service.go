package announcement

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/huellas-salud/vet-api/internal/model"
	"github.com/huellas-salud/vet-api/internal/repository"
	apperrors "github.com/huellas-salud/vet-api/pkg/errors"
	"github.com/huellas-salud/vet-api/pkg/logger"
	"github.com/huellas-salud/vet-api/pkg/messaging"
)

type Service struct {
	repo   repository.AnnouncementRepository
	broker messaging.Broker
	logger *logger.Logger
}

func NewService(repo repository.AnnouncementRepository, broker messaging.Broker, l *logger.Logger) *Service {
	return &Service{repo: repo, broker: broker, logger: l}
}

func (s *Service) Create(ctx context.Context, req *model.CreateAnnouncementRequest) (*model.Announcement, error) {
	announcement := &model.Announcement{
		ID:          uuid.NewString(),
		Description: req.Description,
		CellPhone:   req.CellPhone,
		Active:      req.Active,
	}
	if req.Active {
		now := time.Now()
		announcement.ActivatedAt = &now
	}

	if err := s.repo.Create(ctx, announcement); err != nil {
		return nil, apperrors.Internal(err)
	}

	if announcement.Active {
		s.publish("announcement.activated", announcement)
	}
	return announcement, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.Announcement, error) {
	announcement, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("announcement", err)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return announcement, nil
}

// Update merges the request. Turning an announcement on restamps
// ActivatedAt so its lifetime restarts; turning it off keeps the stamp.
func (s *Service) Update(ctx context.Context, id string, req *model.UpdateAnnouncementRequest) (*model.Announcement, error) {
	announcement, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("announcement", err)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if req.Description != nil {
		announcement.Description = *req.Description
	}
	if req.CellPhone != nil {
		announcement.CellPhone = *req.CellPhone
	}

	activated := false
	if req.Active != nil && *req.Active != announcement.Active {
		announcement.Active = *req.Active
		if announcement.Active {
			now := time.Now()
			announcement.ActivatedAt = &now
			activated = true
		}
	}

	if err := s.repo.Update(ctx, announcement); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("announcement", err)
		}
		return nil, apperrors.Internal(err)
	}

	if activated {
		s.publish("announcement.activated", announcement)
	}
	return announcement, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("announcement", err)
		}
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]*model.Announcement, error) {
	announcements, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return announcements, nil
}

func (s *Service) ListActive(ctx context.Context) ([]*model.Announcement, error) {
	announcements, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return announcements, nil
}

// DeactivateExpired turns off every announcement active longer than the
// lifetime and publishes one event per transition. It is driven by the
// worker binary on a fixed cadence.
func (s *Service) DeactivateExpired(ctx context.Context, lifetime time.Duration) (int, error) {
	cutoff := time.Now().Add(-lifetime)

	expired, err := s.repo.DeactivateActivatedBefore(ctx, cutoff)
	if err != nil {
		return 0, apperrors.Internal(err)
	}

	for _, announcement := range expired {
		s.publish("announcement.expired", announcement)
	}
	return len(expired), nil
}

func (s *Service) publish(eventType string, payload interface{}) {
	if s.broker == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	event := messaging.Event{Type: eventType, Payload: payload}
	if err := s.broker.Publish(ctx, messaging.ChannelAnnouncements, event); err != nil {
		s.logger.Error(err, "failed to publish announcement event",
			map[string]interface{}{"event": eventType})
	}
}

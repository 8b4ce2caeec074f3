package worker

import (
	"context"
	"time"

	"github.com/huellas-salud/vet-api/internal/service/announcement"
	"github.com/huellas-salud/vet-api/pkg/logger"
)

// AnnouncementScheduler sweeps active announcements on a fixed cadence and
// expires the stale ones.
type AnnouncementScheduler struct {
	service  *announcement.Service
	interval time.Duration
	lifetime time.Duration
	logger   *logger.Logger
}

func NewAnnouncementScheduler(service *announcement.Service, interval, lifetime time.Duration, l *logger.Logger) *AnnouncementScheduler {
	return &AnnouncementScheduler{
		service:  service,
		interval: interval,
		lifetime: lifetime,
		logger:   l,
	}
}

// Run blocks until the context is cancelled.
func (s *AnnouncementScheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("announcement scheduler started",
		map[string]interface{}{"interval": s.interval.String(), "lifetime": s.lifetime.String()})

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("announcement scheduler stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *AnnouncementScheduler) sweep(ctx context.Context) {
	n, err := s.service.DeactivateExpired(ctx, s.lifetime)
	if err != nil {
		s.logger.Error(err, "failed to expire announcements")
		return
	}
	if n > 0 {
		s.logger.Info("expired announcements", map[string]interface{}{"count": n})
	}
}

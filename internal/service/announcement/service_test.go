package announcement

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huellas-salud/vet-api/internal/model"
	"github.com/huellas-salud/vet-api/internal/repository/memory"
	"github.com/huellas-salud/vet-api/pkg/logger"
)

func newTestService() (*Service, *memory.AnnouncementRepository) {
	repo := memory.NewAnnouncementRepository()
	return NewService(repo, nil, logger.New(nil)), repo
}

func TestAnnouncementLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("activation stamps activated_at", func(t *testing.T) {
		s, _ := newTestService()
		a, err := s.Create(ctx, &model.CreateAnnouncementRequest{
			Description: "Vaccination campaign this weekend", Active: true,
		})
		require.NoError(t, err)
		require.NotNil(t, a.ActivatedAt)
	})

	t.Run("inactive creation leaves activated_at empty", func(t *testing.T) {
		s, _ := newTestService()
		a, err := s.Create(ctx, &model.CreateAnnouncementRequest{
			Description: "Draft announcement text here",
		})
		require.NoError(t, err)
		assert.Nil(t, a.ActivatedAt)
	})

	t.Run("turning an announcement on restamps activated_at", func(t *testing.T) {
		s, _ := newTestService()
		a, err := s.Create(ctx, &model.CreateAnnouncementRequest{
			Description: "Draft announcement text here",
		})
		require.NoError(t, err)

		active := true
		updated, err := s.Update(ctx, a.ID, &model.UpdateAnnouncementRequest{Active: &active})
		require.NoError(t, err)
		require.NotNil(t, updated.ActivatedAt)
		assert.True(t, updated.Active)
	})
}

func TestDeactivateExpired(t *testing.T) {
	ctx := context.Background()
	s, repo := newTestService()

	stale := time.Now().Add(-48 * time.Hour)
	require.NoError(t, repo.Create(ctx, &model.Announcement{
		ID: "old", Description: "Stale promotion announcement", Active: true, ActivatedAt: &stale,
	}))
	fresh := time.Now().Add(-1 * time.Hour)
	require.NoError(t, repo.Create(ctx, &model.Announcement{
		ID: "new", Description: "Fresh promotion announcement", Active: true, ActivatedAt: &fresh,
	}))

	n, err := s.DeactivateExpired(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	active, err := s.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "new", active[0].ID)
}

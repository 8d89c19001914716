package client_test

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/clipdeck/internal/auth"
	"github.com/rpggio/clipdeck/internal/client"
	"github.com/rpggio/clipdeck/internal/domain/dashboard"
	"github.com/rpggio/clipdeck/internal/domain/mocks"
	"github.com/rpggio/clipdeck/internal/querycache"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestDashboardService_StatsCached(t *testing.T) {
	ctx := context.Background()
	api := &mocks.API{}
	api.On("GetDashboardStats", mock.Anything, token).Return(&dashboard.Stats{TotalProjects: 3}, nil).Once()

	svc := client.NewDashboardService(api, auth.Static(token), querycache.New(time.Hour), 0, nil)
	for i := 0; i < 2; i++ {
		stats, err := svc.Stats(ctx)
		require.NoError(t, err)
		require.Equal(t, 3, stats.TotalProjects)
	}
	api.AssertExpectations(t)
}

func TestDashboardService_NoToken(t *testing.T) {
	api := &mocks.API{}
	svc := client.NewDashboardService(api, auth.Static(""), querycache.New(time.Hour), 0, nil)
	_, err := svc.Stats(context.Background())
	require.ErrorIs(t, err, auth.ErrMissingToken)
	require.Empty(t, api.Calls)
}

func TestDashboardService_WatchRefreshesOnInterval(t *testing.T) {
	defer goleak.VerifyNone(t)

	api := &mocks.API{}
	api.On("GetDashboardStats", mock.Anything, token).Return(&dashboard.Stats{TotalClips: 1}, nil).Once()
	api.On("GetDashboardStats", mock.Anything, token).Return(&dashboard.Stats{TotalClips: 2}, nil).Once()
	api.On("GetDashboardStats", mock.Anything, token).Return(&dashboard.Stats{TotalClips: 3}, nil)

	// The stale window is far longer than the interval; the watcher must
	// refresh regardless.
	svc := client.NewDashboardService(api, auth.Static(token), querycache.New(time.Hour), 0, nil)

	ctx, cancel := context.WithCancel(context.Background())
	updates := svc.Watch(ctx, 10*time.Millisecond)

	first := <-updates
	require.NoError(t, first.Err)
	require.Equal(t, 1, first.Stats.TotalClips)

	second := <-updates
	require.NoError(t, second.Err)
	require.Equal(t, 2, second.Stats.TotalClips)

	cancel()
	for range updates {
	}
}

func TestDashboardService_WatchReportsErrors(t *testing.T) {
	defer goleak.VerifyNone(t)

	svc := client.NewDashboardService(&mocks.API{}, auth.Static(""), querycache.New(time.Hour), time.Hour, nil)
	ctx, cancel := context.WithCancel(context.Background())
	updates := svc.Watch(ctx, 0)

	update := <-updates
	require.ErrorIs(t, update.Err, auth.ErrMissingToken)

	cancel()
	for range updates {
	}
}

package client

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rpggio/clipdeck/internal/auth"
	"github.com/rpggio/clipdeck/internal/domain/dashboard"
	"github.com/rpggio/clipdeck/internal/querycache"
)

// DashboardService reads aggregate stats.
type DashboardService struct {
	api     dashboard.API
	tokens  auth.TokenProvider
	cache   *querycache.Cache
	refresh time.Duration
	logger  *slog.Logger
}

// StatsUpdate is one emission of Watch.
type StatsUpdate struct {
	Stats *dashboard.Stats
	Err   error
}

// NewDashboardService creates a dashboard service. refresh is the Watch
// interval used when callers pass none.
func NewDashboardService(api dashboard.API, tokens auth.TokenProvider, cache *querycache.Cache, refresh time.Duration, logger *slog.Logger) *DashboardService {
	if refresh <= 0 {
		refresh = DefaultStatsRefresh
	}
	return &DashboardService{
		api:     api,
		tokens:  tokens,
		cache:   cache,
		refresh: refresh,
		logger:  loggerOrDiscard(logger),
	}
}

// Stats returns the dashboard snapshot, served from cache while fresh.
func (s *DashboardService) Stats(ctx context.Context) (*dashboard.Stats, error) {
	return s.load(ctx, false)
}

func (s *DashboardService) load(ctx context.Context, force bool) (*dashboard.Stats, error) {
	token, err := auth.Require(ctx, s.tokens)
	if err != nil {
		return nil, err
	}
	fetch := func(ctx context.Context) (*dashboard.Stats, error) {
		return s.api.GetDashboardStats(ctx, token)
	}

	var stats *dashboard.Stats
	if force {
		stats, err = querycache.Refetch(ctx, s.cache, StatsKey, fetch, nil)
	} else {
		stats, err = querycache.Fetch(ctx, s.cache, StatsKey, fetch)
	}
	if err != nil {
		return nil, fmt.Errorf("getting dashboard stats: %w", err)
	}
	cp := *stats
	return &cp, nil
}

// Watch emits the current stats, then a refreshed snapshot every interval
// until ctx is done. The channel is closed on return. A non-positive interval
// selects the service default.
func (s *DashboardService) Watch(ctx context.Context, interval time.Duration) <-chan StatsUpdate {
	if interval <= 0 {
		interval = s.refresh
	}
	out := make(chan StatsUpdate, 1)

	go func() {
		defer close(out)

		emit := func(stats *dashboard.Stats, err error) bool {
			if ctx.Err() != nil {
				return false
			}
			select {
			case out <- StatsUpdate{Stats: stats, Err: err}:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !emit(s.Stats(ctx)) {
			return
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.logger.Debug("refreshing dashboard stats")
				if !emit(s.load(ctx, true)) {
					return
				}
			}
		}
	}()

	return out
}

// Package client is the data-fetch layer between callers and the backend. Each
// operation resolves a bearer token, calls the API and reconciles the result
// into the request cache and the client store.
package client

import (
	"log/slog"
	"time"

	"github.com/rpggio/clipdeck/internal/auth"
	"github.com/rpggio/clipdeck/internal/domain/dashboard"
	"github.com/rpggio/clipdeck/internal/domain/project"
	"github.com/rpggio/clipdeck/internal/querycache"
	"github.com/rpggio/clipdeck/internal/store"
)

// Cache keys.
const (
	ProjectsKey = "projects"
	StatsKey    = "dashboard/stats"
)

// ProjectKey is the detail cache key for a project.
func ProjectKey(id string) string {
	return querycache.Key(ProjectsKey, id)
}

const (
	DefaultStaleTime    = time.Minute
	DefaultStatsRefresh = 30 * time.Second
)

// API is the full backend surface used by the client.
type API interface {
	project.API
	dashboard.API
}

// Options configures a Client.
type Options struct {
	API          API
	Tokens       auth.TokenProvider
	Store        *store.Store
	StaleTime    time.Duration
	StatsRefresh time.Duration
	Logger       *slog.Logger
}

// Client bundles the services sharing one cache and store.
type Client struct {
	Projects  *ProjectService
	Dashboard *DashboardService
	Cache     *querycache.Cache
	Store     *store.Store
}

// New wires the services. A nil Store selects the process-wide store.
func New(opts Options) *Client {
	st := opts.Store
	if st == nil {
		st = store.Default()
	}
	staleTime := opts.StaleTime
	if staleTime <= 0 {
		staleTime = DefaultStaleTime
	}
	cache := querycache.New(staleTime)

	return &Client{
		Projects:  NewProjectService(opts.API, opts.Tokens, cache, st, opts.Logger),
		Dashboard: NewDashboardService(opts.API, opts.Tokens, cache, opts.StatsRefresh, opts.Logger),
		Cache:     cache,
		Store:     st,
	}
}

func loggerOrDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}

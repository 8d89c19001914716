package dashboard

import "context"

// API fetches dashboard aggregates from the backend.
type API interface {
	GetDashboardStats(ctx context.Context, token string) (*Stats, error)
}

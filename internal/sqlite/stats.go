package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rpggio/clipdeck/internal/domain/dashboard"
)

// StatsRepository implements repository.StatsRepository for SQLite
type StatsRepository struct {
	db *DB
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Stats aggregates a user's projects and clips
func (r *StatsRepository) Stats(ctx context.Context, userID string) (*dashboard.Stats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM projects WHERE user_id = ?),
			COUNT(c.id),
			COALESCE(SUM(CASE WHEN c.status = 'ready' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN c.status IN ('pending', 'processing') THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN c.status = 'failed' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(c.duration_seconds), 0.0),
			AVG(c.viral_score)
		FROM clips c
		WHERE c.user_id = ?
	`

	var stats dashboard.Stats
	var avg sql.NullFloat64
	err := r.db.QueryRowContext(ctx, query, userID, userID).Scan(
		&stats.TotalProjects,
		&stats.TotalClips,
		&stats.ReadyClips,
		&stats.ProcessingClips,
		&stats.FailedClips,
		&stats.TotalDurationSeconds,
		&avg,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	if avg.Valid {
		v := avg.Float64
		stats.AverageViralScore = &v
	}
	stats.GeneratedAt = time.Now().UTC()

	return &stats, nil
}

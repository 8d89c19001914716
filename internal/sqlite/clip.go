package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/clipdeck/internal/domain/project"
	"github.com/rpggio/clipdeck/internal/repository"
)

// ClipRepository implements repository.ClipRepository for SQLite
type ClipRepository struct {
	db *DB
}

// NewClipRepository creates a new ClipRepository
func NewClipRepository(db *DB) *ClipRepository {
	return &ClipRepository{db: db}
}

// Create inserts a clip
func (r *ClipRepository) Create(ctx context.Context, userID string, clip *project.Clip) error {
	if !clip.Status.Valid() {
		return fmt.Errorf("failed to create clip: status %q: %w", clip.Status, repository.ErrInvalidInput)
	}

	query := `
		INSERT INTO clips (
			id, project_id, user_id, title, status,
			duration_seconds, thumbnail_url, viral_score, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var score sql.NullFloat64
	if clip.ViralScore != nil {
		score = sql.NullFloat64{Float64: *clip.ViralScore, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		clip.ID,
		clip.ProjectID,
		userID,
		clip.Title,
		string(clip.Status),
		clip.DurationSeconds,
		clip.ThumbnailURL,
		score,
		clip.CreatedAt,
	)
	if err != nil {
		return mapWriteError("failed to create clip", err)
	}

	return nil
}

// ListByProject returns a project's clips, oldest first
func (r *ClipRepository) ListByProject(ctx context.Context, userID, projectID string) ([]project.Clip, error) {
	query := `
		SELECT id, project_id, title, status, duration_seconds, thumbnail_url, viral_score, created_at
		FROM clips
		WHERE project_id = ? AND user_id = ?
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, projectID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clips: %w", err)
	}
	defer rows.Close()

	clips := []project.Clip{}
	for rows.Next() {
		var clip project.Clip
		var status string
		var score sql.NullFloat64
		if err := rows.Scan(
			&clip.ID,
			&clip.ProjectID,
			&clip.Title,
			&status,
			&clip.DurationSeconds,
			&clip.ThumbnailURL,
			&score,
			&clip.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan clip: %w", err)
		}
		clip.Status = project.ClipStatus(status)
		if score.Valid {
			v := score.Float64
			clip.ViralScore = &v
		}
		clips = append(clips, clip)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating clip rows: %w", err)
	}

	return clips, nil
}

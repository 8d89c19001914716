package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/clipdeck/internal/domain/project"
	"github.com/rpggio/clipdeck/internal/repository"
)

// ProjectRepository implements repository.ProjectRepository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create creates a new project
func (r *ProjectRepository) Create(ctx context.Context, userID string, proj *project.Project) error {
	query := `
		INSERT INTO projects (id, user_id, name, description, source_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		proj.ID,
		userID,
		proj.Name,
		proj.Description,
		proj.SourceURL,
		proj.CreatedAt,
		proj.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("failed to create project", err)
	}

	proj.UserID = userID
	return nil
}

// Get retrieves a project by ID with its clip count
func (r *ProjectRepository) Get(ctx context.Context, userID, id string) (*project.Project, error) {
	query := `
		SELECT p.id, p.user_id, p.name, p.description, p.source_url, p.created_at, p.updated_at,
			(SELECT COUNT(*) FROM clips c WHERE c.project_id = p.id) AS clip_count
		FROM projects p
		WHERE p.id = ? AND p.user_id = ?
	`

	proj, err := scanProject(r.db.QueryRowContext(ctx, query, id, userID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return proj, nil
}

// List returns all projects for a user, newest first
func (r *ProjectRepository) List(ctx context.Context, userID string) ([]project.Project, error) {
	query := `
		SELECT p.id, p.user_id, p.name, p.description, p.source_url, p.created_at, p.updated_at,
			(SELECT COUNT(*) FROM clips c WHERE c.project_id = p.id) AS clip_count
		FROM projects p
		WHERE p.user_id = ?
		ORDER BY p.created_at DESC, p.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []project.Project{}
	for rows.Next() {
		proj, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *proj)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return projects, nil
}

// Update persists name, description, source URL and updated_at
func (r *ProjectRepository) Update(ctx context.Context, userID string, proj *project.Project) error {
	query := `
		UPDATE projects
		SET name = ?, description = ?, source_url = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		proj.Name,
		proj.Description,
		proj.SourceURL,
		proj.UpdatedAt,
		proj.ID,
		userID,
	)
	if err != nil {
		return mapWriteError("failed to update project", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a project; its clips are removed by cascade
func (r *ProjectRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*project.Project, error) {
	var proj project.Project
	err := row.Scan(
		&proj.ID,
		&proj.UserID,
		&proj.Name,
		&proj.Description,
		&proj.SourceURL,
		&proj.CreatedAt,
		&proj.UpdatedAt,
		&proj.ClipCount,
	)
	if err != nil {
		return nil, err
	}
	return &proj, nil
}
